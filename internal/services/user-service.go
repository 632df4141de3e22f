package services

import (
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"gorm.io/gorm"

	"github.com/askfield/user_service/internal/domain"
	"github.com/askfield/user_service/internal/dto"
	"github.com/askfield/user_service/internal/helper"
	"github.com/askfield/user_service/internal/helper/utils"
	"github.com/askfield/user_service/internal/interfaces"
	"github.com/askfield/user_service/internal/repository"
)

type UserService interface {
	// Auth
	Register(input dto.RegisterRequest) (*dto.UserSummary, error)
	VerifyEmail(token string) error
	ResendVerification(email string) error
	Login(input dto.LoginRequest) (string, *dto.UserSummary, error)

	// Profile
	GetProfile(userID uint) (*domain.User, error)
	CompleteProfile(userID uint, input dto.CompleteProfileRequest) (*dto.UserSummary, error)
	UpdateProfile(userID uint, input dto.UpdateProfileRequest) (*dto.UserSummary, error)
}

type userService struct {
	repo     repository.UserRepository
	auth     helper.Auth
	producer interfaces.ProducerHandler

	verificationTTL     time.Duration
	requireDemographics bool
}

func NewUserService(
	repo repository.UserRepository,
	producer interfaces.ProducerHandler,
	auth helper.Auth,
	verificationTTL time.Duration,
	requireDemographics bool,
) UserService {
	return &userService{
		repo:                repo,
		producer:            producer,
		auth:                auth,
		verificationTTL:     verificationTTL,
		requireDemographics: requireDemographics,
	}
}

// Register creates an unverified account and kicks off email verification.
// No session token is issued here: access starts with login, after the email
// is verified. The verification event publish is best-effort; a broker
// outage must not roll back the registration.
func (u *userService) Register(input dto.RegisterRequest) (*dto.UserSummary, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Role = strings.TrimSpace(strings.ToLower(input.Role))
	input.PhoneNumber = strings.TrimSpace(input.PhoneNumber)

	if err := asValidationErrors(input.Validate(u.requireDemographics)); err != nil {
		return nil, err
	}

	user := &domain.User{
		FirstName:          input.FirstName,
		LastName:           input.LastName,
		Email:              input.Email,
		Role:               input.Role,
		Gender:             input.Gender,
		PhoneNumber:        input.PhoneNumber,
		IdentityDocument:   input.IdentityDocument,
		SupportingDocument: input.SupportingDocument,
	}
	if input.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", input.DateOfBirth)
		if err != nil {
			return nil, ValidationErrors{Errs: validation.Errors{
				"dateOfBirth": errors.New("must be a valid date"),
			}}
		}
		user.DateOfBirth = &dob
	}

	// stage-1 profile payload is optional; only the sub-record matching the
	// chosen role is taken
	switch user.Role {
	case domain.RoleContributor:
		user.ContributorProfile = input.ContributorProfile
	case domain.RoleParticipant:
		user.ParticipantProfile = input.ParticipantProfile
	}

	user.SetPassword(input.Password)

	usr, err := u.repo.CreateUser(user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	plainToken, err := usr.IssueVerificationToken(u.verificationTTL)
	if err != nil {
		return nil, errors.New("failed to generate verification token")
	}
	if err := u.repo.SaveUser(usr); err != nil {
		return nil, err
	}

	if err := u.publishVerifyEmail(usr, plainToken); err != nil {
		log.Printf("verification email publish failed for user %d: %v", usr.ID, err)
	}

	return dto.NewUserSummary(usr), nil
}

// VerifyEmail consumes a verification token. Wrong, expired and
// already-consumed tokens all come back as ErrInvalidToken; the caller
// cannot tell which.
func (u *userService) VerifyEmail(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidToken
	}

	hash := utils.Sha256Hex(token)
	user, err := u.repo.FindUserByVerificationTokenHash(hash)
	if err != nil || user == nil {
		return ErrInvalidToken
	}

	if !user.VerificationTokenValid(time.Now()) {
		return ErrInvalidToken
	}

	// verified flag and token fields change in the same save, so a consumed
	// token can never be replayed
	user.ConsumeVerification()
	if err := u.repo.SaveUser(user); err != nil {
		return err
	}

	if err := u.publishWelcome(user); err != nil {
		log.Printf("welcome email publish failed for user %d: %v", user.ID, err)
	}

	return nil
}

// ResendVerification issues a fresh token, invalidating any prior one by
// overwriting it. Unlike Register, a publish failure here surfaces to the
// caller: the whole point of the request was that email.
func (u *userService) ResendVerification(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return ErrUserNotFound
	}

	user, err := u.repo.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if user.IsVerified {
		return ErrAlreadyVerified
	}

	plainToken, err := user.IssueVerificationToken(u.verificationTTL)
	if err != nil {
		return errors.New("failed to generate verification token")
	}
	if err := u.repo.SaveUser(user); err != nil {
		return err
	}

	if err := u.publishVerifyEmail(user, plainToken); err != nil {
		log.Printf("verification email publish failed for user %d: %v", user.ID, err)
		return ErrNotificationSend
	}

	return nil
}

// Login checks credentials and returns a session token plus the account
// summary. Unknown email and wrong password are indistinguishable to the
// caller; an unverified account is not, so the client can route to a
// "check your inbox" screen.
func (u *userService) Login(input dto.LoginRequest) (string, *dto.UserSummary, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := input.Password

	if email == "" || password == "" {
		return "", nil, ErrInvalidCredentials
	}

	user, err := u.repo.FindUserByEmail(email)
	if err != nil || user == nil || user.ID == 0 {
		return "", nil, ErrInvalidCredentials
	}

	if !user.IsVerified {
		return "", nil, ErrNotVerified
	}

	if err := u.auth.VerifyPassword(password, user.PasswordHash); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := u.auth.GenerateToken(user.ID)
	if err != nil {
		return "", nil, err
	}

	return token, dto.NewUserSummary(user), nil
}

func (u *userService) GetProfile(userID uint) (*domain.User, error) {
	if userID == 0 {
		return nil, ErrUserNotFound
	}
	user, err := u.repo.FindUserById(userID)
	if err != nil || user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// CompleteProfile fills in the stage-2 data for the authenticated account.
// Only the sub-record matching the account's role is applied; a payload for
// the other role is ignored. ProfileCompleted only ever moves false→true.
func (u *userService) CompleteProfile(userID uint, input dto.CompleteProfileRequest) (*dto.UserSummary, error) {
	user, err := u.repo.FindUserById(userID)
	if err != nil || user == nil {
		return nil, ErrUserNotFound
	}

	if g := strings.TrimSpace(input.Gender); g != "" {
		if err := validateGender(g); err != nil {
			return nil, err
		}
		user.Gender = g
	}
	if input.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", input.DateOfBirth)
		if err != nil {
			return nil, ValidationErrors{Errs: validation.Errors{
				"dateOfBirth": errors.New("must be a valid date"),
			}}
		}
		user.DateOfBirth = &dob
	}
	if p := strings.TrimSpace(input.PhoneNumber); p != "" {
		user.PhoneNumber = p
	}
	if d := strings.TrimSpace(input.IdentityDocument); d != "" {
		user.IdentityDocument = d
	}
	if d := strings.TrimSpace(input.SupportingDocument); d != "" {
		user.SupportingDocument = d
	}

	switch user.Role {
	case domain.RoleContributor:
		if input.ContributorProfile != nil {
			user.ContributorProfile = input.ContributorProfile
		}
	case domain.RoleParticipant:
		if input.ParticipantProfile != nil {
			user.ParticipantProfile = input.ParticipantProfile
		}
	}

	user.ProfileCompleted = true

	if err := u.repo.SaveUser(user); err != nil {
		return nil, err
	}
	return dto.NewUserSummary(user), nil
}

// UpdateProfile applies a partial update over the allow-listed fields
// (firstName, lastName, phoneNumber, gender, the role-matching profile).
// Fields outside the allow-list never reach here: the DTO doesn't carry
// them, so they are silently ignored rather than rejected.
func (u *userService) UpdateProfile(userID uint, input dto.UpdateProfileRequest) (*dto.UserSummary, error) {
	user, err := u.repo.FindUserById(userID)
	if err != nil || user == nil {
		return nil, ErrUserNotFound
	}

	if input.FirstName != nil {
		fn := strings.TrimSpace(*input.FirstName)
		if fn == "" {
			return nil, ValidationErrors{Errs: validation.Errors{
				"firstName": errors.New("cannot be blank"),
			}}
		}
		user.FirstName = fn
	}

	if input.LastName != nil {
		ln := strings.TrimSpace(*input.LastName)
		if ln == "" {
			return nil, ValidationErrors{Errs: validation.Errors{
				"lastName": errors.New("cannot be blank"),
			}}
		}
		user.LastName = ln
	}

	if input.PhoneNumber != nil {
		user.PhoneNumber = strings.TrimSpace(*input.PhoneNumber)
	}

	if input.Gender != nil {
		g := strings.TrimSpace(*input.Gender)
		if err := validateGender(g); err != nil {
			return nil, err
		}
		user.Gender = g
	}

	switch user.Role {
	case domain.RoleContributor:
		if input.ContributorProfile != nil {
			user.ContributorProfile = input.ContributorProfile
		}
	case domain.RoleParticipant:
		if input.ParticipantProfile != nil {
			user.ParticipantProfile = input.ParticipantProfile
		}
	}

	if err := u.repo.SaveUser(user); err != nil {
		return nil, err
	}
	return dto.NewUserSummary(user), nil
}

func validateGender(g string) error {
	switch g {
	case domain.GenderMale, domain.GenderFemale, domain.GenderOther, domain.GenderPreferNotToSay:
		return nil
	}
	return ValidationErrors{Errs: validation.Errors{
		"gender": errors.New("must be a valid value"),
	}}
}

func (u *userService) publishVerifyEmail(user *domain.User, plainToken string) error {
	if u.producer == nil {
		return nil
	}
	payload, err := json.Marshal(dto.VerifyEmailEvent{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		Role:      user.Role,
		Token:     plainToken,
		ExpiresAt: user.VerificationTokenExpiresAt.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	return u.producer.PublishMessage([]byte(dto.EventVerifyEmail), payload)
}

func (u *userService) publishWelcome(user *domain.User) error {
	if u.producer == nil {
		return nil
	}
	payload, err := json.Marshal(dto.WelcomeEvent{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		Role:      user.Role,
	})
	if err != nil {
		return err
	}
	return u.producer.PublishMessage([]byte(dto.EventWelcome), payload)
}
