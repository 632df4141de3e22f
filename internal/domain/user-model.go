package domain

import (
	"time"

	"github.com/askfield/user_service/internal/helper/utils"
)

const (
	RoleContributor = "contributor"
	RoleParticipant = "participant"
)

const (
	GenderMale           = "male"
	GenderFemale         = "female"
	GenderOther          = "other"
	GenderPreferNotToSay = "prefer-not-to-say"
)

// ContributorProfile is the stage-2 sub-record for contributor accounts.
type ContributorProfile struct {
	Expertise          string `json:"expertise,omitempty"`
	Bio                string `json:"bio,omitempty"`
	CountryOfResidence string `json:"countryOfResidence,omitempty"`
	OrganizationName   string `json:"organizationName,omitempty"`
	JobTitle           string `json:"jobTitle,omitempty"`
	OrganizationType   string `json:"organizationType,omitempty"`
}

// ParticipantProfile is the stage-2 sub-record for participant accounts.
type ParticipantProfile struct {
	Interests                 []string `json:"interests,omitempty"`
	About                     string   `json:"about,omitempty"`
	Goals                     string   `json:"goals,omitempty"`
	CountryOfResidence        string   `json:"countryOfResidence,omitempty"`
	CountryOfBirth            string   `json:"countryOfBirth,omitempty"`
	PlaceOfBirth              string   `json:"placeOfBirth,omitempty"`
	EthnicGroup               string   `json:"ethnicGroup,omitempty"`
	Language                  string   `json:"language,omitempty"`
	LanguageFluent            []string `json:"languageFluent,omitempty"`
	RegionalDialect           string   `json:"regionalDialect,omitempty"`
	EducationLevel            string   `json:"educationLevel,omitempty"`
	EducationCurrentStatus    string   `json:"educationCurrentStatus,omitempty"`
	EducationFieldOfStudy     string   `json:"educationFieldOfStudy,omitempty"`
	EducationYearCompleted    string   `json:"educationYearCompleted,omitempty"`
	EmploymentStatus          string   `json:"employmentStatus,omitempty"`
	EmploymentYearsExperience int      `json:"employmentYearsExperience,omitempty"`
	EmploymentSector          string   `json:"employmentSector,omitempty"`
	EmploymentIndustry        string   `json:"employmentIndustry,omitempty"`
	EmploymentJobTitle        string   `json:"employmentJobTitle,omitempty"`
	LinkedInProfile           string   `json:"linkedInProfile,omitempty"`
	AvailabilityToParticipate string   `json:"availabilityToParticipate,omitempty"`
	ParticipateHoursPerWeek   int      `json:"participateHoursPerWeek,omitempty"`
	Currency                  string   `json:"currency,omitempty"`
}

// User is one account record. Email is stored lowercased and trimmed and is
// unique across all accounts. Role never changes after creation: no code path
// writes it outside CreateUser.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	FirstName    string `gorm:"not null" json:"firstName"`
	LastName     string `gorm:"not null" json:"lastName"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `json:"-"`
	Role         string `gorm:"type:varchar(20);not null" json:"role"`

	Gender             string     `gorm:"type:varchar(20)" json:"gender,omitempty"`
	DateOfBirth        *time.Time `json:"dateOfBirth,omitempty"`
	IdentityDocument   string     `json:"identityDocument,omitempty"`
	SupportingDocument string     `json:"supportingDocument,omitempty"`
	PhoneNumber        string     `json:"phoneNumber,omitempty"`

	IsVerified                 bool       `gorm:"not null;default:false" json:"isVerified"`
	VerificationToken          string     `json:"-"`
	VerificationTokenExpiresAt *time.Time `json:"-"`

	ProfileCompleted bool `gorm:"not null;default:false" json:"profileCompleted"`

	ContributorProfile *ContributorProfile `gorm:"serializer:json" json:"contributorProfile,omitempty"`
	ParticipantProfile *ParticipantProfile `gorm:"serializer:json" json:"participantProfile,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// plaintext password staged for the repository's prepare-for-write step;
	// never persisted, never serialized
	pendingPassword string
	passwordDirty   bool
}

// SetPassword stages a plaintext password for hashing on the next write.
// The hash is computed once, by the store's save path, so unrelated saves
// never re-hash an already hashed value.
func (u *User) SetPassword(plain string) {
	u.pendingPassword = plain
	u.passwordDirty = true
}

// PendingPassword reports the staged plaintext, if any.
func (u *User) PendingPassword() (string, bool) {
	return u.pendingPassword, u.passwordDirty
}

// ApplyPasswordHash stores the computed digest and clears the staged plaintext.
func (u *User) ApplyPasswordHash(hash string) {
	u.PasswordHash = hash
	u.pendingPassword = ""
	u.passwordDirty = false
}

// IssueVerificationToken generates a new opaque verification token, stores
// only its SHA-256 hash plus expiry on the user, and returns the raw value
// for the notification email. Re-issuing overwrites any pending token.
func (u *User) IssueVerificationToken(ttl time.Duration) (string, error) {
	token, err := utils.RandomToken(32)
	if err != nil {
		return "", err
	}
	exp := time.Now().Add(ttl)
	u.VerificationToken = utils.Sha256Hex(token)
	u.VerificationTokenExpiresAt = &exp
	return token, nil
}

// VerificationTokenValid reports whether a pending token exists and its
// expiry is strictly in the future.
func (u *User) VerificationTokenValid(now time.Time) bool {
	return u.VerificationToken != "" &&
		u.VerificationTokenExpiresAt != nil &&
		now.Before(*u.VerificationTokenExpiresAt)
}

// ConsumeVerification marks the account verified and clears both token
// fields. Callers persist the result in a single save so there is no window
// where a consumed token could be replayed.
func (u *User) ConsumeVerification() {
	u.IsVerified = true
	u.VerificationToken = ""
	u.VerificationTokenExpiresAt = nil
}
