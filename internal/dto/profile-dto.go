package dto

import "github.com/askfield/user_service/internal/domain"

type CompleteProfileRequest struct {
	Gender      string `json:"gender"`
	DateOfBirth string `json:"dateOfBirth"`
	PhoneNumber string `json:"phoneNumber"`

	IdentityDocument   string `json:"identityDocument"`
	SupportingDocument string `json:"supportingDocument"`

	ContributorProfile *domain.ContributorProfile `json:"contributorProfile"`
	ParticipantProfile *domain.ParticipantProfile `json:"participantProfile"`
}

// UpdateProfileRequest is a partial update: only non-nil fields are applied,
// and only those on the allow-list; anything else in the payload is silently
// ignored. Role and email are deliberately absent.
type UpdateProfileRequest struct {
	FirstName   *string `json:"firstName"`
	LastName    *string `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
	Gender      *string `json:"gender"`

	ContributorProfile *domain.ContributorProfile `json:"contributorProfile"`
	ParticipantProfile *domain.ParticipantProfile `json:"participantProfile"`
}

// UserSummary is the client-facing account shape. Password and token hashes
// never appear here.
type UserSummary struct {
	ID               uint   `json:"id"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Role             string `json:"role"`
	Gender           string `json:"gender,omitempty"`
	PhoneNumber      string `json:"phoneNumber,omitempty"`
	IsVerified       bool   `json:"isVerified"`
	ProfileCompleted bool   `json:"profileCompleted"`

	ContributorProfile *domain.ContributorProfile `json:"contributorProfile,omitempty"`
	ParticipantProfile *domain.ParticipantProfile `json:"participantProfile,omitempty"`
}

func NewUserSummary(u *domain.User) *UserSummary {
	return &UserSummary{
		ID:                 u.ID,
		FirstName:          u.FirstName,
		LastName:           u.LastName,
		Email:              u.Email,
		Role:               u.Role,
		Gender:             u.Gender,
		PhoneNumber:        u.PhoneNumber,
		IsVerified:         u.IsVerified,
		ProfileCompleted:   u.ProfileCompleted,
		ContributorProfile: u.ContributorProfile,
		ParticipantProfile: u.ParticipantProfile,
	}
}
