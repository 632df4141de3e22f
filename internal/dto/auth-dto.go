package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/askfield/user_service/internal/domain"
)

const dateLayout = "2006-01-02"

type RegisterRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"dateOfBirth"`
	PhoneNumber string `json:"phoneNumber"`

	IdentityDocument   string `json:"identityDocument"`
	SupportingDocument string `json:"supportingDocument"`

	ContributorProfile *domain.ContributorProfile `json:"contributorProfile"`
	ParticipantProfile *domain.ParticipantProfile `json:"participantProfile"`
}

// Validate reports every failing field, not just the first. The
// requireDemographics flag selects the stage-1 variant: with it set, gender,
// date of birth and phone number become required at signup; without it they
// are optional until profile completion. The two required-field sets are
// never merged.
func (r RegisterRequest) Validate(requireDemographics bool) error {
	genderRules := []validation.Rule{
		validation.In(domain.GenderMale, domain.GenderFemale, domain.GenderOther, domain.GenderPreferNotToSay),
	}
	dobRules := []validation.Rule{validation.Date(dateLayout)}
	phoneRules := []validation.Rule{}
	if requireDemographics {
		genderRules = append([]validation.Rule{validation.Required}, genderRules...)
		dobRules = append([]validation.Rule{validation.Required}, dobRules...)
		phoneRules = append(phoneRules, validation.Required)
	}

	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required),
		validation.Field(&r.LastName, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 0)),
		validation.Field(&r.Role, validation.Required, validation.In(domain.RoleContributor, domain.RoleParticipant)),
		validation.Field(&r.Gender, genderRules...),
		validation.Field(&r.DateOfBirth, dobRules...),
		validation.Field(&r.PhoneNumber, phoneRules...),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ResendVerificationRequest struct {
	Email string `json:"email"`
}
