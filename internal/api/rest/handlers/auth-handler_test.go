package handlers_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askfield/user_service/internal/api/rest/handlers"
	"github.com/askfield/user_service/internal/domain"
	"github.com/askfield/user_service/internal/dto"
	"github.com/askfield/user_service/internal/helper"
	"github.com/askfield/user_service/internal/services"
)

// fakeService returns whatever the test configures; the handler only cares
// about mapping results to HTTP responses.
type fakeService struct {
	summary *dto.UserSummary
	token   string
	user    *domain.User
	err     error
}

func (s *fakeService) Register(dto.RegisterRequest) (*dto.UserSummary, error) {
	return s.summary, s.err
}

func (s *fakeService) VerifyEmail(string) error { return s.err }

func (s *fakeService) ResendVerification(string) error { return s.err }

func (s *fakeService) Login(dto.LoginRequest) (string, *dto.UserSummary, error) {
	return s.token, s.summary, s.err
}

func (s *fakeService) GetProfile(uint) (*domain.User, error) {
	if s.user == nil {
		return nil, services.ErrUserNotFound
	}
	return s.user, nil
}

func (s *fakeService) CompleteProfile(uint, dto.CompleteProfileRequest) (*dto.UserSummary, error) {
	return s.summary, s.err
}

func (s *fakeService) UpdateProfile(uint, dto.UpdateProfileRequest) (*dto.UserSummary, error) {
	return s.summary, s.err
}

func newApp(svc services.UserService) *fiber.App {
	app := fiber.New()
	handlers.NewAuthHandler(svc, helper.SetupAuth("test-secret", time.Hour, 4)).SetupRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	return resp.StatusCode, payload
}

func TestRegisterSuccess(t *testing.T) {
	svc := &fakeService{summary: &dto.UserSummary{ID: 1, Email: "a@x.com", Role: domain.RoleContributor}}
	app := newApp(svc)

	status, body := doJSON(t, app, "POST", "/api/auth/register",
		`{"firstName":"Ada","lastName":"Lovelace","email":"a@x.com","password":"secret1","role":"contributor"}`)

	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, true, body["success"])
	assert.NotNil(t, body["user"])
}

func TestRegisterConflict(t *testing.T) {
	app := newApp(&fakeService{err: services.ErrEmailTaken})

	status, body := doJSON(t, app, "POST", "/api/auth/register",
		`{"email":"a@x.com","password":"secret1"}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "already exists")
}

func TestRegisterValidationErrorsListed(t *testing.T) {
	verrs := services.ValidationErrors{Errs: validation.Errors{
		"email":    errors.New("must be a valid email address"),
		"password": errors.New("the length must be no less than 6"),
	}}
	app := newApp(&fakeService{err: verrs})

	status, body := doJSON(t, app, "POST", "/api/auth/register", `{}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	list, ok := body["errors"].([]any)
	require.True(t, ok)
	assert.Len(t, list, 2)
}

func TestLoginMissingFields(t *testing.T) {
	app := newApp(&fakeService{})
	status, body := doJSON(t, app, "POST", "/api/auth/login", `{"email":"a@x.com"}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
}

func TestLoginBadCredentials(t *testing.T) {
	app := newApp(&fakeService{err: services.ErrInvalidCredentials})
	status, body := doJSON(t, app, "POST", "/api/auth/login",
		`{"email":"a@x.com","password":"wrong"}`)

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password", body["message"])
}

func TestLoginUnverified(t *testing.T) {
	app := newApp(&fakeService{err: services.ErrNotVerified})
	status, body := doJSON(t, app, "POST", "/api/auth/login",
		`{"email":"a@x.com","password":"secret1"}`)

	assert.Equal(t, fiber.StatusForbidden, status)
	// the payload flag is what tells this apart from a role rejection
	assert.Equal(t, false, body["isVerified"])
}

func TestVerifyEmailInvalidToken(t *testing.T) {
	app := newApp(&fakeService{err: services.ErrInvalidToken})
	status, body := doJSON(t, app, "GET", "/api/auth/verify-email/deadbeef", "")

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])
}

func TestResendVerificationFailures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "unknown account", err: services.ErrUserNotFound, wantStatus: fiber.StatusNotFound},
		{name: "already verified", err: services.ErrAlreadyVerified, wantStatus: fiber.StatusBadRequest},
		{name: "send failure", err: services.ErrNotificationSend, wantStatus: fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp(&fakeService{err: tt.err})
			status, body := doJSON(t, app, "POST", "/api/auth/resend-verification",
				`{"email":"a@x.com"}`)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestMeRequiresToken(t *testing.T) {
	app := newApp(&fakeService{})
	status, _ := doJSON(t, app, "GET", "/api/auth/me", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestMeReturnsAccountWithoutPassword(t *testing.T) {
	auth := helper.SetupAuth("test-secret", time.Hour, 4)
	account := &domain.User{
		ID:           5,
		Email:        "a@x.com",
		Role:         domain.RoleContributor,
		PasswordHash: "$2a$10$secret",
		IsVerified:   true,
	}
	app := newApp(&fakeService{user: account})

	token, err := auth.GenerateToken(5)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
	assert.Contains(t, string(raw), "a@x.com")
}

func TestLogout(t *testing.T) {
	app := newApp(&fakeService{})
	status, body := doJSON(t, app, "POST", "/api/auth/logout", "")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])
}
