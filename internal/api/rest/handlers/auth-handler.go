package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/askfield/user_service/internal/api/rest/middleware"
	"github.com/askfield/user_service/internal/domain"
	"github.com/askfield/user_service/internal/dto"
	"github.com/askfield/user_service/internal/helper"
	"github.com/askfield/user_service/internal/helper/utils"
	"github.com/askfield/user_service/internal/services"
)

type AuthHandler struct {
	svc  services.UserService
	auth helper.Auth
}

func NewAuthHandler(svc services.UserService, auth helper.Auth) *AuthHandler {
	return &AuthHandler{svc: svc, auth: auth}
}

func (h *AuthHandler) SetupRoutes(app *fiber.App) {
	api := app.Group("/api/auth")

	// Public
	api.Post("/register", h.Register)
	api.Post("/login", h.Login)
	api.Post("/logout", h.Logout)
	api.Get("/verify-email/:token", h.VerifyEmail)
	api.Post("/resend-verification", h.ResendVerification)

	// Protected
	authmw := middleware.AuthMiddleware(h.auth, h.svc)
	api.Get("/me", authmw, h.Me)
	api.Put("/complete-profile", authmw, h.CompleteProfile)
	api.Put("/update-profile", authmw, h.UpdateProfile)
}

func (h *AuthHandler) Register(ctx *fiber.Ctx) error {
	var requestBody dto.RegisterRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	summary, err := h.svc.Register(requestBody)
	if err != nil {
		return h.respondServiceError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusCreated,
		"Registration successful! Please check your email to verify your account.",
		fiber.Map{"user": summary})
}

func (h *AuthHandler) VerifyEmail(ctx *fiber.Ctx) error {
	if err := h.svc.VerifyEmail(ctx.Params("token")); err != nil {
		return h.respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK,
		"Email verified successfully! You can now access all features.", nil)
}

func (h *AuthHandler) ResendVerification(ctx *fiber.Ctx) error {
	var requestBody dto.ResendVerificationRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Email == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide a valid email")
	}

	if err := h.svc.ResendVerification(requestBody.Email); err != nil {
		return h.respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK,
		"Verification email sent! Please check your inbox.", nil)
}

func (h *AuthHandler) Login(ctx *fiber.Ctx) error {
	var requestBody dto.LoginRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide email and password")
	}
	if requestBody.Email == "" || requestBody.Password == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide email and password")
	}

	token, summary, err := h.svc.Login(requestBody)
	if err != nil {
		return h.respondServiceError(ctx, err)
	}

	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Login successful", fiber.Map{
		"token": token,
		"user":  summary,
	})
}

func (h *AuthHandler) Me(ctx *fiber.Ctx) error {
	user, ok := ctx.Locals("user").(*domain.User)
	if !ok || user == nil {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Not authorized, no token provided")
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "OK", fiber.Map{"user": user})
}

func (h *AuthHandler) CompleteProfile(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("userID").(uint)
	if !ok || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Not authorized, no token provided")
	}

	var requestBody dto.CompleteProfileRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	summary, err := h.svc.CompleteProfile(userID, requestBody)
	if err != nil {
		return h.respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Profile completed successfully", fiber.Map{
		"user": summary,
	})
}

func (h *AuthHandler) UpdateProfile(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("userID").(uint)
	if !ok || userID == 0 {
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Not authorized, no token provided")
	}

	var requestBody dto.UpdateProfileRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "Please provide valid inputs")
	}

	summary, err := h.svc.UpdateProfile(userID, requestBody)
	if err != nil {
		return h.respondServiceError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, "Profile updated successfully", fiber.Map{
		"user": summary,
	})
}

// Logout is stateless: tokens carry their own expiry and there is no
// server-side revocation list, so this only tells the client to drop its copy.
func (h *AuthHandler) Logout(ctx *fiber.Ctx) error {
	return utils.ResponseSuccess(ctx, fiber.StatusOK,
		"Logout successful. Please delete your token on the client side.", nil)
}

// respondServiceError maps service errors onto the HTTP error taxonomy.
// Anything unrecognized is logged server-side and surfaces as a generic 500.
func (h *AuthHandler) respondServiceError(ctx *fiber.Ctx, err error) error {
	var verrs services.ValidationErrors
	if errors.As(err, &verrs) {
		return utils.ResponseErrorWith(ctx, fiber.StatusBadRequest, "Validation failed", fiber.Map{
			"errors": verrs.Messages(),
		})
	}

	switch {
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrAlreadyVerified):
		return utils.ResponseError(ctx, fiber.StatusBadRequest, err.Error())

	case errors.Is(err, services.ErrInvalidCredentials):
		return utils.ResponseError(ctx, fiber.StatusUnauthorized, "Invalid email or password")

	case errors.Is(err, services.ErrNotVerified):
		// isVerified:false lets the client tell this 403 apart from a role
		// rejection and route to the verification screen
		return utils.ResponseErrorWith(ctx, fiber.StatusForbidden,
			"Please verify your email before logging in. Check your inbox for the verification link.",
			fiber.Map{"isVerified": false})

	case errors.Is(err, services.ErrUserNotFound):
		return utils.ResponseError(ctx, fiber.StatusNotFound, "User not found")

	case errors.Is(err, services.ErrNotificationSend):
		return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
	}

	log.Printf("unexpected service error: %v", err)
	return utils.ResponseError(ctx, fiber.StatusInternalServerError, "Something went wrong")
}
