package handler

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"course-compass/internal/domain"
	"course-compass/internal/dto"
	"course-compass/internal/logger"
	"course-compass/internal/middleware"
	"course-compass/internal/service"
	"course-compass/internal/validation"
)

const oauthStateCookieName = "oauthstate"

type AuthHandler struct {
	authService service.AuthService
	validator   *validation.Validator
}

func NewAuthHandler(authService service.AuthService, validator *validation.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
	}
}

// Register creates a password account.
// @Summary Register
// @Description Creates an account and returns a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "Account details"
// @Success 201 {object} dto.SuccessResponse{data=dto.AuthResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	resp, err := h.authService.Register(c.UserContext(), req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "User registered", resp)
}

// Login exchanges email and password for tokens.
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.SuccessResponse{data=dto.AuthResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	resp, err := h.authService.Login(c.UserContext(), req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Login successful", resp)
}

// RefreshToken generates new access and refresh tokens using a valid refresh token.
// @Summary Refresh JWT tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.SuccessResponse{data=dto.TokenResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := parseBody(c, h.validator, &req); err != nil {
		return err
	}
	tokens, err := h.authService.RefreshToken(c.UserContext(), req.RefreshToken)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Tokens refreshed", tokens)
}

// Me returns the authenticated user's profile.
// @Summary Current user
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.SuccessResponse{data=dto.UserProfileResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	profile, err := h.authService.GetProfile(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "", profile)
}

// GoogleLogin initiates the Google OAuth2 login flow.
// @Summary Initiate Google Login
// @Description Redirects the user to Google's OAuth2 consent page.
// @Tags auth
// @Success 307 {string} string "Redirects to Google"
// @Failure 404 {object} dto.ErrorResponse
// @Router /auth/google/login [get]
func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	if !h.authService.GoogleEnabled() {
		return domain.NewNotFoundError("Google login is not configured")
	}

	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return domain.NewInternalError("could not generate state for OAuth flow", err)
	}
	state := base64.URLEncoding.EncodeToString(b)

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookieName,
		Value:    state,
		Expires:  time.Now().Add(10 * time.Minute),
		HTTPOnly: true,
		Secure:   c.Secure(),
		SameSite: "Lax",
		Path:     "/",
	})
	return c.Redirect(h.authService.GetGoogleLoginURL(state), fiber.StatusTemporaryRedirect)
}

// GoogleCallback handles the callback from Google OAuth2.
// @Summary Google OAuth2 Callback
// @Description Verifies state, signs the user in and issues JWTs.
// @Tags auth
// @Produce json
// @Param code query string true "Authorization code from Google"
// @Param state query string true "State string for CSRF protection"
// @Success 200 {object} dto.SuccessResponse{data=dto.AuthResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	if !h.authService.GoogleEnabled() {
		return domain.NewNotFoundError("Google login is not configured")
	}

	code := c.Query("code")
	receivedState := c.Query("state")
	expectedState := c.Cookies(oauthStateCookieName)

	c.Cookie(&fiber.Cookie{
		Name:     oauthStateCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   c.Secure(),
		SameSite: "Lax",
		Path:     "/",
	})

	if code == "" {
		return domain.ValidationErrors{domain.NewMissingFieldError("code")}
	}
	if receivedState == "" || expectedState == "" || receivedState != expectedState {
		logger.Get().Warn("OAuth state mismatch", zap.Bool("cookie_present", expectedState != ""))
		return domain.NewInvalidInputError("OAuth state mismatch or missing")
	}

	resp, err := h.authService.HandleGoogleCallback(c.UserContext(), code)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "Login successful", resp)
}
