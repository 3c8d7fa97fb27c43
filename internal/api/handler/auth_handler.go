package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/finvault/bank-gateway/internal/api/metrics"
	apimw "github.com/finvault/bank-gateway/internal/api/middleware"
	"github.com/finvault/bank-gateway/internal/core/domain"
	"github.com/finvault/bank-gateway/internal/core/ports"
)

// AuthHandler exposes login, profile, logout, and self-service signup.
type AuthHandler struct {
	authService  ports.AuthService
	secureCookie bool
}

func NewAuthHandler(authService ports.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

type loginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type loginResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
	User   string `json:"user"`
	Role   string `json:"role"`
}

type signupRequest struct {
	Username string `json:"uname" validate:"required"`
	Email    string `json:"mail" validate:"omitempty,email"`
	Role     string `json:"role" validate:"required,oneof=admin employee user"`
	Password string `json:"password" validate:"required"`
}

type profileResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	UserID   string `json:"userid,omitempty"`
}

// Login authenticates a user and issues the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("InvalidPayload", "invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("InvalidPayload", err.Error()))
	}

	token, user, expiresAt, err := h.authService.Login(c.Request().Context(), req.Identifier, req.Password, c.RealIP())
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginOutcome(err)).Inc()
		return h.loginError(c, err)
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	c.SetCookie(h.sessionCookie(token, expiresAt))

	return c.JSON(http.StatusOK, loginResponse{
		Status: "success",
		Token:  token,
		User:   user.Username,
		Role:   user.Role,
	})
}

func (h *AuthHandler) loginError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return c.JSON(http.StatusUnauthorized, errorBody("UserNotFound", "User not found"))
	case errors.Is(err, domain.ErrIncorrectPassword):
		return c.JSON(http.StatusUnauthorized, errorBody("IncorrectPassword", "Incorrect password"))
	case errors.Is(err, domain.ErrTooManyAttempts):
		return c.JSON(http.StatusTooManyRequests, errorBody("TooManyAttempts", "Too many login attempts, try again later"))
	}
	// Store and hashing failures fall through to the central handler so the
	// cause is logged without reaching the client.
	return err
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, domain.ErrIncorrectPassword):
		return "incorrect_password"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	default:
		return "error"
	}
}

// Profile returns the identity claims resolved from the session token.
//
// @Summary      Current profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  map[string]string
// @Router       /profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileResponse{
		Username: claims.Username,
		Role:     claims.Role,
		UserID:   claims.UserID,
	})
}

// Logout clears the session cookie. Tokens are self-contained, so there is
// no server-side state to tear down; outstanding copies stay valid until
// expiry.
//
// @Summary      Logout
// @Tags         auth
// @Success      200  {object}  map[string]string
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.clearedSessionCookie())
	return c.JSON(http.StatusOK, map[string]string{"status": "success"})
}

// Signup is the self-service enrollment path. The field names mirror the
// legacy signup form payload.
//
// @Summary      Self-service signup
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup details"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("InvalidPayload", "invalid payload"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("InvalidPayload", err.Error()))
	}

	if _, err := h.authService.Enroll(c.Request().Context(), req.Username, req.Email, req.Role, req.Password); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return c.JSON(http.StatusBadRequest, errorBody("UserExists", "User already exists"))
		}
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

func (h *AuthHandler) sessionCookie(token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     apimw.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt) / time.Second),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) clearedSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     apimw.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}
