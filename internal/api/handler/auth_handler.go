package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/blogworks/blog-api/internal/api/metrics"
	"github.com/blogworks/blog-api/internal/core/domain"
	"github.com/blogworks/blog-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type signupRequest struct {
	Username        string `json:"username"        validate:"required,min=3"`
	Password        string `json:"password"        validate:"required"`
	ConfirmPassword string `json:"confirmpassword" validate:"required,eqfield=Password"`
}

// normalize trims whitespace before validation, so " ab " fails the
// min-length rule.
func (r *signupRequest) normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Password = strings.TrimSpace(r.Password)
	r.ConfirmPassword = strings.TrimSpace(r.ConfirmPassword)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *loginRequest) normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Password = strings.TrimSpace(r.Password)
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type signupResponse struct {
	User    userResponse `json:"user"`
	Message string       `json:"message"`
}

type loginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Signup registers a new user.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup details"
// @Success      201   {object}  signupResponse
// @Failure      400   {object}  errorBody
// @Failure      409   {object}  errorBody
// @Router       /signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		metrics.SignupsTotal.WithLabelValues("rejected").Inc()
		return respondError(c, "could not create user", err)
	}

	user, err := h.authService.Signup(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.SignupsTotal.WithLabelValues(signupResult(err)).Inc()
		return respondError(c, "could not create user", err)
	}

	metrics.SignupsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, signupResponse{
		User: userResponse{
			ID:        user.ID,
			Username:  user.Username,
			CreatedAt: user.CreatedAt,
		},
		Message: "Success!",
	})
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Failure      429   {object}  errorBody
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return respondError(c, "errors with login", err)
	}

	tkn, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginResult(err)).Inc()
		return respondError(c, "login failed", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: tkn, Message: "Success!"})
}

// signupResult picks the SignupsTotal label: validation failures from
// the service (taken username) count as rejections, everything else as
// errors.
func signupResult(err error) string {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return "rejected"
	}
	return "error"
}

func loginResult(err error) string {
	if errors.Is(err, domain.ErrTooManyAttempts) {
		return "throttled"
	}
	return "failed"
}
