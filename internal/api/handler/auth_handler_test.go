package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/blogworks/blog-api/internal/api/metrics"
	"github.com/blogworks/blog-api/internal/core/domain"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, username, password string) (*domain.User, error)
	loginFn  func(ctx context.Context, username, password string) (string, error)
}

func (s *stubAuthService) Signup(ctx context.Context, username, password string) (*domain.User, error) {
	return s.signupFn(ctx, username, password)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, error) {
	return s.loginFn(ctx, username, password)
}

func newAuthContext(t *testing.T, method, path, body string) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e, e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			if username != "alice" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &domain.User{ID: "user_1", Username: username, CreatedAt: time.Now().UTC()}, nil
		},
	}
	h := NewAuthHandler(stub)

	_, c, rec := newAuthContext(t, http.MethodPost, "/signup",
		`{"username":"alice","password":"secret","confirmpassword":"secret"}`)

	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["username"] != "alice" || user["id"] != "user_1" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password must never be echoed")
	}
	if resp["message"] != "Success!" {
		t.Fatalf("expected success message, got %v", resp["message"])
	}
}

func TestAuthHandler_Signup_CollectsAllViolations(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	// Short username AND mismatched confirmation: both violations must
	// come back together, no write attempted.
	_, c, rec := newAuthContext(t, http.MethodPost, "/signup",
		`{"username":"ab","password":"secret","confirmpassword":"other"}`)

	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp struct {
		Message string `json:"message"`
		Errors  []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Errors) != 2 {
		t.Fatalf("expected 2 violations, got %+v", resp.Errors)
	}
	if resp.Errors[0].Field != "username" || resp.Errors[1].Field != "confirmpassword" {
		t.Fatalf("unexpected violation order: %+v", resp.Errors)
	}
}

func TestAuthHandler_Signup_TrimsBeforeValidation(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	// "  ab  " trims to two characters and must fail min length.
	_, c, rec := newAuthContext(t, http.MethodPost, "/signup",
		`{"username":"  ab  ","password":"secret","confirmpassword":"secret"}`)

	_ = h.Signup(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Signup_UsernameTaken(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			return nil, domain.NewValidationError("username", "user already exists")
		},
	}
	h := NewAuthHandler(stub)

	_, c, rec := newAuthContext(t, http.MethodPost, "/signup",
		`{"username":"bob","password":"pass","confirmpassword":"pass"}`)

	_ = h.Signup(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"field":"username"`) {
		t.Fatalf("expected username violation, got %s", rec.Body.String())
	}
}

func TestAuthHandler_Signup_UsernameTakenCountsRejected(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			return nil, domain.NewValidationError("username", "user already exists")
		},
	}
	h := NewAuthHandler(stub)

	rejectedBefore := testutil.ToFloat64(metrics.SignupsTotal.WithLabelValues("rejected"))
	errorBefore := testutil.ToFloat64(metrics.SignupsTotal.WithLabelValues("error"))

	_, c, _ := newAuthContext(t, http.MethodPost, "/signup",
		`{"username":"bob","password":"pass","confirmpassword":"pass"}`)
	_ = h.Signup(c)

	rejected := testutil.ToFloat64(metrics.SignupsTotal.WithLabelValues("rejected")) - rejectedBefore
	errored := testutil.ToFloat64(metrics.SignupsTotal.WithLabelValues("error")) - errorBefore
	if rejected != 1 {
		t.Fatalf("expected one rejected signup, got %v", rejected)
	}
	if errored != 0 {
		t.Fatalf("taken username must not count as error, got %v", errored)
	}
}

func TestAuthHandler_Signup_WriteRace(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub)

	_, c, rec := newAuthContext(t, http.MethodPost, "/signup",
		`{"username":"bob","password":"pass","confirmpassword":"pass"}`)

	_ = h.Signup(c)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Signup_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(ctx context.Context, username, password string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	e, c, rec := newAuthContext(t, http.MethodPost, "/signup", "not-json")

	if err := h.Signup(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			if username != "alice" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "token123", nil
		},
	}
	h := NewAuthHandler(stub)

	_, c, rec := newAuthContext(t, http.MethodPost, "/login",
		`{"username":"alice","password":"secret"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	_, c, rec := newAuthContext(t, http.MethodPost, "/login",
		`{"username":"alice","password":"bad"}`)

	_ = h.Login(c)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Throttled(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			return "", domain.ErrTooManyAttempts
		},
	}
	h := NewAuthHandler(stub)

	_, c, rec := newAuthContext(t, http.MethodPost, "/login",
		`{"username":"alice","password":"pass"}`)

	_ = h.Login(c)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	h := NewAuthHandler(stub)

	_, c, rec := newAuthContext(t, http.MethodPost, "/login", `{"username":"","password":""}`)

	_ = h.Login(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
