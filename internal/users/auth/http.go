// Copyright (c) 2026 Cliplet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/cliplet/internal/platform/middleware"
	requestutil "github.com/taibuivan/cliplet/internal/platform/request"
	"github.com/taibuivan/cliplet/internal/platform/respond"
	"github.com/taibuivan/cliplet/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the user lifecycle entry points
// (Registration, Login, Password Reset callbacks).
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register        : Creates a new account and signs it in.
//   - POST /login           : Authenticates and returns a JWT.
//   - POST /forgot-password : Issues a password reset token.
//   - POST /reset-password  : Consumes a reset token.
//   - GET  /verify          : Returns the authenticated caller's profile.
//   - POST /refresh         : Re-issues an access token.
//   - POST /logout          : Acknowledges client-side token disposal.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/reset-password", handler.resetPassword)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth())
		r.Get("/verify", handler.verify)
		r.Post("/refresh", handler.refresh)
		r.Post("/logout", handler.logout)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// # Handlers

/*
register handles the creation of a new user account.

POST /api/auth/register

Description: Validates input, checks for identity conflicts, persists a new
user profile, and returns a ready-to-use access token.

Request:
  - Body: registerRequest (Name, Email, Password)

Response:
  - 201: Session: Token and created user profile
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Email already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MinLen(FieldName, input.Name, NameMinLength).
		MaxLen(FieldName, input.Name, NameMaxLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email)
	ValidatePassword(validator, FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Register(request.Context(), RegisterInput{
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.TrimSpace(input.Email),
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, "User registered successfully", session)
}

/*
login authenticates a user and returns an access token.

POST /api/auth/login

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: Session: Token and user profile
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 401: ErrUnauthorized: Bad credentials or deactivated account
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    strings.TrimSpace(input.Email),
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Login successful", session)
}

/*
verify returns the authenticated caller's current profile.

GET /api/auth/verify

Response:
  - 200: User: Live account data
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) verify(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Verify(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Token is valid", map[string]any{FieldUser: user})
}

/*
refresh re-issues an access token for the authenticated caller.

POST /api/auth/refresh

Response:
  - 200: Session: Fresh token and user profile
  - 401: ErrUnauthorized: Missing token or deactivated account
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Refresh(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Token refreshed", session)
}

/*
logout acknowledges the end of a session.

POST /api/auth/logout

Description: Access tokens are stateless, so the server has nothing to
revoke; clients discard their token. The endpoint exists so clients have a
single, uniform sign-out call.

Response:
  - 200: Confirmation message
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, "Logged out successfully", nil)
}

/*
forgotPassword issues a password reset token.

POST /api/auth/forgot-password

Description: Always responds with a generic confirmation to prevent account
enumeration. The raw token is surfaced through development logs until the
mail delivery service ships.

Request:
  - Body: forgotPasswordRequest (Email)

Response:
  - 200: Generic confirmation
  - 400: ErrInvalidJSON: Bad input or validation failure
*/
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input forgotPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.authService.RequestPasswordReset(request.Context(), strings.TrimSpace(input.Email)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "If the email exists, a reset link has been sent", nil)
}

/*
resetPassword consumes a reset token and sets a new password.

POST /api/auth/reset-password

Request:
  - Body: resetPasswordRequest (Token, Password)

Response:
  - 200: Confirmation message
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 401: ErrUnauthorized: Unknown or expired token
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldToken, input.Token)
	ValidatePassword(validator, FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ResetPassword(request.Context(), input.Token, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Password has been reset successfully", nil)
}

// # Validation Helpers

// ValidatePassword applies the shared password policy to the given field.
func ValidatePassword(validator *validate.Validator, field, password string) {
	validator.Required(field, password).
		MinLen(field, password, PasswordMinLength).
		Custom(field, password != "" && !passwordIsComplex(password),
			"Password must contain at least one uppercase letter, one lowercase letter, and one number", nil)
}

// passwordIsComplex reports whether the password mixes upper, lower, and digits.
func passwordIsComplex(password string) bool {
	var hasUpper, hasLower, hasDigit bool

	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}

	return hasUpper && hasLower && hasDigit
}
