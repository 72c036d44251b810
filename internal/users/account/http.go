// Copyright (c) 2026 Cliplet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/cliplet/internal/platform/middleware"
	requestutil "github.com/taibuivan/cliplet/internal/platform/request"
	"github.com/taibuivan/cliplet/internal/platform/respond"
	"github.com/taibuivan/cliplet/internal/platform/validate"
	"github.com/taibuivan/cliplet/internal/users/auth"
)

// # Definitions & Constructors

// Handler implements profile-management HTTP endpoints.
//
// Every route operates on the authenticated caller's own account; there is
// no cross-user surface here.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns a [chi.Router] configured with account-specific routes.
//
// # Endpoints
//   - GET    /profile         : Current profile.
//   - PUT    /profile         : Partial profile update.
//   - DELETE /profile         : Permanent account removal.
//   - PUT    /change-password : Credential rotation.
//   - GET    /stats           : Content statistics.
//   - PUT    /deactivate      : Disable the account.
//   - PUT    /reactivate      : Re-enable the account.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth())

	router.Get("/profile", handler.getProfile)
	router.Put("/profile", handler.updateProfile)
	router.Delete("/profile", handler.deleteProfile)
	router.Put("/change-password", handler.changePassword)
	router.Get("/stats", handler.getStats)
	router.Put("/deactivate", handler.deactivate)
	router.Put("/reactivate", handler.reactivate)

	return router
}

// # Request Payloads

type updateProfileRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// # Handlers

/*
getProfile returns the caller's own profile.

GET /api/users/profile

Response:
  - 200: User: Current profile data
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Profile retrieved", map[string]any{FieldUser: user})
}

/*
updateProfile applies a partial update to the caller's profile.

PUT /api/users/profile

Description: Only the fields present in the body are touched. An email
change re-checks uniqueness; a password change re-hashes.

Request:
  - Body: updateProfileRequest (Name?, Email?, Password?)

Response:
  - 200: User: Updated profile
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Email already in use
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateProfileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// Validate only the provided fields
	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(FieldName, *input.Name).
			MinLen(FieldName, *input.Name, auth.NameMinLength).
			MaxLen(FieldName, *input.Name, auth.NameMaxLength)
	}
	if input.Email != nil {
		validator.Required(FieldEmail, *input.Email).
			Email(FieldEmail, *input.Email)
	}
	if input.Password != nil {
		auth.ValidatePassword(validator, auth.FieldPassword, *input.Password)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), userID, UpdateProfileInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Profile updated successfully", map[string]any{FieldUser: user})
}

/*
deleteProfile permanently removes the caller's account.

DELETE /api/users/profile

Description: Irreversible. All owned segments are removed alongside the
account.

Response:
  - 200: Confirmation message
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) deleteProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.DeleteAccount(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Account deleted successfully", nil)
}

/*
changePassword rotates the caller's password.

PUT /api/users/change-password

Request:
  - Body: changePasswordRequest (CurrentPassword, NewPassword)

Response:
  - 200: Confirmation message
  - 400: ErrInvalidCredentials: Current password incorrect, or weak new password
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldCurrentPassword, input.CurrentPassword)
	auth.ValidatePassword(validator, FieldNewPassword, input.NewPassword)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.ChangePassword(request.Context(), userID, input.CurrentPassword, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Password changed successfully", nil)
}

/*
getStats returns the caller's aggregated content statistics.

GET /api/users/stats

Response:
  - 200: Stats: Segment counts, views, likes, duration, membership date
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) getStats(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats, err := handler.accountService.GetStats(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Stats retrieved", map[string]any{FieldStats: stats})
}

/*
deactivate disables the caller's account.

PUT /api/users/deactivate

Description: The account and its content survive, but sign-in is blocked
until the account is reactivated.

Response:
  - 200: Confirmation message
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) deactivate(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.Deactivate(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Account deactivated", nil)
}

/*
reactivate re-enables the caller's account.

PUT /api/users/reactivate

Response:
  - 200: Confirmation message
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) reactivate(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.Reactivate(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, "Account reactivated", nil)
}
