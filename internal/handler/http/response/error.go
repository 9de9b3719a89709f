package response

import (
	"errors"
	"net/http"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/auth"
	"github.com/beginal/jeongsan-admin-sub000/internal/domain/branch"
	"github.com/beginal/jeongsan-admin-sub000/internal/domain/promotion"
	"github.com/beginal/jeongsan-admin-sub000/internal/domain/rider"
	"github.com/beginal/jeongsan-admin-sub000/internal/domain/settlement"
	"github.com/beginal/jeongsan-admin-sub000/internal/domain/user"
	"github.com/beginal/jeongsan-admin-sub000/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrRefreshTokenCookieNotFound),
		errors.Is(err, auth.ErrRefreshTokenCookieEmpty):
		Unauthorized(w, "Refresh token cookie missing")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Branch domain errors
	case errors.Is(err, branch.ErrBranchNotFound):
		NotFound(w, "Branch not found")
	case errors.Is(err, branch.ErrBranchNameExists):
		Conflict(w, "Branch with this name already exists")

	// Rider domain errors
	case errors.Is(err, rider.ErrRiderNotFound):
		NotFound(w, "Rider not found")
	case errors.Is(err, rider.ErrLicenseIDExists):
		Conflict(w, "License id already registered")
	case errors.Is(err, rider.ErrBranchNotFound):
		NotFound(w, "Branch not found")

	// Promotion domain errors
	case errors.Is(err, promotion.ErrPromotionNotFound):
		NotFound(w, "Promotion not found")
	case errors.Is(err, promotion.ErrAssignmentNotFound):
		NotFound(w, "Promotion assignment not found")
	case errors.Is(err, promotion.ErrUnknownType),
		errors.Is(err, promotion.ErrMissingThreshold),
		errors.Is(err, promotion.ErrMissingAmount),
		errors.Is(err, promotion.ErrMissingTiers),
		errors.Is(err, promotion.ErrInvalidUnitSize):
		BadRequest(w, err.Error(), nil)

	// Settlement domain errors
	case errors.Is(err, settlement.ErrParseFailed):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, settlement.ErrNoUploads):
		BadRequest(w, "At least one file is required", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
