package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/beginal/jeongsan-admin-sub000/internal/domain/auth"
	"github.com/beginal/jeongsan-admin-sub000/internal/domain/user"
	"github.com/beginal/jeongsan-admin-sub000/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

type UserHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &userHandlerImpl{
		userService: userService,
	}
}

func userIDFromToken(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", auth.ErrInvalidToken
	}
	return userID, nil
}

// Create provisions a new account; the route is admin-gated.
func (h *userHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req user.CreateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create user decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.userService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Create user service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User created successfully", result)
}

// Me returns the calling user's profile.
func (h *userHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromToken(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ChangePassword rotates the calling user's password.
func (h *userHandlerImpl) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromToken(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req user.ChangePasswordRequest
	req.UserID = userID

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Change password decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.userService.ChangePassword(r.Context(), req); err != nil {
		slog.Error("Change password service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password has been changed successfully", nil)
}
