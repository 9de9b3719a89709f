package user

import "context"

type UserService interface {
	// Create provisions a new account. Only admins may call this; there is
	// no self-registration.
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
}
