package user

import "github.com/amirasaad/networth/pkg/dto"

// UpdateUserInput represents the request body for updating the current user.
// Omitted fields are left untouched.
type UpdateUserInput struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
}

func (in *UpdateUserInput) toUpdate() *dto.UserUpdate {
	return &dto.UserUpdate{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
	}
}
