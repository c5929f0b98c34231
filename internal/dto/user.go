package dto

import (
	"github.com/taskmgr/taskmanager-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID         uint64            `json:"id"`
	Email      string            `json:"email"`
	Name       string            `json:"name"`
	Profession models.Profession `json:"profession"`
}

// AuthResponse is returned by register and login: the bearer token alongside
// the user it identifies.
type AuthResponse struct {
	Token string `json:"token"`
	UserDTO
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Profession: user.Profession,
	}
}

// ToAuthResponse combines a user and their token into a login/register response
func ToAuthResponse(user models.User, token models.AuthToken) AuthResponse {
	return AuthResponse{
		Token:   token.Key,
		UserDTO: ToUserDTO(user),
	}
}
