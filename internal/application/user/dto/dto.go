package dto

import (
	"time"

	"github.com/thinkartha/smileybox/internal/domain/user"
	"github.com/thinkartha/smileybox/internal/shared/mapper"
)

// UserDTO never carries the password hash.
type UserDTO struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	OrganizationID string    `json:"organization_id,omitempty"`
	Avatar         string    `json:"avatar"`
	HasPassword    bool      `json:"has_password"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToUserDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:             u.ID(),
		Name:           u.Name(),
		Email:          u.Email(),
		Role:           u.Role().String(),
		OrganizationID: u.OrganizationID(),
		Avatar:         u.Avatar(),
		HasPassword:    u.HasPassword(),
		CreatedAt:      u.CreatedAt(),
	}
}

func ToUserDTOList(users []*user.User) []*UserDTO {
	return mapper.MapSlice(users, ToUserDTO)
}
