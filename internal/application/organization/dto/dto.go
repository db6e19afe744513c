package dto

import (
	"time"

	"github.com/thinkartha/smileybox/internal/domain/organization"
	"github.com/thinkartha/smileybox/internal/shared/mapper"
)

type OrganizationDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Plan         string    `json:"plan"`
	ContactEmail string    `json:"contact_email"`
	CreatedAt    time.Time `json:"created_at"`
}

func ToOrganizationDTO(o *organization.Organization) *OrganizationDTO {
	if o == nil {
		return nil
	}
	return &OrganizationDTO{
		ID:           o.ID(),
		Name:         o.Name(),
		Plan:         o.Plan().String(),
		ContactEmail: o.ContactEmail(),
		CreatedAt:    o.CreatedAt(),
	}
}

func ToOrganizationDTOList(orgs []*organization.Organization) []*OrganizationDTO {
	return mapper.MapSlice(orgs, ToOrganizationDTO)
}
