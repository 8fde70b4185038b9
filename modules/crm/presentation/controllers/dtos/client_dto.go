package dtos

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerflow/practice-sdk/modules/crm/domain/aggregates/client"
)

type CreateClientDTO struct {
	Name          string `json:"name" validate:"required,min=1,max=255"`
	CompanyNumber string `json:"companyNumber" validate:"omitempty,max=32"`
	Email         string `json:"email" validate:"omitempty,email"`
	AnnualFee     string `json:"annualFee" validate:"omitempty,numeric"`
}

type UpdateClientDTO struct {
	Name      string `json:"name" validate:"required,min=1,max=255"`
	Email     string `json:"email" validate:"omitempty,email"`
	AnnualFee string `json:"annualFee" validate:"omitempty,numeric"`
	Active    *bool  `json:"active"`
}

type EnrichClientDTO struct {
	CompanyNumber string `json:"companyNumber" validate:"required,max=32"`
}

type ClientResponse struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	CompanyNumber     string     `json:"companyNumber,omitempty"`
	Email             string     `json:"email,omitempty"`
	AnnualFee         string     `json:"annualFee"`
	Active            bool       `json:"active"`
	IncorporatedAt    *time.Time `json:"incorporatedAt,omitempty"`
	RegisteredAddress string     `json:"registeredAddress,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func NewClientResponse(c client.Client) ClientResponse {
	return ClientResponse{
		ID:                c.ID().String(),
		Name:              c.Name(),
		CompanyNumber:     c.CompanyNumber(),
		Email:             c.Email(),
		AnnualFee:         c.AnnualFee().StringFixed(2),
		Active:            c.Active(),
		IncorporatedAt:    c.IncorporatedAt(),
		RegisteredAddress: c.RegisteredAddress(),
		CreatedAt:         c.CreatedAt(),
		UpdatedAt:         c.UpdatedAt(),
	}
}

// ParseFee converts the DTO's string fee into a decimal, defaulting to zero
// when the field was omitted.
func ParseFee(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}
