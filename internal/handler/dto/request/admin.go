package request

import (
	"github.com/shopspring/decimal"

	"minute-market/internal/usecase/commands"
)

type MintRequest struct {
	Quantity int             `json:"quantity" binding:"required,min=1,max=100000"`
	Price    decimal.Decimal `json:"price" binding:"required"`
	Year     int             `json:"year" binding:"omitempty,min=2000,max=9999"`
}

type SetPriceRequest struct {
	Price           decimal.Decimal `json:"price" binding:"required"`
	RepriceTreasury bool            `json:"reprice_treasury"`
}

type CreateClientRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"omitempty,min=8,max=128"`
	Username string `json:"username" binding:"omitempty,max=64"`
}

func (r *CreateClientRequest) ToCommand() commands.CreateClientRequest {
	return commands.CreateClientRequest{
		Email:    r.Email,
		Password: r.Password,
		Username: r.Username,
	}
}
