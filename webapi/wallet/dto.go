package wallet

import (
	walletsvc "github.com/amirasaad/networth/pkg/service/wallet"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceInput is one currency balance in a wallet request.
type BalanceInput struct {
	CurrencyID uuid.UUID       `json:"currency_id" validate:"required"`
	Amount     decimal.Decimal `json:"amount"`
}

// CreateWalletInput represents the request body for creating a wallet.
type CreateWalletInput struct {
	Name     string         `json:"name" validate:"required,max=100"`
	Type     string         `json:"type" validate:"required,oneof=fiat crypto"`
	Balances []BalanceInput `json:"balances" validate:"dive"`
}

func (in *CreateWalletInput) balances() []walletsvc.BalanceInput {
	out := make([]walletsvc.BalanceInput, 0, len(in.Balances))
	for _, b := range in.Balances {
		out = append(out, walletsvc.BalanceInput{CurrencyID: b.CurrencyID, Amount: b.Amount})
	}
	return out
}

// UpdateWalletInput represents the request body for renaming or retyping a wallet.
type UpdateWalletInput struct {
	Name *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Type *string `json:"type,omitempty" validate:"omitempty,oneof=fiat crypto"`
}

// AmountInput represents the request body for setting a balance amount.
type AmountInput struct {
	Amount decimal.Decimal `json:"amount"`
}
