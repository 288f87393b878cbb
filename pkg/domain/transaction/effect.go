package transaction

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Effect is a signed change to one (wallet, currency) balance.
type Effect struct {
	WalletID   uuid.UUID
	CurrencyID uuid.UUID
	Amount     decimal.Decimal
}

// Reverse negates every effect.
func Reverse(effects []Effect) []Effect {
	out := make([]Effect, len(effects))
	for i, e := range effects {
		out[i] = Effect{WalletID: e.WalletID, CurrencyID: e.CurrencyID, Amount: e.Amount.Neg()}
	}
	return out
}

// Net folds effect lists into one effect per (wallet, currency), keeping
// first-seen order and dropping pairs whose changes cancel out.
func Net(groups ...[]Effect) []Effect {
	type key struct{ wallet, currency uuid.UUID }
	index := make(map[key]int)
	var out []Effect
	for _, g := range groups {
		for _, e := range g {
			k := key{e.WalletID, e.CurrencyID}
			if i, ok := index[k]; ok {
				out[i].Amount = out[i].Amount.Add(e.Amount)
				continue
			}
			index[k] = len(out)
			out = append(out, e)
		}
	}
	kept := out[:0]
	for _, e := range out {
		if !e.Amount.IsZero() {
			kept = append(kept, e)
		}
	}
	return kept
}

// ByWallet groups effects per wallet in first-seen order.
func ByWallet(effects []Effect) ([]uuid.UUID, map[uuid.UUID][]Effect) {
	var order []uuid.UUID
	groups := make(map[uuid.UUID][]Effect)
	for _, e := range effects {
		if _, ok := groups[e.WalletID]; !ok {
			order = append(order, e.WalletID)
		}
		groups[e.WalletID] = append(groups[e.WalletID], e)
	}
	return order, groups
}
