package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

type PaymentDetails struct {
	CardNumber string
	CardHolder string
	Expiry     string
	CVV        string
}

// Quote is the amount charged for a selection.
type Quote struct {
	Seats     int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

func NewQuote(seats int, unitPrice decimal.Decimal) Quote {
	return Quote{
		Seats:     seats,
		UnitPrice: unitPrice,
		Total:     unitPrice.Mul(decimal.NewFromInt(int64(seats))),
	}
}

type PaymentProcessor interface {
	Charge(ctx context.Context, details PaymentDetails, quote Quote) error
}
