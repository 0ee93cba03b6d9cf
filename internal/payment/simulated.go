package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/metinatakli/cinex-web/internal/domain"
)

// SimulatedProcessor stands in for a card gateway. It waits for the
// configured delay and approves every well-formed charge.
type SimulatedProcessor struct {
	delay  time.Duration
	logger *slog.Logger
}

func NewSimulatedProcessor(delay time.Duration, logger *slog.Logger) *SimulatedProcessor {
	return &SimulatedProcessor{
		delay:  delay,
		logger: logger,
	}
}

func (p *SimulatedProcessor) Charge(ctx context.Context, details domain.PaymentDetails, quote domain.Quote) error {
	if quote.Seats <= 0 || !quote.Total.IsPositive() {
		return fmt.Errorf("%w: nothing to charge", domain.ErrPaymentDeclined)
	}

	timer := time.NewTimer(p.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	p.logger.InfoContext(ctx, "payment approved",
		"card", maskCard(details.CardNumber),
		"seats", quote.Seats,
		"total", quote.Total.StringFixed(2))

	return nil
}

func maskCard(number string) string {
	if len(number) <= 4 {
		return number
	}
	return "****" + number[len(number)-4:]
}
