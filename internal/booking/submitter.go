package booking

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/metinatakli/cinex-web/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/metinatakli/cinex-web/internal/booking"

// SubmissionDurationMetric is the histogram of submission latency.
const SubmissionDurationMetric = "booking.submission.duration"

// RoomInvalidator drops cached copies of a room once its availability is
// known to have changed.
type RoomInvalidator interface {
	Invalidate(ctx context.Context, roomID int) error
}

// Submitter sends the selection of a view to the reservation backend.
type Submitter struct {
	gateway         domain.ReservationGateway
	invalidator     RoomInvalidator
	logger          *slog.Logger
	idempotencyKeys bool

	tracer      trace.Tracer
	submissions metric.Int64Counter
	duration    metric.Float64Histogram
}

type SubmitterOption func(*Submitter)

func WithInvalidator(inv RoomInvalidator) SubmitterOption {
	return func(s *Submitter) {
		s.invalidator = inv
	}
}

func WithLogger(logger *slog.Logger) SubmitterOption {
	return func(s *Submitter) {
		s.logger = logger
	}
}

// WithIdempotencyKeys attaches an Idempotency-Key to every draft. Resending
// an unchanged draft after a failure reuses the key.
func WithIdempotencyKeys(enabled bool) SubmitterOption {
	return func(s *Submitter) {
		s.idempotencyKeys = enabled
	}
}

func NewSubmitter(gateway domain.ReservationGateway, opts ...SubmitterOption) *Submitter {
	s := &Submitter{
		gateway: gateway,
		logger:  slog.New(slog.DiscardHandler),
		tracer:  otel.Tracer(instrumentationName),
	}

	for _, opt := range opts {
		opt(s)
	}

	meter := otel.Meter(instrumentationName)

	counter, err := meter.Int64Counter(
		"booking.submissions",
		metric.WithDescription("Reservation submissions by outcome"),
	)
	if err != nil {
		s.logger.Error("failed to create submissions counter", "error", err)
	}
	s.submissions = counter

	histogram, err := meter.Float64Histogram(
		SubmissionDurationMetric,
		metric.WithDescription("Time from dispatching a reservation to its answer, payment included"),
		metric.WithUnit("s"),
	)
	if err != nil {
		s.logger.Error("failed to create submission duration histogram", "error", err)
	}
	s.duration = histogram

	return s
}

// PreSubmitFunc runs once the draft is fixed and before it is sent. The view
// is locked against changes while it runs; an error aborts the submission.
type PreSubmitFunc func(ctx context.Context, draft domain.ReservationDraft) error

// Submit dispatches the view's current selection once and reconciles the
// view with the answer. An empty selection fails without any request.
func (s *Submitter) Submit(ctx context.Context, cred domain.Credential, view *View) Outcome {
	return s.SubmitAfter(ctx, cred, view, nil)
}

// SubmitAfter is Submit with a step, such as taking payment, that must
// succeed before the reservation is requested.
func (s *Submitter) SubmitAfter(ctx context.Context, cred domain.Credential, view *View, before PreSubmitFunc) Outcome {
	ctx, span := s.tracer.Start(ctx, "booking.Submit")
	defer span.End()

	start := time.Now()

	t, err := view.begin(s.idempotencyKeys)
	if err != nil {
		outcome := Failure{Err: err, Message: failureMessage(err)}
		s.record(ctx, span, outcome, start)
		return outcome
	}

	span.SetAttributes(
		attribute.Int("room.id", t.draft.RoomID),
		attribute.String("reservation.date", domain.DateKey(t.draft.Date)),
		attribute.Int("reservation.seats", len(t.draft.Seats)),
	)

	var outcome Outcome

	if before != nil {
		err = before(ctx, t.draft)
	}

	if err != nil {
		outcome = classify(nil, err)
	} else {
		reservation, err := s.gateway.CreateReservation(ctx, cred, t.draft)
		outcome = classify(reservation, err)
	}

	current := view.finish(t, outcome)

	switch o := outcome.(type) {
	case Success:
		s.invalidate(ctx, t.draft.RoomID)
		s.logger.InfoContext(ctx, "reservation created",
			"room_id", t.draft.RoomID,
			"reservation_id", o.Reservation.ID,
			"seats", domain.SeatStrings(t.draft.Seats))
	case Conflict:
		s.invalidate(ctx, t.draft.RoomID)
		s.logger.InfoContext(ctx, "reservation conflict",
			"room_id", t.draft.RoomID,
			"seats", domain.SeatStrings(o.Seats))
	case Failure:
		s.logger.WarnContext(ctx, "reservation failed",
			"room_id", t.draft.RoomID,
			"retryable", o.Retryable,
			"error", o.Err)
	}

	if !current {
		s.logger.InfoContext(ctx, "reservation answer arrived after the view moved on",
			"room_id", t.draft.RoomID,
			"outcome", outcome.Kind())
	}

	s.record(ctx, span, outcome, start)

	return outcome
}

func (s *Submitter) invalidate(ctx context.Context, roomID int) {
	if s.invalidator == nil {
		return
	}

	err := s.invalidator.Invalidate(ctx, roomID)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate cached room", "room_id", roomID, "error", err)
	}
}

func (s *Submitter) record(ctx context.Context, span trace.Span, outcome Outcome, start time.Time) {
	span.SetAttributes(attribute.String("booking.outcome", outcome.Kind()))

	outcomeAttr := metric.WithAttributes(attribute.String("outcome", outcome.Kind()))

	if f, ok := outcome.(Failure); ok {
		span.SetStatus(codes.Error, f.Message)
	}

	if s.submissions != nil {
		s.submissions.Add(ctx, 1, outcomeAttr)
	}

	if s.duration != nil {
		s.duration.Record(ctx, time.Since(start).Seconds(), outcomeAttr)
	}
}

// rejection is implemented by backend errors that carry a message meant for
// the user.
type rejection interface {
	error
	UserMessage() string
}

func classify(reservation *domain.Reservation, err error) Outcome {
	if err == nil {
		return Success{Reservation: reservation}
	}

	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		return Conflict{Seats: conflict.Seats}
	}

	failure := Failure{Err: err, Message: failureMessage(err)}

	switch {
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrCredentialExpired):
		failure.Unauthorized = true
	case errors.Is(err, domain.ErrPaymentDeclined):
	case errors.Is(err, domain.ErrBackendRejected):
		var r rejection
		if errors.As(err, &r) && r.UserMessage() != "" {
			failure.Message = r.UserMessage()
		}
	default:
		failure.Retryable = true
	}

	return failure
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptySelection):
		return "please select at least one seat"
	case errors.Is(err, domain.ErrSubmissionInFlight):
		return "a reservation for this room is already being submitted"
	case errors.Is(err, domain.ErrViewClosed):
		return "this room view has been closed"
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrCredentialExpired):
		return "please sign in to make a reservation"
	case errors.Is(err, domain.ErrPaymentDeclined):
		return "the payment was declined"
	case errors.Is(err, domain.ErrBackendRejected):
		return "the reservation was rejected"
	default:
		return "failed to create reservation, please try again"
	}
}
