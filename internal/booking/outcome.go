package booking

import "github.com/metinatakli/cinex-web/internal/domain"

// Outcome is the result of a submission: Success, Conflict or Failure.
type Outcome interface {
	outcome()
	// Kind names the outcome for logs and metrics.
	Kind() string
}

type Success struct {
	Reservation *domain.Reservation
}

// Conflict lists the seats another booking took first. They are now
// reserved in the view and gone from the selection.
type Conflict struct {
	Seats []domain.SeatID
}

// Failure leaves the view untouched. Retryable failures may be resubmitted
// by the user as-is.
type Failure struct {
	Err          error
	Message      string
	Retryable    bool
	Unauthorized bool
}

func (Success) outcome()  {}
func (Conflict) outcome() {}
func (Failure) outcome()  {}

func (Success) Kind() string  { return "success" }
func (Conflict) Kind() string { return "conflict" }
func (Failure) Kind() string  { return "failure" }
