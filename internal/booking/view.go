// Package booking drives the seat-selection workflow of one browser session:
// a View wraps the seat map of a loaded room and a Submitter turns the
// selection into a reservation and reconciles the backend's answer.
package booking

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/cinex-web/internal/domain"
	"github.com/metinatakli/cinex-web/internal/seatmap"
)

// View is the state behind one open room page. All methods are safe for
// concurrent use; mutations are serialized by the view's mutex.
type View struct {
	mu         sync.Mutex
	seats      *seatmap.Map
	generation uint64
	inFlight   bool
	closed     bool
	lastUsed   time.Time

	// idempotency key of the last unanswered draft, and the draft it belongs to
	pendingKey string
	pendingSig string
}

func NewView(room *domain.Room, date time.Time, opts ...seatmap.Option) *View {
	return &View{
		seats:    seatmap.New(room, date, opts...),
		lastUsed: time.Now(),
	}
}

// Snapshot is a consistent copy of the view for rendering.
type Snapshot struct {
	Room      domain.Room
	Date      time.Time
	Selection []domain.SeatID
	Reserved  []domain.SeatID
	InFlight  bool
}

// Status returns the seat's rendering status within the snapshot.
func (s Snapshot) Status(seat domain.SeatID) seatmap.SeatStatus {
	for _, r := range s.Reserved {
		if r == seat {
			return seatmap.StatusReserved
		}
	}
	for _, sel := range s.Selection {
		if sel == seat {
			return seatmap.StatusSelected
		}
	}
	return seatmap.StatusAvailable
}

// RoomID returns the id of the room the view was opened on.
func (v *View) RoomID() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.seats.Room().ID
}

func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.lastUsed = time.Now()

	return v.snapshotLocked()
}

func (v *View) snapshotLocked() Snapshot {
	return Snapshot{
		Room:      *v.seats.Room(),
		Date:      v.seats.Date(),
		Selection: v.seats.Selection(),
		Reserved:  v.seats.Reserved(),
		InFlight:  v.inFlight,
	}
}

// SetDate switches the showing date. Any submission still in flight becomes
// stale: its answer only records the seats it proves taken.
func (v *View) SetDate(date time.Time) Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.lastUsed = time.Now()
	v.generation++
	v.seats.SetDate(date)

	return v.snapshotLocked()
}

// ToggleSeat flips a seat. ErrSeatUnavailable is a notice for the user, not
// a failure; the snapshot is returned in every case.
func (v *View) ToggleSeat(seat domain.SeatID) (Snapshot, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.lastUsed = time.Now()

	if v.closed {
		return v.snapshotLocked(), domain.ErrViewClosed
	}

	if v.inFlight {
		return v.snapshotLocked(), domain.ErrSubmissionInFlight
	}

	_, err := v.seats.ToggleSeat(seat)

	return v.snapshotLocked(), err
}

// Close marks the view as abandoned. A pending submission completing later
// is ignored.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.closed = true
	v.generation++
}

func (v *View) idleSince(now time.Time) time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.inFlight {
		return 0
	}

	return now.Sub(v.lastUsed)
}

// ticket identifies a dispatched draft so its answer can be matched back to
// the view state it was built from.
type ticket struct {
	draft      domain.ReservationDraft
	generation uint64
}

func (v *View) begin(withKey bool) (ticket, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.lastUsed = time.Now()

	switch {
	case v.closed:
		return ticket{}, domain.ErrViewClosed
	case v.inFlight:
		return ticket{}, domain.ErrSubmissionInFlight
	}

	seats := v.seats.Selection()
	if len(seats) == 0 {
		return ticket{}, domain.ErrEmptySelection
	}

	draft := domain.ReservationDraft{
		RoomID: v.seats.Room().ID,
		Date:   v.seats.Date(),
		Seats:  seats,
	}

	if withKey {
		sig := draftSignature(draft)
		if sig != v.pendingSig {
			v.pendingSig = sig
			v.pendingKey = uuid.NewString()
		}
		draft.IdempotencyKey = v.pendingKey
	}

	v.inFlight = true

	return ticket{draft: draft, generation: v.generation}, nil
}

// finish reconciles the backend's answer. It reports false when the view
// moved on since dispatch. Seats the answer proves taken are still recorded
// for the draft's date on an open view, but the selection is left alone.
func (v *View) finish(t ticket, outcome Outcome) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.inFlight = false

	if v.closed {
		return false
	}

	current := v.generation == t.generation

	switch o := outcome.(type) {
	case Success:
		v.seats.MarkReserved(t.draft.Date, t.draft.Seats...)
		if current {
			v.seats.ClearSelection()
		}
		v.pendingKey, v.pendingSig = "", ""
	case Conflict:
		v.seats.MarkReserved(t.draft.Date, o.Seats...)
		v.pendingKey, v.pendingSig = "", ""
	}

	return current
}

func draftSignature(d domain.ReservationDraft) string {
	return domain.DateKey(d.Date) + "|" + strings.Join(domain.SeatStrings(d.Seats), ",")
}
