package booking

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Registry holds the open views of every session, keyed by session token and
// room.
type Registry struct {
	mu    sync.Mutex
	views map[string]*View
}

func NewRegistry() *Registry {
	return &Registry{
		views: make(map[string]*View),
	}
}

func viewKey(sessionID string, roomID int) string {
	return fmt.Sprintf("%s:%d", sessionID, roomID)
}

// Open installs view for the session's room, closing the view it replaces.
func (r *Registry) Open(sessionID string, roomID int, view *View) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := viewKey(sessionID, roomID)
	if prev, ok := r.views[key]; ok {
		prev.Close()
	}

	r.views[key] = view
}

func (r *Registry) Get(sessionID string, roomID int) (*View, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	view, ok := r.views[viewKey(sessionID, roomID)]
	return view, ok
}

func (r *Registry) Close(sessionID string, roomID int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := viewKey(sessionID, roomID)

	view, ok := r.views[key]
	if !ok {
		return false
	}

	view.Close()
	delete(r.views, key)

	return true
}

// CloseSession closes every view of a session and returns how many there
// were.
func (r *Registry) CloseSession(sessionID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefix := sessionID + ":"
	closed := 0

	for key, view := range r.views {
		if !strings.HasPrefix(key, prefix) {
			continue
		}

		view.Close()
		delete(r.views, key)
		closed++
	}

	return closed
}

// Rekey moves every view of oldID to newID. Sessions get a new token on
// login and must keep their open rooms.
func (r *Registry) Rekey(oldID, newID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefix := oldID + ":"
	moved := make(map[string]*View)

	for key, view := range r.views {
		roomPart, ok := strings.CutPrefix(key, prefix)
		if !ok {
			continue
		}

		delete(r.views, key)
		moved[newID+":"+roomPart] = view
	}

	for key, view := range moved {
		r.views[key] = view
	}

	return len(moved)
}

// Sweep closes views idle for longer than maxIdle and returns how many were
// removed. Views with a submission in flight are never idle.
func (r *Registry) Sweep(now time.Time, maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0

	for key, view := range r.views {
		if view.idleSince(now) > maxIdle {
			view.Close()
			delete(r.views, key)
			removed++
		}
	}

	return removed
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.views)
}
