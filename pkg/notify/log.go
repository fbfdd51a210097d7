// Package notify holds the append-only notification log a match writes its events to.
//
// The log has its own lock. Readers never touch the game state lock, and a reader blocked in
// Wait never holds any lock at all: it waits on a channel that is closed by the next Append.
package notify

import (
	"context"
	"sync"
)

// Entry is a single notification in the log
// If VisibleTo is empty, every viewer sees Public. Otherwise the listed players see Private.
type Entry[E any] struct {
	ID        int     `json:"id"`
	VisibleTo []int64 `json:"visibleTo"`
	Private   E       `json:"private"`
	Public    E       `json:"public"`
}

// PublicEntry returns an entry that every viewer sees the same way
func PublicEntry[E any](event E) Entry[E] {
	return Entry[E]{Private: event, Public: event}
}

// PrivateEntry returns an entry where the players in visibleTo see private and everybody else sees public
func PrivateEntry[E any](visibleTo []int64, private, public E) Entry[E] {
	return Entry[E]{VisibleTo: visibleTo, Private: private, Public: public}
}

// View returns the event the viewer is allowed to see
func (e Entry[E]) View(viewer int64) E {
	for _, id := range e.VisibleTo {
		if id == viewer {
			return e.Private
		}
	}

	return e.Public
}

// Notification is an entry as seen by one viewer
type Notification[E any] struct {
	ID    int `json:"id"`
	Event E   `json:"event"`
}

// Log is an append-only sequence of entries
type Log[E any] struct {
	lock    sync.Mutex
	entries []Entry[E]

	// changed is closed, then replaced, every time entries are appended
	changed chan struct{}
}

// NewLog returns an empty log
func NewLog[E any]() *Log[E] {
	return &Log[E]{
		entries: make([]Entry[E], 0),
		changed: make(chan struct{}),
	}
}

// Append stores the entries in order and wakes every waiting reader
// IDs are assigned here; any ID set by the caller is overwritten. Returns the ID of the last entry.
func (l *Log[E]) Append(entries ...Entry[E]) int {
	l.lock.Lock()
	defer l.lock.Unlock()

	if len(entries) == 0 {
		return len(l.entries) - 1
	}

	for _, entry := range entries {
		entry.ID = len(l.entries)
		l.entries = append(l.entries, entry)
	}

	close(l.changed)
	l.changed = make(chan struct{})

	return len(l.entries) - 1
}

// Len returns the number of entries in the log, which is also the ID of the next entry
func (l *Log[E]) Len() int {
	l.lock.Lock()
	defer l.lock.Unlock()

	return len(l.entries)
}

// Entries returns a copy of every entry, private parts included
func (l *Log[E]) Entries() []Entry[E] {
	l.lock.Lock()
	defer l.lock.Unlock()

	return append([]Entry[E]{}, l.entries...)
}

// Read returns every notification with an ID >= since as seen by viewer
// The result is empty, never nil, if there's nothing new.
func (l *Log[E]) Read(viewer int64, since int) []Notification[E] {
	l.lock.Lock()
	defer l.lock.Unlock()

	notifications, _ := l.read(viewer, since)
	return notifications
}

// must hold the lock
func (l *Log[E]) read(viewer int64, since int) ([]Notification[E], <-chan struct{}) {
	if since < 0 {
		since = 0
	}

	notifications := make([]Notification[E], 0)
	for i := since; i < len(l.entries); i++ {
		notifications = append(notifications, Notification[E]{
			ID:    l.entries[i].ID,
			Event: l.entries[i].View(viewer),
		})
	}

	return notifications, l.changed
}

// Wait blocks until at least one entry with an ID >= since exists, then returns the same
// result as Read. If ctx is done first, the context's error is returned.
func (l *Log[E]) Wait(ctx context.Context, viewer int64, since int) ([]Notification[E], error) {
	for {
		l.lock.Lock()
		notifications, changed := l.read(viewer, since)
		l.lock.Unlock()

		if len(notifications) > 0 {
			return notifications, nil
		}

		select {
		case <-changed:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
