// Package feed fans out note-list snapshots to live subscribers. Every
// successful insert publishes the full refreshed list; subscribers that
// cannot keep up are skipped rather than blocking the writer.
package feed

import (
	"sync"

	"github.com/jotpad/jotpad/internal/note"
)

type Feed struct {
	mu   sync.Mutex
	subs map[int]chan []*note.Note
	next int
}

func New() *Feed {
	return &Feed{subs: make(map[int]chan []*note.Note)}
}

// Subscribe registers a listener and returns its channel plus a cancel
// function. The channel is buffered; a subscriber that falls behind misses
// intermediate snapshots but always eventually sees the latest one published
// after it drains. Cancel closes the channel and is safe to call once.
func (f *Feed) Subscribe() (<-chan []*note.Note, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.next
	f.next++
	ch := make(chan []*note.Note, 8)
	f.subs[id] = ch

	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if c, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// Publish delivers the snapshot to every subscriber without blocking.
func (f *Feed) Publish(notes []*note.Note) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs {
		select {
		case ch <- notes:
		default:
			// drop on slow subscriber
		}
	}
}

// Subscribers returns the current listener count.
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
