package intake

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jotpad/jotpad/internal/note"
)

// ErrSubmitInFlight is returned by Submit while an earlier submission has not
// settled yet. The in-flight guard is enforced here, not left to the caller's
// disabled-button convention.
var ErrSubmitInFlight = errors.New("a submission is already in flight")

// Controller owns one submission at a time: trim, validate, optimistic
// append, remote insert, reconcile. All failures settle into field errors
// readable through Errors; nothing is rethrown past this type.
type Controller struct {
	store Store

	mu           sync.Mutex
	pending      []PendingNote
	errs         note.FieldErrors
	draftTitle   string
	draftContent string
	submitting   bool
}

func NewController(store Store) *Controller {
	return &Controller{store: store}
}

// Submit runs the full pipeline for one draft. It blocks until the remote
// write settles (there is no timeout of its own; bound ctx to impose one).
//
// Validation failure records field errors and touches neither the store nor
// the pending list. A store failure rolls the optimistic entry back, records
// errors on both fields, and keeps the trimmed draft for a manual retry.
// Success clears the draft and errors. The only error returned is
// ErrSubmitInFlight.
func (c *Controller) Submit(ctx context.Context, titleRaw, contentRaw string) error {
	title := strings.TrimSpace(titleRaw)
	content := strings.TrimSpace(contentRaw)

	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	c.draftTitle, c.draftContent = title, content
	if errs := note.Validate(title, content); errs.Has() {
		c.errs = errs
		c.mu.Unlock()
		return nil
	}

	tok := uuid.NewString()
	c.errs = nil
	c.submitting = true
	c.pending = append(c.pending, PendingNote{
		Token:     tok,
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UnixMilli(),
	})
	c.mu.Unlock()

	// the optimistic entry above is visible to Project before this returns
	_, err := c.store.Insert(ctx, title, content)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.removePending(tok)
	c.submitting = false
	if err != nil {
		c.errs = note.FieldErrors{
			"title":   {err.Error()},
			"content": {"note was not saved, check your connection and try again"},
		}
		return nil
	}
	c.draftTitle, c.draftContent = "", ""
	c.errs = nil
	return nil
}

func (c *Controller) removePending(token string) {
	for i, p := range c.pending {
		if p.Token == token {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return
		}
	}
}

// Pending returns a copy of the in-flight optimistic notes.
func (c *Controller) Pending() []PendingNote {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]PendingNote(nil), c.pending...)
}

// Errors returns the field errors from the last settled submission, or nil.
func (c *Controller) Errors() note.FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errs
}

// Draft returns the trimmed title/content of the last submission attempt.
// It stays populated after a failed write so the user can retry.
func (c *Controller) Draft() (title, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draftTitle, c.draftContent
}

// Submitting reports whether a submission is currently in flight.
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Project merges a durable snapshot with this controller's pending notes.
func (c *Controller) Project(snap Snapshot) Projection {
	return Project(snap, c.Pending())
}
