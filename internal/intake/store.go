// Package intake is the client-side note pipeline: it validates a draft,
// shows it optimistically while the remote write is in flight, and merges
// pending drafts with the live note list for display.
package intake

import (
	"context"

	"github.com/jotpad/jotpad/internal/note"
)

// Store is the remote note store as seen by the submission controller.
type Store interface {
	// Insert persists a validated, trimmed title/content pair and returns the
	// store-assigned id. No validation happens on this side of the contract.
	Insert(ctx context.Context, title, content string) (string, error)
}

// Snapshot is one observation of the durable note list. Available is false
// while the initial fetch or a reconnect is pending; consumers must treat
// that as "loading", never as an empty list. An unavailable snapshot can
// arrive at any time, including after the list was already seen.
type Snapshot struct {
	Available bool
	Notes     []note.Note
}

// PendingNote is a locally synthesized, not-yet-durable note shown while its
// insert is in flight. Each submission gets its own token, which is also the
// removal key once the write settles.
type PendingNote struct {
	Token     string
	Title     string
	Content   string
	CreatedAt int64
}
