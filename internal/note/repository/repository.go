package repository

import (
	"context"

	"github.com/jotpad/jotpad/internal/note"
)

// Repository is the durable store contract the note service writes to and
// reads from. Implementations assign the note ID and ReceivedAt on insert.
// List returns notes in the store's natural order (insertion order for the
// in-memory repo).
type Repository interface {
	Insert(ctx context.Context, n *note.Note) (string, error)
	List(ctx context.Context) ([]*note.Note, error)
}
