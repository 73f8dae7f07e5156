package intake

// ListState is the externally observable state of the projected note list.
type ListState int

const (
	// StateLoading: the durable list is not available, regardless of pending
	// entries.
	StateLoading ListState = iota
	// StateEmpty: the durable list is available and empty and nothing is
	// pending.
	StateEmpty
	// StatePopulated: at least one item from either source.
	StatePopulated
)

func (s ListState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	}
	return "unknown"
}

// DisplayNote is one render-ready entry. Pending marks optimistic
// placeholders so the presentation layer can dim them.
type DisplayNote struct {
	ID        string
	Title     string
	Content   string
	CreatedAt int64
	Pending   bool
}

// Projection is the merged, ordered sequence plus its display state.
type Projection struct {
	State ListState
	Notes []DisplayNote
}

// Project merges the durable snapshot with pending optimistic notes: durable
// notes first in store order, pending ones after. Pure and idempotent; safe
// to recompute on every snapshot. While the write for a pending note lands,
// its durable twin and the placeholder can transiently coexist; the
// placeholder disappears when the submission settles.
func Project(snap Snapshot, pending []PendingNote) Projection {
	if !snap.Available {
		return Projection{State: StateLoading}
	}

	out := make([]DisplayNote, 0, len(snap.Notes)+len(pending))
	for _, n := range snap.Notes {
		out = append(out, DisplayNote{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Content,
			CreatedAt: n.CreatedAt,
		})
	}
	for _, p := range pending {
		out = append(out, DisplayNote{
			ID:        p.Token,
			Title:     p.Title,
			Content:   p.Content,
			CreatedAt: p.CreatedAt,
			Pending:   true,
		})
	}

	if len(out) == 0 {
		return Projection{State: StateEmpty, Notes: out}
	}
	return Projection{State: StatePopulated, Notes: out}
}
