package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jotpad/jotpad/internal/note"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepoInsertAndList(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	id, err := r.Insert(ctx, &note.Note{Title: "first", Content: "hello", CreatedAt: time.Now().UnixMilli()})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	id2, err := r.Insert(ctx, &note.Note{Title: "second", Content: "world", CreatedAt: time.Now().UnixMilli()})
	require.NoError(t, err)
	require.NotEqual(t, id, id2)

	list, err = r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	// insertion order preserved
	require.Equal(t, "first", list[0].Title)
	require.Equal(t, "second", list[1].Title)
	require.False(t, list[0].ReceivedAt.IsZero())
}

func TestMemoryRepoListCopiesNotes(t *testing.T) {
	r := NewMemoryRepo()
	ctx := context.Background()
	_, err := r.Insert(ctx, &note.Note{Title: "t", Content: "c"})
	require.NoError(t, err)

	list, err := r.List(ctx)
	require.NoError(t, err)
	list[0].Title = "mutated"

	list2, err := r.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "t", list2[0].Title)
}
