package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jotpad/jotpad/internal/note"
	"github.com/jotpad/jotpad/internal/note/repository"
	"github.com/stretchr/testify/require"
)

func TestCreateAndList(t *testing.T) {
	svc := New(repository.NewMemoryRepo())
	ctx := context.Background()

	n, err := svc.Create(ctx, "groceries", "milk, eggs")
	require.NoError(t, err)
	require.NotEmpty(t, n.ID)
	require.InDelta(t, time.Now().UnixMilli(), n.CreatedAt, 2000)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "groceries", list[0].Title)
}

func TestCreateTrimsBeforePersisting(t *testing.T) {
	svc := New(repository.NewMemoryRepo())
	n, err := svc.Create(context.Background(), "  padded  ", "\tbody\n")
	require.NoError(t, err)
	require.Equal(t, "padded", n.Title)
	require.Equal(t, "body", n.Content)
}

func TestCreateMirrorsClientValidation(t *testing.T) {
	svc := New(repository.NewMemoryRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, "   ", "content")
	require.Error(t, err)
	var verr *note.ValidationError
	require.True(t, errors.As(err, &verr))
	require.NotEmpty(t, verr.Fields["title"])

	// the rejected write must not reach the store
	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestSubscribeReceivesListAfterInsert(t *testing.T) {
	svc := New(repository.NewMemoryRepo())
	ch, cancel := svc.Subscribe()
	defer cancel()

	_, err := svc.Create(context.Background(), "t", "c")
	require.NoError(t, err)

	select {
	case list := <-ch:
		require.Len(t, list, 1)
		require.Equal(t, "t", list[0].Title)
	case <-time.After(time.Second):
		t.Fatal("no snapshot pushed after insert")
	}
}

type failingRepo struct{}

func (failingRepo) Insert(ctx context.Context, n *note.Note) (string, error) {
	return "", errors.New("store offline")
}

func (failingRepo) List(ctx context.Context) ([]*note.Note, error) {
	return nil, errors.New("store offline")
}

func TestCreateWrapsRepositoryError(t *testing.T) {
	svc := New(failingRepo{})
	_, err := svc.Create(context.Background(), "t", "c")
	require.Error(t, err)
	require.Contains(t, err.Error(), "insert note")
	var verr *note.ValidationError
	require.False(t, errors.As(err, &verr))
}
