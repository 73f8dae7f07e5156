package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jotpad/jotpad/internal/note"
	"github.com/jotpad/jotpad/internal/note/feed"
	"github.com/jotpad/jotpad/internal/note/repository"
	"github.com/jotpad/jotpad/pkg/metrics"
)

// Service defines the note operations used by the handler layer and by
// in-process clients.
type Service interface {
	// Create validates, persists and announces a new note. The same rules the
	// submitting client applies run here too; client-side checks are
	// bypassable so the write path cannot rely on them.
	Create(ctx context.Context, title, content string) (*note.Note, error)
	List(ctx context.Context) ([]*note.Note, error)
	// Subscribe returns a channel receiving the full note list after every
	// accepted insert, plus a cancel function.
	Subscribe() (<-chan []*note.Note, func())
}

type noteService struct {
	repo repository.Repository
	feed *feed.Feed
}

func New(repo repository.Repository) Service {
	return &noteService{repo: repo, feed: feed.New()}
}

func (s *noteService) Create(ctx context.Context, title, content string) (*note.Note, error) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if errs := note.Validate(title, content); errs.Has() {
		for field := range errs {
			metrics.ValidationFailures.WithLabelValues(field).Inc()
		}
		return nil, &note.ValidationError{Fields: errs}
	}

	n := &note.Note{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		CreatedAt: time.Now().UnixMilli(),
	}
	if _, err := s.repo.Insert(ctx, n); err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	metrics.NotesCreated.Inc()

	// refresh subscribers; a read failure here loses one push, not the write
	if list, err := s.repo.List(ctx); err == nil {
		s.feed.Publish(list)
	}
	return n, nil
}

func (s *noteService) List(ctx context.Context) ([]*note.Note, error) {
	return s.repo.List(ctx)
}

func (s *noteService) Subscribe() (<-chan []*note.Note, func()) {
	return s.feed.Subscribe()
}
