package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jotpad/jotpad/internal/note"
	"github.com/jotpad/jotpad/pkg/logger"
)

// HTTPStore talks to a remote note service: inserts over REST, live list over
// the websocket watch endpoint. One HTTPStore is meant to live as long as the
// application session that created it.
type HTTPStore struct {
	base   string
	wsBase string
	client *http.Client
}

func NewHTTPStore(base string) *HTTPStore {
	base = strings.TrimRight(base, "/")
	ws := base
	switch {
	case strings.HasPrefix(ws, "https"):
		ws = "wss" + ws[len("https"):]
	case strings.HasPrefix(ws, "http"):
		ws = "ws" + ws[len("http"):]
	}
	return &HTTPStore{base: base, wsBase: ws, client: &http.Client{}}
}

func (s *HTTPStore) Insert(ctx context.Context, title, content string) (string, error) {
	body, err := json.Marshal(map[string]string{"title": title, "content": content})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.base+"/api/notes", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("insert note: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("insert note: %s", rejectionMessage(resp))
	}
	var n note.Note
	if err := json.NewDecoder(resp.Body).Decode(&n); err != nil {
		return "", fmt.Errorf("decode insert response: %w", err)
	}
	return n.ID, nil
}

// rejectionMessage pulls a human-readable reason out of an error response,
// falling back to the HTTP status.
func rejectionMessage(resp *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var payload struct {
		Error  string              `json:"error"`
		Errors map[string][]string `json:"errors"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		if payload.Error != "" {
			return payload.Error
		}
		for _, msgs := range payload.Errors {
			if len(msgs) > 0 {
				return msgs[0]
			}
		}
	}
	return resp.Status
}

// Watch subscribes to the live note list. The returned channel first carries
// an unavailable Snapshot, then one available Snapshot per push from the
// server. On any disconnect it emits unavailable again and reconnects with
// backoff until ctx is done, when the channel closes.
func (s *HTTPStore) Watch(ctx context.Context) <-chan Snapshot {
	out := make(chan Snapshot, 8)
	go func() {
		defer close(out)
		send := func(snap Snapshot) bool {
			select {
			case out <- snap:
				return true
			case <-ctx.Done():
				return false
			}
		}
		if !send(Snapshot{}) {
			return
		}

		backoff := time.Second
		for {
			conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.wsBase+"/api/notes/watch", nil)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Debugf("watch dial failed, retrying in %s: %v", backoff, err)
				select {
				case <-ctx.Done():
					return
				case <-time.After(backoff):
				}
				if backoff < 30*time.Second {
					backoff *= 2
				}
				continue
			}
			backoff = time.Second

			// unblock ReadJSON when the caller goes away
			stop := make(chan struct{})
			go func() {
				select {
				case <-ctx.Done():
					conn.Close()
				case <-stop:
				}
			}()

			for {
				var notes []note.Note
				if err := conn.ReadJSON(&notes); err != nil {
					break
				}
				if !send(Snapshot{Available: true, Notes: notes}) {
					close(stop)
					conn.Close()
					return
				}
			}
			close(stop)
			conn.Close()

			if ctx.Err() != nil {
				return
			}
			// connection lost: flip consumers back to loading
			if !send(Snapshot{}) {
				return
			}
		}
	}()
	return out
}
