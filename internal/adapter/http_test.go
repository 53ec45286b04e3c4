// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Scorebook Authors

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorebook-app/scorebook/internal/config"
	"github.com/scorebook-app/scorebook/internal/logger"
	"github.com/scorebook-app/scorebook/models"
)

// newTestTransport builds an httpRemoteTransport pointed at a test server.
func newTestTransport(t *testing.T, serverURL string) *httpRemoteTransport {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}

	tr, err := NewHTTPRemoteTransport(adapterCfg, logger.Nop())
	require.NoError(t, err)
	return tr.(*httpRemoteTransport)
}

func gameRef() models.EntityRef {
	return models.EntityRef{Kind: models.KindGame, ID: "g-1"}
}

// ── Push ─────────────────────────────────────────────────────────────────────

func TestPush_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/sync/push", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req models.PushRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, models.KindGame, req.Kind)
		assert.Equal(t, int64(3), req.ExpectedVersion)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.PushResponse{Version: 4})
	}))
	defer srv.Close()

	tr := newTestTransport(t, srv.URL)
	tr.SetToken("test-token")

	got, err := tr.Push(context.Background(), models.PushRequest{
		OwnerID:         1,
		Kind:            models.KindGame,
		ID:              "g-1",
		Payload:         []byte(`{"opponent":"Falcons"}`),
		ExpectedVersion: 3,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(4), got.Version)
}

func TestPush_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("40001: version 3 is stale"))
	}))
	defer srv.Close()

	tr := newTestTransport(t, srv.URL)
	_, err := tr.Push(context.Background(), models.PushRequest{Kind: models.KindGame, ID: "g-1", ExpectedVersion: 3})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestPush_ServerErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	tr := newTestTransport(t, srv.URL)
	_, err := tr.Push(context.Background(), models.PushRequest{Kind: models.KindGame, ID: "g-1"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestPush_BadPayloadIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte("payload does not match schema"))
	}))
	defer srv.Close()

	tr := newTestTransport(t, srv.URL)
	_, err := tr.Push(context.Background(), models.PushRequest{Kind: models.KindGame, ID: "g-1"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadPayload)
}

func TestPush_NetworkErrorIsTransient(t *testing.T) {
	tr := newTestTransport(t, "http://127.0.0.1:1") // nothing listens here

	_, err := tr.Push(context.Background(), models.PushRequest{Kind: models.KindGame, ID: "g-1"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestPush_ContextCancellation(t *testing.T) {
	blocked := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer srv.Close()
	defer close(blocked)

	tr := newTestTransport(t, srv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := tr.Push(ctx, models.PushRequest{Kind: models.KindGame, ID: "g-1"})

	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second, "deadline expiry must cancel the request, not wait it out")
}

// ── Token rotation ───────────────────────────────────────────────────────────

// The session gate rotates the token from its own goroutine while engine
// workers push concurrently; run with -race.
func TestSetToken_ConcurrentWithRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.PushResponse{Version: 1})
	}))
	defer srv.Close()

	tr := newTestTransport(t, srv.URL)
	tr.SetToken("token-0")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			tr.SetToken(fmt.Sprintf("token-%d", i))
		}(i)
		go func() {
			defer wg.Done()
			_, err := tr.Push(context.Background(), models.PushRequest{Kind: models.KindGame, ID: "g-1"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.NotEmpty(t, tr.Token())
}

// ── Pull ─────────────────────────────────────────────────────────────────────

func TestPull_Success(t *testing.T) {
	updatedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sync/records/game/g-1", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("owner_id"))

		_ = json.NewEncoder(w).Encode(models.PullResponse{
			Kind:      models.KindGame,
			ID:        "g-1",
			Payload:   []byte(`{"opponent":"Falcons"}`),
			Version:   2,
			UpdatedAt: updatedAt,
		})
	}))
	defer srv.Close()

	tr := newTestTransport(t, srv.URL)
	got, err := tr.Pull(context.Background(), 1, gameRef())

	require.NoError(t, err)
	assert.Equal(t, int64(2), got.Version)
	assert.True(t, got.UpdatedAt.Equal(updatedAt))
}

func TestPull_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	tr := newTestTransport(t, srv.URL)
	_, err := tr.Pull(context.Background(), 1, gameRef())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

// ── PullAll ──────────────────────────────────────────────────────────────────

func TestPullAll_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sync/records", r.URL.Path)

		_ = json.NewEncoder(w).Encode(models.PullAllResponse{
			Records: []models.PullResponse{
				{Kind: models.KindGame, ID: "g-1", Version: 1},
				{Kind: models.KindRoster, ID: "r-1", Version: 5, Deleted: true},
			},
			Length: 2,
		})
	}))
	defer srv.Close()

	tr := newTestTransport(t, srv.URL)
	got, err := tr.PullAll(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[1].Deleted, "soft-deleted records must come back from pull-all")
}

func TestPullAll_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tr := newTestTransport(t, srv.URL)
	_, err := tr.PullAll(context.Background(), 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── URL normalisation ────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "localhost:8080", want: "http://localhost:8080", ok: true},
		{in: "https://api.scorebook.test/", want: "https://api.scorebook.test", ok: true},
		{in: "  ", ok: false},
		{in: "http://", ok: false},
	}

	for _, tt := range tests {
		got, err := normalizeBaseURL(tt.in)
		if !tt.ok {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}
