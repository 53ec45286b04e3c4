package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/scorebook-app/scorebook/models"
)

func conflictAt(localMs, remoteMs int64, localDeleted, remoteDeleted bool) models.Conflict {
	ref := models.EntityRef{Kind: models.KindGame, ID: "g-1"}
	return models.Conflict{
		Ref: ref,
		Local: models.Entity{
			Kind: ref.Kind, ID: ref.ID, OwnerID: 42,
			Payload:   []byte(`{"side":"local"}`),
			UpdatedAt: time.UnixMilli(localMs),
			Deleted:   localDeleted,
		},
		Remote: models.Entity{
			Kind: ref.Kind, ID: ref.ID, OwnerID: 42,
			Payload:   []byte(`{"side":"remote"}`),
			Version:   2,
			UpdatedAt: time.UnixMilli(remoteMs),
			Deleted:   remoteDeleted,
		},
	}
}

func TestLWWResolver(t *testing.T) {
	r := NewLWWResolver()

	tests := []struct {
		name          string
		conflict      models.Conflict
		wantRemoteWon bool
	}{
		{
			name:          "newer local edit beats older remote edit",
			conflict:      conflictAt(110, 105, false, false),
			wantRemoteWon: false,
		},
		{
			name:          "newer remote edit beats older local edit",
			conflict:      conflictAt(105, 110, false, false),
			wantRemoteWon: true,
		},
		{
			name:          "exact tie goes to remote",
			conflict:      conflictAt(100, 100, false, false),
			wantRemoteWon: true,
		},
		{
			name:          "local deletion beats older remote upsert",
			conflict:      conflictAt(200, 190, true, false),
			wantRemoteWon: false,
		},
		{
			name:          "newer remote upsert resurrects local deletion",
			conflict:      conflictAt(190, 200, true, false),
			wantRemoteWon: true,
		},
		{
			name:          "newer local upsert resurrects remote deletion",
			conflict:      conflictAt(200, 190, false, true),
			wantRemoteWon: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(tt.conflict)
			assert.Equal(t, tt.wantRemoteWon, got.RemoteWon)
			if tt.wantRemoteWon {
				assert.Equal(t, tt.conflict.Remote, got.Winner)
			} else {
				assert.Equal(t, tt.conflict.Local, got.Winner)
			}
		})
	}
}

// Same inputs, same outcome, no matter which replica evaluates them or how
// many times. This is what lets every device converge without coordination.
func TestLWWResolverDeterministic(t *testing.T) {
	r := NewLWWResolver()
	c := conflictAt(110, 105, false, false)

	first := r.Resolve(c)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, r.Resolve(c))
	}
}

func TestLWWResolverLocalTiebreak(t *testing.T) {
	r := NewLWWResolverLocalTiebreak()

	got := r.Resolve(conflictAt(100, 100, false, false))
	assert.False(t, got.RemoteWon)

	// Non-tie comparisons are unaffected by the tiebreak choice.
	assert.True(t, r.Resolve(conflictAt(99, 100, false, false)).RemoteWon)
}

// Sub-millisecond differences must not influence the outcome: timestamps are
// compared at millisecond precision on every device regardless of platform
// clock resolution.
func TestLWWResolverMillisecondPrecision(t *testing.T) {
	r := NewLWWResolver()

	c := conflictAt(100, 100, false, false)
	c.Local.UpdatedAt = c.Local.UpdatedAt.Add(400 * time.Microsecond)

	got := r.Resolve(c)
	assert.True(t, got.RemoteWon, "sub-millisecond local lead must still count as a tie")
}
