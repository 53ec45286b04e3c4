package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/scorebook-app/scorebook/internal/adapter"
	"github.com/scorebook-app/scorebook/internal/logger"
	"github.com/scorebook-app/scorebook/internal/store"
	"github.com/scorebook-app/scorebook/internal/utils"
	"github.com/scorebook-app/scorebook/models"
)

// syncedStore is the application-facing facade over the local replica and
// the sync queue. All reads and writes complete against SQLite before
// returning; the network is never on the caller's path.
type syncedStore struct {
	entities store.EntityRepository
	queue    SyncQueue
	remote   adapter.RemoteTransport
	versions VersionCache
	resolver ConflictResolver
	session  SessionSource
	ids      *utils.UUIDGenerator
	logger   *logger.Logger

	// trigger nudges the background job into an immediate drain cycle
	// after a local mutation. Never blocks.
	trigger func()

	now func() time.Time
}

// NewSyncedStore wires the facade to its collaborators. trigger may be nil
// when no background job is attached (tests, one-shot tools).
func NewSyncedStore(
	entities store.EntityRepository,
	queue SyncQueue,
	remote adapter.RemoteTransport,
	versions VersionCache,
	resolver ConflictResolver,
	session SessionSource,
	logger *logger.Logger,
	trigger func(),
) SyncedStore {
	if trigger == nil {
		trigger = func() {}
	}
	return &syncedStore{
		entities: entities,
		queue:    queue,
		remote:   remote,
		versions: versions,
		resolver: resolver,
		session:  session,
		ids:      utils.NewUUIDGenerator(),
		logger:   logger,
		trigger:  trigger,
		now:      time.Now,
	}
}

// Save implements [SyncedStore].
func (s *syncedStore) Save(ctx context.Context, kind models.EntityKind, id string, payload json.RawMessage) (models.Entity, error) {
	if !knownKind(kind) {
		return models.Entity{}, fmt.Errorf("%w: %q", ErrUnknownEntityKind, kind)
	}
	if len(payload) == 0 {
		return models.Entity{}, ErrEmptyPayload
	}

	hash, err := utils.CanonicalHash(payload)
	if err != nil {
		return models.Entity{}, fmt.Errorf("invalid payload: %w", err)
	}

	ownerID, err := s.session.OwnerID()
	if err != nil {
		return models.Entity{}, err
	}

	if id == "" {
		id = s.ids.Generate()
	}
	ref := models.EntityRef{Kind: kind, ID: id}

	existing, err := s.entities.Get(ctx, ref)
	switch {
	case err == nil:
		if !existing.Deleted && existing.Hash == hash {
			// Structurally identical content, possibly with reordered
			// fields. Nothing changed; do not touch the queue.
			return existing, nil
		}
	case errors.Is(err, store.ErrEntityNotFound):
		existing = models.Entity{}
	default:
		return models.Entity{}, err
	}

	ent := models.Entity{
		Kind:      kind,
		ID:        id,
		OwnerID:   ownerID,
		Payload:   payload,
		Version:   existing.Version,
		UpdatedAt: s.now(),
		Dirty:     true,
		Hash:      hash,
	}
	if err := s.entities.Save(ctx, ent); err != nil {
		return models.Entity{}, err
	}

	if err := s.enqueue(ctx, ent, models.IntentUpsert); err != nil {
		// The record is saved and dirty; the startup reconciliation pass
		// will recreate the lost intent.
		s.logger.Err(err).
			Str("func", "syncedStore.Save").
			Str("entity", ref.String()).
			Msg("record saved locally but intent enqueue failed")
	}

	s.trigger()
	return ent, nil
}

// Get implements [SyncedStore].
func (s *syncedStore) Get(ctx context.Context, ref models.EntityRef) (models.Entity, error) {
	ent, err := s.entities.Get(ctx, ref)
	if err != nil {
		return models.Entity{}, err
	}
	if ent.Deleted {
		return models.Entity{}, fmt.Errorf("%w: %s", store.ErrEntityNotFound, ref)
	}
	return ent, nil
}

// List implements [SyncedStore].
func (s *syncedStore) List(ctx context.Context, kinds ...models.EntityKind) ([]models.Entity, error) {
	ownerID, err := s.session.OwnerID()
	if err != nil {
		return nil, err
	}
	return s.entities.List(ctx, ownerID, store.EntityFilter{Kinds: kinds})
}

// Delete implements [SyncedStore].
func (s *syncedStore) Delete(ctx context.Context, ref models.EntityRef) error {
	existing, err := s.entities.Get(ctx, ref)
	if err != nil {
		if errors.Is(err, store.ErrEntityNotFound) {
			return nil
		}
		return err
	}
	if existing.Deleted {
		return nil
	}

	existing.Deleted = true
	existing.Dirty = true
	existing.UpdatedAt = s.now()
	if err := s.entities.Save(ctx, existing); err != nil {
		return err
	}

	if err := s.enqueue(ctx, existing, models.IntentDelete); err != nil {
		s.logger.Err(err).
			Str("func", "syncedStore.Delete").
			Str("entity", ref.String()).
			Msg("record deleted locally but intent enqueue failed")
	}

	s.trigger()
	return nil
}

// PushAll implements [SyncedStore].
func (s *syncedStore) PushAll(ctx context.Context) error {
	ownerID, err := s.session.OwnerID()
	if err != nil {
		return err
	}

	if err := s.enqueueDirty(ctx, ownerID, false); err != nil {
		return err
	}

	s.trigger()
	return nil
}

// Reconcile implements [SyncedStore].
func (s *syncedStore) Reconcile(ctx context.Context) error {
	if err := s.queue.Load(ctx); err != nil {
		return err
	}

	ownerID, err := s.session.OwnerID()
	if err != nil {
		// No session yet; queued work from the previous run is restored
		// and everything else waits for login.
		if errors.Is(err, ErrNoSession) {
			return nil
		}
		return err
	}

	if err := s.enqueueDirty(ctx, ownerID, true); err != nil {
		return err
	}

	s.trigger()
	return nil
}

// enqueueDirty creates intents for dirty local records. With onlyMissing
// set, records that already have a queued intent are left alone; this is the
// startup repair for a crash between the local write and the queue write.
func (s *syncedStore) enqueueDirty(ctx context.Context, ownerID int64, onlyMissing bool) error {
	states, err := s.entities.GetDirtyStates(ctx, ownerID)
	if err != nil {
		return err
	}

	for _, st := range states {
		ref := st.Ref()
		if onlyMissing && s.queue.Contains(ref) {
			continue
		}

		ent, err := s.entities.Get(ctx, ref)
		if err != nil {
			return err
		}

		kind := models.IntentUpsert
		if ent.Deleted {
			kind = models.IntentDelete
		}
		if err := s.enqueue(ctx, ent, kind); err != nil {
			return err
		}
	}
	return nil
}

// PullAll implements [SyncedStore].
func (s *syncedStore) PullAll(ctx context.Context) error {
	ownerID, err := s.session.OwnerID()
	if err != nil {
		return err
	}

	records, err := s.remote.PullAll(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("pull remote state: %w", err)
	}

	// Everything previously cached is superseded by this snapshot.
	s.versions.Clear()

	for _, rec := range records {
		if err := s.applyPulled(ctx, ownerID, rec); err != nil {
			return err
		}
	}

	s.logger.Info().
		Str("func", "syncedStore.PullAll").
		Int("records", len(records)).
		Msg("applied full remote snapshot")
	return nil
}

// applyPulled merges one pulled record into the local replica.
func (s *syncedStore) applyPulled(ctx context.Context, ownerID int64, rec models.PullResponse) error {
	ref := models.EntityRef{Kind: rec.Kind, ID: rec.ID}

	local, err := s.entities.Get(ctx, ref)
	if err != nil {
		if !errors.Is(err, store.ErrEntityNotFound) {
			return err
		}
		if rec.Deleted {
			// Deleted remotely, absent locally. Nothing to do.
			return nil
		}
		return s.overwriteLocal(ctx, ownerID, rec)
	}

	if local.Dirty {
		resolution := s.resolver.Resolve(models.Conflict{
			Ref:    ref,
			Local:  local,
			Remote: rec.Entity(ownerID),
		})
		s.versions.Set(ref, rec.Version)
		if !resolution.RemoteWon {
			// Local edit is newer; the queued intent will push it.
			return nil
		}
		// The local mutation lost; its queued intent must not reach the
		// remote, or the next drain would push the stale payload over the
		// copy that just won.
		if err := s.queue.Discard(ctx, ref); err != nil {
			return err
		}
		s.logger.Info().
			Str("func", "syncedStore.applyPulled").
			Str("entity", ref.String()).
			Msg("pull overwrote newer remote copy over dirty local record")
	}

	if rec.Deleted {
		if err := s.entities.HardDelete(ctx, ref); err != nil {
			return err
		}
		s.versions.Invalidate(ref)
		return nil
	}
	return s.overwriteLocal(ctx, ownerID, rec)
}

func (s *syncedStore) overwriteLocal(ctx context.Context, ownerID int64, rec models.PullResponse) error {
	ent := rec.Entity(ownerID)
	if hash, err := utils.CanonicalHash(ent.Payload); err == nil {
		ent.Hash = hash
	}

	if err := s.entities.Save(ctx, ent); err != nil {
		return err
	}
	s.versions.Set(ent.Ref(), ent.Version)
	return nil
}

// Stats implements [SyncedStore].
func (s *syncedStore) Stats() models.QueueStats {
	return s.queue.Stats()
}

func (s *syncedStore) enqueue(ctx context.Context, ent models.Entity, kind models.IntentKind) error {
	intent := models.SyncIntent{
		Ref:       ent.Ref(),
		Kind:      kind,
		OwnerID:   ent.OwnerID,
		UpdatedAt: ent.UpdatedAt,
	}
	if kind == models.IntentUpsert {
		intent.Payload = ent.Payload
	}
	return s.queue.Enqueue(ctx, intent)
}

func knownKind(kind models.EntityKind) bool {
	switch kind {
	case models.KindGame, models.KindRoster, models.KindSettings:
		return true
	default:
		return false
	}
}
