// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Scorebook Authors

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/scorebook-app/scorebook/internal/adapter"
	"github.com/scorebook-app/scorebook/internal/config"
	"github.com/scorebook-app/scorebook/internal/logger"
	"github.com/scorebook-app/scorebook/internal/store"
	"github.com/scorebook-app/scorebook/internal/utils"
	"github.com/scorebook-app/scorebook/models"
)

// maxConflictRounds bounds how many pull/resolve/re-push rounds a single
// attempt may take when the remote keeps advancing under our feet. Past the
// bound the conflict is handed to the regular retry path.
const maxConflictRounds = 3

type syncEngine struct {
	queue    SyncQueue
	remote   adapter.RemoteTransport
	entities store.EntityRepository
	versions VersionCache
	resolver ConflictResolver
	session  SessionSource
	cfg      config.ClientSync
	logger   *logger.Logger

	// sleepFunc is called to wait between retries. Defaults to timeSleep.
	// Tests override this to avoid real delays.
	sleepFunc func(ctx context.Context, d time.Duration) error
}

// NewSyncEngine wires the sync engine to its collaborators.
func NewSyncEngine(
	queue SyncQueue,
	remote adapter.RemoteTransport,
	entities store.EntityRepository,
	versions VersionCache,
	resolver ConflictResolver,
	session SessionSource,
	cfg config.ClientSync,
	logger *logger.Logger,
) SyncEngine {
	return &syncEngine{
		queue:     queue,
		remote:    remote,
		entities:  entities,
		versions:  versions,
		resolver:  resolver,
		session:   session,
		cfg:       cfg,
		logger:    logger,
		sleepFunc: timeSleep,
	}
}

// Sync implements [SyncEngine].
func (e *syncEngine) Sync(ctx context.Context) error {
	if !e.session.Valid() {
		e.logger.Debug().
			Str("func", "syncEngine.Sync").
			Msg("sync suspended: no active session")
		return nil
	}

	batch := e.queue.Drain(ctx)
	if len(batch) == 0 {
		return nil
	}

	e.logger.Debug().
		Str("func", "syncEngine.Sync").
		Int("intents", len(batch)).
		Msg("draining sync queue")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for _, intent := range batch {
		intent := intent
		g.Go(func() error {
			return e.process(gctx, intent)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("drain cycle interrupted: %w", err)
	}
	return nil
}

// RetryFailed implements [SyncEngine].
func (e *syncEngine) RetryFailed(ctx context.Context, ref models.EntityRef) error {
	if err := e.queue.Retry(ctx, ref); err != nil {
		return err
	}
	return e.Sync(ctx)
}

// process runs one intent to a durable outcome: settled, released back to
// pending, or parked in the failed bucket. Only context cancellation
// propagates as an error.
func (e *syncEngine) process(ctx context.Context, intent models.SyncIntent) error {
	attempts := intent.RetryCount

	for {
		err := e.execute(ctx, intent)
		if err == nil {
			return e.queue.Settle(ctx, intent.Ref)
		}

		if ctx.Err() != nil {
			_ = e.queue.Release(context.WithoutCancel(ctx), intent.Ref, attempts, err)
			return ctx.Err()
		}

		if errors.Is(err, adapter.ErrBadPayload) {
			e.logger.Error().Err(err).
				Str("func", "syncEngine.process").
				Str("entity", intent.Ref.String()).
				Msg("intent rejected as malformed; not retrying")
			return e.queue.Fail(ctx, intent.Ref, attempts+1, err)
		}

		if errors.Is(err, adapter.ErrUnauthorized) {
			e.logger.Warn().Err(err).
				Str("func", "syncEngine.process").
				Str("entity", intent.Ref.String()).
				Msg("remote rejected credentials; suspending intent until re-login")
			return e.queue.Release(ctx, intent.Ref, attempts, err)
		}

		attempts++
		if attempts >= e.cfg.MaxAttempts {
			e.logger.Error().Err(err).
				Str("func", "syncEngine.process").
				Str("entity", intent.Ref.String()).
				Int("attempts", attempts).
				Msg("retry ceiling reached; moving intent to failed bucket")
			return e.queue.Fail(ctx, intent.Ref, attempts, fmt.Errorf("%w: %w", ErrExhaustedRetries, err))
		}

		backoff := calcBackoff(attempts-1, e.cfg.BackoffBase, e.cfg.BackoffMax)
		e.logger.Warn().Err(err).
			Str("func", "syncEngine.process").
			Str("entity", intent.Ref.String()).
			Int("attempt", attempts).
			Dur("backoff", backoff).
			Msg("transient sync failure; retrying after backoff")

		if sleepErr := e.sleepFunc(ctx, backoff); sleepErr != nil {
			_ = e.queue.Release(context.WithoutCancel(ctx), intent.Ref, attempts, err)
			return sleepErr
		}
	}
}

// execute performs one push attempt for the intent, including conflict
// resolution rounds. A nil return means the intent's work is done on both
// replicas and the intent can settle.
func (e *syncEngine) execute(ctx context.Context, intent models.SyncIntent) error {
	req := models.PushRequest{
		OwnerID:         intent.OwnerID,
		Kind:            intent.Ref.Kind,
		ID:              intent.Ref.ID,
		Payload:         intent.Payload,
		ExpectedVersion: e.expectedVersion(ctx, intent.Ref),
		UpdatedAt:       intent.UpdatedAt,
		Deleted:         intent.Kind == models.IntentDelete,
	}

	for round := 0; ; round++ {
		resp, err := e.remote.Push(ctx, req)
		if err == nil {
			return e.confirm(ctx, intent, resp.Version)
		}
		if !errors.Is(err, adapter.ErrConflict) {
			return err
		}
		if round >= maxConflictRounds {
			return err
		}

		settled, rerr := e.resolveConflict(ctx, intent, &req)
		if rerr != nil {
			return rerr
		}
		if settled {
			return nil
		}
	}
}

// resolveConflict handles one rejected push: it pulls the remote's current
// state, resolves the divergence, and either applies the remote copy locally
// (settled=true) or rewrites req so the local copy can be re-pushed against
// the version that beat us.
func (e *syncEngine) resolveConflict(ctx context.Context, intent models.SyncIntent, req *models.PushRequest) (settled bool, err error) {
	ref := intent.Ref

	remoteRec, err := e.remote.Pull(ctx, intent.OwnerID, ref)
	if err != nil {
		if errors.Is(err, adapter.ErrNotFound) {
			// The record vanished remotely between the rejected push and
			// the pull. Our copy is the only one left; push it as a create.
			e.versions.Invalidate(ref)
			req.ExpectedVersion = 0
			return false, nil
		}
		return false, fmt.Errorf("pull conflicting record %s: %w", ref, err)
	}

	local, err := e.localSnapshot(ctx, intent)
	if err != nil {
		return false, err
	}

	resolution := e.resolver.Resolve(models.Conflict{
		Ref:    ref,
		Local:  local,
		Remote: remoteRec.Entity(intent.OwnerID),
	})

	e.versions.Set(ref, remoteRec.Version)

	if resolution.RemoteWon {
		e.logger.Info().
			Str("func", "syncEngine.resolveConflict").
			Str("entity", ref.String()).
			Int64("remote_version", remoteRec.Version).
			Msg("conflict resolved: remote copy kept")
		return true, e.applyRemote(ctx, intent.OwnerID, remoteRec)
	}

	e.logger.Info().
		Str("func", "syncEngine.resolveConflict").
		Str("entity", ref.String()).
		Int64("remote_version", remoteRec.Version).
		Msg("conflict resolved: local copy kept, re-pushing")

	req.Payload = resolution.Winner.Payload
	req.UpdatedAt = resolution.Winner.UpdatedAt
	req.Deleted = resolution.Winner.Deleted
	req.ExpectedVersion = remoteRec.Version
	return false, nil
}

// localSnapshot loads the current local state for conflict comparison. When
// the local row is already gone the intent itself carries the last local
// truth.
func (e *syncEngine) localSnapshot(ctx context.Context, intent models.SyncIntent) (models.Entity, error) {
	local, err := e.entities.Get(ctx, intent.Ref)
	if err == nil {
		return local, nil
	}
	if !errors.Is(err, store.ErrEntityNotFound) {
		return models.Entity{}, fmt.Errorf("load local record %s: %w", intent.Ref, err)
	}

	return models.Entity{
		Kind:      intent.Ref.Kind,
		ID:        intent.Ref.ID,
		OwnerID:   intent.OwnerID,
		Payload:   intent.Payload,
		UpdatedAt: intent.UpdatedAt,
		Deleted:   intent.Kind == models.IntentDelete,
	}, nil
}

// applyRemote overwrites the local replica with the remote copy that won a
// conflict.
func (e *syncEngine) applyRemote(ctx context.Context, ownerID int64, rec models.PullResponse) error {
	ent := rec.Entity(ownerID)
	if hash, err := utils.CanonicalHash(ent.Payload); err == nil {
		ent.Hash = hash
	}

	if err := e.entities.Save(ctx, ent); err != nil {
		return fmt.Errorf("apply remote copy %s: %w", ent.Ref(), err)
	}
	e.versions.Set(ent.Ref(), ent.Version)
	return nil
}

// confirm records a successful push on the local replica.
func (e *syncEngine) confirm(ctx context.Context, intent models.SyncIntent, version int64) error {
	ref := intent.Ref
	e.versions.Set(ref, version)

	if intent.Kind == models.IntentDelete {
		if err := e.entities.HardDelete(ctx, ref); err != nil {
			return fmt.Errorf("drop confirmed deletion %s: %w", ref, err)
		}
		e.versions.Invalidate(ref)
		return nil
	}

	if err := e.entities.SetClean(ctx, ref, version); err != nil {
		// The row may have been superseded by a newer local mutation that
		// re-dirtied or removed it; the parked intent will reconcile it.
		if errors.Is(err, store.ErrEntityNotFound) {
			return nil
		}
		return fmt.Errorf("mark %s clean: %w", ref, err)
	}
	return nil
}

// expectedVersion picks the version a push should assume: the cached remote
// version when known, otherwise the version stored on the local row.
func (e *syncEngine) expectedVersion(ctx context.Context, ref models.EntityRef) int64 {
	if v, ok := e.versions.Get(ref); ok {
		return v
	}

	local, err := e.entities.Get(ctx, ref)
	if err != nil {
		return 0
	}
	if local.Version > 0 {
		e.versions.Set(ref, local.Version)
	}
	return local.Version
}
