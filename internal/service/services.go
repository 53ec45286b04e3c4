package service

import (
	"github.com/scorebook-app/scorebook/internal/adapter"
	"github.com/scorebook-app/scorebook/internal/config"
	"github.com/scorebook-app/scorebook/internal/logger"
	"github.com/scorebook-app/scorebook/internal/store"
)

// Services bundles the fully wired sync core.
type Services struct {
	Store    SyncedStore
	Engine   SyncEngine
	Queue    SyncQueue
	Job      SyncJob
	Session  SessionSource
	Versions VersionCache
}

// NewServices wires the sync core in dependency order: queue over the local
// storages, engine over the queue and transport, job over the engine, and
// the facade on top with the job's trigger attached.
func NewServices(storages *store.LocalStorages, remote adapter.RemoteTransport, cfg *config.ClientConfig, log *logger.Logger) *Services {
	session := NewFileSession(cfg.Session, remote, log)
	versions := NewVersionCache()
	resolver := NewLWWResolver()
	queue := NewSyncQueue(storages.QueueRepository, log)
	engine := NewSyncEngine(queue, remote, storages.EntityRepository, versions, resolver, session, cfg.Sync, log)
	job := NewSyncJob(engine, log)
	facade := NewSyncedStore(storages.EntityRepository, queue, remote, versions, resolver, session, log, job.Trigger)

	return &Services{
		Store:    facade,
		Engine:   engine,
		Queue:    queue,
		Job:      job,
		Session:  session,
		Versions: versions,
	}
}
