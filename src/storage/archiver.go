package storage

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"k-stock-insight/src/helpers"
	"k-stock-insight/src/interfaces"
	"k-stock-insight/src/logger"
	"k-stock-insight/src/models"
)

// DefaultQueueSize bounds the number of snapshots waiting to be written.
const DefaultQueueSize = 256

// -----------------------------------------------------------------------------

// Archiver copies successful store payloads into an IDatabase. Listen is
// registered as a store listener and only enqueues; Run does the writing.
type Archiver struct {
	DB      interfaces.IDatabase
	Logger  *logger.Logger
	errs    *helpers.ErrorHandler
	queue   chan models.MSnapshot
	dropped atomic.Int64
}

// -----------------------------------------------------------------------------

func NewArchiver(db interfaces.IDatabase, log *logger.Logger, queueSize int) *Archiver {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Archiver{
		DB:     db,
		Logger: log,
		errs:   helpers.NewErrorHandler(log),
		queue:  make(chan models.MSnapshot, queueSize),
	}
}

// -----------------------------------------------------------------------------

// Listen enqueues the payload of a success event. It never blocks: when the
// queue is full the snapshot is dropped.
func (a *Archiver) Listen(ev models.MStoreEvent) {
	if ev.Kind != models.EventSuccess || ev.Payload == nil {
		return
	}

	payload, err := json.Marshal(ev.Payload)
	if err != nil {
		a.errs.Handle(err, "archive encode "+string(ev.Category))
		return
	}

	snap := models.MSnapshot{
		Category:  ev.Category,
		Key:       ev.Key,
		Payload:   payload,
		FetchedAt: ev.At,
	}
	select {
	case a.queue <- snap:
	default:
		a.dropped.Add(1)
		a.Logger.Warning("Archive queue full, dropping %s snapshot", ev.Category)
	}
}

// Dropped returns how many snapshots were discarded on a full queue.
func (a *Archiver) Dropped() int64 {
	return a.dropped.Load()
}

// -----------------------------------------------------------------------------

// Run writes queued snapshots until ctx is done. Everything queued at that
// point is still written. Old data is cleaned up after each batch.
func (a *Archiver) Run(ctx context.Context) {
	a.Logger.Info("Archiver started")
	defer a.Logger.Info("Archiver stopped")

	for {
		select {
		case <-ctx.Done():
			a.drain()
			return
		case snap := <-a.queue:
			a.write(snap)
			a.drain()
			if err := a.DB.CleanupOldData(); err != nil {
				a.errs.Handle(err, "archive cleanup")
			}
		}
	}
}

func (a *Archiver) drain() {
	for {
		select {
		case snap := <-a.queue:
			a.write(snap)
		default:
			return
		}
	}
}

func (a *Archiver) write(snap models.MSnapshot) {
	if err := a.DB.SaveSnapshot(snap); err != nil {
		a.errs.Handle(err, "archive save "+string(snap.Category))
		return
	}
	a.Logger.Debug("Archived %s snapshot (%d bytes)", snap.Category, len(snap.Payload))
}
