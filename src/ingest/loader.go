package ingest

import (
	"sync/atomic"
	"time"

	"holdings-observer/src/interfaces"
	"holdings-observer/src/logger"
	"holdings-observer/src/models"
	"holdings-observer/src/series"
)

// -----------------------------------------------------------------------------
// Loader
// -----------------------------------------------------------------------------

// Loader runs one dataset's ingestion to completion and publishes the result.
// The series swap in Store.Load is atomic, so readers keep seeing the
// previous complete series until the new one is fully built.
type Loader[H models.Holding] struct {
	Source    interfaces.ISnapshotSource[H]
	Store     *series.Store[H]
	Archive   func([]models.MDay[H]) error // optional durable mirror
	Exchanger interfaces.IDataExchanger    // optional push channel
	Logger    *logger.Logger

	loading    atomic.Bool
	loadedOnce atomic.Bool
}

// -----------------------------------------------------------------------------

func NewLoader[H models.Holding](
	source interfaces.ISnapshotSource[H],
	store *series.Store[H],
	archive func([]models.MDay[H]) error,
	exchanger interfaces.IDataExchanger,
	log *logger.Logger,
) *Loader[H] {
	return &Loader[H]{
		Source:    source,
		Store:     store,
		Archive:   archive,
		Exchanger: exchanger,
		Logger:    log,
	}
}

// -----------------------------------------------------------------------------

// Reload reads all source files, normalizes them and swaps the series in.
// Not reentrant: a reload requested while one is running for this dataset is
// a no-op and the dataset keeps serving its last loaded series.
func (l *Loader[H]) Reload() bool {
	if !l.loading.CompareAndSwap(false, true) {
		l.Logger.Warning("%s: reload already in progress, ignoring request", l.Source.Name())
		return false
	}
	defer l.loading.Store(false)

	name := l.Source.Name()

	days, err := l.Source.ReadAll()
	if err != nil {
		l.Logger.Error("%s: load failed: %v", name, err)
		return false
	}
	if err := l.Store.Load(days); err != nil {
		l.Logger.Error("%s: series rejected: %v", name, err)
		return false
	}

	if l.Archive != nil {
		if err := l.Archive(days); err != nil {
			// Archive failures don't unload the in-memory series.
			l.Logger.Error("%s: archive write failed: %v", name, err)
		}
	}

	eventType := "RELOAD"
	if l.loadedOnce.CompareAndSwap(false, true) {
		eventType = "INITIAL"
	}
	if l.Exchanger != nil {
		l.Exchanger.Broadcast(models.MReloadEvent{
			Type:      eventType,
			Dataset:   name,
			Days:      len(days),
			Codes:     len(l.Store.AllCodes()),
			Timestamp: time.Now().Unix(),
		})
	}

	l.Logger.Info("%s: %d days loaded", name, len(days))
	return true
}
