package interfaces

import "holdings-observer/src/models"

// -----------------------------------------------------------------------------
// ISnapshotSource is the ingestion boundary: one implementation per dataset
// kind, yielding normalized daily snapshots in date order. Days whose source
// file cannot be read are skipped by the implementation, never returned as
// empty snapshots.
// -----------------------------------------------------------------------------

type ISnapshotSource[H models.Holding] interface {

	// Name returns the dataset identifier ("settlement" or "accumulated").
	Name() string

	// -----------------------------------------------------------------------------

	// ReadAll reads every source file and returns the normalized days,
	// sorted by date ascending.
	ReadAll() ([]models.MDay[H], error)
}
