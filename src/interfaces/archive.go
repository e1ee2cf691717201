package interfaces

import "holdings-observer/src/models"

// -----------------------------------------------------------------------------
// IArchive defines the contract for the durable snapshot store.
// -----------------------------------------------------------------------------

type IArchive interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the database schema and tables.
	Initialize() error

	// -----------------------------------------------------------------------------

	// SaveSettlementDays replaces the archived settlement series.
	SaveSettlementDays(days []models.MSettlementDay) error

	// -----------------------------------------------------------------------------

	// SaveAccumulatedDays replaces the archived accumulated series.
	SaveAccumulatedDays(days []models.MAccumulatedDay) error

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
