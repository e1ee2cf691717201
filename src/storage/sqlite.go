package storage

import (
	"database/sql"
	"fmt"

	"holdings-observer/src/logger"
	"holdings-observer/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

// SQLiteArchive is the durable record of normalized snapshots. The in-memory
// series is authoritative while the process runs; the archive lets downstream
// tools query history with plain SQL instead of re-reading spreadsheets.
type SQLiteArchive struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSQLiteArchive(cfg *models.MConfig, log *logger.Logger) (*SQLiteArchive, error) {
	return &SQLiteArchive{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteArchive) Initialize() error {
	dsn := d.Config.Storage.DBPath

	// Open DB
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *SQLiteArchive) createTables() error {
	// SQLite types: REAL for float64, INTEGER for int, TEXT for string
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS settlement_holdings (
			date TEXT,
			code TEXT,
			lot REAL,
			price REAL,
			value REAL,
			pct_of_value REAL,
			total REAL,
			pct_total REAL,
			total_value REAL,
			rank INTEGER,
			PRIMARY KEY (date, code)
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS accumulated_holdings (
			date TEXT,
			code TEXT,
			buy_qty REAL,
			buy_avg REAL,
			sell_qty REAL,
			sell_avg REAL,
			gross_total REAL,
			net REAL,
			avg_cost REAL,
			net_pct REAL,
			rank INTEGER,
			PRIMARY KEY (date, code)
		);
		`,
	}

	for _, q := range queries {
		if _, err := d.DB.Exec(q); err != nil {
			return fmt.Errorf("failed to create archive table: %w", err)
		}
	}
	return nil
}

// -----------------------------------------------------------------------------

// SaveSettlementDays replaces the archived settlement series with the given
// days. Replace-wholesale matches the in-memory series semantics.
func (d *SQLiteArchive) SaveSettlementDays(days []models.MSettlementDay) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM settlement_holdings"); err != nil {
		return fmt.Errorf("failed to clear settlement_holdings: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO settlement_holdings (date, code, lot, price, value, pct_of_value, total, pct_total, total_value, rank)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, day := range days {
		for _, h := range day.Holdings {
			_, err := stmt.Exec(day.Date, h.Code, h.Lot, h.Price, h.Value, h.PctOfValue, h.Total, h.PctTotal, h.TotalValue, h.Rank)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

// SaveAccumulatedDays replaces the archived accumulated series with the given
// days.
func (d *SQLiteArchive) SaveAccumulatedDays(days []models.MAccumulatedDay) error {
	tx, err := d.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM accumulated_holdings"); err != nil {
		return fmt.Errorf("failed to clear accumulated_holdings: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO accumulated_holdings (date, code, buy_qty, buy_avg, sell_qty, sell_avg, gross_total, net, avg_cost, net_pct, rank)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, day := range days {
		for _, h := range day.Holdings {
			_, err := stmt.Exec(day.Date, h.Code, h.BuyQty, h.BuyAvg, h.SellQty, h.SellAvg, h.GrossTotal, h.Net, h.AvgCost, h.NetPct, h.Rank)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

func (d *SQLiteArchive) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
