package ingest

import (
	"path/filepath"

	"holdings-observer/src/logger"
	"holdings-observer/src/models"
	"holdings-observer/src/normalize"
	"holdings-observer/src/utils"
)

// -----------------------------------------------------------------------------
// SettlementSource
// -----------------------------------------------------------------------------

// SettlementSource reads the settlement/clearing workbook folder.
// Sheet columns: No, Senet, Lot, Fiyat, TL, YuzdeTL, Toplam, Yuzde, ToplamTL.
type SettlementSource struct {
	Dir      string
	Logger   *logger.Logger
	Calendar *utils.TradingCalendar
}

// -----------------------------------------------------------------------------

func NewSettlementSource(cfg *models.MConfig, log *logger.Logger) *SettlementSource {
	return &SettlementSource{
		Dir:      cfg.Data.SettlementDir,
		Logger:   log,
		Calendar: utils.GetCalendar(cfg.Data.CalendarMIC),
	}
}

// -----------------------------------------------------------------------------

func (s *SettlementSource) Name() string { return "settlement" }

// -----------------------------------------------------------------------------

// ReadAll normalizes every settlement workbook into a daily snapshot.
// A day whose file cannot be read is logged and skipped entirely; it never
// appears as an empty snapshot.
func (s *SettlementSource) ReadAll() ([]models.MSettlementDay, error) {
	files, err := listSheetFiles(s.Dir)
	if err != nil {
		return nil, err
	}

	days := make([]models.MSettlementDay, 0, len(files))
	for _, file := range files {
		rows, err := readSheetRows(file.Path)
		if err != nil {
			s.Logger.Error("settlement: cannot read %s: %v", file.Path, err)
			continue
		}
		if !s.Calendar.IsTradingDay(file.Date) {
			s.Logger.Warning("settlement: %s is dated on a non-trading day", filepath.Base(file.Path))
		}

		raw := make([]models.MSettlementRow, 0, len(rows))
		for _, row := range rows {
			raw = append(raw, models.MSettlementRow{
				Seq:        cell(row, 0),
				Code:       cell(row, 1),
				Lot:        cell(row, 2),
				Price:      cell(row, 3),
				Value:      cell(row, 4),
				PctOfValue: cell(row, 5),
				Total:      cell(row, 6),
				PctTotal:   cell(row, 7),
				TotalValue: cell(row, 8),
			})
		}
		days = append(days, normalize.NormalizeSettlement(raw, file.Date))
	}

	s.Logger.Info("settlement: read %d of %d workbooks in %s", len(days), len(files), s.Dir)
	return days, nil
}
