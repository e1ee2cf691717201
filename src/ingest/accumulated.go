package ingest

import (
	"path/filepath"

	"holdings-observer/src/logger"
	"holdings-observer/src/models"
	"holdings-observer/src/normalize"
	"holdings-observer/src/utils"
)

// -----------------------------------------------------------------------------
// AccumulatedSource
// -----------------------------------------------------------------------------

// AccumulatedSource reads the accumulated-holdings workbook folder.
// Sheet columns: No, Senet, AlisMiktar, AlisOrtalama, SatisMiktar,
// SatisOrtalama, Toplam, Net, Maliyet, NetYuzde.
type AccumulatedSource struct {
	Dir      string
	Logger   *logger.Logger
	Calendar *utils.TradingCalendar
}

// -----------------------------------------------------------------------------

func NewAccumulatedSource(cfg *models.MConfig, log *logger.Logger) *AccumulatedSource {
	return &AccumulatedSource{
		Dir:      cfg.Data.AccumulatedDir,
		Logger:   log,
		Calendar: utils.GetCalendar(cfg.Data.CalendarMIC),
	}
}

// -----------------------------------------------------------------------------

func (s *AccumulatedSource) Name() string { return "accumulated" }

// -----------------------------------------------------------------------------

// ReadAll normalizes every accumulated workbook into a daily snapshot.
// Unreadable files are logged and skipped; header rows are dropped by the
// normalizer's row filter.
func (s *AccumulatedSource) ReadAll() ([]models.MAccumulatedDay, error) {
	files, err := listSheetFiles(s.Dir)
	if err != nil {
		return nil, err
	}

	days := make([]models.MAccumulatedDay, 0, len(files))
	for _, file := range files {
		rows, err := readSheetRows(file.Path)
		if err != nil {
			s.Logger.Error("accumulated: cannot read %s: %v", file.Path, err)
			continue
		}
		if !s.Calendar.IsTradingDay(file.Date) {
			s.Logger.Warning("accumulated: %s is dated on a non-trading day", filepath.Base(file.Path))
		}

		raw := make([]models.MAccumulatedRow, 0, len(rows))
		for _, row := range rows {
			raw = append(raw, models.MAccumulatedRow{
				Seq:        cell(row, 0),
				Code:       cell(row, 1),
				BuyQty:     cell(row, 2),
				BuyAvg:     cell(row, 3),
				SellQty:    cell(row, 4),
				SellAvg:    cell(row, 5),
				GrossTotal: cell(row, 6),
				Net:        cell(row, 7),
				AvgCost:    cell(row, 8),
				NetPct:     cell(row, 9),
			})
		}
		days = append(days, normalize.NormalizeAccumulated(raw, file.Date))
	}

	s.Logger.Info("accumulated: read %d of %d workbooks in %s", len(days), len(files), s.Dir)
	return days, nil
}
