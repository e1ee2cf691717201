package analysis

import (
	"sort"

	"holdings-observer/src/logger"
	"holdings-observer/src/models"
	"holdings-observer/src/series"
)

// -----------------------------------------------------------------------------
// MomentumAnalyzer
// -----------------------------------------------------------------------------

// MomentumAnalyzer classifies rank movement over a trailing window of days.
// Trends are computed on demand from the settlement store and never cached.
type MomentumAnalyzer struct {
	Config *models.MConfig
	Store  *series.Store[models.MSettlementHolding]
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewMomentumAnalyzer(cfg *models.MConfig, store *series.Store[models.MSettlementHolding], log *logger.Logger) *MomentumAnalyzer {
	return &MomentumAnalyzer{
		Config: cfg,
		Store:  store,
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

// ClassifyTrend inspects the last window entries of a rank history.
// change = first rank - last rank of the window: positive means the rank
// number fell, i.e. the security climbed the board.
//
// Band thresholds (band from config, default 3), all inclusive:
//
//	change >  band  -> strong_up
//	0 < change <= band -> up
//	change == 0     -> flat
//	-band <= change < 0 -> down
//	change < -band  -> strong_down
func (a *MomentumAnalyzer) ClassifyTrend(history []models.MRankPoint, window int) models.MMomentumTrend {
	if window <= 0 {
		window = a.Config.Momentum.LookbackDays
	}

	recent := history
	if len(recent) > window {
		recent = recent[len(recent)-window:]
	}
	if len(recent) < 2 {
		return models.MMomentumTrend{
			Trend:      models.TrendInsufficient,
			DataPoints: len(recent),
		}
	}

	start := recent[0].Rank
	end := recent[len(recent)-1].Rank
	change := start - end

	band := a.Config.Momentum.TrendBand
	if band <= 0 {
		band = 3
	}

	trend := models.TrendFlat
	switch {
	case change > band:
		trend = models.TrendStrongUp
	case change > 0:
		trend = models.TrendUp
	case change < -band:
		trend = models.TrendStrongDown
	case change < 0:
		trend = models.TrendDown
	}

	return models.MMomentumTrend{
		Trend:       trend,
		StartRank:   &start,
		EndRank:     &end,
		Change:      change,
		IsImproving: change > 0,
		DataPoints:  len(recent),
	}
}

// -----------------------------------------------------------------------------

// TopMomentum ranks every security with at least minSamples days of history
// by the degree of rank improvement over the window. Only improving
// securities are kept. Ties break on code, ascending, so the board order is
// reproducible.
func (a *MomentumAnalyzer) TopMomentum(minSamples, window int) []models.MStockMomentum {
	if minSamples <= 0 {
		minSamples = a.Config.Momentum.MinSamples
	}

	var board []models.MStockMomentum
	for _, code := range a.Store.AllCodes() {
		history := a.Store.RankHistory(code)
		if len(history) < minSamples {
			continue
		}
		trend := a.ClassifyTrend(history, window)
		if !trend.IsImproving {
			continue
		}
		board = append(board, models.MStockMomentum{
			Code:           code,
			MMomentumTrend: trend,
			History:        history,
		})
	}

	// AllCodes is sorted, so a stable sort leaves equal-change entries in
	// code order.
	sort.SliceStable(board, func(i, j int) bool {
		return board[i].Change > board[j].Change
	})
	return board
}
