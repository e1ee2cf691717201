package series

import (
	"fmt"
	"sort"
	"sync"

	"holdings-observer/src/models"
)

// -----------------------------------------------------------------------------
// Store
// -----------------------------------------------------------------------------

// Store holds the ordered daily snapshots of one dataset kind. Load replaces
// the series wholesale under the write lock, so readers always see either the
// previous complete series or the new one, never a half-built slice.
type Store[H models.Holding] struct {
	mu   sync.RWMutex
	days []models.MDay[H]
}

// -----------------------------------------------------------------------------

func NewStore[H models.Holding]() *Store[H] {
	return &Store[H]{}
}

// -----------------------------------------------------------------------------

// Load replaces the entire series. Input may arrive in any order; it is
// sorted by date ascending. Two snapshots on the same date is a caller bug
// and rejects the whole load, leaving the previous series in place.
func (s *Store[H]) Load(days []models.MDay[H]) error {
	sorted := make([]models.MDay[H], len(days))
	copy(sorted, days)

	// Lexical order of YYYY-MM-DD strings is calendar order; no time.Time,
	// no timezone drift.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Date == sorted[i-1].Date {
			return fmt.Errorf("duplicate snapshot date %s", sorted[i].Date)
		}
	}

	s.mu.Lock()
	s.days = sorted
	s.mu.Unlock()
	return nil
}

// -----------------------------------------------------------------------------

// Len returns the number of loaded days.
func (s *Store[H]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.days)
}

// -----------------------------------------------------------------------------

// Dates returns every loaded date in ascending order.
func (s *Store[H]) Dates() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dates := make([]string, len(s.days))
	for i, d := range s.days {
		dates[i] = d.Date
	}
	return dates
}

// -----------------------------------------------------------------------------

// Days returns the full series in date order.
func (s *Store[H]) Days() []models.MDay[H] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.MDay[H], len(s.days))
	copy(out, s.days)
	return out
}

// -----------------------------------------------------------------------------

// SeriesFor extracts one security's per-day records in date order. Days where
// the code is absent are skipped; there is no forward-fill.
func (s *Store[H]) SeriesFor(code string) []models.MDated[H] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.MDated[H]
	for _, day := range s.days {
		for _, h := range day.Holdings {
			if h.HoldingCode() == code {
				out = append(out, models.MDated[H]{Date: day.Date, Holding: h})
				break
			}
		}
	}
	return out
}

// -----------------------------------------------------------------------------

// RankHistory extracts one security's (date, rank) points in date order.
func (s *Store[H]) RankHistory(code string) []models.MRankPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.MRankPoint
	for _, day := range s.days {
		for _, h := range day.Holdings {
			if h.HoldingCode() == code {
				out = append(out, models.MRankPoint{Date: day.Date, Rank: h.HoldingRank()})
				break
			}
		}
	}
	return out
}

// -----------------------------------------------------------------------------

// AllCodes returns the union of codes observed across all days, sorted.
func (s *Store[H]) AllCodes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, day := range s.days {
		for _, h := range day.Holdings {
			seen[h.HoldingCode()] = struct{}{}
		}
	}

	codes := make([]string, 0, len(seen))
	for c := range seen {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// -----------------------------------------------------------------------------

// RangeBetween returns the snapshots with start <= date <= end, inclusive on
// both ends.
func (s *Store[H]) RangeBetween(start, end string) []models.MDay[H] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.MDay[H]
	for _, day := range s.days {
		if day.Date >= start && day.Date <= end {
			out = append(out, day)
		}
	}
	return out
}

// -----------------------------------------------------------------------------

// LatestOrFor returns the snapshot for the given date, or the most recent
// snapshot when date is empty. The second return is false when the series is
// empty or the date is absent.
func (s *Store[H]) LatestOrFor(date string) (models.MDay[H], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.days) == 0 {
		return models.MDay[H]{}, false
	}
	if date == "" {
		return s.days[len(s.days)-1], true
	}
	for _, day := range s.days {
		if day.Date == date {
			return day, true
		}
	}
	return models.MDay[H]{}, false
}
