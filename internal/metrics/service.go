package metrics

import (
	"sort"

	"github.com/AngelCh415/dayparting-go/internal/models"
	"github.com/AngelCh415/dayparting-go/internal/store"
)

type Aggregate struct {
	Metrics []models.HourlyMetric
	Dropped int // records whose timestamp did not parse
}

type Rank string

const (
	ByCTR  Rank = "ctr"
	ByROAS Rank = "roas"
)

func Build(records []models.NormalizedRecord) Aggregate {
	st := store.NewHourlyStore()
	for _, r := range records {
		st.Add(r)
	}
	return Aggregate{Metrics: Derive(st.Buckets()), Dropped: st.Dropped()}
}

func Derive(buckets []models.HourBucket) []models.HourlyMetric {
	rows := make([]models.HourlyMetric, 0, len(buckets))
	for _, b := range buckets {
		// métricas derivadas, 0 si el divisor es 0
		rows = append(rows, models.HourlyMetric{
			Hour:        b.Hour,
			Impressions: b.Impressions,
			Clicks:      b.Clicks,
			Spend:       b.Spend,
			Orders:      b.Orders,
			Sales:       b.Sales,
			CTR:         safeDivF(float64(b.Clicks), float64(b.Impressions)),
			CPC:         safeDivF(b.Spend, float64(b.Clicks)),
			ROAS:        safeDivF(b.Sales, b.Spend),
		})
	}
	return rows
}

// Top returns the n best hours by the given metric, ties by hour ascending.
func Top(ms []models.HourlyMetric, by Rank, n int) []models.HourlyMetric {
	return ranked(ms, by, n, true)
}

func Bottom(ms []models.HourlyMetric, by Rank, n int) []models.HourlyMetric {
	return ranked(ms, by, n, false)
}

func ranked(ms []models.HourlyMetric, by Rank, n int, desc bool) []models.HourlyMetric {
	if n < 0 {
		n = 0
	}
	rows := append([]models.HourlyMetric(nil), ms...)
	// orden determinista
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := value(rows[i], by), value(rows[j], by)
		if a != b {
			if desc {
				return a > b
			}
			return a < b
		}
		return rows[i].Hour < rows[j].Hour
	})
	return paginate(rows, n, 0)
}

func value(m models.HourlyMetric, by Rank) float64 {
	if by == ByROAS {
		return m.ROAS
	}
	return m.CTR
}

func paginate[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func safeDivF(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
