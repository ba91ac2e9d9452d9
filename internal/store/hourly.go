package store

import (
	"sort"
	"strings"
	"time"

	"github.com/AngelCh415/dayparting-go/internal/models"
)

// Month-first only: 03/04/2024 is March 4th, never April 3rd.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"1/2/06",
	// formato 14 de Excel (mm-dd-yy)
	"01-02-06",
	"1-2-06",
	"01-02-2006",
	"1-2-2006",
	"Jan 2, 2006",
	"Jan 02, 2006",
	"January 2, 2006",
	"2-Jan-2006",
}

var clockLayouts = []string{
	"15:04:05",
	"15:04",
	"3:04:05 PM",
	"3:04 PM",
	"3 PM",
	"3PM",
}

// HourOf parses "<date> <clock>" as a wall-clock time (UTC, so no DST gap
// can move it) and returns its hour. ok is false when nothing matches.
func HourOf(date, clock string) (int, bool) {
	date, clock = strings.TrimSpace(date), strings.ToUpper(strings.TrimSpace(clock))
	if date == "" || clock == "" {
		return 0, false
	}
	v := date + " " + clock
	for _, dl := range dateLayouts {
		for _, cl := range clockLayouts {
			if t, err := time.ParseInLocation(dl+" "+cl, v, time.UTC); err == nil {
				return t.Hour(), true
			}
		}
	}
	return 0, false
}

type HourlyStore struct {
	agg     map[int]*models.HourBucket
	dropped int
}

func NewHourlyStore() *HourlyStore {
	return &HourlyStore{agg: make(map[int]*models.HourBucket)}
}

// Add reports false when the record's timestamp cannot be parsed; the
// record is then left out of every bucket.
func (s *HourlyStore) Add(r models.NormalizedRecord) bool {
	h, ok := HourOf(r.StartDate, r.StartTime)
	if !ok {
		s.dropped++
		return false
	}
	b, ok := s.agg[h]
	if !ok {
		b = &models.HourBucket{Hour: h}
		s.agg[h] = b
	}
	b.Impressions += r.Impressions
	b.Clicks += r.Clicks
	b.Spend += r.Spend
	b.Orders += r.Orders
	b.Sales += r.Sales
	return true
}

func (s *HourlyStore) Dropped() int { return s.dropped }

func (s *HourlyStore) Buckets() []models.HourBucket {
	out := make([]models.HourBucket, 0, len(s.agg))
	for _, b := range s.agg {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}
