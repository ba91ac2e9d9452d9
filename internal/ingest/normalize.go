package ingest

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/AngelCh415/dayparting-go/internal/models"
)

var (
	floatPrefix = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`)
	intPrefix   = regexp.MustCompile(`^[-+]?\d+`)
)

// Normalize projects an untrusted row onto NormalizedRecord. It never fails:
// absent or unparsable numeric values become 0.
func Normalize(raw models.RawRecord) models.NormalizedRecord {
	return models.NormalizedRecord{
		StartDate:       text(raw, models.FieldStartDate),
		StartTime:       text(raw, models.FieldStartTime),
		PortfolioName:   text(raw, models.FieldPortfolioName),
		CampaignType:    text(raw, models.FieldCampaignType),
		CampaignName:    text(raw, models.FieldCampaignName),
		Country:         text(raw, models.FieldCountry),
		Status:          text(raw, models.FieldStatus),
		Currency:        text(raw, models.FieldCurrency),
		Budget:          money(raw[models.FieldBudget]),
		TargetingType:   text(raw, models.FieldTargetingType),
		BiddingStrategy: text(raw, models.FieldBiddingStrategy),
		Impressions:     count(raw[models.FieldImpressions]),
		Clicks:          count(raw[models.FieldClicks]),
		CTR:             rate(raw[models.FieldCTR]),
		Spend:           money(raw[models.FieldSpend]),
		CPC:             money(raw[models.FieldCPC]),
		Orders:          count(raw[models.FieldOrders]),
		ACOS:            rate(raw[models.FieldACOS]),
		ROAS:            ratio(raw[models.FieldROAS]),
		Sales:           money(raw[models.FieldSales]),
	}
}

func NormalizeAll(rows []models.RawRecord) []models.NormalizedRecord {
	out := make([]models.NormalizedRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, Normalize(r))
	}
	return out
}

func text(raw models.RawRecord, k string) string { return strings.TrimSpace(raw[k]) }

// money: "$1,234.50" -> 1234.5
func money(s string) float64 {
	s = strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
	return parseFloatPrefix(s)
}

// count: "1,204" -> 1204, "1 204" -> 1204, "12.0" -> 12
func count(s string) int {
	s = strings.Map(func(r rune) rune {
		if r == ',' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	m := intPrefix.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return v
}

// rate: "2.5%" -> 0.025
func rate(s string) float64 {
	s = strings.Replace(strings.TrimSpace(s), "%", "", 1)
	return parseFloatPrefix(s) / 100
}

func ratio(s string) float64 { return parseFloatPrefix(strings.TrimSpace(s)) }

func parseFloatPrefix(s string) float64 {
	m := floatPrefix.FindString(s)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
