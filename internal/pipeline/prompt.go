package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/AngelCh415/dayparting-go/internal/metrics"
	"github.com/AngelCh415/dayparting-go/internal/models"
)

const rankSize = 3

const questions = `Please provide:
1. The top 3 performing hours based on CTR and ROAS.
2. The worst 3 performing hours based on CTR and ROAS.
3. Recommendations for optimizing the advertising schedule.
4. Any other insights or patterns you notice in the data.`

// HourlyPrompt embeds the hourly aggregate plus the precomputed rankings.
func HourlyPrompt(ms []models.HourlyMetric) (string, error) {
	data, err := json.MarshalIndent(ms, "", "  ")
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("Analyze the following hourly advertising performance data for dayparting optimization:\n")
	b.Write(data)
	b.WriteString("\n\n")
	if len(ms) > 0 {
		b.WriteString("Precomputed rankings (hour of day, ties broken by earlier hour):\n")
		writeRank(&b, "Top hours by CTR", metrics.Top(ms, metrics.ByCTR, rankSize))
		writeRank(&b, "Top hours by ROAS", metrics.Top(ms, metrics.ByROAS, rankSize))
		writeRank(&b, "Bottom hours by CTR", metrics.Bottom(ms, metrics.ByCTR, rankSize))
		writeRank(&b, "Bottom hours by ROAS", metrics.Bottom(ms, metrics.ByROAS, rankSize))
		b.WriteString("\n")
	}
	b.WriteString(questions)
	return b.String(), nil
}

func RecordsPrompt(rs []models.NormalizedRecord) (string, error) {
	data, err := json.Marshal(rs)
	if err != nil {
		return "", err
	}
	return "Analyze the following sales data and provide insights for dayparting:\n" +
		string(data) + "\n\n" + questions, nil
}

func writeRank(b *strings.Builder, title string, ms []models.HourlyMetric) {
	hours := make([]string, 0, len(ms))
	for _, m := range ms {
		hours = append(hours, fmt.Sprintf("%02d:00 (ctr=%.4f, roas=%.2f)", m.Hour, m.CTR, m.ROAS))
	}
	fmt.Fprintf(b, "- %s: %s\n", title, strings.Join(hours, ", "))
}
