package services

import (
	"io"
	"math"
	"time"

	"gelbeseiten-scraper/models"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func NewRunMetrics(location string) *models.RunMetrics {
	return &models.RunMetrics{
		Location:    location,
		Professions: make(map[string]models.ProfessionMetrics),
	}
}

// RecordProfession stores the outcome of one profession. Recording the
// same profession twice keeps its first position in the order.
func RecordProfession(m *models.RunMetrics, profession string, entries int, elapsed time.Duration) {
	if _, ok := m.Professions[profession]; !ok {
		m.Order = append(m.Order, profession)
	}
	m.Professions[profession] = models.ProfessionMetrics{
		Entries: entries,
		TimeSec: round1(elapsed.Seconds()),
	}
}

func FinishRun(m *models.RunMetrics, entries int, elapsed time.Duration) {
	m.Totals = models.RunTotals{
		Entries: entries,
		TimeSec: round1(elapsed.Seconds()),
		TimeMin: round1(elapsed.Minutes()),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// PrintReport renders the per-profession counts and run totals as a table.
func PrintReport(w io.Writer, m *models.RunMetrics) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle("Scrape complete: " + m.Location)
	t.AppendHeader(table.Row{"#", "Profession", "Entries", "Time (s)"})

	for i, p := range m.Order {
		pm := m.Professions[p]
		t.AppendRow(table.Row{i + 1, p, pm.Entries, pm.TimeSec})
	}

	t.AppendFooter(table.Row{"", "Total", m.Totals.Entries, m.Totals.TimeSec})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 4, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	t.Render()
}
