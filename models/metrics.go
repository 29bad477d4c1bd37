package models

import (
	"bytes"
	"encoding/json"
	"sort"
)

// ProfessionMetrics is the per-profession entry of the metrics file.
type ProfessionMetrics struct {
	Entries int     `json:"entries"`
	TimeSec float64 `json:"time_sec"`
}

type RunTotals struct {
	Entries int     `json:"entries"`
	TimeSec float64 `json:"time_sec"`
	TimeMin float64 `json:"time_min"`
}

// RunMetrics summarises one run over all professions for a location.
// Order keeps the professions in the sequence they were crawled.
type RunMetrics struct {
	Location    string                       `json:"location"`
	Professions map[string]ProfessionMetrics `json:"professions"`
	Totals      RunTotals                    `json:"totals"`
	Order       []string                     `json:"-"`
}

// MarshalJSON writes professions in crawl order. Professions missing from
// Order follow, sorted by name.
func (m RunMetrics) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"location":`)
	if err := writeJSONValue(&buf, m.Location); err != nil {
		return nil, err
	}

	buf.WriteString(`,"professions":{`)
	for i, name := range m.professionOrder() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONValue(&buf, name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONValue(&buf, m.Professions[name]); err != nil {
			return nil, err
		}
	}

	buf.WriteString(`},"totals":`)
	if err := writeJSONValue(&buf, m.Totals); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m RunMetrics) professionOrder() []string {
	names := make([]string, 0, len(m.Professions))
	listed := make(map[string]bool, len(m.Order))
	for _, name := range m.Order {
		if _, ok := m.Professions[name]; ok && !listed[name] {
			listed[name] = true
			names = append(names, name)
		}
	}

	var rest []string
	for name := range m.Professions {
		if !listed[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

func writeJSONValue(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode terminates every value with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
