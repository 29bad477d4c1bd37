package services

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"gelbeseiten-scraper/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	results map[string][]models.Listing
	errs    map[string]error
	calls   []string
}

func (f *fakeFetcher) FetchListings(profession string) (models.CrawlResult, error) {
	f.calls = append(f.calls, profession)
	if err := f.errs[profession]; err != nil {
		return models.CrawlResult{Profession: profession}, err
	}
	return models.CrawlResult{Profession: profession, Listings: f.results[profession], Pages: 1}, nil
}

type fakeSink struct {
	name   string
	failOn string
	saved  map[string]int
}

func (s *fakeSink) Name() string { return s.name }

func (s *fakeSink) Save(profession string, listings []models.Listing) error {
	if profession == s.failOn {
		return errors.New("disk full")
	}
	if s.saved == nil {
		s.saved = make(map[string]int)
	}
	s.saved[profession] = len(listings)
	return nil
}

// stepClock advances by step on every call.
func stepClock(step time.Duration) func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now := t
		t = t.Add(step)
		return now
	}
}

func listings(names ...string) []models.Listing {
	out := make([]models.Listing, 0, len(names))
	for _, n := range names {
		out = append(out, models.Listing{Name: n})
	}
	return out
}

func TestRunnerRun(t *testing.T) {
	t.Parallel()

	t.Run("saves results and records metrics", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{results: map[string][]models.Listing{
			"arzt":         listings("A", "B"),
			"rechtsanwalt": listings("C"),
		}}
		sink := &fakeSink{}
		r := NewRunner(fetcher, "München", sink)
		r.now = stepClock(1500 * time.Millisecond)

		m, all := r.Run([]string{"arzt", "rechtsanwalt"})

		assert.Equal(t, []string{"arzt", "rechtsanwalt"}, fetcher.calls)
		assert.Equal(t, map[string]int{"arzt": 2, "rechtsanwalt": 1}, sink.saved)
		assert.Len(t, all, 3)

		assert.Equal(t, "München", m.Location)
		assert.Equal(t, []string{"arzt", "rechtsanwalt"}, m.Order)
		assert.Equal(t, models.ProfessionMetrics{Entries: 2, TimeSec: 1.5}, m.Professions["arzt"])
		assert.Equal(t, models.ProfessionMetrics{Entries: 1, TimeSec: 1.5}, m.Professions["rechtsanwalt"])
		assert.Equal(t, models.RunTotals{Entries: 3, TimeSec: 10.5, TimeMin: 0.2}, m.Totals)
	})

	t.Run("failed profession is skipped with zero entries", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{
			results: map[string][]models.Listing{"arzt": listings("A")},
			errs:    map[string]error{"steuerberatung": errors.New("navigation failed")},
		}
		sink := &fakeSink{}
		r := NewRunner(fetcher, "Berlin", sink)

		m, all := r.Run([]string{"steuerberatung", "arzt"})

		assert.Equal(t, []string{"steuerberatung", "arzt"}, fetcher.calls)
		assert.Equal(t, 0, m.Professions["steuerberatung"].Entries)
		assert.Equal(t, 1, m.Professions["arzt"].Entries)
		assert.Equal(t, 1, m.Totals.Entries)
		assert.Len(t, all, 1)
		assert.NotContains(t, sink.saved, "steuerberatung")
	})

	t.Run("empty result is not exported", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{}
		sink := &fakeSink{}
		r := NewRunner(fetcher, "Berlin", sink)

		m, all := r.Run([]string{"arzt"})

		assert.Empty(t, all)
		assert.Nil(t, sink.saved)
		require.Contains(t, m.Professions, "arzt")
		assert.Equal(t, 0, m.Professions["arzt"].Entries)
	})

	t.Run("sink failure counts as zero entries", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{results: map[string][]models.Listing{
			"arzt":         listings("A"),
			"rechtsanwalt": listings("B"),
		}}
		sink := &fakeSink{failOn: "arzt"}
		r := NewRunner(fetcher, "Berlin", sink)

		m, all := r.Run([]string{"arzt", "rechtsanwalt"})

		assert.Equal(t, 0, m.Professions["arzt"].Entries)
		assert.Equal(t, 1, m.Professions["rechtsanwalt"].Entries)
		assert.Equal(t, listings("B"), all)
	})

	t.Run("entries written by one sink survive another sink failing", func(t *testing.T) {
		t.Parallel()

		fetcher := &fakeFetcher{results: map[string][]models.Listing{
			"arzt": listings("A", "B"),
		}}
		files := &fakeSink{name: "files"}
		db := &fakeSink{name: "postgres", failOn: "arzt"}
		r := NewRunner(fetcher, "Berlin", files, db)

		m, all := r.Run([]string{"arzt"})

		assert.Equal(t, map[string]int{"arzt": 2}, files.saved)
		assert.Nil(t, db.saved)
		assert.Equal(t, 2, m.Professions["arzt"].Entries)
		assert.Equal(t, 2, m.Totals.Entries)
		assert.Len(t, all, 2)
	})
}

func TestRecordProfession(t *testing.T) {
	t.Parallel()

	m := NewRunMetrics("Köln")
	RecordProfession(m, "arzt", 3, 1249*time.Millisecond)
	RecordProfession(m, "elektro", 0, 0)
	RecordProfession(m, "arzt", 4, 2*time.Second)

	assert.Equal(t, []string{"arzt", "elektro"}, m.Order)
	assert.Equal(t, models.ProfessionMetrics{Entries: 4, TimeSec: 2}, m.Professions["arzt"])

	RecordProfession(m, "x", 1, 1251*time.Millisecond)
	assert.Equal(t, 1.3, m.Professions["x"].TimeSec)
}

func TestPrintReport(t *testing.T) {
	t.Parallel()

	m := NewRunMetrics("München")
	RecordProfession(m, "rechtsanwalt", 212, 95*time.Second)
	RecordProfession(m, "arzt", 0, 3*time.Second)
	FinishRun(m, 212, 98*time.Second)

	var buf bytes.Buffer
	PrintReport(&buf, m)

	out := buf.String()
	assert.Contains(t, out, "München")
	assert.Contains(t, out, "rechtsanwalt")
	assert.Contains(t, out, "212")
	assert.Contains(t, out, "Total")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("rechtsanwalt")), bytes.Index(buf.Bytes(), []byte("arzt")))
}
