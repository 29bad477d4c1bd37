package services

import (
	"fmt"
	"time"

	"gelbeseiten-scraper/models"
	"gelbeseiten-scraper/utils"
)

// ListingFetcher crawls all listings of one profession.
type ListingFetcher interface {
	FetchListings(profession string) (models.CrawlResult, error)
}

// Sink persists the listings of one profession.
type Sink interface {
	Name() string
	Save(profession string, listings []models.Listing) error
}

// Runner crawls professions one after another and hands every non-empty
// result to its sinks. A failing profession is logged, recorded with zero
// entries and skipped. A failing sink is logged; the profession keeps its
// entries as long as at least one sink saved them.
type Runner struct {
	fetcher  ListingFetcher
	location string
	sinks    []Sink
	now      func() time.Time
}

func NewRunner(fetcher ListingFetcher, location string, sinks ...Sink) *Runner {
	return &Runner{
		fetcher:  fetcher,
		location: location,
		sinks:    sinks,
		now:      time.Now,
	}
}

// Run returns the metrics of the whole run together with every listing
// that was saved.
func (r *Runner) Run(professions []string) (*models.RunMetrics, []models.Listing) {
	metrics := NewRunMetrics(r.location)
	var all []models.Listing

	start := r.now()
	for idx, prof := range professions {
		utils.Section(fmt.Sprintf("[%d/%d] Scraping profession: %s", idx+1, len(professions), prof))
		profStart := r.now()

		entries := r.scrapeProfession(prof, &all)

		profElapsed := r.now().Sub(profStart)
		elapsed := r.now().Sub(start)
		avg := elapsed / time.Duration(idx+1)
		remaining := avg * time.Duration(len(professions)-idx-1)

		utils.Info("%s took %.1fs | Elapsed: %.1fs | ETA: ~%.1fs",
			prof, profElapsed.Seconds(), elapsed.Seconds(), remaining.Seconds())

		RecordProfession(metrics, prof, entries, profElapsed)
	}

	total := r.now().Sub(start)
	FinishRun(metrics, len(all), total)
	utils.Success("Finished scraping in %.1f seconds.", total.Seconds())

	return metrics, all
}

func (r *Runner) scrapeProfession(prof string, all *[]models.Listing) int {
	result, err := r.fetcher.FetchListings(prof)
	if err != nil {
		utils.Error("Failed to scrape %s: %v", prof, err)
		return 0
	}

	if len(result.Listings) == 0 {
		utils.Warn("No results found for %s", prof)
		return 0
	}

	saved := 0
	for _, sink := range r.sinks {
		if err := sink.Save(prof, result.Listings); err != nil {
			utils.Error("Failed to save %s to %s: %v", prof, sink.Name(), err)
			continue
		}
		saved++
	}
	if saved == 0 {
		return 0
	}

	*all = append(*all, result.Listings...)
	utils.Success("%s: %d entries saved (%d pages)", prof, len(result.Listings), result.Pages)
	utils.Info("Total scraped so far: %d entries", len(*all))
	return len(result.Listings)
}
