package gelbeseiten

import (
	"fmt"
	"sync"
	"time"

	"gelbeseiten-scraper/config"
	"gelbeseiten-scraper/models"
	"gelbeseiten-scraper/utils"
)

// Scraper crawls one profession at a time through a Session, clicking
// "load more" until a page yields no listings or cannot be advanced.
type Scraper struct {
	session  Session
	location string
	maxPages int

	closeOnce sync.Once
	closeErr  error
}

func NewScraper(session Session, cfg *config.Config) *Scraper {
	return &Scraper{
		session:  session,
		location: cfg.Location,
		maxPages: cfg.MaxPages,
	}
}

// crawlState lives for one FetchListings call.
type crawlState struct {
	listings []models.Listing
	emitted  map[string]int
	progress *models.Progress
	pages    int
}

// listingKey identifies a listing across snapshots.
func listingKey(l models.Listing) string {
	return l.Name + "\x00" + l.Address + "\x00" + l.Phone
}

// appendNew adds the listings of page that earlier snapshots did not
// already contain. Load more appends to the page, so every snapshot repeats
// the earlier listings; equal listings within one page are all kept, by
// counting occurrences per key against what was emitted before.
func (st *crawlState) appendNew(page []models.Listing) int {
	added := 0
	occurrences := make(map[string]int, len(page))
	for _, l := range page {
		key := listingKey(l)
		n := occurrences[key]
		occurrences[key]++
		if n < st.emitted[key] {
			continue
		}
		st.emitted[key]++
		st.listings = append(st.listings, l)
		added++
	}
	return added
}

// FetchListings collects every listing for profession at the scraper's
// location. Session errors are returned as is; the listings collected up
// to that point are discarded.
func (s *Scraper) FetchListings(profession string) (models.CrawlResult, error) {
	start := time.Now()
	result := models.CrawlResult{Profession: profession}

	if err := s.session.Open(profession, s.location); err != nil {
		return result, fmt.Errorf("open %q: %w", profession, err)
	}

	st := &crawlState{emitted: make(map[string]int)}
	for {
		utils.Debug("Extracting data (page %d)...", st.pages+1)

		snapshot, err := s.session.Snapshot()
		if err != nil {
			return result, fmt.Errorf("snapshot %q page %d: %w", profession, st.pages+1, err)
		}
		st.pages++
		utils.Debug("Snapshot %d is %d bytes", st.pages, len(snapshot))

		page, err := Extract(snapshot, profession, s.location)
		if err != nil {
			return result, fmt.Errorf("extract %q page %d: %w", profession, st.pages, err)
		}

		if len(page) == 0 {
			utils.Debug("No listings found on this page. Stopping.")
			break
		}

		added := st.appendNew(page)
		utils.Debug("Page %d: %d listings, %d new", st.pages, len(page), added)

		if p, ok := ExtractProgress(snapshot); ok {
			st.progress = &p
			utils.Debug("Progress: %d/%d entries loaded", p.Shown, p.Total)
		}

		if s.maxPages > 0 && st.pages >= s.maxPages {
			utils.Warn("Reached page limit %d for %q", s.maxPages, profession)
			break
		}

		advanced, err := s.session.AdvancePage()
		if err != nil {
			return result, fmt.Errorf("advance %q page %d: %w", profession, st.pages, err)
		}
		if !advanced {
			utils.Debug("No 'Mehr anzeigen' button found or it is not clickable. Ending pagination.")
			break
		}
	}

	result.Listings = st.listings
	result.Pages = st.pages
	result.Progress = st.progress
	result.Duration = time.Since(start)

	utils.Debug("Total listings found for %q: %d", profession, len(st.listings))
	return result, nil
}

// Close releases the session exactly once.
func (s *Scraper) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.session.Close()
	})
	return s.closeErr
}
