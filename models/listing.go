package models

import "time"

// Listing is one business entry found on a directory results page.
// Name is always set; every other optional field is empty when the page
// did not carry it.
type Listing struct {
	Name       string
	Profession string
	Location   string
	Address    string
	Phone      string
	Rating     string
	Reviews    string
	Category   string
	Website    string
}

// Progress holds the "shown so far / total" counters the results page
// exposes next to its load-more control.
type Progress struct {
	Shown int
	Total int
}

// CrawlResult is what crawling a single profession produces.
type CrawlResult struct {
	Profession string
	Listings   []Listing
	Pages      int
	Progress   *Progress
	Duration   time.Duration
}
