package gelbeseiten

import (
	"fmt"
	"strconv"
	"strings"

	"gelbeseiten-scraper/models"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// CSS locators of the results page.
const (
	selItem     = "article.mod-Treffer"
	selName     = "h2.mod-Treffer__name"
	selAddress  = ".mod-AdresseKompakt__adress-text"
	selPhone    = ".mod-TelefonnummerKompakt__phoneNumber"
	selRating   = ".mod-BewertungKompakt__number"
	selReviews  = ".mod-BewertungKompakt__text"
	selCategory = "p.mod-Treffer--besteBranche"
	selWebsite  = ".mod-WebseiteKompakt a"

	selShown = "#loadMoreGezeigteAnzahl"
	selTotal = "#loadMoreGesamtzahl"
)

// Extract returns the listings of one results page snapshot in document
// order. Items without a name are skipped; any other missing field is left
// empty. An empty result means the page holds no more listings.
func Extract(snapshot, profession, location string) ([]models.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snapshot))
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	var listings []models.Listing
	doc.Find(selItem).Each(func(_ int, item *goquery.Selection) {
		name := fieldText(item, selName)
		if name == "" {
			return
		}

		listings = append(listings, models.Listing{
			Name:       name,
			Profession: profession,
			Location:   location,
			Address:    fieldText(item, selAddress),
			Phone:      fieldText(item, selPhone),
			Rating:     fieldText(item, selRating),
			Reviews:    fieldText(item, selReviews),
			Category:   fieldText(item, selCategory),
			Website:    fieldAttr(item, selWebsite, "href"),
		})
	})

	return listings, nil
}

// ExtractProgress reads the "shown / total" counters. ok is false when the
// page does not carry them.
func ExtractProgress(snapshot string) (p models.Progress, ok bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snapshot))
	if err != nil {
		return p, false
	}

	shown := doc.Find(selShown).First()
	total := doc.Find(selTotal).First()
	if shown.Length() == 0 || total.Length() == 0 {
		return p, false
	}

	return models.Progress{
		Shown: counter(shown.Text()),
		Total: counter(total.Text()),
	}, true
}

// counter parses "1.234" style numbers; anything unreadable is 0.
func counter(s string) int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ".", "")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func fieldText(item *goquery.Selection, selector string) string {
	sel := item.Find(selector).First()
	if sel.Length() == 0 {
		return ""
	}
	return nodeText(sel)
}

func fieldAttr(item *goquery.Selection, selector, attr string) string {
	val, ok := item.Find(selector).First().Attr(attr)
	if !ok {
		return ""
	}
	return strings.TrimSpace(val)
}

// nodeText joins the trimmed text nodes below sel with single spaces, so
// text split across inline elements reads as one line.
func nodeText(sel *goquery.Selection) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			parts = append(parts, strings.Fields(n.Data)...)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, " ")
}
