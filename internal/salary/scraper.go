package salary

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const scraperUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// FetchScale scrapes a rookie-scale salary table from an HTML page. It is
// the fallback when no salary CSV ships with the deployment. The page is
// expected to contain a table whose rows start with the pick number followed
// by the four contract-year amounts.
func FetchScale(ctx context.Context, url string) (Scale, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building scale request: %w", err)
	}
	req.Header.Set("User-Agent", scraperUserAgent)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching rookie scale page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rookie scale page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing rookie scale page: %w", err)
	}

	scale := make(Scale)
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		// pick + four contract years
		if cells.Length() < 5 {
			return
		}

		pick, err := strconv.Atoi(strings.TrimSpace(cells.Eq(0).Text()))
		if err != nil || pick < 1 || pick > 60 {
			return
		}

		var total float64
		for i := 1; i <= 4; i++ {
			amount, err := parseDollars(cells.Eq(i).Text())
			if err != nil {
				return
			}
			total += amount
		}

		scale[pick] = total / 4
	})

	if len(scale) == 0 {
		return nil, fmt.Errorf("no rookie scale rows found at %s", url)
	}

	log.Printf("[salary] Scraped rookie scale for %d picks from %s", len(scale), url)
	return scale, nil
}

// parseDollars converts amounts like "$12,569,100" or "-" to a float. A bare
// dash means the contract year does not exist and counts as zero.
func parseDollars(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" || text == "-" || text == "—" {
		return 0, nil
	}

	text = strings.ReplaceAll(text, "$", "")
	text = strings.ReplaceAll(text, ",", "")

	return strconv.ParseFloat(text, 64)
}
