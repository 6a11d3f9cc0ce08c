package textquery

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func queryCSS(body []byte, selector string, maxResults int) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var values []string
	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if text := strings.TrimSpace(s.Text()); text != "" {
			values = append(values, text)
		}
		return maxResults <= 0 || len(values) < maxResults
	})

	return newResult(ModeCSS, values), nil
}
