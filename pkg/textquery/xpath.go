package textquery

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

func queryXPathXML(body []byte, expr *xpath.Expr, maxResults int) (*Result, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	var values []string
	for _, node := range xmlquery.QuerySelectorAll(doc, expr) {
		if maxResults > 0 && len(values) >= maxResults {
			break
		}
		if text := strings.TrimSpace(node.InnerText()); text != "" {
			values = append(values, text)
		}
	}
	return newResult(ModeXPath, values), nil
}

func queryXPathHTML(body []byte, expr *xpath.Expr, maxResults int) (*Result, error) {
	doc, err := htmlquery.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var values []string
	for _, node := range htmlquery.QuerySelectorAll(doc, expr) {
		if maxResults > 0 && len(values) >= maxResults {
			break
		}
		if text := strings.TrimSpace(htmlquery.InnerText(node)); text != "" {
			values = append(values, text)
		}
	}
	return newResult(ModeXPath, values), nil
}
