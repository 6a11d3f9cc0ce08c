// Package textquery selects text out of scraped page content with CSS
// selectors, XPath expressions or regular expressions.
package textquery

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/antchfx/xpath"
)

// Query is a compiled selection expression.
type Query struct {
	mode       string
	expression string

	xpath *xpath.Expr
	regex *regexp.Regexp
}

// Compile checks an expression for the given mode. If mode is empty it is
// detected from the expression.
func Compile(mode, expression string) (*Query, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, fmt.Errorf("selector expression is required")
	}
	if mode == "" {
		mode = DetectMode(expression)
	}

	q := &Query{mode: mode, expression: expression}
	switch mode {
	case ModeCSS:
		if _, err := cascadia.Compile(expression); err != nil {
			return nil, fmt.Errorf("invalid CSS selector: %w", err)
		}
	case ModeXPath:
		expr, err := xpath.Compile(expression)
		if err != nil {
			return nil, fmt.Errorf("invalid XPath expression: %w", err)
		}
		q.xpath = expr
	case ModeRegex:
		re, err := regexp.Compile(expression)
		if err != nil {
			return nil, fmt.Errorf("invalid regex: %w", err)
		}
		q.regex = re
	default:
		return nil, fmt.Errorf("unknown mode: %q (valid: css, xpath, regex)", mode)
	}
	return q, nil
}

// Mode returns the selection mode.
func (q *Query) Mode() string { return q.mode }

// String returns the expression.
func (q *Query) String() string { return q.expression }

// Run selects from body, returning at most maxResults values (0 means all).
// Empty text matches are skipped for css and xpath.
func (q *Query) Run(body []byte, maxResults int) (*Result, error) {
	switch q.mode {
	case ModeCSS:
		return queryCSS(body, q.expression, maxResults)
	case ModeXPath:
		if looksLikeXML(body) {
			return queryXPathXML(body, q.xpath, maxResults)
		}
		return queryXPathHTML(body, q.xpath, maxResults)
	default:
		return queryRegex(body, q.regex, maxResults), nil
	}
}
