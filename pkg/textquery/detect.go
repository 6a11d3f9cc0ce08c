package textquery

import (
	"bytes"
	"strings"
)

// Selection modes.
const (
	ModeCSS   = "css"
	ModeXPath = "xpath"
	ModeRegex = "regex"
)

// DetectMode guesses the mode of an expression. Path-like expressions are
// XPath; everything else is treated as a CSS selector.
func DetectMode(expression string) string {
	e := strings.TrimSpace(expression)
	if strings.HasPrefix(e, "/") || strings.HasPrefix(e, "(/") || strings.HasPrefix(e, "./") {
		return ModeXPath
	}
	return ModeCSS
}

// looksLikeXML reports whether a body is an XML document rather than HTML,
// e.g. a feed or sitemap returned as raw HTML by the scraper.
func looksLikeXML(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return bytes.HasPrefix(trimmed, []byte("<?xml")) && !bytes.Contains(bytes.ToLower(trimmed[:min(len(trimmed), 512)]), []byte("<html"))
}
