// Package urllist parses free-form user input into an ordered list of URLs.
//
// Accepted forms are a JSON array literal, a comma-separated list, or a
// single bare URL. Parsing never fails: input that looks like a JSON array but
// does not decode is handled as comma-separated or bare text instead.
package urllist

import (
	"encoding/json"
	"strings"
	"unicode"
)

// Parse splits input into trimmed URL strings, preserving order.
//
// Empty entries produced by the comma form are kept, so "a,b," yields
// ["a", "b", ""]. Callers that need a clean list should use ParseList.
func Parse(input string) []string {
	if input == "" {
		return []string{}
	}

	// The bracket check looks at the trimmed text, but the array is decoded
	// from the raw input, which may only be padded with JSON whitespace.
	trimmed := trim(input)
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		if urls, ok := parseJSONArray(input); ok {
			return urls
		}
	}

	if strings.Contains(input, ",") {
		parts := strings.Split(input, ",")
		for i, p := range parts {
			parts[i] = trim(p)
		}
		return parts
	}

	return []string{trimmed}
}

// ParseList is Parse with empty entries removed. It suits tag and path
// lists where a stray separator carries no meaning.
func ParseList(input string) []string {
	parsed := Parse(input)
	out := make([]string, 0, len(parsed))
	for _, s := range parsed {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// trim strips Unicode white space and the byte order mark.
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}

// parseJSONArray decodes a JSON array and stringifies each element. A null
// element has no string form and makes the whole input a parse miss.
func parseJSONArray(s string) ([]string, bool) {
	if !json.Valid([]byte(s)) {
		return nil, false
	}

	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var elems []any
	if err := dec.Decode(&elems); err != nil || elems == nil {
		return nil, false
	}

	urls := make([]string, 0, len(elems))
	for _, elem := range elems {
		if elem == nil {
			return nil, false
		}
		urls = append(urls, trim(stringify(elem)))
	}
	return urls, true
}

// stringify renders a decoded JSON value the way a string conversion in a
// browser would: objects become "[object Object]", arrays join their
// elements with commas (null elements render empty), and numbers keep their
// source text.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case json.Number:
		return val.String()
	case map[string]any:
		return "[object Object]"
	case []any:
		parts := make([]string, len(val))
		for i, e := range val {
			parts[i] = stringify(e)
		}
		return strings.Join(parts, ",")
	default:
		return ""
	}
}
