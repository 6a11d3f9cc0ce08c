package textquery

import "regexp"

// queryRegex returns the first capture group of each match, or the whole
// match when the expression has no groups.
func queryRegex(body []byte, re *regexp.Regexp, maxResults int) *Result {
	hasGroups := re.NumSubexp() > 0

	var values []string
	for _, match := range re.FindAllSubmatch(body, -1) {
		if maxResults > 0 && len(values) >= maxResults {
			break
		}
		if hasGroups {
			values = append(values, string(match[1]))
		} else {
			values = append(values, string(match[0]))
		}
	}
	return newResult(ModeRegex, values)
}
