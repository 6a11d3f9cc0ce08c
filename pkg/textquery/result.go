package textquery

// Result holds the values selected from a single document.
type Result struct {
	Values []string `json:"values"`
	Count  int      `json:"count"`
	Mode   string   `json:"mode"`
}

func newResult(mode string, values []string) *Result {
	if values == nil {
		values = []string{}
	}
	return &Result{Values: values, Count: len(values), Mode: mode}
}
