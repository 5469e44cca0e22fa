package query

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Project returns items unchanged when fields is empty, otherwise a slice of maps
// holding only id and the selected fields of each item. A dotted field such as
// location.city keeps its whole top-level object.
func Project(items any, fields []string) (any, error) {
	if len(fields) == 0 {
		return items, nil
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("project: marshal: %w", err)
	}

	var rows []map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("project: decode: %w", err)
	}

	keep := map[string]bool{"id": true}
	for _, f := range fields {
		top, _, _ := strings.Cut(f, ".")
		keep[top] = true
	}

	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		projected := make(map[string]any, len(keep))
		for k, v := range row {
			if keep[k] {
				projected[k] = v
			}
		}
		out = append(out, projected)
	}
	return out, nil
}
