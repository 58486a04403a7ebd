package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ttpr0/mldmatrix/app"
)

// parseIndices turns "0,1,2" into []int{0,1,2}; an empty string yields
// an empty slice rather than a single zero entry.
func parseIndices(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// validateIndices applies the config's input-validation strictness to
// a parsed --sources/--targets list against the fixture's phantom
// count: STRICT rejects the whole request on the first out-of-range
// index, LENIENT drops just the offending indices and continues with
// whatever remains.
func validateIndices(mode app.ValidationMode, phantomCount int, indices []int, label string) ([]int, error) {
	out := make([]int, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < phantomCount {
			out = append(out, idx)
			continue
		}
		if mode == app.STRICT {
			return nil, fmt.Errorf("%s index %d out of range for %d phantoms", label, idx, phantomCount)
		}
	}
	return out, nil
}
