package usecase

import (
	"sort"
	"strings"
)

// FieldErrors is a field-keyed validation failure. It is returned where the
// caller can correct the offending field and resubmit; handlers render it as
// a 400 with the map as the error body.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return strings.Join(parts, "; ")
}
