package classes

import (
	"sort"

	"github.com/packleader/derbytally/pkg/errors"
)

// Skip is the sentinel mapping target meaning "exclude this class entirely".
// Rows whose label maps to Skip are dropped at merge time.
const Skip Name = "skip"

// Mapping maps raw source class labels (case-sensitive, as sourced) to
// standard class names or the Skip sentinel. Every distinct label observed
// across all sources must have an entry before merging proceeds; there is no
// implicit default.
type Mapping map[string]Name

// Resolve returns the standard class for a raw label. The second return is
// false when the label has no entry.
func (m Mapping) Resolve(label string) (Name, bool) {
	n, ok := m[label]
	return n, ok
}

// Validate checks that every observed label has an entry and that every
// target is either Skip or a member of set. It returns an UnmappedLabelsError
// listing all uncovered labels, or a ValidationError for an unknown target.
func (m Mapping) Validate(labels []string, set Set) error {
	var missing []string
	for _, label := range labels {
		target, ok := m[label]
		if !ok || target == "" {
			missing = append(missing, label)
			continue
		}
		if target != Skip && !set.Contains(target) {
			return errors.NewValidationError("mapping", label,
				"maps to unknown class "+target.String())
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return errors.NewUnmappedLabelsError(missing)
	}
	return nil
}

// Parse builds a Mapping from a plain string map, validating that every
// target parses to Skip or a member of set. Empty targets are kept as
// missing entries so Validate still rejects them.
func Parse(raw map[string]string, set Set) (Mapping, error) {
	m := make(Mapping, len(raw))
	for label, target := range raw {
		if target == "" {
			continue
		}
		n := Name(target)
		if n != Skip && !set.Contains(n) {
			return nil, errors.NewValidationError("mapping", label,
				"maps to unknown class "+target)
		}
		m[label] = n
	}
	return m, nil
}
