// Package path resolves ObjectQL identifier paths against a root value.
// The algorithm is total (spec.md §4.3, invariant 4): a well-formed path
// either yields a Value (possibly Null) or a structural ResolutionError; it
// never errors on a merely-missing map key.
package path

import (
	"github.com/ritamzico/objectql/internal/ast"
	"github.com/ritamzico/objectql/internal/value"
)

// InstanceTagResolver looks up a host-supplied `@name` instance tag and
// returns the integer index it stands for. Instance tags are reserved for
// host extension (spec.md §9); a nil resolver means no tags are
// configured, and any `@tag` index encountered is a ResolutionError.
type InstanceTagResolver interface {
	Resolve(tag string) (int, bool)
}

// Resolve walks id against root, following spec.md §4.3 step by step.
func Resolve(root value.Value, id ast.Identifier, tags InstanceTagResolver) (value.Value, error) {
	current := root

	for _, seg := range id.Segments {
		if current.Kind == value.Map {
			next, ok := current.M[seg.Name]
			if !ok {
				return value.NullValue(), nil
			}
			current = next
		} else {
			return value.Value{}, notAMap(seg.Name)
		}

		if seg.Index != nil {
			idx, err := resolveIndex(*seg.Index, tags)
			if err != nil {
				return value.Value{}, err
			}

			if current.Kind != value.List {
				return value.Value{}, notAList(seg.Name)
			}
			if idx < 0 || idx >= len(current.L) {
				return value.NullValue(), nil
			}
			current = current.L[idx]
		}
	}

	return current, nil
}

func resolveIndex(step ast.IndexStep, tags InstanceTagResolver) (int, error) {
	if !step.IsTag {
		return step.Int, nil
	}
	if tags == nil {
		return 0, unresolvedInstanceTag(step.Tag)
	}
	idx, ok := tags.Resolve(step.Tag)
	if !ok {
		return 0, unresolvedInstanceTag(step.Tag)
	}
	return idx, nil
}
