package path

import "fmt"

// ResolutionError is raised when a path structurally cannot be resolved
// against the data tree: indexing into a non-list, or dotting into a
// non-map. Missing map keys are not errors — spec.md §4.3 — they resolve
// to Null and stop.
type ResolutionError struct {
	Kind    string
	Message string
}

func (e ResolutionError) Error() string {
	return fmt.Sprintf("path resolution error (%v): %v", e.Kind, e.Message)
}

func notAMap(segment string) error {
	return ResolutionError{
		Kind:    "NotAMap",
		Message: fmt.Sprintf("cannot access field %q: value is not a map", segment),
	}
}

func notAList(segment string) error {
	return ResolutionError{
		Kind:    "NotAList",
		Message: fmt.Sprintf("cannot index %q: value is not a list", segment),
	}
}

func unresolvedInstanceTag(tag string) error {
	return ResolutionError{
		Kind:    "UnresolvedInstanceTag",
		Message: fmt.Sprintf("instance tag @%s has no host-supplied resolution", tag),
	}
}
