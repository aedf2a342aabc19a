package choice

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a caller passes something no user
	// input could fix, such as an empty candidate list.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCancelled is returned when the input stream ends or the user quits
	// a picker before choosing.
	ErrCancelled = errors.New("cancelled")
)

// Candidate is a labeled option whose value is produced only when it is picked.
type Candidate[T any] struct {
	Label string
	Value func() (T, error)
}

// Of returns a candidate with an eagerly known value.
func Of[T any](label string, value T) Candidate[T] {
	return Candidate[T]{
		Label: label,
		Value: func() (T, error) { return value, nil },
	}
}

// Lazy returns a candidate whose value is computed by produce once selected.
func Lazy[T any](label string, produce func() (T, error)) Candidate[T] {
	return Candidate[T]{Label: label, Value: produce}
}

// Picker presents labels numbered from start and returns the picked number.
type Picker interface {
	Pick(labels []string, start int) (int, error)
}

// Resolve is ResolveFrom with numbering starting at 1.
func Resolve[T any](p Picker, candidates []Candidate[T]) (T, error) {
	return ResolveFrom(p, candidates, 1)
}

// ResolveFrom turns candidates into a single value. A lone candidate is
// returned without touching the picker.
func ResolveFrom[T any](p Picker, candidates []Candidate[T], start int) (T, error) {
	var zero T
	if len(candidates) == 0 {
		return zero, fmt.Errorf("%w: no candidates to choose from", ErrInvalidArgument)
	}
	if len(candidates) == 1 {
		return force(candidates[0])
	}

	labels := make([]string, len(candidates))
	for i, c := range candidates {
		labels[i] = c.Label
	}

	picked, err := p.Pick(labels, start)
	if err != nil {
		return zero, err
	}
	idx := picked - start
	if idx < 0 || idx >= len(candidates) {
		return zero, fmt.Errorf("%w: picker returned %d outside [%d, %d]", ErrInvalidArgument, picked, start, start+len(candidates)-1)
	}
	return force(candidates[idx])
}

func force[T any](c Candidate[T]) (T, error) {
	if c.Value == nil {
		var zero T
		return zero, fmt.Errorf("%w: candidate %q has no value", ErrInvalidArgument, c.Label)
	}
	return c.Value()
}
