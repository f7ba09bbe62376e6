package transform

import (
	"fmt"

	"github.com/rgehrsitz/taxgo/internal/domain"
)

// ProfileTransform is a what-if change to a tax profile. Transforms never modify
// their input; Apply returns a new profile.
type ProfileTransform interface {
	// Apply returns a modified copy of base
	Apply(base *domain.UserTaxProfile) (*domain.UserTaxProfile, error)

	// Name returns the registry identifier (e.g. "add_nps")
	Name() string

	// Description returns a human-readable summary of the change
	Description() string

	// Validate checks the parameters against base without applying them
	Validate(base *domain.UserTaxProfile) error
}

// ApplyTransforms applies transforms in order, each receiving the previous output.
// With no transforms it returns a deep copy of base.
func ApplyTransforms(base *domain.UserTaxProfile, transforms []ProfileTransform) (*domain.UserTaxProfile, error) {
	if base == nil {
		return nil, fmt.Errorf("base profile cannot be nil")
	}

	current := base.DeepCopy()
	for i, t := range transforms {
		if t == nil {
			return nil, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := t.Validate(current); err != nil {
			return nil, fmt.Errorf("transform %s validation failed: %w", t.Name(), err)
		}
		next, err := t.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("transform %s failed: %w", t.Name(), err)
		}
		current = next
	}
	return current, nil
}

// Describe lists the descriptions of transforms in order
func Describe(transforms []ProfileTransform) []string {
	out := make([]string, 0, len(transforms))
	for _, t := range transforms {
		out = append(out, t.Description())
	}
	return out
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
