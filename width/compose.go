package width

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/widthpoints/persistent/steps"
)

// ErrNestedPercentage is returned when a percentage is composed with a container width
// which already is a product of two percentages.
var ErrNestedPercentage = errors.New("percentage chains of more than two levels are not supported")

// Compose merges a node's effective width function with the function of its container,
// which must already be composed with the container's own ancestors.
//
// For each breakpoint of the union of both functions' keys, the result is the smaller
// of both widths. If only one side constrains the width, its value is used; a container
// can only shrink a width, never invent one. Two symbolic percentages compose to their
// product. A percentage on a container with an absolute width resolves to the
// respective fraction of that width.
func Compose(own, container Function) (Function, error) {
	keys := steps.UnionKeys(own.steps, container.steps)
	var err error
	s := steps.FromKeys(keys, func(b float64) Value {
		v, e := compose(own.At(b), container.At(b))
		if e != nil && err == nil {
			err = fmt.Errorf("breakpoint %v: %w", b, e)
		}
		return v
	})
	if err != nil {
		return Function{}, err
	}
	tracer().Debugf("width: composed %v with container %v = %v", own, container, s)
	return Function{steps: s}, nil
}

func compose(own, container Value) (Value, error) {
	switch {
	case !container.IsConstrained():
		return own, nil
	case !own.IsConstrained():
		return container, nil
	case own.kind == absolute && container.kind == absolute:
		return Px(math.Min(own.x, container.x)), nil
	case own.kind == percent && container.kind == percent:
		if own.depth > 0 || container.depth > 0 {
			return Unconstrained(), fmt.Errorf("%w: %v of %v", ErrNestedPercentage, own, container)
		}
		return Value{x: own.x * container.x / 100, kind: percent, depth: 1}, nil
	case own.kind == percent: // container is absolute
		return Px(math.Min(own.x/100*container.x, container.x)), nil
	}
	return own, nil // absolute width inside a container of yet unknown percentage width
}

// ComposeChain composes the effective width functions of a chain of nodes, given
// root first. The result is the width function of the last node in the chain.
func ComposeChain(fns []Function) (Function, error) {
	if len(fns) == 0 {
		return Function{}, nil
	}
	acc := fns[0]
	for i := 1; i < len(fns); i++ {
		var err error
		if acc, err = Compose(fns[i], acc); err != nil {
			return Function{}, fmt.Errorf("chain position %d: %w", i, err)
		}
	}
	return acc, nil
}
