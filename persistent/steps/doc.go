/*
Package steps implements a persistent (immutable) step function over a numeric axis.

A step map associates values with ascending breakpoint keys. The value at key k holds
for every point in [k, next key). Lookups of points between keys therefore return the
value of the nearest lower key:

    s := steps.Steps[int]{}.With(0, 200).With(100, 100)
    v, _ := s.At(150)   // returns 100
    v, _ = s.At(99.5)   // returns 200

Every modification returns a new incarnation of the step map (copy-on-write),
leaving the receiver unchanged.
*/
package steps

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'widthpoints.steps'.
func tracer() tracing.Trace {
	return tracing.Select("widthpoints.steps")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("steps: "+msg, msgargs...)
		panic(msg)
	}
}
