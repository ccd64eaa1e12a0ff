package interleaving

import (
	"github.com/pkg/errors"
	"sort"
)

// Factory creates a method for the lists.
type Factory func(lists [][]string, options ...Option) (Method, error)

var methods = map[string]Factory{
	"teamdraft": func(lists [][]string, options ...Option) (Method, error) {
		return NewTeamDraft(lists, options...)
	},
	"balanced": func(lists [][]string, options ...Option) (Method, error) {
		return NewBalanced(lists, options...)
	},
	"probabilistic": func(lists [][]string, options ...Option) (Method, error) {
		return NewProbabilistic(lists, options...)
	},
	"optimized": func(lists [][]string, options ...Option) (Method, error) {
		return NewOptimized(lists, options...)
	},
	"roughlyoptimized": func(lists [][]string, options ...Option) (Method, error) {
		return NewRoughlyOptimized(lists, options...)
	},
}

// MethodFactory returns the factory of the named method.
func MethodFactory(name string) (Factory, error) {
	f, ok := methods[name]
	if !ok {
		return nil, errors.Wrap(ErrUnknownMethod, name)
	}
	return f, nil
}

// NewMethod creates the named method. The names are those listed by MethodNames.
func NewMethod(name string, lists [][]string, options ...Option) (Method, error) {
	f, err := MethodFactory(name)
	if err != nil {
		return nil, err
	}
	return f(lists, options...)
}

// MethodNames lists the known methods in alphabetical order.
func MethodNames() []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
