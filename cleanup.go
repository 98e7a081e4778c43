package main

import (
	"errors"
	"fmt"
)

type cleanupFunc struct {
	name string
	f    func() error
}

// CleanupFuncs runs deferred teardown steps in reverse order
// of registration.
type CleanupFuncs []cleanupFunc

func (cf *CleanupFuncs) Defer(name string, f func() error) {
	*cf = append(*cf, cleanupFunc{name: name, f: f})
}

func (cf *CleanupFuncs) Cleanup() error {
	errs := make([]error, 0)
	for i := len(*cf) - 1; i >= 0; i-- {
		c := (*cf)[i]
		if ferr := c.f(); ferr != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.name, ferr))
		}
	}
	*cf = (*cf)[:0]
	return errors.Join(errs...)
}
