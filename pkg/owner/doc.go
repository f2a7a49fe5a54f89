// Package owner provides lifetime scopes for stateful components.
//
// An Owner represents one mounted component instance. Timers, goroutines and
// cleanup functions registered through it are torn down together when the
// Owner is disposed, so a component that goes away never has a late timer
// mutate its state.
//
//	o := owner.New(context.Background())
//	defer o.Dispose()
//
//	o.Timeout(3*time.Second, func() {
//	    form.Reset()
//	})
//
// Owners form a hierarchy: disposing a parent disposes its children first.
package owner
