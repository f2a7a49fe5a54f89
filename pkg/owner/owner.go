package owner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrDisposed is returned by operations attempted on a disposed Owner.
var ErrDisposed = errors.New("owner: disposed")

// Cleanup cancels whatever registered it. Calling it more than once is safe.
type Cleanup func()

var ownerIDs atomic.Uint64

// Owner is a component lifetime scope.
type Owner struct {
	id     uint64
	parent *Owner

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	children []*Owner
	cleanups map[uint64]func()
	nextSlot uint64

	wg       sync.WaitGroup
	disposed atomic.Bool
}

// New creates a root Owner whose context derives from parent.
func New(parent context.Context) *Owner {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Owner{
		id:       ownerIDs.Add(1),
		ctx:      ctx,
		cancel:   cancel,
		cleanups: make(map[uint64]func()),
	}
}

// Child creates an Owner that is disposed together with o.
// A child of a disposed Owner is returned already disposed.
func (o *Owner) Child() *Owner {
	c := New(o.ctx)
	c.parent = o

	o.mu.Lock()
	if o.disposed.Load() {
		o.mu.Unlock()
		c.Dispose()
		return c
	}
	o.children = append(o.children, c)
	o.mu.Unlock()
	return c
}

// ID returns the unique identifier for this Owner.
func (o *Owner) ID() uint64 {
	return o.id
}

// Context returns a context that is cancelled when the Owner is disposed.
func (o *Owner) Context() context.Context {
	return o.ctx
}

// Disposed reports whether Dispose has been called.
func (o *Owner) Disposed() bool {
	return o.disposed.Load()
}

// OnDispose registers fn to run when the Owner is disposed.
// If the Owner is already disposed, fn runs immediately.
func (o *Owner) OnDispose(fn func()) Cleanup {
	o.mu.Lock()
	if o.disposed.Load() {
		o.mu.Unlock()
		fn()
		return func() {}
	}
	slot := o.nextSlot
	o.nextSlot++
	o.cleanups[slot] = fn
	o.mu.Unlock()

	return func() { o.forget(slot) }
}

func (o *Owner) forget(slot uint64) {
	o.mu.Lock()
	delete(o.cleanups, slot)
	o.mu.Unlock()
}

// Timeout runs fn once after d unless the returned Cleanup is called or the
// Owner is disposed first. fn never runs after Dispose has returned.
func (o *Owner) Timeout(d time.Duration, fn func()) Cleanup {
	if o.disposed.Load() {
		return func() {}
	}

	o.mu.Lock()
	slot := o.nextSlot
	o.nextSlot++
	o.mu.Unlock()

	var fired atomic.Bool
	timer := time.AfterFunc(d, func() {
		if !fired.CompareAndSwap(false, true) {
			return
		}
		o.mu.Lock()
		if o.disposed.Load() {
			o.mu.Unlock()
			return
		}
		delete(o.cleanups, slot)
		// Hold a wait slot so Dispose blocks until fn returns.
		o.wg.Add(1)
		o.mu.Unlock()

		defer o.wg.Done()
		fn()
	})

	stop := func() {
		fired.Store(true)
		timer.Stop()
	}

	o.mu.Lock()
	if o.disposed.Load() {
		o.mu.Unlock()
		stop()
		return func() {}
	}
	if !fired.Load() {
		o.cleanups[slot] = stop
	}
	o.mu.Unlock()

	return func() {
		stop()
		o.forget(slot)
	}
}

// Go runs fn in a goroutine bound to the Owner. The context passed to fn is
// cancelled on Dispose, and Dispose waits for fn to return.
func (o *Owner) Go(fn func(ctx context.Context)) error {
	o.mu.Lock()
	if o.disposed.Load() {
		o.mu.Unlock()
		return ErrDisposed
	}
	o.wg.Add(1)
	o.mu.Unlock()

	go func() {
		defer o.wg.Done()
		fn(o.ctx)
	}()
	return nil
}

// Sleep blocks for d or until the Owner is disposed, whichever comes first.
// It returns ErrDisposed when interrupted by disposal.
func (o *Owner) Sleep(d time.Duration) error {
	if d <= 0 {
		if o.disposed.Load() {
			return ErrDisposed
		}
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-o.ctx.Done():
		return ErrDisposed
	}
}

// Dispose tears the Owner down: children first, then registered cleanups and
// timers, then it waits for goroutines started with Go. It is idempotent.
//
// Dispose must not be called from inside a function started with Go or
// Timeout on the same Owner; use DisposeAsync there.
func (o *Owner) Dispose() {
	o.mu.Lock()
	if !o.disposed.CompareAndSwap(false, true) {
		o.mu.Unlock()
		return
	}
	children := o.children
	o.children = nil
	cleanups := o.cleanups
	o.cleanups = nil
	o.mu.Unlock()

	for _, c := range children {
		c.Dispose()
	}

	o.cancel()
	for _, fn := range cleanups {
		fn()
	}

	o.wg.Wait()

	if o.parent != nil {
		o.parent.removeChild(o)
	}
}

// DisposeAsync disposes the Owner without blocking the caller.
func (o *Owner) DisposeAsync() {
	go o.Dispose()
}

func (o *Owner) removeChild(child *Owner) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}
