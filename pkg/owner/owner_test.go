package owner

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestOwner_TimeoutFires(t *testing.T) {
	o := New(context.Background())
	defer o.Dispose()

	done := make(chan struct{})
	o.Timeout(5*time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timeout callback did not run")
	}
}

func TestOwner_TimeoutCancelledByCleanup(t *testing.T) {
	o := New(context.Background())
	defer o.Dispose()

	var ran atomic.Bool
	cancel := o.Timeout(10*time.Millisecond, func() { ran.Store(true) })
	cancel()
	cancel() // idempotent

	time.Sleep(40 * time.Millisecond)
	if ran.Load() {
		t.Error("cancelled timeout should not run")
	}
}

func TestOwner_DisposeCancelsPendingTimers(t *testing.T) {
	o := New(context.Background())

	var ran atomic.Bool
	o.Timeout(10*time.Millisecond, func() { ran.Store(true) })
	o.Dispose()

	time.Sleep(40 * time.Millisecond)
	if ran.Load() {
		t.Error("timer ran after Dispose")
	}
	if !o.Disposed() {
		t.Error("expected Disposed() to be true")
	}
}

func TestOwner_TimeoutAfterDisposeIsNoop(t *testing.T) {
	o := New(context.Background())
	o.Dispose()

	var ran atomic.Bool
	o.Timeout(time.Millisecond, func() { ran.Store(true) })
	time.Sleep(20 * time.Millisecond)
	if ran.Load() {
		t.Error("timer registered on disposed owner should never run")
	}
}

func TestOwner_GoContextCancelledOnDispose(t *testing.T) {
	o := New(context.Background())

	started := make(chan struct{})
	var sawCancel atomic.Bool
	if err := o.Go(func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		sawCancel.Store(true)
	}); err != nil {
		t.Fatalf("Go() error = %v", err)
	}

	<-started
	o.Dispose()

	// Dispose waits for the goroutine, so the flag is already set.
	if !sawCancel.Load() {
		t.Error("expected goroutine to observe cancellation before Dispose returned")
	}

	if err := o.Go(func(context.Context) {}); !errors.Is(err, ErrDisposed) {
		t.Errorf("Go() after Dispose error = %v, want ErrDisposed", err)
	}
}

func TestOwner_SleepInterruptedByDispose(t *testing.T) {
	o := New(context.Background())

	errCh := make(chan error, 1)
	_ = o.Go(func(ctx context.Context) {
		errCh <- o.Sleep(time.Hour)
	})

	o.Dispose()
	if err := <-errCh; !errors.Is(err, ErrDisposed) {
		t.Errorf("Sleep() error = %v, want ErrDisposed", err)
	}
}

func TestOwner_OnDisposeRunsOnce(t *testing.T) {
	o := New(context.Background())

	var count atomic.Int32
	o.OnDispose(func() { count.Add(1) })
	removed := o.OnDispose(func() { count.Add(100) })
	removed()

	o.Dispose()
	o.Dispose()

	if got := count.Load(); got != 1 {
		t.Errorf("cleanup count = %d, want 1", got)
	}

	// Registering after disposal runs immediately.
	o.OnDispose(func() { count.Add(1) })
	if got := count.Load(); got != 2 {
		t.Errorf("late cleanup count = %d, want 2", got)
	}
}

func TestOwner_ChildDisposedWithParent(t *testing.T) {
	parent := New(context.Background())
	child := parent.Child()

	var ran atomic.Bool
	child.Timeout(10*time.Millisecond, func() { ran.Store(true) })

	parent.Dispose()
	if !child.Disposed() {
		t.Fatal("expected child to be disposed with parent")
	}
	time.Sleep(30 * time.Millisecond)
	if ran.Load() {
		t.Error("child timer ran after parent disposal")
	}

	late := parent.Child()
	if !late.Disposed() {
		t.Error("child of disposed owner should start disposed")
	}
}

func TestOwner_DisposeWaitsForRunningTimer(t *testing.T) {
	o := New(context.Background())

	entered := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool
	o.Timeout(time.Millisecond, func() {
		close(entered)
		<-release
		finished.Store(true)
	})

	<-entered
	go func() {
		time.Sleep(10 * time.Millisecond)
		close(release)
	}()
	o.Dispose()

	if !finished.Load() {
		t.Error("Dispose returned before the running timer callback finished")
	}
}
