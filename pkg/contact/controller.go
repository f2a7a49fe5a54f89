package contact

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vango-dev/techcorp/pkg/inbox"
	"github.com/vango-dev/techcorp/pkg/owner"
)

// Default delays of the submission lifecycle.
const (
	DefaultSubmitDelay = 1500 * time.Millisecond
	DefaultResetDelay  = 3 * time.Second
)

// FailureMessage is shown when delivery fails.
const FailureMessage = "提交失败，请稍后重试"

// Meta describes where a submission came from.
type Meta struct {
	RemoteAddr string
	UserAgent  string
}

// Snapshot is an immutable copy of a controller's state.
type Snapshot struct {
	Form          FormState `json:"form"`
	Errors        Errors    `json:"errors"`
	Phase         Phase     `json:"phase"`
	Failure       string    `json:"failure,omitempty"`
	MessageLength int       `json:"messageLength"`
	InquiryID     string    `json:"inquiryId,omitempty"`

	// Seq orders snapshots of one controller. A snapshot with a higher
	// Seq reflects newer state, whatever order subscribers receive them in.
	Seq uint64 `json:"seq"`
}

// Option configures a Controller.
type Option func(*Controller)

// WithSink sets where inquiries are delivered. The default logs them.
func WithSink(s inbox.Sink) Option {
	return func(c *Controller) {
		if s != nil {
			c.sink = s
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSubmitDelay sets the pause between accepting a submit and
// delivering it.
func WithSubmitDelay(d time.Duration) Option {
	return func(c *Controller) { c.submitDelay = d }
}

// WithResetDelay sets how long the success panel stays before the form
// resets itself.
func WithResetDelay(d time.Duration) Option {
	return func(c *Controller) { c.resetDelay = d }
}

// WithPhaseHook registers fn to be called on every phase transition.
// fn runs without the controller lock held.
func WithPhaseHook(fn func(from, to Phase)) Option {
	return func(c *Controller) { c.phaseHook = fn }
}

// Controller owns the state of one contact form.
// All methods are safe for concurrent use.
type Controller struct {
	scope       *owner.Owner
	sink        inbox.Sink
	logger      *slog.Logger
	submitDelay time.Duration
	resetDelay  time.Duration
	phaseHook   func(from, to Phase)

	mu          sync.Mutex
	form        FormState
	errs        Errors
	phase       Phase
	failure     error
	inquiryID   string
	meta        Meta
	gen         uint64
	seq         uint64
	cancelReset owner.Cleanup

	subs    map[int]func(Snapshot)
	nextSub int
}

// New creates a Controller in a child scope of parent. Disposing parent
// disposes the controller.
func New(parent *owner.Owner, opts ...Option) *Controller {
	c := &Controller{
		scope:       parent.Child(),
		submitDelay: DefaultSubmitDelay,
		resetDelay:  DefaultResetDelay,
		form:        NewFormState(),
		errs:        Errors{},
		subs:        make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.sink == nil {
		c.sink = inbox.NewLogSink(c.logger)
	}

	c.scope.OnDispose(func() {
		c.mu.Lock()
		c.gen++
		c.subs = make(map[int]func(Snapshot))
		c.mu.Unlock()
	})
	return c
}

// Phase returns the current phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Err returns the delivery error that put the controller in PhaseError.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failure
}

// Disposed reports whether the controller has been disposed.
func (c *Controller) Disposed() bool {
	return c.scope.Disposed()
}

// SetMeta records request metadata attached to the next delivery.
func (c *Controller) SetMeta(m Meta) {
	c.mu.Lock()
	c.meta = m
	c.mu.Unlock()
}

// UpdateField writes value into field and clears the field's error.
// No validation is performed. Edits are rejected with ErrBusy while the
// form is submitting or showing the success panel.
func (c *Controller) UpdateField(field, value string) error {
	if c.scope.Disposed() {
		return ErrDisposed
	}

	c.mu.Lock()
	if c.phase == PhaseSubmitting || c.phase == PhaseSuccess {
		c.mu.Unlock()
		return ErrBusy
	}
	if err := c.form.set(field, value); err != nil {
		c.mu.Unlock()
		return err
	}
	delete(c.errs, field)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snap)
	return nil
}

// SetPrivacy sets the privacy checkbox.
func (c *Controller) SetPrivacy(accepted bool) error {
	v := "false"
	if accepted {
		v = "true"
	}
	return c.UpdateField(FieldPrivacy, v)
}

// Replace overwrites the whole form, as a full-page form post does.
// Errors of fields whose value changed are cleared.
func (c *Controller) Replace(f FormState) error {
	if c.scope.Disposed() {
		return ErrDisposed
	}

	if !IsSubject(f.Subject) {
		f.Subject = DefaultSubject
	}

	c.mu.Lock()
	if c.phase == PhaseSubmitting || c.phase == PhaseSuccess {
		c.mu.Unlock()
		return ErrBusy
	}
	for _, field := range Fields {
		before, _ := c.form.Value(field)
		after, _ := f.Value(field)
		if before != after {
			delete(c.errs, field)
		}
	}
	c.form = f
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.publish(snap)
	return nil
}

// Validate runs the validation rules against the current form without
// recording the result.
func (c *Controller) Validate() Errors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Validate(c.form)
}

// Submit validates the form. Invalid forms record their errors and stay
// in PhaseIdle. A valid form enters PhaseSubmitting; after the submit delay
// the inquiry is delivered and the controller moves to PhaseSuccess, then
// back to PhaseIdle with a fresh form after the reset delay.
//
// Submit is accepted in PhaseIdle and PhaseError. In any other phase it
// does nothing and returns SubmitIgnored.
func (c *Controller) Submit() SubmitOutcome {
	if c.scope.Disposed() {
		return SubmitIgnored
	}

	c.mu.Lock()
	if c.phase != PhaseIdle && c.phase != PhaseError {
		c.mu.Unlock()
		return SubmitIgnored
	}

	errs := Validate(c.form)
	if !errs.Empty() {
		from := c.phase
		c.errs = errs
		c.phase = PhaseIdle
		c.failure = nil
		snap := c.snapshotLocked()
		c.mu.Unlock()

		c.transition(from, PhaseIdle)
		c.publish(snap)
		return SubmitInvalid
	}

	from := c.phase
	c.errs = Errors{}
	c.phase = PhaseSubmitting
	c.failure = nil
	c.gen++
	gen := c.gen
	inq := inbox.Prepare(inbox.Inquiry{
		Name:            c.form.Name,
		Email:           c.form.Email,
		Phone:           c.form.Phone,
		Company:         c.form.Company,
		Subject:         c.form.Subject,
		Message:         c.form.Message,
		PrivacyAccepted: c.form.PrivacyAccepted,
		RemoteAddr:      c.meta.RemoteAddr,
		UserAgent:       c.meta.UserAgent,
	})
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.transition(from, PhaseSubmitting)
	c.publish(snap)

	if err := c.scope.Go(func(ctx context.Context) { c.deliver(ctx, gen, inq) }); err != nil {
		return SubmitIgnored
	}
	return SubmitStarted
}

// Retry resubmits after a failed delivery. It is ignored outside
// PhaseError.
func (c *Controller) Retry() SubmitOutcome {
	if c.Phase() != PhaseError {
		return SubmitIgnored
	}
	return c.Submit()
}

// Dismiss closes the success panel right away: the pending automatic
// reset is cancelled and the form is reset now. It reports whether the
// controller was in PhaseSuccess.
func (c *Controller) Dismiss() bool {
	c.mu.Lock()
	if c.phase != PhaseSuccess || c.scope.Disposed() {
		c.mu.Unlock()
		return false
	}
	c.resetLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.transition(PhaseSuccess, PhaseIdle)
	c.publish(snap)
	return true
}

// Dispose cancels any pending delay, delivery or reset and detaches all
// subscribers. Later calls to the controller are no-ops. Dispose must not
// be called from a subscriber callback.
func (c *Controller) Dispose() {
	c.scope.Dispose()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe registers fn to receive a snapshot after every change and
// returns a function that removes it. fn is called from the goroutine that
// made the change, without the controller lock held.
func (c *Controller) Subscribe(fn func(Snapshot)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.scope.Disposed() {
		return func() {}
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Controller) deliver(ctx context.Context, gen uint64, inq *inbox.Inquiry) {
	if err := c.scope.Sleep(c.submitDelay); err != nil {
		return
	}

	err := c.sink.Deliver(ctx, inq)

	c.mu.Lock()
	if c.gen != gen || c.scope.Disposed() {
		c.mu.Unlock()
		return
	}

	if err != nil {
		c.phase = PhaseError
		c.failure = err
		snap := c.snapshotLocked()
		c.mu.Unlock()

		c.logger.Error("contact inquiry delivery failed",
			slog.String("id", inq.ID),
			slog.String("error", err.Error()))
		c.transition(PhaseSubmitting, PhaseError)
		c.publish(snap)
		return
	}

	c.phase = PhaseSuccess
	c.inquiryID = inq.ID
	c.cancelReset = c.scope.Timeout(c.resetDelay, func() { c.autoReset(gen) })
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Info("contact inquiry delivered", slog.String("id", inq.ID))
	c.transition(PhaseSubmitting, PhaseSuccess)
	c.publish(snap)
}

func (c *Controller) autoReset(gen uint64) {
	c.mu.Lock()
	if c.gen != gen || c.phase != PhaseSuccess {
		c.mu.Unlock()
		return
	}
	c.cancelReset = nil
	c.resetLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.transition(PhaseSuccess, PhaseIdle)
	c.publish(snap)
}

// resetLocked returns to a fresh form. c.mu must be held.
func (c *Controller) resetLocked() {
	if c.cancelReset != nil {
		c.cancelReset()
		c.cancelReset = nil
	}
	c.gen++
	c.form = NewFormState()
	c.errs = Errors{}
	c.phase = PhaseIdle
	c.failure = nil
	c.inquiryID = ""
}

func (c *Controller) snapshotLocked() Snapshot {
	c.seq++
	s := Snapshot{
		Form:          c.form,
		Errors:        c.errs.Clone(),
		Phase:         c.phase,
		MessageLength: len([]rune(c.form.Message)),
		InquiryID:     c.inquiryID,
		Seq:           c.seq,
	}
	if c.phase == PhaseError {
		s.Failure = FailureMessage
	}
	return s
}

func (c *Controller) publish(snap Snapshot) {
	c.mu.Lock()
	subs := make([]func(Snapshot), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func (c *Controller) transition(from, to Phase) {
	if c.phaseHook != nil && from != to {
		c.phaseHook(from, to)
	}
}
