package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/techcorp/app/components"
	"github.com/vango-dev/techcorp/internal/errors"
	"github.com/vango-dev/techcorp/pkg/contact"
	"github.com/vango-dev/techcorp/pkg/session"
)

const (
	liveWriteWait  = 10 * time.Second
	livePongWait   = 60 * time.Second
	livePingPeriod = livePongWait * 9 / 10

	// liveMaxMessage bounds one client op; the message field dominates.
	liveMaxMessage = 64 << 10
)

// Live channel operations sent by the browser.
const (
	OpUpdate  = "update"
	OpPrivacy = "privacy"
	OpSubmit  = "submit"
	OpDismiss = "dismiss"
	OpRetry   = "retry"
)

// LiveOp is one client message on /contact/live.
type LiveOp struct {
	Op      string `json:"op"`
	Field   string `json:"field,omitempty"`
	Value   string `json:"value,omitempty"`
	Checked bool   `json:"checked,omitempty"`
}

// LiveMessage is one server message on /contact/live. Snapshot messages
// carry the rendered form so the page can swap it in.
type LiveMessage struct {
	Type     string            `json:"type"`
	Snapshot *contact.Snapshot `json:"snapshot,omitempty"`
	HTML     string            `json:"html,omitempty"`
	Error    *LiveError        `json:"error,omitempty"`
}

// LiveError reports a rejected op.
type LiveError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// contactLive upgrades to the live channel of the caller's contact form.
// The visitor must already exist: the page load that runs the script sets
// the cookie, so an unknown id means the session expired.
func (s *Server) contactLive(w http.ResponseWriter, r *http.Request) {
	v, ok := s.sessions.Lookup(session.ReadCookie(r))
	if !ok {
		http.Error(w, "session expired", http.StatusGone)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.metrics.RecordWebSocketError(err)
		s.logger.Warn("websocket upgrade failed", "error", errors.New("T405").Wrap(err))
		return
	}

	s.metrics.LiveOpened()
	defer s.metrics.LiveClosed()

	lc := &liveConn{
		server: s,
		conn:   conn,
		ctrl:   v.Value,
		id:     v.ID,
		client: s.clientKey(r),
		notify: make(chan struct{}, 1),
		errs:   make(chan LiveError, 4),
		done:   make(chan struct{}),
	}
	lc.serve(v.Owner.Context())
}

// liveConn pumps one websocket. Reads happen on the handler goroutine and
// every write happens on the writer goroutine.
type liveConn struct {
	server *Server
	conn   *websocket.Conn
	ctrl   *contact.Controller
	id     string
	client string

	mu     sync.Mutex
	latest contact.Snapshot
	notify chan struct{}
	errs   chan LiveError
	done   chan struct{}
}

func (lc *liveConn) serve(ctx context.Context) {
	unsubscribe := lc.ctrl.Subscribe(lc.push)
	lc.push(lc.ctrl.Snapshot())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		lc.writeLoop(ctx)
	}()

	lc.readLoop(ctx)

	unsubscribe()
	close(lc.done)
	wg.Wait()
	lc.conn.Close()
}

// push records snap as the next state to send. Snapshots that arrive
// faster than the writer drains them are coalesced, and a snapshot older
// than the one already queued is dropped.
func (lc *liveConn) push(snap contact.Snapshot) {
	lc.mu.Lock()
	if snap.Seq < lc.latest.Seq {
		lc.mu.Unlock()
		return
	}
	lc.latest = snap
	lc.mu.Unlock()
	select {
	case lc.notify <- struct{}{}:
	default:
	}
}

func (lc *liveConn) fail(code, message string) {
	select {
	case lc.errs <- LiveError{Code: code, Message: message}:
	default:
	}
}

func (lc *liveConn) readLoop(ctx context.Context) {
	lc.conn.SetReadLimit(liveMaxMessage)
	_ = lc.conn.SetReadDeadline(time.Now().Add(livePongWait))
	// Pongs and ops both count as visitor activity.
	lc.conn.SetPongHandler(func(string) error {
		lc.server.sessions.Touch(lc.id)
		return lc.conn.SetReadDeadline(time.Now().Add(livePongWait))
	})

	for {
		var op LiveOp
		if err := lc.conn.ReadJSON(&op); err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
				websocket.CloseNoStatusReceived) && ctx.Err() == nil {
				lc.server.metrics.RecordWebSocketError(err)
				lc.server.logger.Debug("live read error", "error", err)
			}
			return
		}
		_ = lc.conn.SetReadDeadline(time.Now().Add(livePongWait))
		lc.server.sessions.Touch(lc.id)
		lc.apply(ctx, op)
	}
}

// apply runs one client op against the controller. Successful changes
// reach the client through the subscription.
func (lc *liveConn) apply(ctx context.Context, op LiveOp) {
	s := lc.server
	var err error
	switch op.Op {
	case OpUpdate:
		err = lc.ctrl.UpdateField(op.Field, op.Value)
	case OpPrivacy:
		err = lc.ctrl.SetPrivacy(op.Checked)
	case OpSubmit, OpRetry:
		if s.limiter != nil && !s.limiter.Allow(ctx, lc.client) {
			lc.fail("rate_limited", "提交过于频繁，请稍后再试")
			return
		}
		var outcome contact.SubmitOutcome
		if op.Op == OpSubmit {
			outcome = lc.ctrl.Submit()
		} else {
			outcome = lc.ctrl.Retry()
		}
		s.metrics.RecordSubmit(outcome.String())
		if outcome == contact.SubmitIgnored {
			lc.push(lc.ctrl.Snapshot())
		}
	case OpDismiss:
		lc.ctrl.Dismiss()
	default:
		lc.fail("unknown_op", "unknown op "+op.Op)
		return
	}

	switch {
	case err == nil:
	case stderrors.Is(err, contact.ErrBusy):
		lc.push(lc.ctrl.Snapshot())
	case stderrors.Is(err, contact.ErrUnknownField):
		lc.fail("unknown_field", err.Error())
	default:
		lc.fail("rejected", err.Error())
	}
}

func (lc *liveConn) writeLoop(ctx context.Context) {
	ticker := time.NewTicker(livePingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-lc.notify:
			lc.mu.Lock()
			snap := lc.latest
			lc.mu.Unlock()
			html, err := lc.server.renderer.RenderToString(components.ContactForm(snap))
			if err != nil {
				lc.server.logger.Error("live render failed", "error", errors.New("T402").Wrap(err))
				continue
			}
			if err := lc.write(LiveMessage{Type: "snapshot", Snapshot: &snap, HTML: html}); err != nil {
				return
			}

		case e := <-lc.errs:
			if err := lc.write(LiveMessage{Type: "error", Error: &e}); err != nil {
				return
			}

		case <-ticker.C:
			if err := lc.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(liveWriteWait)); err != nil {
				return
			}

		case <-ctx.Done():
			// The visitor was evicted or the server is shutting down.
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "session closed")
			_ = lc.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(liveWriteWait))
			lc.conn.Close()
			return

		case <-lc.done:
			return
		}
	}
}

func (lc *liveConn) write(msg LiveMessage) error {
	_ = lc.conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
	if err := lc.conn.WriteJSON(msg); err != nil {
		lc.server.metrics.RecordWebSocketError(err)
		lc.conn.Close()
		return err
	}
	return nil
}
