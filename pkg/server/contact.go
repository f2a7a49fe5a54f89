package server

import (
	stderrors "errors"
	"math"
	"net/http"
	"time"

	"github.com/vango-dev/techcorp/app/routes"
	"github.com/vango-dev/techcorp/pkg/contact"
	"github.com/vango-dev/techcorp/pkg/session"
)

// ContactPath is where the contact form lives and posts to.
const ContactPath = "/contact"

// visitor returns the caller's visitor, creating one and setting the
// cookie when the request carries no known id. On failure the response
// has been written.
func (s *Server) visitor(w http.ResponseWriter, r *http.Request) (*session.Visitor[*contact.Controller], bool) {
	client := s.clientKey(r)
	v, created, err := s.sessions.Acquire(session.ReadCookie(r), client)
	switch {
	case stderrors.Is(err, session.ErrTooManySessionsFromIP):
		s.tooManyRequests(w, r)
		return nil, false
	case err != nil:
		s.logger.Warn("visitor unavailable", "error", err)
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return nil, false
	}
	if created {
		session.WriteCookie(w, v.ID, s.cookies)
		s.metrics.SetActiveSessions(s.sessions.Len())
	}
	v.Value.SetMeta(contact.Meta{RemoteAddr: client, UserAgent: r.UserAgent()})
	return v, true
}

func (s *Server) contactPage(w http.ResponseWriter, r *http.Request) {
	v, ok := s.visitor(w, r)
	if !ok {
		return
	}
	snap := v.Value.Snapshot()
	page := routes.Contact(s.pageCtx(r), snap)
	page.RefreshAfter = s.refreshAfter(snap.Phase)
	w.Header().Set("Cache-Control", "no-store")
	s.render(w, r, http.StatusOK, page)
}

// refreshAfter is how long a script-less browser waits before reloading
// the contact page to pick up the next phase.
func (s *Server) refreshAfter(p contact.Phase) int {
	var d time.Duration
	switch p {
	case contact.PhaseSubmitting:
		d = s.config.Contact.SubmitDelay
	case contact.PhaseSuccess:
		d = s.config.Contact.ResetDelay
	default:
		return 0
	}
	return max(1, int(math.Ceil(d.Seconds())))
}

func (s *Server) contactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	v, ok := s.visitor(w, r)
	if !ok {
		return
	}
	ctrl := v.Value
	if err := ctrl.Replace(contact.FormFromValues(r.PostForm)); err != nil && !stderrors.Is(err, contact.ErrBusy) {
		s.logger.Warn("contact form rejected", "session_id", v.ID, "error", err)
	}
	outcome := ctrl.Submit()
	s.metrics.RecordSubmit(outcome.String())
	s.logger.Debug("contact submit", "session_id", v.ID, "outcome", outcome.String())
	http.Redirect(w, r, ContactPath, http.StatusSeeOther)
}

func (s *Server) contactRetry(w http.ResponseWriter, r *http.Request) {
	v, ok := s.visitor(w, r)
	if !ok {
		return
	}
	outcome := v.Value.Retry()
	s.metrics.RecordSubmit(outcome.String())
	http.Redirect(w, r, ContactPath, http.StatusSeeOther)
}

func (s *Server) contactDismiss(w http.ResponseWriter, r *http.Request) {
	v, ok := s.visitor(w, r)
	if !ok {
		return
	}
	v.Value.Dismiss()
	http.Redirect(w, r, ContactPath, http.StatusSeeOther)
}
