// Package session tracks site visitors.
//
// Each visitor is identified by the techcorp_sid cookie and owns a lifetime
// scope (owner.Owner) plus whatever per-visitor state the factory builds,
// such as a contact form controller. Visitors that stay idle past
// IdleTimeout are swept and their scope is disposed, which cancels any
// timers or goroutines started on their behalf.
//
//	mgr := session.NewManager(ctx, func(o *owner.Owner) *contact.Controller {
//		return contact.New(o)
//	}, session.DefaultConfig(), logger)
//	defer mgr.Close()
//
//	v, err := mgr.Acquire(session.ReadCookie(r), clientIP)
//	if err != nil {
//		return err
//	}
//	session.WriteCookie(w, v.ID, session.CookieOptions{})
//
// When MaxSessions is reached the least recently seen visitor is evicted to
// make room. MaxSessionsPerIP caps how many visitors one address can hold.
package session
