// Package server is the HTTP front of the site.
//
// It renders the pages of app/routes, serves the JSON API and static
// assets, and hosts one contact form controller per visitor. Visitors are
// identified by a cookie and tracked by a session.Manager; each visitor's
// controller lives in the visitor's owner scope and is disposed with it.
//
// The contact form works without JavaScript: the form posts to /contact
// and the page refreshes itself while a submission is in flight. When
// JavaScript is available, /contact/live upgrades to a websocket that
// carries field edits to the controller and pushes a fresh snapshot back
// after every change.
//
//	srv, err := server.New(cfg, server.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	return srv.Run(ctx)
package server
