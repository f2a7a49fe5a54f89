// Package contact implements the contact form controller of the site.
//
// A Controller holds one visitor's form fields, the validation errors of
// the last submit attempt and the submission phase:
//
//	Idle ──submit(valid)──▶ Submitting ──delivered──▶ Success ──reset delay──▶ Idle
//	  ▲                         │
//	  └──submit(invalid)        └──delivery failed──▶ Error ──retry──▶ Submitting
//
// Validation runs only on submit. Editing a field clears that field's
// error. The submit delay, the delivery and the automatic reset all run in
// the controller's owner scope, so disposing the controller (or the
// visitor session that owns it) cancels them.
//
// Usage:
//
//	c := contact.New(scope, contact.WithSink(sink))
//	c.UpdateField(contact.FieldName, "李雷")
//	...
//	switch c.Submit() {
//	case contact.SubmitInvalid:
//	    // render c.Snapshot().Errors inline
//	case contact.SubmitStarted:
//	    // show the spinner
//	}
package contact
