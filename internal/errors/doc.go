// Package errors provides coded, actionable errors for the TechCorp site
// and its CLI.
//
// Every code maps to a registered template with a short message and a
// longer explanation:
//
//   - T1xx: configuration
//   - T2xx: content catalog
//   - T3xx: inquiry delivery
//   - T4xx: HTTP serving
//
// # Usage
//
//	err := errors.New("T101").
//	    WithDetail("open techcorp.json: permission denied").
//	    WithSuggestion("Check the file permissions or pass --config")
//
//	errors.PrintError(os.Stderr, err)
//	// Output:
//	// ERROR T101: Config file unreadable
//	//
//	//   open techcorp.json: permission denied
//	//
//	//   Hint: Check the file permissions or pass --config
package errors
