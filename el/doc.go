// Package el provides the page-building DSL.
//
// It re-exports HTML element constructors, attribute helpers and tree
// utilities from github.com/vango-dev/techcorp/pkg/vdom so page code can
// dot-import a single package:
//
//	import . "github.com/vango-dev/techcorp/el"
//
//	func Hero() *VNode {
//	    return Section(Class("hero"), H1("TechCorp"))
//	}
package el
