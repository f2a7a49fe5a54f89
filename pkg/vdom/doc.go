// Package vdom provides the node tree the site's pages are built from.
//
// VNode represents elements, text, fragments and raw HTML. Elements are
// created with variadic constructors that accept attributes, children and
// plain strings in any order:
//
//	Div(Class("card"), ID("main"),
//	    H2("产品展示"),
//	    P(Class("muted"), Textf("%d 个产品", n)),
//	)
//
// nil arguments are skipped, so conditional children and attributes can be
// written inline with If, When and friends. Repeated Class attributes on
// one element are merged.
//
// Trees are turned into HTML by package render.
package vdom
