// This file re-exports vdom element constructors for the el package.
package el

import "github.com/vango-dev/techcorp/pkg/vdom"

func Header(args ...any) *VNode {
	return vdom.Header(args...)
}
func Footer(args ...any) *VNode {
	return vdom.Footer(args...)
}
func Main(args ...any) *VNode {
	return vdom.Main(args...)
}
func Nav(args ...any) *VNode {
	return vdom.Nav(args...)
}
func Section(args ...any) *VNode {
	return vdom.Section(args...)
}
func Article(args ...any) *VNode {
	return vdom.Article(args...)
}
func Aside(args ...any) *VNode {
	return vdom.Aside(args...)
}
func H1(args ...any) *VNode {
	return vdom.H1(args...)
}
func H2(args ...any) *VNode {
	return vdom.H2(args...)
}
func H3(args ...any) *VNode {
	return vdom.H3(args...)
}
func H4(args ...any) *VNode {
	return vdom.H4(args...)
}
func Div(args ...any) *VNode {
	return vdom.Div(args...)
}
func P(args ...any) *VNode {
	return vdom.P(args...)
}
func Span(args ...any) *VNode {
	return vdom.Span(args...)
}
func Ul(args ...any) *VNode {
	return vdom.Ul(args...)
}
func Li(args ...any) *VNode {
	return vdom.Li(args...)
}
func Dl(args ...any) *VNode {
	return vdom.Dl(args...)
}
func Dt(args ...any) *VNode {
	return vdom.Dt(args...)
}
func Dd(args ...any) *VNode {
	return vdom.Dd(args...)
}
func A(args ...any) *VNode {
	return vdom.A(args...)
}
func Strong(args ...any) *VNode {
	return vdom.Strong(args...)
}
func Small(args ...any) *VNode {
	return vdom.Small(args...)
}
func Form(args ...any) *VNode {
	return vdom.Form(args...)
}
func Input(args ...any) *VNode {
	return vdom.Input(args...)
}
func Textarea(args ...any) *VNode {
	return vdom.Textarea(args...)
}
func Select(args ...any) *VNode {
	return vdom.Select(args...)
}
func Option(args ...any) *VNode {
	return vdom.Option(args...)
}
func Button(args ...any) *VNode {
	return vdom.Button(args...)
}
func Label(args ...any) *VNode {
	return vdom.Label(args...)
}
func Fieldset(args ...any) *VNode {
	return vdom.Fieldset(args...)
}
func Details(args ...any) *VNode {
	return vdom.Details(args...)
}
func Summary(args ...any) *VNode {
	return vdom.Summary(args...)
}
