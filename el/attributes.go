// This file re-exports vdom attribute helpers for the el package.
package el

import "github.com/vango-dev/techcorp/pkg/vdom"

func ID(id string) Attr {
	return vdom.ID(id)
}
func Class(classes ...string) Attr {
	return vdom.Class(classes...)
}
func ClassIf(cond bool, class string) Attr {
	return vdom.ClassIf(cond, class)
}
func Data(key, value string) Attr {
	return vdom.Data(key, value)
}
func Role(role string) Attr {
	return vdom.Role(role)
}
func AriaLabel(label string) Attr {
	return vdom.AriaLabel(label)
}
func AriaHidden(hidden bool) Attr {
	return vdom.AriaHidden(hidden)
}
func AriaLive(mode string) Attr {
	return vdom.AriaLive(mode)
}
func AriaCurrent(value string) Attr {
	return vdom.AriaCurrent(value)
}
func AriaInvalid(invalid bool) Attr {
	return vdom.AriaInvalid(invalid)
}
func AriaDescribedBy(id string) Attr {
	return vdom.AriaDescribedBy(id)
}
func TitleAttr(title string) Attr {
	return vdom.TitleAttr(title)
}
func Href(url string) Attr {
	return vdom.Href(url)
}
func Target(target string) Attr {
	return vdom.Target(target)
}
func Rel(rel string) Attr {
	return vdom.Rel(rel)
}
func Download(filename ...string) Attr {
	return vdom.Download(filename...)
}
func Name(name string) Attr {
	return vdom.Name(name)
}
func Value(value string) Attr {
	return vdom.Value(value)
}
func Type(t string) Attr {
	return vdom.Type(t)
}
func Placeholder(text string) Attr {
	return vdom.Placeholder(text)
}
func Autocomplete(value string) Attr {
	return vdom.Autocomplete(value)
}
func MaxLength(n int) Attr {
	return vdom.MaxLength(n)
}
func Rows(n int) Attr {
	return vdom.Rows(n)
}
func Action(url string) Attr {
	return vdom.Action(url)
}
func Method(method string) Attr {
	return vdom.Method(method)
}
func Novalidate() Attr {
	return vdom.Novalidate()
}
func For(id string) Attr {
	return vdom.For(id)
}
func DisabledIf(cond bool) Attr {
	return vdom.DisabledIf(cond)
}
func CheckedIf(cond bool) Attr {
	return vdom.CheckedIf(cond)
}
func SelectedIf(cond bool) Attr {
	return vdom.SelectedIf(cond)
}
