package vdom

import (
	"strconv"
	"strings"
)

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// AttrOf sets an arbitrary attribute.
func AttrOf(key string, value any) Attr { return attr(key, value) }

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
// Empty class names are dropped.
func Class(classes ...string) Attr {
	parts := make([]string, 0, len(classes))
	for _, c := range classes {
		if c = strings.TrimSpace(c); c != "" {
			parts = append(parts, c)
		}
	}
	return attr("class", strings.Join(parts, " "))
}

// ClassIf adds class only when cond is true.
func ClassIf(cond bool, class string) Attr {
	if !cond {
		return Attr{}
	}
	return Class(class)
}

// StyleAttr sets the style attribute.
func StyleAttr(style string) Attr { return attr("style", style) }

// Data creates a data-* attribute.
// Example: Data("phase", "idle") → data-phase="idle"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Accessibility attributes

func Role(role string) Attr          { return attr("role", role) }
func AriaLabel(label string) Attr    { return attr("aria-label", label) }
func AriaHidden(hidden bool) Attr    { return attr("aria-hidden", strconv.FormatBool(hidden)) }
func AriaLive(mode string) Attr      { return attr("aria-live", mode) }
func AriaCurrent(value string) Attr  { return attr("aria-current", value) }
func AriaInvalid(invalid bool) Attr  { return attr("aria-invalid", strconv.FormatBool(invalid)) }
func AriaDescribedBy(id string) Attr { return attr("aria-describedby", id) }

// Global attributes

func TitleAttr(title string) Attr { return attr("title", title) }
func Lang(lang string) Attr       { return attr("lang", lang) }
func Hidden() Attr                { return attr("hidden", true) }

// Link attributes

func Href(url string) Attr      { return attr("href", url) }
func Target(target string) Attr { return attr("target", target) }
func Rel(rel string) Attr       { return attr("rel", rel) }

// Download marks a link as a download, optionally with a file name.
func Download(filename ...string) Attr {
	if len(filename) > 0 && filename[0] != "" {
		return attr("download", filename[0])
	}
	return attr("download", true)
}

// Form attributes

func Name(name string) Attr          { return attr("name", name) }
func Value(value string) Attr        { return attr("value", value) }
func Type(t string) Attr             { return attr("type", t) }
func Placeholder(text string) Attr   { return attr("placeholder", text) }
func Disabled() Attr                 { return attr("disabled", true) }
func Required() Attr                 { return attr("required", true) }
func Checked() Attr                  { return attr("checked", true) }
func Selected() Attr                 { return attr("selected", true) }
func Autocomplete(value string) Attr { return attr("autocomplete", value) }
func MaxLength(n int) Attr           { return attr("maxlength", n) }
func Rows(n int) Attr                { return attr("rows", n) }
func Action(url string) Attr         { return attr("action", url) }
func Method(method string) Attr      { return attr("method", method) }
func Novalidate() Attr               { return attr("novalidate", true) }
func For(id string) Attr             { return attr("for", id) }

// DisabledIf sets disabled when cond is true.
func DisabledIf(cond bool) Attr {
	if !cond {
		return Attr{}
	}
	return Disabled()
}

// CheckedIf sets checked when cond is true.
func CheckedIf(cond bool) Attr {
	if !cond {
		return Attr{}
	}
	return Checked()
}

// SelectedIf sets selected when cond is true.
func SelectedIf(cond bool) Attr {
	if !cond {
		return Attr{}
	}
	return Selected()
}

// Media attributes

func Src(url string) Attr      { return attr("src", url) }
func Alt(text string) Attr     { return attr("alt", text) }
func Loading(mode string) Attr { return attr("loading", mode) }
func Poster(url string) Attr   { return attr("poster", url) }
func Controls() Attr           { return attr("controls", true) }
func Width(w int) Attr         { return attr("width", w) }
func Height(h int) Attr        { return attr("height", h) }

// Metadata attributes

func Charset(charset string) Attr { return attr("charset", charset) }
func Content(content string) Attr { return attr("content", content) }
func HTTPEquiv(v string) Attr     { return attr("http-equiv", v) }
func Defer() Attr                 { return attr("defer", true) }
func Datetime(v string) Attr      { return attr("datetime", v) }
