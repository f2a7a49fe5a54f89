package render

import (
	"io"
	"strconv"
	"strings"

	"github.com/vango-dev/techcorp/pkg/vdom"
)

// PageData contains everything needed to render a complete HTML document.
type PageData struct {
	// Body is the content of <body>.
	Body *vdom.VNode

	// Title is the page title.
	Title string

	// Description fills <meta name="description">.
	Description string

	// Meta contains extra meta tags.
	Meta []MetaTag

	// StyleSheets contains paths to external stylesheets.
	StyleSheets []string

	// Scripts are written at the end of <body>.
	Scripts []ScriptTag

	// RefreshAfter, when positive, makes the browser reload the page after
	// that many seconds.
	RefreshAfter int

	// Lang is the language attribute of <html>. Defaults to "zh-CN".
	Lang string

	// BodyClass is the class attribute of <body>.
	BodyClass string
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name      string
	Property  string
	HTTPEquiv string
	Content   string
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src    string
	Defer  bool
	Module bool
}

// RenderPage renders a complete HTML document to w.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "zh-CN"
	}

	sw := &stickyWriter{w: w}
	sw.str("<!DOCTYPE html>\n")
	sw.str(`<html lang="` + escapeAttr(lang) + `">` + "\n")
	r.renderHead(sw, page)

	if page.BodyClass != "" {
		sw.str(`<body class="` + escapeAttr(page.BodyClass) + `">` + "\n")
	} else {
		sw.str("<body>\n")
	}
	r.renderNode(sw, page.Body, 0, false)
	if !r.config.Pretty {
		sw.str("\n")
	}
	for _, s := range page.Scripts {
		r.renderScriptTag(sw, s)
	}
	sw.str("</body>\n</html>\n")
	return sw.err
}

// RenderPageToString is RenderPage into a string.
func (r *Renderer) RenderPageToString(page PageData) (string, error) {
	var buf strings.Builder
	if err := r.RenderPage(&buf, page); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Renderer) renderHead(w *stickyWriter, page PageData) {
	w.str("<head>\n")
	w.str(`  <meta charset="utf-8">` + "\n")
	w.str(`  <meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
	if page.RefreshAfter > 0 {
		r.renderMetaTag(w, MetaTag{HTTPEquiv: "refresh", Content: strconv.Itoa(page.RefreshAfter)})
	}
	if page.Title != "" {
		w.str("  <title>" + escapeHTML(page.Title) + "</title>\n")
	}
	if page.Description != "" {
		r.renderMetaTag(w, MetaTag{Name: "description", Content: page.Description})
	}
	for _, meta := range page.Meta {
		r.renderMetaTag(w, meta)
	}
	for _, href := range page.StyleSheets {
		w.str(`  <link rel="stylesheet" href="` + escapeAttr(href) + `">` + "\n")
	}
	w.str("</head>\n")
}

func (r *Renderer) renderMetaTag(w *stickyWriter, meta MetaTag) {
	w.str("  <meta")
	if meta.Name != "" {
		w.str(` name="` + escapeAttr(meta.Name) + `"`)
	}
	if meta.Property != "" {
		w.str(` property="` + escapeAttr(meta.Property) + `"`)
	}
	if meta.HTTPEquiv != "" {
		w.str(` http-equiv="` + escapeAttr(meta.HTTPEquiv) + `"`)
	}
	w.str(` content="` + escapeAttr(meta.Content) + `">` + "\n")
}

func (r *Renderer) renderScriptTag(w *stickyWriter, script ScriptTag) {
	w.str(`<script src="` + escapeAttr(script.Src) + `"`)
	if script.Module {
		w.str(` type="module"`)
	}
	if script.Defer {
		w.str(" defer")
	}
	w.str("></script>\n")
}
