// Package render turns vdom trees into HTML.
//
// It handles text and attribute escaping, void elements, boolean
// attributes and deterministic attribute order, and renders complete
// documents with a head built from PageData.
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(node)
//
//	err = r.RenderPage(w, render.PageData{
//	    Title:       "联系我们 - TechCorp",
//	    StyleSheets: []string{"/static/site.css"},
//	    Body:        body,
//	})
//
// Text is always escaped. KindRaw nodes are written verbatim and must only
// carry trusted markup.
package render
