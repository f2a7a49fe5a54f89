package routes

import (
	"net/url"
	"time"

	. "github.com/vango-dev/techcorp/el"

	"github.com/vango-dev/techcorp/app/components/shared"
	"github.com/vango-dev/techcorp/pkg/catalog"
	"github.com/vango-dev/techcorp/pkg/render"
)

// SiteName is appended to every page title.
const SiteName = "TechCorp"

// Ctx carries the request details a page needs.
type Ctx struct {
	Path    string
	Query   url.Values
	Catalog *catalog.Catalog
	Now     time.Time
}

// Page is the output of a route: document metadata plus main content.
type Page struct {
	Title        string
	Description  string
	Content      *VNode
	RefreshAfter int
	Scripts      []string
}

// Layout wraps page in the site chrome and returns the document to render.
func Layout(ctx Ctx, page Page) render.PageData {
	title := SiteName
	if page.Title != "" {
		title = page.Title + " - " + SiteName
	}
	now := ctx.Now
	if now.IsZero() {
		now = time.Now()
	}

	scripts := make([]render.ScriptTag, 0, len(page.Scripts))
	for _, src := range page.Scripts {
		scripts = append(scripts, render.ScriptTag{Src: src, Defer: true})
	}

	return render.PageData{
		Title:        title,
		Description:  page.Description,
		StyleSheets:  []string{"/static/site.css"},
		Scripts:      scripts,
		RefreshAfter: page.RefreshAfter,
		BodyClass:    "site",
		Body: Fragment(
			shared.SiteHeader(ctx.Path),
			Main(ID("main"), page.Content),
			shared.SiteFooter(now),
		),
	}
}

func pageHeader(title, subtitle string) *VNode {
	return Section(Class("page-hero gradient-bg"),
		Div(Class("container-custom section-padding text-center"),
			H1(Class("page-title"), Text(title)),
			P(Class("page-subtitle"), Text(subtitle)),
		),
	)
}

// filterLink renders one pill of a category filter bar.
func filterLink(path string, query url.Values, param, value, current string) *VNode {
	active := value == current
	return A(Href(filterHref(path, query, param, value)), Class("filter-pill"), ClassIf(active, "active"),
		currentAttr(active), Text(value))
}

// filterHref is path with query, param set to value. Selecting All drops
// the parameter so the canonical URL stays clean.
func filterHref(path string, query url.Values, param, value string) string {
	q := url.Values{}
	for k, v := range query {
		q[k] = append([]string(nil), v...)
	}
	if value == catalog.All || value == "" {
		q.Del(param)
	} else {
		q.Set(param, value)
	}
	if enc := q.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

func currentAttr(active bool) Attr {
	if !active {
		return Attr{}
	}
	return AriaCurrent("true")
}

// selected returns the query value for param when it is one of allowed,
// else fallback.
func selected(query url.Values, param string, allowed []string, fallback string) string {
	v := query.Get(param)
	for _, a := range allowed {
		if a == v {
			return v
		}
	}
	return fallback
}
