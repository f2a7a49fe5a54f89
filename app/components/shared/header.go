package shared

import (
	"strings"

	. "github.com/vango-dev/techcorp/el"
)

// NavItem is one entry of the main navigation.
type NavItem struct {
	Name string
	Href string
}

// Navigation is the main menu in display order.
var Navigation = []NavItem{
	{Name: "首页", Href: "/"},
	{Name: "产品展示", Href: "/products"},
	{Name: "下载中心", Href: "/downloads"},
	{Name: "客服中心", Href: "/support"},
	{Name: "视频中心", Href: "/videos"},
	{Name: "联系我们", Href: "/contact"},
}

// SiteHeader renders the sticky site header. path marks the current nav item.
// The mobile menu is a <details> disclosure so it works without scripts.
func SiteHeader(path string) *VNode {
	return Header(Class("site-header"),
		Nav(Class("container-custom section-padding"), AriaLabel("主导航"),
			Div(Class("flex justify-between items-center"),
				Logo("logo-mark"),
				Div(Class("nav-desktop"),
					Range(Navigation, func(item NavItem, _ int) *VNode {
						return navLink(item, path, "nav-link")
					}),
					A(Href("/contact"), Class("btn-primary"), Text("免费试用")),
				),
				Details(Class("nav-mobile"),
					Summary(AriaLabel("打开菜单"), Span(Class("menu-icon"), AriaHidden(true), Raw("&#9776;"))),
					Div(Class("nav-mobile-panel"),
						Range(Navigation, func(item NavItem, _ int) *VNode {
							return navLink(item, path, "nav-link-mobile")
						}),
						A(Href("/contact"), Class("btn-primary w-full"), Text("免费试用")),
					),
				),
			),
		),
	)
}

// Logo renders the TC mark and the brand name linking home.
func Logo(markClass string) *VNode {
	return A(Href("/"), Class("brand"),
		Div(Class(markClass), Span(Text("TC"))),
		Span(Class("brand-name"), Text("TechCorp")),
	)
}

func navLink(item NavItem, path, class string) *VNode {
	active := isActive(item.Href, path)
	return A(Href(item.Href), Class(class), ClassIf(active, "active"),
		ariaCurrent(active),
		Text(item.Name),
	)
}

func ariaCurrent(active bool) Attr {
	if !active {
		return Attr{}
	}
	return AriaCurrent("page")
}

func isActive(href, path string) bool {
	if href == "/" {
		return path == "/"
	}
	return path == href || strings.HasPrefix(path, href+"/")
}
