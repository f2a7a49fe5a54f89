package shared

import (
	"strconv"
	"time"

	. "github.com/vango-dev/techcorp/el"
)

// LinkGroup is a titled column of footer links.
type LinkGroup struct {
	Title string
	Links []NavItem
}

// FooterLinks are the footer columns in display order.
var FooterLinks = []LinkGroup{
	{Title: "产品", Links: []NavItem{
		{Name: "产品展示", Href: "/products"},
		{Name: "产品特性", Href: "/products#features"},
		{Name: "价格方案", Href: "/products#pricing"},
		{Name: "客户案例", Href: "/products#cases"},
	}},
	{Title: "支持", Links: []NavItem{
		{Name: "下载中心", Href: "/downloads"},
		{Name: "客服中心", Href: "/support"},
		{Name: "文档中心", Href: "/support#docs"},
		{Name: "常见问题", Href: "/support#faq"},
	}},
	{Title: "公司", Links: []NavItem{
		{Name: "关于我们", Href: "/#about"},
		{Name: "联系我们", Href: "/contact"},
		{Name: "加入我们", Href: "/contact"},
		{Name: "新闻动态", Href: "/videos"},
	}},
	{Title: "资源", Links: []NavItem{
		{Name: "视频中心", Href: "/videos"},
		{Name: "博客", Href: "/videos?category=案例"},
		{Name: "白皮书", Href: "/downloads?category=文档"},
		{Name: "活动", Href: "/videos?category=发布会"},
	}},
}

// Company contact lines shown in the footer.
const (
	Hotline = "400-123-4567"
	Email   = "contact@techcorp.com"
	Address = "北京市朝阳区科技园A座"
)

var socialLinks = []NavItem{
	{Name: "Facebook", Href: "#"},
	{Name: "Twitter", Href: "#"},
	{Name: "LinkedIn", Href: "#"},
	{Name: "YouTube", Href: "#"},
}

// SiteFooter renders the footer. now supplies the copyright year.
func SiteFooter(now time.Time) *VNode {
	return Footer(Class("site-footer"),
		Div(Class("container-custom section-padding"),
			Div(Class("footer-grid"),
				Div(Class("footer-about"),
					Logo("logo-mark logo-mark-inverse"),
					P(Class("footer-tagline"), Text("我们致力于为企业提供创新的科技解决方案，助力数字化转型，提升业务效率。")),
					Div(Class("social"),
						Range(socialLinks, func(s NavItem, _ int) *VNode {
							return A(Href(s.Href), AriaLabel(s.Name), Class("social-link"), Text(s.Name[:1]))
						}),
					),
				),
				Range(FooterLinks, func(g LinkGroup, _ int) *VNode {
					return Div(
						H3(Class("footer-heading"), Text(g.Title)),
						Ul(Class("footer-links"),
							Range(g.Links, func(l NavItem, _ int) *VNode {
								return Li(A(Href(l.Href), Text(l.Name)))
							}),
						),
					)
				}),
			),
			Div(Class("footer-contact"),
				Span(Class("contact-line"), Text("☎ "+Hotline)),
				Span(Class("contact-line"), A(Href("mailto:"+Email), Text("✉ "+Email))),
				Span(Class("contact-line"), Text("⌖ "+Address)),
			),
			Div(Class("footer-copy"),
				P(Raw("&copy; "), Text(strconv.Itoa(now.Year())+" TechCorp. 保留所有权利.")),
			),
		),
	)
}
