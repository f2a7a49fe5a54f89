package routes

import (
	. "github.com/vango-dev/techcorp/el"

	"github.com/vango-dev/techcorp/app/components"
	"github.com/vango-dev/techcorp/pkg/catalog"
)

type feature struct {
	Icon, Title, Description string
}

var homeFeatures = []feature{
	{Icon: "🔒", Title: "企业级安全", Description: "银行级别数据加密和多重安全防护"},
	{Icon: "🛠️", Title: "24/7 技术支持", Description: "全天候技术支持和客户服务"},
	{Icon: "⚡", Title: "99.9% 可用性", Description: "高可用架构确保业务连续运行"},
}

type quickLink struct {
	Href, Icon, Title, Description, Action string
}

var homeQuickLinks = []quickLink{
	{Href: "/downloads", Icon: "⭳", Title: "下载中心", Description: "获取最新版本的软件、驱动和文档", Action: "立即下载 →"},
	{Href: "/videos", Icon: "▶", Title: "视频中心", Description: "观看产品演示、教程和客户案例", Action: "观看视频 →"},
	{Href: "/support", Icon: "✉", Title: "客服中心", Description: "获取技术支持、查看文档和常见问题", Action: "获取帮助 →"},
}

// Home renders the landing page.
func Home(ctx Ctx) Page {
	return Page{
		Title:       "首页",
		Description: "为企业提供全面的数字化转型解决方案，从云服务到数据分析，一站式满足您的业务需求",
		Content: Fragment(
			Section(Class("hero gradient-bg"),
				Div(Class("container-custom section-padding hero-inner"),
					H1(Class("hero-title"),
						Text("创新科技"),
						Span(Class("hero-accent"), Text("驱动业务增长")),
					),
					P(Class("hero-lead"), Text("为企业提供全面的数字化转型解决方案，从云服务到数据分析，一站式满足您的业务需求")),
					Div(Class("hero-actions"),
						A(Href("/products"), Class("btn-light"), Text("查看产品 →")),
						A(Href("/contact"), Class("btn-ghost"), Text("联系我们")),
					),
				),
			),
			Section(ID("about"), Class("section-muted"),
				Div(Class("container-custom section-padding"),
					Div(Class("section-heading text-center"),
						H2(Text("为什么选择我们")),
						P(Text("我们提供业界领先的技术解决方案和卓越的客户服务")),
					),
					Div(Class("grid grid-3"),
						Range(homeFeatures, func(f feature, _ int) *VNode {
							return Div(Class("feature-card"),
								Div(Class("feature-icon"), AriaHidden(true), Text(f.Icon)),
								H3(Text(f.Title)),
								P(Text(f.Description)),
							)
						}),
					),
				),
			),
			Section(
				Div(Class("container-custom section-padding"),
					Div(Class("section-heading split"),
						Div(
							H2(Text("热门产品")),
							P(Text("探索我们最受欢迎的产品解决方案")),
						),
						A(Href("/products"), Class("link-more"), Text("查看全部 →")),
					),
					Div(Class("grid grid-3"),
						Range(ctx.Catalog.FeaturedProducts(3), func(p catalog.Product, _ int) *VNode {
							return components.ProductCard(p)
						}),
					),
				),
			),
			Section(Class("cta"),
				Div(Class("container-custom section-padding text-center"),
					H2(Text("准备好开始了吗？")),
					P(Text("加入数千家已经选择 TechCorp 的企业，开始您的数字化转型之旅")),
					Div(Class("hero-actions"),
						A(Href("/contact"), Class("btn-accent"), Text("获取报价")),
						A(Href("/support"), Class("btn-ghost"), Text("预约演示")),
					),
				),
			),
			Section(Class("section-muted"),
				Div(Class("container-custom section-padding grid grid-3"),
					Range(homeQuickLinks, func(l quickLink, _ int) *VNode {
						return A(Href(l.Href), Class("quick-link"),
							Div(Class("quick-link-title"),
								Span(Class("quick-link-icon"), AriaHidden(true), Text(l.Icon)),
								H3(Text(l.Title)),
							),
							P(Text(l.Description)),
							Span(Class("quick-link-action"), Text(l.Action)),
						)
					}),
				),
			),
		),
	}
}
