package routes

import (
	"strconv"

	. "github.com/vango-dev/techcorp/el"

	"github.com/vango-dev/techcorp/app/components/shared"
	"github.com/vango-dev/techcorp/pkg/catalog"
)

type supportCategory struct {
	Icon, Title, Description, Count, Href string
}

var supportCategories = []supportCategory{
	{Icon: "📖", Title: "文档中心", Description: "产品使用指南和API文档", Count: "120+", Href: "/downloads?category=文档"},
	{Icon: "❓", Title: "常见问题", Description: "常见问题解答", Count: "85", Href: "#faq"},
	{Icon: "💬", Title: "在线客服", Description: "实时在线技术支持", Count: "24/7", Href: "/contact"},
	{Icon: "👥", Title: "社区论坛", Description: "与其他用户交流", Count: "2K+", Href: "/videos?category=客户评价"},
}

type contactMethod struct {
	Icon, Title, Description, Subtext, Action, Href string
}

var supportContactMethods = []contactMethod{
	{Icon: "☎", Title: "电话支持", Description: shared.Hotline, Subtext: "周一至周五 9:00-18:00", Action: "拨打", Href: "tel:" + shared.Hotline},
	{Icon: "✉", Title: "邮件支持", Description: "support@techcorp.com", Subtext: "24小时内回复", Action: "发送邮件", Href: "mailto:support@techcorp.com"},
	{Icon: "💬", Title: "在线聊天", Description: "实时在线沟通", Subtext: "立即开始对话", Action: "开始聊天", Href: "/contact"},
}

type schedule struct {
	Day, Time, Kind string
}

var supportHours = []schedule{
	{Day: "周一至周五", Time: "9:00 - 18:00", Kind: "标准支持"},
	{Day: "周末及节假日", Time: "10:00 - 17:00", Kind: "有限支持"},
	{Day: "紧急情况", Time: "7×24小时", Kind: "紧急支持"},
}

var supportLinks = []shared.NavItem{
	{Name: "服务状态", Href: "/api/health"},
	{Name: "服务协议", Href: "#terms"},
	{Name: "隐私政策", Href: "#privacy"},
	{Name: "提交工单", Href: "/contact"},
	{Name: "知识库", Href: "#docs"},
}

// PopularTopics are the one-click searches under the FAQ list.
var PopularTopics = []string{"安装问题", "账户管理", "支付问题", "功能使用", "数据迁移", "API集成"}

// Support renders the help center with the FAQ list searched by ?q=.
func Support(ctx Ctx) Page {
	query := ctx.Query.Get("q")
	faqs := ctx.Catalog.SearchFAQs(query)

	return Page{
		Title:       "客服中心",
		Description: "我们在这里为您提供帮助，多种支持渠道，快速解决您的问题",
		Content: Div(Class("page-muted"),
			Section(Class("page-hero gradient-blue"),
				Div(Class("container-custom section-padding"),
					H1(Class("page-title"), Text("客服中心")),
					P(Class("page-subtitle"), Text("我们在这里为您提供帮助，多种支持渠道，快速解决您的问题")),
					Form(Method("get"), Action("/support"), Class("search-bar search-bar-hero"), Role("search"),
						Input(Type("search"), Name("q"), Value(query), Class("input search-input"),
							Placeholder("搜索问题或关键词..."), AriaLabel("搜索问题")),
						Button(Type("submit"), Class("btn-light"), Text("搜索")),
					),
				),
			),
			Div(Class("container-custom overlap grid grid-4"), ID("docs"),
				Range(supportCategories, func(c supportCategory, _ int) *VNode {
					return A(Href(c.Href), Class("support-tile"),
						Div(Class("support-icon"), AriaHidden(true), Text(c.Icon)),
						H3(Text(c.Title)),
						P(Text(c.Description)),
						Div(Class("support-tile-foot"),
							Strong(Text(c.Count)),
							Span(Class("link-more"), Text("进入 →")),
						),
					)
				}),
			),
			Div(Class("container-custom section-padding support-layout"),
				Section(ID("faq"), Class("support-main"),
					Div(Class("list-heading"),
						H2(Text("常见问题解答")),
						Span(Class("muted"), Text("找到 "+strconv.Itoa(len(faqs))+" 个相关问题")),
					),
					Div(Class("stack"),
						Range(faqs, func(f catalog.FAQ, _ int) *VNode {
							return Details(Class("faq"), ID("faq-"+strconv.Itoa(f.ID)),
								Summary(
									Span(Class("badge badge-primary"), Text(f.Category)),
									Span(Class("faq-question"), Text(f.Question)),
								),
								Div(Class("faq-answer"),
									P(Text(f.Answer)),
									Div(Class("faq-actions"),
										A(Href("/contact"), Class("link-more"), Text("反馈问题")),
									),
								),
							)
						}),
					),
					If(len(faqs) == 0, Div(Class("empty-state"),
						H3(Text("未找到相关问题")),
						P(Text("尝试使用其他关键词搜索，或直接联系我们获取帮助")),
						A(Href("/support"), Class("btn-primary"), Text("查看所有问题")),
					)),
					Div(Class("section-block"),
						H3(Text("热门主题")),
						Div(Class("filter-bar"),
							Range(PopularTopics, func(topic string, _ int) *VNode {
								return filterLink("/support", nil, "q", topic, query)
							}),
						),
					),
				),
				Aside(Class("support-side"),
					Div(Class("card side-card"),
						H3(Text("联系我们")),
						Range(supportContactMethods, func(m contactMethod, _ int) *VNode {
							return Div(Class("contact-method"),
								Span(Class("contact-method-icon"), AriaHidden(true), Text(m.Icon)),
								Div(Class("contact-method-body"),
									H4(Text(m.Title)),
									P(Class("strong"), Text(m.Description)),
									P(Class("muted"), Text(m.Subtext)),
								),
								A(Href(m.Href), Class("btn-outline btn-sm"), Text(m.Action)),
							)
						}),
					),
					Div(Class("card side-card side-card-dark"),
						H3(Text("支持时间")),
						Dl(Class("schedule"),
							Range(supportHours, func(s schedule, _ int) *VNode {
								return Div(Class("schedule-row"),
									Dt(Text(s.Day), Small(Text(s.Kind))),
									Dd(Text(s.Time)),
								)
							}),
						),
					),
					Div(Class("card side-card"),
						H3(Text("快速链接")),
						Ul(Class("link-list"),
							Range(supportLinks, func(l shared.NavItem, _ int) *VNode {
								return Li(A(Href(l.Href), Span(Text(l.Name)), Span(AriaHidden(true), Text("→"))))
							}),
						),
					),
				),
			),
			Div(Class("container-custom section-padding legal"),
				Section(ID("terms"),
					H2(Text("服务条款")),
					P(Text("使用 TechCorp 的产品与服务即表示您同意遵守相关服务协议。具体条款以您与 TechCorp 签订的合同为准。")),
				),
				Section(ID("privacy"),
					H2(Text("隐私政策")),
					P(Text("您通过联系表单提交的信息仅用于回复您的咨询，我们不会向第三方出售或披露您的个人信息。")),
				),
			),
		),
	}
}
