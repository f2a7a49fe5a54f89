package routes

import (
	. "github.com/vango-dev/techcorp/el"

	"github.com/vango-dev/techcorp/app/components"
	"github.com/vango-dev/techcorp/pkg/contact"
)

type infoCard struct {
	Icon, Title string
	Details     []string
}

var contactInfo = []infoCard{
	{Icon: "⌖", Title: "办公地址", Details: []string{
		"北京市朝阳区科技园A座18层",
		"上海市浦东新区张江高科技园区",
		"深圳市南山区科技园南区",
	}},
	{Icon: "☎", Title: "联系电话", Details: []string{
		"客服热线：400-123-4567",
		"技术支持：400-123-4568",
		"商务合作：400-123-4569",
	}},
	{Icon: "✉", Title: "电子邮箱", Details: []string{
		"一般咨询：contact@techcorp.com",
		"技术支持：support@techcorp.com",
		"商务合作：business@techcorp.com",
	}},
}

type department struct {
	Name, Description, Contact, Hours string
}

var departments = []department{
	{Name: "客户支持", Description: "产品使用问题和技术支持", Contact: "support@techcorp.com", Hours: "9:00-21:00"},
	{Name: "销售咨询", Description: "产品购买和商务合作", Contact: "sales@techcorp.com", Hours: "9:00-18:00"},
	{Name: "市场合作", Description: "品牌合作和市场活动", Contact: "marketing@techcorp.com", Hours: "9:00-18:00"},
	{Name: "人力资源", Description: "招聘和人事咨询", Contact: "hr@techcorp.com", Hours: "9:00-18:00"},
}

var contactHours = []schedule{
	{Day: "周一至周五", Time: "9:00 - 18:00", Kind: "工作日"},
	{Day: "周六", Time: "10:00 - 17:00", Kind: "值班时间"},
	{Day: "周日及节假日", Time: "休息", Kind: "休息日"},
	{Day: "紧急支持", Time: "7×24小时", Kind: "随时响应"},
}

var contactFAQs = []qa{
	{"一般咨询需要多久得到回复？", "我们会在24小时内回复所有咨询邮件。紧急问题请拨打客服热线。"},
	{"技术支持的服务时间是什么？", "标准技术支持服务时间为工作日9:00-21:00，紧急支持7×24小时。"},
	{"如何预约产品演示？", "您可以通过表单选择\"产品咨询\"主题，我们的销售团队会与您联系安排演示。"},
}

var socialNetworks = []string{"微信", "微博", "领英", "知乎"}

// ContactScript is the progressive enhancement for the contact form.
const ContactScript = "/static/contact.js"

// Contact renders the contact page around the visitor's form state.
func Contact(ctx Ctx, form contact.Snapshot) Page {
	return Page{
		Title:       "联系我们",
		Description: "我们期待与您沟通，无论您有任何问题、建议或合作意向，我们都将及时回复",
		Scripts:     []string{ContactScript},
		Content: Div(Class("page-muted"),
			Section(Class("page-hero gradient-bg"),
				Div(Class("container-custom section-padding"),
					H1(Class("page-title"), Text("联系我们")),
					P(Class("page-subtitle"), Text("我们期待与您沟通，无论您有任何问题、建议或合作意向，我们都将及时回复")),
					Div(Class("hero-stats"),
						heroStat("24小时内", "响应时间"),
						heroStat("中英文", "支持语言"),
						heroStat("5000+企业", "服务客户"),
					),
				),
			),
			Div(Class("container-custom section-padding contact-layout"),
				Div(Class("contact-main"),
					components.ContactForm(form),
					Section(Class("section-block"),
						H2(Text("常见问题")),
						Div(Class("stack"),
							Range(contactFAQs, func(f qa, _ int) *VNode {
								return Div(Class("qa-card"), H3(Text(f.Question)), P(Text(f.Answer)))
							}),
						),
					),
				),
				Aside(Class("contact-side"),
					Range(contactInfo, func(c infoCard, _ int) *VNode {
						return Div(Class("card side-card"),
							Div(Class("info-icon"), AriaHidden(true), Text(c.Icon)),
							H3(Text(c.Title)),
							Ul(Class("bullet-list"), Range(c.Details, func(d string, _ int) *VNode { return Li(Text(d)) })),
						)
					}),
					Div(Class("card side-card side-card-dark"),
						H3(Text("工作时间")),
						Dl(Class("schedule"),
							Range(contactHours, func(s schedule, _ int) *VNode {
								return Div(Class("schedule-row"),
									Dt(Text(s.Day), Small(Text(s.Kind))),
									Dd(Text(s.Time)),
								)
							}),
						),
					),
					Div(Class("card side-card"),
						H3(Text("各部门联系方式")),
						Range(departments, func(d department, _ int) *VNode {
							return Div(Class("department"),
								Div(Class("department-head"),
									H4(Text(d.Name)),
									Span(Class("badge badge-primary"), Text(d.Hours)),
								),
								P(Class("muted"), Text(d.Description)),
								A(Href("mailto:"+d.Contact), Class("department-mail"), Text(d.Contact)),
							)
						}),
					),
					Div(Class("card side-card text-center"),
						H3(Text("关注我们")),
						P(Class("muted"), Text("获取最新产品动态和行业资讯")),
						Div(Class("social"),
							Range(socialNetworks, func(name string, _ int) *VNode {
								return Span(Class("social-link"), TitleAttr(name), Text(string([]rune(name)[:1])))
							}),
						),
					),
				),
			),
		),
	}
}
