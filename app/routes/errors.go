package routes

import (
	. "github.com/vango-dev/techcorp/el"
)

func errorPage(code, title, message string, actions ...*VNode) Page {
	return Page{
		Title: title,
		Content: Section(Class("error-page section-padding"),
			Div(Class("container-custom text-center"),
				P(Class("error-code"), Text(code)),
				H1(Class("page-title"), Text(title)),
				P(Class("page-subtitle"), Text(message)),
				Div(Class("hero-actions"), actions),
			),
		),
	}
}

// NotFound is rendered for unknown paths.
func NotFound(ctx Ctx) Page {
	return errorPage("404", "页面未找到", "您访问的页面不存在或已被移除",
		A(Href("/"), Class("btn btn-primary"), Text("返回首页")),
		A(Href("/support"), Class("btn btn-secondary"), Text("客服中心")),
	)
}

// ServerError is rendered when a handler fails.
func ServerError(ctx Ctx) Page {
	return errorPage("500", "服务暂时不可用", "服务器处理请求时出错，请稍后再试",
		A(Href(ctx.Path), Class("btn btn-primary"), Text("重新加载")),
		A(Href("/"), Class("btn btn-secondary"), Text("返回首页")),
	)
}

// TooManyRequests is rendered when a client exceeds the submission limit.
func TooManyRequests(ctx Ctx) Page {
	return errorPage("429", "提交过于频繁", "您的请求过于频繁，请稍后再试",
		A(Href("/contact"), Class("btn btn-primary"), Text("返回联系表单")),
	)
}
