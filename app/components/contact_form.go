package components

import (
	"strconv"

	. "github.com/vango-dev/techcorp/el"
	"github.com/vango-dev/techcorp/pkg/contact"
)

// ContactFormID is the id of the element the live script swaps.
const ContactFormID = "contact-form"

// ContactForm renders the contact form for one snapshot of its controller.
// Without scripts the form posts to /contact; with scripts, contact.js
// drives the same controller over the /contact/live websocket.
func ContactForm(s contact.Snapshot) *VNode {
	return Div(ID(ContactFormID), Class("card contact-card"),
		Data("live", "/contact/live"),
		Data("phase", s.Phase.String()),
		AriaLive("polite"),
		contactBody(s),
	)
}

func contactBody(s contact.Snapshot) *VNode {
	if s.Phase == contact.PhaseSuccess {
		return successPanel()
	}
	return Fragment(
		Div(Class("card-header"),
			H3(Class("card-title"), Text("发送消息")),
			P(Class("card-description"), Text("填写以下表单，我们的团队会尽快与您联系")),
		),
		If(s.Phase == contact.PhaseError, failureAlert(s.Failure)),
		contactFields(s),
	)
}

func successPanel() *VNode {
	return Div(Class("success-panel"), Role("status"),
		Div(Class("success-icon"), AriaHidden(true), Text("✓")),
		H3(Class("success-title"), Text("提交成功！")),
		P(Class("success-text"), Text("我们已经收到您的消息，会在24小时内与您联系。")),
		Form(Method("post"), Action("/contact/dismiss"), Data("op", "dismiss"),
			Button(Type("submit"), Class("btn-primary"), Text("继续提交")),
		),
	)
}

func failureAlert(msg string) *VNode {
	if msg == "" {
		msg = contact.FailureMessage
	}
	return Div(Class("alert alert-error"), Role("alert"),
		Span(Text(msg)),
		Form(Method("post"), Action("/contact/retry"), Data("op", "retry"), Class("inline-form"),
			Button(Type("submit"), Class("btn-outline btn-sm"), Text("重试")),
		),
	)
}

func contactFields(s contact.Snapshot) *VNode {
	busy := s.Phase == contact.PhaseSubmitting
	f := s.Form
	return Form(Method("post"), Action("/contact"), Novalidate(), Data("op", "submit"),
		Fieldset(Class("card-content"), DisabledIf(busy),
			Div(Class("form-row"),
				textField(s, contact.FieldName, "text", "姓名 *", "请输入您的姓名", f.Name, "name"),
				textField(s, contact.FieldEmail, "email", "邮箱 *", "example@email.com", f.Email, "email"),
			),
			Div(Class("form-row"),
				textField(s, contact.FieldPhone, "tel", "手机号码", "13800138000", f.Phone, "tel"),
				textField(s, contact.FieldCompany, "text", "公司名称", "您的公司名称（选填）", f.Company, "organization"),
			),
			Div(Class("form-group"),
				Label(For(contact.FieldSubject), Class("label"), Text("咨询主题")),
				Select(ID(contact.FieldSubject), Name(contact.FieldSubject), Class("input"),
					Range(contact.Subjects, func(subject string, _ int) *VNode {
						return Option(Value(subject), SelectedIf(subject == f.Subject), Text(subject))
					}),
				),
			),
			Div(Class("form-group"),
				Label(For(contact.FieldMessage), Class("label"), Text("留言内容 *")),
				Textarea(ID(contact.FieldMessage), Name(contact.FieldMessage), Rows(5),
					Class("textarea"), ClassIf(s.Errors.Has(contact.FieldMessage), "input-error"),
					Placeholder("请详细描述您的问题或需求..."),
					invalidAttrs(s, contact.FieldMessage),
					Text(f.Message),
				),
				fieldError(s, contact.FieldMessage),
				P(Class("char-count"), Data("count", "message"),
					Text("已输入 "+strconv.Itoa(s.MessageLength)+" 个字符"),
				),
			),
			Div(Class("form-check"),
				Input(ID(contact.FieldPrivacy), Name(contact.FieldPrivacy), Type("checkbox"), Value("on"),
					CheckedIf(f.PrivacyAccepted), invalidAttrs(s, contact.FieldPrivacy),
				),
				Label(For(contact.FieldPrivacy), Class("check-label"),
					Text("我已阅读并同意"),
					A(Href("/support#privacy"), Target("_blank"), Rel("noopener noreferrer"), Text("隐私政策")),
					Text("和"),
					A(Href("/support#terms"), Target("_blank"), Rel("noopener noreferrer"), Text("服务条款")),
				),
			),
			fieldError(s, contact.FieldPrivacy),
		),
		Div(Class("card-footer"),
			Button(Type("submit"), Class("btn-primary"), ClassIf(busy, "is-busy"), DisabledIf(busy),
				IfElse(busy,
					Fragment(Span(Class("loading-spinner"), AriaHidden(true)), Text("提交中...")),
					Text("发送消息"),
				),
			),
		),
	)
}

func textField(s contact.Snapshot, field, inputType, label, placeholder, value, autocomplete string) *VNode {
	return Div(Class("form-group"),
		Label(For(field), Class("label"), Text(label)),
		Input(ID(field), Name(field), Type(inputType), Value(value),
			Class("input"), ClassIf(s.Errors.Has(field), "input-error"),
			Placeholder(placeholder), Autocomplete(autocomplete),
			invalidAttrs(s, field),
		),
		fieldError(s, field),
	)
}

func invalidAttrs(s contact.Snapshot, field string) []Attr {
	if !s.Errors.Has(field) {
		return nil
	}
	return []Attr{AriaInvalid(true), AriaDescribedBy(field + "-error")}
}

func fieldError(s contact.Snapshot, field string) *VNode {
	if !s.Errors.Has(field) {
		return nil
	}
	return P(ID(field+"-error"), Class("field-error"), Data("error", field), Text(s.Errors.Get(field)))
}
