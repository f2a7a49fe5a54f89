package contact

import "regexp"

// Validation messages shown next to the fields.
const (
	MsgNameRequired    = "请输入您的姓名"
	MsgEmailRequired   = "请输入您的邮箱"
	MsgEmailInvalid    = "请输入有效的邮箱地址"
	MsgPhoneInvalid    = "请输入有效的手机号码"
	MsgMessageRequired = "请输入您的留言内容"
	MsgMessageTooShort = "留言内容至少需要10个字符"
	MsgPrivacyRequired = "请阅读并同意隐私政策"
)

// MinMessageLength is the minimum number of characters in a message.
const MinMessageLength = 10

var (
	emailPattern = regexp.MustCompile(`^[^\p{Z}\s@]+@[^\p{Z}\s@]+\.[^\p{Z}\s@]+$`)
	phonePattern = regexp.MustCompile(`^1[3-9]\d{9}$`)
)

type fieldRules struct {
	field      string
	validators []Validator
}

// rules run in field order; the first failing validator of a field wins.
var rules = []fieldRules{
	{FieldName, []Validator{Stripped(Required(MsgNameRequired))}},
	{FieldEmail, []Validator{Required(MsgEmailRequired), Pattern(emailPattern, MsgEmailInvalid)}},
	{FieldPhone, []Validator{Pattern(phonePattern, MsgPhoneInvalid)}},
	{FieldMessage, []Validator{
		Stripped(Required(MsgMessageRequired)),
		Stripped(MinLength(MinMessageLength, MsgMessageTooShort)),
	}},
	{FieldPrivacy, []Validator{Accepted(MsgPrivacyRequired)}},
}

// Validate checks a form and returns one message per failing field.
// It is a pure function of f; an empty result means f may be submitted.
func Validate(f FormState) Errors {
	errs := Errors{}
	for _, r := range rules {
		value, _ := f.Value(r.field)
		for _, v := range r.validators {
			if err := v.Validate(value); err != nil {
				errs[r.field] = err.Error()
				break
			}
		}
	}
	return errs
}
