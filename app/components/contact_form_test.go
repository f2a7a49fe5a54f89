package components

import (
	"strings"
	"testing"

	"github.com/vango-dev/techcorp/pkg/contact"
	"github.com/vango-dev/techcorp/pkg/render"
	"github.com/vango-dev/techcorp/pkg/vdom"
)

func renderNode(t *testing.T, node *vdom.VNode) string {
	t.Helper()
	out, err := render.NewRenderer(render.RendererConfig{}).RenderToString(node)
	if err != nil {
		t.Fatalf("RenderToString: %v", err)
	}
	return out
}

func idleSnapshot() contact.Snapshot {
	return contact.Snapshot{Form: contact.NewFormState(), Errors: contact.Errors{}, Phase: contact.PhaseIdle}
}

// =============================================================================
// ContactForm
// =============================================================================

func TestContactForm_Phases(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*contact.Snapshot)
		want    []string
		notWant []string
	}{
		{
			name: "idle",
			want: []string{
				`data-phase="idle"`,
				`data-live="/contact/live"`,
				`action="/contact"`,
				`<option selected value="产品咨询">产品咨询</option>`,
				"已输入 0 个字符",
				"发送消息",
			},
			notWant: []string{"提交中...", "aria-invalid", "提交成功！"},
		},
		{
			name:    "submitting",
			mutate:  func(s *contact.Snapshot) { s.Phase = contact.PhaseSubmitting },
			want:    []string{`data-phase="submitting"`, "提交中...", "loading-spinner", "disabled"},
			notWant: []string{"提交成功！"},
		},
		{
			name:    "success",
			mutate:  func(s *contact.Snapshot) { s.Phase = contact.PhaseSuccess },
			want:    []string{"提交成功！", "24小时内", `action="/contact/dismiss"`},
			notWant: []string{`action="/contact"`, "留言内容 *"},
		},
		{
			name: "error with default message",
			mutate: func(s *contact.Snapshot) {
				s.Phase = contact.PhaseError
			},
			want: []string{`role="alert"`, contact.FailureMessage, `action="/contact/retry"`, "重试"},
		},
		{
			name: "error with custom message",
			mutate: func(s *contact.Snapshot) {
				s.Phase = contact.PhaseError
				s.Failure = "网关超时"
			},
			want: []string{"网关超时"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := idleSnapshot()
			if tt.mutate != nil {
				tt.mutate(&s)
			}
			out := renderNode(t, ContactForm(s))
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q", want)
				}
			}
			for _, notWant := range tt.notWant {
				if strings.Contains(out, notWant) {
					t.Errorf("output unexpectedly contains %q", notWant)
				}
			}
		})
	}
}

func TestContactForm_FieldErrors(t *testing.T) {
	s := idleSnapshot()
	s.Errors = contact.Errors{
		contact.FieldName:    contact.MsgNameRequired,
		contact.FieldPrivacy: contact.MsgPrivacyRequired,
	}
	out := renderNode(t, ContactForm(s))

	for _, want := range []string{
		`id="name-error"`,
		`aria-describedby="name-error"`,
		contact.MsgNameRequired,
		`id="privacyAccepted-error"`,
		contact.MsgPrivacyRequired,
		`aria-invalid="true"`,
		"input-error",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, `id="email-error"`) {
		t.Error("email rendered an error it does not have")
	}
}

func TestContactForm_PreservesInput(t *testing.T) {
	s := idleSnapshot()
	s.Form.Name = "李雷"
	s.Form.Message = "<b>你好</b>"
	s.Form.PrivacyAccepted = true
	s.MessageLength = 9
	out := renderNode(t, ContactForm(s))

	for _, want := range []string{
		`value="李雷"`,
		"&lt;b&gt;你好&lt;/b&gt;",
		"已输入 9 个字符",
		"checked",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(out, "<b>你好</b>") {
		t.Error("message was not escaped")
	}
}
