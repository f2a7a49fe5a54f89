package el

import (
	"reflect"
	"testing"

	"github.com/vango-dev/techcorp/pkg/vdom"
)

func TestConstructorsMatchVDOM(t *testing.T) {
	args := []any{
		vdom.ID("root"),
		vdom.Class("one", "two"),
		"hello",
		vdom.Span("child"),
	}

	pairs := []struct {
		name string
		got  *VNode
		want *vdom.VNode
	}{
		{"Div", Div(args...), vdom.Div(args...)},
		{"Section", Section(args...), vdom.Section(args...)},
		{"A", A(args...), vdom.A(args...)},
		{"Form", Form(args...), vdom.Form(args...)},
		{"Textarea", Textarea(args...), vdom.Textarea(args...)},
	}

	for _, p := range pairs {
		t.Run(p.name, func(t *testing.T) {
			if !reflect.DeepEqual(p.got, p.want) {
				t.Errorf("%s mismatch:\n got %#v\nwant %#v", p.name, p.got, p.want)
			}
		})
	}
}

func TestAttributeHelpersMatchVDOM(t *testing.T) {
	pairs := []struct {
		got, want Attr
	}{
		{Href("/products"), vdom.Href("/products")},
		{Data("phase", "idle"), vdom.Data("phase", "idle")},
		{ClassIf(true, "active"), vdom.ClassIf(true, "active")},
		{Download("a.pdf"), vdom.Download("a.pdf")},
		{MaxLength(10), vdom.MaxLength(10)},
	}
	for _, p := range pairs {
		if !reflect.DeepEqual(p.got, p.want) {
			t.Errorf("attr mismatch: got %#v want %#v", p.got, p.want)
		}
	}
}

func TestRangeReexport(t *testing.T) {
	nodes := Range([]int{1, 2}, func(n, i int) *VNode { return Li(Textf("%d", n)) })
	if len(nodes) != 2 || nodes[0].TextContent() != "1" {
		t.Errorf("Range = %v", nodes)
	}
}
