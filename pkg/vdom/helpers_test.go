package vdom

import "testing"

func TestFragment(t *testing.T) {
	f := Fragment("a", nil, Span("b"), []*VNode{Text("c"), nil})
	if f.Kind != KindFragment {
		t.Fatalf("Kind = %v", f.Kind)
	}
	if len(f.Children) != 3 {
		t.Errorf("children = %d, want 3", len(f.Children))
	}
}

func TestConditionals(t *testing.T) {
	n := Text("x")
	if If(false, n) != nil || If(true, n) != n {
		t.Error("If")
	}
	other := Text("y")
	if IfElse(true, n, other) != n || IfElse(false, n, other) != other {
		t.Error("IfElse")
	}

	called := false
	When(false, func() *VNode { called = true; return n })
	if called {
		t.Error("When(false) must not call fn")
	}
	if When(true, func() *VNode { return n }) != n {
		t.Error("When(true)")
	}
}

func TestRange(t *testing.T) {
	items := []string{"a", "", "c"}
	nodes := Range(items, func(s string, i int) *VNode {
		if s == "" {
			return nil
		}
		return Li(Textf("%d:%s", i, s))
	})
	if len(nodes) != 2 {
		t.Fatalf("len = %d, want 2", len(nodes))
	}
	if got := nodes[1].TextContent(); got != "2:c" {
		t.Errorf("second = %q", got)
	}
}
