package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement  VKind = iota // <div>, <a>, etc.
	KindText                  // Escaped text
	KindFragment              // Grouping without wrapper
	KindRaw                   // Raw HTML, written as is
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is a node of a page tree.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "div")
	Props    Props    // Attributes
	Children []*VNode // Child nodes
	Text     string   // For KindText and KindRaw
}

// Props holds element attributes.
type Props map[string]any

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Get returns the attribute value and whether it is set.
func (v *VNode) Get(key string) (any, bool) {
	if v == nil || v.Props == nil {
		return nil, false
	}
	val, ok := v.Props[key]
	return val, ok
}

// TextContent concatenates the text of v and all its descendants.
func (v *VNode) TextContent() string {
	if v == nil {
		return ""
	}
	if v.Kind == KindText {
		return v.Text
	}
	out := ""
	for _, c := range v.Children {
		out += c.TextContent()
	}
	return out
}

// Find returns the first element in depth-first order for which match
// returns true.
func (v *VNode) Find(match func(*VNode) bool) *VNode {
	if v == nil {
		return nil
	}
	if v.Kind == KindElement && match(v) {
		return v
	}
	for _, c := range v.Children {
		if found := c.Find(match); found != nil {
			return found
		}
	}
	return nil
}
