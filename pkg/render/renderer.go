package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/vango-dev/techcorp/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output. Development only.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces.
	Indent string
}

// Renderer renders vdom trees to HTML. A Renderer holds no per-render
// state and may be shared between goroutines.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a tree to w.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	sw := &stickyWriter{w: w}
	r.renderNode(sw, node, 0, false)
	return sw.err
}

// stickyWriter remembers the first write error and drops later writes.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (s *stickyWriter) str(v string) {
	if s.err != nil {
		return
	}
	_, s.err = io.WriteString(s.w, v)
}

func (s *stickyWriter) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

func (r *Renderer) renderNode(w *stickyWriter, node *vdom.VNode, depth int, rawText bool) {
	if node == nil || w.err != nil {
		return
	}

	switch node.Kind {
	case vdom.KindElement:
		r.renderElement(w, node, depth)
	case vdom.KindText:
		if rawText {
			w.str(node.Text)
		} else {
			w.str(escapeHTML(node.Text))
		}
	case vdom.KindFragment:
		for _, child := range node.Children {
			r.renderNode(w, child, depth, rawText)
		}
	case vdom.KindRaw:
		w.str(node.Text)
	default:
		w.fail(fmt.Errorf("render: unknown node kind %d", node.Kind))
	}
}

func (r *Renderer) renderElement(w *stickyWriter, node *vdom.VNode, depth int) {
	tag := node.Tag
	if tag == "" {
		w.fail(fmt.Errorf("render: element without tag"))
		return
	}

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	w.str("<")
	w.str(tag)
	r.renderAttributes(w, node)
	w.str(">")

	if isVoidElement(tag) {
		if len(node.Children) > 0 {
			w.fail(fmt.Errorf("render: void element <%s> has children", tag))
			return
		}
		if r.config.Pretty {
			w.str("\n")
		}
		return
	}

	block := r.config.Pretty && len(node.Children) > 0 && !isInlineElement(tag)
	if block {
		w.str("\n")
	}
	rawText := rawTextElements[tag]
	for _, child := range node.Children {
		childDepth := depth + 1
		if !block {
			childDepth = 0
		}
		r.renderNode(w, child, childDepth, rawText)
	}
	if block {
		r.writeIndent(w, depth)
	}

	w.str("</")
	w.str(tag)
	w.str(">")
	if r.config.Pretty {
		w.str("\n")
	}
}

// renderAttributes writes attributes in sorted key order.
func (r *Renderer) renderAttributes(w *stickyWriter, node *vdom.VNode) {
	if len(node.Props) == 0 {
		return
	}

	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := node.Props[key]
		if value == nil {
			continue
		}

		if isBooleanAttr(key) {
			if b, ok := value.(bool); ok {
				if b {
					w.str(" ")
					w.str(key)
				}
				continue
			}
		}

		w.str(" ")
		w.str(key)
		w.str(`="`)
		w.str(escapeAttr(attrToString(value)))
		w.str(`"`)
	}
}

// attrToString converts an attribute value to a string.
func attrToString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (r *Renderer) writeIndent(w *stickyWriter, depth int) {
	for i := 0; i < depth; i++ {
		w.str(r.config.Indent)
	}
}
