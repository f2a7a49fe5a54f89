package render

import "github.com/vango-dev/techcorp/pkg/vdom"

// inlineElements are kept on one line in pretty output.
var inlineElements = map[string]bool{
	"a":        true,
	"b":        true,
	"button":   true,
	"code":     true,
	"em":       true,
	"label":    true,
	"option":   true,
	"small":    true,
	"span":     true,
	"strong":   true,
	"textarea": true,
	"time":     true,
	"title":    true,
}

func isInlineElement(tag string) bool {
	return inlineElements[tag]
}

func isVoidElement(tag string) bool {
	return vdom.IsVoidElement(tag)
}

// rawTextElements hold text that must not be entity-escaped.
var rawTextElements = map[string]bool{
	"script": true,
	"style":  true,
}

// booleanAttrs are rendered as a bare name when true and omitted when false.
var booleanAttrs = map[string]bool{
	"async":      true,
	"autofocus":  true,
	"checked":    true,
	"controls":   true,
	"defer":      true,
	"disabled":   true,
	"download":   true,
	"hidden":     true,
	"multiple":   true,
	"novalidate": true,
	"open":       true,
	"readonly":   true,
	"required":   true,
	"selected":   true,
}

func isBooleanAttr(name string) bool {
	return booleanAttrs[name]
}
