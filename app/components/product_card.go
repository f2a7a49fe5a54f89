package components

import (
	"strconv"

	. "github.com/vango-dev/techcorp/el"
	"github.com/vango-dev/techcorp/pkg/catalog"
)

// ProductCard renders one product tile with its first two features.
func ProductCard(p catalog.Product) *VNode {
	features := p.Features
	if len(features) > 2 {
		features = features[:2]
	}
	return Article(Class("card product-card"), ID("product-"+strconv.Itoa(p.ID)),
		Div(Class("product-art"),
			Div(Class("product-icon"), AriaHidden(true), Text(catalog.CategoryIcon(p.Category))),
			Span(Class("badge badge-primary product-category"), Text(p.Category)),
		),
		Div(Class("product-body"),
			Div(Class("product-title-row"),
				H3(Class("product-name"), Text(p.Name)),
				Span(Class("rating"), AriaLabel("评分"),
					Span(AriaHidden(true), Text("★")),
					Text(strconv.FormatFloat(p.Rating, 'f', -1, 64)),
				),
			),
			P(Class("product-description"), Text(p.Description)),
			Div(Class("tag-list"),
				Range(features, func(f string, _ int) *VNode {
					return Span(Class("tag"), Text(f))
				}),
			),
			Div(Class("product-footer"),
				Div(
					Span(Class("price"), Text(p.Price)),
					If(p.Price != "定制", Span(Class("price-unit"), Text("/月"))),
				),
				A(Href("/products/"+strconv.Itoa(p.ID)), Class("btn-primary btn-sm"), Text("了解详情")),
			),
		),
	)
}
