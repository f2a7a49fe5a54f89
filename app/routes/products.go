package routes

import (
	"strconv"

	. "github.com/vango-dev/techcorp/el"

	"github.com/vango-dev/techcorp/app/components"
	"github.com/vango-dev/techcorp/pkg/catalog"
)

var productFeatures = []feature{
	{Icon: "🔌", Title: "易于集成", Description: "提供开放的API和详细的文档，轻松与现有系统集成"},
	{Icon: "📈", Title: "可扩展架构", Description: "支持从小型企业到大型企业的各种规模部署"},
	{Icon: "📊", Title: "数据驱动", Description: "基于数据分析提供智能洞察和决策支持"},
}

// Products renders the product listing filtered by ?category=.
func Products(ctx Ctx) Page {
	category := selected(ctx.Query, "category", catalog.ProductCategories, catalog.All)
	products := ctx.Catalog.ProductsByCategory(category)

	return Page{
		Title:       "产品展示",
		Description: "探索我们全面的产品线，每一款产品都经过精心设计，旨在解决您业务中的特定挑战",
		Content: Div(Class("page-muted"),
			pageHeader("产品展示", "探索我们全面的产品线，每一款产品都经过精心设计，旨在解决您业务中的特定挑战"),
			Div(Class("container-custom section-padding"),
				Nav(Class("filter-bar"), AriaLabel("产品分类"),
					Span(Class("filter-label"), Text("筛选")),
					Range(catalog.ProductCategories, func(c string, _ int) *VNode {
						return filterLink("/products", ctx.Query, "category", c, category)
					}),
				),
				IfElse(len(products) == 0,
					emptyState("该分类下暂无产品"),
					Div(Class("grid grid-4"),
						Range(products, func(p catalog.Product, _ int) *VNode {
							return components.ProductCard(p)
						}),
					),
				),
				Section(ID("features"), Class("section-block"),
					H2(Class("text-center"), Text("产品特性")),
					Div(Class("grid grid-3"),
						Range(productFeatures, func(f feature, _ int) *VNode {
							return Div(Class("feature-plain text-center"),
								Div(Class("feature-icon"), AriaHidden(true), Text(f.Icon)),
								H3(Text(f.Title)),
								P(Text(f.Description)),
							)
						}),
					),
				),
				Section(ID("pricing"), Class("cta-card"),
					H3(Text("需要定制化解决方案？")),
					P(Text("我们的专业团队可以根据您的特定需求，提供定制化的产品解决方案")),
					A(Href("/contact"), Class("btn-primary"), Text("联系销售团队")),
				),
			),
		),
	}
}

// ProductDetail renders one product. It reports false when id is unknown.
func ProductDetail(ctx Ctx, id int) (Page, bool) {
	var product *catalog.Product
	for i := range ctx.Catalog.Products {
		if ctx.Catalog.Products[i].ID == id {
			product = &ctx.Catalog.Products[i]
			break
		}
	}
	if product == nil {
		return Page{}, false
	}

	return Page{
		Title:       product.Name,
		Description: product.Description,
		Content: Div(Class("page-muted"),
			pageHeader(product.Name, product.Description),
			Div(Class("container-custom section-padding"),
				Article(Class("card product-detail"), ID("cases"),
					Div(Class("product-detail-head"),
						Span(Class("product-icon"), AriaHidden(true), Text(catalog.CategoryIcon(product.Category))),
						Span(Class("badge badge-primary"), Text(product.Category)),
						Span(Class("rating"), Text("★ "+strconv.FormatFloat(product.Rating, 'f', -1, 64))),
					),
					H2(Text("核心功能")),
					Ul(Class("check-list"),
						Range(product.Features, func(f string, _ int) *VNode {
							return Li(Text(f))
						}),
					),
					Div(Class("product-footer"),
						Span(Class("price"), Text(catalog.PriceLabel(product.Price))),
						A(Href("/contact"), Class("btn-primary"), Text("咨询购买")),
					),
				),
				P(A(Href("/products"), Class("link-more"), Text("← 返回产品列表"))),
			),
		),
	}, true
}

func emptyState(msg string) *VNode {
	return Div(Class("empty-state"), P(Text(msg)))
}
