// Package catalog holds the site's read-only content: products, downloads,
// videos and support FAQs.
//
// The content ships as an embedded YAML document and is parsed once:
//
//	c, err := catalog.Default()
//	if err != nil {
//		return err
//	}
//	for _, p := range c.ProductsByCategory("云服务") {
//		fmt.Println(p.Name, p.Price)
//	}
//
// Listings filter by exact category or platform match. The All sentinel
// ("全部") and the empty string both select every entry.
package catalog
