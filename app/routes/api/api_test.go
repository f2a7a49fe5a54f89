package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/vango-dev/techcorp/pkg/catalog"
)

func newHandler(t *testing.T) (http.Handler, *catalog.Catalog) {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	return New(c, "1.2.3").Routes(), c
}

func get(t *testing.T, h http.Handler, target string, out any) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("%s: Content-Type = %q", target, ct)
	}
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("%s: decode: %v\n%s", target, err, rec.Body.String())
		}
	}
	return rec
}

// =============================================================================
// Endpoints
// =============================================================================

func TestHealth(t *testing.T) {
	h, _ := newHandler(t)
	var body Health
	rec := get(t, h, "/health", &body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body.Status != "ok" || body.Version != "1.2.3" {
		t.Errorf("body = %+v", body)
	}
}

func TestProducts(t *testing.T) {
	h, c := newHandler(t)

	var all List[catalog.Product]
	get(t, h, "/products", &all)
	if all.Total != len(c.Products) || len(all.Items) != all.Total {
		t.Errorf("total = %d, want %d", all.Total, len(c.Products))
	}
	if all.Filters["category"] != catalog.All {
		t.Errorf("filters = %v", all.Filters)
	}

	category := c.Products[0].Category
	var filtered List[catalog.Product]
	get(t, h, "/products?category="+url.QueryEscape(category), &filtered)
	if filtered.Total != len(c.ProductsByCategory(category)) {
		t.Errorf("filtered total = %d", filtered.Total)
	}
	for _, p := range filtered.Items {
		if p.Category != category {
			t.Errorf("product %d has category %q", p.ID, p.Category)
		}
	}
}

func TestProduct(t *testing.T) {
	h, c := newHandler(t)

	want := c.Products[0]
	var got catalog.Product
	rec := get(t, h, "/products/"+strconv.Itoa(want.ID), &got)
	if rec.Code != http.StatusOK || got.Name != want.Name {
		t.Errorf("status = %d, name = %q", rec.Code, got.Name)
	}

	for _, target := range []string{"/products/999999", "/products/abc"} {
		var body map[string]map[string]string
		rec := get(t, h, target, &body)
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d", target, rec.Code)
		}
		if body["error"]["code"] != "T404" {
			t.Errorf("%s: body = %v", target, body)
		}
	}
}

func TestDownloadsAndVideos(t *testing.T) {
	h, c := newHandler(t)

	var downloads List[catalog.Download]
	get(t, h, "/downloads?sort=popular", &downloads)
	if downloads.Total != len(c.Downloads) {
		t.Errorf("downloads total = %d, want %d", downloads.Total, len(c.Downloads))
	}
	for i := 1; i < len(downloads.Items); i++ {
		if downloads.Items[i-1].Downloads < downloads.Items[i].Downloads {
			t.Fatalf("downloads not sorted by popularity at %d", i)
		}
	}

	var none List[catalog.Download]
	get(t, h, "/downloads?q=no-such-download-xyz", &none)
	if none.Total != 0 {
		t.Errorf("search total = %d, want 0", none.Total)
	}

	var videos List[catalog.Video]
	get(t, h, "/videos?sort=views", &videos)
	if videos.Total != len(c.Videos) {
		t.Errorf("videos total = %d, want %d", videos.Total, len(c.Videos))
	}
	for i := 1; i < len(videos.Items); i++ {
		if videos.Items[i-1].Views < videos.Items[i].Views {
			t.Fatalf("videos not sorted by views at %d", i)
		}
	}
}

func TestFAQs(t *testing.T) {
	h, c := newHandler(t)

	var all List[catalog.FAQ]
	get(t, h, "/faqs", &all)
	if all.Total != len(c.FAQs) || all.Filters != nil {
		t.Errorf("total = %d filters = %v", all.Total, all.Filters)
	}

	var filtered List[catalog.FAQ]
	get(t, h, "/faqs?q=zzz-unmatched", &filtered)
	if filtered.Total != 0 || filtered.Filters["q"] != "zzz-unmatched" {
		t.Errorf("filtered = %+v", filtered)
	}
}

func TestUnknownRoute(t *testing.T) {
	h, _ := newHandler(t)
	var body map[string]map[string]string
	rec := get(t, h, "/nope", &body)
	if rec.Code != http.StatusNotFound || body["error"]["code"] != "T404" {
		t.Errorf("status = %d body = %v", rec.Code, body)
	}
}
