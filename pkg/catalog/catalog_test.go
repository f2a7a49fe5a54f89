package catalog_test

import (
	"math"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/techcorp/pkg/catalog"
)

func mustDefault(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	return c
}

func productIDs(ps []catalog.Product) []int {
	ids := make([]int, 0, len(ps))
	for _, p := range ps {
		ids = append(ids, p.ID)
	}
	return ids
}

func downloadIDs(ds []catalog.Download) []int {
	ids := make([]int, 0, len(ds))
	for _, d := range ds {
		ids = append(ids, d.ID)
	}
	return ids
}

func videoIDs(vs []catalog.Video) []int {
	ids := make([]int, 0, len(vs))
	for _, v := range vs {
		ids = append(ids, v.ID)
	}
	return ids
}

func faqIDs(fs []catalog.FAQ) []int {
	ids := make([]int, 0, len(fs))
	for _, f := range fs {
		ids = append(ids, f.ID)
	}
	return ids
}

// =============================================================================
// Loading
// =============================================================================

func TestDefault(t *testing.T) {
	c := mustDefault(t)
	if len(c.Products) == 0 || len(c.Downloads) == 0 || len(c.Videos) == 0 || len(c.FAQs) == 0 {
		t.Fatalf("embedded catalog is missing sections: %d products, %d downloads, %d videos, %d faqs",
			len(c.Products), len(c.Downloads), len(c.Videos), len(c.FAQs))
	}
	again := mustDefault(t)
	if again != c {
		t.Error("Default() should return the same catalog on every call")
	}
}

func TestLoad(t *testing.T) {
	doc := `
products:
  - id: 1
    name: Demo
    category: 云服务
    features: [a, b]
    price: "¥1"
    rating: 4.5
faqs:
  - id: 9
    question: Q
    answer: A
    category: 其他
`
	c, err := catalog.Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	want := []catalog.Product{{
		ID:       1,
		Name:     "Demo",
		Category: "云服务",
		Features: []string{"a", "b"},
		Price:    "¥1",
		Rating:   4.5,
	}}
	if diff := cmp.Diff(want, c.Products); diff != "" {
		t.Errorf("products mismatch (-want +got):\n%s", diff)
	}
	if len(c.FAQs) != 1 || c.FAQs[0].Question != "Q" {
		t.Errorf("faqs = %+v", c.FAQs)
	}
}

func TestLoad_Empty(t *testing.T) {
	c, err := catalog.Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Load(empty) error: %v", err)
	}
	if len(c.Products) != 0 {
		t.Errorf("expected empty catalog, got %+v", c)
	}
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "duplicate id",
			doc:  "videos:\n  - {id: 1, category: 教程}\n  - {id: 1, category: 案例}\n",
			want: "duplicate video id 1",
		},
		{
			name: "missing category",
			doc:  "downloads:\n  - {id: 3, title: x}\n",
			want: "download 3 has no category",
		},
		{
			name: "unknown field",
			doc:  "products:\n  - {id: 1, category: CRM, colour: red}\n",
			want: "decode",
		},
		{
			name: "malformed",
			doc:  "products: [",
			want: "decode",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Load(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"site.yaml": {Data: []byte("faqs:\n  - {id: 1, question: 你好, answer: 世界, category: 其他}\n")},
	}
	c, err := catalog.LoadFS(fsys, "site.yaml")
	if err != nil {
		t.Fatalf("LoadFS() error: %v", err)
	}
	if len(c.FAQs) != 1 {
		t.Errorf("expected 1 faq, got %d", len(c.FAQs))
	}

	if _, err := catalog.LoadFS(fsys, "missing.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

// =============================================================================
// Filtering
// =============================================================================

func TestProductsByCategory(t *testing.T) {
	c := mustDefault(t)
	tests := []struct {
		category string
		want     []int
	}{
		{"云服务", []int{1, 5}},
		{"数据分析", []int{2, 6}},
		{"CRM", []int{4}},
		{"游戏", []int{}},
		{catalog.All, []int{1, 2, 3, 4, 5, 6}},
		{"", []int{1, 2, 3, 4, 5, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			got := productIDs(c.ProductsByCategory(tt.category))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ProductsByCategory(%q) mismatch (-want +got):\n%s", tt.category, diff)
			}
		})
	}
}

func TestDownloadsBy(t *testing.T) {
	c := mustDefault(t)
	tests := []struct {
		name     string
		category string
		platform string
		want     []int
	}{
		{"all", catalog.All, "", []int{1, 2, 3, 4, 5, 6, 7, 8}},
		{"category", "开发工具", "", []int{5, 6}},
		{"platform", "", "Windows", []int{1, 6, 8}},
		{"both", "开发工具", "Windows", []int{6}},
		{"cross platform", catalog.All, "跨平台", []int{5, 7}},
		{"no match", "文档", "iOS", []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := downloadIDs(c.DownloadsBy(tt.category, tt.platform))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("DownloadsBy(%q, %q) mismatch (-want +got):\n%s", tt.category, tt.platform, diff)
			}
		})
	}
}

func TestVideosByCategory(t *testing.T) {
	c := mustDefault(t)
	if diff := cmp.Diff([]int{3, 7}, videoIDs(c.VideosByCategory("教程"))); diff != "" {
		t.Errorf("VideosByCategory(教程) mismatch (-want +got):\n%s", diff)
	}
	if got := len(c.VideosByCategory(catalog.All)); got != len(c.Videos) {
		t.Errorf("VideosByCategory(All) returned %d videos, want %d", got, len(c.Videos))
	}
}

func TestSearchFAQs(t *testing.T) {
	c := mustDefault(t)
	tests := []struct {
		query string
		want  []int
	}{
		{"", []int{1, 2, 3, 4, 5, 6}},
		{"   ", []int{1, 2, 3, 4, 5, 6}},
		{"密码", []int{2}},
		{"api", []int{5, 6}},
		{"API", []int{5, 6}},
		{"不存在的问题", []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := faqIDs(c.SearchFAQs(tt.query))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("SearchFAQs(%q) mismatch (-want +got):\n%s", tt.query, diff)
			}
		})
	}
}

func TestFeatured(t *testing.T) {
	c := mustDefault(t)
	if diff := cmp.Diff([]int{1, 2, 3}, productIDs(c.FeaturedProducts(3))); diff != "" {
		t.Errorf("FeaturedProducts(3) mismatch (-want +got):\n%s", diff)
	}
	if got := len(c.FeaturedVideos(100)); got != len(c.Videos) {
		t.Errorf("FeaturedVideos(100) = %d videos, want %d", got, len(c.Videos))
	}
	if got := len(c.FeaturedVideos(-1)); got != 0 {
		t.Errorf("FeaturedVideos(-1) = %d videos, want 0", got)
	}

	featured := c.FeaturedProducts(1)
	featured[0].Name = "changed"
	if c.Products[0].Name == "changed" {
		t.Error("FeaturedProducts should return a copy")
	}
}

// =============================================================================
// Aggregates and formatting
// =============================================================================

func TestAggregates(t *testing.T) {
	c := mustDefault(t)
	if got := c.TotalDownloads(); got != 90110 {
		t.Errorf("TotalDownloads() = %d, want 90110", got)
	}
	if got := c.TotalDownloadSizeMB(); math.Abs(got-307.3) > 1e-6 {
		t.Errorf("TotalDownloadSizeMB() = %f, want 307.3", got)
	}
	if got := c.TotalViews(); got != 309400 {
		t.Errorf("TotalViews() = %d, want 309400", got)
	}
	want := 3*time.Hour + 28*time.Minute + 25*time.Second
	if got := c.TotalDuration(); got != want {
		t.Errorf("TotalDuration() = %v, want %v", got, want)
	}
	if got := catalog.FormatHoursMinutes(c.TotalDuration()); got != "3小时28分钟" {
		t.Errorf("FormatHoursMinutes = %q, want 3小时28分钟", got)
	}
	if got := catalog.FormatHoursMinutes(45 * time.Minute); got != "45分钟" {
		t.Errorf("FormatHoursMinutes(45m) = %q, want 45分钟", got)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"05:12", 5*time.Minute + 12*time.Second, true},
		{"95:20", 95*time.Minute + 20*time.Second, true},
		{"1:75", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := catalog.ParseDuration(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseDuration(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseSizeMB(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12.5 MB", 12.5, true},
		{"2 GB", 2048, true},
		{"512 KB", 0.5, true},
		{"7", 7, true},
		{"big", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := catalog.ParseSizeMB(tt.in)
			if ok != tt.ok || math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseSizeMB(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestFormatViews(t *testing.T) {
	tests := []struct {
		views int
		want  string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1.0K"},
		{1240, "1.2K"},
		{86400, "86.4K"},
		{3400000, "3.4M"},
	}
	for _, tt := range tests {
		if got := catalog.FormatViews(tt.views); got != tt.want {
			t.Errorf("FormatViews(%d) = %q, want %q", tt.views, got, tt.want)
		}
	}
	if got := catalog.FormatThousands(309400); got != "309K" {
		t.Errorf("FormatThousands(309400) = %q, want 309K", got)
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{12450, "12,450"},
		{1234567, "1,234,567"},
		{-4500, "-4,500"},
	}
	for _, tt := range tests {
		if got := catalog.FormatCount(tt.n); got != tt.want {
			t.Errorf("FormatCount(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"05:12", "05:12"},
		{"60:00", "60:00"},
		{"95:20", "1:35:20"},
		{"125:05", "2:05:05"},
		{"bogus", "bogus"},
		{"x:10", "x:10"},
	}
	for _, tt := range tests {
		if got := catalog.FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFileIcon(t *testing.T) {
	tests := []struct {
		name string
		d    catalog.Download
		want string
	}{
		{"pdf type", catalog.Download{FileType: "pdf"}, "📄"},
		{"zip type", catalog.Download{FileType: "zip"}, "📦"},
		{"rar title", catalog.Download{Title: "Archive.RAR"}, "📦"},
		{"msi type", catalog.Download{FileType: "msi"}, "⚙️"},
		{"dmg type", catalog.Download{FileType: "dmg"}, "💿"},
		{"apk title", catalog.Download{Title: "App.APK"}, "📱"},
		{"unknown", catalog.Download{Title: "readme"}, "📄"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := catalog.FileIcon(tt.d); got != tt.want {
				t.Errorf("FileIcon() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLabels(t *testing.T) {
	if got := catalog.PriceLabel("¥299"); got != "¥299/月" {
		t.Errorf("PriceLabel = %q", got)
	}
	if got := catalog.PriceLabel("定制"); got != "定制" {
		t.Errorf("PriceLabel(定制) = %q", got)
	}
	if got := catalog.CategoryIcon("数据分析"); got != "📊" {
		t.Errorf("CategoryIcon(数据分析) = %q", got)
	}
	if got := catalog.ShortDate("2024-03-05"); got != "2024/3/5" {
		t.Errorf("ShortDate = %q", got)
	}
	if got := catalog.LongDate("2024-03-05"); got != "2024年03月05日" {
		t.Errorf("LongDate = %q", got)
	}
	if got := catalog.LongDate("soon"); got != "soon" {
		t.Errorf("LongDate(soon) = %q", got)
	}
}
