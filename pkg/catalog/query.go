package catalog

import (
	"slices"
	"strconv"
	"strings"
	"time"
)

// Category lists in display order, as used by the listing pages.
var (
	ProductCategories  = []string{All, "云服务", "数据分析", "移动应用", "CRM"}
	DownloadCategories = []string{All, "客户端", "移动应用", "开发工具", "文档", "驱动程序"}
	Platforms          = []string{"Windows", "macOS", "iOS", "Android", "Linux", "跨平台"}
	VideoCategories    = []string{All, "产品介绍", "教程", "案例", "演示", "发布会", "客户评价"}
)

func matches(filter, value string) bool {
	return filter == "" || filter == All || filter == value
}

// ProductsByCategory returns the products in category, or all of them.
func (c *Catalog) ProductsByCategory(category string) []Product {
	out := make([]Product, 0, len(c.Products))
	for _, p := range c.Products {
		if matches(category, p.Category) {
			out = append(out, p)
		}
	}
	return out
}

// DownloadsBy filters downloads by category and platform. Either filter may
// be empty or All.
func (c *Catalog) DownloadsBy(category, platform string) []Download {
	out := make([]Download, 0, len(c.Downloads))
	for _, d := range c.Downloads {
		if !matches(category, d.Category) {
			continue
		}
		if platform != "" && platform != All && !slices.Contains(d.Platform, platform) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// VideosByCategory returns the videos in category, or all of them.
func (c *Catalog) VideosByCategory(category string) []Video {
	out := make([]Video, 0, len(c.Videos))
	for _, v := range c.Videos {
		if matches(category, v.Category) {
			out = append(out, v)
		}
	}
	return out
}

// SearchFAQs returns FAQs whose question or answer contains query,
// ignoring case. An empty query returns every FAQ.
func (c *Catalog) SearchFAQs(query string) []FAQ {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]FAQ, 0, len(c.FAQs))
	for _, f := range c.FAQs {
		if q == "" ||
			strings.Contains(strings.ToLower(f.Question), q) ||
			strings.Contains(strings.ToLower(f.Answer), q) {
			out = append(out, f)
		}
	}
	return out
}

// FeaturedProducts returns the first n products.
func (c *Catalog) FeaturedProducts(n int) []Product {
	return head(c.Products, n)
}

// FeaturedVideos returns the first n videos.
func (c *Catalog) FeaturedVideos(n int) []Video {
	return head(c.Videos, n)
}

func head[T any](s []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if n > len(s) {
		n = len(s)
	}
	return slices.Clone(s[:n])
}

// TotalDownloads sums the download counters.
func (c *Catalog) TotalDownloads() int {
	total := 0
	for _, d := range c.Downloads {
		total += d.Downloads
	}
	return total
}

// TotalDownloadSizeMB sums the file sizes in megabytes. Sizes that do not
// parse count as zero.
func (c *Catalog) TotalDownloadSizeMB() float64 {
	var total float64
	for _, d := range c.Downloads {
		mb, _ := ParseSizeMB(d.FileSize)
		total += mb
	}
	return total
}

// TotalViews sums the video view counters.
func (c *Catalog) TotalViews() int {
	total := 0
	for _, v := range c.Videos {
		total += v.Views
	}
	return total
}

// TotalDuration sums the video durations. Durations that do not parse
// count as zero.
func (c *Catalog) TotalDuration() time.Duration {
	var total time.Duration
	for _, v := range c.Videos {
		d, _ := ParseDuration(v.Duration)
		total += d
	}
	return total
}

// ParseDuration reads an "mm:ss" video duration. Minutes may exceed 59.
func ParseDuration(s string) (time.Duration, bool) {
	mm, ss, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, false
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 {
		return 0, false
	}
	seconds, err := strconv.Atoi(ss)
	if err != nil || seconds < 0 || seconds > 59 {
		return 0, false
	}
	return time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second, true
}

// ParseSizeMB converts a size such as "12.5 MB", "1.2 GB" or "640 KB" to
// megabytes. A bare number is taken as megabytes.
func ParseSizeMB(size string) (float64, bool) {
	s := strings.TrimSpace(size)
	scale := 1.0
	for _, u := range []struct {
		suffix string
		scale  float64
	}{
		{"GB", 1024},
		{"MB", 1},
		{"KB", 1.0 / 1024},
	} {
		if rest, ok := strings.CutSuffix(strings.ToUpper(s), u.suffix); ok {
			s = strings.TrimSpace(s[:len(rest)])
			scale = u.scale
			break
		}
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n * scale, true
}
