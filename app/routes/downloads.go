package routes

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	. "github.com/vango-dev/techcorp/el"

	"github.com/vango-dev/techcorp/app/components"
	"github.com/vango-dev/techcorp/pkg/catalog"
)

// Download list orderings accepted in ?sort=.
const (
	SortLatest  = "latest"
	SortPopular = "popular"
	SortName    = "name"
)

type sortOption struct {
	Value, Label string
}

var sortOptions = []sortOption{
	{SortLatest, "最新优先"},
	{SortPopular, "下载最多"},
	{SortName, "按名称排序"},
}

type qa struct {
	Question, Answer string
}

var downloadNotes = []string{
	"请根据您的操作系统选择合适的版本下载",
	"下载前请确保您的设备满足最低系统要求",
	"安装前建议关闭杀毒软件，以免误报",
	"遇到下载或安装问题，请查看客服中心的常见问题",
}

var downloadFAQs = []qa{
	{"如何选择正确的版本？", "请根据您的操作系统（Windows、macOS等）和系统位数（32位/64位）选择对应的版本。"},
	{"下载速度很慢怎么办？", "建议尝试更换网络环境或使用下载工具。如问题持续，请联系技术支持。"},
	{"安装过程中报错如何处理？", "请检查系统是否满足最低要求，关闭其他应用程序，并以管理员身份运行安装程序。"},
	{"如何卸载软件？", "可通过控制面板的\"程序和功能\"或使用软件自带的卸载程序进行卸载。"},
}

// Downloads renders the download center. It filters by ?category= and
// ?platform=, searches titles and descriptions with ?q= and orders by
// ?sort=.
func Downloads(ctx Ctx) Page {
	c := ctx.Catalog
	category := selected(ctx.Query, "category", catalog.DownloadCategories, catalog.All)
	platform := selected(ctx.Query, "platform", catalog.Platforms, "")
	order := selected(ctx.Query, "sort", []string{SortLatest, SortPopular, SortName}, "")
	query := strings.TrimSpace(ctx.Query.Get("q"))

	items := SortDownloads(SearchDownloads(c.DownloadsBy(category, platform), query), order)

	heading := "所有下载资源"
	if category != catalog.All || platform != "" || query != "" {
		heading = "筛选结果"
	}

	return Page{
		Title:       "下载中心",
		Description: "获取最新版本的软件、驱动程序和文档资源",
		Content: Div(Class("page-muted"),
			Section(Class("page-hero gradient-bg"),
				Div(Class("container-custom section-padding"),
					H1(Class("page-title"), Text("下载中心")),
					P(Class("page-subtitle"), Text("获取最新版本的软件、驱动程序和文档资源")),
					Div(Class("hero-stats"),
						Span(Class("stat-pill"), Span(Class("stat-label"), Text("总下载量：")),
							Strong(Text(catalog.FormatCount(c.TotalDownloads())+"+"))),
						Span(Class("stat-pill"), Span(Class("stat-label"), Text("资源总量：")),
							Strong(Text(fmt.Sprintf("%.0f MB", c.TotalDownloadSizeMB())))),
					),
				),
			),
			Div(Class("container-custom section-padding"),
				Form(Method("get"), Action("/downloads"), Class("search-bar"),
					If(category != catalog.All, Input(Type("hidden"), Name("category"), Value(category))),
					If(platform != "", Input(Type("hidden"), Name("platform"), Value(platform))),
					Input(Type("search"), Name("q"), Value(query), Class("input search-input"),
						Placeholder("搜索下载资源..."), AriaLabel("搜索下载资源")),
					Select(Name("sort"), Class("input"), AriaLabel("排序"),
						Range(sortOptions, func(s sortOption, _ int) *VNode {
							return Option(Value(s.Value), SelectedIf(s.Value == order), Text(s.Label))
						}),
					),
					Button(Type("submit"), Class("btn-outline"), Text("筛选")),
				),
				Nav(Class("filter-bar"), AriaLabel("资源分类"),
					Range(catalog.DownloadCategories, func(v string, _ int) *VNode {
						return filterLink("/downloads", ctx.Query, "category", v, category)
					}),
				),
				Nav(Class("filter-bar filter-bar-sm"), AriaLabel("平台"),
					Range(catalog.Platforms, func(v string, _ int) *VNode {
						return platformLink(ctx, v, platform)
					}),
				),
				Section(Class("download-list"),
					Div(Class("list-heading"),
						H2(Text(heading)),
						Span(Class("muted"), Text("共 "+strconv.Itoa(len(items))+" 个资源")),
					),
					IfElse(len(items) == 0,
						emptyState("没有找到匹配的资源"),
						Div(Class("stack"),
							Range(items, func(d catalog.Download, _ int) *VNode {
								return components.DownloadItem(d)
							}),
						),
					),
				),
				Aside(Class("notice"),
					H3(Text("下载须知")),
					Ul(Range(downloadNotes, func(n string, _ int) *VNode { return Li(Text(n)) })),
				),
				Section(Class("section-block"),
					H2(Text("常见问题")),
					Div(Class("grid grid-2"),
						Range(downloadFAQs, func(f qa, _ int) *VNode {
							return Div(Class("qa-card"), H4(Text(f.Question)), P(Text(f.Answer)))
						}),
					),
				),
			),
		),
	}
}

// platformLink toggles the platform filter: choosing the active platform
// clears it.
func platformLink(ctx Ctx, value, current string) *VNode {
	active := value == current
	target := value
	if active {
		target = ""
	}
	return A(Href(filterHref("/downloads", ctx.Query, "platform", target)),
		Class("filter-pill"), ClassIf(active, "active"), currentAttr(active), Text(value))
}

// SearchDownloads keeps downloads whose title or description contains
// query, ignoring case.
func SearchDownloads(items []catalog.Download, query string) []catalog.Download {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	out := make([]catalog.Download, 0, len(items))
	for _, d := range items {
		if strings.Contains(strings.ToLower(d.Title), q) || strings.Contains(strings.ToLower(d.Description), q) {
			out = append(out, d)
		}
	}
	return out
}

// SortDownloads returns a sorted copy of items. An unknown order keeps
// catalog order.
func SortDownloads(items []catalog.Download, order string) []catalog.Download {
	out := slices.Clone(items)
	switch order {
	case SortLatest:
		slices.SortStableFunc(out, func(a, b catalog.Download) int { return cmp.Compare(b.UpdatedAt, a.UpdatedAt) })
	case SortPopular:
		slices.SortStableFunc(out, func(a, b catalog.Download) int { return cmp.Compare(b.Downloads, a.Downloads) })
	case SortName:
		slices.SortStableFunc(out, func(a, b catalog.Download) int { return cmp.Compare(a.Title, b.Title) })
	}
	return out
}
