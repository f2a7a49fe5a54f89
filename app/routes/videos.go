package routes

import (
	"cmp"
	"slices"
	"strconv"

	. "github.com/vango-dev/techcorp/el"

	"github.com/vango-dev/techcorp/app/components"
	"github.com/vango-dev/techcorp/pkg/catalog"
)

// Video list orderings accepted in ?sort=.
const (
	VideoSortLatest   = "latest"
	VideoSortViews    = "views"
	VideoSortShortest = "shortest"
	VideoSortLongest  = "longest"
)

var videoSortOptions = []sortOption{
	{VideoSortLatest, "最新视频"},
	{VideoSortViews, "最多观看"},
	{VideoSortShortest, "时长最短"},
	{VideoSortLongest, "时长最长"},
}

type videoGuide struct {
	Category, Title, Description, Count string
}

var videoGuides = []videoGuide{
	{Category: "产品介绍", Title: "产品介绍", Description: "了解产品功能、特性和优势", Count: "15个视频"},
	{Category: "教程", Title: "使用教程", Description: "手把手教你如何使用各项功能", Count: "28个视频"},
	{Category: "案例", Title: "客户案例", Description: "真实客户的成功故事和使用体验", Count: "12个视频"},
}

// Videos renders the video center, filtered by ?category=, laid out by
// ?view=grid|list and ordered by ?sort=.
func Videos(ctx Ctx) Page {
	c := ctx.Catalog
	category := selected(ctx.Query, "category", catalog.VideoCategories, catalog.All)
	layout := components.ParseVideoLayout(ctx.Query.Get("view"))
	order := selected(ctx.Query, "sort", []string{VideoSortLatest, VideoSortViews, VideoSortShortest, VideoSortLongest}, "")
	videos := SortVideos(c.VideosByCategory(category), order)

	return Page{
		Title:       "视频中心",
		Description: "通过视频了解我们的产品、学习使用技巧、观看客户案例",
		Content: Div(Class("page-muted"),
			Section(Class("page-hero gradient-purple"),
				Div(Class("container-custom section-padding"),
					H1(Class("page-title"), Text("视频中心")),
					P(Class("page-subtitle"), Text("通过视频了解我们的产品、学习使用技巧、观看客户案例")),
					Div(Class("hero-stats"),
						heroStat(strconv.Itoa(len(c.Videos)), "视频总数"),
						heroStat(catalog.FormatThousands(c.TotalViews()), "累计观看"),
						heroStat(catalog.FormatHoursMinutes(c.TotalDuration()), "总时长"),
					),
				),
			),
			If(category == catalog.All, featuredVideos(c.FeaturedVideos(2))),
			Div(Class("container-custom section-padding"),
				Div(Class("toolbar"),
					Nav(Class("filter-bar"), AriaLabel("视频分类"),
						Range(catalog.VideoCategories, func(v string, _ int) *VNode {
							return filterLink("/videos", ctx.Query, "category", v, category)
						}),
					),
					Div(Class("view-toggle"), Role("group"), AriaLabel("显示方式"),
						viewLink(ctx, components.VideoGrid, "▦", "网格", layout),
						viewLink(ctx, components.VideoList, "☰", "列表", layout),
					),
					Form(Method("get"), Action("/videos"), Class("inline-form"),
						If(category != catalog.All, Input(Type("hidden"), Name("category"), Value(category))),
						If(layout == components.VideoList, Input(Type("hidden"), Name("view"), Value(string(layout)))),
						Select(Name("sort"), Class("input"), AriaLabel("排序"),
							Range(videoSortOptions, func(s sortOption, _ int) *VNode {
								return Option(Value(s.Value), SelectedIf(s.Value == order), Text(s.Label))
							}),
						),
						Button(Type("submit"), Class("btn-outline btn-sm"), Text("排序")),
					),
				),
				Div(Class("list-heading"),
					H3(Text("所有视频")),
					Span(Class("muted"), Text("共 "+strconv.Itoa(len(videos))+" 个视频")),
				),
				IfElse(len(videos) == 0,
					emptyState("该分类下暂无视频"),
					Div(Class("video-"+string(layout)),
						Range(videos, func(v catalog.Video, _ int) *VNode {
							return components.VideoCard(v, layout)
						}),
					),
				),
				Section(Class("section-block"),
					H3(Class("text-center"), Text("视频分类说明")),
					Div(Class("grid grid-3"),
						Range(videoGuides, func(g videoGuide, _ int) *VNode {
							return Div(Class("card guide-card"),
								H4(Text(g.Title)),
								P(Text(g.Description)),
								Div(Class("guide-foot"),
									Span(Class("muted"), Text(g.Count)),
									A(Href(filterHref("/videos", nil, "category", g.Category)), Class("link-more"), Text("查看全部")),
								),
							)
						}),
					),
				),
				Section(Class("cta-card cta-gradient"),
					H3(Text("想要更多视频内容？")),
					P(Text("订阅我们的YouTube频道，第一时间获取最新视频教程和产品更新")),
					Div(Class("hero-actions"),
						A(Href("https://www.youtube.com/"), Target("_blank"), Rel("noopener"), Class("btn-light"), Text("订阅YouTube频道")),
						A(Href("/contact"), Class("btn-ghost"), Text("提交视频建议")),
					),
				),
			),
		),
	}
}

func heroStat(value, label string) *VNode {
	return Div(Class("stat-card"),
		Strong(Class("stat-value"), Text(value)),
		Span(Class("stat-label"), Text(label)),
	)
}

func featuredVideos(videos []catalog.Video) *VNode {
	if len(videos) == 0 {
		return nil
	}
	return Section(Class("container-custom section-padding"),
		H2(Text("精选视频")),
		Div(Class("grid grid-2"),
			Range(videos, func(v catalog.Video, _ int) *VNode {
				return Article(Class("featured-video"),
					A(Href(v.URL), Target("_blank"), Rel("noopener"), Class("video-thumb video-thumb-lg"),
						Span(Class("play-button"), AriaHidden(true), Text("▶")),
						Span(Class("video-duration"), Text(v.Duration)),
					),
					H3(Text(v.Title)),
					P(Text(v.Description)),
					Div(Class("featured-foot"),
						Span(Class("muted"), Text(catalog.FormatViews(v.Views)+" 观看")),
						Span(Class("tag"), Text(v.Category)),
						A(Href(v.URL), Target("_blank"), Rel("noopener"), Class("btn-primary btn-sm"), Text("立即观看")),
					),
				)
			}),
		),
	)
}

func viewLink(ctx Ctx, layout components.VideoLayout, icon, label string, current components.VideoLayout) *VNode {
	value := string(layout)
	if layout == components.VideoGrid {
		value = ""
	}
	active := layout == current
	return A(Href(filterHref("/videos", ctx.Query, "view", value)), Class("view-button"), ClassIf(active, "active"),
		AriaLabel(label), currentAttr(active), Text(icon))
}

// SortVideos returns a sorted copy of videos. An unknown order keeps
// catalog order.
func SortVideos(videos []catalog.Video, order string) []catalog.Video {
	out := slices.Clone(videos)
	length := func(v catalog.Video) int64 {
		d, _ := catalog.ParseDuration(v.Duration)
		return int64(d)
	}
	switch order {
	case VideoSortLatest:
		slices.SortStableFunc(out, func(a, b catalog.Video) int { return cmp.Compare(b.UploadDate, a.UploadDate) })
	case VideoSortViews:
		slices.SortStableFunc(out, func(a, b catalog.Video) int { return cmp.Compare(b.Views, a.Views) })
	case VideoSortShortest:
		slices.SortStableFunc(out, func(a, b catalog.Video) int { return cmp.Compare(length(a), length(b)) })
	case VideoSortLongest:
		slices.SortStableFunc(out, func(a, b catalog.Video) int { return cmp.Compare(length(b), length(a)) })
	}
	return out
}
