package components

import (
	"strconv"

	. "github.com/vango-dev/techcorp/el"
	"github.com/vango-dev/techcorp/pkg/catalog"
)

// VideoLayout selects how a VideoCard is drawn.
type VideoLayout string

const (
	VideoGrid VideoLayout = "grid"
	VideoList VideoLayout = "list"
)

// ParseVideoLayout maps a query value to a layout, defaulting to grid.
func ParseVideoLayout(s string) VideoLayout {
	if VideoLayout(s) == VideoList {
		return VideoList
	}
	return VideoGrid
}

// VideoCard renders a video as a grid tile or a list row. Either form is a
// link that opens the video in a new tab.
func VideoCard(v catalog.Video, layout VideoLayout) *VNode {
	duration := catalog.FormatDuration(v.Duration)
	if layout == VideoList {
		tags := v.Tags
		if len(tags) > 3 {
			tags = tags[:3]
		}
		return A(Href(v.URL), Target("_blank"), Rel("noopener"), Class("video-row"),
			ID("video-"+strconv.Itoa(v.ID)),
			Div(Class("video-thumb video-thumb-sm"),
				Span(Class("video-duration"), Text(duration)),
				Span(Class("play-button"), AriaHidden(true), Text("▶")),
			),
			Div(Class("video-info"),
				H3(Class("video-title"), Text(v.Title)),
				P(Class("video-description"), Text(v.Description)),
				Div(Class("video-meta"),
					Span(Text(catalog.FormatViews(v.Views)+" 次观看")),
					Span(Text(duration)),
					If(v.Likes > 0, Span(Text("👍 "+catalog.FormatViews(v.Likes)))),
					If(v.UploadDate != "", Span(Text(catalog.LongDate(v.UploadDate)))),
				),
				If(len(v.Tags) > 0, Div(Class("tag-list"),
					Span(Class("tag tag-platform"), Text(v.Category)),
					Range(tags, func(t string, _ int) *VNode {
						return Span(Class("tag"), Text(t))
					}),
				)),
			),
		)
	}

	return A(Href(v.URL), Target("_blank"), Rel("noopener"), Class("video-tile"),
		ID("video-"+strconv.Itoa(v.ID)),
		Div(Class("video-thumb"),
			Span(Class("play-button"), AriaHidden(true), Text("▶")),
			Span(Class("video-duration"), Text(duration)),
			Span(Class("badge badge-solid video-category"), Text(v.Category)),
		),
		H3(Class("video-title"), Text(v.Title)),
		P(Class("video-description"), Text(v.Description)),
		Div(Class("video-meta"),
			Span(Text(catalog.FormatViews(v.Views)+" 次")),
			Span(Text(v.Duration)),
		),
	)
}
