package components

import (
	"fmt"
	"strconv"
	"strings"

	. "github.com/vango-dev/techcorp/el"
	"github.com/vango-dev/techcorp/pkg/catalog"
)

// DownloadItem renders one row of the download center.
func DownloadItem(d catalog.Download) *VNode {
	return Article(Class("card download-item"), ID("download-"+strconv.Itoa(d.ID)),
		Div(Class("download-main"),
			Div(Class("file-icon"), AriaHidden(true), Text(catalog.FileIcon(d))),
			Div(Class("download-info"),
				Div(Class("download-title-row"),
					H3(Class("download-title"), Text(d.Title)),
					If(d.Version != "", Span(Class("badge badge-version"), Text("v"+d.Version))),
				),
				P(Class("download-description"), Text(d.Description)),
				Div(Class("download-meta"),
					Span(Text("🗎 "+d.FileSize)),
					Span(Text("⭳ "+catalog.FormatCount(d.Downloads)+" 次下载")),
					Span(Text("🕓 更新于 "+catalog.LongDate(d.UpdatedAt))),
				),
			),
			A(Href(d.URL), Download(downloadName(d)), Class("btn-primary download-button"),
				Data("download-id", strconv.Itoa(d.ID)),
				Text("立即下载"),
			),
		),
		Div(Class("download-tags"),
			Span(Class("tag tag-category"), Text(d.Category)),
			Range(d.Platform, func(p string, _ int) *VNode {
				return Span(Class("tag tag-platform"), Text(p))
			}),
		),
	)
}

func downloadName(d catalog.Download) string {
	version := d.Version
	if version == "" {
		version = "1.0.0"
	}
	return fmt.Sprintf("%s-v%s.zip", strings.Join(strings.Fields(d.Title), "-"), version)
}
