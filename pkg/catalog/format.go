package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// FormatViews abbreviates a view counter: 1.2K, 3.4M.
func FormatViews(views int) string {
	switch {
	case views >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(views)/1_000_000)
	case views >= 1000:
		return fmt.Sprintf("%.1fK", float64(views)/1000)
	default:
		return strconv.Itoa(views)
	}
}

// FormatThousands renders n in thousands with no decimals, e.g. 294K.
func FormatThousands(n int) string {
	return fmt.Sprintf("%.0fK", float64(n)/1000)
}

// FormatCount groups digits in threes: 12450 becomes "12,450".
func FormatCount(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatHoursMinutes renders d as "3小时28分钟", dropping seconds.
func FormatHoursMinutes(d time.Duration) string {
	minutes := int(d / time.Minute)
	if minutes < 60 {
		return fmt.Sprintf("%d分钟", minutes)
	}
	return fmt.Sprintf("%d小时%d分钟", minutes/60, minutes%60)
}

// FormatDuration turns an "mm:ss" duration longer than an hour into
// "h:mm:ss". Anything else is returned unchanged.
func FormatDuration(d string) string {
	mm, ss, ok := strings.Cut(d, ":")
	if !ok {
		return d
	}
	minutes, err1 := strconv.Atoi(mm)
	seconds, err2 := strconv.Atoi(ss)
	if err1 != nil || err2 != nil || minutes <= 60 {
		return d
	}
	return fmt.Sprintf("%d:%02d:%02d", minutes/60, minutes%60, seconds)
}

// FileIcon picks an icon for a download from its file type, falling back
// to the lowercased title.
func FileIcon(d Download) string {
	kind := d.FileType
	if kind == "" {
		kind = strings.ToLower(d.Title)
	}
	switch {
	case strings.Contains(kind, "pdf"):
		return "📄"
	case strings.Contains(kind, "zip"), strings.Contains(kind, "rar"):
		return "📦"
	case strings.Contains(kind, "exe"), strings.Contains(kind, "msi"):
		return "⚙️"
	case strings.Contains(kind, "dmg"):
		return "💿"
	case strings.Contains(kind, "apk"):
		return "📱"
	default:
		return "📄"
	}
}

// CategoryIcon is the placeholder art for a product category.
func CategoryIcon(category string) string {
	switch category {
	case "云服务":
		return "☁️"
	case "数据分析":
		return "📊"
	default:
		return "📱"
	}
}

// PriceLabel appends the monthly suffix unless the price is negotiated.
func PriceLabel(price string) string {
	if price == "定制" {
		return price
	}
	return price + "/月"
}

// ShortDate formats a yyyy-mm-dd date as 2024/3/15. Unparseable input is
// returned as is.
func ShortDate(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%d/%d/%d", t.Year(), int(t.Month()), t.Day())
}

// LongDate formats a yyyy-mm-dd date as 2024年03月15日.
func LongDate(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("2006年01月02日")
}
