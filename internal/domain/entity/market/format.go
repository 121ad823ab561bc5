package market

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Placeholder renders for any value the collector reported as unavailable.
const Placeholder = "--"

// Beijing is the display timezone for all dashboard timestamps. The
// collector reports UTC instants; the dashboard renders them as 北京时间.
var Beijing = time.FixedZone("CST", 8*60*60)

var printer = message.NewPrinter(language.SimplifiedChinese)

// FormatPrice renders a price with locale grouping and two fixed fractional
// digits, e.g. 18527.09 -> "18,527.09".
func FormatPrice(v float64) string {
	return printer.Sprint(number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// FormatOptionalPrice renders v, or the placeholder when absent.
func FormatOptionalPrice(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return FormatPrice(*v)
}

// FormatVolume renders a lot count as a grouped integer.
func FormatVolume(v float64) string {
	return printer.Sprint(number.Decimal(math.Round(v),
		number.MaxFractionDigits(0),
	))
}

// FormatPercent renders two fixed fractional digits with an explicit sign
// for non-negative values, suffixed "%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// FormatOptionalPercent renders v, or the placeholder when absent.
func FormatOptionalPercent(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return FormatPercent(*v)
}

// FormatDateTime renders a full Beijing-time timestamp for the
// "数据更新时间" footer.
func FormatDateTime(t time.Time) string {
	return t.In(Beijing).Format("2006/01/02 15:04:05")
}

// FormatTime renders an hour/minute axis label.
func FormatTime(t time.Time) string {
	return t.In(Beijing).Format("15:04")
}

// FormatTimeSeconds renders a trade-tape timestamp.
func FormatTimeSeconds(t time.Time) string {
	return t.In(Beijing).Format("15:04:05")
}
