package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/banjiubanjiu/Nickle-System/internal/chart"
	market "github.com/banjiubanjiu/Nickle-System/internal/domain/entity/market"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// View renders the full dashboard.
func (m *Model) View() string {
	if m.dataset == nil {
		return dimStyle.Render("正在加载行情数据…")
	}

	sections := []string{
		m.renderHeader(),
		renderMetricRow(m.primary),
		m.renderCandlePane(),
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderOrderBook(), m.renderStats()),
		m.renderTape(),
		m.renderFooter(),
	}
	return strings.Join(sections, "\n")
}

func (m *Model) renderHeader() string {
	tag := mockTagStyle.Render(" 模拟数据 ")
	if m.live {
		tag = liveTagStyle.Render(" 实时行情 ")
	}
	title := titleStyle.Render(m.dataset.Meta.Title)
	sub := subtitleStyle.Render(m.dataset.Meta.Exchange + " · " + m.dataset.Meta.Contract)
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", sub, "  ", tag)
}

func renderMetricRow(metrics []market.MetricView) string {
	cards := make([]string, 0, len(metrics))
	for _, mv := range metrics {
		cards = append(cards, renderMetricCard(mv))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func renderMetricCard(mv market.MetricView) string {
	value := cardValueStyle.Render(mv.Value)
	if mv.Unit != "" {
		value += " " + dimStyle.Render(mv.Unit)
	}
	lines := []string{cardLabelStyle.Render(mv.Label), value}
	if mv.Trend != "" {
		lines = append(lines, trendStyle(string(mv.TrendDirection)).Render(mv.Trend))
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderCandlePane() string {
	visible := m.pane.visibleCandles()
	volume := m.pane.visibleVolume()

	var b strings.Builder
	b.WriteString(paneTitleStyle.Render("K线图（小时）"))
	b.WriteString("  " + dimStyle.Render("单位："+m.dataset.PriceUnit))
	b.WriteString("\n")

	if len(visible) == 0 {
		b.WriteString(dimStyle.Render("暂无K线数据"))
		return paneStyle.Render(b.String())
	}

	closes := make([]float64, len(visible))
	for i, c := range visible {
		closes[i] = c.Close
	}
	scale := chart.NiceScale(closes, chart.DefaultTargetTicks)

	lo, hi := closes[0], closes[0]
	for _, v := range closes {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if scale.Constrained() {
		lo, hi = scale.Domain[0], scale.Domain[1]
	}

	b.WriteString(dimStyle.Render(market.FormatPrice(hi)) + "\n")
	b.WriteString(renderSparkline(closes, lo, hi) + "\n")
	b.WriteString(dimStyle.Render(market.FormatPrice(lo)) + "\n")
	b.WriteString(renderVolumeBars(volume) + " " + dimStyle.Render("成交量") + "\n")

	from := time.Unix(m.pane.visible.From, 0)
	to := time.Unix(m.pane.visible.To, 0)
	b.WriteString(helpStyle.Render(fmt.Sprintf("%s — %s", market.FormatDateTime(from), market.FormatDateTime(to))))

	return paneStyle.Render(b.String())
}

// renderSparkline maps values onto block runes between lo and hi.
func renderSparkline(values []float64, lo, hi float64) string {
	if hi <= lo {
		return strings.Repeat(string(sparkRunes[0]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / (hi - lo) * float64(len(sparkRunes)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkRunes) {
			idx = len(sparkRunes) - 1
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}

func renderVolumeBars(volume []chart.HistogramPoint) string {
	if len(volume) == 0 {
		return ""
	}
	max := volume[0].Value
	for _, v := range volume {
		if v.Value > max {
			max = v.Value
		}
	}
	if max <= 0 {
		return strings.Repeat(string(sparkRunes[0]), len(volume))
	}
	var b strings.Builder
	for _, v := range volume {
		idx := int(v.Value / max * float64(len(sparkRunes)-1))
		if idx >= len(sparkRunes) {
			idx = len(sparkRunes) - 1
		}
		bar := string(sparkRunes[idx])
		if v.Rising {
			b.WriteString(upStyle.Render(bar))
		} else {
			b.WriteString(downStyle.Render(bar))
		}
	}
	return b.String()
}

func (m *Model) renderOrderBook() string {
	book := m.dataset.OrderBook

	var b strings.Builder
	b.WriteString(paneTitleStyle.Render("盘口") + "\n")
	for i := len(book.Asks) - 1; i >= 0; i-- {
		level := book.Asks[i]
		b.WriteString(askStyle.Render(fmt.Sprintf("卖%d %10s %6d", i+1, level.Price, level.Volume)) + "\n")
	}
	b.WriteString(cardValueStyle.Render(fmt.Sprintf("最新 %10s", book.BestPrice)) + "\n")
	for i, level := range book.Bids {
		b.WriteString(bidStyle.Render(fmt.Sprintf("买%d %10s %6d", i+1, level.Price, level.Volume)) + "\n")
	}
	return paneStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) renderStats() string {
	var b strings.Builder
	b.WriteString(paneTitleStyle.Render("统计") + "\n")
	for _, mv := range m.secondary {
		value := mv.Value
		if mv.Unit != "" {
			value += " " + mv.Unit
		}
		b.WriteString(fmt.Sprintf("%s  %s\n", cardLabelStyle.Render(mv.Label), cardValueStyle.Render(value)))
	}
	return paneStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) renderTape() string {
	var b strings.Builder
	b.WriteString(paneTitleStyle.Render("最新成交") + "\n")
	b.WriteString(m.tape.View())
	return paneStyle.Render(b.String())
}

func renderTradeRows(trades []market.TradeRecord) string {
	var b strings.Builder
	for _, t := range trades {
		side := bidStyle.Render(string(t.Side))
		if t.Side == market.TradeSideSell {
			side = askStyle.Render(string(t.Side))
		}
		b.WriteString(fmt.Sprintf("%s  %10s  %8s  %s\n", t.Time, t.Price, t.Volume, side))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderFooter() string {
	info := footerStyle.Render("数据更新时间：" + m.lastUpdated)
	help := helpStyle.Render("←/→ 平移  +/- 缩放  tab 切换交易所  q 退出")
	return info + "  " + help
}
