// Package tui renders the realtime nickel dashboard in the terminal. It is
// the display surface fed by the poll session: metric cards, a clamped
// scrollable candle pane, order book and trade tape.
package tui

import (
	"context"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	dashboard "github.com/banjiubanjiu/Nickle-System/internal/application/service/dashboard"
	"github.com/banjiubanjiu/Nickle-System/internal/chart"
	market "github.com/banjiubanjiu/Nickle-System/internal/domain/entity/market"
)

// candleBucketSeconds is the pan/zoom step: one hourly bucket.
const candleBucketSeconds = 3600

// Messages.
type fallbackMsg struct {
	dataset *market.MarketDataset
}

type snapshotMsg struct {
	snap        *market.Snapshot
	primary     []market.MetricView
	secondary   []market.MetricView
	lastUpdated string
}

// sessionStartedMsg delivers a freshly started poll session back to the
// update loop. seq identifies the start request; a session arriving after a
// newer switch is stopped instead of adopted.
type sessionStartedMsg struct {
	seq     int
	session *dashboard.Session
}

// ProgramSink forwards poll session updates into the running program as
// messages. Attach must be called before the first session starts.
type ProgramSink struct {
	mu sync.Mutex
	p  *tea.Program
}

// NewProgramSink returns an unattached sink.
func NewProgramSink() *ProgramSink {
	return &ProgramSink{}
}

// Attach binds the sink to a program.
func (s *ProgramSink) Attach(p *tea.Program) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p = p
}

// ApplyFallback implements dashboard.Sink.
func (s *ProgramSink) ApplyFallback(dataset *market.MarketDataset) {
	s.send(fallbackMsg{dataset: dataset})
}

// ApplySnapshot implements dashboard.Sink.
func (s *ProgramSink) ApplySnapshot(snap *market.Snapshot, primary, secondary []market.MetricView, lastUpdated string) {
	s.send(snapshotMsg{
		snap:        snap,
		primary:     primary,
		secondary:   secondary,
		lastUpdated: lastUpdated,
	})
}

func (s *ProgramSink) send(msg tea.Msg) {
	s.mu.Lock()
	p := s.p
	s.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

// chartPane is the renderer behind the candle pane. It holds the bound
// series and the clamped visible range applied by the chart adapter.
type chartPane struct {
	candles []chart.CandlePoint
	volume  []chart.HistogramPoint
	visible market.VisibleRange
}

func (p *chartPane) SetCandles(points []chart.CandlePoint) {
	p.candles = points
}

func (p *chartPane) SetVolume(points []chart.HistogramPoint) {
	p.volume = points
}

func (p *chartPane) ApplyVisibleRange(r market.VisibleRange) {
	p.visible = r
}

// visibleCandles returns the candles inside the current window.
func (p *chartPane) visibleCandles() []chart.CandlePoint {
	out := make([]chart.CandlePoint, 0, len(p.candles))
	for _, c := range p.candles {
		if c.Time >= p.visible.From && c.Time <= p.visible.To {
			out = append(out, c)
		}
	}
	return out
}

// visibleVolume returns the volume bars inside the current window.
func (p *chartPane) visibleVolume() []chart.HistogramPoint {
	out := make([]chart.HistogramPoint, 0, len(p.volume))
	for _, v := range p.volume {
		if v.Time >= p.visible.From && v.Time <= p.visible.To {
			out = append(out, v)
		}
	}
	return out
}

// Model is the bubbletea model for the dashboard.
type Model struct {
	ctx  context.Context
	svc  *dashboard.Service
	sink dashboard.Sink

	exchanges   []market.ExchangeOption
	exchangeIdx int
	session     *dashboard.Session
	sessionSeq  int

	dataset     *market.MarketDataset
	primary     []market.MetricView
	secondary   []market.MetricView
	lastUpdated string
	live        bool

	pane    *chartPane
	adapter *chart.Adapter
	tape    viewport.Model

	width  int
	height int
}

// New builds the dashboard model. Sessions are started lazily from Init so
// the first fallback paint goes through the message loop.
func New(ctx context.Context, svc *dashboard.Service, sink dashboard.Sink, exchanges []market.ExchangeOption) *Model {
	pane := &chartPane{}
	return &Model{
		ctx:       ctx,
		svc:       svc,
		sink:      sink,
		exchanges: exchanges,
		pane:      pane,
		adapter:   chart.NewAdapter(pane, chart.DefaultVisiblePoints),
		tape:      viewport.New(40, 8),
	}
}

// Exchange returns the currently selected exchange key.
func (m *Model) Exchange() string {
	if len(m.exchanges) == 0 {
		return ""
	}
	return m.exchanges[m.exchangeIdx].Key
}

// Init starts the first poll session.
func (m *Model) Init() tea.Cmd {
	return m.startSession()
}

// startSession issues a start request for the current exchange. The session
// handle comes back as a sessionStartedMsg so m.session is only ever touched
// on the update loop.
func (m *Model) startSession() tea.Cmd {
	m.sessionSeq++
	seq := m.sessionSeq
	exchange := m.Exchange()
	return func() tea.Msg {
		return sessionStartedMsg{
			seq:     seq,
			session: m.svc.Start(m.ctx, exchange, m.sink),
		}
	}
}

// Update handles key navigation and poll session messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.tape.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case fallbackMsg:
		m.dataset = msg.dataset
		m.primary = msg.dataset.SummaryMetrics
		m.secondary = msg.dataset.SessionStats
		m.lastUpdated = msg.dataset.Meta.LastUpdated
		m.live = false
		m.adapter.SetData(msg.dataset.TimelineCandles, msg.dataset.TimelineVisibleRange)
		m.tape.SetContent(renderTradeRows(msg.dataset.Trades))
		return m, nil

	case snapshotMsg:
		m.primary = msg.primary
		m.secondary = msg.secondary
		m.lastUpdated = msg.lastUpdated
		m.live = true
		return m, nil

	case sessionStartedMsg:
		if msg.seq != m.sessionSeq {
			// A newer switch superseded this start request.
			m.svc.Stop(msg.session)
			return m, nil
		}
		m.session = msg.session
		return m, nil
	}

	var cmd tea.Cmd
	m.tape, cmd = m.tape.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.svc.Stop(m.session)
		return m, tea.Quit

	case "left":
		m.pan(-candleBucketSeconds)
		return m, nil
	case "right":
		m.pan(candleBucketSeconds)
		return m, nil
	case "+", "=":
		m.zoom(-candleBucketSeconds)
		return m, nil
	case "-":
		m.zoom(candleBucketSeconds)
		return m, nil

	case "tab":
		return m, m.switchExchange()
	}

	var cmd tea.Cmd
	m.tape, cmd = m.tape.Update(msg)
	return m, cmd
}

// pan shifts the visible window by delta seconds; the clamp engine keeps the
// result inside data bounds without losing the zoom level.
func (m *Model) pan(delta int64) {
	r := m.pane.visible
	m.adapter.Navigate(market.VisibleRange{From: r.From + delta, To: r.To + delta})
}

// zoom grows or shrinks the window from the left edge, keeping at least one
// bucket visible.
func (m *Model) zoom(delta int64) {
	r := m.pane.visible
	from := r.From - delta
	if from > r.To-candleBucketSeconds {
		from = r.To - candleBucketSeconds
	}
	m.adapter.Navigate(market.VisibleRange{From: from, To: r.To})
}

// switchExchange tears down the active session before starting the next
// exchange's session; a stale in-flight fetch can then never touch the new
// view.
func (m *Model) switchExchange() tea.Cmd {
	if len(m.exchanges) < 2 {
		return nil
	}
	m.svc.Stop(m.session)
	m.session = nil
	m.exchangeIdx = (m.exchangeIdx + 1) % len(m.exchanges)
	return m.startSession()
}
