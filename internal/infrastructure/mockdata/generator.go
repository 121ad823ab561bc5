// Package mockdata generates the deterministic fallback datasets shown when
// the collector has not delivered a snapshot yet.
package mockdata

import (
	"hash/crc32"
	"math"
	"math/rand"
	"time"

	market "github.com/banjiubanjiu/Nickle-System/internal/domain/entity/market"
	interfaces "github.com/banjiubanjiu/Nickle-System/internal/domain/interfaces"
)

const (
	totalHours          = 48
	defaultVisibleHours = 12

	tradeTapeRows    = 30
	tradeTapeSpacing = 45 * time.Second
	orderBookDepth   = 5
	depthSpread      = 6.0
)

// generateConfig tunes one exchange's synthetic walk.
type generateConfig struct {
	basePrice            float64
	priceUnit            string
	volumeBase           float64
	volumeVariance       float64
	openInterestBase     float64
	openInterestVariance float64
}

type datasetMeta struct {
	title    string
	exchange string
	contract string
}

// Provider builds and serves the per-exchange fallback datasets. Datasets
// are generated once at construction: 48 hourly candles anchored to the
// current Beijing hour with the most recent 12 visible by default.
type Provider struct {
	datasets map[string]*market.MarketDataset
	options  []market.ExchangeOption
}

var _ interfaces.DatasetProvider = (*Provider)(nil)

// NewProvider generates the shfe and lme fallback datasets. The seed fixes
// the synthetic walk so repeated runs (and tests) see identical data.
func NewProvider(now time.Time, seed int64) *Provider {
	anchor := now.In(market.Beijing).Truncate(time.Hour)

	shfe := buildDataset(now, anchor, seed, "shfe", generateConfig{
		basePrice:            18600,
		priceUnit:            "元/吨",
		volumeBase:           28000,
		volumeVariance:       55000,
		openInterestBase:     150000,
		openInterestVariance: 45000,
	}, datasetMeta{
		title:    "镍金属期货实时数据大屏",
		exchange: "上海期货交易所",
		contract: "NI 主力",
	})
	shfe.Contracts = []market.ContractOption{
		{Key: "ni_main", Label: "NI 主力"},
		{Key: "ni2505", Label: "NI2505"},
	}

	lme := buildDataset(now, anchor, seed, "lme", generateConfig{
		basePrice:            18720,
		priceUnit:            "USD/吨",
		volumeBase:           6500,
		volumeVariance:       15000,
		openInterestBase:     82000,
		openInterestVariance: 26000,
	}, datasetMeta{
		title:    "LME Nickel 市场看板",
		exchange: "伦敦金属交易所",
		contract: "Nickel 3M",
	})
	lme.Contracts = []market.ContractOption{
		{Key: "nickel3m", Label: "Nickel 3M"},
		{Key: "nickel15m", Label: "Nickel 15M"},
	}

	datasets := map[string]*market.MarketDataset{
		"shfe": shfe,
		"lme":  lme,
	}
	options := []market.ExchangeOption{
		{Key: "shfe", Label: shfe.Meta.Exchange, Contracts: shfe.Contracts},
		{Key: "lme", Label: lme.Meta.Exchange, Contracts: lme.Contracts},
	}
	return &Provider{datasets: datasets, options: options}
}

// Dataset returns the fallback dataset for an exchange, defaulting to shfe
// for unknown keys so the dashboard always has something to show.
func (p *Provider) Dataset(exchange string) *market.MarketDataset {
	if ds, ok := p.datasets[exchange]; ok {
		return ds
	}
	return p.datasets["shfe"]
}

// Exchanges lists the selectable exchanges with their contracts.
func (p *Provider) Exchanges() []market.ExchangeOption {
	return p.options
}

func buildDataset(now, anchor time.Time, seed int64, key string, cfg generateConfig, meta datasetMeta) *market.MarketDataset {
	rng := rand.New(rand.NewSource(seed ^ int64(crc32.ChecksumIEEE([]byte(key)))))

	candles := generateHourlyCandles(anchor, cfg, rng)
	visible := candles
	if len(candles) >= defaultVisibleHours {
		visible = candles[len(candles)-defaultVisibleHours:]
	}

	priceSeries := make([]market.PricePoint, len(visible))
	volumeSeries := make([]market.VolumePoint, len(visible))
	for i, c := range visible {
		priceSeries[i] = market.PricePoint{
			Time:  market.FormatTime(c.Time),
			Value: round2(c.Close),
		}
		openInterest := cfg.openInterestBase +
			rng.Float64()*cfg.openInterestVariance +
			math.Max(c.Close-c.Open, 0)*15
		volumeSeries[i] = market.VolumePoint{
			Time:         market.FormatTime(c.Time),
			Volume:       int64(math.Round(c.Volume)),
			OpenInterest: int64(math.Round(openInterest)),
		}
	}

	latest := candles[len(candles)-1]
	previous := latest
	if len(candles) > 1 {
		previous = candles[len(candles)-2]
	}
	change := latest.Close - previous.Close
	changePct := 0.0
	if previous.Close != 0 {
		changePct = change / previous.Close * 100
	}
	direction := market.TrendUp
	if change < 0 {
		direction = market.TrendDown
	}

	totalVolume := 0.0
	totalOpenInterest := 0.0
	for _, v := range volumeSeries {
		totalVolume += float64(v.Volume)
		totalOpenInterest += float64(v.OpenInterest)
	}

	summaryMetrics := []market.MetricView{
		{
			Label:          "最新价",
			Value:          market.FormatPrice(round2(latest.Close)),
			Unit:           cfg.priceUnit,
			Trend:          market.FormatPrice(round2(change)) + " (" + market.FormatPercent(round2(changePct)) + ")",
			TrendDirection: direction,
		},
		{Label: "成交量", Value: market.FormatVolume(totalVolume), Unit: "手"},
		{Label: "持仓量", Value: market.FormatVolume(totalOpenInterest / float64(len(volumeSeries))), Unit: "手"},
		{Label: "结算价", Value: market.FormatPrice(round2(previous.Close)), Unit: cfg.priceUnit},
	}

	midpoint := (latest.High + latest.Low) / 2
	orderBook := market.OrderBook{
		BestPrice: market.FormatPrice(round2(midpoint)),
		Asks:      make([]market.OrderBookLevel, orderBookDepth),
		Bids:      make([]market.OrderBookLevel, orderBookDepth),
	}
	for i := 0; i < orderBookDepth; i++ {
		orderBook.Asks[i] = market.OrderBookLevel{
			Price:  market.FormatPrice(round2(midpoint + float64(i+1)*depthSpread)),
			Volume: int64(math.Round(200 + rng.Float64()*600)),
		}
		orderBook.Bids[i] = market.OrderBookLevel{
			Price:  market.FormatPrice(round2(midpoint - float64(i+1)*depthSpread)),
			Volume: int64(math.Round(200 + rng.Float64()*600)),
		}
	}

	trades := make([]market.TradeRecord, tradeTapeRows)
	for i := 0; i < tradeTapeRows; i++ {
		side := market.TradeSideBuy
		if i%2 == 1 {
			side = market.TradeSideSell
		}
		trades[i] = market.TradeRecord{
			Time:   market.FormatTimeSeconds(now.Add(-time.Duration(i) * tradeTapeSpacing)),
			Price:  market.FormatPrice(round2(latest.Close + (rng.Float64()-0.5)*20)),
			Volume: market.FormatPrice(round1(80 + rng.Float64()*220)),
			Side:   side,
		}
	}

	highAll, lowAll, closeSum := candles[0].High, candles[0].Low, 0.0
	for _, c := range candles {
		highAll = math.Max(highAll, c.High)
		lowAll = math.Min(lowAll, c.Low)
		closeSum += c.Close
	}
	sessionStats := []market.MetricView{
		{Label: "最高价", Value: market.FormatPrice(round2(highAll)), Unit: cfg.priceUnit},
		{Label: "最低价", Value: market.FormatPrice(round2(lowAll)), Unit: cfg.priceUnit},
		{Label: "平均价", Value: market.FormatPrice(round2(closeSum / float64(len(candles)))), Unit: cfg.priceUnit},
		{Label: "昨日收盘", Value: market.FormatPrice(round2(previous.Close)), Unit: cfg.priceUnit},
	}

	timeline := make([]market.Candle, len(candles))
	for i, c := range candles {
		timeline[i] = market.Candle{
			Time:   c.Time,
			Open:   round2(c.Open),
			High:   round2(c.High),
			Low:    round2(c.Low),
			Close:  round2(c.Close),
			Volume: math.Round(c.Volume),
		}
	}

	var visibleRange *market.VisibleRange
	if len(visible) > 0 {
		visibleRange = &market.VisibleRange{
			From: visible[0].Unix(),
			To:   visible[len(visible)-1].Unix(),
		}
	}

	return &market.MarketDataset{
		Meta: market.DatasetMeta{
			Title:       meta.title,
			Exchange:    meta.exchange,
			Contract:    meta.contract,
			LastUpdated: market.FormatDateTime(now),
		},
		PriceUnit:            cfg.priceUnit,
		SummaryMetrics:       summaryMetrics,
		OrderBook:            orderBook,
		TimelineCandles:      timeline,
		TimelineVisibleRange: visibleRange,
		PriceSeries:          priceSeries,
		VolumeSeries:         volumeSeries,
		SessionStats:         sessionStats,
		Trades:               trades,
	}
}

// generateHourlyCandles walks a synthetic price through totalHours buckets.
// The trend mixes two incommensurate waves so consecutive runs look like a
// plausible session; highs and lows always bracket the body.
func generateHourlyCandles(anchor time.Time, cfg generateConfig, rng *rand.Rand) []market.Candle {
	candles := make([]market.Candle, 0, totalHours)
	previousClose := cfg.basePrice

	for i := 0; i < totalHours; i++ {
		ts := anchor.Add(-time.Duration(totalHours-1-i) * time.Hour)
		hour := float64(ts.In(market.Beijing).Hour() + i)
		trend := math.Sin(hour/2.3)*35 + math.Cos(hour/3.1)*25
		noise := (rng.Float64() - 0.5) * 40

		open := previousClose
		close := open + trend + noise
		high := math.Max(open, close) + rng.Float64()*25
		low := math.Min(open, close) - rng.Float64()*25
		volume := cfg.volumeBase + rng.Float64()*cfg.volumeVariance + math.Max(trend, 0)*120

		candles = append(candles, market.Candle{
			Time:   ts,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: volume,
		})
		previousClose = close
	}
	return candles
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
