// Command snapshot fetches collector data once and prints it as JSON, for
// scripting and debugging without the full dashboard.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	projection "github.com/banjiubanjiu/Nickle-System/internal/application/service/projection"
	"github.com/banjiubanjiu/Nickle-System/internal/config"
	market "github.com/banjiubanjiu/Nickle-System/internal/domain/entity/market"
	interfaces "github.com/banjiubanjiu/Nickle-System/internal/domain/interfaces"
	api "github.com/banjiubanjiu/Nickle-System/internal/infrastructure/api"
	mockdata "github.com/banjiubanjiu/Nickle-System/internal/infrastructure/mockdata"
)

type output struct {
	Snapshot    *market.Snapshot     `json:"snapshot"`
	Primary     []market.MetricView  `json:"primary"`
	Secondary   []market.MetricView  `json:"secondary"`
	LastUpdated string               `json:"lastUpdated"`
	Intraday    []market.Snapshot    `json:"intraday,omitempty"`
	Daily       []market.DailyRecord `json:"daily,omitempty"`
}

func main() {
	exchange := flag.String("exchange", "shfe", "exchange key (shfe/lme)")
	intraday := flag.Int("intraday", 0, "also fetch the latest N intraday snapshots")
	daily := flag.Bool("daily", false, "also fetch daily records")
	startDate := flag.String("start-date", "", "daily range start (YYYY-MM-DD)")
	endDate := flag.String("end-date", "", "daily range end (YYYY-MM-DD)")
	yearly := flag.Int("yearly", 0, "fetch a yearly report slide and exit")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	client := api.NewClient(api.Options{
		BaseURL:        cfg.API.BaseURL,
		Timeout:        time.Duration(cfg.API.TimeoutSeconds) * time.Second,
		YearlyBasePath: cfg.API.YearlyBasePath,
	})

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if *yearly > 0 {
		slide, err := client.YearlySlide(ctx, *yearly)
		if err != nil {
			logger.Fatalf("fetch yearly slide: %v", err)
		}
		if err := enc.Encode(slide); err != nil {
			logger.Fatalf("encode yearly slide: %v", err)
		}
		return
	}

	snap, err := client.Latest(ctx, *exchange)
	if err != nil {
		logger.Fatalf("fetch latest snapshot: %v", err)
	}

	now := time.Now()
	unit := mockdata.NewProvider(now, now.Truncate(time.Hour).Unix()).Dataset(*exchange).PriceUnit
	primary, secondary := projection.Project(snap, unit)

	out := output{
		Snapshot:    snap,
		Primary:     primary,
		Secondary:   secondary,
		LastUpdated: projection.LastUpdated(snap),
	}

	if *intraday > 0 {
		snapshots, err := client.Intraday(ctx, *exchange, *intraday)
		if err != nil {
			logger.Fatalf("fetch intraday snapshots: %v", err)
		}
		out.Intraday = snapshots
	}

	if *daily {
		records, err := client.Daily(ctx, interfaces.DailyQuery{
			Exchange:  *exchange,
			StartDate: *startDate,
			EndDate:   *endDate,
		})
		if err != nil {
			logger.Fatalf("fetch daily records: %v", err)
		}
		out.Daily = records
	}

	if err := enc.Encode(out); err != nil {
		logger.Fatalf("encode output: %v", err)
	}
}
