// Command dexsignal runs the token decision engine. On every poll interval it
// fuses five market signals into a composite verdict, selects an execution
// strategy, routes quotes across venues, checks for arbitrage and appends the
// cycle report to the audit WAL.
//
// Usage:
//
//	dexsignal --config config.yml
//	dexsignal (simulated market data, no credentials needed)
//
// Optional environment variables for live mode:
//
//	BINANCE_API_KEY, BINANCE_API_SECRET
//	BYBIT_API_KEY, BYBIT_API_SECRET
//	HYPERLIQUID_PRIVATE_KEY, HYPERLIQUID_BASE_URL
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dexsignal/dexsignal/config"
	"github.com/dexsignal/dexsignal/internal"
	"github.com/dexsignal/dexsignal/internal/clients"
	"github.com/dexsignal/dexsignal/internal/services/arbitrage"
	"github.com/dexsignal/dexsignal/internal/services/marketdata"
	"github.com/dexsignal/dexsignal/internal/services/pricer"
	"github.com/dexsignal/dexsignal/internal/services/router"
	"github.com/dexsignal/dexsignal/internal/storage/auditlog"
)

func main() {
	cfg, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	audit, err := auditlog.NewStore(cfg.AuditDir)
	if err != nil {
		logger.Fatal("failed to open audit store", zap.Error(err))
	}
	defer audit.Close()

	var (
		provider     internal.SnapshotProvider
		venues       []router.VenueSource
		nativePricer arbitrage.NativeTokenPricer
	)

	if cfg.Simulate {
		sim := marketdata.NewSimulatedSource(time.Now().UnixNano(), decimal.NewFromInt(100))
		provider = marketdata.NewProvider(sim, sim, cfg.TokenSymbol+"USDT", logger)

		liq := decimal.NewFromInt(2_000_000)
		venues = []router.VenueSource{
			router.NewStaticVenue("sim-alpha", decimal.NewFromFloat(99.8), liq),
			router.NewStaticVenue("sim-beta", decimal.NewFromFloat(100.9), liq),
			router.NewStaticVenue("sim-gamma", decimal.NewFromFloat(100.1), liq),
		}
		nativePricer = pricer.NewStaticPricer(decimal.NewFromInt(3000))

		logger.Info("running in simulation mode", zap.String("symbol", cfg.TokenSymbol))
	} else {
		binanceClient := clients.NewBinanceClient(os.Getenv("BINANCE_API_KEY"), os.Getenv("BINANCE_API_SECRET"))
		bybitClient := clients.NewBybitClient(os.Getenv("BYBIT_API_KEY"), os.Getenv("BYBIT_API_SECRET"))

		provider = marketdata.NewProvider(marketdata.NewBinanceKlines(binanceClient), nil, cfg.TokenSymbol+"USDT", logger)
		venues = []router.VenueSource{
			router.NewBinanceVenue(binanceClient, "USDT"),
			router.NewBybitVenue(bybitClient, "USDT"),
		}

		if pk := os.Getenv("HYPERLIQUID_PRIVATE_KEY"); pk != "" {
			hl, err := clients.NewHyperliquidClient(pk, os.Getenv("HYPERLIQUID_BASE_URL"))
			if err != nil {
				logger.Fatal("failed to create hyperliquid client", zap.Error(err))
			}
			venues = append(venues, router.NewHyperliquidVenue(hl.Info()))
		}

		nativePricer = pricer.NewBinancePricer(binanceClient, "ETHUSDT")
	}

	advisor := internal.NewAdvisor(cfg, provider, venues, nativePricer, audit, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := advisor.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("advisor stopped", zap.Error(err))
	}
}
