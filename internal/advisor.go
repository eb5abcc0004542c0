package internal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dexsignal/dexsignal/config"
	"github.com/dexsignal/dexsignal/internal/domain"
	"github.com/dexsignal/dexsignal/internal/services/arbitrage"
	"github.com/dexsignal/dexsignal/internal/services/composite"
	"github.com/dexsignal/dexsignal/internal/services/router"
	"github.com/dexsignal/dexsignal/internal/services/signal"
	"github.com/dexsignal/dexsignal/internal/services/strategy"
)

// SnapshotProvider fetches already-decoded chain readings for one token. All
// node I/O and retries live behind this boundary; the engine itself never
// talks to a chain.
type SnapshotProvider interface {
	Snapshot(ctx context.Context, tokenAddress string, chainID int64) (signal.Inputs, error)
}

// AuditSink receives the cycle report. The advisor never depends on a save
// succeeding to complete its own cycle.
type AuditSink interface {
	Save(report domain.CycleReport) error
}

// Advisor runs the full decision pipeline for one configured token: snapshot,
// composite analysis, strategy selection, venue routing and arbitrage
// detection, finishing with an audit write.
type Advisor struct {
	cfg      config.Config
	provider SnapshotProvider
	analyzer *composite.Analyzer
	selector *strategy.Selector
	router   *router.Router
	engine   *arbitrage.Engine
	audit    AuditSink
	l        *zap.Logger
}

// NewAdvisor wires the pipeline from configuration and collaborators.
func NewAdvisor(
	cfg config.Config,
	provider SnapshotProvider,
	venues []router.VenueSource,
	pricer arbitrage.NativeTokenPricer,
	audit AuditSink,
	l *zap.Logger,
) *Advisor {
	return &Advisor{
		cfg:      cfg,
		provider: provider,
		analyzer: composite.NewAnalyzer(cfg.Analyzer, l),
		selector: strategy.NewSelector(cfg.Strategy, l),
		router:   router.New(cfg.Router, venues, l),
		engine:   arbitrage.NewEngine(cfg.Arbitrage, pricer, l),
		audit:    audit,
		l:        l,
	}
}

// RunCycle executes one analysis cycle and returns its report. An unreachable
// snapshot provider degrades the readings instead of aborting; the only error
// path left is invalid configuration input, which indicates a caller bug.
func (a *Advisor) RunCycle(ctx context.Context) (*domain.CycleReport, error) {
	started := time.Now()

	in, err := a.provider.Snapshot(ctx, a.cfg.TokenAddress, a.cfg.ChainID)
	if err != nil {
		a.l.Warn("snapshot provider unavailable, proceeding with empty readings",
			zap.String("token", a.cfg.TokenAddress),
			zap.Error(err))
		in = signal.Inputs{DataSource: "unavailable"}
	}

	result, err := a.analyzer.AnalyzeComprehensive(ctx, a.cfg.TokenAddress, a.cfg.ChainID, a.cfg.TradeSizeUSD, in)
	if err != nil {
		return nil, errors.Wrap(err, "composite analysis rejected inputs")
	}

	decision := domain.TradingDecision{
		OverallConfidence: result.Score.OverallConfidence,
		PositionSizeUSD:   a.cfg.TradeSizeUSD,
	}
	chosen := a.selector.Select(a.cfg.TokenAddress, decision, result.Context)

	// fresh quotes: arbitrage detection is an execution path
	quotes := a.router.Quotes(ctx, a.cfg.TokenAddress, a.cfg.TokenSymbol, false)

	gasPrice := decimal.Zero
	if in.GasPriceGwei != nil {
		gasPrice = *in.GasPriceGwei
	}
	opportunity, err := a.engine.FindOpportunity(ctx, quotes, a.cfg.TokenSymbol, a.cfg.TokenAddress, a.cfg.ChainID, gasPrice)
	if err != nil {
		a.l.Warn("arbitrage evaluation degraded",
			zap.String("token", a.cfg.TokenAddress),
			zap.Error(err))
		opportunity = nil
	}

	report := &domain.CycleReport{
		ID:           uuid.NewString(),
		TokenAddress: a.cfg.TokenAddress,
		TokenSymbol:  a.cfg.TokenSymbol,
		ChainID:      a.cfg.ChainID,
		Score:        result.Score,
		Strategy:     chosen,
		Decision:     decision,
		Quotes:       quotes,
		Opportunity:  opportunity,
		StartedAt:    started,
		FinishedAt:   time.Now(),
	}

	// the audit trail must never block or fail the cycle
	if err := a.audit.Save(*report); err != nil {
		a.l.Error("failed to persist cycle report",
			zap.String("report_id", report.ID),
			zap.Error(err))
	}

	return report, nil
}

// Run executes analysis cycles on the configured poll interval until the
// context is cancelled.
func (a *Advisor) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.cfg.PollInterval)
	defer ticker.Stop()

	a.l.Info("starting advisor loop",
		zap.String("token", a.cfg.TokenAddress),
		zap.String("symbol", a.cfg.TokenSymbol),
		zap.Duration("poll_interval", a.cfg.PollInterval))

	for {
		select {
		case <-ctx.Done():
			a.l.Info("context done, stopping advisor loop", zap.String("token", a.cfg.TokenAddress))
			return ctx.Err()
		case <-ticker.C:
			report, err := a.RunCycle(ctx)
			if err != nil {
				a.l.Error("analysis cycle failed", zap.String("token", a.cfg.TokenAddress), zap.Error(err))
				continue
			}

			a.l.Info("analysis cycle complete",
				zap.String("report_id", report.ID),
				zap.String("strategy", report.Strategy.String()),
				zap.Float64("confidence", report.Score.OverallConfidence),
				zap.Bool("opportunity_found", report.Opportunity != nil))
		}
	}
}
