package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// All five readings must satisfy Signal through their embedded meta.
var (
	_ Signal = GasReading{}
	_ Signal = LiquidityReading{}
	_ Signal = VolatilityReading{}
	_ Signal = MEVReading{}
	_ Signal = MarketStateReading{}
)

func TestReadingsExposeEmbeddedMeta(t *testing.T) {
	signals := []Signal{
		GasReading{SignalMeta: SignalMeta{Kind: SignalGas, Quality: QualityExcellent}},
		LiquidityReading{SignalMeta: SignalMeta{Kind: SignalLiquidity, Quality: QualityGood}},
		VolatilityReading{SignalMeta: SignalMeta{Kind: SignalVolatility, Quality: QualityFair}},
		MEVReading{SignalMeta: SignalMeta{Kind: SignalMEV, Quality: QualityPoor}},
		MarketStateReading{SignalMeta: SignalMeta{Kind: SignalMarketState, Quality: QualityNoData}},
	}

	wantKinds := []SignalKind{SignalGas, SignalLiquidity, SignalVolatility, SignalMEV, SignalMarketState}
	wantQualities := []DataQuality{QualityExcellent, QualityGood, QualityFair, QualityPoor, QualityNoData}

	for i, s := range signals {
		require.Equal(t, wantKinds[i], s.SignalKind())
		require.Equal(t, wantKinds[i], s.Meta().Kind)
		require.Equal(t, wantQualities[i], s.Meta().Quality)
	}
}

func TestCompositeResultSignalsOrder(t *testing.T) {
	r := CompositeResult{
		Gas:         GasReading{SignalMeta: SignalMeta{Kind: SignalGas}},
		Liquidity:   LiquidityReading{SignalMeta: SignalMeta{Kind: SignalLiquidity}},
		Volatility:  VolatilityReading{SignalMeta: SignalMeta{Kind: SignalVolatility}},
		MEV:         MEVReading{SignalMeta: SignalMeta{Kind: SignalMEV}},
		MarketState: MarketStateReading{SignalMeta: SignalMeta{Kind: SignalMarketState}},
	}

	signals := r.Signals()
	require.Len(t, signals, 5)

	want := []SignalKind{SignalGas, SignalLiquidity, SignalVolatility, SignalMEV, SignalMarketState}
	for i, s := range signals {
		require.Equal(t, want[i], s.SignalKind())
	}
}
