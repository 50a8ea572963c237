package model

import "time"

// Direction is the trade side of a signal.
type Direction string

const (
	DirectionBuy  Direction = "BUY"
	DirectionSell Direction = "SELL"
)

// Strength labels how strong a detected setup is considered.
type Strength string

const (
	StrengthWeak       Strength = "Weak"
	StrengthMedium     Strength = "Medium"
	StrengthStrong     Strength = "Strong"
	StrengthVeryStrong Strength = "Very Strong"
)

// LevelKind distinguishes support from resistance levels.
type LevelKind string

const (
	LevelSupport    LevelKind = "support"
	LevelResistance LevelKind = "resistance"
)

// Level is a clustered support or resistance price level.
type Level struct {
	Price       float64
	Kind        LevelKind
	SourceCount int // number of swing extrema collapsed into this level
}

// PatternMatch is a recognized candlestick pattern on the trailing window.
type PatternMatch struct {
	Name      string
	Direction Direction
	Strength  Strength
}

// StructureKind identifies a market-structure setup.
type StructureKind string

const (
	StructureOrderBlock    StructureKind = "ORDER_BLOCK"
	StructureLiquidityGrab StructureKind = "LIQUIDITY_GRAB"
	StructureBreakRetest   StructureKind = "BREAK_RETEST"
)

// StructureSignal is a detected order block, liquidity grab, or break-retest.
type StructureSignal struct {
	Kind      StructureKind
	Direction Direction
	Level     float64 // reference price of the setup
	High      float64 // order-block range, zero otherwise
	Low       float64
	Strength  Strength
}

// StructureSet groups all structure signals found in one window.
type StructureSet struct {
	OrderBlocks    []StructureSignal
	LiquidityGrabs []StructureSignal
	BreakRetests   []StructureSignal
}

// Empty reports whether no structure setup was found at all.
func (s StructureSet) Empty() bool {
	return len(s.OrderBlocks) == 0 && len(s.LiquidityGrabs) == 0 && len(s.BreakRetests) == 0
}

// Confirmation holds the RSI and volume confirmation for a signal direction.
type Confirmation struct {
	RSIValue        float64
	RSIConfirmed    bool
	VolumeRatio     float64
	VolumeConfirmed bool
	Strength        Strength
}

// Signal is the terminal artifact of a successful scan pipeline.
type Signal struct {
	Symbol         string
	Direction      Direction
	Pattern        PatternMatch
	Entry          float64
	StopLoss       float64
	Target1        float64
	Target2        float64
	RiskReward     float64
	SRKind         LevelKind
	SRLevel        float64
	Supports       []Level
	Resistances    []Level
	Confirmation   Confirmation
	Structure      StructureSet
	StructureScore int
	Bars           []Bar // window the signal was detected on, for rendering
	Timestamp      time.Time
}

// ScanReport aggregates the outcome of one universe scan.
type ScanReport struct {
	StartTime      time.Time
	Duration       time.Duration
	SymbolsScanned int
	SignalsFound   int
	Errors         int
}
