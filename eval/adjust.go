package eval

// Stats is the aggregate historical-game signal an external persistence
// layer may supply. It is optional: zero stats produce zero adjustments.
type Stats struct {
	Games    int     `json:"games" yaml:"games"`
	AvgMoves float64 `json:"avgMoves" yaml:"avgMoves"`
	WinRate  float64 `json:"winRate" yaml:"winRate"`
}

// Adjustments are slow-moving weight deltas blended into the genome by
// non-easy difficulties. Each delta is bounded so historical data can bias
// but never dominate the hand-tuned weights.
type Adjustments struct {
	ProgressBias float64
	BlockBias    float64
	JumpBias     float64
}

const maxBias = 0.5

// AdjustmentsFromStats derives deltas from history: long average games pull
// toward faster progress, a low win rate pulls toward more blocking and
// more jump mobility.
func AdjustmentsFromStats(s Stats) Adjustments {
	if s.Games == 0 {
		return Adjustments{}
	}
	var a Adjustments
	// 120 moves is par for a 2-player game on the standard star.
	a.ProgressBias = clampBias((s.AvgMoves - 120) / 240)
	a.BlockBias = clampBias((0.5 - s.WinRate))
	a.JumpBias = clampBias((0.5 - s.WinRate) / 2)
	return a
}

func clampBias(v float64) float64 {
	if v > maxBias {
		return maxBias
	}
	if v < -maxBias {
		return -maxBias
	}
	return v
}
