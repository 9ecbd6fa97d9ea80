package eval

import (
	"sternhalma/game"

	"golang.org/x/exp/rand"
)

// Evaluator scores positions for one player. Zero-value options give the
// generalist personality on hand-tuned defaults.
type Evaluator struct {
	genome Genome
	oracle *game.DistanceOracle
	rng    *rand.Rand
	noise  float64
	adjust Adjustments
}

type Option func(*Evaluator)

// WithGenome substitutes a trained weight vector, clamped to valid ranges.
func WithGenome(g Genome) Option {
	return func(e *Evaluator) {
		e.genome = g.Clamped()
	}
}

// WithPersonality selects a fixed weight table.
func WithPersonality(p Personality) Option {
	return func(e *Evaluator) {
		e.genome = PersonalityGenome(p)
	}
}

// WithOracle supplies the path-distance oracle used on custom topologies.
func WithOracle(o *game.DistanceOracle) Option {
	return func(e *Evaluator) {
		e.oracle = o
	}
}

// WithNoise adds bounded uniform noise to the final score, the "easy"
// difficulty wobble.
func WithNoise(rng *rand.Rand, bound float64) Option {
	return func(e *Evaluator) {
		e.rng = rng
		e.noise = bound
	}
}

// WithAdjustments blends in the slow-moving weight deltas derived from
// aggregate historical game statistics.
func WithAdjustments(a Adjustments) Option {
	return func(e *Evaluator) {
		e.adjust = a
	}
}

func New(options ...Option) *Evaluator {
	e := &Evaluator{genome: DefaultGenome()}
	for _, option := range options {
		option(e)
	}
	return e
}

// Genome exposes the active weight vector, which the searcher shares for
// its penalty constants.
func (e *Evaluator) Genome() Genome {
	return e.genome
}

// Evaluate scores the position for player. Higher is better for that player
// regardless of whose turn it is.
func (e *Evaluator) Evaluate(gs *game.GameState, player int) float64 {
	g := e.applyAdjustments()

	pieces := gs.PiecePositions(player)
	goals := gs.GoalCells(player)
	home := onGoalCount(gs, player)

	progressW := g[GeneProgress]
	occupancyW := g[GeneGoalOccupancy]
	stragglerDiv := g[GeneStragglerDivisor]
	centerW := g[GeneCenterControl]
	blockW := g[GeneOpponentBlock]
	jumpW := g[GeneJumpPotential]

	// Endgame: someone already won, or most pieces are home. Progress terms
	// double, tactical terms drop to zero.
	if gs.Winner != 0 || endgameReached(home, len(pieces), g[GeneEndgameThreshold]) {
		progressW *= g[GeneEndgameBoost]
		occupancyW *= g[GeneEndgameBoost]
		centerW, blockW, jumpW = 0, 0, 0
	}

	score := occupancyW * float64(home)
	score += progressW * e.progress(gs, player, pieces)
	score -= e.stragglerPenalty(gs, player, pieces, goals, home) / stragglerDiv

	if centerW > 0 && !gs.IsCustomLayout {
		score += centerW * centerControl(pieces)
	}
	if blockW > 0 {
		score += e.blockingBonus(gs, player, pieces, blockW, g[GeneLeaderBlockBonus])
	}
	if jumpW > 0 {
		jp := jumpW * float64(jumpPotential(gs, pieces))
		if jp > g[GeneJumpPotentialCap] {
			jp = g[GeneJumpPotentialCap]
		}
		score += jp
	}

	if e.noise > 0 && e.rng != nil {
		score += (e.rng.Float64()*2 - 1) * e.noise
	}
	return score
}

func (e *Evaluator) applyAdjustments() Genome {
	g := e.genome
	if e.adjust == (Adjustments{}) {
		return g
	}
	g[GeneProgress] += e.adjust.ProgressBias
	g[GeneOpponentBlock] += e.adjust.BlockBias
	g[GeneJumpPotential] += e.adjust.JumpBias
	return g.Clamped()
}

func endgameReached(home, pieceCount int, threshold float64) bool {
	if pieceCount == 0 {
		return false
	}
	return float64(home) >= threshold*float64(pieceCount)/10
}

func onGoalCount(gs *game.GameState, player int) int {
	count := 0
	for _, g := range gs.GoalCells(player) {
		if cell, ok := gs.Board.At(g); ok && cell == game.PieceOf(player) {
			count++
		}
	}
	return count
}

// progress is the calibrated 0-100 advance score: the interpolation between
// home-total-distance and zero remaining distance. Custom topologies use
// path costs from the oracle; the standard star uses raw hex distance.
func (e *Evaluator) progress(gs *game.GameState, player int, pieces []game.CubeCoord) float64 {
	goals := gs.GoalCells(player)
	if gs.IsCustomLayout && e.oracle != nil {
		dist := e.oracle.DistanceMap(gs.Board, goals)
		return game.PathProgress(dist, pieces, gs.StartingPositions[player])
	}

	homeTotal := 0
	for _, c := range gs.StartingPositions[player] {
		homeTotal += nearestGoalDistance(c, goals)
	}
	if homeTotal == 0 {
		return 100
	}
	total := 0
	for _, p := range pieces {
		total += nearestGoalDistance(p, goals)
	}
	progress := 100 * (1 - float64(total)/float64(homeTotal))
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// stragglerPenalty is the squared worst remaining distance. Once nine of
// ten pieces are home the straggler is measured against the nearest still
// empty goal cell, the only ones it can actually take.
func (e *Evaluator) stragglerPenalty(gs *game.GameState, player int, pieces, goals []game.CubeCoord, home int) float64 {
	targets := goals
	if len(pieces) > 0 && home*10 >= 9*len(pieces) {
		var open []game.CubeCoord
		for _, g := range goals {
			if gs.Board.IsOpen(g) {
				open = append(open, g)
			}
		}
		if len(open) > 0 {
			targets = open
		}
	}

	worst := 0
	if gs.IsCustomLayout && e.oracle != nil {
		dist := e.oracle.DistanceMap(gs.Board, targets)
		worst = game.WorstPathDistance(dist, outsidePieces(pieces, goals))
	} else {
		for _, p := range outsidePieces(pieces, goals) {
			if d := nearestGoalDistance(p, targets); d > worst {
				worst = d
			}
		}
	}
	return float64(worst * worst)
}

func outsidePieces(pieces, goals []game.CubeCoord) []game.CubeCoord {
	var outside []game.CubeCoord
	for _, p := range pieces {
		onGoal := false
		for _, g := range goals {
			if p == g {
				onGoal = true
				break
			}
		}
		if !onGoal {
			outside = append(outside, p)
		}
	}
	return outside
}

func nearestGoalDistance(c game.CubeCoord, goals []game.CubeCoord) int {
	best := game.UnreachableDistance
	for _, g := range goals {
		if d := game.Distance(c, g); d < best {
			best = d
		}
	}
	return best
}

// centerControl rewards pieces inside the central hexagon, scaled by how
// close to the middle they sit. Standard topology only.
func centerControl(pieces []game.CubeCoord) float64 {
	control := 0.0
	for _, p := range pieces {
		if d := game.Distance(p, game.BoardCenter); d <= game.CenterRadius {
			control += float64(game.CenterRadius + 1 - d)
		}
	}
	return control
}

// blockingBonus rewards occupying opponents' goal cells, doubled against
// the leading opponent.
func (e *Evaluator) blockingBonus(gs *game.GameState, player int, pieces []game.CubeCoord, blockW, leaderBonus float64) float64 {
	leader, leaderProgress := 0, -1.0
	for _, opp := range gs.ActivePlayers {
		if opp == player {
			continue
		}
		p := e.progress(gs, opp, gs.PiecePositions(opp))
		if p > leaderProgress {
			leader, leaderProgress = opp, p
		}
	}

	bonus := 0.0
	for _, opp := range gs.ActivePlayers {
		if opp == player {
			continue
		}
		blocked := 0
		for _, g := range gs.GoalCells(opp) {
			if cell, ok := gs.Board.At(g); ok && cell == game.PieceOf(player) {
				blocked++
			}
		}
		term := blockW * float64(blocked)
		if opp == leader {
			term *= leaderBonus
		}
		bonus += term
	}
	return bonus
}

// jumpPotential counts immediate single-jump options across all pieces, a
// cheap proxy for chain mobility.
func jumpPotential(gs *game.GameState, pieces []game.CubeCoord) int {
	count := 0
	for _, p := range pieces {
		for i := 0; i < 6; i++ {
			over := p.Neighbor(i)
			cell, ok := gs.Board.At(over)
			if !ok || !cell.IsPiece() {
				continue
			}
			if gs.Board.IsOpen(game.JumpDestination(p, over)) {
				count++
			}
		}
	}
	return count
}
