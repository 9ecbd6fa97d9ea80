// Package eval scores positions for one player as a weighted sum of
// heuristic terms. Term weights come from a 15-gene genome, either a fixed
// personality table or a trained individual.
package eval

import "golang.org/x/exp/rand"

// GeneCount is the fixed genome length. Every gene is a bounded real weight
// or threshold; the trainer mutates within the declared ranges only.
const GeneCount = 15

// Gene indices.
const (
	GeneGoalOccupancy = iota
	GeneProgress
	GeneStragglerDivisor
	GeneCenterControl
	GeneOpponentBlock
	GeneLeaderBlockBonus
	GeneJumpPotential
	GeneJumpPotentialCap
	GeneEndgameBoost
	GeneEndgameThreshold
	GeneRegressionDistance
	GeneGoalVacatePenalty
	GeneReversalPenalty
	GeneRevisitPenalty
	GeneLookbackSpan
)

// Genome is a full weight vector.
type Genome [GeneCount]float64

// GeneRange is the clamp interval of one gene.
type GeneRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// GeneRanges declares the valid interval per gene. Search-penalty constants
// live here too so the trainer can tune them alongside the evaluation terms.
var GeneRanges = [GeneCount]GeneRange{
	GeneGoalOccupancy:      {5, 20},
	GeneProgress:           {0.25, 3},
	GeneStragglerDivisor:   {2, 20},
	GeneCenterControl:      {0, 5},
	GeneOpponentBlock:      {0, 8},
	GeneLeaderBlockBonus:   {1, 4},
	GeneJumpPotential:      {0, 4},
	GeneJumpPotentialCap:   {4, 30},
	GeneEndgameBoost:       {1, 4},
	GeneEndgameThreshold:   {5, 9},
	GeneRegressionDistance: {1, 12},
	GeneGoalVacatePenalty:  {30, 150},
	GeneReversalPenalty:    {10, 100},
	GeneRevisitPenalty:     {2, 40},
	GeneLookbackSpan:       {2, 8},
}

// DefaultGenome is the hand-tuned weight set the personalities and the
// trainer's seed individual start from.
func DefaultGenome() Genome {
	return Genome{
		GeneGoalOccupancy:      10,
		GeneProgress:           1,
		GeneStragglerDivisor:   8,
		GeneCenterControl:      1.5,
		GeneOpponentBlock:      2,
		GeneLeaderBlockBonus:   2,
		GeneJumpPotential:      1,
		GeneJumpPotentialCap:   12,
		GeneEndgameBoost:       2,
		GeneEndgameThreshold:   7,
		GeneRegressionDistance: 4,
		GeneGoalVacatePenalty:  60,
		GeneReversalPenalty:    50,
		GeneRevisitPenalty:     15,
		GeneLookbackSpan:       4,
	}
}

// Clamped returns the genome with every gene forced into its valid range.
func (g Genome) Clamped() Genome {
	for i := range g {
		if g[i] < GeneRanges[i].Min {
			g[i] = GeneRanges[i].Min
		}
		if g[i] > GeneRanges[i].Max {
			g[i] = GeneRanges[i].Max
		}
	}
	return g
}

// Perturbed returns a copy with every gene offset by Gaussian noise scaled
// to scale times the gene's valid range, then re-clamped. The trainer seeds
// its initial population this way.
func (g Genome) Perturbed(rng *rand.Rand, scale float64) Genome {
	for i := range g {
		span := GeneRanges[i].Max - GeneRanges[i].Min
		g[i] += rng.NormFloat64() * span * scale
	}
	return g.Clamped()
}

// Personality selects one of the fixed hand-tuned weight tables.
type Personality string

const (
	Generalist Personality = "generalist"
	Defensive  Personality = "defensive"
	Aggressive Personality = "aggressive"
)

// PersonalityGenome returns the weight table for a personality, defaulting
// to the generalist set for unknown names.
func PersonalityGenome(p Personality) Genome {
	g := DefaultGenome()
	switch p {
	case Defensive:
		g[GeneStragglerDivisor] = 5
		g[GeneCenterControl] = 2.5
		g[GeneOpponentBlock] = 4
		g[GeneJumpPotential] = 0.5
	case Aggressive:
		g[GeneProgress] = 1.6
		g[GeneJumpPotential] = 2
		g[GeneJumpPotentialCap] = 20
		g[GeneOpponentBlock] = 1
		g[GeneCenterControl] = 1
	}
	return g
}
