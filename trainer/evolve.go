package trainer

import (
	"sort"

	"sternhalma/eval"
	"sternhalma/model"

	"golang.org/x/exp/rand"
)

// SeedPopulation builds the initial population: one copy of the hand-tuned
// default genome plus size-1 Gaussian perturbations of it, noise scaled to
// 30% of each gene's valid range.
func SeedPopulation(size int, rng *rand.Rand) []model.Individual {
	const seedNoise = 0.30
	population := make([]model.Individual, size)
	population[0] = model.Individual{Genome: eval.DefaultGenome()}
	for i := 1; i < size; i++ {
		population[i] = model.Individual{Genome: eval.DefaultGenome().Perturbed(rng, seedNoise)}
	}
	return population
}

// EvolveGeneration produces the next population of the same size: the top
// elites survive unmodified with fitness reset, the rest come from
// tournament selection, uniform crossover, and per-gene Gaussian mutation.
func EvolveGeneration(population []model.Individual, cfg model.TrainingConfig, rng *rand.Rand) []model.Individual {
	ranked := make([]model.Individual, len(population))
	copy(ranked, population)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Fitness > ranked[j].Fitness
	})

	elites := cfg.Elites
	if elites > len(ranked) {
		elites = len(ranked)
	}

	next := make([]model.Individual, 0, len(ranked))
	for i := 0; i < elites; i++ {
		next = append(next, model.Individual{Genome: ranked[i].Genome})
	}
	for len(next) < len(ranked) {
		parentA := tournamentSelect(ranked, cfg.TournamentK, rng)
		parentB := tournamentSelect(ranked, cfg.TournamentK, rng)
		child := Crossover(parentA.Genome, parentB.Genome, rng)
		child = Mutate(child, cfg.MutationRate, cfg.MutationStrength, rng)
		next = append(next, model.Individual{Genome: child})
	}
	return next
}

// tournamentSelect samples k individuals and returns the fittest.
func tournamentSelect(ranked []model.Individual, k int, rng *rand.Rand) model.Individual {
	if k < 1 {
		k = 1
	}
	best := ranked[rng.Intn(len(ranked))]
	for i := 1; i < k; i++ {
		candidate := ranked[rng.Intn(len(ranked))]
		if candidate.Fitness > best.Fitness {
			best = candidate
		}
	}
	return best
}

// Crossover mixes two parents gene-wise with equal probability.
func Crossover(a, b eval.Genome, rng *rand.Rand) eval.Genome {
	child := a
	for i := range child {
		if rng.Float64() < 0.5 {
			child[i] = b[i]
		}
	}
	return child
}

// Mutate perturbs each gene with probability rate by Gaussian noise scaled
// to strength times the gene's valid range, then re-clamps. Rate 0 is a
// no-op; no number of applications can leave the declared ranges.
func Mutate(g eval.Genome, rate, strength float64, rng *rand.Rand) eval.Genome {
	for i := range g {
		if rng.Float64() < rate {
			span := eval.GeneRanges[i].Max - eval.GeneRanges[i].Min
			g[i] += rng.NormFloat64() * span * strength
		}
	}
	return g.Clamped()
}

// Pairs enumerates every unordered pair of population indices in a fixed
// order, the round-robin schedule the cursor indexes into.
func Pairs(size int) [][2]int {
	var pairs [][2]int
	for i := 0; i < size; i++ {
		for j := i + 1; j < size; j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	return pairs
}
