package trainer

import (
	"testing"

	"sternhalma/eval"
	"sternhalma/model"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func inRange(t *testing.T, g eval.Genome) {
	t.Helper()
	for i, v := range g {
		require.GreaterOrEqual(t, v, eval.GeneRanges[i].Min, "gene %d", i)
		require.LessOrEqual(t, v, eval.GeneRanges[i].Max, "gene %d", i)
	}
}

func TestSeedPopulation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	population := SeedPopulation(8, rng)

	require.Len(t, population, 8)
	require.Equal(t, eval.DefaultGenome(), population[0].Genome,
		"the first seed is the unperturbed default")

	perturbedCount := 0
	for _, ind := range population[1:] {
		inRange(t, ind.Genome)
		if ind.Genome != eval.DefaultGenome() {
			perturbedCount++
		}
	}
	require.NotZero(t, perturbedCount, "the remaining seeds should be perturbed")
}

func TestEvolveGeneration(t *testing.T) {
	cfg := model.DefaultTrainingConfig()
	cfg.PopulationSize = 6
	cfg.Elites = 2

	population := make([]model.Individual, cfg.PopulationSize)
	seedRng := rand.New(rand.NewSource(2))
	for i := range population {
		population[i] = model.Individual{
			Genome:  eval.DefaultGenome().Perturbed(seedRng, 0.3),
			Fitness: float64(i),
			Wins:    i,
		}
	}

	next := EvolveGeneration(population, cfg, rand.New(rand.NewSource(3)))

	t.Run("population size is preserved", func(t *testing.T) {
		require.Len(t, next, cfg.PopulationSize)
	})

	t.Run("elites survive by genome with fitness reset", func(t *testing.T) {
		require.Equal(t, population[5].Genome, next[0].Genome)
		require.Equal(t, population[4].Genome, next[1].Genome)
		for _, ind := range next[:cfg.Elites] {
			require.Zero(t, ind.Fitness)
			require.Zero(t, ind.Wins)
			require.Zero(t, ind.GamesPlayed)
		}
	})

	t.Run("offspring stay within gene ranges", func(t *testing.T) {
		for _, ind := range next {
			inRange(t, ind.Genome)
		}
	})

	t.Run("the input population is not reordered", func(t *testing.T) {
		require.Equal(t, 0.0, population[0].Fitness)
		require.Equal(t, 5.0, population[5].Fitness)
	})
}

func TestCrossover(t *testing.T) {
	var a, b eval.Genome
	for i := range a {
		a[i] = eval.GeneRanges[i].Min
		b[i] = eval.GeneRanges[i].Max
	}

	rng := rand.New(rand.NewSource(4))
	child := Crossover(a, b, rng)

	fromA, fromB := 0, 0
	for i, v := range child {
		switch v {
		case a[i]:
			fromA++
		case b[i]:
			fromB++
		default:
			t.Fatalf("gene %d value %v comes from neither parent", i, v)
		}
	}
	require.NotZero(t, fromA+fromB)
}

func TestMutate(t *testing.T) {
	t.Run("rate zero is a no-op", func(t *testing.T) {
		g := eval.DefaultGenome()
		require.Equal(t, g, Mutate(g, 0, 0.5, rand.New(rand.NewSource(5))))
	})

	t.Run("repeated full-rate mutation never escapes the ranges", func(t *testing.T) {
		rng := rand.New(rand.NewSource(6))
		g := eval.DefaultGenome()
		for i := 0; i < 50; i++ {
			g = Mutate(g, 1, 0.5, rng)
			inRange(t, g)
		}
	})

	t.Run("full rate actually changes genes", func(t *testing.T) {
		g := eval.DefaultGenome()
		require.NotEqual(t, g, Mutate(g, 1, 0.5, rand.New(rand.NewSource(7))))
	})
}

func TestPairs(t *testing.T) {
	require.Equal(t, [][2]int{{0, 1}, {0, 2}, {1, 2}}, Pairs(3))
	require.Len(t, Pairs(6), 15)
	require.Empty(t, Pairs(1))

	t.Run("the order is stable", func(t *testing.T) {
		require.Equal(t, Pairs(5), Pairs(5))
	})
}
