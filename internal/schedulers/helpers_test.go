package schedulers

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"cpusched/internal/core"
)

// newSet builds a set from (arrival, burst) pairs.
func newSet(t *testing.T, pairs ...[2]int) *core.ProcessSet {
	t.Helper()
	processes := make([]core.Process, len(pairs))
	for i, pair := range pairs {
		processes[i] = core.Process{ArrivalTime: pair[0], BurstTime: pair[1]}
	}
	set, err := core.NewProcessSet(processes)
	require.NoError(t, err)
	return set
}

func randomSet(t *testing.T, rng *rand.Rand) *core.ProcessSet {
	t.Helper()
	n := 1 + rng.Intn(12)
	pairs := make([][2]int, n)
	for i := range pairs {
		pairs[i] = [2]int{rng.Intn(21), 1 + rng.Intn(10)}
	}
	return newSet(t, pairs...)
}

func processIds(result *SimulationResult) []int {
	ids := make([]int, len(result.Processes))
	for i, p := range result.Processes {
		ids[i] = p.Id
	}
	return ids
}
