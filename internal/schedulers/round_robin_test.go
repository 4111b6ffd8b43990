package schedulers

import (
	"container/list"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpusched/internal/core"
)

func TestRoundRobin_SingleProcess(t *testing.T) {
	result, err := ScheduleRoundRobin(newSet(t, [2]int{0, 5}), DefaultTimeQuantum)
	require.NoError(t, err)

	assert.Equal(t, []int{5}, result.TurnAroundTime)
	assert.Equal(t, []int{0}, result.ResponseTime)
	assert.Equal(t, []int{0}, result.WaitingTime)
	assert.Equal(t, core.Timeline{{ProcessId: 0, Start: 0, End: 5}}, result.Timeline)
}

func TestRoundRobin_Interleaves(t *testing.T) {
	result, err := ScheduleRoundRobin(newSet(t, [2]int{0, 4}, [2]int{0, 4}), 2)
	require.NoError(t, err)

	assert.Equal(t, []int{6, 8}, result.TurnAroundTime)
	assert.Equal(t, []int{0, 2}, result.ResponseTime)
	assert.Equal(t, []int{2, 4}, result.WaitingTime)
	assert.Equal(t, core.Timeline{
		{ProcessId: 0, Start: 0, End: 2},
		{ProcessId: 1, Start: 2, End: 4},
		{ProcessId: 0, Start: 4, End: 6},
		{ProcessId: 1, Start: 6, End: 8},
	}, result.Timeline)

	averages, err := result.Averages()
	require.NoError(t, err)
	assert.InDelta(t, 7.0, averages.TurnAroundTime, 1e-9)
	assert.InDelta(t, 1.0, averages.ResponseTime, 1e-9)
	assert.InDelta(t, 3.0, averages.WaitingTime, 1e-9)
}

// A process arriving at a slice boundary is queued ahead of the one just preempted.
func TestRoundRobin_NewArrivalQueuedBeforePreempted(t *testing.T) {
	result, err := ScheduleRoundRobin(newSet(t, [2]int{0, 3}, [2]int{2, 2}), 2)
	require.NoError(t, err)

	assert.Equal(t, []int{5, 4}, result.CompletionTime)
	assert.Equal(t, []int{5, 2}, result.TurnAroundTime)
	assert.Equal(t, []int{0, 0}, result.ResponseTime)
	assert.Equal(t, []int{2, 0}, result.WaitingTime)
}

// Arrivals during a slice wait for the slice to end.
func TestRoundRobin_MidSliceArrivalAdmittedAtBoundary(t *testing.T) {
	result, err := ScheduleRoundRobin(newSet(t, [2]int{0, 4}, [2]int{1, 1}), 2)
	require.NoError(t, err)

	assert.Equal(t, []int{5, 3}, result.CompletionTime)
	assert.Equal(t, []int{0, 1}, result.ResponseTime)
	assert.Equal(t, core.Timeline{
		{ProcessId: 0, Start: 0, End: 2},
		{ProcessId: 1, Start: 2, End: 3},
		{ProcessId: 0, Start: 3, End: 5},
	}, result.Timeline)
}

func TestRoundRobin_IdleUntilNextArrival(t *testing.T) {
	result, err := ScheduleRoundRobin(newSet(t, [2]int{0, 1}, [2]int{4, 3}), 2)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3}, result.TurnAroundTime)
	assert.Equal(t, []int{0, 0}, result.ResponseTime)
	assert.Equal(t, []int{0, 0}, result.WaitingTime)
	assert.Equal(t, core.Timeline{
		{ProcessId: 0, Start: 0, End: 1},
		{ProcessId: 1, Start: 4, End: 7},
	}, result.Timeline)
}

func TestRoundRobin_FirstArrivalAfterZero(t *testing.T) {
	result, err := ScheduleRoundRobin(newSet(t, [2]int{5, 1}), 2)
	require.NoError(t, err)

	assert.Equal(t, []int{6}, result.CompletionTime)
	assert.Equal(t, []int{1}, result.TurnAroundTime)
}

func TestRoundRobin_ResultInInputOrder(t *testing.T) {
	result, err := ScheduleRoundRobin(newSet(t, [2]int{3, 2}, [2]int{0, 1}), 2)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1}, processIds(result))
	assert.Equal(t, []int{5, 1}, result.CompletionTime)
	assert.Equal(t, []int{2, 1}, result.TurnAroundTime)
}

func TestRoundRobin_EqualArrivalsKeepInputOrder(t *testing.T) {
	result, err := ScheduleRoundRobin(newSet(t, [2]int{1, 1}, [2]int{0, 1}, [2]int{1, 1}), 2)
	require.NoError(t, err)

	assert.Equal(t, core.Timeline{
		{ProcessId: 1, Start: 0, End: 1},
		{ProcessId: 0, Start: 1, End: 2},
		{ProcessId: 2, Start: 2, End: 3},
	}, result.Timeline)
}

func TestRoundRobin_LargeQuantumBehavesLikeFCFS(t *testing.T) {
	set := newSet(t, [2]int{0, 3}, [2]int{1, 5}, [2]int{2, 2}, [2]int{9, 4})

	rr, err := ScheduleRoundRobin(set, 100)
	require.NoError(t, err)
	fcfs := ScheduleFirstComeFirstServe(set)

	assert.Equal(t, fcfs.CompletionTime, rr.CompletionTime)
	assert.Equal(t, fcfs.Timeline, rr.Timeline)
}

func TestRoundRobin_InvalidQuantum(t *testing.T) {
	for _, quantum := range []int{0, -2} {
		_, err := ScheduleRoundRobin(newSet(t, [2]int{0, 1}), quantum)
		assert.ErrorIs(t, err, ErrInvalidTimeQuantum)
	}
}

// listRoundRobin is an independent round robin built on container/list that
// walks arrivals by index instead of keeping an admission cursor.
func listRoundRobin(set *core.ProcessSet, quantum int) (firstRun, completion []int) {
	jobs := set.Processes()
	n := len(jobs)
	firstRun = make([]int, n)
	completion = make([]int, n)
	remaining := make([]int, n)
	admitted := make([]bool, n)
	for i, job := range jobs {
		firstRun[i], completion[i], remaining[i] = -1, -1, job.BurstTime
	}

	queue := list.New()
	admitUpTo := func(now int) {
		for _, job := range set.SortedByArrival() {
			if !admitted[job.Id] && job.ArrivalTime <= now {
				admitted[job.Id] = true
				queue.PushBack(job.Id)
			}
		}
	}

	now, done := 0, 0
	admitUpTo(now)
	for done < n {
		front := queue.Front()
		if front == nil {
			next := -1
			for i, job := range jobs {
				if !admitted[i] && (next == -1 || job.ArrivalTime < next) {
					next = job.ArrivalTime
				}
			}
			now = next
			admitUpTo(now)
			continue
		}
		pid := queue.Remove(front).(int)
		if firstRun[pid] == -1 {
			firstRun[pid] = now
		}
		run := quantum
		if remaining[pid] < run {
			run = remaining[pid]
		}
		remaining[pid] -= run
		now += run
		admitUpTo(now)
		if remaining[pid] > 0 {
			queue.PushBack(pid)
		} else {
			completion[pid] = now
			done++
		}
	}
	return firstRun, completion
}

func TestRoundRobin_MatchesListQueue(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 1000; i++ {
		set := randomSet(t, rng)
		quantum := 1 + rng.Intn(5)
		wantFirstRun, wantCompletion := listRoundRobin(set, quantum)

		result, err := ScheduleRoundRobin(set, quantum)
		require.NoError(t, err)

		for j, p := range result.Processes {
			assert.Equal(t, wantCompletion[p.Id], result.CompletionTime[j], "case %d quantum %d process %d", i, quantum, p.Id)
			assert.Equal(t, wantFirstRun[p.Id]-p.ArrivalTime, result.ResponseTime[j], "case %d quantum %d process %d", i, quantum, p.Id)
		}
	}
}
