package schedulers

import (
	"fmt"
	"log"

	"cpusched/internal/core"
)

// ScheduleRoundRobin time-slices the ready queue with the given quantum.
//
// Arrivals are only admitted at slice boundaries, and they are queued before
// the process whose slice just ended, so a newcomer runs ahead of it.
// The result is indexed by input position.
func ScheduleRoundRobin(set *core.ProcessSet, timeQuantum int) (*SimulationResult, error) {
	if timeQuantum <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTimeQuantum, timeQuantum)
	}
	log.Println("running roundRobin algorithm with timeQuantum = ", timeQuantum)
	result := newSimulationResult(RoundRobin, set)

	jobs := set.Processes()
	arrivals := set.SortedByArrival()

	remaining := make([]int, len(jobs))
	completionTime := make([]int, len(jobs))
	firstRunTime := make([]int, len(jobs))
	for i, job := range jobs {
		remaining[i] = job.BurstTime
		completionTime[i] = -1
		firstRunTime[i] = -1
	}

	readyQueue := make([]int, 0, len(jobs))
	admitted := 0
	admit := func(now int) {
		for admitted < len(arrivals) && arrivals[admitted].ArrivalTime <= now {
			readyQueue = append(readyQueue, arrivals[admitted].Id)
			admitted++
		}
	}

	currentTime := 0
	finishedCount := 0
	admit(currentTime)

	for finishedCount < len(jobs) {
		if len(readyQueue) == 0 {
			// cpu is idle until the next arrival
			currentTime = arrivals[admitted].ArrivalTime
			admit(currentTime)
			continue
		}

		pid := readyQueue[0]
		readyQueue = readyQueue[1:]
		if firstRunTime[pid] == -1 {
			firstRunTime[pid] = currentTime
		}

		slice := min(timeQuantum, remaining[pid])
		result.Timeline = result.Timeline.Append(pid, currentTime, currentTime+slice)
		remaining[pid] -= slice
		currentTime += slice

		admit(currentTime)

		if remaining[pid] > 0 {
			readyQueue = append(readyQueue, pid)
		} else {
			completionTime[pid] = currentTime
			finishedCount++
		}
	}

	for i, job := range jobs {
		result.add(job, firstRunTime[i], completionTime[i])
	}
	return result, nil
}
