package schedulers

import (
	"log"

	"cpusched/internal/core"
)

// ScheduleShortestJobFirst is non-preemptive: at every decision point the arrived,
// unfinished job with the smallest burst runs to completion. Equal bursts go to
// the lowest input index.
func ScheduleShortestJobFirst(set *core.ProcessSet) *SimulationResult {
	log.Println("running sjf algorithm ...")
	result := newSimulationResult(ShortestJobFirst, set)

	jobs := set.Processes()
	finished := make([]bool, len(jobs))
	finishedCount := 0
	currentTime := 0

	for finishedCount < len(jobs) {
		shortest := pickShortestJob(jobs, finished, currentTime)
		if shortest == -1 {
			// nothing has arrived; jump to the next arrival instead of polling
			currentTime = nextArrival(jobs, finished)
			continue
		}

		job := jobs[shortest]
		completionTime := currentTime + job.BurstTime
		result.Timeline = result.Timeline.Append(job.Id, currentTime, completionTime)
		result.add(job, currentTime, completionTime)

		finished[shortest] = true
		finishedCount++
		currentTime = completionTime
	}
	return result
}

func pickShortestJob(jobs []core.Process, finished []bool, currentTime int) int {
	shortest := -1
	for i, job := range jobs {
		if finished[i] || job.ArrivalTime > currentTime {
			continue
		}
		if shortest == -1 || job.BurstTime < jobs[shortest].BurstTime {
			shortest = i
		}
	}
	return shortest
}

func nextArrival(jobs []core.Process, finished []bool) int {
	next := -1
	for i, job := range jobs {
		if finished[i] {
			continue
		}
		if next == -1 || job.ArrivalTime < next {
			next = job.ArrivalTime
		}
	}
	return next
}
