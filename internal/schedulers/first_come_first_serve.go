package schedulers

import (
	"log"

	"cpusched/internal/core"
)

// ScheduleFirstComeFirstServe runs jobs to completion in arrival order, keeping
// input order among equal arrivals. The CPU idles across gaps between jobs.
func ScheduleFirstComeFirstServe(set *core.ProcessSet) *SimulationResult {
	log.Println("running fcfs algorithm ...")
	result := newSimulationResult(FirstComeFirstServe, set)

	// sort jobs by arrival time
	jobs := set.SortedByArrival()

	currentTime := jobs[0].ArrivalTime
	for _, job := range jobs {
		if job.ArrivalTime > currentTime {
			currentTime = job.ArrivalTime
		}
		completionTime := currentTime + job.BurstTime
		result.Timeline = result.Timeline.Append(job.Id, currentTime, completionTime)
		result.add(job, currentTime, completionTime)
		currentTime = completionTime
	}
	return result
}
