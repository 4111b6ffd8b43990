package requests

import "cpusched/internal/core"

type Job struct {
	ProcessId   int `json:"process_id"`
	ArrivalTime int `json:"arrival_time"`
	BurstTime   int `json:"burst_time"`
}
type ScheduleRequests struct {
	Jobs []Job `json:"jobs"`
}

// ProcessSet converts the jobs in request order. Scheduling identity is the
// position in Jobs; ProcessIds returns the caller supplied ids for echoing back.
func (r *ScheduleRequests) ProcessSet() (*core.ProcessSet, error) {
	processes := make([]core.Process, 0, len(r.Jobs))
	for _, job := range r.Jobs {
		processes = append(processes, core.Process{
			ArrivalTime: job.ArrivalTime,
			BurstTime:   job.BurstTime,
		})
	}
	return core.NewProcessSet(processes)
}

func (r *ScheduleRequests) ProcessIds() []int {
	ids := make([]int, len(r.Jobs))
	for i, job := range r.Jobs {
		ids[i] = job.ProcessId
	}
	return ids
}
