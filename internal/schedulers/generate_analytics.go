package schedulers

import (
	"cpusched/internal/responses"
)

// GenerateResponse folds a run into the wire shape: per-process details,
// averages and CPU usage over the timeline.
func GenerateResponse(result *SimulationResult) (responses.ScheduleResponse, error) {
	averages, err := result.Averages()
	if err != nil {
		return responses.ScheduleResponse{}, err
	}
	cpuMetric := result.Timeline.Metric(result.Origin)

	return responses.ScheduleResponse{
		Algorithm:             string(result.Algorithm),
		TotalTime:             cpuMetric.TotalTime,
		IdleTime:              cpuMetric.IdleTime,
		CpuUtilization:        cpuMetric.Utilization(),
		CpuThroughput:         cpuMetric.Throughput(len(result.Processes)),
		AverageWaitingTime:    averages.WaitingTime,
		AverageResponseTime:   averages.ResponseTime,
		AverageTurnAroundTime: averages.TurnAroundTime,
		Details:               generateProcessDetails(result),
		Timeline:              result.Timeline,
	}, nil
}

func generateProcessDetails(result *SimulationResult) []responses.ProcessResponse {
	details := make([]responses.ProcessResponse, 0, len(result.Processes))
	for i, process := range result.Processes {
		details = append(details, responses.ProcessResponse{
			ProcessId:      process.Id,
			ArrivalTime:    process.ArrivalTime,
			BurstTime:      process.BurstTime,
			CompletionTime: result.CompletionTime[i],
			ResponseTime:   result.ResponseTime[i],
			TurnAroundTime: result.TurnAroundTime[i],
			WaitingTime:    result.WaitingTime[i],
		})
	}
	return details
}
