package core

// Slice is one uninterrupted stretch of CPU time given to a process.
type Slice struct {
	ProcessId int `json:"process_id" yaml:"process_id"`
	Start     int `json:"start" yaml:"start"`
	End       int `json:"end" yaml:"end"`
}

func (s Slice) Length() int {
	return s.End - s.Start
}

// Timeline is the ordered list of slices executed by the single CPU.
type Timeline []Slice

// Append records a run of the given process, merging it with the previous slice
// when the same process simply keeps the CPU.
func (t Timeline) Append(processId, start, end int) Timeline {
	if n := len(t); n > 0 && t[n-1].ProcessId == processId && t[n-1].End == start {
		t[n-1].End = end
		return t
	}
	return append(t, Slice{ProcessId: processId, Start: start, End: end})
}

type CpuMetric struct {
	TotalTime       int `json:"total_time" yaml:"total_time"`
	UtilizationTime int `json:"utilization_time" yaml:"utilization_time"`
	IdleTime        int `json:"idle_time" yaml:"idle_time"`
}

// Utilization is the busy share of TotalTime, 0 for an empty timeline.
func (m CpuMetric) Utilization() float64 {
	if m.TotalTime == 0 {
		return 0
	}
	return float64(m.UtilizationTime) / float64(m.TotalTime)
}

func (m CpuMetric) Throughput(processCount int) float64 {
	if m.TotalTime == 0 {
		return 0
	}
	return float64(processCount) / float64(m.TotalTime)
}

// Metric measures the timeline from origin (normally the first arrival) to the end
// of the last slice.
func (t Timeline) Metric(origin int) CpuMetric {
	if len(t) == 0 {
		return CpuMetric{}
	}
	var busy int
	for _, s := range t {
		busy += s.Length()
	}
	total := t[len(t)-1].End - origin
	return CpuMetric{
		TotalTime:       total,
		UtilizationTime: busy,
		IdleTime:        total - busy,
	}
}
