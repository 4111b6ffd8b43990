package core

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	ErrEmptyProcessSet = errors.New("process set is empty")
	ErrInvalidProcess  = errors.New("invalid process")
	ErrTimeOverflow    = errors.New("simulated time would overflow")
)

// Process is a single job known in advance. Its Id is the position in the input.
type Process struct {
	Id          int `json:"process_id" yaml:"process_id"`
	ArrivalTime int `json:"arrival_time" yaml:"arrival_time"`
	BurstTime   int `json:"burst_time" yaml:"burst_time"`
}

func (p Process) Validate() error {
	if p.ArrivalTime < 0 {
		return fmt.Errorf("%w: arrival time %d is negative", ErrInvalidProcess, p.ArrivalTime)
	}
	if p.BurstTime <= 0 {
		return fmt.Errorf("%w: burst time %d must be positive", ErrInvalidProcess, p.BurstTime)
	}
	if p.ArrivalTime > math.MaxInt-p.BurstTime {
		return fmt.Errorf("%w: %w: arrival %d + burst %d", ErrInvalidProcess, ErrTimeOverflow, p.ArrivalTime, p.BurstTime)
	}
	return nil
}

// ProcessSet is the read-only input shared by every scheduler.
type ProcessSet struct {
	processes []Process
}

// NewProcessSet builds a set from (arrival, burst) pairs in input order.
// Ids are reassigned to the 0-based position of each pair.
func NewProcessSet(processes []Process) (*ProcessSet, error) {
	if len(processes) == 0 {
		return nil, ErrEmptyProcessSet
	}
	set := &ProcessSet{processes: make([]Process, len(processes))}
	latestArrival, totalBurst := 0, 0
	for i, p := range processes {
		p.Id = i
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("process %d: %w", i, err)
		}
		if totalBurst > math.MaxInt-p.BurstTime {
			return nil, fmt.Errorf("%w: total burst time", ErrTimeOverflow)
		}
		totalBurst += p.BurstTime
		latestArrival = max(latestArrival, p.ArrivalTime)
		set.processes[i] = p
	}
	// every completion happens no later than the last arrival plus all the work
	if latestArrival > math.MaxInt-totalBurst {
		return nil, fmt.Errorf("%w: latest arrival %d + total burst %d", ErrTimeOverflow, latestArrival, totalBurst)
	}
	return set, nil
}

func (s *ProcessSet) Len() int {
	return len(s.processes)
}

func (s *ProcessSet) At(i int) Process {
	return s.processes[i]
}

// Processes returns a copy in input order.
func (s *ProcessSet) Processes() []Process {
	out := make([]Process, len(s.processes))
	copy(out, s.processes)
	return out
}

// SortedByArrival returns a copy ordered by arrival time. Equal arrivals keep input order.
func (s *ProcessSet) SortedByArrival() []Process {
	out := s.Processes()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ArrivalTime < out[j].ArrivalTime
	})
	return out
}

func (s *ProcessSet) TotalBurstTime() int {
	total := 0
	for _, p := range s.processes {
		total += p.BurstTime
	}
	return total
}

func (s *ProcessSet) FirstArrival() int {
	first := s.processes[0].ArrivalTime
	for _, p := range s.processes[1:] {
		if p.ArrivalTime < first {
			first = p.ArrivalTime
		}
	}
	return first
}
