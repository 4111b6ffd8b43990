package schedulers

import (
	"errors"
	"fmt"
	"strings"

	"cpusched/internal/core"
	"cpusched/internal/util"
)

var (
	ErrInvalidTimeQuantum = errors.New("time quantum must be positive")
	ErrUnknownAlgorithm   = errors.New("unknown scheduling algorithm")
)

type Algorithm string

const (
	FirstComeFirstServe Algorithm = "FCFS"
	ShortestJobFirst    Algorithm = "SJF"
	RoundRobin          Algorithm = "RR"
)

// DefaultTimeQuantum is the round robin slice used when nothing else is configured.
const DefaultTimeQuantum = 2

// Algorithms lists every policy in report order.
var Algorithms = []Algorithm{FirstComeFirstServe, ShortestJobFirst, RoundRobin}

func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "FCFS":
		return FirstComeFirstServe, nil
	case "SJF":
		return ShortestJobFirst, nil
	case "RR":
		return RoundRobin, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// SimulationResult holds one run's per-process vectors. Entry i of every vector
// describes Processes[i]: processing order for FCFS and SJF, input order for RR.
type SimulationResult struct {
	Algorithm      Algorithm
	Processes      []core.Process
	ResponseTime   []int
	WaitingTime    []int
	TurnAroundTime []int
	CompletionTime []int
	Timeline       core.Timeline
	// Origin is the first arrival; CPU totals are measured from it.
	Origin int
}

func newSimulationResult(algorithm Algorithm, set *core.ProcessSet) *SimulationResult {
	n := set.Len()
	return &SimulationResult{
		Algorithm:      algorithm,
		Processes:      make([]core.Process, 0, n),
		ResponseTime:   make([]int, 0, n),
		WaitingTime:    make([]int, 0, n),
		TurnAroundTime: make([]int, 0, n),
		CompletionTime: make([]int, 0, n),
		Timeline:       make(core.Timeline, 0, n),
		Origin:         set.FirstArrival(),
	}
}

func (r *SimulationResult) add(process core.Process, firstRunTime, completionTime int) {
	turnAroundTime := completionTime - process.ArrivalTime
	r.Processes = append(r.Processes, process)
	r.ResponseTime = append(r.ResponseTime, firstRunTime-process.ArrivalTime)
	r.TurnAroundTime = append(r.TurnAroundTime, turnAroundTime)
	r.WaitingTime = append(r.WaitingTime, turnAroundTime-process.BurstTime)
	r.CompletionTime = append(r.CompletionTime, completionTime)
}

func (r *SimulationResult) Averages() (util.Averages, error) {
	return util.CalculateAverage(string(r.Algorithm), r.ResponseTime, r.WaitingTime, r.TurnAroundTime)
}

// Schedule runs a single algorithm. timeQuantum is only read by round robin.
func Schedule(set *core.ProcessSet, algorithm Algorithm, timeQuantum int) (*SimulationResult, error) {
	if set == nil || set.Len() == 0 {
		return nil, core.ErrEmptyProcessSet
	}
	switch algorithm {
	case FirstComeFirstServe:
		return ScheduleFirstComeFirstServe(set), nil
	case ShortestJobFirst:
		return ScheduleShortestJobFirst(set), nil
	case RoundRobin:
		return ScheduleRoundRobin(set, timeQuantum)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
}

// RunAll runs the selected algorithms (all of them when none are given) one after
// another in report order. Each run owns its result.
func RunAll(set *core.ProcessSet, timeQuantum int, selected ...Algorithm) ([]*SimulationResult, error) {
	want := make(map[Algorithm]bool, len(selected))
	for _, algorithm := range selected {
		parsed, err := ParseAlgorithm(string(algorithm))
		if err != nil {
			return nil, err
		}
		want[parsed] = true
	}

	results := make([]*SimulationResult, 0, len(Algorithms))
	for _, algorithm := range Algorithms {
		if len(want) > 0 && !want[algorithm] {
			continue
		}
		result, err := Schedule(set, algorithm, timeQuantum)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}
