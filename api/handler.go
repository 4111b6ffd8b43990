package api

import (
	"bytes"
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"cpusched/config"
	"cpusched/internal/core"
	"cpusched/internal/loader"
	"cpusched/internal/metrics"
	"cpusched/internal/requests"
	"cpusched/internal/responses"
	"cpusched/internal/schedulers"
)

var ErrInvalidRequestFormat = errors.New("invalid request format")

type SchedulerHandler interface {
	FirstComeFirstServe(ctx *fiber.Ctx) error
	RoundRobin(ctx *fiber.Ctx) error
	ShortestJobFirst(ctx *fiber.Ctx) error
	AllAlgorithms(ctx *fiber.Ctx) error
	Upload(ctx *fiber.Ctx) error
}
type SchedulerHandlerImpl struct {
	config    *config.SchedulerConfig
	collector *metrics.Collector
}

func NewSchedulerHandlerImpl(config *config.SchedulerConfig, collector *metrics.Collector) *SchedulerHandlerImpl {
	return &SchedulerHandlerImpl{config: config, collector: collector}
}

// UploadResponse is returned for a raw process list; Skipped lists dropped lines.
type UploadResponse struct {
	Results []responses.ScheduleResponse `json:"results"`
	Skipped []string                     `json:"skipped"`
}

func (s *SchedulerHandlerImpl) FirstComeFirstServe(ctx *fiber.Ctx) error {
	return s.scheduleOne(ctx, schedulers.FirstComeFirstServe)
}

func (s *SchedulerHandlerImpl) RoundRobin(ctx *fiber.Ctx) error {
	return s.scheduleOne(ctx, schedulers.RoundRobin)
}

func (s *SchedulerHandlerImpl) ShortestJobFirst(ctx *fiber.Ctx) error {
	return s.scheduleOne(ctx, schedulers.ShortestJobFirst)
}

func (s *SchedulerHandlerImpl) AllAlgorithms(ctx *fiber.Ctx) error {
	request, set, err := s.parseRequest(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}
	results, err := schedulers.RunAll(set, s.timeQuantum(ctx))
	if err != nil {
		return badRequest(ctx, err)
	}
	all, err := s.generateResponses(results, request.ProcessIds())
	if err != nil {
		return badRequest(ctx, err)
	}
	return ctx.JSON(all)
}

// Upload accepts the same text format as the process list file.
func (s *SchedulerHandlerImpl) Upload(ctx *fiber.Ctx) error {
	parsed, err := loader.Parse(bytes.NewReader(ctx.Body()))
	if err != nil {
		return badRequest(ctx, err)
	}
	s.collector.RecordMalformed(len(parsed.Skipped))
	set, err := parsed.ProcessSet()
	if err != nil {
		return badRequest(ctx, err)
	}
	results, err := schedulers.RunAll(set, s.timeQuantum(ctx))
	if err != nil {
		return badRequest(ctx, err)
	}
	all, err := s.generateResponses(results, nil)
	if err != nil {
		return badRequest(ctx, err)
	}
	skipped := make([]string, 0, len(parsed.Skipped))
	for _, record := range parsed.Skipped {
		skipped = append(skipped, record.Error())
	}
	return ctx.JSON(UploadResponse{Results: all, Skipped: skipped})
}

func (s *SchedulerHandlerImpl) scheduleOne(ctx *fiber.Ctx, algorithm schedulers.Algorithm) error {
	request, set, err := s.parseRequest(ctx)
	if err != nil {
		return badRequest(ctx, err)
	}
	result, err := schedulers.Schedule(set, algorithm, s.timeQuantum(ctx))
	if err != nil {
		return badRequest(ctx, err)
	}
	all, err := s.generateResponses([]*schedulers.SimulationResult{result}, request.ProcessIds())
	if err != nil {
		return badRequest(ctx, err)
	}
	return ctx.JSON(all[0])
}

func (s *SchedulerHandlerImpl) parseRequest(ctx *fiber.Ctx) (*requests.ScheduleRequests, *core.ProcessSet, error) {
	request := new(requests.ScheduleRequests)
	if err := ctx.BodyParser(request); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidRequestFormat, err)
	}
	set, err := request.ProcessSet()
	if err != nil {
		return nil, nil, err
	}
	return request, set, nil
}

func (s *SchedulerHandlerImpl) timeQuantum(ctx *fiber.Ctx) int {
	return ctx.QueryInt("quantum", s.config.RoundRobinTimeQuantum)
}

// generateResponses builds the wire responses and, when ids is set, swaps the
// positional process ids for the ones the caller sent.
func (s *SchedulerHandlerImpl) generateResponses(results []*schedulers.SimulationResult, ids []int) ([]responses.ScheduleResponse, error) {
	all := make([]responses.ScheduleResponse, 0, len(results))
	for _, result := range results {
		averages, err := result.Averages()
		if err != nil {
			return nil, err
		}
		s.collector.RecordSimulation(averages, len(result.Processes))

		response, err := schedulers.GenerateResponse(result)
		if err != nil {
			return nil, err
		}
		if ids != nil {
			for i := range response.Details {
				response.Details[i].ProcessId = ids[response.Details[i].ProcessId]
			}
			timeline := make(core.Timeline, len(response.Timeline))
			for i, slice := range response.Timeline {
				slice.ProcessId = ids[slice.ProcessId]
				timeline[i] = slice
			}
			response.Timeline = timeline
		}
		all = append(all, response)
	}
	return all, nil
}

func badRequest(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusBadRequest
	if errors.Is(err, core.ErrEmptyProcessSet) {
		status = fiber.StatusUnprocessableEntity
	}
	log.Println("rejecting request:", err)
	return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
}
