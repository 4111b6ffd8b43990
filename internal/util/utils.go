package util

import (
	"errors"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	ErrNoSamples      = errors.New("no samples to average")
	ErrLengthMismatch = errors.New("metric vectors differ in length")
)

// Averages holds the per-algorithm means in report order.
type Averages struct {
	Algorithm      string  `json:"algorithm" yaml:"algorithm"`
	TurnAroundTime float64 `json:"turn_around_time" yaml:"turn_around_time"`
	ResponseTime   float64 `json:"response_time" yaml:"response_time"`
	WaitingTime    float64 `json:"waiting_time" yaml:"waiting_time"`
}

// CalculateAverage returns the arithmetic mean of each vector. The inputs are not modified.
func CalculateAverage(algorithm string, responseTime, waitingTime, turnAroundTime []int) (Averages, error) {
	processCount := len(responseTime)
	if processCount == 0 {
		return Averages{}, fmt.Errorf("%s: %w", algorithm, ErrNoSamples)
	}
	if len(waitingTime) != processCount || len(turnAroundTime) != processCount {
		return Averages{}, fmt.Errorf("%s: %w: response=%d waiting=%d turnaround=%d",
			algorithm, ErrLengthMismatch, processCount, len(waitingTime), len(turnAroundTime))
	}

	var responseTimeSum, waitingTimeSum, turnAroundTimeSum int
	for i := 0; i < processCount; i++ {
		responseTimeSum += responseTime[i]
		waitingTimeSum += waitingTime[i]
		turnAroundTimeSum += turnAroundTime[i]
	}

	count := float64(processCount)
	return Averages{
		Algorithm:      algorithm,
		TurnAroundTime: float64(turnAroundTimeSum) / count,
		ResponseTime:   float64(responseTimeSum) / count,
		WaitingTime:    float64(waitingTimeSum) / count,
	}, nil
}

// NewPrinter returns a printer for the BCP-47 tag, e.g. "en" or "pt-BR".
func NewPrinter(locale string) (*message.Printer, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("locale %q: %w", locale, err)
	}
	return message.NewPrinter(tag), nil
}

// FormatDecimal renders v with exactly one fractional digit and the locale's
// decimal separator, without digit grouping.
func FormatDecimal(p *message.Printer, v float64) string {
	return p.Sprintf("%v", number.Decimal(v,
		number.MinFractionDigits(1),
		number.MaxFractionDigits(1),
		number.NoSeparator(),
	))
}

// FormatAverages renders "<LABEL>: <turnaround> <response> <wait>".
func FormatAverages(p *message.Printer, a Averages) string {
	return fmt.Sprintf("%s: %s %s %s",
		a.Algorithm,
		FormatDecimal(p, a.TurnAroundTime),
		FormatDecimal(p, a.ResponseTime),
		FormatDecimal(p, a.WaitingTime),
	)
}
