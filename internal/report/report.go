// Package report renders simulation results for the console and for files.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"cpusched/internal/responses"
	"cpusched/internal/schedulers"
	"cpusched/internal/util"
)

var ErrUnknownFormat = errors.New("unknown report format")

type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, FormatTable, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Writer renders results in one format. Decimal separators follow the printer's locale.
type Writer struct {
	out     io.Writer
	format  Format
	printer *message.Printer
}

func NewWriter(out io.Writer, format Format, printer *message.Printer) *Writer {
	return &Writer{out: out, format: format, printer: printer}
}

func (w *Writer) Write(results []*schedulers.SimulationResult) error {
	switch w.format {
	case FormatText:
		return w.writeText(results)
	case FormatTable:
		return w.writeTables(results)
	case FormatJSON, FormatYAML:
		return w.writeEncoded(results)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, w.format)
}

// writeText prints one "<LABEL>: <turnaround> <response> <wait>" line per result.
func (w *Writer) writeText(results []*schedulers.SimulationResult) error {
	for _, result := range results {
		averages, err := result.Averages()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w.out, util.FormatAverages(w.printer, averages)); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeTables(results []*schedulers.SimulationResult) error {
	for _, result := range results {
		response, err := schedulers.GenerateResponse(result)
		if err != nil {
			return err
		}
		writeTitle(w.out, string(result.Algorithm))
		writeGantt(w.out, response)
		w.writeSchedule(response)
	}
	return nil
}

func (w *Writer) writeEncoded(results []*schedulers.SimulationResult) error {
	all := make([]responses.ScheduleResponse, 0, len(results))
	for _, result := range results {
		response, err := schedulers.GenerateResponse(result)
		if err != nil {
			return err
		}
		all = append(all, response)
	}

	if w.format == FormatYAML {
		enc := yaml.NewEncoder(w.out)
		enc.SetIndent(2)
		if err := enc.Encode(all); err != nil {
			return fmt.Errorf("encoding yaml report: %w", err)
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(all); err != nil {
		return fmt.Errorf("encoding json report: %w", err)
	}
	return nil
}

func writeTitle(w io.Writer, title string) {
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*4))
	_, _ = fmt.Fprintln(w, strings.Repeat(" ", len(title)*3/2), title)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", len(title)*4))
}

func writeGantt(w io.Writer, response responses.ScheduleResponse) {
	_, _ = fmt.Fprintln(w, "Gantt schedule")
	_, _ = fmt.Fprint(w, "|")
	for _, slice := range response.Timeline {
		pid := fmt.Sprint(slice.ProcessId)
		padding := strings.Repeat(" ", (8-len(pid))/2)
		_, _ = fmt.Fprint(w, padding, pid, padding, "|")
	}
	_, _ = fmt.Fprintln(w)
	for i, slice := range response.Timeline {
		_, _ = fmt.Fprint(w, slice.Start, "\t")
		if i == len(response.Timeline)-1 {
			_, _ = fmt.Fprint(w, slice.End)
		}
	}
	_, _ = fmt.Fprintf(w, "\n\n")
}

func (w *Writer) writeSchedule(response responses.ScheduleResponse) {
	_, _ = fmt.Fprintln(w.out, "Schedule table")
	table := tablewriter.NewWriter(w.out)
	table.SetHeader([]string{"ID", "Arrival", "Burst", "Response", "Wait", "Turnaround", "Exit"})
	for _, d := range response.Details {
		table.Append([]string{
			fmt.Sprint(d.ProcessId),
			fmt.Sprint(d.ArrivalTime),
			fmt.Sprint(d.BurstTime),
			fmt.Sprint(d.ResponseTime),
			fmt.Sprint(d.WaitingTime),
			fmt.Sprint(d.TurnAroundTime),
			fmt.Sprint(d.CompletionTime),
		})
	}
	table.SetFooter([]string{"", "", "",
		"Average\n" + util.FormatDecimal(w.printer, response.AverageResponseTime),
		"Average\n" + util.FormatDecimal(w.printer, response.AverageWaitingTime),
		"Average\n" + util.FormatDecimal(w.printer, response.AverageTurnAroundTime),
		fmt.Sprintf("Idle %d/%d", response.IdleTime, response.TotalTime),
	})
	table.Render()
	_, _ = fmt.Fprintln(w.out)
}
