package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"cpusched/internal/core"
)

var ErrSourceUnavailable = errors.New("process list source unavailable")

// MalformedRecordError describes an input line that was skipped.
type MalformedRecordError struct {
	Line   int
	Text   string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	text := e.Text
	if len(text) > maxQuotedText {
		text = text[:maxQuotedText] + "..."
	}
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, text)
}

// maxQuotedText bounds how much of a bad line ends up in a diagnostic.
const maxQuotedText = 80

// Result is a parsed process list plus the records dropped along the way.
type Result struct {
	Processes []core.Process
	Skipped   []*MalformedRecordError
}

// ProcessSet validates the parsed records as a set. An input without any valid
// record yields core.ErrEmptyProcessSet.
func (r *Result) ProcessSet() (*core.ProcessSet, error) {
	return core.NewProcessSet(r.Processes)
}

// Parse reads one "<arrival> <burst>" pair per line. Bad lines are logged and
// skipped; blank lines are ignored. Lines have no length limit. Only read
// errors are returned.
func Parse(r io.Reader) (*Result, error) {
	result := &Result{}
	reader := bufio.NewReader(r)
	lineNumber := 0
	for {
		text, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, fmt.Errorf("reading process list: %w", readErr)
		}
		if readErr == io.EOF && text == "" {
			break
		}
		lineNumber++
		if strings.TrimSpace(text) != "" {
			result.add(lineNumber, strings.TrimRight(text, "\r\n"))
		}
		if readErr == io.EOF {
			break
		}
	}
	return result, nil
}

func (r *Result) add(lineNumber int, text string) {
	process, err := parseRecord(lineNumber, text)
	if err != nil {
		log.Printf("skipping malformed record: %v", err)
		r.Skipped = append(r.Skipped, err)
		return
	}
	process.Id = len(r.Processes)
	r.Processes = append(r.Processes, process)
}

func parseRecord(lineNumber int, text string) (core.Process, *MalformedRecordError) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return core.Process{}, &MalformedRecordError{Line: lineNumber, Text: text,
			Reason: fmt.Sprintf("expected 2 fields, got %d", len(fields))}
	}
	arrival, err := strconv.Atoi(fields[0])
	if err != nil {
		return core.Process{}, &MalformedRecordError{Line: lineNumber, Text: text, Reason: "arrival time is not an integer"}
	}
	burst, err := strconv.Atoi(fields[1])
	if err != nil {
		return core.Process{}, &MalformedRecordError{Line: lineNumber, Text: text, Reason: "burst time is not an integer"}
	}
	process := core.Process{ArrivalTime: arrival, BurstTime: burst}
	if err := process.Validate(); err != nil {
		return core.Process{}, &MalformedRecordError{Line: lineNumber, Text: text, Reason: err.Error()}
	}
	return process, nil
}

// ParseFile opens path and parses it. Open failures wrap ErrSourceUnavailable.
func ParseFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()
	return Parse(f)
}
