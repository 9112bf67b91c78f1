// Package export renders timetables as spreadsheets and calendars.
package export

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rpggio/coursegrid/internal/domain/lecture"
	"github.com/rpggio/coursegrid/internal/domain/timetable"
)

var (
	// ErrInvalidTerm indicates a term whose end is not after its start.
	ErrInvalidTerm = errors.New("invalid term")
	// ErrGenerateFailed indicates the document could not be written.
	ErrGenerateFailed = errors.New("export generation failed")
)

// Table is one timetable to export.
type Table struct {
	ID        string
	Schedules []timetable.Schedule
}

// Term bounds the weeks a calendar export repeats over.
type Term struct {
	Start    time.Time
	End      time.Time
	Location *time.Location
}

// Validate checks that the term is usable for calendar export.
func (t Term) Validate() error {
	if t.Start.IsZero() || t.End.IsZero() || !t.End.After(t.Start) {
		return fmt.Errorf("%w: %s .. %s", ErrInvalidTerm, t.Start.Format(time.DateOnly), t.End.Format(time.DateOnly))
	}
	return nil
}

// Service exports timetables.
type Service struct {
	term   Term
	logger *slog.Logger
}

// NewService creates an export service for the given term.
func NewService(term Term, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if term.Location == nil {
		term.Location = time.Local
	}
	return &Service{term: term, logger: logger}
}

// Term returns the configured term.
func (s *Service) Term() Term {
	return s.term
}

// cellText is what a schedule shows inside a grid cell.
func cellText(sc timetable.Schedule) string {
	title := summary(sc.Lecture)
	if sc.Room == "" {
		return title
	}
	return title + " (" + sc.Room + ")"
}

func summary(lec *lecture.Lecture) string {
	if lec == nil {
		return ""
	}
	return lec.Title
}

// runs splits a slot range into maximal consecutive runs.
func runs(slots []int) [][]int {
	var out [][]int
	for i, s := range slots {
		if i == 0 || s != slots[i-1]+1 {
			out = append(out, []int{s})
			continue
		}
		out[len(out)-1] = append(out[len(out)-1], s)
	}
	return out
}

// slotBounds returns the clock start of the first slot and clock end of the
// last slot, as offsets from midnight.
func slotBounds(first, last int) (start, end time.Duration, err error) {
	startLabel, ok := lecture.SlotLabel(first)
	if !ok {
		return 0, 0, fmt.Errorf("slot %d outside grid", first)
	}
	endLabel, ok := lecture.SlotLabel(last)
	if !ok {
		return 0, 0, fmt.Errorf("slot %d outside grid", last)
	}
	if start, err = clock(startLabel[:5]); err != nil {
		return 0, 0, err
	}
	if end, err = clock(endLabel[len(endLabel)-5:]); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func clock(hhmm string) (time.Duration, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, fmt.Errorf("parsing slot time %q: %w", hhmm, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
