package export

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"
)

var weekdays = map[string]rrule.Weekday{
	"월": rrule.MO,
	"화": rrule.TU,
	"수": rrule.WE,
	"목": rrule.TH,
	"금": rrule.FR,
	"토": rrule.SA,
}

// ICS writes a calendar with one weekly recurring event per consecutive run
// of slots, repeating from the first matching day of the term until its last
// day. Entries whose weekday never falls inside the term are left out.
func (s *Service) ICS(tables []Table) ([]byte, error) {
	if err := s.term.Validate(); err != nil {
		return nil, err
	}
	loc := s.term.Location
	termStart := dateIn(s.term.Start, loc)
	until := dateIn(s.term.End, loc).Add(24*time.Hour - time.Second)

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//coursegrid//timetable//KO")
	cal.SetXWRCalName("시간표")
	cal.SetXWRTimezone(loc.String())

	stamp := time.Now().UTC()
	events := 0
	for _, tbl := range tables {
		for i, sc := range tbl.Schedules {
			wd, ok := weekdays[sc.Day]
			if !ok {
				continue
			}
			for j, run := range runs(sc.Range) {
				start, end, err := slotBounds(run[0], run[len(run)-1])
				if err != nil {
					s.logger.Warn("skipping schedule outside grid", "table_id", tbl.ID, "index", i, "error", err)
					continue
				}
				rule, err := rrule.NewRRule(rrule.ROption{
					Freq:      rrule.WEEKLY,
					Byweekday: []rrule.Weekday{wd},
					Dtstart:   termStart.Add(start),
					Until:     until,
				})
				if err != nil {
					return nil, fmt.Errorf("%w: recurrence: %w", ErrGenerateFailed, err)
				}
				first := rule.After(termStart, true)
				if first.IsZero() {
					continue
				}

				ev := cal.AddEvent(fmt.Sprintf("%s-%d-%d@coursegrid", tbl.ID, i, j))
				ev.SetDtStampTime(stamp)
				ev.SetStartAt(first)
				ev.SetEndAt(first.Add(end - start))
				ev.SetSummary(summary(sc.Lecture))
				if sc.Room != "" {
					ev.SetLocation(sc.Room)
				}
				if sc.Lecture != nil {
					ev.SetDescription(fmt.Sprintf("%s · %s학점 · %d학년", sc.Lecture.ID, sc.Lecture.Credits, sc.Lecture.Grade))
				}
				ev.AddProperty(ical.ComponentPropertyRrule, rule.OrigOptions.RRuleString())
				events++
			}
		}
	}

	s.logger.Info("ics exported", "tables", len(tables), "events", events)
	return []byte(cal.Serialize()), nil
}

func dateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
