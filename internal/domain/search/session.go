package search

import (
	"slices"

	"github.com/rpggio/coursegrid/internal/domain/lecture"
)

// Session is one open search over a catalog snapshot. It keeps the current
// options and the number of pages revealed, and recomputes the filtered list
// only after an option changes.
//
// A Session is not safe for concurrent use.
type Session struct {
	catalog  []lecture.Lecture
	pageSize int

	opts Options
	page int

	results []lecture.Lecture
	fresh   bool
	majors  []string
}

// NewSession opens a search over catalog. A pageSize of zero or less uses
// DefaultPageSize.
func NewSession(catalog []lecture.Lecture, pageSize int) *Session {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Session{catalog: catalog, pageSize: pageSize, page: 1}
}

// NewSessionAt opens a search seeded with the day and slot of a grid cell, the
// way clicking an empty cell starts a search. An unknown day or a slot
// outside the grid leaves that facet empty.
func NewSessionAt(catalog []lecture.Lecture, pageSize int, day string, slot int) *Session {
	s := NewSession(catalog, pageSize)
	if lecture.DayIndex(day) >= 0 {
		s.opts.Days = []string{day}
	}
	if slot >= 1 && slot <= lecture.SlotCount() {
		s.opts.Times = []int{slot}
	}
	return s
}

// Options returns a copy of the current options.
func (s *Session) Options() Options {
	return s.opts.clone()
}

// SetOptions replaces every facet at once.
func (s *Session) SetOptions(opts Options) {
	s.update(func(o *Options) { *o = opts.clone() })
}

func (s *Session) SetQuery(q string) { s.update(func(o *Options) { o.Query = q }) }
func (s *Session) SetCredits(c int) { s.update(func(o *Options) { o.Credits = c }) }
func (s *Session) SetGrades(g []int) { s.update(func(o *Options) { o.Grades = slices.Clone(g) }) }
func (s *Session) SetDays(d []string) { s.update(func(o *Options) { o.Days = slices.Clone(d) }) }
func (s *Session) SetTimes(t []int) { s.update(func(o *Options) { o.Times = slices.Clone(t) }) }
func (s *Session) SetMajors(m []string) { s.update(func(o *Options) { o.Majors = slices.Clone(m) }) }

// update applies change and returns the reader to the first page.
func (s *Session) update(change func(*Options)) {
	change(&s.opts)
	s.fresh = false
	s.page = 1
}

// Results returns the full filtered list for the current options.
func (s *Session) Results() []lecture.Lecture {
	if !s.fresh {
		s.results = Filter(s.catalog, s.opts)
		s.fresh = true
	}
	return s.results
}

// Total is the number of lectures matching the current options.
func (s *Session) Total() int {
	return len(s.Results())
}

// Page is the number of pages currently revealed.
func (s *Session) Page() int {
	return s.page
}

// LastPage is the page on which the final result appears.
func (s *Session) LastPage() int {
	return LastPage(s.Total(), s.pageSize)
}

// LoadMore reveals one more page, never past the last page, and returns the
// new page number.
func (s *Session) LoadMore() int {
	next := min(s.page+1, s.LastPage())
	s.page = max(next, 1)
	return s.page
}

// Visible returns every result revealed so far.
func (s *Session) Visible() []lecture.Lecture {
	return Visible(s.Results(), s.page, s.pageSize)
}

// Majors returns the distinct majors of the whole catalog, independent of the
// current options.
func (s *Session) Majors() []string {
	if s.majors == nil {
		s.majors = AllMajors(s.catalog)
	}
	return s.majors
}
