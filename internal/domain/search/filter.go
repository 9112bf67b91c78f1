package search

import (
	"strconv"
	"strings"

	"github.com/rpggio/coursegrid/internal/domain/lecture"
)

// Filter returns the lectures that satisfy every non-empty facet of opts, in
// catalog order. Within a facet any one allowed value is enough. Neither input
// is modified.
//
// The credits facet is a prefix match on the credits string, so 3 also
// matches "30".
func Filter(catalog []lecture.Lecture, opts Options) []lecture.Lecture {
	f := newFacets(opts)
	out := make([]lecture.Lecture, 0, len(catalog))
	for _, lec := range catalog {
		if f.match(lec) {
			out = append(out, lec)
		}
	}
	return out
}

// Match reports whether a single lecture passes opts.
func Match(lec lecture.Lecture, opts Options) bool {
	return newFacets(opts).match(lec)
}

// AllMajors returns the distinct majors of the full catalog in first-seen
// order.
func AllMajors(catalog []lecture.Lecture) []string {
	seen := make(map[string]struct{})
	var majors []string
	for _, lec := range catalog {
		if _, ok := seen[lec.Major]; ok {
			continue
		}
		seen[lec.Major] = struct{}{}
		majors = append(majors, lec.Major)
	}
	return majors
}

// MajorLabel renders a major for a selection list, turning embedded
// separators into spaces.
func MajorLabel(major string) string {
	return strings.ReplaceAll(major, lecture.TokenSeparator, " ")
}

// MajorTag returns the short form of a major: the text after the last
// separator.
func MajorTag(major string) string {
	if i := strings.LastIndex(major, lecture.TokenSeparator); i >= 0 {
		return major[i+len(lecture.TokenSeparator):]
	}
	return major
}

type facets struct {
	query   string
	credits string
	grades  map[int]struct{}
	majors  map[string]struct{}
	days    map[string]struct{}
	times   map[int]struct{}
}

func newFacets(opts Options) facets {
	f := facets{
		query:  strings.ToLower(opts.Query),
		grades: setOf(opts.Grades),
		majors: setOf(opts.Majors),
		days:   setOf(opts.Days),
		times:  setOf(opts.Times),
	}
	if opts.Credits != 0 {
		f.credits = strconv.Itoa(opts.Credits)
	}
	return f
}

func (f facets) match(lec lecture.Lecture) bool {
	if f.query != "" &&
		!strings.Contains(strings.ToLower(lec.Title), f.query) &&
		!strings.Contains(strings.ToLower(lec.ID), f.query) {
		return false
	}
	if len(f.grades) > 0 {
		if _, ok := f.grades[lec.Grade]; !ok {
			return false
		}
	}
	if len(f.majors) > 0 {
		if _, ok := f.majors[lec.Major]; !ok {
			return false
		}
	}
	if f.credits != "" && !strings.HasPrefix(lec.Credits, f.credits) {
		return false
	}
	if len(f.days) == 0 && len(f.times) == 0 {
		return true
	}

	entries := lecture.Parse(lec.Schedule)
	if len(f.days) > 0 && !anyEntry(entries, func(e lecture.ScheduleEntry) bool {
		_, ok := f.days[e.Day]
		return ok
	}) {
		return false
	}
	if len(f.times) > 0 && !anyEntry(entries, func(e lecture.ScheduleEntry) bool {
		for _, slot := range e.Range {
			if _, ok := f.times[slot]; ok {
				return true
			}
		}
		return false
	}) {
		return false
	}
	return true
}

func anyEntry(entries []lecture.ScheduleEntry, pred func(lecture.ScheduleEntry) bool) bool {
	for _, e := range entries {
		if pred(e) {
			return true
		}
	}
	return false
}

func setOf[T comparable](values []T) map[T]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[T]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
