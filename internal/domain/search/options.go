package search

import "slices"

// Options holds the facets of one search. Every facet defaults to "no
// constraint": an empty query, zero credits, and nil sets.
type Options struct {
	Query   string   `json:"query,omitempty"`
	Credits int      `json:"credits,omitempty"`
	Grades  []int    `json:"grades,omitempty"`
	Days    []string `json:"days,omitempty"`
	Times   []int    `json:"times,omitempty"`
	Majors  []string `json:"majors,omitempty"`
}

// Choice is one selectable value of a facet control.
type Choice struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// CreditChoices lists the credits facet values.
var CreditChoices = []Choice{
	{ID: "1", Label: "1학점"},
	{ID: "2", Label: "2학점"},
	{ID: "3", Label: "3학점"},
	{ID: "4", Label: "4학점 이상"},
}

// GradeChoices lists the grade facet values.
var GradeChoices = []int{1, 2, 3, 4}

func (o Options) clone() Options {
	out := o
	out.Grades = slices.Clone(o.Grades)
	out.Days = slices.Clone(o.Days)
	out.Times = slices.Clone(o.Times)
	out.Majors = slices.Clone(o.Majors)
	return out
}
