package search_test

import (
	"testing"

	"github.com/rpggio/coursegrid/internal/domain/lecture"
	"github.com/rpggio/coursegrid/internal/domain/search"
	"github.com/stretchr/testify/require"
)

var testCatalog = []lecture.Lecture{
	{ID: "CS101", Title: "Intro to Programming", Grade: 1, Credits: "3", Major: "컴퓨터공학과", Schedule: "월1~3(F207)<p>수4"},
	{ID: "CS301", Title: "Operating Systems", Grade: 3, Credits: "3", Major: "컴퓨터공학과", Schedule: "화4~6(F208)"},
	{ID: "MA201", Title: "Linear Algebra", Grade: 2, Credits: "30", Major: "수학과", Schedule: "목1,3,5"},
	{ID: "GE100", Title: "글쓰기", Grade: 1, Credits: "2", Major: "교양<p>기초", Schedule: ""},
	{ID: "EE310", Title: "Signals", Grade: 3, Credits: "4", Major: "전자공학과", Schedule: "월3(A101)<p>금7~8"},
}

func ids(lectures []lecture.Lecture) []string {
	out := make([]string, 0, len(lectures))
	for _, l := range lectures {
		out = append(out, l.ID)
	}
	return out
}

func TestFilter_EmptyOptionsReturnsCatalog(t *testing.T) {
	require.Equal(t, testCatalog, search.Filter(testCatalog, search.Options{}))
}

func TestFilter_Facets(t *testing.T) {
	tests := []struct {
		name string
		opts search.Options
		want []string
	}{
		{name: "grade", opts: search.Options{Grades: []int{3}}, want: []string{"CS301", "EE310"}},
		{name: "grades any of", opts: search.Options{Grades: []int{1, 2}}, want: []string{"CS101", "MA201", "GE100"}},
		{name: "credits prefix", opts: search.Options{Credits: 3}, want: []string{"CS101", "CS301", "MA201"}},
		{name: "query title case insensitive", opts: search.Options{Query: "systems"}, want: []string{"CS301"}},
		{name: "query id", opts: search.Options{Query: "ma2"}, want: []string{"MA201"}},
		{name: "query korean", opts: search.Options{Query: "글"}, want: []string{"GE100"}},
		{name: "major exact", opts: search.Options{Majors: []string{"수학과", "교양<p>기초"}}, want: []string{"MA201", "GE100"}},
		{name: "major partial is no match", opts: search.Options{Majors: []string{"교양"}}, want: []string{}},
		{name: "day", opts: search.Options{Days: []string{"월"}}, want: []string{"CS101", "EE310"}},
		{name: "day any of", opts: search.Options{Days: []string{"수", "목"}}, want: []string{"CS101", "MA201"}},
		{name: "time", opts: search.Options{Times: []int{3}}, want: []string{"CS101", "MA201", "EE310"}},
		{name: "time skipped in enumeration", opts: search.Options{Times: []int{4}}, want: []string{"CS101", "CS301"}},
		{name: "day and time across entries", opts: search.Options{Days: []string{"금"}, Times: []int{3}}, want: []string{"EE310"}},
		{name: "and across facets", opts: search.Options{Grades: []int{3}, Credits: 4}, want: []string{"EE310"}},
		{name: "no match", opts: search.Options{Query: "nothing like this"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ids(search.Filter(testCatalog, tt.opts)))
		})
	}
}

func TestFilter_CreditsMatchesPrefix(t *testing.T) {
	catalog := []lecture.Lecture{
		{ID: "a", Credits: "3"},
		{ID: "b", Credits: "30"},
		{ID: "c", Credits: "2"},
	}
	require.Equal(t, []string{"a", "b"}, ids(search.Filter(catalog, search.Options{Credits: 3})))
}

func TestFilter_EmptyScheduleOnlyExcludedByDayAndTime(t *testing.T) {
	require.Contains(t, ids(search.Filter(testCatalog, search.Options{Grades: []int{1}})), "GE100")
	require.NotContains(t, ids(search.Filter(testCatalog, search.Options{Days: lecture.Days()})), "GE100")
}

func TestFilter_DoesNotMutateInputs(t *testing.T) {
	catalog := append([]lecture.Lecture(nil), testCatalog...)
	opts := search.Options{Grades: []int{3, 1}, Days: []string{"월"}}

	out := search.Filter(catalog, opts)
	require.NotEmpty(t, out)
	out[0].Title = "changed"

	require.Equal(t, testCatalog, catalog)
	require.Equal(t, []int{3, 1}, opts.Grades)
}

func TestMatch(t *testing.T) {
	require.True(t, search.Match(testCatalog[0], search.Options{Days: []string{"수"}}))
	require.False(t, search.Match(testCatalog[0], search.Options{Days: []string{"금"}}))
}

func TestAllMajors(t *testing.T) {
	require.Equal(t,
		[]string{"컴퓨터공학과", "수학과", "교양<p>기초", "전자공학과"},
		search.AllMajors(testCatalog))
	require.Empty(t, search.AllMajors(nil))
}

func TestMajorLabelAndTag(t *testing.T) {
	require.Equal(t, "교양 기초", search.MajorLabel("교양<p>기초"))
	require.Equal(t, "기초", search.MajorTag("교양<p>기초"))
	require.Equal(t, "수학과", search.MajorTag("수학과"))
}
