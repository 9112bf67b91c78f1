package search

import "github.com/rpggio/coursegrid/internal/domain/lecture"

// DefaultPageSize is the number of results revealed per page.
const DefaultPageSize = 100

// LastPage returns the number of pages needed for total results.
func LastPage(total, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if total <= 0 {
		return 0
	}
	size = min(size, total)
	return (total + size - 1) / size
}

// Visible returns the first page*size results: everything revealed once the
// reader has scrolled to page.
func Visible(results []lecture.Lecture, page, size int) []lecture.Lecture {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	if page >= LastPage(len(results), size) {
		return results
	}
	return results[:page*size]
}

// PageOf returns only the results on page (1-based).
func PageOf(results []lecture.Lecture, page, size int) []lecture.Lecture {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	if page > LastPage(len(results), size) {
		return []lecture.Lecture{}
	}
	start := (page - 1) * size
	return results[start : start+min(size, len(results)-start)]
}
