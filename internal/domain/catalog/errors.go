package catalog

import "errors"

var (
	// ErrFetchFailed indicates a partition read failed; the loader stays empty.
	ErrFetchFailed = errors.New("catalog fetch failed")
	// ErrLectureNotFound indicates no lecture with the given id is in the catalog.
	ErrLectureNotFound = errors.New("lecture not found")
	// ErrNoPartitions indicates the loader was built without partitions.
	ErrNoPartitions = errors.New("no catalog partitions configured")
)
