package catalog

// Partition names one independently fetched slice of the lecture catalog.
type Partition struct {
	ID   string `yaml:"id" json:"id"`
	Path string `yaml:"path" json:"path"`
}

// DefaultPartitions are the two datasets the catalog is published as.
func DefaultPartitions() []Partition {
	return []Partition{
		{ID: "majors", Path: "/schedules-majors.json"},
		{ID: "liberal-arts", Path: "/schedules-liberal-arts.json"},
	}
}

// State is the loader lifecycle state.
type State string

const (
	StateEmpty   State = "empty"
	StateLoading State = "loading"
	StateLoaded  State = "loaded"
)
