package domain

// Region identifies the market a question is asked from.
type Region string

// Supported regions.
const (
	RegionCanada Region = "ca"
	RegionUSA    Region = "us"
)

// Marker returns the tag substring that marks cards belonging to the region.
func (r Region) Marker() string {
	switch r {
	case RegionCanada:
		return "canada"
	case RegionUSA:
		return "usa"
	default:
		return ""
	}
}

// Question is a transient ask request. It is never persisted.
type Question struct {
	Text     string
	Region   Region
	Lang     string
	Demo     bool // restrict candidates to the demo store's region-tagged cards
	ShowMore bool // include the deferred result set in the response
}
