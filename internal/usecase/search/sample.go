package search

// Sampling bounds.
const (
	// CountingPageSize is the largest page size treated as a counting query.
	CountingPageSize = 5
	// CountingSample is fetched for counting queries so the reported total is
	// meaningful.
	CountingSample = 1000
	// SampleFactor multiplies the page size for regular queries.
	SampleFactor = 10
	// MaxSample caps regular queries.
	MaxSample = 500
)

// SamplePolicy maps a requested page size to the number of candidates to
// fetch from the store. Totals are exact only within this window.
type SamplePolicy func(pageSize int) int

// SampleSize is the default SamplePolicy.
func SampleSize(pageSize int) int {
	if pageSize <= CountingPageSize {
		return CountingSample
	}
	return min(pageSize*SampleFactor, MaxSample)
}
