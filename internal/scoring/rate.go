package scoring

import "fmt"

// Rate normalizes a weighted finding count by a denominator, typically lines
// of pure code or the function count. A denominator of zero would produce a
// silently wrong rate, so it is a hard error; callers must not score empty
// inputs.
func Rate(weightedCount, denominator int) (float64, error) {
	if denominator <= 0 {
		return 0, fmt.Errorf("rate denominator must be positive, got %d", denominator)
	}
	return float64(weightedCount) / float64(denominator), nil
}
