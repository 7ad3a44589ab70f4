package service

import (
	"fmt"
	"strings"

	"github.com/adrianzap/softwipe/domain"
)

// Composite folds the outcomes into the overall score: the unweighted mean
// of every score the surviving tools produced. Excluded tools contribute
// nothing. With no surviving scores there is no overall score, and that is
// reported as domain.ErrNoScore rather than a fabricated zero.
func Composite(outcomes []ToolOutcome) (float64, error) {
	sum := 0.0
	count := 0
	for _, outcome := range outcomes {
		if outcome.Excluded || !outcome.Result.Success {
			continue
		}
		for _, score := range outcome.Result.Scores {
			sum += score
			count++
		}
	}
	if count == 0 {
		return 0, domain.ErrNoScore
	}
	return sum / float64(count), nil
}

// Report renders the outcomes in dispatch order: each surviving tool's own
// log under a header, one exclusion line per failed tool, and the overall
// score line last. A run with nothing to score says so instead of printing
// a score.
func Report(outcomes []ToolOutcome) string {
	var sb strings.Builder
	for _, outcome := range outcomes {
		sb.WriteString(fmt.Sprintf(" --- Running: %s --- \n", strings.ToUpper(outcome.ToolName)))
		if outcome.Excluded || !outcome.Result.Success {
			sb.WriteString(fmt.Sprintf("%s excluded: %v\n\n", outcome.ToolName, outcome.Err))
			continue
		}
		sb.WriteString(outcome.Result.Log)
		sb.WriteString("\n")
	}

	overall, err := Composite(outcomes)
	if err != nil {
		sb.WriteString("No score available: every tool was excluded.\n")
		return sb.String()
	}
	sb.WriteString(fmt.Sprintf("Overall program Score: %.1f/10\n", overall))
	return sb.String()
}
