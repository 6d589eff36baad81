package placement

import (
	"errors"
	"fmt"
)

// ErrUnknownStrategy is returned for an unrecognized batch strategy name.
var ErrUnknownStrategy = errors.New("unknown batch strategy")

// Strategy decides what happens when a candidate has no relevant team left.
type Strategy string

const (
	// StrategyStopAtFirstUnmatched ends phase 1 at the first unmatched
	// candidate. Later candidates are not considered.
	StrategyStopAtFirstUnmatched Strategy = "stop-at-first-unmatched"
	// StrategySkipUnmatched leaves the candidate unplaced and moves on.
	StrategySkipUnmatched Strategy = "skip-unmatched"
)

// ParseStrategy validates a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyStopAtFirstUnmatched, StrategySkipUnmatched:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}
