package assignment

import (
	"fmt"

	"github.com/UnknownOlympus/dispatch/internal/scoring"
)

// StrategyType names an assignment strategy.
type StrategyType string

const (
	// StrategyGreedy picks the single best remaining pair round by round.
	StrategyGreedy StrategyType = "greedy"
	// StrategyOptimal maximizes the total score of all pairs.
	StrategyOptimal StrategyType = "optimal"
)

// StrategyConfig holds configuration for creating a strategy.
type StrategyConfig struct {
	Type    StrategyType // Type of strategy to create
	Workers int          // Concurrent driver scans per round (greedy only)
	Scorer  Scorer       // Scorer to rate pairings, scoring.Score when nil
}

// NewStrategy creates an assignment strategy based on the provided configuration.
func NewStrategy(config StrategyConfig) (Strategy, error) {
	score := config.Scorer
	if score == nil {
		score = scoring.Score
	}

	switch config.Type {
	case StrategyGreedy:
		return NewGreedy(score, config.Workers), nil
	case StrategyOptimal:
		return NewOptimal(score), nil
	default:
		return nil, fmt.Errorf("unsupported strategy type: %s", config.Type)
	}
}
