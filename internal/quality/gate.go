package quality

import (
	"aineoo/internal/apperr"
	"aineoo/internal/logger"
)

// DefaultMinScore is the publish threshold when none is configured.
const DefaultMinScore = 75

// Gate decides whether a report may be published. It only blocks when
// Strict is set; otherwise a low score is logged and publishing continues.
type Gate struct {
	MinScore int
	Strict   bool
}

// Name returns the gate name for logging
func (g Gate) Name() string {
	return "Publish Quality Gate"
}

// IsBlocking returns whether failure should stop the pipeline
func (g Gate) IsBlocking() bool {
	return g.Strict
}

// Check returns a *apperr.QualityError when the gate is strict and the
// score is below MinScore.
func (g Gate) Check(r Report) error {
	if r.Score >= g.MinScore {
		return nil
	}
	if !g.Strict {
		logger.Warn("Quality score below threshold, publishing anyway", "gate", g.Name(), "score", r.Score, "min_score", g.MinScore)
		return nil
	}
	return &apperr.QualityError{Score: r.Score, MinScore: g.MinScore, Failed: r.FailedKeys()}
}
