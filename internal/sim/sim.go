package sim

import (
	"math"

	"kmcsim/internal/cancelctl"
	"kmcsim/internal/summary"
)

// epsilon matches the tie-break used throughout internal/ratetree for
// cumulative-threshold comparisons.
const epsilon = 1e-16

// Run executes the main loop until time >= max_time,
// n_entities >= max_entities, or cancelctl signals a cancellation, and
// returns the final simulated time.
func (s *Simulator) Run() float64 {
	for {
		if s.time >= s.cfg.MaxTime {
			return s.time
		}
		if s.net.NEntities() >= s.cfg.MaxEntities {
			return s.time
		}
		if cancelctl.ShouldAbort() {
			s.logger.Error("hard abort: cancellation threshold exceeded")
			return s.time
		}
		if cancelctl.Requested() {
			return s.time
		}

		s.step()
	}
}

// step performs one iteration: draw an event class, dispatch, advance
// time, emit summaries, and recompute rates.
func (s *Simulator) step() {
	if s.rates.R <= 0 {
		// No event can occur; advance to the terminal condition rather
		// than spin forever on a zero-rate population.
		s.time = s.cfg.MaxTime
		return
	}

	u := s.rng.Float64()
	s.dispatch(u)

	var dt float64
	if s.cfg.UseRandomIncrement {
		dt = s.rng.ExpFloat64(s.rates.R)
	} else {
		dt = 1 / s.rates.R
	}

	prevTime := s.time
	s.time += dt
	s.nSteps++

	s.maybeEmitSummary(prevTime)
	s.maybeSnapshotAgeHistory(prevTime)

	s.recomputeRates()
}

// dispatch selects an event class by the cumulative thresholds
// (p_add, p_add+p_follow, +p_tweet, +p_norm) and runs its action. A
// draw that exhausts every threshold due to round-off is logged, not
// fatal, and falls through to the last class.
func (s *Simulator) dispatch(u float64) {
	r := s.rates
	c1 := r.PAdd
	c2 := c1 + r.PFollow
	c3 := c2 + r.PTweet

	switch {
	case u < c1+epsilon:
		s.actionCreate()
	case u < c2+epsilon:
		s.actionFollow()
	case u < c3+epsilon:
		s.actionTweet()
	case u < 1+epsilon:
		s.actionRetweet()
	default:
		s.logger.Warn("SamplingDegenerate: event draw exceeded cumulative thresholds", "u", u)
		s.actionRetweet()
	}
}

// maybeEmitSummary emits one summary tuple whenever time crosses an
// integer tick.
func (s *Simulator) maybeEmitSummary(prevTime float64) {
	if s.sink == nil {
		return
	}
	if math.Floor(s.time) <= math.Floor(prevTime) {
		return
	}
	_ = s.sink.Emit(summary.Snapshot{
		Time:      s.time,
		NEntities: s.net.NEntities(),
		NFollows:  s.nFollows,
		NTweets:   s.nTweets,
		NRetweets: s.nRetweets,
	})
}

// maybeSnapshotAgeHistory records n_entities into the age-classification
// history whenever time crosses a TIME_CAT_FREQ milestone, used
// downstream to bucket entities by creation-time age.
func (s *Simulator) maybeSnapshotAgeHistory(prevTime float64) {
	if s.cfg.TimeCatFreq <= 0 {
		return
	}
	for s.nextCatTick <= s.time {
		s.ageHistory = append(s.ageHistory, s.net.NEntities())
		s.nextCatTick += s.cfg.TimeCatFreq
	}
}

// AgeHistory returns the recorded n_entities snapshots taken at each
// TIME_CAT_FREQ milestone.
func (s *Simulator) AgeHistory() []int {
	return s.ageHistory
}
