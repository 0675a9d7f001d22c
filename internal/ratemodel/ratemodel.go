// Package ratemodel computes the four global event-class rates the
// Simulator draws from each step: a small, pure function of current
// population state and config, recomputed every step rather than
// incrementally maintained.
package ratemodel

import "kmcsim/internal/kmcconfig"

// Rates is the per-step snapshot of event-class rates and their
// normalized selection probabilities.
type Rates struct {
	RAdd, RFollow, RTweet, RRetweet float64
	R                               float64

	PAdd, PFollow, PTweet, PNorm float64
}

// Compute derives Rates from the current population size and the
// aggregate rate carried by each rate-categorization tree
// (followTotalRate backs follow_ranks, tweetTotalRate backs
// tweet_ranks, retweetTotalRate backs retweet_ranks). r_add is the
// config's flat AddRate, forced to zero once the population is full.
func Compute(cfg *kmcconfig.Config, nEntities int, followTotalRate, tweetTotalRate, retweetTotalRate float64) Rates {
	rAdd := cfg.AddRate
	if nEntities >= cfg.MaxEntities {
		rAdd = 0
	}

	r := Rates{
		RAdd:     rAdd,
		RFollow:  followTotalRate,
		RTweet:   tweetTotalRate,
		RRetweet: retweetTotalRate,
	}
	r.R = r.RAdd + r.RFollow + r.RTweet + r.RRetweet

	if r.R <= 0 {
		return r
	}

	r.PAdd = r.RAdd / r.R
	r.PFollow = r.RFollow / r.R
	r.PTweet = r.RTweet / r.R
	// PNorm is derived by subtraction, not division, so the four
	// cumulative thresholds sum to exactly 1 regardless of
	// floating-point rounding in the three division results above —
	// the sampling loop's epsilon tie-break exists for residual error,
	// not for a probability mass that's missing outright.
	r.PNorm = 1 - r.PAdd - r.PFollow - r.PTweet

	return r
}
