package sim

import "kmcsim/internal/kmcconfig"

// pickFollowTarget dispatches to the configured follow_model.
func (s *Simulator) pickFollowTarget(actor int32) int32 {
	switch s.cfg.FollowModel {
	case kmcconfig.RandomFollow:
		return s.randomFollowTarget()
	case kmcconfig.PreferentialFollow:
		return s.preferentialFollowTarget()
	case kmcconfig.EntityFollow:
		return s.entityFollowTarget()
	case kmcconfig.RetweetFollow:
		return s.retweetFollowTarget(actor)
	default:
		return -1
	}
}

// randomFollowTarget implements RANDOM_FOLLOW: uniform_int(n_entities).
func (s *Simulator) randomFollowTarget() int32 {
	if s.net.NEntities() == 0 {
		return -1
	}
	return int32(s.rng.Intn(s.net.NEntities()))
}

// preferentialFollowTarget implements PREFERENTIAL_FOLLOW: weight each
// follow-rank bin by rate×population, normalize, draw a bin, then pick
// uniformly within it. The bin-selection walk draws u in [0, 1) and
// subtracts each bin's normalized probability in turn, stopping at the
// first bin where the running value goes negative.
func (s *Simulator) preferentialFollowTarget() int32 {
	bins := s.cfg.FollowRanks.Bins
	n := len(bins)
	if n == 0 {
		return -1
	}

	weights := make([]float64, n)
	total := 0.0
	for i, b := range bins {
		w := b.Rate * float64(s.followBinCounts[i])
		weights[i] = w
		total += w
	}
	if total <= 0 {
		return -1
	}

	u := s.rng.Float64()
	chosen := n - 1
	for i, w := range weights {
		p := w / total
		u -= p
		if u < 0 {
			chosen = i
			break
		}
	}

	for tries := 0; tries < n; tries++ {
		bin := (chosen + tries) % n
		if s.followBinCounts[bin] > 0 {
			id, ok := s.followRanks.PickUniformInBin(bin, s.rng)
			if ok {
				return id
			}
		}
	}
	return -1
}

// entityFollowTarget implements ENTITY_FOLLOW: weight by
// type.prob_follow, draw a type, pick uniformly within its member list.
func (s *Simulator) entityFollowTarget() int32 {
	total := 0.0
	for _, t := range s.entityTypes {
		total += t.ProbFollow
	}
	if total <= 0 {
		return -1
	}

	u := s.rng.Float64() * total
	cum := 0.0
	chosen := len(s.entityTypes) - 1
	for i, t := range s.entityTypes {
		cum += t.ProbFollow
		if u < cum {
			chosen = i
			break
		}
	}

	for tries := 0; tries < len(s.entityTypes); tries++ {
		idx := (chosen + tries) % len(s.entityTypes)
		members := s.entityTypes[idx].Members
		if len(members) > 0 {
			return members[s.rng.Intn(len(members))]
		}
	}
	return -1
}

// retweetFollowTarget implements RETWEET_FOLLOW: with probability 0.5,
// follow the original tweeter of actor's most recent retweet if it is
// still fresh; otherwise fall back to a uniform draw over all entities.
func (s *Simulator) retweetFollowTarget(actor int32) int32 {
	if s.rng.Float64() < 0.5 {
		latest, ok := s.net.Entity(actor).Retweets.Latest()
		if ok && s.time-latest.Time < kmcconfig.RetweetWindow {
			return latest.OriginalTweeterID
		}
	}
	return s.randomFollowTarget()
}
