package sim

import (
	"kmcsim/internal/kmcconfig"
	"kmcsim/internal/network"
)

// pickEntityType draws a type index by cumulative prob_add.
func (s *Simulator) pickEntityType() int {
	u := s.rng.Float64()
	cum := 0.0
	for i, t := range s.cfg.EntityTypes {
		cum += t.ProbAdd
		if u < cum {
			return i
		}
	}
	return len(s.cfg.EntityTypes) - 1
}

// createEntity is the shared body of the Create action and initial
// population seeding: assign a type, occupy the next slot, categorize
// it at follower-rank bin 0, and — if use_barabasi is set — immediately
// follow itself.
func (s *Simulator) createEntity(language int) {
	typeIdx := s.pickEntityType()
	id := s.net.CreateEntity(typeIdx, language, s.time)
	s.entityTypes[typeIdx].AddMember(id)

	s.followRanks.Add(s.net, id)
	s.followBinCounts[s.net.Entity(id).FollowRankBin]++
	s.tweetRanks.Add(s.net, id)
	s.retweetRanks.Add(s.net, id)

	if s.cfg.UseBarabasi {
		s.removeFollowRank(id)
		ok := s.net.TryFollow(id, id)
		s.addFollowRank(id)
		if ok {
			s.nFollows++
		}
	}
}

// removeFollowRank evicts id from follow_ranks ahead of a
// follower-count mutation, per CategoryTree.Remove's contract: Remove
// must be called before the attribute driving classification changes,
// or Remove re-derives the bin from the already-mutated state and
// targets the wrong leaf.
func (s *Simulator) removeFollowRank(id int32) {
	s.followBinCounts[s.net.Entity(id).FollowRankBin]--
	s.followRanks.Remove(s.net, id)
}

// addFollowRank reinserts id into follow_ranks once a follower-count
// mutation has taken effect, the dual of removeFollowRank.
func (s *Simulator) addFollowRank(id int32) {
	s.followRanks.Add(s.net, id)
	s.followBinCounts[s.net.Entity(id).FollowRankBin]++
}

// actionCreate dispatches a Create event: pick a language uniformly
// (languages are not otherwise config-driven, so a fixed small alphabet
// stands in until a richer language distribution is asked for) and
// create the entity.
func (s *Simulator) actionCreate() {
	if s.net.NEntities() >= s.cfg.MaxEntities {
		return
	}
	const nLanguages = 4
	s.createEntity(s.rng.Intn(nLanguages))
}

// actionFollow dispatches a Follow event: an actor is picked uniformly
// (see DESIGN.md for why, as distinct from the four target-selection
// models), a target is picked per follow_model, and the edge is
// recorded unless actor == target, target == -1, or either buffer is
// full.
func (s *Simulator) actionFollow() {
	if s.net.NEntities() == 0 {
		return
	}
	actor := int32(s.rng.Intn(s.net.NEntities()))
	target := s.pickFollowTarget(actor)
	if target < 0 || target == actor {
		return
	}

	s.removeFollowRank(target)
	ok := s.net.TryFollow(actor, target)
	s.addFollowRank(target)
	if !ok {
		return
	}
	s.nFollows++
}

// actionTweet dispatches a Tweet event: pick an entity uniformly,
// increment its tweet count, and re-categorize it in tweet_ranks.
func (s *Simulator) actionTweet() {
	if s.net.NEntities() == 0 {
		return
	}
	id := int32(s.rng.Intn(s.net.NEntities()))

	s.tweetRanks.Remove(s.net, id)
	s.net.Entity(id).NTweets++
	s.tweetRanks.Add(s.net, id)

	nBins := len(s.cfg.TweetObs.Values)
	nextRebin := s.time + s.cfg.TweetObs.InitialResolution
	tweetID := s.net.Tweets.New(id, s.time, 0, nextRebin)
	if nBins > 0 {
		s.tweetObs.Add(s.net, tweetID)
	}

	s.nTweets++
}

// actionRetweet dispatches a Retweet event: an actor
// is drawn weighted by retweet_ranks (an entity more active at
// retweeting is more likely to originate the next one), and then with
// probability 0.5 it retweets a live, freshly-observed tweet drawn from
// the tweet-observation tree; otherwise it re-propagates its own most
// recent retweet if that retweet is still within the 2880-time-unit
// freshness window.
func (s *Simulator) actionRetweet() {
	actor, ok := s.retweetRanks.PickWeighted(s.rng)
	if !ok {
		return
	}

	var originalTweeter int32
	if s.rng.Float64() < 0.5 {
		tweetID, ok := s.tweetObs.PickWeighted(s.net, s.rng, s.time, s.checker)
		if !ok {
			return
		}
		tweet := s.net.Tweets.Get(tweetID)
		if tweet.TweeterID == actor {
			return
		}
		originalTweeter = tweet.TweeterID
	} else {
		latest, ok := s.net.Entity(actor).Retweets.Latest()
		if !ok || s.time-latest.Time >= kmcconfig.RetweetWindow {
			return
		}
		originalTweeter = latest.OriginalTweeterID
	}

	s.propagateRetweet(actor, originalTweeter)
}

// propagateRetweet records a retweet by actor of originalTweeter's
// content, re-categorizes actor in retweet_ranks, and pushes the
// record into the ring of every follower of actor so their own
// RETWEET_FOLLOW/retweet-of-a-retweet decisions see it.
func (s *Simulator) propagateRetweet(actor, originalTweeter int32) {
	rt := network.Retweet{OriginalTweeterID: originalTweeter, Time: s.time}

	s.retweetRanks.Remove(s.net, actor)
	entity := s.net.Entity(actor)
	entity.Retweets.Push(rt)
	entity.NRetweets++
	s.retweetRanks.Add(s.net, actor)

	for i := 0; i < s.net.NFollowers(actor); i++ {
		follower := s.net.FollowerI(actor, i)
		s.net.Entity(follower).Retweets.Push(rt)
	}

	s.nRetweets++
}
