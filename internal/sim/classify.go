// Package sim implements the main kinetic Monte Carlo loop: drawing an
// event class, dispatching to an action, advancing time, and
// recomputing rates.
package sim

import (
	"kmcsim/internal/kmcconfig"
	"kmcsim/internal/network"
	"kmcsim/internal/ratetree"
)

// rankAttr extracts the monotone integer attribute a rank classifier
// bins entities by (follower count, tweet count, retweet count).
type rankAttr func(net *network.Network, id int32) int

func followerCount(net *network.Network, id int32) int { return net.NFollowers(id) }
func tweetCount(net *network.Network, id int32) int     { return net.Entity(id).NTweets }
func retweetCount(net *network.Network, id int32) int   { return net.Entity(id).NRetweets }

// bucketOf returns the largest bin index i such that value >=
// bins[i].Threshold, treating bins as sorted ascending by threshold.
// This mirrors the per-bin-population-consistent bucketing used at the
// leaf-weighting level; here it governs classification, not weighting,
// but the two must agree on bin boundaries or the tree's invariants
// break.
func bucketOf(bins []kmcconfig.RankBin, value int) int {
	bin := 0
	for i, b := range bins {
		if value >= b.Threshold {
			bin = i
		} else {
			break
		}
	}
	return bin
}

// newRankTree builds a flat, single-level CategoryTree over Network
// entities, classified by attr into the bins described by cfg bins. If
// setCache is non-nil it is invoked with the freshly computed bin on
// every classification, so the entity's own cached rank-bin field
// stays in sync for sanity checks and diagnostics without a second
// pass over the population.
func newRankTree(net *network.Network, bins []kmcconfig.RankBin, attr rankAttr, setCache func(*network.Network, int32, int)) *ratetree.CategoryTree {
	cls := &ratetree.Classifier{
		NumBins: func(state any) int { return len(bins) },
		Classify: func(state any, element int32) int {
			n := state.(*network.Network)
			bin := bucketOf(bins, attr(n, element))
			if setCache != nil {
				setCache(n, element, bin)
			}
			return bin
		},
		Rate: func(state any, bin int) float64 { return bins[bin].Rate },
	}
	return ratetree.New(net, cls)
}

func setFollowRankBin(net *network.Network, id int32, bin int) {
	net.Entity(id).FollowRankBin = bin
}

func setTweetRankBin(net *network.Network, id int32, bin int) {
	net.Entity(id).TweetRankBin = bin
}
