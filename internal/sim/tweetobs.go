package sim

import (
	"kmcsim/internal/kmcconfig"
	"kmcsim/internal/network"
	"kmcsim/internal/ratetree"
)

// newTweetObsClassifier builds the age-bin classifier for the tweet-
// observation TimeDepRateTree. Tweets are classified by
// their own AgeBin field, which the checker keeps in sync, rather than
// recomputed from creation time here — Classify only ever runs at
// Add/Remove time, and AgeBin is exactly what determines tree
// membership at those points.
func newTweetObsClassifier(cfg *kmcconfig.Config) *ratetree.Classifier {
	nBins := len(cfg.TweetObs.Values)
	return &ratetree.Classifier{
		NumBins: func(state any) int { return nBins },
		Classify: func(state any, element int32) int {
			net := state.(*network.Network)
			return net.Tweets.Get(element).AgeBin
		},
		Rate: func(state any, bin int) float64 { return cfg.TweetObs.Values[bin] },
	}
}

// tweetChecker implements ratetree.ElementChecker over the TweetBank,
// promoting a tweet's age bin (or evicting it past the last bin) as its
// NextRebinAt time is crossed during a weighted draw.
type tweetChecker struct {
	cfg *kmcconfig.Config
}

func (c tweetChecker) NextRebinTime(state any, element int32) float64 {
	net := state.(*network.Network)
	return net.Tweets.Get(element).NextRebinAt
}

func (c tweetChecker) Rebin(state any, element int32, now float64) (int, bool) {
	net := state.(*network.Network)
	tweet := net.Tweets.Get(element)
	newBin := tweet.AgeBin + 1
	if newBin >= len(c.cfg.TweetObs.Values) {
		return newBin, true
	}
	tweet.AgeBin = newBin
	tweet.NextRebinAt = tweet.CreatedAt + float64(newBin+1)*c.cfg.TweetObs.InitialResolution
	return newBin, false
}

func (c tweetChecker) NBins() int {
	return len(c.cfg.TweetObs.Values)
}
