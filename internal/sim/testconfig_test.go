package sim

import "kmcsim/internal/kmcconfig"

// baseConfig returns a small, valid config that every test starts from,
// overriding only the fields relevant to the behavior under test.
func baseConfig() *kmcconfig.Config {
	return &kmcconfig.Config{
		MaxEntities:     8,
		MaxTime:         1000,
		InitialEntities: 0,
		MaxDegree:       8,
		MaxTweets:       64,
		AddRate:         1,
		FollowModel:     kmcconfig.RandomFollow,
		EntityTypes: []kmcconfig.EntityType{
			{Name: "solo", ProbAdd: 1, ProbFollow: 1},
		},
		FollowRanks: kmcconfig.RankClassifier{
			Bins: []kmcconfig.RankBin{
				{Threshold: 0, Rate: 1},
				{Threshold: 4, Rate: 2},
			},
		},
		TweetRanks: kmcconfig.RankClassifier{
			Bins: []kmcconfig.RankBin{{Threshold: 0, Rate: 1}},
		},
		RetweetRanks: kmcconfig.RankClassifier{
			Bins: []kmcconfig.RankBin{{Threshold: 0, Rate: 1}},
		},
		TweetObs: kmcconfig.TweetObs{
			InitialResolution: 100,
			Values:            []float64{1, 0.5},
		},
	}
}
