package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"kmcsim/internal/kmcconfig"
	"kmcsim/internal/network"
)

func TestRandomFollowTargetIsWithinPopulation(t *testing.T) {
	cfg := baseConfig()
	s := New(cfg, 7, nil, nil)
	for i := 0; i < 5; i++ {
		s.createEntity(0)
	}

	for i := 0; i < 50; i++ {
		target := s.randomFollowTarget()
		require.GreaterOrEqual(t, target, int32(0))
		require.Less(t, target, int32(s.Network().NEntities()))
	}
}

func TestRandomFollowTargetEmptyPopulationReturnsSentinel(t *testing.T) {
	cfg := baseConfig()
	s := New(cfg, 7, nil, nil)
	require.Equal(t, int32(-1), s.randomFollowTarget())
}

// TestPreferentialFollowTargetFavorsPopulatedBins checks that entities
// in a bin with a higher rate×population weight are preferred over a
// lower-weighted bin.
func TestPreferentialFollowTargetFavorsPopulatedBins(t *testing.T) {
	cfg := baseConfig()
	cfg.FollowModel = kmcconfig.PreferentialFollow
	cfg.FollowRanks = kmcconfig.RankClassifier{
		Bins: []kmcconfig.RankBin{
			{Threshold: 0, Rate: 1},
			{Threshold: 1, Rate: 10},
		},
	}
	s := New(cfg, 3, nil, nil)
	for i := 0; i < 6; i++ {
		s.createEntity(0)
	}

	// Push three entities into the high-rate bin by giving them a
	// follower each.
	highBin := []int32{0, 1, 2}
	for _, id := range highBin {
		other := (id + 1) % 6
		s.removeFollowRank(id)
		require.True(t, s.net.TryFollow(other, id))
		s.addFollowRank(id)
	}

	counts := map[int32]int{}
	for i := 0; i < 500; i++ {
		target := s.preferentialFollowTarget()
		require.NotEqual(t, int32(-1), target)
		counts[target]++
	}

	highCount, lowCount := 0, 0
	for id, c := range counts {
		if id < 3 {
			highCount += c
		} else {
			lowCount += c
		}
	}
	require.Greater(t, highCount, lowCount)
}

func TestPreferentialFollowTargetEmptyBinsReturnsSentinel(t *testing.T) {
	cfg := baseConfig()
	cfg.FollowRanks = kmcconfig.RankClassifier{}
	s := New(cfg, 1, nil, nil)
	require.Equal(t, int32(-1), s.preferentialFollowTarget())
}

func TestEntityFollowTargetDrawsFromWeightedType(t *testing.T) {
	cfg := baseConfig()
	cfg.FollowModel = kmcconfig.EntityFollow
	cfg.EntityTypes = []kmcconfig.EntityType{
		{Name: "quiet", ProbAdd: 0.5, ProbFollow: 0},
		{Name: "loud", ProbAdd: 0.5, ProbFollow: 1},
	}
	s := New(cfg, 5, nil, nil)
	s.entityTypes[0].Members = []int32{0}
	s.entityTypes[1].Members = []int32{1, 2}

	for i := 0; i < 50; i++ {
		target := s.entityFollowTarget()
		require.Contains(t, []int32{1, 2}, target)
	}
}

func TestEntityFollowTargetAllZeroProbReturnsSentinel(t *testing.T) {
	cfg := baseConfig()
	cfg.EntityTypes = []kmcconfig.EntityType{{Name: "a", ProbAdd: 1, ProbFollow: 0}}
	s := New(cfg, 5, nil, nil)
	require.Equal(t, int32(-1), s.entityFollowTarget())
}

// TestRetweetFollowTargetUsesFreshRetweet checks that
// a retweet within the freshness window can be followed through.
func TestRetweetFollowTargetUsesFreshRetweet(t *testing.T) {
	cfg := baseConfig()
	cfg.FollowModel = kmcconfig.RetweetFollow
	s := New(cfg, 9, nil, nil)
	for i := 0; i < 3; i++ {
		s.createEntity(0)
	}
	s.time = 100
	s.net.Entity(0).Retweets.Push(network.Retweet{OriginalTweeterID: 2, Time: s.time - 10})

	// The 0.5 coin flip is not forced: the loop repeats the draw so the
	// fresh-retweet branch fires at least once, and every outcome of
	// either branch must be a valid population member.
	sawFresh := false
	for i := 0; i < 50; i++ {
		target := s.retweetFollowTarget(0)
		require.GreaterOrEqual(t, target, int32(0))
		if target == 2 {
			sawFresh = true
		}
	}
	require.True(t, sawFresh)
}

// TestRetweetFollowTargetStaleRetweetFallsBack checks that a retweet
// past the freshness window is never followed through, regardless of
// the coin flip.
func TestRetweetFollowTargetStaleRetweetFallsBack(t *testing.T) {
	cfg := baseConfig()
	cfg.FollowModel = kmcconfig.RetweetFollow
	s := New(cfg, 9, nil, nil)
	for i := 0; i < 3; i++ {
		s.createEntity(0)
	}
	const staleSentinel = int32(99) // outside the 3-entity population, so a
	// random fallback draw can never coincide with it by chance.
	s.time = kmcconfig.RetweetWindow + 100
	s.net.Entity(0).Retweets.Push(network.Retweet{OriginalTweeterID: staleSentinel, Time: 0})

	for i := 0; i < 50; i++ {
		target := s.retweetFollowTarget(0)
		require.NotEqual(t, staleSentinel, target)
	}
}
