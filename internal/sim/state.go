package sim

import (
	"log/slog"

	"kmcsim/internal/kmcconfig"
	"kmcsim/internal/network"
	"kmcsim/internal/ratemodel"
	"kmcsim/internal/ratetree"
	"kmcsim/internal/rng"
	"kmcsim/internal/summary"
)

// Simulator owns every piece of mutable state for one run: the
// population, the three rate-categorization trees, the tweet
// observation tree, the RNG, and the running counters. Its methods
// take *Simulator by exclusive receiver rather than the trees/network
// holding back-references to it.
type Simulator struct {
	cfg    *kmcconfig.Config
	net    *network.Network
	rng    *rng.RNG
	logger *slog.Logger
	sink   summary.Sink

	entityTypes []network.EntityType

	followRanks  *ratetree.CategoryTree
	tweetRanks   *ratetree.CategoryTree
	retweetRanks *ratetree.CategoryTree
	tweetObs     *ratetree.TimeDepRateTree
	checker      tweetChecker

	// followBinCounts mirrors follow_ranks' per-bin population, kept in
	// lockstep with the tree by removeFollowRank/addFollowRank.
	// PREFERENTIAL_FOLLOW (follow.go) needs per-bin size and rate
	// without walking the tree, since it does its own bin-selection
	// weighting rather than delegating to CategoryTree.PickWeighted.
	followBinCounts []int

	rates ratemodel.Rates

	time     float64
	nFollows int
	nTweets  int
	nRetweets int
	nSteps   int

	nextCatTick float64
	ageHistory  []int
}

// New builds a Simulator over cfg, seeding initial_entities before the
// loop begins, all with creation_time = 0.
func New(cfg *kmcconfig.Config, seed int64, sink summary.Sink, logger *slog.Logger) *Simulator {
	if logger == nil {
		logger = slog.Default()
	}

	net := network.New(cfg.MaxEntities, cfg.MaxDegree, cfg.MaxTweets)
	entityTypes := make([]network.EntityType, len(cfg.EntityTypes))
	for i, t := range cfg.EntityTypes {
		entityTypes[i] = network.EntityType{Name: t.Name, ProbAdd: t.ProbAdd, ProbFollow: t.ProbFollow}
	}

	s := &Simulator{
		cfg:             cfg,
		net:             net,
		rng:             rng.New(seed),
		logger:          logger,
		sink:            sink,
		entityTypes:     entityTypes,
		followRanks:     newRankTree(net, cfg.FollowRanks.Bins, followerCount, setFollowRankBin),
		tweetRanks:      newRankTree(net, cfg.TweetRanks.Bins, tweetCount, setTweetRankBin),
		retweetRanks:    newRankTree(net, cfg.RetweetRanks.Bins, retweetCount, nil),
		checker:         tweetChecker{cfg: cfg},
		followBinCounts: make([]int, len(cfg.FollowRanks.Bins)),
		nextCatTick:     cfg.TimeCatFreq,
	}
	s.tweetObs = ratetree.NewTimeDep(net, newTweetObsClassifier(cfg))

	for i := 0; i < cfg.InitialEntities; i++ {
		s.createEntity(0)
	}
	s.recomputeRates()

	return s
}

// Time reports the current simulated time.
func (s *Simulator) Time() float64 { return s.time }

// NFollows, NTweets, NRetweets, NSteps report the monotone counters
// that only ever increase over the course of a run.
func (s *Simulator) NFollows() int  { return s.nFollows }
func (s *Simulator) NTweets() int   { return s.nTweets }
func (s *Simulator) NRetweets() int { return s.nRetweets }
func (s *Simulator) NSteps() int    { return s.nSteps }

// Network exposes the underlying population for tests and diagnostics.
func (s *Simulator) Network() *network.Network { return s.net }

func (s *Simulator) recomputeRates() {
	s.rates = ratemodel.Compute(s.cfg, s.net.NEntities(), s.followRanks.TotalRate(), s.tweetRanks.TotalRate(), s.retweetRanks.TotalRate())
}
