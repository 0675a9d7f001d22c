// Package kmcconfig loads and validates the immutable parameter bundle
// the simulation engine runs against.
package kmcconfig

import "fmt"

// FollowModel selects the target-selection strategy for a follow event.
type FollowModel string

const (
	RandomFollow       FollowModel = "RANDOM"
	PreferentialFollow FollowModel = "PREFERENTIAL"
	EntityFollow       FollowModel = "ENTITY"
	RetweetFollow      FollowModel = "RETWEET"
)

// EntityType mirrors network.EntityType's config-supplied fields.
type EntityType struct {
	Name       string  `yaml:"name"`
	ProbAdd    float64 `yaml:"prob_add"`
	ProbFollow float64 `yaml:"prob_follow"`
}

// RankBin is one (threshold, rate) pair of a rank-classifier spec.
type RankBin struct {
	Threshold int     `yaml:"threshold"`
	Rate      float64 `yaml:"rate"`
}

// RankClassifier is an ordered list of bins classifying entities by a
// monotone attribute (follower count, tweet count, retweet count).
type RankClassifier struct {
	Bins []RankBin `yaml:"bins"`
}

// TweetObs defines the tweet-observation age-bin schedule: an initial
// bin-width resolution and one observation-rate value per bin.
type TweetObs struct {
	InitialResolution float64   `yaml:"initial_resolution"`
	Values            []float64 `yaml:"values"`
}

// Config is the immutable parameter bundle the engine runs against.
// The engine only ever consumes a populated, validated Config; parsing it from
// YAML is an external-facing concern handled by Load.
type Config struct {
	MaxEntities     int     `yaml:"max_entities"`
	MaxTime         float64 `yaml:"max_time"`
	InitialEntities int     `yaml:"initial_entities"`
	MaxDegree       int     `yaml:"max_degree"`
	MaxTweets       int     `yaml:"max_tweets"`

	UseRandomIncrement bool `yaml:"use_random_increment"`
	UseBarabasi        bool `yaml:"use_barabasi"`

	// AddRate is the base rate of entity-creation events (r_add).
	// It is applied verbatim while n_entities <
	// max_entities and forced to zero once the population is full.
	AddRate float64 `yaml:"add_rate"`

	FollowModel FollowModel `yaml:"follow_model"`

	OutputStdoutSummary bool `yaml:"output_stdout_summary"`
	SummaryHeaderEveryN int  `yaml:"summary_header_every_n"`

	EntityTypes []EntityType `yaml:"entity_types"`

	TweetRanks   RankClassifier `yaml:"tweet_ranks"`
	FollowRanks  RankClassifier `yaml:"follow_ranks"`
	RetweetRanks RankClassifier `yaml:"retweet_ranks"`

	TweetObs TweetObs `yaml:"tweet_obs"`

	TimeCatFreq float64 `yaml:"time_cat_freq"`
}

// RetweetWindow is the 2880-minute (48-hour) freshness threshold beyond
// which a retweet record is ineligible for propagation.
const RetweetWindow = 2880.0

// probAddTolerance bounds how far Σ prob_add may drift from 1 before
// Validate rejects the config (floating-point config values rarely sum
// to exactly 1).
const probAddTolerance = 1e-6

// Validate checks the conditions that make a config unusable:
// Σ prob_add ≈ 1, a non-empty entity-type list, and
// initial_entities <= max_entities. It is called by Load before the
// engine ever sees the value.
func (c *Config) Validate() error {
	if len(c.EntityTypes) == 0 {
		return fmt.Errorf("kmcconfig: entity_types must not be empty")
	}
	sum := 0.0
	for _, t := range c.EntityTypes {
		sum += t.ProbAdd
	}
	if diff := sum - 1.0; diff > probAddTolerance || diff < -probAddTolerance {
		return fmt.Errorf("kmcconfig: entity_types prob_add sums to %v, want 1", sum)
	}
	if c.InitialEntities > c.MaxEntities {
		return fmt.Errorf("kmcconfig: initial_entities=%d exceeds max_entities=%d", c.InitialEntities, c.MaxEntities)
	}
	switch c.FollowModel {
	case RandomFollow, PreferentialFollow, EntityFollow, RetweetFollow:
	default:
		return fmt.Errorf("kmcconfig: unrecognized follow_model %q", c.FollowModel)
	}
	return nil
}
