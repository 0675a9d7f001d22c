// Package network holds the flat, preallocated population the simulator
// mutates every step: entities, their follow/follower memberships, the
// tweet arena, and the entity-type roster.
package network

import "kmcsim/internal/mempool"

// Entity is identified by its dense index into Network.entities. Its
// counts, current rate-tree bins, and recent-retweet ring live directly
// on the struct so re-binning never needs to scan the population; its
// follow and follower memberships live in Network's mempool slabs.
type Entity struct {
	CreatedAt float64
	TypeIdx   int
	Language  int

	// FollowRankBin is this entity's current bin in the global
	// follow_ranks tree, classified by follower count.
	FollowRankBin int
	// TweetRankBin is this entity's current bin in the global
	// tweet_ranks tree, classified by tweet count.
	TweetRankBin int

	NTweets   int
	NRetweets int

	// Retweets is the bounded ring of this entity's own retweets.
	// Retweets.Latest() serves as the "most recent retweet" slot cached
	// per entity.
	Retweets RetweetRing
}

// Network is a flat array of max_entities Entity records plus a counter
// of the occupied prefix. Follow and follower
// memberships are backed by two mempool.Pool slabs so appends never
// reallocate mid-run.
type Network struct {
	entities []Entity
	nEntities int

	followSets   *mempool.Pool // who each entity follows
	followerSets *mempool.Pool // who follows each entity

	Tweets *TweetBank
}

// New preallocates a Network for up to maxEntities entities, each able
// to follow or be followed by up to maxDegree others, and a tweet arena
// sized for maxTweets tweets.
func New(maxEntities, maxDegree, maxTweets int) *Network {
	return &Network{
		entities:     make([]Entity, maxEntities),
		followSets:   mempool.New(maxEntities, maxDegree),
		followerSets: mempool.New(maxEntities, maxDegree),
		Tweets:       NewTweetBank(maxTweets),
	}
}

// NEntities returns the number of occupied entity slots.
func (n *Network) NEntities() int {
	return n.nEntities
}

// MaxEntities returns the capacity of the entity array.
func (n *Network) MaxEntities() int {
	return len(n.entities)
}

// Entity returns a pointer to the entity record at id, valid for the
// life of the Network (the backing array is never reallocated).
func (n *Network) Entity(id int32) *Entity {
	return &n.entities[id]
}

// CreateEntity occupies the next free slot and returns its id. The
// caller is responsible for checking NEntities() < MaxEntities() first.
func (n *Network) CreateEntity(typeIdx, language int, now float64) int32 {
	id := int32(n.nEntities)
	n.entities[id] = Entity{
		CreatedAt: now,
		TypeIdx:   typeIdx,
		Language:  language,
	}
	n.nEntities++
	return id
}

// NFollowing reports how many entities id follows.
func (n *Network) NFollowing(id int32) int {
	return n.followSets.Len(int(id))
}

// NFollowers reports how many entities follow id.
func (n *Network) NFollowers(id int32) int {
	return n.followerSets.Len(int(id))
}

// FollowI returns the k-th entity that id follows, in insertion order.
func (n *Network) FollowI(id int32, k int) int32 {
	return n.followSets.At(int(id), k)
}

// FollowerI returns the k-th entity following id, in insertion order.
func (n *Network) FollowerI(id int32, k int) int32 {
	return n.followerSets.At(int(id), k)
}

// Followees returns a read-only view of everyone id follows.
func (n *Network) Followees(id int32) []int32 {
	return n.followSets.Slot(int(id))
}

// Followers returns a read-only view of everyone following id.
func (n *Network) Followers(id int32) []int32 {
	return n.followerSets.Slot(int(id))
}

// TryFollow records that actor now follows target, appending to both
// sides' mempool slots. It returns false, doing nothing, if either slab
// is at capacity — the caller treats that as capacity exhaustion and
// skips the step's mutation without bumping counters.
func (n *Network) TryFollow(actor, target int32) bool {
	// Both slots are checked before either is written: actor's follow
	// slot and target's follower slot fill independently, so one can be
	// full while the other still has room.
	if n.followSets.Len(int(actor)) >= n.followSets.Cap() ||
		n.followerSets.Len(int(target)) >= n.followerSets.Cap() {
		return false
	}
	n.followSets.AddIfPossible(int(actor), target)
	n.followerSets.AddIfPossible(int(target), actor)
	return true
}
