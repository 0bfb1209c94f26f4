// Package contention decides which pool members can still finish on top.
//
// Given every member's confirmed wins and the picks already submitted for the
// games that are still undecided, a member is alive when at least one
// assignment of winners to those games leaves them holding the top total.
package contention

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultMaxRemainingGames bounds the 2^R outcome space a single call may search.
const DefaultMaxRemainingGames = 24

var ErrTooManyGames = errors.New("contention: too many remaining games")

type Member struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type Pick struct {
	MemberID string `json:"memberId"`
	Side     Side   `json:"side"`
}

type RemainingGame struct {
	GameKey string `json:"gameKey"`
	Picks   []Pick `json:"picks"`
}

type Input struct {
	Members        []Member        `json:"members"`
	CurrentWins    map[string]int  `json:"currentWins"`
	RemainingGames []RemainingGame `json:"remainingGames"`
}

type Options struct {
	// AllowTies counts a shared top total as alive. When false only a
	// unique leader survives a scenario.
	AllowTies bool
	// MaxRemainingGames <= 0 selects DefaultMaxRemainingGames.
	MaxRemainingGames int
	// Workers > 1 splits the top of the outcome tree into subtrees and
	// searches them on that many goroutines.
	Workers int
}

func DefaultOptions() Options {
	return Options{
		AllowTies:         true,
		MaxRemainingGames: DefaultMaxRemainingGames,
		Workers:           1,
	}
}

// Result maps every roster id to whether that member is still alive.
type Result map[string]bool

// Alive returns the ids marked alive, in roster order.
func (r Result) Alive(members []Member) []string {
	var ids []string
	seen := make(map[string]bool, len(members))
	for _, m := range members {
		if seen[m.ID] {
			continue
		}
		seen[m.ID] = true
		if r[m.ID] {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

// Compute reports, for every member, whether some outcome of the remaining
// games leaves them as a leader under the tie policy in opts.
//
// Picks naming a member outside the roster are ignored, a member with no pick
// on a game gains nothing from it, and when a member has several picks on the
// same game the last one listed counts. The inputs are never modified.
func Compute(in Input, opts Options) (Result, error) {
	return ComputeContext(context.Background(), in, opts)
}

// ComputeContext is Compute with a search that stops, returning ctx.Err(),
// once ctx is done.
func ComputeContext(ctx context.Context, in Input, opts Options) (Result, error) {
	if err := checkCapacity(in, opts); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("contention: search stopped: %w", err)
	}

	t := newTally(in)
	if len(t.ids) == 0 {
		return Result{}, nil
	}

	groups := collapse(t.games)
	s := newSearch(groups, len(t.ids), opts.AllowTies)

	var (
		alive []bool
		err   error
	)
	if opts.Workers > 1 && len(groups) > 0 {
		alive, err = s.runParallel(ctx, t.wins, opts.Workers)
	} else {
		alive, err = s.run(ctx, t.wins)
	}
	if err != nil {
		return nil, fmt.Errorf("contention: search stopped: %w", err)
	}

	return t.result(alive), nil
}

func checkCapacity(in Input, opts Options) error {
	limit := opts.MaxRemainingGames
	if limit <= 0 {
		limit = DefaultMaxRemainingGames
	}
	if n := len(in.RemainingGames); n > limit {
		return fmt.Errorf("%w: %d remaining, limit is %d", ErrTooManyGames, n, limit)
	}
	return nil
}

// tally is the engine's indexed view of an Input.
type tally struct {
	ids   []string
	wins  []int
	games []group
}

// group is a set of games whose picks move the same members the same way.
// Deciding j of its games for home gives every home picker j wins and every
// away picker size-j.
type group struct {
	size int
	home []int
	away []int
}

func newTally(in Input) tally {
	index := make(map[string]int, len(in.Members))
	var t tally
	for _, m := range in.Members {
		if _, ok := index[m.ID]; ok {
			continue
		}
		index[m.ID] = len(t.ids)
		t.ids = append(t.ids, m.ID)
		t.wins = append(t.wins, in.CurrentWins[m.ID])
	}

	t.games = make([]group, 0, len(in.RemainingGames))
	for _, game := range in.RemainingGames {
		sides := make(map[int]Side, len(game.Picks))
		for _, p := range game.Picks {
			idx, ok := index[p.MemberID]
			if !ok || !p.Side.valid() {
				continue
			}
			sides[idx] = p.Side
		}

		g := group{size: 1}
		for idx, side := range sides {
			if side == Home {
				g.home = append(g.home, idx)
			} else {
				g.away = append(g.away, idx)
			}
		}
		sort.Ints(g.home)
		sort.Ints(g.away)
		t.games = append(t.games, g)
	}
	return t
}

func (t tally) result(alive []bool) Result {
	res := make(Result, len(t.ids))
	for i, id := range t.ids {
		res[id] = alive[i]
	}
	return res
}

// collapse merges games with identical pick patterns. Games nobody in the
// roster picked cannot move any total and are dropped.
func collapse(games []group) []group {
	var groups []group
	byPattern := make(map[string]int)
	for _, g := range games {
		if len(g.home) == 0 && len(g.away) == 0 {
			continue
		}
		key := g.pattern()
		if i, ok := byPattern[key]; ok {
			groups[i].size += g.size
			continue
		}
		byPattern[key] = len(groups)
		groups = append(groups, group{size: g.size, home: g.home, away: g.away})
	}
	return groups
}

func (g group) pattern() string {
	var sb strings.Builder
	for _, idx := range g.home {
		sb.WriteString(strconv.Itoa(idx))
		sb.WriteByte(',')
	}
	sb.WriteByte('|')
	for _, idx := range g.away {
		sb.WriteString(strconv.Itoa(idx))
		sb.WriteByte(',')
	}
	return sb.String()
}
