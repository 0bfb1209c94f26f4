package contention

// Exhaustive walks every one of the 2^R outcomes game by game with no
// collapsing or pruning. It answers the same question as Compute and exists
// to check it.
func Exhaustive(in Input, opts Options) (Result, error) {
	if err := checkCapacity(in, opts); err != nil {
		return nil, err
	}

	t := newTally(in)
	if len(t.ids) == 0 {
		return Result{}, nil
	}

	alive := make([]bool, len(t.ids))
	var walk func(i int, wins []int)
	walk = func(i int, wins []int) {
		if i == len(t.games) {
			for _, idx := range leaders(wins, opts.AllowTies) {
				alive[idx] = true
			}
			return
		}

		game := t.games[i]
		for _, winner := range []Side{Home, Away} {
			next := append([]int(nil), wins...)
			movers := game.home
			if winner == Away {
				movers = game.away
			}
			for _, idx := range movers {
				next[idx]++
			}
			walk(i+1, next)
		}
	}
	walk(0, t.wins)

	return t.result(alive), nil
}
