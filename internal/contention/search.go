package contention

import (
	"context"
	"sync"
)

// checkEvery is how many nodes a walker visits between context checks.
const checkEvery = 1 << 12

// subtreesPerWorker sizes the parallel frontier so a worker that draws a
// pruned subtree still finds more work queued.
const subtreesPerWorker = 4

type search struct {
	groups    []group
	members   int
	allowTies bool
	// reach[d][m] is the most wins member m can still collect from groups[d:].
	reach [][]int
}

func newSearch(groups []group, members int, allowTies bool) *search {
	reach := make([][]int, len(groups)+1)
	reach[len(groups)] = make([]int, members)
	for d := len(groups) - 1; d >= 0; d-- {
		row := append([]int(nil), reach[d+1]...)
		for _, idx := range groups[d].home {
			row[idx] += groups[d].size
		}
		for _, idx := range groups[d].away {
			row[idx] += groups[d].size
		}
		reach[d] = row
	}

	return &search{
		groups:    groups,
		members:   members,
		allowTies: allowTies,
		reach:     reach,
	}
}

// walker is the exploration state owned by a single goroutine.
type walker struct {
	*search
	ctx     context.Context
	alive   []bool
	pending int
	visited int
	err     error
	// buf[d] holds the totals at depth d. A child only writes deeper rows,
	// so each branch starts from a fresh copy of its parent.
	buf [][]int
}

func (s *search) newWalker(ctx context.Context) *walker {
	buf := make([][]int, len(s.groups)+1)
	for i := range buf {
		buf[i] = make([]int, s.members)
	}
	return &walker{
		search:  s,
		ctx:     ctx,
		alive:   make([]bool, s.members),
		pending: s.members,
		buf:     buf,
	}
}

func (s *search) run(ctx context.Context, wins []int) ([]bool, error) {
	w := s.newWalker(ctx)
	copy(w.buf[0], wins)
	w.descend(0)
	return w.alive, w.err
}

// runParallel expands the top levels of the tree into a frontier of subtrees
// and lets workers pull them from a queue. Each worker prunes against what it
// alone has proven alive; the results are merged once all subtrees are done.
func (s *search) runParallel(ctx context.Context, wins []int, workers int) ([]bool, error) {
	root := s.newWalker(ctx)
	if !root.reachable(0, wins) {
		return root.alive, nil
	}

	depth, nodes := s.frontier(wins, workers*subtreesPerWorker)
	queue := make(chan []int, len(nodes))
	for _, totals := range nodes {
		queue <- totals
	}
	close(queue)
	workers = min(workers, len(nodes))

	walkers := make([]*walker, workers)
	var wg sync.WaitGroup
	for n := range workers {
		w := s.newWalker(ctx)
		walkers[n] = w
		wg.Add(1)
		go func() {
			defer wg.Done()
			for totals := range queue {
				if w.pending == 0 || w.err != nil {
					continue
				}
				copy(w.buf[depth], totals)
				w.descend(depth)
			}
		}()
	}
	wg.Wait()

	alive := make([]bool, s.members)
	for _, w := range walkers {
		if w.err != nil {
			return nil, w.err
		}
		for i, a := range w.alive {
			alive[i] = alive[i] || a
		}
	}
	return alive, nil
}

// frontier expands groups breadth-first until there are at least want
// subtrees or no groups are left, and returns the depth it stopped at.
func (s *search) frontier(wins []int, want int) (int, [][]int) {
	nodes := [][]int{append([]int(nil), wins...)}
	depth := 0
	for depth < len(s.groups) && len(nodes) < want {
		g := s.groups[depth]
		next := make([][]int, 0, len(nodes)*(g.size+1))
		for _, totals := range nodes {
			for j := 0; j <= g.size; j++ {
				child := append([]int(nil), totals...)
				g.apply(j, child)
				next = append(next, child)
			}
		}
		nodes = next
		depth++
	}
	return depth, nodes
}

func (w *walker) descend(depth int) {
	if w.visited++; w.visited%checkEvery == 0 {
		w.err = w.ctx.Err()
	}
	if w.err != nil {
		return
	}

	totals := w.buf[depth]
	if depth == len(w.groups) {
		w.settle(totals)
		return
	}
	if !w.reachable(depth, totals) {
		return
	}

	g := w.groups[depth]
	next := w.buf[depth+1]
	for j := 0; j <= g.size && w.pending > 0 && w.err == nil; j++ {
		copy(next, totals)
		g.apply(j, next)
		w.descend(depth + 1)
	}
}

// apply decides homeWins of the group's games for home and the rest for away.
func (g group) apply(homeWins int, totals []int) {
	for _, idx := range g.home {
		totals[idx] += homeWins
	}
	for _, idx := range g.away {
		totals[idx] += g.size - homeWins
	}
}

// reachable reports whether a member not yet alive could still lead in some
// leaf below this node. A member's total can grow by at most its reach, and
// every rival keeps at least its current total.
func (w *walker) reachable(depth int, totals []int) bool {
	if w.pending == 0 {
		return false
	}

	first, second := -1, -1
	for i, v := range totals {
		switch {
		case first < 0 || v > totals[first]:
			second = first
			first = i
		case second < 0 || v > totals[second]:
			second = i
		}
	}

	reach := w.reach[depth]
	for i, v := range totals {
		if w.alive[i] {
			continue
		}
		rival := first
		if i == first {
			rival = second
		}
		if rival < 0 {
			return true
		}
		best := v + reach[i]
		if best > totals[rival] || (w.allowTies && best == totals[rival]) {
			return true
		}
	}
	return false
}

func (w *walker) settle(totals []int) {
	for _, idx := range leaders(totals, w.allowTies) {
		if !w.alive[idx] {
			w.alive[idx] = true
			w.pending--
		}
	}
}

// leaders returns the indexes that lead a finished scenario. With ties
// disallowed a shared top total produces no leader at all.
func leaders(totals []int, allowTies bool) []int {
	if len(totals) == 0 {
		return nil
	}
	top := totals[0]
	for _, v := range totals[1:] {
		top = max(top, v)
	}

	var idx []int
	for i, v := range totals {
		if v == top {
			idx = append(idx, i)
		}
	}
	if !allowTies && len(idx) > 1 {
		return nil
	}
	return idx
}
