package neighbours

import (
	"sync"

	"github.com/routeforge/hgsvrp/internal/model"
)

// Build computes the neighbour list for every client in problem. When
// cfg.Concurrency > 1 the work is spread across a small bounded worker
// pool, partitioning the client index range across goroutines — this
// runs once, strictly before generation 0, and never touches any route
// or solution, so it does not violate the single-threaded-per-generation
// invariant that governs everything downstream of it.
func Build(problem *model.ProblemData, cfg Config) *List {
	n := problem.NumLocations()
	lists := make(map[int][]int, n-problem.NumDepots())

	workers := cfg.Concurrency
	if workers < 1 {
		workers = 1
	}
	clients := make([]int, 0, n-problem.NumDepots())
	for c := problem.NumDepots(); c < n; c++ {
		clients = append(clients, c)
	}
	if workers > len(clients) {
		workers = len(clients)
	}
	if workers <= 1 || len(clients) == 0 {
		for _, c := range clients {
			lists[c] = buildOne(problem, c, cfg)
		}
		return &List{cfg: cfg, lists: lists}
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	chunk := (len(clients) + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= len(clients) {
			break
		}
		end := start + chunk
		if end > len(clients) {
			end = len(clients)
		}
		wg.Add(1)
		go func(batch []int) {
			defer wg.Done()
			local := make(map[int][]int, len(batch))
			for _, c := range batch {
				local[c] = buildOne(problem, c, cfg)
			}
			mu.Lock()
			for c, l := range local {
				lists[c] = l
			}
			mu.Unlock()
		}(clients[start:end])
	}
	wg.Wait()

	return &List{cfg: cfg, lists: lists}
}
