package crawler

import "sync"

// Stats is the immutable per-run snapshot handed back by CrawlAll. It
// replaces any shared mutable progress state: callers get a copy, never a
// live structure.
type Stats struct {
	PerSource         map[string]int
	SourceErrors      int
	SourceTimeouts    int
	DuplicatesRemoved int
}

// counters is the run-local accumulator; worker goroutines update it under
// the mutex.
type counters struct {
	mu    sync.Mutex
	stats Stats
}

func newCounters() *counters {
	return &counters{stats: Stats{PerSource: map[string]int{}}}
}

func (c *counters) recordSource(id string, articles int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.PerSource[id] = articles
}

func (c *counters) recordError(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.PerSource[id] = 0
	c.stats.SourceErrors++
}

func (c *counters) recordTimeout(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.PerSource[id] = 0
	c.stats.SourceErrors++
	c.stats.SourceTimeouts++
}

func (c *counters) recordDuplicates(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.DuplicatesRemoved = n
}

func (c *counters) snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := Stats{
		PerSource:         make(map[string]int, len(c.stats.PerSource)),
		SourceErrors:      c.stats.SourceErrors,
		SourceTimeouts:    c.stats.SourceTimeouts,
		DuplicatesRemoved: c.stats.DuplicatesRemoved,
	}
	for k, v := range c.stats.PerSource {
		out.PerSource[k] = v
	}
	return out
}
