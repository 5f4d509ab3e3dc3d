package phase

import (
	"runtime"
	"sync"
)

// parallelThreshold is the minimum point count to use the worker pool.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 4096

// chunk is a half-open index range [lo, hi) handed to one worker.
type chunk struct {
	lo, hi int
	fn     func(lo, hi int)
}

// Pool runs index-partitioned loops over persistent worker goroutines.
// Each Run call splits [0, n) into one contiguous chunk per worker, so
// no two workers ever touch the same index; that partitioning, not
// locking, is the synchronization discipline for the kernels.
//
// A Pool is not safe for concurrent Run calls from multiple
// goroutines; the simulation loop is its single driver.
type Pool struct {
	workers  int
	workChan chan chunk
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewPool creates a pool with the given worker count. Zero or negative
// means GOMAXPROCS.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		workers:  workers,
		workChan: make(chan chunk, workers),
		doneChan: make(chan struct{}, workers),
		stopChan: make(chan struct{}),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int { return p.workers }

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.stopChan:
			return
		case c, ok := <-p.workChan:
			if !ok {
				return
			}
			c.fn(c.lo, c.hi)
			p.doneChan <- struct{}{}
		}
	}
}

// Run invokes fn over a partition of [0, n) and blocks until every
// chunk has completed. fn must not touch indices outside its range.
func (p *Pool) Run(n int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	chunkSize := (n + p.workers - 1) / p.workers

	dispatched := 0
	for w := 0; w < p.workers; w++ {
		lo := w * chunkSize
		hi := lo + chunkSize
		if hi > n {
			hi = n
		}
		if lo >= hi {
			continue
		}
		p.workChan <- chunk{lo: lo, hi: hi, fn: fn}
		dispatched++
	}

	for i := 0; i < dispatched; i++ {
		<-p.doneChan
	}
}

// RunWorker is like Run but also hands fn the worker slot that owns
// the chunk, for callers that keep per-worker scratch state (for
// example partial deposition fields merged after the loop).
func (p *Pool) RunWorker(n int, fn func(worker, lo, hi int)) {
	if n <= 0 {
		return
	}
	chunkSize := (n + p.workers - 1) / p.workers

	dispatched := 0
	for w := 0; w < p.workers; w++ {
		lo := w * chunkSize
		hi := lo + chunkSize
		if lo >= hi || lo >= n {
			continue
		}
		if hi > n {
			hi = n
		}
		slot := w
		p.workChan <- chunk{lo: lo, hi: hi, fn: func(lo, hi int) {
			fn(slot, lo, hi)
		}}
		dispatched++
	}

	for i := 0; i < dispatched; i++ {
		<-p.doneChan
	}
}

// Close signals all workers to exit and waits for them.
func (p *Pool) Close() {
	close(p.stopChan)
	p.wg.Wait()
}
