// Package pool provides a fixed-size worker pool for offloading extraction
// and playback tasks off the caller's goroutine.
package pool

import "sync"

// Pool runs submitted tasks on a fixed number of worker goroutines.
type Pool struct {
	tasks chan func()
	wg    sync.WaitGroup
}

// New starts a pool with the given number of workers.
func New(workers int) *Pool {
	p := &Pool{tasks: make(chan func(), workers)}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// Submit queues a task for execution. It blocks only when the queue buffer is
// full and every worker is busy.
func (p *Pool) Submit(task func()) {
	p.tasks <- task
}

// Close stops accepting tasks and waits for the workers to drain the queue.
func (p *Pool) Close() {
	close(p.tasks)
	p.wg.Wait()
}
