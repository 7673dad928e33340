package model

import "sync"

// transitions collects the cells that change state in one generation
type transitions struct {
	born []*Cell
	dies []*Cell
}

func (t *transitions) apply() {
	for _, c := range t.born {
		c.SetAlive()
	}
	for _, c := range t.dies {
		c.SetDead()
	}
}

func (t *transitions) reset() {
	clear(t.born)
	clear(t.dies)
	t.born = t.born[:0]
	t.dies = t.dies[:0]
}

// scratchPool recycles transition buffers between generations
type scratchPool struct {
	pool sync.Pool
}

func newScratchPool() *scratchPool {
	return &scratchPool{
		pool: sync.Pool{
			New: func() interface{} {
				return &transitions{}
			},
		},
	}
}

// Get retrieves an empty transition buffer
func (p *scratchPool) Get() *transitions {
	return p.pool.Get().(*transitions)
}

// Put returns a buffer to the pool, dropping its cell references
func (p *scratchPool) Put(t *transitions) {
	t.reset()
	p.pool.Put(t)
}
