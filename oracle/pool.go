package oracle

import (
	"context"
	"errors"
	"sync"

	guuid "github.com/google/uuid"
)

var (
	ErrEmptyPool     = errors.New("pool needs at least one instance")
	ErrWrongInstance = errors.New("wrong instance released")
)

type Instance struct {
	id     guuid.UUID
	Oracle Oracle
}

func (i *Instance) ID() guuid.UUID {
	return i.id
}

// Pool hands out oracle instances to enumeration workers.
type Pool struct {
	idSet map[guuid.UUID]bool
	pool  chan *Instance
	mutex sync.Mutex
	out   map[guuid.UUID]bool
}

func NewPool(name string, limit int) (*Pool, error) {
	if limit < 1 {
		return nil, ErrEmptyPool
	}

	oracles := make([]Oracle, 0, limit)
	for i := 0; i < limit; i++ {
		o, err := New(name)
		if err != nil {
			return nil, err
		}
		oracles = append(oracles, o)
	}
	return NewPoolOf(oracles...)
}

// NewPoolOf pools the given oracle instances.
func NewPoolOf(oracles ...Oracle) (*Pool, error) {
	if len(oracles) == 0 {
		return nil, ErrEmptyPool
	}

	idSet := make(map[guuid.UUID]bool)
	ch := make(chan *Instance, len(oracles))
	for _, o := range oracles {
		id := guuid.New()
		idSet[id] = true
		ch <- &Instance{
			id:     id,
			Oracle: o,
		}
	}

	return &Pool{
		idSet: idSet,
		pool:  ch,
		out:   make(map[guuid.UUID]bool),
	}, nil
}

// Acquire blocks until an instance is free or ctx is done.
func (p *Pool) Acquire(ctx context.Context) (*Instance, error) {
	select {
	case instance := <-p.pool:
		p.mutex.Lock()
		p.out[instance.id] = true
		p.mutex.Unlock()
		return instance, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (p *Pool) Release(instance *Instance) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if instance == nil || !p.idSet[instance.id] || !p.out[instance.id] {
		return ErrWrongInstance
	}

	delete(p.out, instance.id)
	p.pool <- instance
	return nil
}

func (p *Pool) Size() int {
	return len(p.idSet)
}
