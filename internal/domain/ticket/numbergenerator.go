package ticket

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type NumberGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// DefaultNumberGenerator issues date-scoped sequential ticket numbers of the
// form T-YYYYMMDD-NNNN. Uniqueness across processes is ultimately guaranteed
// by the unique index on the tickets table.
type DefaultNumberGenerator struct {
	mu       sync.Mutex
	counters map[string]int
	now      func() time.Time
}

func NewDefaultNumberGenerator() *DefaultNumberGenerator {
	return &DefaultNumberGenerator{
		counters: make(map[string]int),
		now:      time.Now,
	}
}

func (g *DefaultNumberGenerator) Generate(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	dateKey := g.now().Format("20060102")

	counter := g.counters[dateKey]
	counter++
	g.counters[dateKey] = counter

	return fmt.Sprintf("T-%s-%04d", dateKey, counter), nil
}
