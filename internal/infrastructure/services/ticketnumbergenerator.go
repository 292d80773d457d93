package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"crmdesk/internal/shared/constants"
)

// TicketNumberGenerator issues date-scoped sequential numbers of the form
// T-YYYYMMDD-NNNN, seeding each day's counter from the highest number already
// stored. Uniqueness across processes is ultimately guaranteed by the unique
// index on the tickets table.
type TicketNumberGenerator struct {
	db    *gorm.DB
	mu    sync.Mutex
	cache map[string]int
	now   func() time.Time
}

func NewTicketNumberGenerator(db *gorm.DB) *TicketNumberGenerator {
	return &TicketNumberGenerator{
		db:    db,
		cache: make(map[string]int),
		now:   time.Now,
	}
}

func (g *TicketNumberGenerator) Generate(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	dateStr := g.now().UTC().Format("20060102")

	seq, err := g.nextSequence(ctx, dateStr)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("T-%s-%04d", dateStr, seq), nil
}

func (g *TicketNumberGenerator) nextSequence(ctx context.Context, dateStr string) (int, error) {
	if seq, ok := g.cache[dateStr]; ok {
		g.cache[dateStr] = seq + 1
		return seq + 1, nil
	}

	var maxNumber string
	prefix := fmt.Sprintf("T-%s-", dateStr)

	err := g.db.WithContext(ctx).
		Table(constants.TableTickets).
		Select("MAX(number)").
		Where("number LIKE ?", prefix+"%").
		Scan(&maxNumber).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("failed to get max ticket number: %w", err)
	}

	seq := 1
	if maxNumber != "" {
		fmt.Sscanf(maxNumber, prefix+"%d", &seq)
		seq++
	}

	g.cache[dateStr] = seq
	return seq, nil
}
