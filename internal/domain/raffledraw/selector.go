// Package raffledraw picks raffle winners from a weighted ticket pool.
package raffledraw

import (
	"errors"

	"github.com/metaraffle/backend/pkg/crypto"
)

var ErrNoEntries = errors.New("no entries in the raffle")

// Source yields uniform random values in [0, n).
type Source interface {
	Intn(n int) int
}

type Entry struct {
	UserID     string
	EntryCount int
}

type Selector struct {
	source Source
}

// NewSelector returns a Selector using source. A nil source falls back to
// crypto/rand.
func NewSelector(source Source) *Selector {
	if source == nil {
		source = crypto.Source{}
	}

	return &Selector{source: source}
}

// Select draws up to maxWinners distinct users. Each user holds as many
// tickets as their entry count; a drawn user loses all remaining tickets
// before the next draw.
func (s *Selector) Select(entries []Entry, maxWinners int) ([]string, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	pool := newPool(entries)
	winners := []string{}
	for len(winners) < maxWinners && pool.size() > 0 {
		userID := pool.draw(s.source)
		winners = append(winners, userID)
		pool = pool.without(userID)
	}

	return winners, nil
}

// pool is a flat list of tickets, one element per ticket, holding the index
// of the owning user.
type pool struct {
	users   []string
	tickets []int
}

func newPool(entries []Entry) *pool {
	p := &pool{}
	seen := map[string]int{}
	for _, e := range entries {
		if e.EntryCount <= 0 {
			continue
		}

		idx, ok := seen[e.UserID]
		if !ok {
			idx = len(p.users)
			seen[e.UserID] = idx
			p.users = append(p.users, e.UserID)
		}

		for i := 0; i < e.EntryCount; i++ {
			p.tickets = append(p.tickets, idx)
		}
	}

	return p
}

func (p *pool) size() int {
	return len(p.tickets)
}

func (p *pool) draw(source Source) string {
	return p.users[p.tickets[source.Intn(len(p.tickets))]]
}

// without rebuilds the pool with every ticket of userID removed.
func (p *pool) without(userID string) *pool {
	next := &pool{users: p.users, tickets: make([]int, 0, len(p.tickets))}
	for _, idx := range p.tickets {
		if p.users[idx] != userID {
			next.tickets = append(next.tickets, idx)
		}
	}

	return next
}
