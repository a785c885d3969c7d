package cart

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/milkroute/storefront_api/internal/models"
)

// Store holds per-session one-time carts in memory. Carts are ephemeral and
// lost on restart; the only durable snapshot is the pending intent blob.
type Store struct {
	mu    sync.Mutex
	carts map[string][]models.CartLine
}

// NewStore creates an empty cart store.
func NewStore() *Store {
	return &Store{carts: make(map[string][]models.CartLine)}
}

// Lines returns a copy of the session's cart in stable line order.
func (s *Store) Lines(sid string) []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[sid]
	out := make([]models.CartLine, len(lines))
	copy(out, lines)
	return out
}

// Add merges a line into the cart. An existing line with the same key gains
// the quantity; a quantity at or below zero after merging removes the line.
func (s *Store) Add(sid string, line models.CartLine) []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[sid]
	merged := false
	for i := range lines {
		if lines[i].LineKey == line.LineKey {
			lines[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged && line.Quantity > 0 {
		lines = append(lines, line)
	}
	lines = dropEmpty(lines)
	s.carts[sid] = lines
	out := make([]models.CartLine, len(lines))
	copy(out, lines)
	return out
}

// SetQuantity pins a line's quantity. Zero or below removes the line.
func (s *Store) SetQuantity(sid, lineKey string, quantity int) []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[sid]
	for i := range lines {
		if lines[i].LineKey == lineKey {
			lines[i].Quantity = quantity
			break
		}
	}
	lines = dropEmpty(lines)
	s.carts[sid] = lines
	out := make([]models.CartLine, len(lines))
	copy(out, lines)
	return out
}

// Remove drops a line by key.
func (s *Store) Remove(sid, lineKey string) []models.CartLine {
	return s.SetQuantity(sid, lineKey, 0)
}

// CatalogEntry is the slice of product data intent resolution needs.
type CatalogEntry struct {
	ID                   int
	Name                 string
	Price                float64
	RequiresSubscription bool
}

// MergeIntent replays a pending checkout intent into the cart. Items are
// resolved against the catalog by product id first, then by normalized name.
// Unresolved items stay visible as unavailable lines under a synthetic key so
// the customer can see what could not be honored. Existing cart lines are
// merged into, never replaced.
func (s *Store) MergeIntent(sid string, intent models.PendingIntent, catalog []CatalogEntry) []models.CartLine {
	byID := make(map[int]int, len(catalog))
	byName := make(map[string]int, len(catalog))
	for i, p := range catalog {
		byID[p.ID] = i
		byName[normalizeName(p.Name)] = i
	}

	for idx, item := range intent.Items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		pos, ok := byID[item.ProductID]
		if !ok || item.ProductID == 0 {
			pos, ok = byName[normalizeName(item.Name)]
		}
		if ok {
			p := catalog[pos]
			s.Add(sid, models.CartLine{
				LineKey:              strconv.Itoa(p.ID),
				ProductID:            p.ID,
				Name:                 p.Name,
				Price:                p.Price,
				Quantity:             qty,
				RequiresSubscription: p.RequiresSubscription,
			})
			continue
		}
		s.Add(sid, models.CartLine{
			LineKey:     "missing-" + normalizeName(item.Name) + "-" + strconv.Itoa(idx),
			Name:        item.Name,
			Quantity:    qty,
			Unavailable: true,
		})
	}
	return s.Lines(sid)
}

// Clear empties the session's cart.
func (s *Store) Clear(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sid)
}

// Drop removes all cart state for a session (logout teardown).
func (s *Store) Drop(sid string) {
	s.Clear(sid)
}

func dropEmpty(lines []models.CartLine) []models.CartLine {
	out := lines[:0]
	for _, l := range lines {
		if l.Quantity > 0 {
			out = append(out, l)
		}
	}
	return out
}

func normalizeName(name string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	return strings.Join(fields, "-")
}

// SortLines orders lines for display: available lines first in key order,
// unavailable intent remnants last.
func SortLines(lines []models.CartLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].Unavailable != lines[j].Unavailable {
			return !lines[i].Unavailable
		}
		return lines[i].LineKey < lines[j].LineKey
	})
}
