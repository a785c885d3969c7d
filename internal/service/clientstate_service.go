package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/milkroute/storefront_api/internal/cache"
	"github.com/milkroute/storefront_api/internal/models"
)

const (
	panelScope     = "active_panel"
	prefsScope     = "prefs"
	favoritesScope = "favorites"
	supportScope   = "support_tickets"
)

// ClientStateService owns the small durable per-user blobs the pages keep
// between visits: the last-active panel marker, preferences, favorites and
// locally filed support tickets.
type ClientStateService struct {
	state *cache.StateCache
}

func NewClientStateService(state *cache.StateCache) *ClientStateService {
	return &ClientStateService{state: state}
}

func owner(userID int) string {
	return fmt.Sprintf("%d", userID)
}

// SetActivePanel records which dashboard panel the user left open.
func (s *ClientStateService) SetActivePanel(ctx context.Context, userID int, panel string) error {
	return s.state.SetJSON(ctx, panelScope, owner(userID), panel)
}

// TakeActivePanel reads and consumes the panel marker; it steers exactly one
// page load.
func (s *ClientStateService) TakeActivePanel(ctx context.Context, userID int) (string, error) {
	var panel string
	found, err := s.state.TakeJSON(ctx, panelScope, owner(userID), &panel)
	if err != nil || !found {
		return "", err
	}
	return panel, nil
}

// Prefs loads the user's preferences, zero-valued when unset.
func (s *ClientStateService) Prefs(ctx context.Context, userID int) (models.UserPrefs, error) {
	var prefs models.UserPrefs
	_, err := s.state.GetJSON(ctx, prefsScope, owner(userID), &prefs)
	return prefs, err
}

// SavePrefs stores the user's preferences.
func (s *ClientStateService) SavePrefs(ctx context.Context, userID int, prefs models.UserPrefs) error {
	return s.state.SetJSON(ctx, prefsScope, owner(userID), prefs)
}

// Favorites lists the user's favorite product ids.
func (s *ClientStateService) Favorites(ctx context.Context, userID int) ([]int, error) {
	favorites := []int{}
	_, err := s.state.GetJSON(ctx, favoritesScope, owner(userID), &favorites)
	return favorites, err
}

// ToggleFavorite flips a product in the favorites set and returns the new
// set.
func (s *ClientStateService) ToggleFavorite(ctx context.Context, userID, productID int) ([]int, error) {
	favorites, err := s.Favorites(ctx, userID)
	if err != nil {
		return nil, err
	}
	next := make([]int, 0, len(favorites)+1)
	removed := false
	for _, id := range favorites {
		if id == productID {
			removed = true
			continue
		}
		next = append(next, id)
	}
	if !removed {
		next = append(next, productID)
	}
	if err := s.state.SetJSON(ctx, favoritesScope, owner(userID), next); err != nil {
		return nil, err
	}
	return next, nil
}

// SupportTickets lists the user's locally filed tickets, newest first.
func (s *ClientStateService) SupportTickets(ctx context.Context, userID int) ([]models.SupportTicket, error) {
	tickets := []models.SupportTicket{}
	_, err := s.state.GetJSON(ctx, supportScope, owner(userID), &tickets)
	return tickets, err
}

// FileSupportTicket prepends a new open ticket and returns the list.
func (s *ClientStateService) FileSupportTicket(ctx context.Context, userID int, subject, message string) ([]models.SupportTicket, error) {
	tickets, err := s.SupportTickets(ctx, userID)
	if err != nil {
		return nil, err
	}
	ticket := models.SupportTicket{
		ID:        uuid.New().String(),
		Subject:   subject,
		Message:   message,
		Status:    "open",
		CreatedAt: time.Now().Format(time.RFC3339),
	}
	tickets = append([]models.SupportTicket{ticket}, tickets...)
	if err := s.state.SetJSON(ctx, supportScope, owner(userID), tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}
