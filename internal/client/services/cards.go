package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/bizcards/internal/client/client"
	"github.com/dmitrijs2005/bizcards/internal/client/models"
	"github.com/dmitrijs2005/bizcards/internal/client/repositories/cards"
	"github.com/dmitrijs2005/bizcards/internal/client/validation"
	"github.com/dmitrijs2005/bizcards/internal/logging"
)

// DefaultPageSize is used when the configured page size is not positive.
const DefaultPageSize = 6

// Page is one page of a filtered card listing. Page is 1-based and already
// clamped to [1, max(TotalPages, 1)].
type Page struct {
	Items      []models.Card
	Page       int
	TotalPages int
	Total      int
}

// CardService defines card browsing and mutation for the CLI.
type CardService interface {
	List(ctx context.Context, query string, page int) (Page, error)
	Get(ctx context.Context, id string) (models.Card, error)
	Favorites(ctx context.Context, query string, page int) (Page, error)
	Create(ctx context.Context, in models.CardInput) (models.Card, error)
	ToggleLike(ctx context.Context, id string) (models.Card, error)
}

type cardService struct {
	client   client.Client
	gate     *Gate
	replica  *cards.Replica
	pageSize int
	log      logging.Logger

	mu      sync.Mutex
	pending map[string]struct{}
}

func NewCardService(c client.Client, gate *Gate, replica *cards.Replica, pageSize int, log logging.Logger) CardService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &cardService{
		client:   c,
		gate:     gate,
		replica:  replica,
		pageSize: pageSize,
		log:      log.With("component", "cards"),
		pending:  make(map[string]struct{}),
	}
}

// refresh reloads the replica from the API. When the API is unreachable and
// the replica still holds cards, those are served instead.
func (s *cardService) refresh(ctx context.Context) ([]models.Card, error) {
	list, err := s.client.ListCards(ctx)
	if err != nil {
		if endIfRejected(ctx, s.gate, s.log, err) {
			return nil, fmt.Errorf("list cards: %w", err)
		}
		if ctx.Err() == nil && s.replica.Len() > 0 {
			s.log.Warn(ctx, "card listing failed, serving cached cards", "error", err)
			return s.replica.All(), nil
		}
		return nil, fmt.Errorf("list cards: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.replica.ReplaceAll(list)
	return s.replica.All(), nil
}

func (s *cardService) List(ctx context.Context, query string, page int) (Page, error) {
	all, err := s.refresh(ctx)
	if err != nil {
		return Page{}, err
	}
	return paginate(filter(all, query, models.DefaultSearchFields, nil), page, s.pageSize), nil
}

func (s *cardService) Favorites(ctx context.Context, query string, page int) (Page, error) {
	userID, ok := s.gate.UserID()
	if !ok {
		return Page{}, ErrLoginRequired
	}
	all, err := s.refresh(ctx)
	if err != nil {
		return Page{}, err
	}
	liked := func(c models.Card) bool { return c.LikedBy(userID) }
	return paginate(filter(all, query, models.FavoriteSearchFields, liked), page, s.pageSize), nil
}

func (s *cardService) Get(ctx context.Context, id string) (models.Card, error) {
	card, err := s.client.GetCard(ctx, id)
	if err != nil {
		endIfRejected(ctx, s.gate, s.log, err)
		return models.Card{}, fmt.Errorf("get card %s: %w", id, err)
	}
	if err := ctx.Err(); err != nil {
		return models.Card{}, err
	}
	s.replica.Put(card)
	return card, nil
}

func (s *cardService) Create(ctx context.Context, in models.CardInput) (models.Card, error) {
	if !s.gate.IsAuthenticated() {
		return models.Card{}, ErrLoginRequired
	}
	if !s.gate.CanCreateCard() {
		return models.Card{}, ErrBusinessRequired
	}
	if err := validation.Card(in); err != nil {
		return models.Card{}, err
	}

	card, err := s.client.CreateCard(ctx, in)
	if err != nil {
		endIfRejected(ctx, s.gate, s.log, err)
		return models.Card{}, fmt.Errorf("create card: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return models.Card{}, err
	}
	s.replica.Put(card)
	s.log.Info(ctx, "card created", "card_id", card.ID)
	return card, nil
}

// ToggleLike flips the caller's like in the replica before the API call
// returns. On failure the flip is undone, and a rejected credential ends
// the session; on success a card returned by the
// API replaces the local copy.
func (s *cardService) ToggleLike(ctx context.Context, id string) (models.Card, error) {
	userID, ok := s.gate.UserID()
	if !ok {
		return models.Card{}, ErrLoginRequired
	}

	if _, found := s.replica.Get(id); !found {
		if _, err := s.Get(ctx, id); err != nil {
			return models.Card{}, err
		}
	}

	if !s.begin(id) {
		return models.Card{}, ErrTogglePending
	}
	defer s.end(id)

	var wasLiked bool
	optimistic, ok := s.replica.Update(id, func(c models.Card) models.Card {
		wasLiked = c.LikedBy(userID)
		return c.WithLikeToggled(userID)
	})
	if !ok {
		return models.Card{}, fmt.Errorf("toggle like %s: %w", id, client.ErrNotFound)
	}

	confirmed, err := s.client.ToggleLike(ctx, id)
	if err != nil {
		s.replica.Update(id, func(c models.Card) models.Card {
			if c.LikedBy(userID) != wasLiked {
				return c.WithLikeToggled(userID)
			}
			return c
		})
		s.log.Warn(ctx, "like toggle failed, reverted", "card_id", id, "error", err)
		endIfRejected(ctx, s.gate, s.log, err)
		return models.Card{}, fmt.Errorf("toggle like %s: %w", id, err)
	}
	if confirmed == nil || ctx.Err() != nil {
		return optimistic, nil
	}

	s.replica.Put(*confirmed)
	if confirmed.LikedBy(userID) != optimistic.LikedBy(userID) {
		s.log.Debug(ctx, "like state reconciled with api", "card_id", id, "liked", confirmed.LikedBy(userID))
	}
	return confirmed.Clone(), nil
}

func (s *cardService) begin(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.pending[id]; busy {
		return false
	}
	s.pending[id] = struct{}{}
	return true
}

func (s *cardService) end(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, id)
}

func filter(all []models.Card, query string, fields []models.CardField, keep func(models.Card) bool) []models.Card {
	out := make([]models.Card, 0, len(all))
	for _, c := range all {
		if keep != nil && !keep(c) {
			continue
		}
		if !c.Matches(query, fields...) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func paginate(items []models.Card, page, size int) Page {
	total := len(items)
	totalPages := (total + size - 1) / size

	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * size
	end := min(start+size, total)
	if start > total {
		start = total
	}
	return Page{Items: items[start:end], Page: page, TotalPages: totalPages, Total: total}
}
