package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/zhivlux/storefront/internal/domain"
	"github.com/zhivlux/storefront/internal/ports"
	"github.com/zhivlux/storefront/pkg/validate"
)

// Колонки, в которых patch-значения обязаны быть валидным JSON.
var jsonColumns = []string{"variants", "instructions", "tags", "platforms", "user_fields"}

// GameService — операции каталога для витрины и админ-консоли.
type GameService struct {
	games     ports.GameRepository
	validator *validate.GameFormValidator
	log       ports.Logger
}

func NewGameService(games ports.GameRepository, log ports.Logger) *GameService {
	return &GameService{games: games, validator: validate.NewGameFormValidator(), log: log}
}

// List — выборка каталога с фильтрами.
func (s *GameService) List(ctx context.Context, f domain.GameFilters) ([]domain.Product, error) {
	return s.games.List(ctx, f)
}

// BySlug — активная игра по slug; (nil, nil) при отсутствии.
func (s *GameService) BySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.games.BySlug(ctx, slug)
}

// Search — регистронезависимый поиск по активному каталогу.
func (s *GameService) Search(ctx context.Context, q string) ([]domain.Product, error) {
	return s.games.List(ctx, domain.GameFilters{
		Search: q,
		Status: string(domain.StatusActive),
	})
}

// PopularGames — отмеченные популярными активные игры; limit <= 0 — первые 8.
func (s *GameService) PopularGames(ctx context.Context, limit int) ([]domain.Product, error) {
	popular := true
	products, err := s.games.List(ctx, domain.GameFilters{
		IsPopular: &popular,
		Status:    string(domain.StatusActive),
	})
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 8
	}
	if len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

// Create — создать игру из формы админ-консоли. Пустой slug выводится
// из имени; статус по умолчанию active.
func (s *GameService) Create(ctx context.Context, form *domain.GameForm) (string, error) {
	if form != nil {
		if form.Slug == "" {
			form.Slug = Slugify(form.Name)
		}
		if form.Status == "" {
			form.Status = domain.StatusActive
		}
	}
	if err := s.validator.Validate(ctx, form); err != nil {
		return "", err
	}
	id, err := s.games.Create(ctx, form)
	if err != nil {
		return "", err
	}
	s.log.Infof(ctx, "games: created %s (%s)", form.Name, id)
	return id, nil
}

// Update — частичное обновление игры. JSON-колонки в patch валидируются
// жадно, смешанные формы variants отклоняются до записи.
func (s *GameService) Update(ctx context.Context, id string, patch map[string]any) error {
	if len(patch) == 0 {
		return fmt.Errorf("%w: пустой patch", validate.ErrInvalidGameForm)
	}
	if err := s.validatePatch(ctx, patch); err != nil {
		return err
	}
	return s.games.Update(ctx, id, patch)
}

// Delete — удалить игру из каталога.
func (s *GameService) Delete(ctx context.Context, id string) error {
	if err := s.games.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Infof(ctx, "games: deleted %s", id)
	return nil
}

// Stats — агрегаты для админ-дашборда.
func (s *GameService) Stats(ctx context.Context) (*domain.GameStats, error) {
	return s.games.Stats(ctx)
}

// TogglePopularity — пометить/снять пометку популярности.
func (s *GameService) TogglePopularity(ctx context.Context, id string, isPopular bool) error {
	return s.games.Update(ctx, id, map[string]any{"is_popular": isPopular})
}

// UpdateGameStatus — перевести игру между active/inactive/maintenance.
func (s *GameService) UpdateGameStatus(ctx context.Context, id string, status domain.Status) error {
	switch status {
	case domain.StatusActive, domain.StatusInactive, domain.StatusMaintenance:
	default:
		return fmt.Errorf("%w: status %q не поддерживается", validate.ErrInvalidGameForm, status)
	}
	return s.games.Update(ctx, id, map[string]any{"status": string(status)})
}

func (s *GameService) validatePatch(ctx context.Context, patch map[string]any) error {
	form := &domain.GameForm{
		Name:     "patch",
		Category: domain.CategoryGame,
	}
	for _, column := range jsonColumns {
		raw, ok := patch[column]
		if !ok {
			continue
		}
		str, ok := raw.(string)
		if !ok {
			return fmt.Errorf("%w: %s должен быть строковой JSON-колонкой", validate.ErrInvalidGameForm, column)
		}
		switch column {
		case "variants":
			form.Variants = str
		case "instructions":
			form.Instructions = str
		case "tags":
			form.Tags = str
		case "platforms":
			form.Platforms = str
		case "user_fields":
			form.UserFields = str
		}
	}
	if status, ok := patch["status"].(string); ok {
		form.Status = domain.Status(status)
	}
	if category, ok := patch["category"].(string); ok {
		form.Category = category
	}
	return s.validator.Validate(ctx, form)
}

// Slugify — slug из отображаемого имени: нижний регистр, последовательности
// не-алфанумерики схлопываются в один дефис.
func Slugify(name string) string {
	var b strings.Builder
	prevDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		case !prevDash:
			b.WriteByte('-')
			prevDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}
