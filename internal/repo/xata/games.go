package xata

import (
	"context"
	"encoding/json"

	"github.com/zhivlux/storefront/internal/domain"
	"github.com/zhivlux/storefront/internal/ports"
)

var _ ports.GameRepository = (*GameRepository)(nil)

const gamesTable = "games"

// gameRecord — запись таблицы games как её хранит data API.
// JSON-колонки (variants, instructions, user_fields, tags, platforms)
// лежат строками и разбираются при маппинге в домен.
type gameRecord struct {
	ID           string  `json:"id,omitempty"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Description  string  `json:"description,omitempty"`
	Category     string  `json:"category"`
	IsPopular    bool    `json:"is_popular"`
	ImageURL     string  `json:"image_url,omitempty"`
	Variants     string  `json:"variants,omitempty"`
	CurrencyName string  `json:"currency_name,omitempty"`
	Instructions string  `json:"instructions,omitempty"`
	UserFields   string  `json:"user_fields,omitempty"`
	Tags         string  `json:"tags,omitempty"`
	Platforms    string  `json:"platforms,omitempty"`
	Rating       float64 `json:"rating"`
	TotalReviews int     `json:"total_reviews"`
	Status       string  `json:"status,omitempty"`
}

// GameRepository — каталог игр поверх data API.
type GameRepository struct {
	client *Client
	log    ports.Logger
}

func NewGameRepository(client *Client, log ports.Logger) *GameRepository {
	return &GameRepository{client: client, log: log}
}

// List — выборка каталога с фильтрами. Поиск — регистронезависимое
// вхождение по имени, описанию и тегам.
func (r *GameRepository) List(ctx context.Context, f domain.GameFilters) ([]domain.Product, error) {
	filter := map[string]any{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.IsPopular != nil {
		filter["is_popular"] = *f.IsPopular
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Search != "" {
		filter["$any"] = []map[string]any{
			{"name": map[string]any{"$iContains": f.Search}},
			{"description": map[string]any{"$iContains": f.Search}},
			{"tags": map[string]any{"$iContains": f.Search}},
		}
	}

	records, err := r.client.Query(ctx, gamesTable, query{
		Filter: filter,
		Sort: []map[string]string{
			{"is_popular": "desc"},
			{"name": "asc"},
		},
	})
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(records))
	for _, raw := range records {
		var rec gameRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			r.log.Warnf(ctx, "games: skipping unreadable record: %v", err)
			continue
		}
		products = append(products, r.toProduct(ctx, rec))
	}
	return products, nil
}

// BySlug — активная игра по slug; (nil, nil) при отсутствии.
func (r *GameRepository) BySlug(ctx context.Context, slug string) (*domain.Product, error) {
	records, err := r.client.Query(ctx, gamesTable, query{
		Filter: map[string]any{"slug": slug, "status": string(domain.StatusActive)},
		Page:   &page{Size: 1},
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	var rec gameRecord
	if err := json.Unmarshal(records[0], &rec); err != nil {
		return nil, err
	}
	p := r.toProduct(ctx, rec)
	return &p, nil
}

// Create — создать запись из провалидированной формы.
func (r *GameRepository) Create(ctx context.Context, form *domain.GameForm) (string, error) {
	return r.client.Create(ctx, gamesTable, gameRecord{
		Name:         form.Name,
		Slug:         form.Slug,
		Description:  form.Description,
		Category:     form.Category,
		IsPopular:    form.IsPopular,
		ImageURL:     form.ImageURL,
		Variants:     form.Variants,
		CurrencyName: form.CurrencyName,
		Instructions: form.Instructions,
		UserFields:   form.UserFields,
		Tags:         form.Tags,
		Platforms:    form.Platforms,
		Rating:       form.Rating,
		Status:       string(form.Status),
	})
}

// Update — частичное обновление записи (PATCH-семантика).
func (r *GameRepository) Update(ctx context.Context, id string, patch map[string]any) error {
	return r.client.Patch(ctx, gamesTable, id, patch)
}

// Delete — удалить запись каталога.
func (r *GameRepository) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, gamesTable, id)
}

// Stats — агрегаты для админ-дашборда одним запросом.
func (r *GameRepository) Stats(ctx context.Context) (*domain.GameStats, error) {
	aggs, err := r.client.Aggregate(ctx, gamesTable, map[string]any{
		"total":      map[string]any{"count": "*"},
		"popular":    map[string]any{"count": map[string]any{"filter": map[string]any{"is_popular": true}}},
		"games":      map[string]any{"count": map[string]any{"filter": map[string]any{"category": domain.CategoryGame}}},
		"apps":       map[string]any{"count": map[string]any{"filter": map[string]any{"category": domain.CategoryApps}}},
		"vouchers":   map[string]any{"count": map[string]any{"filter": map[string]any{"category": domain.CategoryVoucher}}},
		"avg_rating": map[string]any{"average": map[string]any{"column": "rating"}},
		"reviews":    map[string]any{"sum": map[string]any{"column": "total_reviews"}},
	})
	if err != nil {
		return nil, err
	}
	return &domain.GameStats{
		TotalGames:   int(aggs["total"]),
		PopularGames: int(aggs["popular"]),
		Categories: map[string]int{
			domain.CategoryGame:    int(aggs["games"]),
			domain.CategoryApps:    int(aggs["apps"]),
			domain.CategoryVoucher: int(aggs["vouchers"]),
		},
		AvgRating:    aggs["avg_rating"],
		TotalReviews: int(aggs["reviews"]),
	}, nil
}

// toProduct — маппинг записи в домен. Порченые вспомогательные JSON-колонки
// деградируют в значения по умолчанию, запись при этом не теряется.
func (r *GameRepository) toProduct(ctx context.Context, rec gameRecord) domain.Product {
	variants, err := domain.ParseVariants(rec.Variants)
	if err != nil {
		r.log.Warnf(ctx, "games: %s: unusable variants column: %v", rec.ID, err)
		variants = domain.VariantSet{}
	}

	status := domain.Status(rec.Status)
	if status == "" {
		status = domain.StatusActive
	}

	return domain.Product{
		ID:           rec.ID,
		Name:         rec.Name,
		Slug:         rec.Slug,
		Description:  rec.Description,
		Category:     rec.Category,
		IsPopular:    rec.IsPopular,
		ImageURL:     rec.ImageURL,
		Variants:     variants,
		CurrencyName: rec.CurrencyName,
		Instructions: r.stringList(ctx, rec.ID, "instructions", rec.Instructions),
		UserFields:   r.userFields(ctx, rec.ID, rec.UserFields),
		Tags:         r.stringList(ctx, rec.ID, "tags", rec.Tags),
		Platforms:    r.stringList(ctx, rec.ID, "platforms", rec.Platforms),
		Rating:       rec.Rating,
		TotalReviews: rec.TotalReviews,
		Status:       status,
	}
}

func (r *GameRepository) stringList(ctx context.Context, id, column, raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		r.log.Warnf(ctx, "games: %s: unusable %s column: %v", id, column, err)
		return nil
	}
	return out
}

func (r *GameRepository) userFields(ctx context.Context, id, raw string) domain.UserFields {
	if raw == "" {
		return domain.DefaultUserFields()
	}
	var uf domain.UserFields
	if err := json.Unmarshal([]byte(raw), &uf); err != nil {
		r.log.Warnf(ctx, "games: %s: unusable user_fields column: %v", id, err)
		return domain.DefaultUserFields()
	}
	if uf.UserID.Label == "" {
		uf.UserID = domain.DefaultUserFields().UserID
	}
	return uf
}
