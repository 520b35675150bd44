package ports

import (
	"context"

	"github.com/zhivlux/storefront/internal/domain"
)

// GameRepository — каталог игр поверх data API.
type GameRepository interface {
	// List — выборка с фильтрами (категория, популярность, статус, поиск).
	List(ctx context.Context, f domain.GameFilters) ([]domain.Product, error)

	// BySlug — (nil, nil), если активной игры с таким slug нет.
	BySlug(ctx context.Context, slug string) (*domain.Product, error)

	// Create — создать запись; возвращает id. JSON-колонки формы
	// должны быть провалидированы до вызова.
	Create(ctx context.Context, form *domain.GameForm) (string, error)

	// Update — частичное обновление по id (PATCH-семантика).
	Update(ctx context.Context, id string, patch map[string]any) error

	// Delete — удалить запись по id.
	Delete(ctx context.Context, id string) error

	// Stats — агрегаты для админ-дашборда.
	Stats(ctx context.Context) (*domain.GameStats, error)
}

// BannerRepository — активные баннеры главной страницы.
type BannerRepository interface {
	ListActive(ctx context.Context) ([]domain.Banner, error)
}
