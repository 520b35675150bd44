package xata

import (
	"context"
	"encoding/json"

	"github.com/zhivlux/storefront/internal/domain"
	"github.com/zhivlux/storefront/internal/ports"
)

var _ ports.BannerRepository = (*BannerRepository)(nil)

const bannersTable = "banners"

type bannerRecord struct {
	ID       string `json:"id"`
	ImageURL string `json:"image_url"`
	IsActive bool   `json:"is_active"`
}

// BannerRepository — активные баннеры главной страницы.
type BannerRepository struct {
	client *Client
	log    ports.Logger
}

func NewBannerRepository(client *Client, log ports.Logger) *BannerRepository {
	return &BannerRepository{client: client, log: log}
}

func (r *BannerRepository) ListActive(ctx context.Context) ([]domain.Banner, error) {
	records, err := r.client.Query(ctx, bannersTable, query{
		Filter: map[string]any{"is_active": true},
	})
	if err != nil {
		return nil, err
	}
	banners := make([]domain.Banner, 0, len(records))
	for _, raw := range records {
		var rec bannerRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			r.log.Warnf(ctx, "banners: skipping unreadable record: %v", err)
			continue
		}
		banners = append(banners, domain.Banner{ID: rec.ID, ImageURL: rec.ImageURL, IsActive: rec.IsActive})
	}
	return banners, nil
}
