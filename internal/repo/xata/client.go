// Package xata — репозитории каталога и журнала заказов поверх
// Xata-совместимого data API (REST, bearer-токен).
package xata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/zhivlux/storefront/config"
)

// Client — низкоуровневый клиент data API: query/create/patch/delete/aggregate
// по таблицам. Репозитории собираются поверх него.
type Client struct {
	baseURL  string
	apiKey   string
	pageSize int
	http     *http.Client
}

// NewClient — клиент по настройкам backend-секции.
func NewClient(cfg config.Backend) *Client {
	return &Client{
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		pageSize: cfg.PageSize,
		http:     &http.Client{Timeout: cfg.Timeout},
	}
}

// query — тело запроса /query: фильтр, сортировка, размер страницы.
type query struct {
	Filter map[string]any      `json:"filter,omitempty"`
	Sort   []map[string]string `json:"sort,omitempty"`
	Page   *page               `json:"page,omitempty"`
}

type page struct {
	Size int `json:"size"`
}

type queryResponse struct {
	Records []json.RawMessage `json:"records"`
}

type createResponse struct {
	ID string `json:"id"`
}

type aggregateResponse struct {
	Aggs map[string]float64 `json:"aggs"`
}

// Query — выборка записей таблицы; сырые записи разбирает репозиторий.
func (c *Client) Query(ctx context.Context, table string, q query) ([]json.RawMessage, error) {
	if q.Page == nil && c.pageSize > 0 {
		q.Page = &page{Size: c.pageSize}
	}
	var resp queryResponse
	if err := c.do(ctx, http.MethodPost, "/tables/"+table+"/query", q, &resp); err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	return resp.Records, nil
}

// Create — вставка записи; возвращает id, назначенный бэкендом.
func (c *Client) Create(ctx context.Context, table string, payload any) (string, error) {
	var resp createResponse
	if err := c.do(ctx, http.MethodPost, "/tables/"+table+"/data", payload, &resp); err != nil {
		return "", fmt.Errorf("create %s: %w", table, err)
	}
	return resp.ID, nil
}

// Patch — частичное обновление записи по id.
func (c *Client) Patch(ctx context.Context, table, id string, patch map[string]any) error {
	if err := c.do(ctx, http.MethodPatch, "/tables/"+table+"/data/"+id, patch, nil); err != nil {
		return fmt.Errorf("patch %s/%s: %w", table, id, err)
	}
	return nil
}

// Delete — удаление записи по id.
func (c *Client) Delete(ctx context.Context, table, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/tables/"+table+"/data/"+id, nil, nil); err != nil {
		return fmt.Errorf("delete %s/%s: %w", table, id, err)
	}
	return nil
}

// Aggregate — агрегатный запрос (count/average/sum) по таблице.
func (c *Client) Aggregate(ctx context.Context, table string, aggs map[string]any) (map[string]float64, error) {
	var resp aggregateResponse
	body := map[string]any{"aggs": aggs}
	if err := c.do(ctx, http.MethodPost, "/tables/"+table+"/aggregate", body, &resp); err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", table, err)
	}
	return resp.Aggs, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, payload)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
