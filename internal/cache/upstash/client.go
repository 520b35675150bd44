// Package upstash — клиент удалённого key-value кэша поверх Upstash REST API.
//
// Клиент никогда не возвращает ошибку наружу: недоступность или сбой
// удалённого кэша деградирует в локальный in-process фолбэк, а вызывающий
// код видит только булев признак успеха. Доступность проверяется один раз
// при создании клиента и не перепроверяется в течение жизни процесса.
package upstash

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/zhivlux/storefront/config"
	"github.com/zhivlux/storefront/internal/ports"
	"github.com/zhivlux/storefront/pkg/metrics"
)

// Проверка, что Client удовлетворяет порту.
var _ ports.KVCache = (*Client)(nil)

// envelope — конверт хранимого значения. Timestamp и TTL в миллисекундах:
// запись валидна, пока now-timestamp строго меньше ttl (граница — просрочка).
type envelope struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
	Version   string          `json:"version"`
	TTL       int64           `json:"ttl"`
}

// restResult — обёртка ответа Upstash REST: {"result": ...}.
type restResult struct {
	Result json.RawMessage `json:"result"`
}

type localEntry struct {
	env envelope
}

// Client — реализация KVCache поверх Upstash REST с локальным фолбэком.
type Client struct {
	baseURL string
	token   string
	version string
	http    *http.Client
	log     ports.Logger

	// available фиксируется одним probe-запросом при создании.
	available bool

	mu    sync.Mutex
	local map[string]localEntry

	now func() time.Time
}

// New — создаёт клиент и однократно проверяет доступность удалённого кэша.
// Ненастроенный кэш (пустые или заглушечные креденшелы) сразу работает
// в локальном режиме без probe-запроса.
func New(cfg config.Cache, log ports.Logger) *Client {
	c := &Client{
		baseURL: cfg.URL,
		token:   cfg.Token,
		version: cfg.SchemaVersion,
		http:    &http.Client{Timeout: cfg.Timeout},
		log:     log,
		local:   make(map[string]localEntry),
		now:     time.Now,
	}
	if !cfg.IsConfigured() {
		log.Warnf(context.Background(), "cache: credentials not configured, using local fallback only")
		return c
	}
	c.available = c.ping()
	if c.available {
		log.Infof(context.Background(), "cache: remote cache reachable at %s", cfg.URL)
	} else {
		log.Warnf(context.Background(), "cache: remote cache unreachable, using local fallback only")
	}
	return c
}

// Available — достучались ли до удалённого кэша при старте.
func (c *Client) Available() bool { return c.available }

func (c *Client) ping() bool {
	ctx, cancel := context.WithTimeout(context.Background(), c.http.Timeout)
	defer cancel()

	raw, err := c.command(ctx, http.MethodGet, nil, "ping")
	if err != nil {
		return false
	}
	var pong string
	return json.Unmarshal(raw, &pong) == nil && pong == "PONG"
}

// Set — записать значение с TTL. Запись зеркалируется в локальный фолбэк,
// удалённый сбой лишь логируется.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	env := envelope{
		Data:      json.RawMessage(value),
		Timestamp: c.now().UnixMilli(),
		Version:   c.version,
		TTL:       ttl.Milliseconds(),
	}
	c.storeLocal(key, env)

	if !c.available {
		return true
	}
	body, err := json.Marshal(env)
	if err != nil {
		c.log.Errorf(ctx, "cache: marshal envelope for %s: %v", key, err)
		return false
	}
	seconds := int64(ttl / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	if _, err := c.command(ctx, http.MethodPost, body, "setex", key, fmt.Sprint(seconds)); err != nil {
		metrics.CacheOps.WithLabelValues("remote_error").Inc()
		c.log.Warnf(ctx, "cache: remote set %s failed: %v", key, err)
		return false
	}
	return true
}

// Get — значение при валидной записи. Удалённый промах или сбой
// деградирует в локальный фолбэк с той же TTL-валидацией.
func (c *Client) Get(ctx context.Context, key string) ([]byte, bool) {
	if c.available {
		raw, err := c.command(ctx, http.MethodGet, nil, "get", key)
		if err != nil {
			metrics.CacheOps.WithLabelValues("remote_error").Inc()
			c.log.Warnf(ctx, "cache: remote get %s failed: %v", key, err)
			return c.getLocal(ctx, key)
		}
		if env, ok := decodeEnvelope(raw); ok {
			if data, valid := c.validate(ctx, key, env); valid {
				return data, true
			}
		}
		return c.getLocal(ctx, key)
	}
	return c.getLocal(ctx, key)
}

// Delete — удалить ключ из удалённого кэша и фолбэка.
func (c *Client) Delete(ctx context.Context, key string) bool {
	c.mu.Lock()
	delete(c.local, key)
	metrics.CacheLocalSize.Set(float64(len(c.local)))
	c.mu.Unlock()

	if !c.available {
		return true
	}
	if _, err := c.command(ctx, http.MethodPost, nil, "del", key); err != nil {
		metrics.CacheOps.WithLabelValues("remote_error").Inc()
		c.log.Warnf(ctx, "cache: remote del %s failed: %v", key, err)
		return false
	}
	return true
}

// Exists — есть ли валидная запись по ключу.
func (c *Client) Exists(ctx context.Context, key string) bool {
	_, ok := c.Get(ctx, key)
	return ok
}

// MGet — батч-чтение; промахи отмечены nil на своей позиции.
func (c *Client) MGet(ctx context.Context, keys ...string) [][]byte {
	out := make([][]byte, len(keys))
	if len(keys) == 0 {
		return out
	}
	if !c.available {
		for i, k := range keys {
			out[i], _ = c.getLocal(ctx, k)
		}
		return out
	}

	segments := append([]string{"mget"}, keys...)
	raw, err := c.command(ctx, http.MethodGet, nil, segments...)
	if err != nil {
		metrics.CacheOps.WithLabelValues("remote_error").Inc()
		c.log.Warnf(ctx, "cache: remote mget failed, reading per key: %v", err)
		for i, k := range keys {
			out[i], _ = c.Get(ctx, k)
		}
		return out
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || len(items) != len(keys) {
		c.log.Warnf(ctx, "cache: unexpected mget response shape")
		for i, k := range keys {
			out[i], _ = c.Get(ctx, k)
		}
		return out
	}
	for i, item := range items {
		env, ok := decodeEnvelope(item)
		if !ok {
			metrics.CacheOps.WithLabelValues("miss").Inc()
			continue
		}
		out[i], _ = c.validate(ctx, keys[i], env)
	}
	return out
}

// MSet — батч-запись. REST-бэкенд не поддерживает TTL для MSET,
// поэтому записываем по одному ключу через SETEX.
func (c *Client) MSet(ctx context.Context, entries ...ports.KVEntry) bool {
	ok := true
	for _, e := range entries {
		if !c.Set(ctx, e.Key, e.Value, e.TTL) {
			ok = false
		}
	}
	return ok
}

// validate — проверка конверта: версия схемы и TTL. Просроченная или
// чужая по версии запись — промах; просроченная дополнительно вычищается.
func (c *Client) validate(ctx context.Context, key string, env envelope) ([]byte, bool) {
	if env.Version != c.version {
		metrics.CacheOps.WithLabelValues("version_miss").Inc()
		return nil, false
	}
	age := c.now().UnixMilli() - env.Timestamp
	if age >= env.TTL {
		metrics.CacheOps.WithLabelValues("expired").Inc()
		c.Delete(ctx, key)
		return nil, false
	}
	metrics.CacheOps.WithLabelValues("hit").Inc()
	return []byte(env.Data), true
}

func (c *Client) storeLocal(key string, env envelope) {
	c.mu.Lock()
	c.local[key] = localEntry{env: env}
	metrics.CacheLocalSize.Set(float64(len(c.local)))
	c.mu.Unlock()
}

func (c *Client) getLocal(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	entry, ok := c.local[key]
	c.mu.Unlock()
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return nil, false
	}
	if entry.env.Version != c.version {
		metrics.CacheOps.WithLabelValues("version_miss").Inc()
		return nil, false
	}
	if c.now().UnixMilli()-entry.env.Timestamp >= entry.env.TTL {
		metrics.CacheOps.WithLabelValues("expired").Inc()
		c.mu.Lock()
		delete(c.local, key)
		metrics.CacheLocalSize.Set(float64(len(c.local)))
		c.mu.Unlock()
		return nil, false
	}
	metrics.CacheOps.WithLabelValues("fallback").Inc()
	return []byte(entry.env.Data), true
}

// command — один REST-вызов вида {base}/{seg1}/{seg2}/... с bearer-токеном.
// Возвращает содержимое поля result; null трактуется как (nil, nil).
func (c *Client) command(ctx context.Context, method string, body []byte, segments ...string) (json.RawMessage, error) {
	u := c.baseURL
	for _, s := range segments {
		u += "/" + url.PathEscape(s)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var out restResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

// decodeEnvelope — распаковка конверта из поля result. Redis хранит
// значение строкой, поэтому result приходит как JSON-строка с вложенным
// JSON конверта; null и мусор трактуются как промах.
func decodeEnvelope(raw json.RawMessage) (envelope, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return envelope{}, false
	}
	var payload string
	if err := json.Unmarshal(raw, &payload); err != nil {
		return envelope{}, false
	}
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return envelope{}, false
	}
	return env, true
}
