package usecase

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/zhivlux/storefront/config"
	"github.com/zhivlux/storefront/internal/domain"
	"github.com/zhivlux/storefront/internal/ports"
	"github.com/zhivlux/storefront/pkg/metrics"
)

// Источники терминального результата загрузки.
const (
	SourceCache       = "cache"
	SourceBackend     = "backend"
	SourcePlaceholder = "placeholder"
	SourceTimeout     = "timeout"
)

// Этапы загрузки, отдаваемые в прогресс.
const (
	stageValidating = "validating cache"
	stageCacheRead  = "loading cached data"
	stageBackend    = "loading fresh data"
	stageCaching    = "caching data"
	stageDone       = "done"
)

const keyPrefix = "zhivlux"

// LoadProgress — одно обновление прогресса загрузки каталога.
type LoadProgress struct {
	Percent int    `json:"percent"`
	Stage   string `json:"stage"`
}

// ProgressFunc — приёмник обновлений прогресса; nil допустим.
type ProgressFunc func(LoadProgress)

// LoadResult — терминальный результат загрузки. Snapshot заполнен всегда:
// при любом сбое чтения подставляется плейсхолдерный каталог.
type LoadResult struct {
	Snapshot *domain.CatalogSnapshot `json:"snapshot"`
	Source   string                  `json:"source"`
	TimedOut bool                    `json:"timedOut,omitempty"`
	Reason   string                  `json:"reason,omitempty"`
}

// CatalogLoader — cache-through загрузчик каталога. Валидация кэша всегда
// предшествует запросу к backend; сторожевой таймер гарантирует, что
// вызывающий не ждёт дольше настроенного предела.
type CatalogLoader struct {
	cache   ports.KVCache
	games   ports.GameRepository
	banners ports.BannerRepository
	log     ports.Logger

	freshFor time.Duration
	watchdog time.Duration
	version  string

	now func() time.Time
}

func NewCatalogLoader(
	cache ports.KVCache,
	games ports.GameRepository,
	banners ports.BannerRepository,
	cfg config.Loader,
	version string,
	log ports.Logger,
) *CatalogLoader {
	return &CatalogLoader{
		cache:    cache,
		games:    games,
		banners:  banners,
		log:      log,
		freshFor: cfg.FreshFor,
		watchdog: cfg.Watchdog,
		version:  version,
		now:      time.Now,
	}
}

// Load — загрузка каталога. Прогресс монотонно растёт от 0 до 100;
// терминальный результат всегда содержит рендерящийся снапшот.
// Сторожевой таймер не прерывает начатые сетевые вызовы — поздние
// побочные записи (write-back) принимаются как безвредные.
func (l *CatalogLoader) Load(ctx context.Context, filters domain.GameFilters, onProgress ProgressFunc) *LoadResult {
	start := l.now()
	tracker := newProgressTracker(onProgress)

	results := make(chan *LoadResult, 1)
	go func() { results <- l.run(ctx, filters, tracker) }()

	var res *LoadResult
	select {
	case res = <-results:
	case <-time.After(l.watchdog):
		reason := timeoutReason(tracker.value())
		tracker.set(100, stageDone)
		l.log.Warnf(ctx, "loader: watchdog fired at %d%%: %s", tracker.value(), reason)
		res = &LoadResult{Snapshot: PlaceholderSnapshot(), Source: SourceTimeout, TimedOut: true, Reason: reason}
	case <-ctx.Done():
		reason := timeoutReason(tracker.value())
		tracker.set(100, stageDone)
		res = &LoadResult{Snapshot: PlaceholderSnapshot(), Source: SourceTimeout, TimedOut: true, Reason: reason}
	}

	metrics.LoaderLoads.WithLabelValues(res.Source).Inc()
	metrics.LoaderDuration.Observe(l.now().Sub(start).Seconds())
	return res
}

func (l *CatalogLoader) run(ctx context.Context, filters domain.GameFilters, tracker *progressTracker) *LoadResult {
	tracker.set(5, stageValidating)

	// Кэш хранит полный активный каталог; пользовательские фильтры
	// уходят напрямую в backend и не попадают в кэш.
	useCache := filters == (domain.GameFilters{})

	if useCache && l.cacheFresh(ctx) {
		tracker.set(25, stageCacheRead)
		if snapshot := l.fromCache(ctx); snapshot != nil {
			tracker.set(100, stageDone)
			return &LoadResult{Snapshot: snapshot, Source: SourceCache}
		}
	}

	tracker.set(40, stageBackend)
	if filters.Status == "" {
		filters.Status = string(domain.StatusActive)
	}
	products, err := l.games.List(ctx, filters)
	if err != nil {
		l.log.Errorf(ctx, "loader: backend query failed: %v", err)
		tracker.set(100, stageDone)
		return &LoadResult{Snapshot: PlaceholderSnapshot(), Source: SourcePlaceholder, Reason: "каталог временно недоступен"}
	}
	banners, err := l.banners.ListActive(ctx)
	if err != nil {
		// Баннеры не критичны для рендера каталога.
		l.log.Warnf(ctx, "loader: banners query failed: %v", err)
		banners = nil
	}

	if useCache {
		tracker.set(75, stageCaching)
		l.writeBack(ctx, products, banners)
	}

	tracker.set(100, stageDone)
	return &LoadResult{Snapshot: buildSnapshot(products, banners), Source: SourceBackend}
}

// cacheFresh — валиден ли кэш: выделенный ключ-таймстемп существует
// и его возраст строго меньше окна свежести.
func (l *CatalogLoader) cacheFresh(ctx context.Context) bool {
	raw, ok := l.cache.Get(ctx, l.key("timestamp"))
	if !ok {
		return false
	}
	storedAt, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		l.log.Warnf(ctx, "loader: unusable cache timestamp %q", raw)
		return false
	}
	return l.now().UnixMilli()-storedAt < l.freshFor.Milliseconds()
}

func (l *CatalogLoader) fromCache(ctx context.Context) *domain.CatalogSnapshot {
	values := l.cache.MGet(ctx, l.key("products"), l.key("banners"))
	if len(values) != 2 || values[0] == nil {
		return nil
	}

	var products []domain.Product
	if err := json.Unmarshal(values[0], &products); err != nil {
		l.log.Warnf(ctx, "loader: unusable cached products: %v", err)
		return nil
	}
	var banners []domain.Banner
	if values[1] != nil {
		if err := json.Unmarshal(values[1], &banners); err != nil {
			l.log.Warnf(ctx, "loader: unusable cached banners: %v", err)
			banners = nil
		}
	}
	return buildSnapshot(products, banners)
}

// writeBack — best-effort запись в кэш после удачного запроса к backend.
// Сбои записи только логируются и не влияют на результат.
func (l *CatalogLoader) writeBack(ctx context.Context, products []domain.Product, banners []domain.Banner) {
	productsRaw, err := json.Marshal(products)
	if err != nil {
		l.log.Errorf(ctx, "loader: marshal products for cache: %v", err)
		return
	}
	bannersRaw, err := json.Marshal(banners)
	if err != nil {
		l.log.Errorf(ctx, "loader: marshal banners for cache: %v", err)
		return
	}
	ok := l.cache.MSet(ctx,
		ports.KVEntry{Key: l.key("products"), Value: productsRaw, TTL: l.freshFor},
		ports.KVEntry{Key: l.key("banners"), Value: bannersRaw, TTL: l.freshFor},
		ports.KVEntry{Key: l.key("timestamp"), Value: []byte(strconv.FormatInt(l.now().UnixMilli(), 10)), TTL: l.freshFor},
	)
	if !ok {
		l.log.Warnf(ctx, "loader: cache write-back incomplete")
	}
}

// key — версионированный ключ кэша: смена версии схемы инвалидирует
// старые записи как промах, без десериализации несовместимых форм.
func (l *CatalogLoader) key(name string) string {
	return keyPrefix + ":" + name + ":" + l.version
}

// buildSnapshot — сборка агрегата: категории в порядке первого появления,
// популярные — первые восемь отмеченных товаров.
func buildSnapshot(products []domain.Product, banners []domain.Banner) *domain.CatalogSnapshot {
	var categories []string
	seen := make(map[string]bool)
	var popular []domain.Product
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
		if p.IsPopular && len(popular) < 8 {
			popular = append(popular, p)
		}
	}
	return &domain.CatalogSnapshot{
		Products:        products,
		Banners:         banners,
		Categories:      categories,
		PopularProducts: popular,
	}
}

// timeoutReason — человекочитаемая причина срабатывания сторожевого
// таймера, привязанная к достигнутому прогрессу.
func timeoutReason(progress int) string {
	switch {
	case progress < 20:
		return "кэш отвечает слишком медленно"
	case progress < 60:
		return "база данных отвечает слишком медленно"
	case progress < 90:
		return "кэширование заняло слишком много времени"
	default:
		return "финализация загрузки затянулась"
	}
}

// progressTracker — монотонный счётчик прогресса: значения меньше
// текущего молча отбрасываются, верхняя граница — 100.
type progressTracker struct {
	mu      sync.Mutex
	current int
	report  ProgressFunc
}

func newProgressTracker(report ProgressFunc) *progressTracker {
	return &progressTracker{report: report}
}

func (p *progressTracker) set(percent int, stage string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if percent > 100 {
		percent = 100
	}
	if percent <= p.current {
		return
	}
	p.current = percent
	// Колбэк вызывается под мьютексом: обновления сериализованы и для
	// конкурирующих сторожа и рабочей горутины.
	if p.report != nil {
		p.report(LoadProgress{Percent: percent, Stage: stage})
	}
}

func (p *progressTracker) value() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}
