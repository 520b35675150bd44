// Package http — gin-слой поверх юзкейсов: единственный шов, через
// который UI обращается к ядру витрины.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zhivlux/storefront/internal/domain"
	"github.com/zhivlux/storefront/internal/usecase"
	"github.com/zhivlux/storefront/pkg/httpx"
	"github.com/zhivlux/storefront/pkg/validate"

	"github.com/zhivlux/storefront/internal/ports"
)

// Handler — HTTP-обработчики витрины и админ-консоли.
type Handler struct {
	loader   *usecase.CatalogLoader
	games    *usecase.GameService
	payments *usecase.PaymentService
	log      ports.Logger
}

func NewHandler(
	loader *usecase.CatalogLoader,
	games *usecase.GameService,
	payments *usecase.PaymentService,
	log ports.Logger,
) *Handler {
	return &Handler{loader: loader, games: games, payments: payments, log: log}
}

// Ping — проверка живости.
func (h *Handler) Ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}

// Catalog — полный цикл cache-through загрузки каталога.
// Результат рендерится всегда, в том числе плейсхолдерный.
func (h *Handler) Catalog(c *gin.Context) {
	filters, ok := parseFilters(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filters"})
		return
	}
	res := h.loader.Load(c.Request.Context(), filters, nil)
	c.JSON(http.StatusOK, res)
}

// Games — выборка каталога с фильтрами.
func (h *Handler) Games(c *gin.Context) {
	filters, ok := parseFilters(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filters"})
		return
	}
	products, err := h.games.List(c.Request.Context(), filters)
	if err != nil {
		h.log.Errorf(c.Request.Context(), "http: list games: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"games": products})
}

// GameBySlug — активная игра по slug.
func (h *Handler) GameBySlug(c *gin.Context) {
	product, err := h.games.BySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.log.Errorf(c.Request.Context(), "http: game by slug: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// PopularGames — популярные активные игры.
func (h *Handler) PopularGames(c *gin.Context) {
	limit := httpx.ParseLimit(c, 8, 24)
	products, err := h.games.PopularGames(c.Request.Context(), limit)
	if err != nil {
		h.log.Errorf(c.Request.Context(), "http: popular games: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"games": products})
}

// Search — поиск по активному каталогу.
func (h *Handler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}
	products, err := h.games.Search(c.Request.Context(), q)
	if err != nil {
		h.log.Errorf(c.Request.Context(), "http: search: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"games": products})
}

// CreatePayment — попытка покупки: Pending, токен, hosted-флоу.
func (h *Handler) CreatePayment(c *gin.Context) {
	var req domain.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment request"})
		return
	}
	res, err := h.payments.Process(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, validate.ErrInvalidPayment) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Errorf(c.Request.Context(), "http: process payment: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// paymentNotification — тело вебхука шлюза.
type paymentNotification struct {
	OrderID           string `json:"order_id" binding:"required"`
	TransactionStatus string `json:"transaction_status" binding:"required"`
}

// PaymentNotification — вебхук шлюза, питающий колбэки hosted-флоу.
func (h *Handler) PaymentNotification(c *gin.Context) {
	var n paymentNotification
	if err := c.ShouldBindJSON(&n); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification"})
		return
	}
	status, err := h.payments.HandleNotification(c.Request.Context(), n.OrderID, n.TransactionStatus)
	if err != nil {
		if errors.Is(err, usecase.ErrUnknownTransactionStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Errorf(c.Request.Context(), "http: payment notification: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "notification not applied"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orderId": n.OrderID, "status": status})
}

// ClosePayment — пользователь закрыл hosted-флоу; журнал не меняется.
func (h *Handler) ClosePayment(c *gin.Context) {
	h.payments.OnClose(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

// TrackOrder — заказ по человекочитаемому id плюс статус шлюза.
func (h *Handler) TrackOrder(c *gin.Context) {
	order, status, err := h.payments.Track(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		h.log.Errorf(c.Request.Context(), "http: track order: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "order lookup failed"})
		return
	}
	resp := gin.H{"order": order}
	if status != nil {
		resp["gateway"] = status
	}
	c.JSON(http.StatusOK, resp)
}

// CreateGame — админ: создать игру.
func (h *Handler) CreateGame(c *gin.Context) {
	var form domain.GameForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game form"})
		return
	}
	id, err := h.games.Create(c.Request.Context(), &form)
	if err != nil {
		if errors.Is(err, validate.ErrInvalidGameForm) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Errorf(c.Request.Context(), "http: create game: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "game not created"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// UpdateGame — админ: частичное обновление игры.
func (h *Handler) UpdateGame(c *gin.Context) {
	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patch"})
		return
	}
	if err := h.games.Update(c.Request.Context(), c.Param("id"), patch); err != nil {
		if errors.Is(err, validate.ErrInvalidGameForm) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Errorf(c.Request.Context(), "http: update game: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "game not updated"})
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteGame — админ: удалить игру.
func (h *Handler) DeleteGame(c *gin.Context) {
	if err := h.games.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.log.Errorf(c.Request.Context(), "http: delete game: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "game not deleted"})
		return
	}
	c.Status(http.StatusNoContent)
}

// GameStats — админ: агрегаты дашборда.
func (h *Handler) GameStats(c *gin.Context) {
	stats, err := h.games.Stats(c.Request.Context())
	if err != nil {
		h.log.Errorf(c.Request.Context(), "http: game stats: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "stats unavailable"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// TogglePopularity — админ: пометка популярности.
func (h *Handler) TogglePopularity(c *gin.Context) {
	var body struct {
		IsPopular bool `json:"is_popular"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if err := h.games.TogglePopularity(c.Request.Context(), c.Param("id"), body.IsPopular); err != nil {
		h.log.Errorf(c.Request.Context(), "http: toggle popularity: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "game not updated"})
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateGameStatus — админ: перевод между active/inactive/maintenance.
func (h *Handler) UpdateGameStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if err := h.games.UpdateGameStatus(c.Request.Context(), c.Param("id"), domain.Status(body.Status)); err != nil {
		if errors.Is(err, validate.ErrInvalidGameForm) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Errorf(c.Request.Context(), "http: update game status: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "game not updated"})
		return
	}
	c.Status(http.StatusNoContent)
}

func parseFilters(c *gin.Context) (domain.GameFilters, bool) {
	popular, ok := httpx.ParseBoolQuery(c, "popular")
	if !ok {
		return domain.GameFilters{}, false
	}
	return domain.GameFilters{
		Category:  c.Query("category"),
		IsPopular: popular,
		Status:    c.Query("status"),
		Search:    c.Query("search"),
	}, true
}
