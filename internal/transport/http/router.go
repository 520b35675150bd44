package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/zhivlux/storefront/internal/ports"
	"github.com/zhivlux/storefront/pkg/httpx"
)

// RouterOptions — параметры сборки роутера.
type RouterOptions struct {
	TracingEnabled bool
	ServiceName    string
}

// NewRouter — маршруты витрины, платежей и админ-консоли.
func NewRouter(h *Handler, log ports.Logger, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if opts.TracingEnabled {
		r.Use(otelgin.Middleware(opts.ServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(log))

	r.GET("/ping", h.Ping)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/catalog", h.Catalog)
		api.GET("/games", h.Games)
		api.GET("/games/popular", h.PopularGames)
		api.GET("/games/:slug", h.GameBySlug)
		api.GET("/search", h.Search)

		api.POST("/payments", h.CreatePayment)
		api.POST("/payments/notify", h.PaymentNotification)
		api.POST("/payments/:id/close", h.ClosePayment)
		api.GET("/orders/:id", h.TrackOrder)

		admin := api.Group("/admin")
		{
			admin.POST("/games", h.CreateGame)
			admin.PATCH("/games/:id", h.UpdateGame)
			admin.DELETE("/games/:id", h.DeleteGame)
			admin.PATCH("/games/:id/popularity", h.TogglePopularity)
			admin.PATCH("/games/:id/status", h.UpdateGameStatus)
			admin.GET("/stats", h.GameStats)
		}
	}

	return r
}
