package apis

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/supakorn-kn/book-catalog/metrics"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Log     *zap.Logger
	Service string

	// Registry and Metrics are nil when metrics are disabled.
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
}

func NewRouter(api CatalogAPI, deps RouterDeps) *gin.Engine {

	useJSONFieldNames()

	g := gin.New()
	g.Use(RequestID())
	g.Use(Logger(deps.Log))

	if deps.Metrics != nil {
		g.Use(deps.Metrics.Middleware(deps.Service))
	}

	// Innermost, so a recovered panic still reaches the access log and metrics.
	g.Use(Recovery(deps.Log))

	if deps.Registry != nil {
		g.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	g.GET("/", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, Welcome)
	})

	RegisterProbes(api, g, deps.Log)
	RegisterCatalogAPI(api, g.Group("books"), deps.Log)

	return g
}
