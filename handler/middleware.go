package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/kataras/iris/v12"
	"github.com/pfas-tracker/api/metrics"
	"go.uber.org/zap"
)

//Observe logs every routed request and records its metrics
func Observe(ctx iris.Context) {
	start := time.Now()
	ctx.Next()

	elapsed := time.Since(start)
	route := ctx.RouteName()
	status := ctx.GetStatusCode()
	metrics.RequestsTotal.WithLabelValues(ctx.Method(), route, strconv.Itoa(status)).Inc()
	metrics.RequestDuration.WithLabelValues(ctx.Method(), route).Observe(elapsed.Seconds())

	zap.L().Info("request",
		zap.String("method", ctx.Method()),
		zap.String("path", ctx.Path()),
		zap.Int("status", status),
		zap.Duration("took", elapsed),
	)
}

// WrapRouter puts CORS and per-IP rate limiting in front of the iris router,
// so preflight requests are answered before routing. limit <= 0 disables the limiter.
func WrapRouter(app *iris.Application, origins []string, limit int, window time.Duration) {

	withCORS := cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	})
	withLimit := func(next http.Handler) http.Handler { return next }
	if limit > 0 {
		withLimit = httprate.LimitByIP(limit, window)
	}

	app.WrapRouter(func(w http.ResponseWriter, r *http.Request, router http.HandlerFunc) {
		withCORS(withLimit(router)).ServeHTTP(w, r)
	})
}
