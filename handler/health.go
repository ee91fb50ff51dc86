package handler

import (
	"context"
	"time"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
)

//Ok is a simple health check endpoint for the service
func Ok(ctx iris.Context) {

	ctx.JSON(map[string]string{"status": "ok"})
}

type Pinger interface {
	Ping(ctx context.Context) error
}

//Ready reports whether the site store answers
func Ready(store Pinger) iris.Handler {
	return func(ctx iris.Context) {
		c, cancel := context.WithTimeout(ctx.Request().Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(c); err != nil {
			zap.L().Warn("readiness check failed", zap.Error(err))
			ctx.StopWithJSON(iris.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		ctx.JSON(map[string]string{"status": "ok"})
	}
}
