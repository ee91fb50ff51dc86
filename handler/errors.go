package handler

import (
	"github.com/kataras/iris/v12"
	"github.com/pfas-tracker/api/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const serverErrorMessage = "Server Error"

// respondError maps the error taxonomy onto status codes. conflictMsg is the
// operation specific text for an id collision.
func respondError(ctx iris.Context, err error, conflictMsg string) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": verr.Error()})
	case errors.Is(err, model.ErrSiteNotFound):
		ctx.StopWithJSON(iris.StatusNotFound, iris.Map{"error": "Site not found"})
	case errors.Is(err, model.ErrSiteConflict):
		if conflictMsg == "" {
			conflictMsg = "Site ID already exists."
		}
		ctx.StopWithJSON(iris.StatusConflict, iris.Map{"error": conflictMsg})
	case errors.Is(err, model.ErrUnavailable):
		zap.L().Warn("upstream unavailable", zap.Error(err))
		ctx.StopWithJSON(iris.StatusServiceUnavailable, iris.Map{"error": "Service Unavailable"})
	default:
		zap.L().Error("request failed", zap.String("path", ctx.Path()), zap.Error(err))
		ctx.StopWithJSON(iris.StatusInternalServerError, iris.Map{"error": serverErrorMessage})
	}
}

// resultLabel is the metrics label for a mutation outcome.
func resultLabel(err error) string {
	var verr *model.ValidationError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &verr):
		return "invalid"
	case errors.Is(err, model.ErrSiteNotFound):
		return "not_found"
	case errors.Is(err, model.ErrSiteConflict):
		return "conflict"
	}
	return "error"
}
