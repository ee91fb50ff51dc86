package handler

import (
	"github.com/kataras/iris/v12"
	"github.com/pfas-tracker/api/geocode"
	"github.com/pfas-tracker/api/model"
)

// GeocodeHandler proxies place search. A nil Geocoder means no tile key is configured.
type GeocodeHandler struct {
	Geocoder geocode.Geocoder
}

func (gh *GeocodeHandler) Search(ctx iris.Context) {

	q := ctx.URLParamTrim("q")
	if q == "" {
		ctx.JSON(iris.Map{"suggestions": []geocode.Suggestion{}})
		return
	}
	if gh.Geocoder == nil {
		respondError(ctx, model.ErrUnavailable, "")
		return
	}
	suggestions, err := gh.Geocoder.Search(ctx.Request().Context(), q)
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	ctx.JSON(iris.Map{"suggestions": suggestions})
}
