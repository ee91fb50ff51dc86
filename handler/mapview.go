package handler

import (
	"github.com/kataras/iris/v12"
	"github.com/pfas-tracker/api/mapview"
	"github.com/pfas-tracker/api/model"
)

type MapHandler struct {
	Store  SiteStore
	Config *mapview.Config
}

func (mh *MapHandler) GetConfig(ctx iris.Context) {

	ctx.JSON(mh.Config)
}

//GetPopup answers the popup content of one site marker
func (mh *MapHandler) GetPopup(ctx iris.Context) {

	id, err := ctx.Params().GetInt("id")
	if err != nil {
		respondError(ctx, model.NewValidationError("id", "must be an integer"), "")
		return
	}
	site, err := mh.Store.FindSiteById(ctx.Request().Context(), id)
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	ctx.JSON(mapview.NewPopup(site))
}
