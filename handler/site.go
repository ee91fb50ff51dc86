package handler

import (
	"context"

	"github.com/kataras/iris/v12"
	"github.com/paulmach/orb/geojson"
	"github.com/pfas-tracker/api/encoding"
	"github.com/pfas-tracker/api/metrics"
	"github.com/pfas-tracker/api/model"
	"go.uber.org/zap"
)

// SiteStore is implemented by database.SiteController and database.MemorySiteController.
type SiteStore interface {
	Pinger
	FindSites(ctx context.Context, filter model.SiteFilter) ([]*model.Site, error)
	FindSiteById(ctx context.Context, id int) (*model.Site, error)
	AddSite(ctx context.Context, site *model.Site) (*model.Site, error)
	UpdateSite(ctx context.Context, targetId int, site *model.Site) (*model.Site, error)
	DeleteSiteById(ctx context.Context, id int) error
}

type SiteHandler struct {
	Store SiteStore
}

//GetSites answers the site FeatureCollection, optionally narrowed by bbox and q
func (sh *SiteHandler) GetSites(ctx iris.Context) {

	filter := model.SiteFilter{Query: ctx.URLParamTrim("q")}
	if bbox := ctx.URLParamTrim("bbox"); bbox != "" {
		bnds, err := encoding.ParseBbox(bbox)
		if err != nil {
			respondError(ctx, model.NewValidationError("bbox", err.Error()), "")
			return
		}
		filter.Bound = bnds
	}

	sites, err := sh.Store.FindSites(ctx.Request().Context(), filter)
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	ctx.JSON(encoding.SitesToFeatureCollection(sites))
}

func (sh *SiteHandler) GetSiteById(ctx iris.Context) {

	id, err := ctx.Params().GetInt("id")
	if err != nil {
		respondError(ctx, model.NewValidationError("id", "must be an integer"), "")
		return
	}
	site, err := sh.Store.FindSiteById(ctx.Request().Context(), id)
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	ctx.JSON(encoding.SiteToGeoJsonFeature(site))
}

func (sh *SiteHandler) CreateSite(ctx iris.Context) {

	site, err := readSiteForm(ctx)
	if err == nil {
		site, err = sh.Store.AddSite(ctx.Request().Context(), site)
	}
	metrics.SiteMutations.WithLabelValues("create", resultLabel(err)).Inc()
	if err != nil {
		respondError(ctx, err, "Site ID already exists.")
		return
	}
	zap.L().Info("site created", zap.Int("id", site.Id), zap.String("by", actor(ctx)))
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(encoding.ToRecord(site))
}

//UpdateSite overwrites the site at {id}; the body id may renumber it
func (sh *SiteHandler) UpdateSite(ctx iris.Context) {

	targetId, err := ctx.Params().GetInt("id")
	if err != nil {
		respondError(ctx, model.NewValidationError("id", "must be an integer"), "")
		return
	}
	site, err := readSiteForm(ctx)
	if err == nil {
		site, err = sh.Store.UpdateSite(ctx.Request().Context(), targetId, site)
	}
	metrics.SiteMutations.WithLabelValues("update", resultLabel(err)).Inc()
	if err != nil {
		respondError(ctx, err, "New Site ID already exists.")
		return
	}
	zap.L().Info("site updated", zap.Int("target", targetId), zap.Int("id", site.Id), zap.String("by", actor(ctx)))
	ctx.JSON(encoding.ToRecord(site))
}

//DeleteSite acknowledges the same way whether or not the site existed
func (sh *SiteHandler) DeleteSite(ctx iris.Context) {

	id, err := ctx.Params().GetInt("id")
	if err != nil {
		respondError(ctx, model.NewValidationError("id", "must be an integer"), "")
		return
	}
	err = sh.Store.DeleteSiteById(ctx.Request().Context(), id)
	metrics.SiteMutations.WithLabelValues("delete", resultLabel(err)).Inc()
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	zap.L().Info("site deleted", zap.Int("id", id), zap.String("by", actor(ctx)))
	ctx.JSON(iris.Map{"message": "Site deleted"})
}

//ImportSites creates every feature of a FeatureCollection in order and stops at the first failure
func (sh *SiteHandler) ImportSites(ctx iris.Context) {

	body, err := ctx.GetBody()
	if err != nil {
		respondError(ctx, model.NewValidationError("", "unreadable body"), "")
		return
	}
	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		respondError(ctx, model.NewValidationError("", "body is not a GeoJSON FeatureCollection"), "")
		return
	}
	sites, err := encoding.FeatureCollectionToSites(fc)
	if err != nil {
		respondError(ctx, err, "")
		return
	}

	ids := make([]int, 0, len(sites))
	for _, site := range sites {
		created, err := sh.Store.AddSite(ctx.Request().Context(), site)
		metrics.SiteMutations.WithLabelValues("create", resultLabel(err)).Inc()
		if err != nil {
			zap.L().Warn("import stopped", zap.Int("created", len(ids)), zap.Error(err))
			respondError(ctx, err, "Site ID already exists.")
			return
		}
		ids = append(ids, created.Id)
	}
	zap.L().Info("sites imported", zap.Int("count", len(ids)), zap.String("by", actor(ctx)))
	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"created": len(ids), "ids": ids})
}

func readSiteForm(ctx iris.Context) (*model.Site, error) {
	var form encoding.SiteForm
	if err := ctx.ReadJSON(&form); err != nil {
		return nil, model.NewValidationError("", "body must be a JSON object")
	}
	return form.ToSite()
}
