package encoding

import (
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pfas-tracker/api/model"
	"github.com/pkg/errors"
)

// property keys published on every site feature
const (
	PropId        = "id"
	PropName      = "name"
	PropLevel     = "level"
	PropSample    = "sample"
	PropStatus    = "status"
	PropChemicals = "chemicals"
)

// SiteRecord is the flat JSON shape returned by create and update.
type SiteRecord struct {
	Id         int               `json:"id"`
	Name       string            `json:"name"`
	PfasLevel  int               `json:"pfas_level"`
	SampleType string            `json:"sample_type"`
	SampleDate string            `json:"sample_date"`
	Status     string            `json:"status"`
	Chemicals  model.Chemicals   `json:"chemicals"`
	Lat        float64           `json:"lat"`
	Lng        float64           `json:"lng"`
	Location   *geojson.Geometry `json:"location"`
}

func ToRecord(site *model.Site) *SiteRecord {
	chems := site.Chemicals
	if chems == nil {
		chems = model.Chemicals{}
	}
	return &SiteRecord{
		Id:         site.Id,
		Name:       site.Name,
		PfasLevel:  site.PfasLevel,
		SampleType: site.SampleType,
		SampleDate: site.SampleDate,
		Status:     site.Status,
		Chemicals:  chems,
		Lat:        site.Lat(),
		Lng:        site.Lng(),
		Location:   geojson.NewGeometry(site.Location),
	}
}

func SiteToGeoJsonFeature(site *model.Site) *geojson.Feature {
	chems := site.Chemicals
	if chems == nil {
		chems = model.Chemicals{}
	}
	feat := geojson.NewFeature(site.Location)
	feat.ID = site.Id
	feat.Properties = geojson.Properties{
		PropId:        site.Id,
		PropName:      site.Name,
		PropLevel:     site.PfasLevel,
		PropSample:    site.Sample(),
		PropStatus:    site.Status,
		PropChemicals: chems,
	}
	return feat
}

// SitesToFeatureCollection keeps the order of sites, callers sort by id.
func SitesToFeatureCollection(sites []*model.Site) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, site := range sites {
		fc.Append(SiteToGeoJsonFeature(site))
	}
	return fc
}

// FeatureCollectionToSites reads features shaped like the list output back into sites.
// A missing id property yields Id 0, which asks the store to allocate one.
func FeatureCollectionToSites(fc *geojson.FeatureCollection) ([]*model.Site, error) {
	sites := make([]*model.Site, 0, len(fc.Features))
	for i, feat := range fc.Features {
		if feat.Geometry == nil || feat.Geometry.GeoJSONType() != geojson.TypePoint {
			return nil, model.NewValidationError("features", "sites must have Point geometries")
		}
		props := feat.Properties
		name := strings.TrimSpace(props.MustString(PropName, ""))
		if name == "" {
			return nil, model.NewValidationError(PropName, "is required on feature "+strconv.Itoa(i))
		}
		level, ok := props[PropLevel].(float64)
		if !ok {
			return nil, model.NewValidationError(PropLevel, "must be a number on feature "+strconv.Itoa(i))
		}

		id, err := featureId(props[PropId])
		if err != nil {
			return nil, model.NewValidationError(PropId, "must be a positive integer on feature "+strconv.Itoa(i))
		}

		site := &model.Site{
			Id:         id,
			Name:       name,
			PfasLevel:  int(math.Trunc(level)),
			SampleType: textProp(props, "sample_type"),
			SampleDate: textProp(props, "sample_date"),
			Status:     defaultStatus(textProp(props, PropStatus)),
			Location:   feat.Geometry.(orb.Point),
			Chemicals:  CleanChemicals(asMap(props[PropChemicals])),
		}
		if site.SampleType == "" && site.SampleDate == "" {
			site.SampleType, site.SampleDate = SplitSample(textProp(props, PropSample))
		}
		sites = append(sites, site)
	}
	return sites, nil
}

// SplitSample is the inverse of Site.Sample: "Soil (2024)" -> ("Soil", "2024").
func SplitSample(sample string) (string, string) {
	idx := strings.Index(sample, " (")
	if idx < 0 || !strings.HasSuffix(sample, ")") {
		return "", ""
	}
	return sample[:idx], strings.TrimSuffix(sample[idx+2:], ")")
}

// featureId reads an optional id property; absent, null and "" yield 0.
func featureId(v interface{}) (int, error) {
	var id float64
	switch val := v.(type) {
	case nil:
		return 0, nil
	case float64:
		id = val
	case string:
		if strings.TrimSpace(val) == "" {
			return 0, nil
		}
		f, err := FlexNumber(strings.TrimSpace(val)).Float()
		if err != nil {
			return 0, err
		}
		id = f
	default:
		return 0, errors.Errorf("unexpected id type %T", v)
	}
	if !validId(id) {
		return 0, errors.Errorf("id %v out of range", id)
	}
	return int(id), nil
}

func textProp(props geojson.Properties, key string) string {
	switch v := props[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

func asMap(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}
