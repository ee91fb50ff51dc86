package encoding

import (
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/paulmach/orb"
	"github.com/pfas-tracker/api/model"
	"github.com/pkg/errors"
)

// FlexNumber accepts a JSON number or a numeric string and keeps its text.
// null and "" leave it empty.
type FlexNumber string

func (n *FlexNumber) UnmarshalJSON(b []byte) error {
	*n = FlexNumber(rawText(b))
	return nil
}

// Float parses the text, exponent forms included. NaN and infinities are rejected.
func (n FlexNumber) Float() (float64, error) {
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.Errorf("%q is not a finite number", string(n))
	}
	return f, nil
}

// FlexString accepts a JSON string or number, e.g. a sample year sent as 2024.
type FlexString string

func (s *FlexString) UnmarshalJSON(b []byte) error {
	*s = FlexString(rawText(b))
	return nil
}

func rawText(b []byte) string {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		return ""
	}
	if strings.HasPrefix(raw, `"`) {
		if unq, err := strconv.Unquote(raw); err == nil {
			raw = unq
		}
	}
	return strings.TrimSpace(raw)
}

// SiteForm is the flat request payload of create and update.
type SiteForm struct {
	Id                FlexNumber             `json:"id"`
	Name              string                 `json:"name" validate:"required"`
	PfasLevel         FlexNumber             `json:"pfas_level" validate:"required"`
	SampleType        FlexString             `json:"sample_type"`
	SampleDate        FlexString             `json:"sample_date"`
	Status            string                 `json:"status"`
	Lat               FlexNumber             `json:"lat" validate:"required"`
	Lng               FlexNumber             `json:"lng" validate:"required"`
	ChemicalBreakdown map[string]interface{} `json:"chemical_breakdown"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func formValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// ToSite validates the form and coerces it into a site. An empty id yields Id 0.
func (f *SiteForm) ToSite() (*model.Site, error) {
	f.Name = strings.TrimSpace(f.Name)
	if err := formValidator().Struct(f); err != nil {
		return nil, translate(err)
	}

	site := &model.Site{
		Name:       f.Name,
		SampleType: string(f.SampleType),
		SampleDate: string(f.SampleDate),
		Status:     defaultStatus(f.Status),
		Chemicals:  CleanChemicals(f.ChemicalBreakdown),
	}

	if f.Id != "" {
		id, err := f.Id.Float()
		if err != nil || !validId(id) {
			return nil, model.NewValidationError("id", "must be a positive integer")
		}
		site.Id = int(id)
	}

	level, err := f.PfasLevel.Float()
	if err != nil {
		return nil, model.NewValidationError("pfas_level", "must be a number")
	}
	if math.Abs(level) > math.MaxInt32 {
		return nil, model.NewValidationError("pfas_level", "is out of range")
	}
	site.PfasLevel = int(math.Trunc(level))

	lat, err := f.Lat.Float()
	if err != nil {
		return nil, model.NewValidationError("lat", "must be a number")
	}
	lng, err := f.Lng.Float()
	if err != nil {
		return nil, model.NewValidationError("lng", "must be a number")
	}
	site.Location = orb.Point{lng, lat}

	return site, nil
}

// validId accepts whole numbers in [0, MaxInt32]; 0 asks the store to allocate.
func validId(id float64) bool {
	return id >= 0 && id == math.Trunc(id) && id <= math.MaxInt32
}

func translate(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return model.NewValidationError("", err.Error())
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return model.NewValidationError(fe.Field(), "is required")
	}
	return model.NewValidationError(fe.Field(), "failed "+fe.Tag()+" validation")
}

// CleanChemicals drops entries with a blank name or a value that is not a finite number.
// Names are kept as sent.
func CleanChemicals(raw map[string]interface{}) model.Chemicals {
	out := make(model.Chemicals, len(raw))
	for name, v := range raw {
		if strings.TrimSpace(name) == "" {
			continue
		}
		var f float64
		switch val := v.(type) {
		case float64:
			f = val
		case string:
			parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
			if err != nil {
				continue
			}
			f = parsed
		default:
			continue
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		out[name] = f
	}
	return out
}

func defaultStatus(status string) string {
	status = strings.TrimSpace(status)
	if status == "" {
		return model.StatusKnown
	}
	return status
}
