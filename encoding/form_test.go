package encoding

import (
	"encoding/json"
	"testing"

	"github.com/pfas-tracker/api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeForm(t *testing.T, body string) *SiteForm {
	t.Helper()
	var f SiteForm
	require.NoError(t, json.Unmarshal([]byte(body), &f))
	return &f
}

func TestSiteForm_ToSite(t *testing.T) {
	f := decodeForm(t, `{
		"name": "  Vembanad Lake ",
		"pfas_level": "85.9",
		"sample_type": "Water",
		"sample_date": 2024,
		"status": "Hotspot",
		"lat": 9.6,
		"lng": "76.4",
		"chemical_breakdown": {"PFOS": 30, "PFOA": "12.5", "": 4, "PFHxS": "n/a", "PFNA": null}
	}`)

	site, err := f.ToSite()
	require.NoError(t, err)
	assert.Equal(t, 0, site.Id)
	assert.Equal(t, "Vembanad Lake", site.Name)
	assert.Equal(t, 85, site.PfasLevel)
	assert.Equal(t, "Water", site.SampleType)
	assert.Equal(t, "2024", site.SampleDate)
	assert.Equal(t, model.StatusHotspot, site.Status)
	assert.Equal(t, 76.4, site.Lng())
	assert.Equal(t, 9.6, site.Lat())
	assert.Equal(t, model.Chemicals{"PFOS": 30, "PFOA": 12.5}, site.Chemicals)
}

func TestSiteForm_Id(t *testing.T) {
	tests := []struct {
		id      string
		want    int
		wantErr bool
	}{
		{`null`, 0, false},
		{`""`, 0, false},
		{`0`, 0, false},
		{`7`, 7, false},
		{`"12"`, 12, false},
		{`-1`, 0, true},
		{`2.5`, 0, true},
		{`"abc"`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			f := decodeForm(t, `{"id": `+tt.id+`, "name": "A", "pfas_level": 1, "lat": 1, "lng": 2}`)
			site, err := f.ToSite()
			if tt.wantErr {
				var verr *model.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "id", verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, site.Id)
		})
	}
}

func TestSiteForm_Required(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing name", `{"pfas_level": 1, "lat": 1, "lng": 2}`, "name"},
		{"blank name", `{"name": "   ", "pfas_level": 1, "lat": 1, "lng": 2}`, "name"},
		{"missing level", `{"name": "A", "lat": 1, "lng": 2}`, "pfas_level"},
		{"text level", `{"name": "A", "pfas_level": "lots", "lat": 1, "lng": 2}`, "pfas_level"},
		{"missing lat", `{"name": "A", "pfas_level": 1, "lng": 2}`, "lat"},
		{"missing lng", `{"name": "A", "pfas_level": 1, "lat": 1}`, "lng"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeForm(t, tt.body).ToSite()
			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestSiteForm_Defaults(t *testing.T) {
	site, err := decodeForm(t, `{"name": "A", "pfas_level": -3.7, "lat": 0, "lng": 0}`).ToSite()
	require.NoError(t, err)
	assert.Equal(t, model.StatusKnown, site.Status)
	assert.Equal(t, -3, site.PfasLevel)
	assert.NotNil(t, site.Chemicals)
	assert.Empty(t, site.Chemicals)
}

func TestSiteForm_ExponentNumbers(t *testing.T) {
	site, err := decodeForm(t, `{"id": "3e0", "name": "A", "pfas_level": 1e2, "lat": 1.5e1, "lng": 1e-7}`).ToSite()
	require.NoError(t, err)
	assert.Equal(t, 3, site.Id)
	assert.Equal(t, 100, site.PfasLevel)
	assert.Equal(t, 15.0, site.Lat())
	assert.Equal(t, 1e-7, site.Lng())
}

func TestSiteForm_NonFinite(t *testing.T) {
	for _, field := range []string{"pfas_level", "lat", "lng"} {
		t.Run(field, func(t *testing.T) {
			body := map[string]interface{}{"name": "A", "pfas_level": 1, "lat": 1, "lng": 2}
			body[field] = "NaN"
			b, err := json.Marshal(body)
			require.NoError(t, err)

			_, err = decodeForm(t, string(b)).ToSite()
			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, field, verr.Field)
		})
	}

	_, err := decodeForm(t, `{"name": "A", "pfas_level": "Inf", "lat": 1, "lng": 2}`).ToSite()
	assert.Error(t, err)
}

func TestCleanChemicals_KeepsNames(t *testing.T) {
	chems := CleanChemicals(map[string]interface{}{" PFOA ": 5.0, "PFOA": 7.0, "  ": 1.0})
	assert.Equal(t, model.Chemicals{" PFOA ": 5, "PFOA": 7}, chems)
}
