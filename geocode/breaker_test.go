package geocode

import (
	"context"
	"testing"
	"time"

	"github.com/pfas-tracker/api/model"
	"github.com/pkg/errors"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakerGeocoder_Opens(t *testing.T) {
	up := &fakeGeocoder{err: errors.New("connection refused")}
	b := NewBreakerGeocoder(up, 2, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := b.Search(ctx, "Pune")
		assert.ErrorIs(t, err, model.ErrUnavailable)
	}
	assert.Equal(t, gobreaker.StateOpen, b.State())

	_, err := b.Search(ctx, "Pune")
	assert.ErrorIs(t, err, model.ErrUnavailable)
	assert.Equal(t, 2, up.Calls(), "an open breaker does not call upstream")
}

func TestBreakerGeocoder_PassesThrough(t *testing.T) {
	up := &fakeGeocoder{res: []Suggestion{{Id: "a"}}}
	b := NewBreakerGeocoder(up, 2, time.Minute)

	res, err := b.Search(context.Background(), "Pune")
	require.NoError(t, err)
	assert.Equal(t, "a", res[0].Id)
	assert.Equal(t, gobreaker.StateClosed, b.State())
}
