package geocode

import (
	"context"
	"time"

	"github.com/pfas-tracker/api/metrics"
	"github.com/pfas-tracker/api/model"
	"github.com/pkg/errors"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// BreakerGeocoder stops calling the upstream after repeated failures.
// Every failure, including a rejected call, is reported as model.ErrUnavailable.
type BreakerGeocoder struct {
	next Geocoder
	cb   *gobreaker.CircuitBreaker[[]Suggestion]
}

func NewBreakerGeocoder(next Geocoder, failures uint32, openFor time.Duration) *BreakerGeocoder {
	metrics.GeocodeBreakerState.Set(0)
	cb := gobreaker.NewCircuitBreaker[[]Suggestion](gobreaker.Settings{
		Name:        "maptiler-geocoding",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			zap.L().Info("circuit breaker state change",
				zap.String("breaker", name), zap.String("from", from.String()), zap.String("to", to.String()))
			metrics.GeocodeBreakerState.Set(float64(to))
		},
	})
	return &BreakerGeocoder{next: next, cb: cb}
}

func (b *BreakerGeocoder) Search(ctx context.Context, query string) ([]Suggestion, error) {
	res, err := b.cb.Execute(func() ([]Suggestion, error) {
		return b.next.Search(ctx, query)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.GeocodeRequests.WithLabelValues("rejected").Inc()
		} else {
			metrics.GeocodeRequests.WithLabelValues("failure").Inc()
		}
		return nil, errors.Wrap(model.ErrUnavailable, err.Error())
	}
	metrics.GeocodeRequests.WithLabelValues("success").Inc()
	return res, nil
}

func (b *BreakerGeocoder) State() gobreaker.State {
	return b.cb.State()
}
