package encoding

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBbox(t *testing.T) {
	b, err := ParseBbox("68.1, 6.5,97.4,35.5")
	require.NoError(t, err)
	assert.Equal(t, orb.Point{68.1, 6.5}, b.Min)
	assert.Equal(t, orb.Point{97.4, 35.5}, b.Max)

	for _, bad := range []string{"", "1,2,3", "1,2,3,x", "10,0,5,1", "0,10,1,5"} {
		_, err := ParseBbox(bad)
		assert.Error(t, err, bad)
	}
}
