package mapview

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelColor(t *testing.T) {
	tests := []struct {
		level float64
		want  string
	}{
		{-10, "#4CAF50"},
		{0, "#4CAF50"},
		{25, "#A6B82C"},
		{50, "#FFC107"},
		{75, "#FA821F"},
		{100, "#F44336"},
		{250, "#F44336"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelColor(tt.level), "level %v", tt.level)
	}
}

func TestColorExpression(t *testing.T) {
	expr := ColorExpression()
	assert.Equal(t, "interpolate", expr[0])
	assert.Equal(t, []interface{}{"get", "level"}, expr[2])
	assert.Equal(t, []interface{}{0.0, "#4CAF50", 50.0, "#FFC107", 100.0, "#F44336"}, expr[3:])
}
