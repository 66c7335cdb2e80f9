package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tytimer/internal/ui/testutil"
)

func TestBlendColors(t *testing.T) {
	colors := blendColors(3, lipgloss.Color("#000000"), lipgloss.Color("#ffffff"))

	require.Len(t, colors, 3)
	assert.InDelta(t, 0.0, colors[0].R, 0.01)
	assert.InDelta(t, 1.0, colors[2].R, 0.01)
	assert.Greater(t, colors[1].R, colors[0].R)
}

func TestToColor_ANSIFallsBackToGray(t *testing.T) {
	r, g, b, _ := toColor(lipgloss.Color("240")).RGBA()
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
}

func TestBoldGradient_KeepsText(t *testing.T) {
	assert.Empty(t, BoldGradient("", T().Primary, T().Secondary))

	out := BoldGradient("tytimer", T().Primary, T().Secondary)
	assert.Equal(t, "tytimer", testutil.StripANSI(out))
}
