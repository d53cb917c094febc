package render

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dnldd/tickplot/figure"
	"github.com/dnldd/tickplot/shared"
	"github.com/peterldowns/testy/assert"
	"github.com/rs/zerolog"
)

func setupHTMLRenderer(t *testing.T) *HTMLRenderer {
	t.Helper()

	logger := zerolog.New(nil)
	renderer, err := NewHTMLRenderer(&HTMLConfig{Logger: &logger})
	if err != nil {
		t.Fatalf("creating html renderer: %v", err)
	}

	return renderer
}

func TestHTMLConfigValidate(t *testing.T) {
	logger := zerolog.New(nil)

	cfg := &HTMLConfig{Logger: &logger}
	assert.NoError(t, cfg.Validate())

	cfg = &HTMLConfig{}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "logger cannot be nil"))
}

func TestNewHTMLRendererDefaults(t *testing.T) {
	renderer := setupHTMLRenderer(t)
	assert.Equal(t, renderer.cfg.Theme, DefaultTheme)
	assert.Equal(t, renderer.cfg.Width, DefaultWidth)
	assert.Equal(t, renderer.cfg.Height, DefaultHeight)
}

func TestHTMLRender(t *testing.T) {
	renderer := setupHTMLRenderer(t)

	symbols := []string{"AAPL", "GOOG", "IBM", "MSFT"}
	fig := setupTestFigure(t, figure.ClickMute, symbols...)
	err := fig.AttachHover(figure.DefaultHoverSpec(figure.ProbeVLine, figure.MutedIgnore))
	assert.NoError(t, err)

	var buf bytes.Buffer
	err = renderer.Render(fig, &buf)
	assert.NoError(t, err)

	page := buf.String()

	// Ensure every series and its color are lowered into the page.
	for idx, symbol := range symbols {
		assert.True(t, strings.Contains(page, symbol))
		assert.True(t, strings.Contains(page, figure.PaletteColor(idx)))
	}

	// Ensure the chart identifier, pan/zoom and the legend interception
	// snippet are present.
	assert.True(t, strings.Contains(page, chartJSID(fig)))
	assert.True(t, strings.Contains(page, "dataZoom"))
	assert.True(t, strings.Contains(page, "legendselectchanged"))
	assert.True(t, strings.Contains(page, "Stock Closing Prices"))
}

func TestHTMLRenderHidePolicy(t *testing.T) {
	renderer := setupHTMLRenderer(t)

	fig := setupTestFigure(t, figure.ClickHide, "AAPL")
	err := fig.AttachHover(figure.DefaultHoverSpec(figure.ProbeVLine, figure.MutedShow))
	assert.NoError(t, err)

	var buf bytes.Buffer
	err = renderer.Render(fig, &buf)
	assert.NoError(t, err)

	// Ensure the hide policy leans on the runtime's native legend
	// toggling instead of an interception snippet.
	assert.Equal(t, strings.Contains(buf.String(), "legendselectchanged"), false)
}

func TestHTMLRenderErrors(t *testing.T) {
	renderer := setupHTMLRenderer(t)

	// Ensure a figure with no layers is rejected.
	fig := setupTestFigure(t, figure.ClickMute)
	var buf bytes.Buffer
	err := renderer.Render(fig, &buf)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrConfig))
}

func TestHTMLRenderToFile(t *testing.T) {
	renderer := setupHTMLRenderer(t)

	fig := setupTestFigure(t, figure.ClickMute, "AAPL")
	path := filepath.Join(t.TempDir(), "chart.html")

	err := renderer.RenderToFile(fig, path)
	assert.NoError(t, err)

	page, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(string(page), "AAPL"))
}
