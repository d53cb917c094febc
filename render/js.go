package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dnldd/tickplot/figure"
	"github.com/dnldd/tickplot/shared"
)

// jsFormat is a precompiled tooltip value format, interpreted by the
// generated formatter helper.
type jsFormat struct {
	Kind   string `json:"kind"`
	Layout string `json:"layout,omitempty"`
	Digits int    `json:"digits,omitempty"`
}

// jsEntry is one generated tooltip entry.
type jsEntry struct {
	Label  string   `json:"label"`
	Field  string   `json:"field"`
	Format jsFormat `json:"format"`
}

// jsStyle is a generated series line style.
type jsStyle struct {
	Color string  `json:"color"`
	Alpha float64 `json:"alpha"`
}

// strftimeReplacer maps strftime directives to the charting runtime's
// date template tokens.
var strftimeReplacer = strings.NewReplacer(
	"%F", "{yyyy}-{MM}-{dd}",
	"%T", "{HH}:{mm}:{ss}",
	"%Y", "{yyyy}",
	"%m", "{MM}",
	"%d", "{dd}",
	"%H", "{HH}",
	"%M", "{mm}",
	"%S", "{ss}",
)

// translateStrftime converts a strftime style date hint into the charting
// runtime's template form.
func translateStrftime(hint string) string {
	if hint == "" {
		return "{yyyy}-{MM}-{dd}"
	}

	return strftimeReplacer.Replace(hint)
}

// printfDigits extracts the decimal count from a printf style hint,
// eg. %.2f, defaulting to two.
func printfDigits(hint string) int {
	dot := strings.IndexByte(hint, '.')
	if dot == -1 {
		return 2
	}

	digits := 0
	found := false
	for _, r := range hint[dot+1:] {
		if r < '0' || r > '9' {
			break
		}

		digits = digits*10 + int(r-'0')
		found = true
	}

	if !found {
		return 2
	}

	return digits
}

// numeralDigits extracts the decimal count from a numeral style hint,
// eg. 0.00 a.
func numeralDigits(hint string) int {
	dot := strings.IndexByte(hint, '.')
	if dot == -1 {
		return 0
	}

	digits := 0
	for _, r := range hint[dot+1:] {
		if r != '0' {
			break
		}

		digits++
	}

	return digits
}

// compileNumeral precompiles a numeral style hint.
func compileNumeral(hint string) jsFormat {
	trimmed := strings.TrimSpace(hint)
	digits := numeralDigits(trimmed)

	switch {
	case strings.HasSuffix(trimmed, "a"):
		return jsFormat{Kind: "abbrev", Digits: digits}
	case strings.HasPrefix(trimmed, "$"):
		return jsFormat{Kind: "currency", Digits: digits}
	case strings.Contains(trimmed, ","):
		return jsFormat{Kind: "thousands", Digits: digits}
	default:
		return jsFormat{Kind: "fixed", Digits: digits}
	}
}

// compileFormat precompiles a tooltip format hint per its formatter kind.
func compileFormat(kind figure.FormatterKind, hint string) jsFormat {
	switch kind {
	case figure.FormatDatetime:
		return jsFormat{Kind: "date", Layout: translateStrftime(hint)}
	case figure.FormatPrintf:
		return jsFormat{Kind: "fixed", Digits: printfDigits(hint)}
	case figure.FormatNumeral:
		return compileNumeral(hint)
	default:
		return jsFormat{Kind: "raw"}
	}
}

// chartJSID returns the figure's identifier in a form usable within
// generated identifiers.
func chartJSID(fig *figure.Figure) string {
	return strings.ReplaceAll(fig.ID(), "-", "")
}

// layerDims returns the mapping from field name to the field's index
// within the layer's data point value arrays. Non-hoverable layers map to
// nil so the generated formatter skips them.
func layerDims(layer *figure.Layer) map[string]int {
	if !layer.Hoverable {
		return nil
	}

	dims := map[string]int{
		shared.FieldDate.String(): 0,
		layer.Y.String():          1,
	}

	idx := 2
	for _, field := range layer.Source.Fields() {
		if field == shared.FieldDate || field == layer.Y {
			continue
		}

		dims[field.String()] = idx
		idx++
	}

	return dims
}

// layerPoints resolves a layer into data point value arrays: the date in
// unix milliseconds, the bound y value, then the source's remaining
// fields for hoverable layers.
func layerPoints(layer *figure.Layer) ([][]interface{}, error) {
	dates, values, err := layer.Source.Project(layer.X, layer.Y)
	if err != nil {
		return nil, err
	}

	var extras [][]float64
	if layer.Hoverable {
		for _, field := range layer.Source.Fields() {
			if field == shared.FieldDate || field == layer.Y {
				continue
			}

			column, err := layer.Source.Column(field)
			if err != nil {
				return nil, err
			}

			extras = append(extras, column)
		}
	}

	points := make([][]interface{}, len(dates))
	for idx := range dates {
		point := make([]interface{}, 0, 2+len(extras))
		point = append(point, dates[idx].UnixMilli(), values[idx])
		for _, extra := range extras {
			point = append(point, extra[idx])
		}

		points[idx] = point
	}

	return points, nil
}

// formatterTemplate is the generated tooltip formatter. It enumerates the
// hover spec entries in order for every hovered series, skipping series
// without hover data and, when the muted policy is ignore, muted series.
const formatterTemplate = `function (params) {
	let dims = %s;
	let entries = %s;
	let ignoreMuted = %s;
	let muted = window.muted_%s || {};
	let fmtAbbrev = function (value, digits) {
		let abs = Math.abs(value);
		if (abs >= 1e12) { return (value / 1e12).toFixed(digits) + ' t'; }
		if (abs >= 1e9) { return (value / 1e9).toFixed(digits) + ' b'; }
		if (abs >= 1e6) { return (value / 1e6).toFixed(digits) + ' m'; }
		if (abs >= 1e3) { return (value / 1e3).toFixed(digits) + ' k'; }
		return value.toFixed(digits);
	};
	let fmtValue = function (value, format) {
		switch (format.kind) {
		case 'date':
			return echarts.time.format(value, format.layout, true);
		case 'fixed':
			return Number(value).toFixed(format.digits);
		case 'currency':
			return '$' + Number(value).toFixed(format.digits);
		case 'thousands':
			return Number(value).toLocaleString('en-US');
		case 'abbrev':
			return fmtAbbrev(Number(value), format.digits);
		default:
			return String(value);
		}
	};
	let items = Array.isArray(params) ? params : [params];
	let blocks = [];
	for (let i = 0; i < items.length; i++) {
		let item = items[i];
		let fields = dims[item.seriesName];
		if (!fields) { continue; }
		if (ignoreMuted && muted[item.seriesName]) { continue; }
		let rows = [item.marker + ' <b>' + item.seriesName + '</b>'];
		for (let j = 0; j < entries.length; j++) {
			let entry = entries[j];
			let idx = fields[entry.field];
			if (idx === undefined) { continue; }
			rows.push(entry.label + ': ' + fmtValue(item.value[idx], entry.format));
		}
		blocks.push(rows.join('<br/>'));
	}
	return blocks.join('<br/><br/>');
}`

// tooltipFormatterJS generates the tooltip formatter for the figure's
// hover spec.
func tooltipFormatterJS(fig *figure.Figure) (string, error) {
	spec := fig.Hover()
	if spec == nil {
		return "", nil
	}

	entries := make([]jsEntry, 0, len(spec.Tooltips))
	for _, tooltip := range spec.Tooltips {
		entries = append(entries, jsEntry{
			Label:  tooltip.Label,
			Field:  tooltip.Field.String(),
			Format: compileFormat(spec.FormatterFor(tooltip.Field), tooltip.Format),
		})
	}

	dims := make(map[string]map[string]int, len(fig.Layers()))
	for _, layer := range fig.Layers() {
		dims[layer.Style.LegendLabel] = layerDims(layer)
	}

	entriesJSON, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshalling tooltip entries: %v", err)
	}

	dimsJSON, err := json.Marshal(dims)
	if err != nil {
		return "", fmt.Errorf("marshalling series dims: %v", err)
	}

	ignoreMuted := "false"
	if spec.MutedPolicy == figure.MutedIgnore {
		ignoreMuted = "true"
	}

	return fmt.Sprintf(formatterTemplate, dimsJSON, entriesJSON, ignoreMuted, chartJSID(fig)), nil
}

// muteTemplate intercepts legend clicks to keep the clicked series
// visible and swap it between its base and muted style instead.
const muteTemplate = `(function () {
	let chart = goecharts_%s;
	let muted = window.muted_%s = %s;
	let base = %s;
	let dim = %s;
	chart.on('legendselectchanged', function (event) {
		chart.dispatchAction({ type: 'legendSelect', name: event.name });
		if (!(event.name in base)) { return; }
		muted[event.name] = !muted[event.name];
		let style = muted[event.name] ? dim[event.name] : base[event.name];
		chart.setOption({
			series: [{
				name: event.name,
				lineStyle: { color: style.color, opacity: style.alpha },
				itemStyle: { color: style.color, opacity: style.alpha }
			}]
		});
	});
})();`

// muteSnippetJS generates the legend interception snippet implementing
// the mute click policy.
func muteSnippetJS(fig *figure.Figure) (string, error) {
	base := make(map[string]jsStyle, len(fig.Layers()))
	dim := make(map[string]jsStyle, len(fig.Layers()))
	muted := make(map[string]bool, len(fig.Layers()))

	for _, layer := range fig.Layers() {
		style := layer.Style
		base[style.LegendLabel] = jsStyle{Color: style.Color, Alpha: style.BaseAlpha}
		dim[style.LegendLabel] = jsStyle{Color: style.MutedColor, Alpha: style.MutedAlpha}
		if layer.Muted {
			muted[style.LegendLabel] = true
		}
	}

	mutedJSON, err := json.Marshal(muted)
	if err != nil {
		return "", fmt.Errorf("marshalling muted set: %v", err)
	}

	baseJSON, err := json.Marshal(base)
	if err != nil {
		return "", fmt.Errorf("marshalling base styles: %v", err)
	}

	dimJSON, err := json.Marshal(dim)
	if err != nil {
		return "", fmt.Errorf("marshalling muted styles: %v", err)
	}

	id := chartJSID(fig)

	return fmt.Sprintf(muteTemplate, id, id, mutedJSON, baseJSON, dimJSON), nil
}

// noneTemplate intercepts legend clicks and re-selects the clicked
// series, leaving legend entries inert.
const noneTemplate = `(function () {
	let chart = goecharts_%s;
	chart.on('legendselectchanged', function (event) {
		chart.dispatchAction({ type: 'legendSelect', name: event.name });
	});
})();`

// noneSnippetJS generates the legend interception snippet implementing
// the none click policy.
func noneSnippetJS(fig *figure.Figure) string {
	return fmt.Sprintf(noneTemplate, chartJSID(fig))
}
