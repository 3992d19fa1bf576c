package export

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/fortuna/aurum/internal/model"
	"github.com/fortuna/aurum/internal/residuals"
)

var (
	surplusColor = color.RGBA{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff}
	deficitColor = color.RGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}
)

// ResidualBarChart renders the per-rookie residual bars, surplus in green
// and deficit in red, with players ordered by residual.
func ResidualBarChart(path string, records []residuals.ResidualRecord, season string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating chart dir: %w", err)
	}

	sorted := make([]residuals.ResidualRecord, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Residual < sorted[j].Residual
	})

	labels := make([]string, len(sorted))
	surplus := make(plotter.Values, len(sorted))
	deficit := make(plotter.Values, len(sorted))
	for i, rec := range sorted {
		labels[i] = fmt.Sprintf("%s (%s)", rec.PlayerName, rec.TeamAbbreviation)
		if rec.Residual > 0 {
			surplus[i] = rec.Residual
		} else {
			deficit[i] = rec.Residual
		}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("NBA Rookie Contract Value Analysis %s", season)
	p.Y.Label.Text = "Residual Value"
	p.Add(plotter.NewGrid())

	width := vg.Points(8)

	surplusBars, err := plotter.NewBarChart(surplus, width)
	if err != nil {
		return fmt.Errorf("building surplus bars: %w", err)
	}
	surplusBars.Color = surplusColor
	surplusBars.LineStyle.Width = 0.5

	deficitBars, err := plotter.NewBarChart(deficit, width)
	if err != nil {
		return fmt.Errorf("building deficit bars: %w", err)
	}
	deficitBars.Color = deficitColor
	deficitBars.LineStyle.Width = 0.5

	p.Add(surplusBars, deficitBars)
	p.Legend.Add("Surplus (Outperforming)", surplusBars)
	p.Legend.Add("Deficit (Underperforming)", deficitBars)
	p.Legend.Top = true
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = 1.2
	p.X.Tick.Label.XAlign = -0.9

	if err := p.Save(16*vg.Inch, 9*vg.Inch, path); err != nil {
		return fmt.Errorf("saving residual chart: %w", err)
	}
	return nil
}

// AccuracyScatter renders predicted vs actual production with the identity
// line; points on the line were predicted exactly.
func AccuracyScatter(path string, records []residuals.ResidualRecord, season string, metrics model.CVMetrics) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating chart dir: %w", err)
	}

	pts := make(plotter.XYs, len(records))
	for i, rec := range records {
		pts[i].X = rec.Predicted
		pts[i].Y = rec.Actual
	}
	lo, hi := identityBounds(records)

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Prediction Accuracy %s (MAE %.1f, RMSE %.1f, R² %.3f)",
		season, metrics.MAE, metrics.RMSE, metrics.R2)
	p.X.Label.Text = "Predicted Production"
	p.Y.Label.Text = "Actual Production"
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("building scatter: %w", err)
	}
	scatter.GlyphStyle.Color = deficitColor
	scatter.GlyphStyle.Radius = vg.Points(3)

	identity, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return fmt.Errorf("building identity line: %w", err)
	}
	identity.LineStyle.Color = color.Gray{Y: 0x60}
	identity.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	p.Add(scatter, identity)
	p.Legend.Add("Rookies", scatter)
	p.Legend.Add("Perfect prediction", identity)

	if err := p.Save(10*vg.Inch, 10*vg.Inch, path); err != nil {
		return fmt.Errorf("saving accuracy chart: %w", err)
	}
	return nil
}

// identityBounds spans the y=x line across the data range. Bounds are seeded
// from the first record so all-negative productions keep the line below zero.
func identityBounds(records []residuals.ResidualRecord) (lo, hi float64) {
	if len(records) == 0 {
		return 0, 0
	}

	lo, hi = records[0].Predicted, records[0].Predicted
	for _, rec := range records {
		lo = math.Min(lo, math.Min(rec.Predicted, rec.Actual))
		hi = math.Max(hi, math.Max(rec.Predicted, rec.Actual))
	}
	return lo, hi
}
