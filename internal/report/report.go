// Package report renders an HTML overview of a project with go-echarts.
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/banshee-data/gridfit/internal/history"
	"github.com/banshee-data/gridfit/internal/project"
	"github.com/banshee-data/gridfit/internal/security"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// DefaultOutput returns the report file name used when no path is given.
func DefaultOutput(projectName string) string {
	return security.SanitizeFilename(projectName) + "-report.html"
}

// Write renders the report for p to w. entries is the project's generation
// history and may be empty; it adds a chart of exported file sizes.
func Write(w io.Writer, p *project.Project, entries []history.Entry) error {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Gridfinity project: %s", p.Name)
	page.AddCharts(footprintChart(p))

	if bins := heightChart(p); bins != nil {
		page.AddCharts(bins)
	}
	if len(entries) > 0 {
		page.AddCharts(sizeChart(entries))
	}

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("render error: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteFile renders the report to path, creating parent directories.
func WriteFile(path string, p *project.Project, entries []history.Entry) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if err := Write(f, p, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// footprintChart plots every component's grid footprint in cells.
func footprintChart(p *project.Project) *charts.Bar {
	x := make([]string, 0, len(p.Components))
	y := make([]opts.BarData, 0, len(p.Components))
	for _, c := range p.Components {
		w, d := c.Footprint()
		x = append(x, c.Name)
		y = append(y, opts.BarData{Name: c.Describe(), Value: w * d})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: "Grid footprint", Subtitle: fmt.Sprintf("project=%s components=%d", p.Name, len(p.Components))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "cells"}),
	)
	bar.SetXAxis(x).
		AddSeries("cells", y,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}

// heightChart plots bin heights in 7mm units; nil when the project has no bins.
func heightChart(p *project.Project) *charts.Bar {
	var x []string
	var y []opts.BarData
	for _, c := range p.Components {
		if c.Type != project.KindBin {
			continue
		}
		x = append(x, c.Name)
		y = append(y, opts.BarData{Value: c.Height})
	}
	if len(x) == 0 {
		return nil
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "360px"}),
		charts.WithTitleOpts(opts.Title{Title: "Bin heights"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "height units"}),
	)
	bar.SetXAxis(x).
		AddSeries("height", y,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}

// sizeChart sums exported STL sizes per component, in KiB, in the order each
// component first appears in entries. Entries are newest first and a path is
// re-recorded on every regeneration, so only the first entry per path counts.
func sizeChart(entries []history.Entry) *charts.Bar {
	var order []string
	totals := make(map[string]int64)
	seen := make(map[string]bool)
	for _, e := range entries {
		if seen[e.Path] {
			continue
		}
		seen[e.Path] = true
		if _, ok := totals[e.Component]; !ok {
			order = append(order, e.Component)
		}
		totals[e.Component] += e.SizeBytes
	}

	y := make([]opts.BarData, 0, len(order))
	for _, name := range order {
		y = append(y, opts.BarData{Value: float64(totals[name]) / 1024})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "360px"}),
		charts.WithTitleOpts(opts.Title{Title: "Exported STL size", Subtitle: fmt.Sprintf("files=%d", len(seen))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "KiB"}),
	)
	bar.SetXAxis(order).AddSeries("size", y)
	return bar
}
