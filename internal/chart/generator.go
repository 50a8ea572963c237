package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"SignalSentry/internal/model"
)

// Generator renders candlestick charts for signals as standalone HTML files.
type Generator struct {
	dir string
}

func NewGenerator(dir string) (*Generator, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}
	return &Generator{dir: dir}, nil
}

// Render draws the last 60 bars of the signal window with entry, stop,
// target and S/R level mark lines and writes the chart to disk. Returns
// the path of the written file.
func (g *Generator) Render(sig *model.Signal) (string, error) {
	bars := sig.Bars
	if len(bars) > 60 {
		bars = bars[len(bars)-60:]
	}
	if len(bars) == 0 {
		return "", fmt.Errorf("no bars to render for %s", sig.Symbol)
	}

	x := make([]string, len(bars))
	data := make([]opts.KlineData, len(bars))
	for i, b := range bars {
		x[i] = b.Time.Format("15:04")
		data[i] = opts.KlineData{Value: [4]float64{b.Open, b.Close, b.Low, b.High}}
	}

	kline := charts.NewKLine()
	kline.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s %s %s", sig.Symbol, sig.Direction, sig.Pattern.Name),
			Subtitle: fmt.Sprintf("R:R %.2f | %s @ %.2f", sig.RiskReward, sig.SRKind, sig.SRLevel),
		}),
		charts.WithXAxisOpts(opts.XAxis{SplitNumber: 20}),
		charts.WithYAxisOpts(opts.YAxis{Scale: true}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)

	kline.SetXAxis(x).AddSeries("price", data,
		charts.WithMarkLineNameYAxisItemOpts(
			opts.MarkLineNameYAxisItem{Name: "Entry", YAxis: sig.Entry},
			opts.MarkLineNameYAxisItem{Name: "Stop", YAxis: sig.StopLoss},
			opts.MarkLineNameYAxisItem{Name: "Target 1", YAxis: sig.Target1},
			opts.MarkLineNameYAxisItem{Name: "Target 2", YAxis: sig.Target2},
			opts.MarkLineNameYAxisItem{Name: "S/R", YAxis: sig.SRLevel},
		),
	)

	name := fmt.Sprintf("%s_%s_%s.html",
		sanitize(sig.Symbol), sig.Direction, sig.Timestamp.Format("20060102_150405"))
	path := filepath.Join(g.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := kline.Render(f); err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}
	return path, nil
}

// CleanupOld removes chart files older than the retention window.
func (g *Generator) CleanupOld(retention time.Duration) error {
	entries, err := os.ReadDir(g.dir)
	if err != nil {
		return fmt.Errorf("read chart dir: %w", err)
	}
	cutoff := time.Now().Add(-retention)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".html") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			os.Remove(filepath.Join(g.dir, e.Name()))
		}
	}
	return nil
}

func sanitize(symbol string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "^", "_", "&", "_")
	return r.Replace(symbol)
}
