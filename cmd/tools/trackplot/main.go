// trackplot renders a coaster track as a standalone HTML page with a plan
// view (X/Z) and an elevation profile, using go-echarts. By default it plots
// a built-in demo track with a vertical loop at its midpoint; pass -csv to
// plot points from a file instead (one "x,y,z" line per point).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Kazi584/roller-coaster-builder/internal/coaster"
)

var (
	out     = flag.String("out", "track.html", "Output HTML file")
	csvPath = flag.String("csv", "", "Plot points from a CSV file (x,y,z per line) instead of the demo track")
	loopAt  = flag.Int("loop-at", -1, "Insert a loop at this point index (-1 disables; demo track defaults to its midpoint)")
)

func main() {
	flag.Parse()

	editor := coaster.NewEditor(coaster.DefaultLoopConfig())
	if *csvPath != "" {
		if err := loadCSV(editor, *csvPath); err != nil {
			log.Fatalf("failed to load %s: %v", *csvPath, err)
		}
	} else {
		demoTrack(editor)
	}

	if *loopAt >= 0 {
		pts := editor.TrackPoints()
		if *loopAt >= len(pts) {
			log.Fatalf("no point %d (track has %d points)", *loopAt, len(pts))
		}
		editor.CreateLoopAtPoint(pts[*loopAt].ID)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("failed to create output: %v", err)
	}
	defer f.Close()

	if err := renderPage(editor.TrackPoints(), f); err != nil {
		log.Fatalf("failed to render chart: %v", err)
	}
	log.Printf("wrote %s (%d points)", *out, editor.PointCount())
}

// demoTrack builds a short out-and-back run with a climb, then splices a
// loop at the midpoint so the plot exercises the lateral split.
func demoTrack(editor *coaster.Editor) {
	for i := 0; i < 8; i++ {
		x := float64(i) * 12
		y := 4.0
		if i >= 2 && i <= 5 {
			y = 4 + float64(i-1)*3 // chain lift climb
		}
		editor.AddTrackPoint(r3.Vec{X: x, Y: y})
	}
	pts := editor.TrackPoints()
	editor.CreateLoopAtPoint(pts[len(pts)/2].ID)
}

func loadCSV(editor *coaster.Editor, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	for ln, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		fields := strings.Split(strings.TrimSpace(line), ",")
		if len(fields) != 3 {
			return fmt.Errorf("line %d: expected x,y,z", ln+1)
		}
		var coords [3]float64
		for i, field := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return fmt.Errorf("line %d: bad coordinate %q", ln+1, field)
			}
			coords[i] = v
		}
		editor.AddTrackPoint(r3.Vec{X: coords[0], Y: coords[1], Z: coords[2]})
	}
	return nil
}

func renderPage(points []coaster.TrackPoint, f *os.File) error {
	plan := charts.NewScatter()
	plan.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Track plan view", Subtitle: fmt.Sprintf("%d points, X/Z world plane", len(points))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "X"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Z"}),
	)

	planData := make([]opts.ScatterData, 0, len(points))
	for _, p := range points {
		planData = append(planData, opts.ScatterData{Value: []interface{}{p.Position.X, p.Position.Z}})
	}
	plan.AddSeries("path", planData,
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}),
	)

	profile := charts.NewLine()
	profile.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Elevation profile", Subtitle: "height by point index"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Y", Type: "value"}),
	)

	idx := make([]string, 0, len(points))
	heights := make([]opts.LineData, 0, len(points))
	for i, p := range points {
		idx = append(idx, strconv.Itoa(i))
		heights = append(heights, opts.LineData{Value: p.Position.Y})
	}
	profile.SetXAxis(idx).
		AddSeries("height", heights,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}),
		)

	page := components.NewPage()
	page.AddCharts(plan, profile)
	return page.Render(f)
}
