package handler

import (
	"fmt"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/gitpulse-io/gitpulse/pkg/logger"
)

// Theme is the single color table for the intensity scale. Both the JSON
// views and the rendered chart share it, so restyling is one edit.
type Theme struct {
	Background string
	Levels     [5]string
	Selected   string
}

var defaultTheme = Theme{
	Background: "transparent",
	Levels:     [5]string{"#161b22", "#0e4429", "#006d32", "#26a641", "#39d353"},
	Selected:   "#1f6feb",
}

var chartWeekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// getHeatmapChart godoc
// @Summary Contribution heatmap as HTML
// @Description Renders the 365-day heatmap as a standalone echarts page
// @Tags Dashboard
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /dashboard/heatmap/chart [get]
func (h *DashboardHandler) getHeatmapChart(w http.ResponseWriter, r *http.Request) {
	weeks := h.service.Heatmap()

	labels := make([]string, 0, len(weeks))
	data := make([]opts.HeatMapData, 0, 366)
	maxCount := 1

	for weekIdx, week := range weeks {
		labels = append(labels, week[0].Day)
		for dayIdx, cell := range week {
			data = append(data, opts.HeatMapData{
				Name:  cell.Day,
				Value: [3]interface{}{weekIdx, dayIdx, cell.Count},
			})
			if cell.Count > maxCount {
				maxCount = cell.Count
			}
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       "Commit Activity",
			BackgroundColor: defaultTheme.Background,
		}),
		charts.WithTitleOpts(opts.Title{Title: "Commit Activity"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: chartWeekdays}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: true,
			Min:        0,
			Max:        float32(maxCount),
			Orient:     "horizontal",
			InRange:    &opts.VisualMapInRange{Color: defaultTheme.Levels[:]},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)
	hm.SetXAxis(labels).AddSeries("commits", data)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := hm.Render(w); err != nil {
		logger.Error("failed to render heatmap chart: %v", err)
		http.Error(w, fmt.Sprintf("failed to render chart: %v", err), http.StatusInternalServerError)
	}
}
