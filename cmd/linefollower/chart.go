package main

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// writeRewardChart renders cumulative reward per step, one line per episode.
func writeRewardChart(w io.Writer, runs []episodeRun) error {
	steps := 0
	for _, r := range runs {
		steps = max(steps, len(r.Rewards))
	}
	x := make([]int, steps)
	for i := range x {
		x[i] = i + 1
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Line follower rewards", Width: "100%", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: "Cumulative reward", Subtitle: fmt.Sprintf("episodes=%d", len(runs))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "step", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "reward", NameLocation: "middle", NameGap: 30}),
	)
	line.SetXAxis(x)

	for i, r := range runs {
		data := make([]opts.LineData, len(r.Rewards))
		total := 0
		for j, v := range r.Rewards {
			total += v
			data[j] = opts.LineData{Value: total}
		}
		line.AddSeries(fmt.Sprintf("ep%d seed=%d", i, r.Seed), data)
	}
	return line.Render(w)
}
