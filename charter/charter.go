package charter

import(
  "fmt"
  "io"
  "os"
  "github.com/go-echarts/go-echarts/v2/charts"
  "github.com/go-echarts/go-echarts/v2/opts"
  "github.com/go-echarts/go-echarts/v2/types"
)

// Series is one named line of a chart.
type Series struct {
  Name string
  Data []float64
}

// RenderLines writes an HTML line chart of every series to w. The x axis is
// the sample index of the longest series.
func RenderLines(w io.Writer, title, subtitle string, series ...Series) error {
  longest := 0
  for _, s := range series {
    if len(s.Data) > longest {
      longest = len(s.Data)
    }
  }

  xLabels := make([]string, longest, longest)
  for i := 0; i < longest; i++ {
    xLabels[i] = fmt.Sprint(i)
  }

  line := charts.NewLine()
  line.SetGlobalOptions(
    charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
    charts.WithTitleOpts(opts.Title{
      Title:    title,
      Subtitle: subtitle,
    }),
  )

  line.SetXAxis(xLabels)

  for _, s := range series {
    items := make([]opts.LineData, len(s.Data), len(s.Data))

    for i := 0; i < len(s.Data); i++ {
      items[i] = opts.LineData{
        Value: s.Data[i],
      }
    }

    line.AddSeries(s.Name, items)
  }

  line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: false}))

  return line.Render(w)
}

// MakeChart writes the chart to filePath, replacing any existing file.
func MakeChart(filePath, title, subtitle string, series ...Series) error {
  f, err := os.Create(filePath)

  if err != nil {
    return err
  }

  if err = RenderLines(f, title, subtitle, series...); err != nil {
    f.Close()
    return err
  }

  return f.Close()
}
