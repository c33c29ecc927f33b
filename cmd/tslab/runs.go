package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/san-kum/tslab/internal/analysis"
	"github.com/san-kum/tslab/internal/dynamo"
	"github.com/san-kum/tslab/internal/export"
	"github.com/san-kum/tslab/internal/metrics"
	"github.com/san-kum/tslab/internal/storage"
	"github.com/san-kum/tslab/internal/transform"
	"github.com/san-kum/tslab/internal/viz"
	"github.com/spf13/cobra"
)

func loadRun(runID string) (*storage.Store, *storage.RunMetadata, *dynamo.Series, []string, error) {
	st, err := openStore()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	series, index, err := st.LoadSeries(runID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return st, meta, series, index, nil
}

// pickColumns returns the requested column, or every column when name is empty.
func pickColumns(s *dynamo.Series, name string) (*dynamo.Series, error) {
	if name == "" {
		return s, nil
	}
	col := s.Column(name)
	if col == nil {
		return nil, fmt.Errorf("column %q not in %v", name, s.Names)
	}
	return dynamo.NewSeries(name, col), nil
}

func newTransformCmd() *cobra.Command {
	var op, column string
	var param int
	cmd := &cobra.Command{
		Use:   "transform [run_id]",
		Short: "apply a transform to a stored run and save the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, meta, series, _, err := loadRun(args[0])
			if err != nil {
				return err
			}
			series, err = pickColumns(series, column)
			if err != nil {
				return err
			}

			out, err := transform.Apply(op, series, param)
			if err != nil {
				return err
			}

			runID, err := st.Save(storage.RunMetadata{
				Kind:   "transform_" + op,
				Seed:   meta.Seed,
				Params: map[string]float64{"param": float64(param)},
				Source: meta.ID,
			}, out, nil)
			if err != nil {
				return err
			}
			logger.Info("saved run", "id", runID, "op", op, "source", meta.ID)

			fmt.Println(viz.Summary("transform "+op,
				viz.KV{Key: "run id", Value: runID},
				viz.KV{Key: "source", Value: meta.ID},
				viz.KV{Key: "samples", Value: out.Len()},
				viz.KV{Key: "columns", Value: out.Names},
			))
			return nil
		},
	}
	cmd.Flags().StringVar(&op, "op", "diff", "transform: "+strings.Join(transform.Names(), ", "))
	cmd.Flags().IntVar(&param, "param", 1, "periods (diff, ret, log_ret) or window (mean, ewma)")
	cmd.Flags().StringVar(&column, "column", "", "only transform this column")
	return cmd
}

func newDatasetCmd() *cobra.Command {
	var column, out string
	var lookBack, timeAhead int
	cmd := &cobra.Command{
		Use:   "dataset [run_id]",
		Short: "write a supervised (X, Y) windowed dataset as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, series, _, err := loadRun(args[0])
			if err != nil {
				return err
			}
			if column == "" {
				column = series.Names[0]
			}
			values := series.Column(column)
			if values == nil {
				return fmt.Errorf("column %q not in %v", column, series.Names)
			}

			dataX, dataY, err := transform.CreateDataset(values, lookBack, timeAhead)
			if err != nil {
				return err
			}

			w := os.Stdout
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if err := writeDataset(csv.NewWriter(w), dataX, dataY); err != nil {
				return err
			}
			logger.Info("wrote dataset", "rows", len(dataX), "look_back", lookBack, "time_ahead", timeAhead)
			return nil
		},
	}
	cmd.Flags().StringVar(&column, "column", "", "source column (default first)")
	cmd.Flags().IntVar(&lookBack, "look-back", 1, "inputs per row")
	cmd.Flags().IntVar(&timeAhead, "time-ahead", 1, "targets per row")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

func writeDataset(w *csv.Writer, dataX, dataY [][]float64) error {
	if len(dataX) == 0 {
		return nil
	}
	header := make([]string, 0, len(dataX[0])+len(dataY[0]))
	for i := range dataX[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	for i := range dataY[0] {
		header = append(header, fmt.Sprintf("y%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range dataX {
		row := make([]string, 0, len(header))
		for _, v := range dataX[i] {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		for _, v := range dataY[i] {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := storage.New(dataDir).List()
			if err != nil {
				return err
			}

			if len(runs) == 0 {
				fmt.Println("no runs found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tKIND\tTIME\tLENGTH\tSEED\tSOURCE\tCOLUMNS")

			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
					run.ID,
					run.Kind,
					run.Timestamp.Format("2006-01-02 15:04:05"),
					run.Length,
					run.Seed,
					run.Source,
					strings.Join(run.Columns, ","),
				)
			}

			return w.Flush()
		},
	}
}

func newPlotCmd() *cobra.Command {
	var column string
	var width, height int
	var overlay bool
	cmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, meta, series, _, err := loadRun(args[0])
			if err != nil {
				return err
			}
			series, err = pickColumns(series, column)
			if err != nil {
				return err
			}
			if series.Len() == 0 {
				return fmt.Errorf("no data to plot")
			}

			fmt.Println(viz.Title.Render("run: " + meta.ID))
			fmt.Println(viz.Subtle.Render(fmt.Sprintf("kind: %s  samples: %d", meta.Kind, series.Len())))
			fmt.Println()

			if overlay {
				fmt.Println(viz.PlotMany(series.Columns, strings.Join(series.Names, " / "), width, height))
				return nil
			}
			for i, col := range series.Columns {
				fmt.Println(viz.Plot(col, series.Names[i], width, height))
				fmt.Println()
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&column, "column", "", "only plot this column")
	cmd.Flags().IntVar(&width, "width", viz.DefaultWidth, "chart width")
	cmd.Flags().IntVar(&height, "height", viz.DefaultHeight, "chart height")
	cmd.Flags().BoolVar(&overlay, "overlay", false, "draw all columns on one chart")
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	var column string
	cmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, meta, series, _, err := loadRun(args[0])
			if err != nil {
				return err
			}
			if column == "" {
				column = series.Names[0]
			}
			data := viz.Finite(series.Column(column))
			if len(data) < 4 {
				return fmt.Errorf("no data")
			}

			ps := analysis.PowerSpectrum(data)
			plotData := ps[:max(len(ps)/4, 1)]
			fmt.Println(viz.Plot(plotData, "power spectrum ("+column+")", viz.DefaultWidth, 15))
			fmt.Println()

			period, power := analysis.DominantPeriod(data)
			rows := []viz.KV{
				{Key: "kind", Value: meta.Kind},
				{Key: "samples", Value: len(data)},
			}
			rows = append(rows, metrics.Describe(data).Rows("")...)
			if period > 0 {
				rows = append(rows,
					viz.KV{Key: "period", Value: fmt.Sprintf("%.3f samples", period)},
					viz.KV{Key: "frequency", Value: fmt.Sprintf("%.5f cycles/sample", 1/period)},
					viz.KV{Key: "power", Value: power},
				)
			} else {
				rows = append(rows, viz.KV{Key: "period", Value: viz.Warning.Render("none")})
			}
			fmt.Println(viz.Summary("frequency analysis: "+meta.ID, rows...))
			return nil
		},
	}
	cmd.Flags().StringVar(&column, "column", "", "column to analyze (default first)")
	return cmd
}

func newPhaseCmd() *cobra.Command {
	var xName, yName, crossName string
	var lag int
	var threshold float64
	cmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot (delay embedding, column pair or poincare section)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, meta, series, _, err := loadRun(args[0])
			if err != nil {
				return err
			}

			var portrait *analysis.PhasePortrait2D
			switch {
			case crossName != "":
				portrait, err = analysis.PoincareFromColumns(series, crossName, threshold, xName, yName)
			case len(series.Names) > 1 && !cmd.Flags().Changed("lag"):
				portrait, err = analysis.PhaseFromColumns(series, xName, yName)
			default:
				portrait, err = analysis.DelayEmbedding(viz.Finite(series.Columns[0]), lag)
			}
			if err != nil {
				return err
			}

			fmt.Println(viz.Title.Render("phase portrait: " + meta.ID))
			fmt.Println(viz.Subtle.Render(fmt.Sprintf("%s vs %s, %d points", portrait.YLabel, portrait.XLabel, len(portrait.Points))))
			art := analysis.PhasePortraitToASCII(portrait, 70, 25)
			if art == "" {
				fmt.Println(viz.Warning.Render("no points"))
				return nil
			}
			fmt.Print(art)
			return nil
		},
	}
	cmd.Flags().IntVar(&lag, "lag", 17, "delay for single-column embedding")
	cmd.Flags().StringVar(&xName, "x", "X", "x-axis column")
	cmd.Flags().StringVar(&yName, "y", "Z", "y-axis column")
	cmd.Flags().StringVar(&crossName, "poincare-on", "", "record a poincare section when this column crosses --threshold")
	cmd.Flags().Float64Var(&threshold, "threshold", 27, "poincare section threshold")
	return cmd
}

func newExportCSVCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, series, index, err := loadRun(args[0])
			if err != nil {
				return err
			}

			w := csv.NewWriter(os.Stdout)
			if err := w.Write(append([]string{"index"}, series.Names...)); err != nil {
				return err
			}
			for i, label := range index {
				row := []string{label}
				for _, col := range series.Columns {
					if i < len(col) {
						row = append(row, strconv.FormatFloat(col[i], 'g', -1, 64))
					} else {
						row = append(row, "")
					}
				}
				if err := w.Write(row); err != nil {
					return err
				}
			}
			w.Flush()
			return w.Error()
		},
	}
}

func newExportJSONCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			return st.ExportRun(os.Stdout, args[0])
		},
	}
}

func newExportSVGCmd() *cobra.Command {
	var column, out, color string
	var lag, width, height int
	cmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a column, or its delay embedding with --lag, as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, series, _, err := loadRun(args[0])
			if err != nil {
				return err
			}
			if column == "" {
				column = series.Names[0]
			}
			values := series.Column(column)
			if values == nil {
				return fmt.Errorf("column %q not in %v", column, series.Names)
			}

			svg := export.SeriesToSVG(values, width, height, color)
			if lag > 0 {
				portrait, err := analysis.DelayEmbedding(viz.Finite(values), lag)
				if err != nil {
					return err
				}
				svg = export.TrajectoryToSVG(portrait.Points, width, height, color)
			}
			if svg == "" {
				return fmt.Errorf("not enough points to draw")
			}

			if out == "" {
				_, err = fmt.Println(svg)
				return err
			}
			return os.WriteFile(out, []byte(svg), 0644)
		},
	}
	cmd.Flags().StringVar(&column, "column", "", "column to draw (default first)")
	cmd.Flags().IntVar(&lag, "lag", 0, "draw the delay embedding with this lag instead of the line")
	cmd.Flags().IntVar(&width, "width", 800, "image width")
	cmd.Flags().IntVar(&height, "height", 400, "image height")
	cmd.Flags().StringVar(&color, "color", "#00ff88", "stroke color")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}
