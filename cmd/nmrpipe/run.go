package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-nmr/nmr/chain"
	"github.com/cwbudde/algo-nmr/nmr/pipeline"
	"github.com/cwbudde/algo-nmr/nmr/spectrum"
)

func runCmd() *cobra.Command {
	var (
		recipePath  string
		showMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a processing recipe",
		Long: `Generate the synthetic spectrum of a recipe, commit its filters in order and
print the resulting chain and a summary of the processed data.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(recipePath)
			if err != nil {
				return fmt.Errorf("failed to open recipe: %w", err)
			}
			defer f.Close()

			rec, err := ReadRecipe(f)
			if err != nil {
				return err
			}

			var reg *prometheus.Registry
			if showMetrics {
				reg = prometheus.NewRegistry()
			}

			return runRecipe(cmd.OutOrStdout(), rec, reg)
		},
	}

	cmd.Flags().StringVarP(&recipePath, "recipe", "r", "", "recipe file (YAML)")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "print pipeline counters after the run")
	_ = cmd.MarkFlagRequired("recipe")

	return cmd
}

// runRecipe commits the steps of rec and reports to w. A non-nil reg
// collects pipeline metrics, which are printed at the end.
func runRecipe(w io.Writer, rec Recipe, reg *prometheus.Registry) error {
	data, err := rec.Spectrum.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate spectrum: %w", err)
	}

	s, err := chain.NewSpectrum("", data)
	if err != nil {
		return err
	}

	logger := slog.Default()
	opts := []pipeline.Option{pipeline.WithLogger(logger)}

	if reg != nil {
		opts = append(opts, pipeline.WithMetrics(pipeline.NewMetrics(reg)))
	}

	e := pipeline.New(chain.New(registry(), chain.WithLogger(logger)), opts...)
	e.Load(s)

	if err := e.SetActive(s.ID); err != nil {
		return err
	}

	for i, st := range rec.Filters {
		o, err := st.Decode()
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}

		n := len(s.Filters)

		if err := e.Dispatch(pipeline.ApplyCommand{Name: st.Name, Options: o}); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, st.Name, err)
		}

		if st.Disabled {
			// Accumulating filters merge into their existing record.
			r, _ := s.FindName(st.Name)
			if len(s.Filters) > n {
				r = s.Filters[len(s.Filters)-1]
			}

			if err := e.Dispatch(pipeline.EnableFilterCommand{ID: r.ID, Enabled: false}); err != nil {
				return fmt.Errorf("step %d (%s): %w", i, st.Name, err)
			}
		}
	}

	if err := printChain(w, s); err != nil {
		return err
	}

	printSummary(w, s.Data)

	if reg != nil {
		return printMetrics(w, reg)
	}

	return nil
}

func printChain(w io.Writer, s *chain.Spectrum) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tFILTER\tENABLED\tID")

	for i, r := range s.Filters {
		fmt.Fprintf(tw, "%d\t%s\t%t\t%s\n", i, r.Name, r.Enabled, r.ID)
	}

	return tw.Flush()
}

func printSummary(w io.Writer, d spectrum.Snapshot) {
	domain := "frequency"
	if d.Info.IsFid {
		domain = "time"
	}

	fmt.Fprintf(w, "\n%s %s spectrum, %s domain\n", d.Info.NucleusKey(), d.Dimension(), domain)

	switch {
	case d.D1 != nil:
		lo, hi := spectrum.MinMax(d.D1.X)
		fmt.Fprintf(w, "points: %d\nx: [%.4g, %.4g]\n", len(d.D1.X), lo, hi)

		if i := spectrum.MaxIndex(d.D1.Re); i >= 0 {
			fmt.Fprintf(w, "max: %.6g at x=%.6g\n", d.D1.Re[i], d.D1.X[i])
		}
	case d.D2 != nil:
		m := d.D2.Re
		fmt.Fprintf(w, "shape: %dx%d\nx: [%.4g, %.4g]\ny: [%.4g, %.4g]\n",
			m.Rows(), m.Cols(), m.MinX, m.MaxX, m.MinY, m.MaxY)
	}
}

func printMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })

	fmt.Fprintln(w)

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			label := ""
			for _, lp := range m.GetLabel() {
				label = fmt.Sprintf("{%s=%q}", lp.GetName(), lp.GetValue())
			}

			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(w, "%s%s %g\n", mf.GetName(), label, m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				fmt.Fprintf(w, "%s_count%s %d\n", mf.GetName(), label, m.GetHistogram().GetSampleCount())
			}
		}
	}

	return nil
}
