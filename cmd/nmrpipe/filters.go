package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-nmr/nmr/filter"
)

func filtersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List the available filters",
		Long: `Print every filter of the catalog with the data shapes it accepts, the axes
it invalidates when committed and how it behaves in the chain.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := registry()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDIMS\tUPDATES\tROLLBACK\tACCUMULATES")

			for _, name := range reg.Names() {
				def, err := reg.Lookup(name)
				if err != nil {
					return err
				}

				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n",
					name, dims(def), axes(def.Rules), rollbackMode(def), def.Accumulates())
			}

			return w.Flush()
		},
	}
}

func dims(def filter.Definition) string {
	parts := make([]string, len(def.Dimensions))
	for i, d := range def.Dimensions {
		parts[i] = d.String()
	}

	return strings.Join(parts, ",")
}

func axes(r filter.DomainRules) string {
	switch {
	case r.UpdateX && r.UpdateY:
		return "x,y"
	case r.UpdateX:
		return "x"
	case r.UpdateY:
		return "y"
	default:
		return "-"
	}
}

func rollbackMode(def filter.Definition) string {
	if def.RollbackApplies {
		return "applied"
	}

	return "before"
}
