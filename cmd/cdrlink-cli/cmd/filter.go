package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cdrlink/internal/application/commands"
	"cdrlink/internal/filter"
)

// filterFlags are shared by every command that renders a view
type filterFlags struct {
	minCalls     int
	maxNodes     int
	dateFrom     string
	dateTo       string
	timeFrom     string
	timeTo       string
	noPhones     bool
	noPersons    bool
	noUnassigned bool
}

func (f *filterFlags) register(c *cobra.Command) {
	fs := c.Flags()
	fs.IntVar(&f.minCalls, "min-calls", 0, "hide links with fewer calls (default from config)")
	fs.IntVar(&f.maxNodes, "max-nodes", 0, "keep only the busiest phones (default from config)")
	fs.StringVar(&f.dateFrom, "from", "", "first day to include (YYYY-MM-DD)")
	fs.StringVar(&f.dateTo, "to", "", "last day to include (YYYY-MM-DD)")
	fs.StringVar(&f.timeFrom, "time-from", "", "start of the time-of-day window (HH:MM)")
	fs.StringVar(&f.timeTo, "time-to", "", "inclusive end of the time-of-day window (HH:MM covers the whole minute), may wrap past midnight")
	fs.BoolVar(&f.noPhones, "no-phones", false, "hide every phone")
	fs.BoolVar(&f.noPersons, "no-persons", false, "hide phones assigned to a person")
	fs.BoolVar(&f.noUnassigned, "no-unassigned", false, "hide phones without an owner")
}

// spec layers the flags over the configured default filter
func (f *filterFlags) spec() (filter.Spec, error) {
	spec := cfg.DefaultFilter()
	if f.minCalls > 0 {
		spec.MinCalls = f.minCalls
	}
	if f.maxNodes > 0 {
		spec.MaxNodes = f.maxNodes
	}
	if err := spec.SetWindow(f.dateFrom, f.dateTo, f.timeFrom, f.timeTo); err != nil {
		return spec, err
	}
	spec.ShowPhones = !f.noPhones
	spec.ShowPersons = !f.noPersons
	spec.ShowUnassignedPhones = !f.noUnassigned
	return spec, nil
}

// apply runs the filter and reports what is visible
func (f *filterFlags) apply(c *cobra.Command) (*commands.FilterResult, error) {
	spec, err := f.spec()
	if err != nil {
		return nil, err
	}
	return commands.NewFilterCommand(ws, spec).Execute(c.Context())
}

var viewFlags filterFlags

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Show the filtered link chart as text",
	Long: `Apply a filter and print the visible phones and links.

Examples:
  cdrlink-cli view
  cdrlink-cli view --min-calls 3 --max-nodes 20
  cdrlink-cli view --from 2024-03-01 --to 2024-03-31 --time-from 22:00 --time-to 06:00`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, args []string) error {
		res, err := viewFlags.apply(c)
		if err != nil {
			return err
		}
		fmt.Println(res.Message)

		view := ws.View()
		for _, n := range view.Nodes {
			owner := n.Owner
			if owner == "" {
				owner = "-"
			}
			fmt.Printf("phone  %-18s %-20s (%.0f, %.0f)\n", n.ID, owner, n.Logical.X, n.Logical.Y)
		}
		for _, e := range view.Edges {
			fmt.Printf("link   %-32s %s\n", e.Pair, oneLine(e.Label))
		}
		return nil
	},
}

func init() {
	viewFlags.register(viewCmd)
	rootCmd.AddCommand(viewCmd)
}
