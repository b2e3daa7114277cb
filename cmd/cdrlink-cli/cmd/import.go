package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cdrlink/internal/adapters/csvfile"
	"cdrlink/internal/application/commands"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>...",
	Short: "Import call detail records",
	Long: `Import one or more CSV call tables into the workspace.

The column layout is detected from the header row. Three layouts are
understood: the carrier export (Target Number, Call Direction, From or To
Number, Date, Start, End), the caller/receiver/timestamp/duration table,
and any table whose columns can be matched by name to a caller and a
receiver.

Examples:
  cdrlink-cli import calls.csv
  cdrlink-cli import jan.csv feb.csv --workspace case-17`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		for _, path := range args {
			res, err := commands.NewImportCommand(ws, csvfile.NewRows(), path).Execute(c.Context())
			if err != nil {
				return err
			}
			fmt.Println(res.Message)
		}
		return persist(c.Context())
	},
}

var (
	sampleSeed   uint64
	samplePhones int
	sampleRows   int
)

var sampleCmd = &cobra.Command{
	Use:   "sample <file.csv>",
	Short: "Write a synthetic call table",
	Long: `Write a reproducible synthetic call table in the original layout,
useful for trying out filters and layouts.

Examples:
  cdrlink-cli sample demo.csv
  cdrlink-cli sample demo.csv --phones 40 --rows 2000 --seed 7`,
	Args: cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		res, err := commands.NewGenerateSampleCommand(csvfile.NewRows(), args[0], sampleSeed, samplePhones, sampleRows).Execute(c.Context())
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		return nil
	},
}

func init() {
	sampleCmd.Flags().Uint64Var(&sampleSeed, "seed", 1, "random seed")
	sampleCmd.Flags().IntVar(&samplePhones, "phones", 12, "number of distinct phones")
	sampleCmd.Flags().IntVar(&sampleRows, "rows", 300, "number of call rows")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(sampleCmd)
}
