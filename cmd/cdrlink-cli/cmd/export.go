package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cdrlink/internal/adapters/svg"
	"cdrlink/internal/adapters/viewer"
	"cdrlink/internal/application/commands"
)

var (
	exportFlags filterFlags
	exportMode  string
	exportTitle string
	exportOpen  bool
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the filtered chart as a printable document",
	Long: `Render the filtered chart, with a title and the summary block, to an
SVG document. Letter and A4 pages are landscape; native-fit sizes the page
to the chart instead.

Examples:
  cdrlink-cli export chart.svg
  cdrlink-cli export chart --mode a4-landscape --title "Case 17"
  cdrlink-cli export night.svg --time-from 22:00 --time-to 06:00 --mode native-fit
  cdrlink-cli export chart.svg --open`,
	Args: cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		if _, err := exportFlags.apply(c); err != nil {
			return err
		}
		res, err := commands.NewExportCommand(ws, svg.NewExporter(), args[0], exportTitle, exportMode).Execute(c.Context())
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		if exportOpen {
			return viewer.NewOpener().Open(res.Path)
		}
		return nil
	},
}

func init() {
	exportFlags.register(exportCmd)
	exportCmd.Flags().StringVar(&exportMode, "mode", "letter-landscape", "page mode: letter-landscape, a4-landscape or native-fit")
	exportCmd.Flags().StringVar(&exportTitle, "title", "", "document title (defaults to the file name)")
	exportCmd.Flags().BoolVar(&exportOpen, "open", false, "open the document in the default viewer")

	rootCmd.AddCommand(exportCmd)
}
