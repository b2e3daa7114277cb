package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cdrlink/internal/application/commands"
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Annotate or delete links between phones",
}

var noteReplace bool

var linkNoteCmd = &cobra.Command{
	Use:   "note <phone-a> <phone-b> [text...]",
	Short: "Attach a note to a pair of phones",
	Long: `Attach a free-text note to a pair of phones. The pair does not need
any calls; a note alone creates a link.

Examples:
  cdrlink-cli link note 5550100 5550101 "met at the airport"
  cdrlink-cli link note 5550100 5550101 --replace "same household"
  cdrlink-cli link note 5550100 5550101 --replace   # clears all notes`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(c *cobra.Command, args []string) error {
		text := strings.Join(args[2:], " ")
		if text == "" && !noteReplace {
			return fmt.Errorf("note text is required unless --replace is given")
		}
		res, err := commands.NewNoteCommand(ws, args[0], args[1], text, noteReplace).Execute(c.Context())
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		return persist(c.Context())
	},
}

var linkDeleteCmd = &cobra.Command{
	Use:   "delete <phone-a> <phone-b>",
	Short: "Delete every call and note between two phones",
	Args:  cobra.ExactArgs(2),
	RunE: func(c *cobra.Command, args []string) error {
		res, err := commands.NewDeleteEdgeCommand(ws, args[0], args[1]).Execute(c.Context())
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		return persist(c.Context())
	},
}

func init() {
	linkNoteCmd.Flags().BoolVar(&noteReplace, "replace", false, "replace existing notes instead of appending")

	rootCmd.AddCommand(linkCmd)
	linkCmd.AddCommand(linkNoteCmd)
	linkCmd.AddCommand(linkDeleteCmd)
}
