package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cdrlink/internal/application/commands"
)

var saveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Copy the working snapshot under a new name",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		res, err := commands.NewSaveCommand(ws, store, args[0]).Execute(c.Context())
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		return nil
	},
}

var loadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Replace the working snapshot with a stored one",
	Long: `Replace the working snapshot with a stored one. If the stored
snapshot is corrupt the working snapshot is left untouched.

Examples:
  cdrlink-cli load case-17
  cdrlink-cli load case-17 --workspace scratch`,
	Args: cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		res, err := commands.NewLoadCommand(ws, store, args[0]).Execute(c.Context())
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		return persist(c.Context())
	},
}

var snapshotDeleteCmd = &cobra.Command{
	Use:   "forget <name>",
	Short: "Delete a stored snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		res, err := commands.NewDeleteSnapshotCommand(store, args[0]).Execute(c.Context())
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(snapshotDeleteCmd)
}
