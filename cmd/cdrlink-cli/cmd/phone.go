package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cdrlink/internal/application/commands"
)

var phoneCmd = &cobra.Command{
	Use:   "phone",
	Short: "Add, edit or delete phones",
}

var phoneAlias string

var phoneAddCmd = &cobra.Command{
	Use:   "add <number>",
	Short: "Add a phone by hand",
	Long: `Add a phone that has no records yet. It is placed on the next free
grid slot until the layout is recomputed.

Examples:
  cdrlink-cli phone add "+1 (555) 010-2030"
  cdrlink-cli phone add 5550102030 --alias "burner"`,
	Args: cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		res, err := commands.NewAddPhoneCommand(ws, args[0], phoneAlias).Execute(c.Context())
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		return persist(c.Context())
	},
}

var phoneAliasCmd = &cobra.Command{
	Use:   "alias <number> [alias]",
	Short: "Set or clear a phone's alias",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(c *cobra.Command, args []string) error {
		alias := ""
		if len(args) == 2 {
			alias = args[1]
		}
		res, err := commands.NewEditPhoneCommand(ws, args[0], &alias, false).Execute(c.Context())
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		return persist(c.Context())
	},
}

var phoneColorCmd = &cobra.Command{
	Use:   "color <number>",
	Short: "Cycle a phone's display color",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		res, err := commands.NewEditPhoneCommand(ws, args[0], nil, true).Execute(c.Context())
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		return persist(c.Context())
	},
}

var phoneDeleteCmd = &cobra.Command{
	Use:   "delete <number>",
	Short: "Delete a phone with all its links",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		res, err := commands.NewDeletePhoneCommand(ws, args[0]).Execute(c.Context())
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		return persist(c.Context())
	},
}

func init() {
	phoneAddCmd.Flags().StringVar(&phoneAlias, "alias", "", "display name")

	rootCmd.AddCommand(phoneCmd)
	phoneCmd.AddCommand(phoneAddCmd)
	phoneCmd.AddCommand(phoneAliasCmd)
	phoneCmd.AddCommand(phoneColorCmd)
	phoneCmd.AddCommand(phoneDeleteCmd)
}
