package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"cdrlink/internal/application/commands"
)

var personCmd = &cobra.Command{
	Use:   "person",
	Short: "Manage persons and the phones they own",
	Long: `Manage persons. A person may own several phones; phones with an owner
are drawn as person-linked, the rest as unassigned.

Persons can be referred to by ID or by name.

Examples:
  cdrlink-cli person add "Alice Smith"
  cdrlink-cli person assign "Alice Smith" 5550100
  cdrlink-cli person unassign "Alice Smith" 5550100`,
}

// personResult prints a person command's message and saves the workspace
func personResult(c *cobra.Command, res *commands.PersonResult, err error) error {
	if err != nil {
		return err
	}
	fmt.Println(res.Message)
	return persist(c.Context())
}

var personAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a person",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		res, err := commands.NewAddPersonCommand(ws, args[0]).Execute(c.Context())
		return personResult(c, res, err)
	},
}

var personRenameCmd = &cobra.Command{
	Use:   "rename <person> <new-name>",
	Short: "Rename a person",
	Args:  cobra.ExactArgs(2),
	RunE: func(c *cobra.Command, args []string) error {
		res, err := commands.NewRenamePersonCommand(ws, args[0], args[1]).Execute(c.Context())
		return personResult(c, res, err)
	},
}

var personDeleteCmd = &cobra.Command{
	Use:   "delete <person>",
	Short: "Delete a person; their phones become unassigned",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		res, err := commands.NewDeletePersonCommand(ws, args[0]).Execute(c.Context())
		return personResult(c, res, err)
	},
}

var personAssignCmd = &cobra.Command{
	Use:   "assign <person> <phone>",
	Short: "Assign a phone to a person",
	Args:  cobra.ExactArgs(2),
	RunE: func(c *cobra.Command, args []string) error {
		res, err := commands.NewAssignCommand(ws, args[0], args[1], false).Execute(c.Context())
		return personResult(c, res, err)
	},
}

var personUnassignCmd = &cobra.Command{
	Use:   "unassign <person> <phone>",
	Short: "Remove a phone from a person",
	Args:  cobra.ExactArgs(2),
	RunE: func(c *cobra.Command, args []string) error {
		res, err := commands.NewAssignCommand(ws, args[0], args[1], true).Execute(c.Context())
		return personResult(c, res, err)
	},
}

func init() {
	rootCmd.AddCommand(personCmd)
	personCmd.AddCommand(personAddCmd)
	personCmd.AddCommand(personRenameCmd)
	personCmd.AddCommand(personDeleteCmd)
	personCmd.AddCommand(personAssignCmd)
	personCmd.AddCommand(personUnassignCmd)
}
