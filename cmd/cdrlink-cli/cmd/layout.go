package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cdrlink/internal/application/commands"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Pin phones or recompute the layout",
}

var layoutMoveCmd = &cobra.Command{
	Use:   "move <phone> <x> <y>",
	Short: "Pin a visible phone at a logical position",
	Long: `Pin a visible phone at a logical position. Pinned phones keep their
place across filter changes and imports until the layout is reset.

Examples:
  cdrlink-cli layout move 5550100 0 0
  cdrlink-cli layout move 5550101 -- -120 80`,
	Args: cobra.ExactArgs(3),
	RunE: func(c *cobra.Command, args []string) error {
		x, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid x %q: %w", args[1], err)
		}
		y, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid y %q: %w", args[2], err)
		}
		res, err := commands.NewMovePhoneCommand(ws, args[0], x, y).Execute(c.Context())
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		return persist(c.Context())
	},
}

var layoutResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Recompute positions of every visible phone, releasing pins",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, args []string) error {
		res, err := commands.NewResetLayoutCommand(ws).Execute(c.Context())
		if err != nil {
			return err
		}
		fmt.Println(res.Message)
		return persist(c.Context())
	},
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	layoutCmd.AddCommand(layoutMoveCmd)
	layoutCmd.AddCommand(layoutResetCmd)
}
