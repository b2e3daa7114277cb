package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cdrlink/internal/application/commands"
	"cdrlink/internal/domain"
)

var listCmd = &cobra.Command{
	Use:   "list [phones|links|persons|snapshots]",
	Short: "List entities in the workspace",
	Long: `List phones, links, persons, or stored snapshots. Phones and links
are listed unfiltered.

Examples:
  cdrlink-cli list phones
  cdrlink-cli list links
  cdrlink-cli list persons
  cdrlink-cli list snapshots`,
}

var listPhonesCmd = &cobra.Command{
	Use:   "phones",
	Short: "List all phones",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, p := range ws.Phones() {
			owner := "-"
			if info, err := ws.PhoneInfo(p.ID); err == nil && info.Owner != nil {
				owner = info.Owner.Name
			}
			fmt.Printf("%-18s %-20s %s\n", p.ID, owner, p.Alias)
		}
		return nil
	},
}

var listLinksCmd = &cobra.Command{
	Use:   "links",
	Short: "List all links with call counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, pair := range ws.Pairs() {
			agg, err := ws.EdgeStats(pair)
			if err != nil {
				return err
			}
			fmt.Printf("%-32s %4d calls  %d notes  %s\n", pair, agg.CallCount, len(agg.Notes), agg.DateRangeLabel())
		}
		return nil
	},
}

var listPersonsCmd = &cobra.Command{
	Use:   "persons",
	Short: "List persons and their phones",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, p := range ws.Persons() {
			phones := make([]string, len(p.Phones))
			for i, id := range p.Phones {
				phones[i] = id.String()
			}
			fmt.Printf("%s  %s  %s\n", p.ID, p.Name, strings.Join(phones, ","))
		}
		return nil
	},
}

var listSnapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List stored snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		infos, err := commands.NewListSnapshotsCommand(store).Execute(cmd.Context())
		if err != nil {
			return err
		}
		for _, s := range infos {
			fmt.Println(formatSnapshot(s))
		}
		return nil
	},
}

func formatSnapshot(s domain.SnapshotInfo) string {
	return fmt.Sprintf("%-24s %s  %d phones  %d links", s.Name, s.SavedAt.Local().Format("2006-01-02 15:04"), s.Phones, s.Edges)
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.AddCommand(listPhonesCmd)
	listCmd.AddCommand(listLinksCmd)
	listCmd.AddCommand(listPersonsCmd)
	listCmd.AddCommand(listSnapshotsCmd)
}
