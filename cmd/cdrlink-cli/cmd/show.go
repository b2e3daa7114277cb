package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cdrlink/internal/application"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print workspace totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t := ws.Totals()
		fmt.Printf("phones:  %d\nlinks:   %d\nrecords: %d\npersons: %d\n", t.NodeCount, t.EdgeCount, t.TotalRecords, t.PersonCount)
		if t.DateRange != "" {
			fmt.Printf("range:   %s\n", t.DateRange)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show details of a phone or link",
}

var showPhoneCmd = &cobra.Command{
	Use:   "phone <number>",
	Short: "Show a phone's details and call totals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := application.ValidatePhone("phone", args[0])
		if err != nil {
			return err
		}
		info, err := ws.PhoneInfo(id)
		if err != nil {
			return err
		}
		fmt.Printf("phone:    %s\n", info.Phone.ID)
		if info.Phone.Alias != "" {
			fmt.Printf("alias:    %s\n", info.Phone.Alias)
		}
		if info.Owner != nil {
			fmt.Printf("owner:    %s (%s)\n", info.Owner.Name, info.Owner.ID)
		}
		fmt.Printf("calls:    %d\ncontacts: %d\ntalk:     %s\n", info.Stats.TotalCalls, info.Stats.UniqueContacts, info.Stats.FormatTotalDuration())
		fmt.Printf("position: (%.0f, %.0f) %s\n", info.Placement.Position.X, info.Placement.Position.Y, info.Placement.State)
		return nil
	},
}

var showLinkCmd = &cobra.Command{
	Use:   "link <phone-a> <phone-b>",
	Short: "Show the calls and notes between two phones",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pair, err := application.ValidatePair(args[0], args[1])
		if err != nil {
			return err
		}
		agg, err := ws.EdgeStats(pair)
		if err != nil {
			return err
		}
		fmt.Printf("link:  %s\ncalls: %d\n", pair, agg.CallCount)
		if agg.CallCount > 0 {
			fmt.Printf("range: %s\n", agg.DateRangeLabel())
		}
		if agg.DurationSamples > 0 {
			fmt.Printf("avg:   %s\n", agg.AverageDuration().Round(time.Second))
		}
		for _, n := range agg.Notes {
			fmt.Printf("note:  %s\n", n)
		}
		return nil
	},
}

// oneLine joins a multi-line label for tabular output
func oneLine(s string) string {
	return strings.ReplaceAll(s, "\n", " | ")
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(showCmd)
	showCmd.AddCommand(showPhoneCmd)
	showCmd.AddCommand(showLinkCmd)
}
