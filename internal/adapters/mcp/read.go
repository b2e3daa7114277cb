package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"cdrlink/internal/application"
	"cdrlink/internal/domain"
	"cdrlink/internal/ports"
)

// Deps are what the tools act on
type Deps struct {
	Workspace *application.Workspace
	Store     ports.SnapshotStore
	Rows      ports.RowReader
	Exporter  ports.Exporter
}

// RegisterReadTools adds all read-only link chart tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, d Deps) {
	s.AddTool(statsTool(), statsHandler(d))
	s.AddTool(viewTool(), viewHandler(d))
	s.AddTool(phoneTool(), phoneHandler(d))
	s.AddTool(edgeTool(), edgeHandler(d))
	s.AddTool(personsTool(), personsHandler(d))
	s.AddTool(snapshotsTool(), snapshotsHandler(d))
}

// --- stats ---

func statsTool() mcp.Tool {
	return mcp.NewTool("stats",
		mcp.WithDescription("Summary of the whole workspace and of the current filtered view."),
	)
}

func statsHandler(d Deps) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var sb strings.Builder
		fmt.Fprintf(&sb, "workspace: %s\n", formatSummary(d.Workspace.Totals()))
		fmt.Fprintf(&sb, "view:      %s\n", formatSummary(d.Workspace.Current().Summary()))
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- view ---

func viewTool() mcp.Tool {
	return mcp.NewTool("view",
		mcp.WithDescription("List the phones and links visible under the current filter, with edge labels."),
	)
}

func viewHandler(d Deps) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		vm := d.Workspace.View()
		if len(vm.Nodes) == 0 {
			return mcp.NewToolResultText("No phones match the current filter."), nil
		}
		var sb strings.Builder
		sb.WriteString("phones:\n")
		for _, n := range vm.Nodes {
			fmt.Fprintf(&sb, "  %s  %s", n.ID, n.Category)
			if n.Owner != "" {
				fmt.Fprintf(&sb, "  owner=%s", n.Owner)
			}
			fmt.Fprintf(&sb, "  at=(%.0f, %.0f)\n", n.Logical.X, n.Logical.Y)
		}
		sb.WriteString("links:\n")
		for _, e := range vm.Edges {
			fmt.Fprintf(&sb, "  %s  %s\n", e.Pair, strings.ReplaceAll(e.Label, "\n", " | "))
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- phone ---

func phoneTool() mcp.Tool {
	return mcp.NewTool("phone",
		mcp.WithDescription("Details of one phone: alias, owner, call totals and position."),
		mcp.WithString("phone",
			mcp.Description("Phone number, any punctuation"),
			mcp.Required(),
		),
	)
}

func phoneHandler(d Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := application.ValidatePhone("phone", req.GetString("phone", ""))
		if err != nil {
			return toolError(err)
		}
		info, err := d.Workspace.PhoneInfo(id)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "phone:    %s\n", info.Phone.ID)
		if info.Phone.Alias != "" {
			fmt.Fprintf(&sb, "alias:    %s\n", info.Phone.Alias)
		}
		if info.Owner != nil {
			fmt.Fprintf(&sb, "owner:    %s (%s)\n", info.Owner.Name, info.Owner.ID)
		}
		fmt.Fprintf(&sb, "calls:    %d\n", info.Stats.TotalCalls)
		fmt.Fprintf(&sb, "duration: %s\n", info.Stats.FormatTotalDuration())
		fmt.Fprintf(&sb, "contacts: %d\n", info.Stats.UniqueContacts)
		fmt.Fprintf(&sb, "visible:  %t\n", info.Visible)
		fmt.Fprintf(&sb, "position: (%.0f, %.0f) %s\n", info.Placement.Position.X, info.Placement.Position.Y, info.Placement.State)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- edge ---

func edgeTool() mcp.Tool {
	return mcp.NewTool("edge",
		mcp.WithDescription("Statistics and notes for the link between two phones, over all records."),
		mcp.WithString("phone_a", mcp.Description("First phone number"), mcp.Required()),
		mcp.WithString("phone_b", mcp.Description("Second phone number"), mcp.Required()),
	)
}

func edgeHandler(d Deps) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		pair, err := application.ValidatePair(req.GetString("phone_a", ""), req.GetString("phone_b", ""))
		if err != nil {
			return toolError(err)
		}
		agg, err := d.Workspace.EdgeStats(pair)
		if err != nil {
			return toolError(err)
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "link:     %s\n", agg.Pair)
		fmt.Fprintf(&sb, "calls:    %d\n", agg.CallCount)
		if agg.CallCount > 0 {
			fmt.Fprintf(&sb, "range:    %s\n", agg.DateRangeLabel())
		}
		if avg := agg.AverageDurationLabel(); avg != "" {
			fmt.Fprintf(&sb, "average:  %s\n", avg)
		}
		for _, n := range agg.Notes {
			fmt.Fprintf(&sb, "note:     %s\n", n)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- persons ---

func personsTool() mcp.Tool {
	return mcp.NewTool("persons",
		mcp.WithDescription("List persons and the phones assigned to them."),
	)
}

func personsHandler(d Deps) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return formatEntities(d.Workspace.Persons(), formatPerson)
	}
}

// --- snapshots ---

func snapshotsTool() mcp.Tool {
	return mcp.NewTool("snapshots",
		mcp.WithDescription("List saved workspace snapshots."),
	)
}

func snapshotsHandler(d Deps) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		infos, err := d.Store.List()
		if err != nil {
			return toolError(err)
		}
		return formatEntities(infos, formatSnapshot)
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatSummary(s domain.Summary) string {
	out := fmt.Sprintf("%d phones, %d links, %d calls, %d persons", s.NodeCount, s.EdgeCount, s.TotalRecords, s.PersonCount)
	if s.DateRange != "" {
		out += ", " + s.DateRange
	}
	return out
}

func formatPerson(p domain.Person) string {
	phones := make([]string, len(p.Phones))
	for i, id := range p.Phones {
		phones[i] = string(id)
	}
	return fmt.Sprintf("%s  %s  %s", p.ID, p.Name, strings.Join(phones, ", "))
}

func formatSnapshot(i domain.SnapshotInfo) string {
	return fmt.Sprintf("%s  %s  %d phones  %d links", i.Name, i.SavedAt.Format("2006-01-02 15:04"), i.Phones, i.Edges)
}
