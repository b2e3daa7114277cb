package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"cdrlink/internal/application/commands"
)

// RegisterWriteTools adds all tools that change the workspace to the MCP server.
func RegisterWriteTools(s *server.MCPServer, d Deps) {
	s.AddTool(importTool(), importHandler(d))
	s.AddTool(addPhoneTool(), addPhoneHandler(d))
	s.AddTool(deletePhoneTool(), deletePhoneHandler(d))
	s.AddTool(deleteEdgeTool(), deleteEdgeHandler(d))
	s.AddTool(noteTool(), noteHandler(d))
	s.AddTool(addPersonTool(), addPersonHandler(d))
	s.AddTool(assignTool(), assignHandler(d))
	s.AddTool(filterTool(), filterHandler(d))
	s.AddTool(moveTool(), moveHandler(d))
	s.AddTool(resetLayoutTool(), resetLayoutHandler(d))
	s.AddTool(saveTool(), saveHandler(d))
	s.AddTool(loadTool(), loadHandler(d))
	s.AddTool(exportTool(), exportHandler(d))
}

// run executes a command and reports its message or error as the tool result
func run[R any](ctx context.Context, exec func(context.Context) (*R, error), msg func(*R) string) (*mcp.CallToolResult, error) {
	result, err := exec(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(msg(result)), nil
}

// --- import ---

func importTool() mcp.Tool {
	return mcp.NewTool("import",
		mcp.WithDescription("Import a CSV call table. The column layout (new export, caller/receiver, or anything with recognisable caller and receiver columns) is detected automatically."),
		mcp.WithString("path", mcp.Description("Path to the CSV file"), mcp.Required()),
	)
}

func importHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewImportCommand(d.Workspace, d.Rows, req.GetString("path", ""))
		return run(ctx, cmd.Execute, func(r *commands.ImportResult) string { return r.Message })
	}
}

// --- add_phone ---

func addPhoneTool() mcp.Tool {
	return mcp.NewTool("add_phone",
		mcp.WithDescription("Add a phone with no calls yet."),
		mcp.WithString("phone", mcp.Description("Phone number"), mcp.Required()),
		mcp.WithString("alias", mcp.Description("Display alias")),
	)
}

func addPhoneHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewAddPhoneCommand(d.Workspace, req.GetString("phone", ""), req.GetString("alias", ""))
		return run(ctx, cmd.Execute, func(r *commands.AddPhoneResult) string { return r.Message })
	}
}

// --- delete_phone ---

func deletePhoneTool() mcp.Tool {
	return mcp.NewTool("delete_phone",
		mcp.WithDescription("Delete a phone together with every link touching it."),
		mcp.WithString("phone", mcp.Description("Phone number"), mcp.Required()),
	)
}

func deletePhoneHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewDeletePhoneCommand(d.Workspace, req.GetString("phone", ""))
		return run(ctx, cmd.Execute, func(r *commands.DeletePhoneResult) string { return r.Message })
	}
}

// --- delete_edge ---

func deleteEdgeTool() mcp.Tool {
	return mcp.NewTool("delete_edge",
		mcp.WithDescription("Delete every call and note between two phones."),
		mcp.WithString("phone_a", mcp.Description("First phone number"), mcp.Required()),
		mcp.WithString("phone_b", mcp.Description("Second phone number"), mcp.Required()),
	)
}

func deleteEdgeHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewDeleteEdgeCommand(d.Workspace, req.GetString("phone_a", ""), req.GetString("phone_b", ""))
		return run(ctx, cmd.Execute, func(r *commands.DeleteEdgeResult) string { return r.Message })
	}
}

// --- note ---

func noteTool() mcp.Tool {
	return mcp.NewTool("note",
		mcp.WithDescription("Attach a note to the link between two phones, creating the link if needed. Empty text clears the notes."),
		mcp.WithString("phone_a", mcp.Description("First phone number"), mcp.Required()),
		mcp.WithString("phone_b", mcp.Description("Second phone number"), mcp.Required()),
		mcp.WithString("text", mcp.Description("Note text")),
		mcp.WithBoolean("replace", mcp.Description("Replace existing notes instead of appending")),
	)
}

func noteHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewNoteCommand(d.Workspace,
			req.GetString("phone_a", ""), req.GetString("phone_b", ""),
			req.GetString("text", ""), req.GetBool("replace", false))
		return run(ctx, cmd.Execute, func(r *commands.NoteResult) string { return r.Message })
	}
}

// --- add_person ---

func addPersonTool() mcp.Tool {
	return mcp.NewTool("add_person",
		mcp.WithDescription("Register a person that phones can be assigned to."),
		mcp.WithString("name", mcp.Description("Person name"), mcp.Required()),
	)
}

func addPersonHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewAddPersonCommand(d.Workspace, req.GetString("name", ""))
		return run(ctx, cmd.Execute, func(r *commands.PersonResult) string { return r.Message })
	}
}

// --- assign ---

func assignTool() mcp.Tool {
	return mcp.NewTool("assign",
		mcp.WithDescription("Assign a phone to a person, or remove the assignment."),
		mcp.WithString("person", mcp.Description("Person ID or name"), mcp.Required()),
		mcp.WithString("phone", mcp.Description("Phone number"), mcp.Required()),
		mcp.WithBoolean("unassign", mcp.Description("Remove the assignment instead")),
	)
}

func assignHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewAssignCommand(d.Workspace,
			req.GetString("person", ""), req.GetString("phone", ""), req.GetBool("unassign", false))
		return run(ctx, cmd.Execute, func(r *commands.PersonResult) string { return r.Message })
	}
}

// --- filter ---

func filterTool() mcp.Tool {
	return mcp.NewTool("filter",
		mcp.WithDescription("Replace the view filter. Omitted fields keep their current value; empty strings open a bound."),
		mcp.WithString("date_from", mcp.Description("First day, YYYY-MM-DD")),
		mcp.WithString("date_to", mcp.Description("Last day, YYYY-MM-DD")),
		mcp.WithString("time_from", mcp.Description("Earliest time of day, HH:MM")),
		mcp.WithString("time_to", mcp.Description("Latest time of day, HH:MM; earlier than time_from wraps past midnight")),
		mcp.WithNumber("min_calls", mcp.Description("Hide links with fewer calls")),
		mcp.WithNumber("max_nodes", mcp.Description("Show at most this many phones, busiest first")),
		mcp.WithBoolean("show_phones", mcp.Description("Show phones at all")),
		mcp.WithBoolean("show_persons", mcp.Description("Show phones assigned to a person")),
		mcp.WithBoolean("show_unassigned", mcp.Description("Show phones with no person")),
	)
}

func filterHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		spec := d.Workspace.Spec()
		args := req.GetArguments()
		window := [4]string{}
		for i, key := range []string{"date_from", "date_to", "time_from", "time_to"} {
			window[i] = req.GetString(key, "")
		}
		keep := func(key string) bool {
			_, given := args[key]
			return !given
		}
		if keep("date_from") && spec.DateFrom != nil {
			window[0] = spec.DateFrom.Format("2006-01-02")
		}
		if keep("date_to") && spec.DateTo != nil {
			window[1] = spec.DateTo.Format("2006-01-02")
		}
		if keep("time_from") && spec.TimeFrom != nil {
			window[2] = spec.TimeFrom.String()
		}
		if keep("time_to") && spec.TimeTo != nil {
			window[3] = spec.TimeTo.String()
		}
		if err := spec.SetWindow(window[0], window[1], window[2], window[3]); err != nil {
			return toolError(err)
		}
		spec.MinCalls = req.GetInt("min_calls", spec.MinCalls)
		spec.MaxNodes = req.GetInt("max_nodes", spec.MaxNodes)
		spec.ShowPhones = req.GetBool("show_phones", spec.ShowPhones)
		spec.ShowPersons = req.GetBool("show_persons", spec.ShowPersons)
		spec.ShowUnassignedPhones = req.GetBool("show_unassigned", spec.ShowUnassignedPhones)

		cmd := commands.NewFilterCommand(d.Workspace, spec)
		return run(ctx, cmd.Execute, func(r *commands.FilterResult) string { return r.Message })
	}
}

// --- move ---

func moveTool() mcp.Tool {
	return mcp.NewTool("move",
		mcp.WithDescription("Pin a visible phone at a chart position. Pinned phones keep their place across re-layouts."),
		mcp.WithString("phone", mcp.Description("Phone number"), mcp.Required()),
		mcp.WithNumber("x", mcp.Description("Horizontal chart coordinate"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("Vertical chart coordinate"), mcp.Required()),
	)
}

func moveHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewMovePhoneCommand(d.Workspace, req.GetString("phone", ""), req.GetFloat("x", 0), req.GetFloat("y", 0))
		return run(ctx, cmd.Execute, func(r *commands.MovePhoneResult) string { return r.Message })
	}
}

// --- reset_layout ---

func resetLayoutTool() mcp.Tool {
	return mcp.NewTool("reset_layout",
		mcp.WithDescription("Re-run the automatic layout over every visible phone, discarding pinned positions."),
	)
}

func resetLayoutHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewResetLayoutCommand(d.Workspace)
		return run(ctx, cmd.Execute, func(r *commands.ResetLayoutResult) string { return r.Message })
	}
}

// --- save / load ---

func saveTool() mcp.Tool {
	return mcp.NewTool("save",
		mcp.WithDescription("Save the workspace under a name, replacing an earlier save of that name."),
		mcp.WithString("name", mcp.Description("Snapshot name"), mcp.Required()),
	)
}

func saveHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewSaveCommand(d.Workspace, d.Store, req.GetString("name", ""))
		return run(ctx, cmd.Execute, func(r *commands.SnapshotResult) string { return r.Message })
	}
}

func loadTool() mcp.Tool {
	return mcp.NewTool("load",
		mcp.WithDescription("Replace the workspace with a saved snapshot."),
		mcp.WithString("name", mcp.Description("Snapshot name"), mcp.Required()),
	)
}

func loadHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewLoadCommand(d.Workspace, d.Store, req.GetString("name", ""))
		return run(ctx, cmd.Execute, func(r *commands.SnapshotResult) string { return r.Message })
	}
}

// --- export ---

func exportTool() mcp.Tool {
	return mcp.NewTool("export",
		mcp.WithDescription("Export the current view as a document with a title and summary."),
		mcp.WithString("path", mcp.Description("Output file"), mcp.Required()),
		mcp.WithString("title", mcp.Description("Document title")),
		mcp.WithString("mode",
			mcp.Description("Page geometry"),
			mcp.Enum("letter-landscape", "a4-landscape", "native-fit"),
		),
	)
}

func exportHandler(d Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewExportCommand(d.Workspace, d.Exporter,
			req.GetString("path", ""), req.GetString("title", ""), req.GetString("mode", ""))
		return run(ctx, cmd.Execute, func(r *commands.ExportResult) string { return r.Message })
	}
}
