package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListNotesTool(srv, svc)
	registerGetNoteTool(srv, svc)
	registerCreateNoteTool(srv, svc)
	registerUpdateNoteTool(srv, svc)
	registerDeleteNoteTool(srv, svc)
	registerSuggestBedtimesTool(srv, svc)
	registerSleepDurationTool(srv, svc)
}

func registerListNotesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_notes",
		mcp.WithDescription("List sleep notes, newest first."),
		mcp.WithString("on",
			mcp.Description("Only notes created on this local day (YYYY-MM-DD)."),
		),
		mcp.WithString("since",
			mcp.Description("Only notes inside a window such as \"7 nights\" or \"2w\"."),
		),
		mcp.WithString("query",
			mcp.Description("Fuzzy search across titles and details."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of notes to return (default 50)."),
			mcp.Min(1),
			mcp.Max(500),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		opts := ListOptions{
			On:    strings.TrimSpace(request.GetString("on", "")),
			Since: strings.TrimSpace(request.GetString("since", "")),
			Query: strings.TrimSpace(request.GetString("query", "")),
			Limit: request.GetInt("limit", 50),
		}

		notes, err := svc.ListNotes(ctx, opts)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"notes": notes,
			"count": len(notes),
		})
	})
}

func registerGetNoteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_note",
		mcp.WithDescription("Fetch a single note by id or unique id prefix."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Note identifier to fetch."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.NoteByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerCreateNoteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_note",
		mcp.WithDescription("Record a new sleep note."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Short title for the night."),
		),
		mcp.WithString("details",
			mcp.Required(),
			mcp.Description("Free text describing the night."),
		),
		mcp.WithString("start_time",
			mcp.Description("Optional bedtime as HH:MM."),
		),
		mcp.WithString("end_time",
			mcp.Description("Optional wake-up time as HH:MM."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title     string `json:"title"`
			Details   string `json:"details"`
			StartTime string `json:"start_time"`
			EndTime   string `json:"end_time"`
		}

		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.CreateNote(ctx, CreateOptions(args))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateNoteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_note",
		mcp.WithDescription("Edit a note. Omitted fields keep their value; an empty time clears it."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Note identifier to modify."),
		),
		mcp.WithString("title",
			mcp.Description("New title."),
		),
		mcp.WithString("details",
			mcp.Description("New details."),
		),
		mcp.WithString("start_time",
			mcp.Description("New bedtime as HH:MM, or empty to clear."),
		),
		mcp.WithString("end_time",
			mcp.Description("New wake-up time as HH:MM, or empty to clear."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			ID        string  `json:"id"`
			Title     *string `json:"title"`
			Details   *string `json:"details"`
			StartTime *string `json:"start_time"`
			EndTime   *string `json:"end_time"`
		}

		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if strings.TrimSpace(args.ID) == "" {
			return mcp.NewToolResultError("id is required"), nil
		}

		dto, err := svc.UpdateNote(ctx, UpdateOptions(args))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteNoteTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_note",
		mcp.WithDescription("Delete a note. Deleting an unknown id is not an error."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Note identifier to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		deleted, err := svc.DeleteNote(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"id":      id,
			"deleted": deleted,
		})
	})
}

func registerSuggestBedtimesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"suggest_bedtimes",
		mcp.WithDescription("Suggest bedtimes that end on a full 90 minute sleep cycle."),
		mcp.WithString("wake",
			mcp.Required(),
			mcp.Description("Wake-up time as HH:MM."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		wake, err := request.RequireString("wake")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		suggestions, err := svc.SuggestBedtimes(wake)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"wake":        wake,
			"suggestions": suggestions,
		})
	})
}

func registerSleepDurationTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"sleep_duration",
		mcp.WithDescription("Compute the time asleep between a bedtime and a wake-up time, crossing midnight when needed."),
		mcp.WithString("start_time",
			mcp.Required(),
			mcp.Description("Bedtime as HH:MM."),
		),
		mcp.WithString("end_time",
			mcp.Required(),
			mcp.Description("Wake-up time as HH:MM."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start, err := request.RequireString("start_time")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		end, err := request.RequireString("end_time")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.SleepDuration(start, end)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
