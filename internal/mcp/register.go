package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerTools binds every handler operation to an SDK tool. Input schemas
// are inferred from the params structs.
func registerTools(server *sdkmcp.Server, h *Handler) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a new 3D-printing project record",
	}, wrap(h.CreateProject))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get the full record for a project, including comments, change log, and versions",
	}, wrap(h.GetProject))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List project index rows, optionally filtered by status; does not load full records",
	}, wrap(h.ListProjects))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_status",
		Description: "Set a project's status; every call is recorded in the change log",
	}, wrap(h.UpdateStatus))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_comment",
		Description: "Append a timestamped comment to a project",
	}, wrap(h.AddComment))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "edit_comment",
		Description: "Replace the text of a comment by index; the prior text is kept in the change log",
	}, wrap(h.EditComment))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_comment",
		Description: "Remove a comment by index; the removed text is kept in the change log",
	}, wrap(h.RemoveComment))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_project",
		Description: "Update project fields (name, responsible, quantity, customer, shipping, role); each change is audit-logged",
	}, wrap(h.UpdateProject))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "archive_file",
		Description: "Archive a print-file revision (base64 content); returns the content hash and version number",
	}, wrap(h.ArchiveFile))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_version",
		Description: "Fetch archived file content by its content hash",
	}, wrap(h.GetVersion))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_change_log",
		Description: "Get the append-only audit trail for a project",
	}, wrap(h.GetChangeLog))

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "rebuild_index",
		Description: "Rebuild the project index from the persisted record blobs",
	}, wrap(h.RebuildIndex))
}

// wrap adapts a handler method to the SDK tool signature and translates
// domain errors into coded API errors.
func wrap[In, Out any](fn func(context.Context, In) (Out, error)) sdkmcp.ToolHandlerFor[In, Out] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, in In) (*sdkmcp.CallToolResult, Out, error) {
		out, err := fn(ctx, in)
		if err != nil {
			var zero Out
			if apiErr := MapError(err); apiErr != nil {
				return nil, zero, apiErr
			}
			return nil, zero, err
		}
		return nil, out, nil
	}
}
