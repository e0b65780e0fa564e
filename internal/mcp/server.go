package mcp

import (
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Config contains server configuration.
type Config struct {
	Store  ProjectStore
	Logger *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "printdesk",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, NewHandler(cfg.Store, cfg.Logger))

	return server
}

const serverInstructions = `printdesk tracks 3D-printing production jobs.

Each project has a unique id, a status (Received, InProgress, OnHold,
Shipped, Cancelled), an owning person or team, customer contact info,
timestamped comments, an append-only change log, and an archive of print-file
versions addressed by content hash.

Use create_project to register a job, update_status / update_project to
mutate it (every mutation is audit-logged), archive_file to store a new file
revision (identical content is deduplicated), and list_projects to browse
without loading full records. rebuild_index repairs the index from the
persisted records if it is lost.`
