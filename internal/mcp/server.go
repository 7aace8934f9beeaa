package mcp

import (
	"context"
	"io"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/hyprconf/internal/settings"
)

const (
	ServerName    = "hyprconf"
	ServerVersion = "0.1.0"
)

// Server exposes the settings service as MCP tools.
type Server struct {
	mcpServer *mcpsdk.Server
	svc       *settings.Service
	logger    *slog.Logger
}

// NewServer creates a new MCP server backed by svc.
func NewServer(svc *settings.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Server{
		svc:    svc,
		logger: logger.With("component", "mcp"),
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List connected monitors with their current mode, layout position and primary flag. The monitor at 0x0 is the primary anchor.",
	}, s.handleListMonitors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_monitor",
		Description: "Change a monitor's mode and/or position. The change is written to the Hyprland override file and, unless apply is false, applied to the running compositor.",
	}, s.handleSetMonitor)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_keyboard_layout",
		Description: "Set the ordered list of keyboard layouts. Writes input:kb_layout, or per-device blocks when per-device layouts are enabled or a device is given.",
	}, s.handleSetKeyboardLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_mouse",
		Description: "Set pointer sensitivity (-1.0 to 1.0) and whether acceleration is disabled. Omitted fields keep their current value.",
	}, s.handleSetMouse)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_overrides",
		Description: "List the lines of the Hyprland override file hyprconf manages, with the setting family and key each line is merged by.",
	}, s.handleListOverrides)
}
