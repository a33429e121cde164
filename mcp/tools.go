package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all rtdbuild MCP tools with the server
func RegisterTools(s *server.MCPServer, deps *Dependencies) {
	h := NewHandlerSet(deps)

	s.AddTool(mcp.NewTool("render_conf_py",
		mcp.WithDescription("Render the Read the Docs conf.py for a documentation checkout. Returns the rendered file unless write is set"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the checkout directory")),
		mcp.WithString("project",
			mcp.Description("Project slug from the project registry (default: ad-hoc project named after the directory)")),
		mcp.WithString("version",
			mcp.Description("Version slug (default: the project's default version)")),
		mcp.WithString("commit",
			mcp.Description("Commit hash shown in the rendered page footer")),
		mcp.WithBoolean("write",
			mcp.Description("Write conf.py into the checkout instead of returning it (default: false)")),
	), h.HandleRenderConfPy)

	s.AddTool(mcp.NewTool("locate_conf_py",
		mcp.WithDescription("Show the conf.py, docs directory and sphinx-build arguments a build of the checkout would use"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to the checkout directory")),
		mcp.WithString("conf_py_file",
			mcp.Description("Custom conf.py path relative to the checkout")),
	), h.HandleLocateConfPy)
}
