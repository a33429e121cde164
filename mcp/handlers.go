package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ludo-technologies/rtdbuild/domain"
	"github.com/ludo-technologies/rtdbuild/service"
	"github.com/mark3labs/mcp-go/mcp"
)

// HandlerSet exposes MCP tool handlers with shared dependencies.
type HandlerSet struct {
	deps        *Dependencies
	categorizer domain.ErrorCategorizer
}

// NewHandlerSet constructs a handler set.
func NewHandlerSet(deps *Dependencies) *HandlerSet {
	if deps == nil {
		deps = NewDependencies(nil, "", nil)
	}
	return &HandlerSet{deps: deps, categorizer: service.NewErrorCategorizer()}
}

type confPyResult struct {
	Version   string `json:"version"`
	Path      string `json:"path"`
	Generated bool   `json:"generated"`
	Changed   bool   `json:"changed"`
	Written   bool   `json:"written"`
}

type renderConfPyResponse struct {
	Project string         `json:"project"`
	Results []confPyResult `json:"results"`
	Content string         `json:"content,omitempty"`
}

// HandleRenderConfPy handles the render_conf_py tool
func (h *HandlerSet) HandleRenderConfPy(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	checkout, errResult := checkoutArg(args)
	if errResult != nil {
		return errResult, nil
	}

	cfg, err := h.deps.LoadConfig(checkout)
	if err != nil {
		return h.errorResult(err), nil
	}
	uc, err := h.deps.BuildConfPyUseCase(cfg)
	if err != nil {
		return h.errorResult(err), nil
	}

	write, _ := args["write"].(bool)
	var content bytes.Buffer
	req := domain.ConfPyRequest{
		CheckoutPath: checkout,
		Mode:         domain.ConfPyModeDryRun,
		OutputWriter: &content,
	}
	if write {
		req.Mode = domain.ConfPyModeWrite
		req.OutputWriter = nil
	}
	req.ProjectSlug, _ = args["project"].(string)
	req.VersionSlug, _ = args["version"].(string)
	req.Commit, _ = args["commit"].(string)
	if req.ProjectSlug == "" {
		req.ProjectName = filepath.Base(checkout)
	}

	resp, err := uc.Execute(ctx, req)
	if err != nil {
		return h.errorResult(err), nil
	}

	out := renderConfPyResponse{Project: resp.ProjectSlug, Content: content.String()}
	for _, r := range resp.Results {
		out.Results = append(out.Results, confPyResult{
			Version:   r.VersionSlug,
			Path:      r.Path,
			Generated: r.Generated,
			Changed:   r.Changed,
			Written:   write && r.Changed,
		})
	}
	return jsonResult(out)
}

// HandleLocateConfPy handles the locate_conf_py tool
func (h *HandlerSet) HandleLocateConfPy(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	checkout, errResult := checkoutArg(args)
	if errResult != nil {
		return errResult, nil
	}

	cfg, err := h.deps.LoadConfig(checkout)
	if err != nil {
		return h.errorResult(err), nil
	}

	project, err := service.NewAdHocProject("", filepath.Base(checkout))
	if err != nil {
		return h.errorResult(err), nil
	}
	project.ConfPyFile, _ = args["conf_py_file"].(string)

	loc, err := service.Locate(cfg, &domain.BuildEnvironment{
		Project:      project,
		Version:      project.FirstVersion(),
		CheckoutPath: checkout,
	}, h.deps.Logger())
	if err != nil {
		return h.errorResult(err), nil
	}
	return jsonResult(loc)
}

// checkoutArg returns the absolute checkout path from the path argument
func checkoutArg(args map[string]interface{}) (string, *mcp.CallToolResult) {
	path, ok := args["path"].(string)
	if !ok || path == "" {
		return "", mcp.NewToolResultError("path parameter is required and must be a string")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", mcp.NewToolResultError(fmt.Sprintf("invalid path: %v", err))
	}
	if info, err := os.Stat(abs); err != nil || !info.IsDir() {
		return "", mcp.NewToolResultError(fmt.Sprintf("checkout directory does not exist: %s", path))
	}
	return abs, nil
}

func (h *HandlerSet) errorResult(err error) *mcp.CallToolResult {
	categorized := h.categorizer.Categorize(err)
	return mcp.NewToolResultError(fmt.Sprintf("%s: %v", categorized.Message, err))
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
