package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) handleListScreens(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.store == nil {
		return errResult("no archive configured"), nil
	}
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	project := getStringArg(args, "project")
	if project == "" {
		return s.listProjects()
	}

	screens, err := s.store.ListScreens(project, getStringArg(args, "pattern"))
	if err != nil {
		return errResult(fmt.Sprintf("list screens: %v", err)), nil
	}

	type screenInfo struct {
		Name        string         `json:"name"`
		SourcePath  string         `json:"source_path"`
		Syntax      string         `json:"syntax"`
		GeneratedAt string         `json:"generated_at"`
		Stats       map[string]any `json:"stats"`
	}
	result := make([]screenInfo, 0, len(screens))
	for _, sc := range screens {
		result = append(result, screenInfo{
			Name:        sc.Name,
			SourcePath:  sc.SourcePath,
			Syntax:      sc.Syntax,
			GeneratedAt: sc.GeneratedAt,
			Stats:       sc.Stats,
		})
	}
	return jsonResult(result), nil
}

func (s *Server) listProjects() (*mcp.CallToolResult, error) {
	projects, err := s.store.ListProjects()
	if err != nil {
		return errResult(fmt.Sprintf("list projects: %v", err)), nil
	}

	type projectInfo struct {
		Name        string `json:"name"`
		RootPath    string `json:"root_path"`
		GeneratedAt string `json:"generated_at"`
		Screens     int    `json:"screens"`
	}
	result := make([]projectInfo, 0, len(projects))
	for _, p := range projects {
		n, _ := s.store.CountScreens(p.Name)
		result = append(result, projectInfo{
			Name:        p.Name,
			RootPath:    p.RootPath,
			GeneratedAt: p.GeneratedAt,
			Screens:     n,
		})
	}
	return jsonResult(result), nil
}

func (s *Server) handleGetScreen(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.store == nil {
		return errResult("no archive configured"), nil
	}
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	project, name := getStringArg(args, "project"), getStringArg(args, "name")
	if project == "" || name == "" {
		return errResult("project and name are required"), nil
	}

	sc, err := s.store.GetScreen(project, name)
	if err != nil {
		return errResult(fmt.Sprintf("get screen: %v", err)), nil
	}
	if sc == nil {
		return errResult(fmt.Sprintf("screen not found: %s/%s", project, name)), nil
	}
	return jsonResult(map[string]any{
		"project":      sc.Project,
		"name":         sc.Name,
		"source_path":  sc.SourcePath,
		"input_hash":   sc.InputHash,
		"syntax":       sc.Syntax,
		"summary":      sc.Summary,
		"code":         sc.Code,
		"stats":        sc.Stats,
		"generated_at": sc.GeneratedAt,
		"run_id":       sc.RunID,
	}), nil
}

func (s *Server) handleDeleteScreen(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.store == nil {
		return errResult("no archive configured"), nil
	}
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	project, name := getStringArg(args, "project"), getStringArg(args, "name")
	if project == "" || name == "" {
		return errResult("project and name are required"), nil
	}

	deleted, err := s.store.DeleteScreen(project, name)
	if err != nil {
		return errResult(fmt.Sprintf("delete failed: %v", err)), nil
	}
	if !deleted {
		return errResult(fmt.Sprintf("screen not found: %s/%s", project, name)), nil
	}
	return jsonResult(map[string]any{
		"deleted": name,
		"project": project,
	}), nil
}

func (s *Server) handleDeleteProject(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.store == nil {
		return errResult("no archive configured"), nil
	}
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	name := getStringArg(args, "project")
	if name == "" {
		return errResult("project is required"), nil
	}

	proj, _ := s.store.GetProject(name)
	if proj == nil {
		return errResult(fmt.Sprintf("project not found: %s", name)), nil
	}

	if err := s.store.DeleteProject(name); err != nil {
		return errResult(fmt.Sprintf("delete failed: %v", err)), nil
	}

	return jsonResult(map[string]any{
		"deleted": name,
		"status":  "ok",
	}), nil
}
