package tools

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/viewcode/internal/config"
	"github.com/DeusData/viewcode/internal/pipeline"
	"github.com/DeusData/viewcode/internal/store"
)

// Server wraps the MCP server with tool handlers.
type Server struct {
	mcp   *mcp.Server
	store *store.Store
	// cfg is the base config for every call. Nil means: load .viewcode.yaml
	// next to the dump, or defaults for inline dumps.
	cfg *config.Config
}

// NewServer creates a new MCP server with all tools registered.
func NewServer(s *store.Store, cfg *config.Config) *Server {
	srv := &Server{
		store: s,
		cfg:   cfg,
		mcp: mcp.NewServer(
			&mcp.Implementation{
				Name:    "viewcode",
				Version: pipeline.Version,
			},
			nil,
		),
	}
	srv.registerTools()
	return srv
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// overrideProperties are the config arguments shared by the generate tools.
const overrideProperties = `
				"syntax": {
					"type": "string",
					"description": "Constraint style: 'snapkit', 'anchors' or 'nslayoutconstraint' (default)",
					"enum": ["snapkit", "anchors", "nslayoutconstraint"]
				},
				"sort_policy": {
					"type": "string",
					"description": "Sibling order before naming: 'none' (default), 'top-to-bottom', 'left-to-right', 'distance'",
					"enum": ["none", "top-to-bottom", "left-to-right", "distance"]
				},
				"skip_constraintless": {
					"type": "boolean",
					"description": "Leave out views that own no constraints and are not referenced (default true)"
				},
				"summary": {
					"type": "boolean",
					"description": "Include the hierarchy summary (default true)"
				},
				"verify": {
					"type": "boolean",
					"description": "Parse the generated Swift and report syntax issues (default false)"
				}`

func (s *Server) registerTools() {
	// 1. generate_layout_code
	s.mcp.AddTool(&mcp.Tool{
		Name:        "generate_layout_code",
		Description: "Generate procedural Swift layout code from a widget dump (JSON or YAML). Returns the hierarchy summary, the code, and counters. Pass the dump inline or as a file path. Optionally archives the result as a named screen.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path": {
					"type": "string",
					"description": "Path to a dump file (.json, .yaml, .yml)"
				},
				"dump": {
					"type": "string",
					"description": "Inline dump text, used when path is empty"
				},
				"format": {
					"type": "string",
					"description": "Format of the inline dump (default json)",
					"enum": ["json", "yaml"]
				},
				"root_id": {
					"type": "string",
					"description": "Identity of the widget to generate; the dump root when empty"
				},
				"save_as": {
					"type": "string",
					"description": "Archive the result under this screen name in project 'adhoc'"
				},` + overrideProperties + `
			}
		}`),
	}, s.handleGenerateLayoutCode)

	// 2. generate_directory
	s.mcp.AddTool(&mcp.Tool{
		Name:        "generate_directory",
		Description: "Generate every dump under a directory into <screen>.swift files and archive them. Unchanged dumps are skipped via content hashing unless force is set.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path": {
					"type": "string",
					"description": "Directory holding dump files"
				},
				"out_dir": {
					"type": "string",
					"description": "Directory for .swift files (default: the dump directory; '-' writes no files)"
				},
				"force": {
					"type": "boolean",
					"description": "Regenerate unchanged dumps"
				}
			},
			"required": ["path"]
		}`),
	}, s.handleGenerateDirectory)

	// 3. list_screens
	s.mcp.AddTool(&mcp.Tool{
		Name:        "list_screens",
		Description: "List archived screens of a project (name, source, syntax, generated_at, counters). Without a project, lists projects with their screen counts.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"project": {
					"type": "string",
					"description": "Project name as returned by generate_directory"
				},
				"pattern": {
					"type": "string",
					"description": "Glob filter on screen names (e.g. 'settings.*')"
				}
			}
		}`),
	}, s.handleListScreens)

	// 4. get_screen
	s.mcp.AddTool(&mcp.Tool{
		Name:        "get_screen",
		Description: "Return an archived screen with its summary and code.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"project": {"type": "string", "description": "Project name"},
				"name": {"type": "string", "description": "Screen name"}
			},
			"required": ["project", "name"]
		}`),
	}, s.handleGetScreen)

	// 5. delete_screen
	s.mcp.AddTool(&mcp.Tool{
		Name:        "delete_screen",
		Description: "Delete an archived screen. Generated .swift files on disk are left alone.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"project": {"type": "string", "description": "Project name"},
				"name": {"type": "string", "description": "Screen name"}
			},
			"required": ["project", "name"]
		}`),
	}, s.handleDeleteScreen)

	// 6. delete_project
	s.mcp.AddTool(&mcp.Tool{
		Name:        "delete_project",
		Description: "Delete a project with all its archived screens and run history. This action is irreversible.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"project": {"type": "string", "description": "Name of the project to delete"}
			},
			"required": ["project"]
		}`),
	}, s.handleDeleteProject)
}

// jsonResult marshals data to JSON and returns as tool result.
func jsonResult(data any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errResult("json marshal err=" + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}
}

// errResult returns a tool result indicating an error.
func errResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}

// parseArgs unmarshals the raw JSON arguments into a map.
func parseArgs(req *mcp.CallToolRequest) (map[string]any, error) {
	if req.Params == nil || len(req.Params.Arguments) == 0 {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &m); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return m, nil
}

// getStringArg extracts a string argument from parsed args.
func getStringArg(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// getBoolArg extracts a boolean argument from parsed args.
func getBoolArg(args map[string]any, key string) bool {
	b, _ := args[key].(bool)
	return b
}

// getOptBoolArg returns nil when the argument is absent.
func getOptBoolArg(args map[string]any, key string) *bool {
	b, ok := args[key].(bool)
	if !ok {
		return nil
	}
	return &b
}

// configFor returns the base config for a dump in dir with the call's
// overrides applied.
func (s *Server) configFor(dir string, args map[string]any) (*config.Config, error) {
	base := s.cfg
	if base == nil {
		base = config.Default()
		if dir != "" {
			loaded, err := config.LoadDir(dir)
			if err != nil {
				return nil, err
			}
			base = loaded
		}
	}
	return base.With(config.Overrides{
		SortPolicy:           getStringArg(args, "sort_policy"),
		OutputSyntax:         getStringArg(args, "syntax"),
		RootID:               getStringArg(args, "root_id"),
		SkipConstraintless:   getOptBoolArg(args, "skip_constraintless"),
		EmitHierarchySummary: getOptBoolArg(args, "summary"),
		Verify:               getOptBoolArg(args, "verify"),
	})
}
