package tools

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/brandon/mcp-mailstore/internal/account"
	"github.com/brandon/mcp-mailstore/internal/mailstore"
)

// Registry manages MCP tools
type Registry struct {
	logger   *logrus.Logger
	accounts *account.Manager
	stores   *mailstore.Manager
	tools    map[string]Tool
}

// Tool represents an MCP tool
type Tool interface {
	Name() string
	Description() string
	InputSchema() map[string]interface{}
	Execute(params map[string]interface{}) (interface{}, error)
}

// NewRegistry creates a new tool registry
func NewRegistry(accounts *account.Manager, stores *mailstore.Manager, logger *logrus.Logger) *Registry {
	reg := &Registry{
		logger:   logger,
		accounts: accounts,
		stores:   stores,
		tools:    make(map[string]Tool),
	}

	reg.registerTools()

	return reg
}

// registerTools registers all available tools
func (r *Registry) registerTools() {
	base := toolBase{accounts: r.accounts, stores: r.stores, logger: r.logger}
	toolList := []Tool{
		&ListAccountsTool{base},
		&RemoveAccountTool{base},
		&ListFoldersTool{base},
		&GetFolderTool{base},
		&ChangeFolderTool{base},
		&UpdateFolderSettingsTool{base},
		&SetFolderClassTool{base},
		&SetUnifiedInboxTool{base},
	}

	for _, tool := range toolList {
		r.tools[tool.Name()] = tool
		r.logger.WithField("tool", tool.Name()).Debug("Registered tool")
	}

	r.logger.WithField("count", len(r.tools)).Info("Registered tools")
}

// GetTool returns a tool by name
func (r *Registry) GetTool(name string) (Tool, bool) {
	tool, exists := r.tools[name]
	return tool, exists
}

// GetToolDefinitions returns tool definitions for MCP, sorted by name
func (r *Registry) GetToolDefinitions() []map[string]interface{} {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)

	definitions := make([]map[string]interface{}, 0, len(names))
	for _, name := range names {
		tool := r.tools[name]
		definitions = append(definitions, map[string]interface{}{
			"name":        tool.Name(),
			"description": tool.Description(),
			"inputSchema": tool.InputSchema(),
		})
	}
	return definitions
}
