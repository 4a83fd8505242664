package tools

import (
	"fmt"
	"sort"
)

// Manager is the registry of available tools, dispatching calls by name.
type Manager struct {
	tools map[string]Executor
	order []string
}

func NewManager() *Manager {
	return &Manager{tools: make(map[string]Executor)}
}

// Register adds a tool under its declared function name. Registering the same
// name twice replaces the earlier tool.
func (m *Manager) Register(tool Executor) {
	name := tool.Definition().Function.Name
	if _, exists := m.tools[name]; !exists {
		m.order = append(m.order, name)
	}
	m.tools[name] = tool
}

// Definitions returns every registered tool schema in registration order,
// ready to hand to an LLM or a tools/list response.
func (m *Manager) Definitions() []Tool {
	defs := make([]Tool, 0, len(m.tools))
	for _, name := range m.order {
		defs = append(defs, m.tools[name].Definition())
	}
	return defs
}

// Names returns the sorted names of all registered tools.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.tools))
	for name := range m.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs a tool by name with the given JSON arguments.
func (m *Manager) Execute(name, arguments string) (string, error) {
	tool, ok := m.tools[name]
	if !ok {
		return "", fmt.Errorf("tool %q not found", name)
	}
	return tool.Execute(arguments)
}

// Count returns the number of registered tools.
func (m *Manager) Count() int {
	return len(m.tools)
}
