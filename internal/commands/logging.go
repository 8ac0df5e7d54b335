package commands

import (
	"strings"

	"github.com/sumeshkk123/cloud-sub008/internal/logging"
	"github.com/sumeshkk123/cloud-sub008/pkg/interfaces"
)

const commandModuleRoot = "cms.commands"

// CommandLogger returns the logger for a command module ("records", "seed",
// "audit"), named cms.commands.<module>.
func CommandLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	name := strings.ToLower(strings.TrimSpace(module))
	if name == "" {
		name = "core"
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":      "command",
		"command_module": name,
	})
}
