package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/addressbook/pkg/sqlite"
	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend string `yaml:"backend"`
	DataDir string `yaml:"data_dir,omitempty"`
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize addressbook storage",
		Long:  "Create the configuration and data directories, then initialize the storage backend.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd)
		},
	}
}

func (a *app) runInit(cmd *cobra.Command) error {
	if err := os.MkdirAll(a.configDir, 0o755); err != nil {
		return systemError(fmt.Errorf("create config directory: %w", err))
	}

	configPath := filepath.Join(a.configDir, configFileExt)
	if err := writeConfigIfMissing(configPath, a.backend, a.dataDir); err != nil {
		return systemError(fmt.Errorf("write config: %w", err))
	}

	// Initialize the data directory via Attach then Detach.
	cfg := types.Config{
		Backend: a.backend,
		DataDir: a.dataDir,
	}

	backend := sqlite.NewBackend(a.logger)
	if err := backend.Attach(cfg); err != nil {
		return systemError(fmt.Errorf("initialize storage: %w", err))
	}
	if err := backend.Detach(); err != nil {
		return systemError(fmt.Errorf("finalize storage: %w", err))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Address book initialized in %s\n", a.dataDir)
	return nil
}

// writeConfigIfMissing creates config.yaml pinning backend and dataDir if the
// file does not exist. If it already exists, the function returns nil.
func writeConfigIfMissing(path, backend, dataDir string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	cfg := configFile{
		Backend: backend,
		DataDir: dataDir,
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
