package config

import (
	"os"
	"path/filepath"
)

// createDefaultConfig creates a new Config with sensible default values
func createDefaultConfig() *Config {
	return &Config{
		Logger: Logger{
			Enabled: true,
			Level:   "info",
			Format:  "text",
		},
		Server: Server{
			PrintRoutes: false,
			Port:        3636,
		},
		Projects: Projects{
			File: defaultProjectsFile(),
		},
		Scan: Scan{
			MaxDepth: 2,
		},
		Cache: Cache{
			Size: 4096,
		},
		Sorter: Sorter{
			ChunkSize:   2000,
			HistorySize: 20,
			Workers:     4,
		},
		Watcher: Watcher{
			Enabled:         true,
			DebounceSeconds: 5,
		},
	}
}

func defaultProjectsFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tinysort_projects.json"
	}
	return filepath.Join(home, ".tinysort_projects.json")
}
