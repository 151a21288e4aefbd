package config

// Config holds the application configuration.
type Config struct {
	Logger   Logger   `yaml:"logger"`
	Server   Server   `yaml:"server"`
	Projects Projects `yaml:"projects"`
	Scan     Scan     `yaml:"scan"`
	Cache    Cache    `yaml:"cache"`
	Sorter   Sorter   `yaml:"sorter"`
	Watcher  Watcher  `yaml:"watcher"`
}

// Logger holds the configuration for the app logging
type Logger struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
}

// Server holds the configuration for the Fiber server
type Server struct {
	PrintRoutes bool   `yaml:"show_routes"`
	Port        uint32 `yaml:"port"`
}

// Projects holds the location of the project list file.
type Projects struct {
	File string `yaml:"file" validate:"required"`
}

// Scan bounds directory enumeration.
type Scan struct {
	MaxDepth int `yaml:"max_depth" validate:"gte=0"`
}

// Cache bounds the in-memory bitmap cache.
type Cache struct {
	Size int `yaml:"size" validate:"gt=0"`
}

// Sorter holds the sorting session settings.
type Sorter struct {
	ChunkSize   int `yaml:"chunk_size" validate:"gt=0"`
	HistorySize int `yaml:"history_size" validate:"gt=0"`
	Workers     int `yaml:"workers" validate:"gt=0"`
}

// Watcher controls filesystem change detection on open class directories.
type Watcher struct {
	Enabled         bool `yaml:"enabled"`
	DebounceSeconds int  `yaml:"debounce_seconds" validate:"gte=0"`
}
