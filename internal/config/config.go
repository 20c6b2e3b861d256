// Package config handles loading lists.toml configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/amonks/lists/internal/paths"
	"github.com/amonks/lists/internal/validation"
	"github.com/amonks/lists/tasklist"
)

// ProjectFileName is the per-project config file name.
const ProjectFileName = "lists.toml"

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Defaults reproduce the layout the app has always used.
const (
	DefaultAddr     = "127.0.0.1:5000"
	DefaultDir      = "tasks"
	DefaultDatabase = "tasks/lists.db"
)

// Config represents the lists.toml configuration file.
type Config struct {
	Server Server          `toml:"server"`
	Store  Store           `toml:"store"`
	Lists  []tasklist.List `toml:"lists"`
}

// Server contains HTTP server configuration.
type Server struct {
	// Addr is the listen address.
	Addr string `toml:"addr"`
}

// Store contains storage configuration.
type Store struct {
	// Dir holds one <list>.txt file per list.
	Dir string `toml:"dir"`
	// Backend is "file" or "sqlite".
	Backend string `toml:"backend"`
	// Database is the SQLite file used by the sqlite backend.
	Database string `toml:"database"`
	// Lock serializes read-modify-write cycles with an advisory file lock.
	Lock bool `toml:"lock"`
	// KeepUnreferenced keeps active tasks a reorder does not mention.
	KeepUnreferenced bool `toml:"keep-unreferenced"`
}

// ErrInvalidBackend indicates store.backend names no known backend.
var ErrInvalidBackend = errors.New("store.backend must be a known backend")

// Backends returns the supported storage backends.
func Backends() []string {
	return []string{BackendFile, BackendSQLite}
}

var listNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Default returns the configuration used when no files exist.
func Default() *Config {
	return &Config{
		Server: Server{Addr: DefaultAddr},
		Store: Store{
			Dir:      DefaultDir,
			Backend:  BackendFile,
			Database: DefaultDatabase,
		},
		Lists: tasklist.DefaultLists(),
	}
}

// Load loads configuration from dir and the global config file. Relative
// store paths are resolved against dir. Returns the defaults if no config
// files exist.
func Load(dir string) (*Config, error) {
	return LoadProject(dir, "")
}

// LoadProject is Load with an explicit project file. An empty projectPath
// means lists.toml in dir; a non-empty one must exist.
func LoadProject(dir, projectPath string) (*Config, error) {
	if projectPath != "" {
		if _, err := os.Stat(projectPath); err != nil {
			return nil, fmt.Errorf("config file %s: %w", projectPath, err)
		}
	}
	projectPath, err := paths.ResolveWithDefault(projectPath, func() (string, error) {
		return filepath.Join(dir, ProjectFileName), nil
	})
	if err != nil {
		return nil, err
	}
	globalPath, err := paths.DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(globalPath, projectPath, dir)
}

// LoadFrom merges the global and project files at the given paths over the
// defaults. Missing files are treated as empty.
func LoadFrom(globalPath, projectPath, baseDir string) (*Config, error) {
	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(projectPath)
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	merged.Store.Dir = paths.ResolveRelative(baseDir, merged.Store.Dir)
	merged.Store.Database = paths.ResolveRelative(baseDir, merged.Store.Database)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	if path == "" {
		return &Config{}, toml.MetaData{}, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: unknown key %q", path, undecoded[0].String())
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Default()
	merged.Server.Addr = mergeString(merged.Server.Addr,
		layer[string]{globalMeta.IsDefined("server", "addr"), globalCfg.Server.Addr},
		layer[string]{projectMeta.IsDefined("server", "addr"), projectCfg.Server.Addr})
	merged.Store.Dir = mergeString(merged.Store.Dir,
		layer[string]{globalMeta.IsDefined("store", "dir"), globalCfg.Store.Dir},
		layer[string]{projectMeta.IsDefined("store", "dir"), projectCfg.Store.Dir})
	merged.Store.Backend = strings.ToLower(mergeString(merged.Store.Backend,
		layer[string]{globalMeta.IsDefined("store", "backend"), globalCfg.Store.Backend},
		layer[string]{projectMeta.IsDefined("store", "backend"), projectCfg.Store.Backend}))
	merged.Store.Database = mergeString(merged.Store.Database,
		layer[string]{globalMeta.IsDefined("store", "database"), globalCfg.Store.Database},
		layer[string]{projectMeta.IsDefined("store", "database"), projectCfg.Store.Database})
	merged.Store.Lock = mergeValue(merged.Store.Lock,
		layer[bool]{globalMeta.IsDefined("store", "lock"), globalCfg.Store.Lock},
		layer[bool]{projectMeta.IsDefined("store", "lock"), projectCfg.Store.Lock})
	merged.Store.KeepUnreferenced = mergeValue(merged.Store.KeepUnreferenced,
		layer[bool]{globalMeta.IsDefined("store", "keep-unreferenced"), globalCfg.Store.KeepUnreferenced},
		layer[bool]{projectMeta.IsDefined("store", "keep-unreferenced"), projectCfg.Store.KeepUnreferenced})

	if projectMeta.IsDefined("lists") {
		merged.Lists = normalizeLists(projectCfg.Lists)
	} else if globalMeta.IsDefined("lists") {
		merged.Lists = normalizeLists(globalCfg.Lists)
	}

	return merged
}

type layer[T any] struct {
	defined bool
	value   T
}

// mergeValue returns the value of the last defined layer, or fallback.
func mergeValue[T any](fallback T, layers ...layer[T]) T {
	value := fallback
	for _, l := range layers {
		if l.defined {
			value = l.value
		}
	}
	return value
}

// mergeString is mergeValue for strings; a blank result falls back.
func mergeString(fallback string, layers ...layer[string]) string {
	value := strings.TrimSpace(mergeValue(fallback, layers...))
	if value == "" {
		return fallback
	}
	return value
}

func normalizeLists(lists []tasklist.List) []tasklist.List {
	out := make([]tasklist.List, 0, len(lists))
	for _, list := range lists {
		list.Name = strings.TrimSpace(list.Name)
		list.Title = strings.TrimSpace(list.Title)
		if list.Title == "" {
			list.Title = list.Name
		}
		out = append(out, list)
	}
	return out
}

// Validate reports configuration the app cannot run with.
func (c *Config) Validate() error {
	if !slices.Contains(Backends(), c.Store.Backend) {
		return validation.FormatInvalidValueError(ErrInvalidBackend, c.Store.Backend, Backends())
	}
	if len(c.Lists) == 0 {
		return errors.New("at least one list must be configured")
	}
	seen := make(map[string]bool, len(c.Lists))
	for _, list := range c.Lists {
		if !listNamePattern.MatchString(list.Name) {
			return fmt.Errorf("invalid list name %q: use letters, digits, '-' or '_'", list.Name)
		}
		if seen[list.Name] {
			return fmt.Errorf("duplicate list name %q", list.Name)
		}
		seen[list.Name] = true
	}
	return nil
}

// OpenBackend opens the configured storage backend.
func (s Store) OpenBackend() (tasklist.Backend, error) {
	switch s.Backend {
	case BackendSQLite:
		backend, err := tasklist.NewSQLiteBackend(s.Database)
		if err != nil {
			return nil, err
		}
		return backend, nil
	case BackendFile, "":
		backend, err := tasklist.NewFileBackend(s.Dir, tasklist.FileOptions{Lock: s.Lock})
		if err != nil {
			return nil, err
		}
		return backend, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", s.Backend)
	}
}
