// Package config handles loading daybook.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/amonks/daybook/internal/env"
	"github.com/amonks/daybook/internal/paths"
	internalstrings "github.com/amonks/daybook/internal/strings"
)

// ProjectFile is the name of the per-directory config file.
const ProjectFile = "daybook.toml"

const (
	// DefaultJournalDataset is the Sanity dataset queried when none is configured.
	DefaultJournalDataset = "production"

	// DefaultJournalAPIVersion is the Sanity API version used when none is configured.
	DefaultJournalAPIVersion = "2021-10-21"
)

// Config represents the daybook.toml configuration file.
type Config struct {
	Storage Storage `toml:"storage"`
	Policy  Policy  `toml:"policy"`
	Journal Journal `toml:"journal"`
}

// Storage contains persistence configuration.
type Storage struct {
	// Dir is where todo-storage.json and note-storage.json live.
	// A leading "~/" is expanded to the home directory.
	Dir string `toml:"dir"`
}

// Policy toggles the mutation rules that the product has not settled on.
// Every policy defaults to true.
type Policy struct {
	// RejectDuplicateDay refuses a second top-level todo on the same calendar day.
	RejectDuplicateDay bool `toml:"reject-duplicate-day"`

	// RejectExpired refuses new todos dated in a month that has already passed.
	RejectExpired bool `toml:"reject-expired"`

	// DeleteParentWithLastSubTodo removes a todo when its last sub-todo is deleted.
	DeleteParentWithLastSubTodo bool `toml:"delete-parent-with-last-subtodo"`
}

// Journal configures the remote read-only notes source.
type Journal struct {
	ProjectID  string `toml:"project-id"`
	Dataset    string `toml:"dataset"`
	APIVersion string `toml:"api-version"`
	Token      string `toml:"token"`

	// BaseURL replaces https://<project-id>.api.sanity.io, for proxies
	// and tests.
	BaseURL string `toml:"base-url"`
}

// Load loads configuration from dir and the global config file.
// Returns defaults if no config files exist.
func Load(dir string) (*Config, error) {
	globalPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, ProjectFile))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	return merged, nil
}

// StateDir returns the directory for persisted collections.
// DAYBOOK_STATE_DIR wins over the config file, which wins over the default.
func (c *Config) StateDir() (string, error) {
	if dir := env.String(env.StateDirVar, ""); dir != "" {
		return dir, nil
	}
	if c != nil && c.Storage.Dir != "" {
		home, err := paths.HomeDir()
		if err != nil {
			return "", err
		}
		return internalstrings.ExpandHome(c.Storage.Dir, home), nil
	}
	return paths.DefaultStateDir()
}

func globalConfigPath() (string, error) {
	if path := env.String(env.ConfigVar, ""); path != "" {
		return path, nil
	}
	return paths.DefaultConfigPath()
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
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

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Storage.Dir = mergeString(projectMeta.IsDefined("storage", "dir"), projectCfg.Storage.Dir, globalCfg.Storage.Dir)

	merged.Policy.RejectDuplicateDay = mergeBool(
		projectMeta.IsDefined("policy", "reject-duplicate-day"), projectCfg.Policy.RejectDuplicateDay,
		globalMeta.IsDefined("policy", "reject-duplicate-day"), globalCfg.Policy.RejectDuplicateDay,
	)
	merged.Policy.RejectExpired = mergeBool(
		projectMeta.IsDefined("policy", "reject-expired"), projectCfg.Policy.RejectExpired,
		globalMeta.IsDefined("policy", "reject-expired"), globalCfg.Policy.RejectExpired,
	)
	merged.Policy.DeleteParentWithLastSubTodo = mergeBool(
		projectMeta.IsDefined("policy", "delete-parent-with-last-subtodo"), projectCfg.Policy.DeleteParentWithLastSubTodo,
		globalMeta.IsDefined("policy", "delete-parent-with-last-subtodo"), globalCfg.Policy.DeleteParentWithLastSubTodo,
	)

	merged.Journal.ProjectID = mergeString(projectMeta.IsDefined("journal", "project-id"), projectCfg.Journal.ProjectID, globalCfg.Journal.ProjectID)
	merged.Journal.Dataset = mergeString(projectMeta.IsDefined("journal", "dataset"), projectCfg.Journal.Dataset, globalCfg.Journal.Dataset)
	merged.Journal.APIVersion = mergeString(projectMeta.IsDefined("journal", "api-version"), projectCfg.Journal.APIVersion, globalCfg.Journal.APIVersion)
	merged.Journal.Token = mergeString(projectMeta.IsDefined("journal", "token"), projectCfg.Journal.Token, globalCfg.Journal.Token)
	merged.Journal.BaseURL = mergeString(projectMeta.IsDefined("journal", "base-url"), projectCfg.Journal.BaseURL, globalCfg.Journal.BaseURL)
	if merged.Journal.Dataset == "" {
		merged.Journal.Dataset = DefaultJournalDataset
	}
	if merged.Journal.APIVersion == "" {
		merged.Journal.APIVersion = DefaultJournalAPIVersion
	}

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func mergeBool(projectDefined bool, projectValue bool, globalDefined bool, globalValue bool) bool {
	switch {
	case projectDefined:
		return projectValue
	case globalDefined:
		return globalValue
	default:
		return true
	}
}
