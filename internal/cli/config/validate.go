package config

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlfixture/pkg/adapter"
)

// Postgres connection settings, read from the environment.
const (
	EnvPGHost     = "PG_HOST"
	EnvPGPort     = "PG_PORT"
	EnvPGDatabase = "PG_DBNAME"
	EnvPGUser     = "PG_USER"
	EnvPGPassword = "PG_PASSWORD"
)

// pgEnvKeys maps each Postgres variable to its config key.
var pgEnvKeys = map[string]string{
	EnvPGHost:     "target.host",
	EnvPGPort:     "target.port",
	EnvPGDatabase: "target.database",
	EnvPGUser:     "target.user",
	EnvPGPassword: "target.password",
}

// connectionKeys are the postgres settings under target.*, in reporting
// order.
var connectionKeys = []string{"host", "port", "database", "user", "password"}

// pgEnvNames maps a connection key back to its environment variable.
var pgEnvNames = map[string]string{
	"host":     EnvPGHost,
	"port":     EnvPGPort,
	"database": EnvPGDatabase,
	"user":     EnvPGUser,
	"password": EnvPGPassword,
}

// has reports whether a connection setting was supplied. Targets loaded by
// LoadConfig know which keys were set, so empty values count as present;
// otherwise a zero value counts as missing.
func (t *TargetConfig) has(key string) bool {
	if t.supplied != nil {
		return t.supplied[key]
	}
	switch key {
	case "host":
		return t.Host != ""
	case "port":
		return t.Port != 0
	case "database":
		return t.Database != ""
	case "user":
		return t.User != ""
	case "password":
		return t.Password != ""
	}
	return false
}

// MissingSettingsError lists every required connection setting that was
// not supplied.
type MissingSettingsError struct {
	Names []string
}

func (e *MissingSettingsError) Error() string {
	return fmt.Sprintf("missing required connection settings: %s\nHint: export them or set the matching target.* keys in %s",
		strings.Join(e.Names, ", "), FileName)
}

// ValidateTarget checks that the target names a registered adapter and,
// for postgres, that every connection setting is present.
func ValidateTarget(t *TargetConfig) error {
	if t == nil || t.Type == "" {
		return fmt.Errorf("target type is required")
	}

	typ := strings.ToLower(t.Type)
	if !adapter.IsRegistered(typ) {
		return &adapter.UnknownAdapterError{
			Type:      t.Type,
			Available: adapter.ListAdapters(),
		}
	}

	if typ != "postgres" {
		return nil
	}

	var missing []string
	for _, key := range connectionKeys {
		if !t.has(key) {
			missing = append(missing, pgEnvNames[key])
		}
	}
	if len(missing) > 0 {
		return &MissingSettingsError{Names: missing}
	}
	return nil
}

// AdapterConfig converts the target into adapter settings.
func (t *TargetConfig) AdapterConfig() adapter.Config {
	return adapter.Config{
		Type:     strings.ToLower(t.Type),
		Path:     t.Database,
		Host:     t.Host,
		Port:     t.Port,
		Database: t.Database,
		Username: t.User,
		Password: t.Password,
		Options:  t.Options,
	}
}
