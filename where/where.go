// Package where resolves the directories and files tonneli reads and writes.
package where

import (
	"os"
	"path/filepath"

	"github.com/samber/lo"
	"github.com/tonneli-cli/tonneli/constant"
	"github.com/tonneli-cli/tonneli/filesystem"
)

// EnvConfigPath overrides the configuration directory.
const EnvConfigPath = "TONNELI_CONFIG_PATH"

func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config returns the configuration directory, honouring TONNELI_CONFIG_PATH.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Tonneli))
}

// Cache returns the cache directory.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Tonneli))
}

// Logs returns the directory of the daily log files.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Providers returns the directory scanned for Lua city provider scripts.
func Providers() string {
	return ensureDir(filepath.Join(Config(), "providers"))
}

// Queries returns the file holding remembered search queries.
func Queries() string {
	return filepath.Join(Cache(), "queries.json")
}
