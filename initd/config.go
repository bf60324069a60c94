// SPDX-FileCopyrightText: 2025 The Ibis Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initd

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"time"

	"github.com/BurntSushi/toml"
)

// Well-known paths of the running system.
const (
	DefaultConfigPath = "/etc/init.toml"
	DefaultShellPath  = "/ibish"
	DefaultBannerPath = "/logo.txt"
	DefaultHostname   = "ibis"
)

const (
	defaultSpawnRetries    = 3
	defaultSpawnRetryDelay = time.Second
)

// ShellConfig defines how the interactive shell is supervised.
type ShellConfig struct {
	// Path is the shell binary started by the supervisor.
	Path string

	// OnExit determines what happens when the shell terminates on its
	// own. Its exit status does not matter.
	OnExit ExitPolicy

	// SpawnRetries is the number of additional start attempts after a
	// failed one before the supervisor gives up.
	SpawnRetries uint

	// SpawnRetryDelay is the pause between start attempts.
	SpawnRetryDelay time.Duration
}

// Config defines the system configuration applied by [Run].
type Config struct {
	// Hostname is set during setup. Empty means the hostname is left
	// untouched.
	Hostname string

	// Banner resolves the boot banner. If nil, the compiled-in banner is
	// used.
	Banner BannerFunc

	// MountPoints defines the virtual file systems that are mounted
	// during setup. Mount points that have the MayFail flag set just
	// produce a warning instead of failing the boot.
	MountPoints MountPoints

	// Env is a set of environment variables that are added to the
	// process's environment.
	Env EnvVars

	// ConfigureLoopback determines if the loopback interface is brought
	// up during setup.
	ConfigureLoopback bool

	// Shell defines the supervised shell.
	Shell ShellConfig
}

// DefaultConfig creates a new default config.
func DefaultConfig() Config {
	return Config{
		Hostname:          DefaultHostname,
		Banner:            FileBanner(DefaultBannerPath, DefaultBanner),
		MountPoints:       EssentialMountPoints(),
		Env:               EnvVars{"PATH": DefaultPath},
		ConfigureLoopback: true,
		Shell: ShellConfig{
			Path:            DefaultShellPath,
			OnExit:          ExitPolicyPoweroff,
			SpawnRetries:    defaultSpawnRetries,
			SpawnRetryDelay: defaultSpawnRetryDelay,
		},
	}
}

// fileConfig is the schema of the configuration file.
type fileConfig struct {
	Hostname   string            `toml:"hostname"`
	BannerPath string            `toml:"banner_path"`
	Loopback   bool              `toml:"loopback"`
	Env        map[string]string `toml:"env"`
	Shell      fileShellConfig   `toml:"shell"`
}

type fileShellConfig struct {
	Path            string     `toml:"path"`
	OnExit          ExitPolicy `toml:"on_exit"`
	SpawnRetries    uint       `toml:"spawn_retries"`
	SpawnRetryDelay string     `toml:"spawn_retry_delay"`
}

// LoadConfig reads the configuration file at the given path and merges
// it over [DefaultConfig]. Only fields present in the file override the
// defaults.
//
// A missing file is not an error. On any other failure the returned
// config still holds the usable defaults, so a broken configuration file
// cannot prevent the system from booting.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	var fileCfg fileConfig

	meta, err := toml.DecodeFile(path, &fileCfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}

		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if meta.IsDefined("hostname") {
		cfg.Hostname = fileCfg.Hostname
	}

	if meta.IsDefined("banner_path") {
		cfg.Banner = FileBanner(fileCfg.BannerPath, DefaultBanner)
	}

	if meta.IsDefined("loopback") {
		cfg.ConfigureLoopback = fileCfg.Loopback
	}

	// Extra variables extend the default environment. PATH may be
	// overridden like any other variable.
	maps.Copy(cfg.Env, fileCfg.Env)

	if meta.IsDefined("shell", "path") {
		cfg.Shell.Path = fileCfg.Shell.Path
	}

	if meta.IsDefined("shell", "on_exit") {
		cfg.Shell.OnExit = fileCfg.Shell.OnExit
	}

	if meta.IsDefined("shell", "spawn_retries") {
		cfg.Shell.SpawnRetries = fileCfg.Shell.SpawnRetries
	}

	if meta.IsDefined("shell", "spawn_retry_delay") {
		delay, err := time.ParseDuration(fileCfg.Shell.SpawnRetryDelay)
		if err != nil {
			return cfg, fmt.Errorf("parse spawn_retry_delay: %w", err)
		}

		cfg.Shell.SpawnRetryDelay = delay
	}

	return cfg, nil
}
