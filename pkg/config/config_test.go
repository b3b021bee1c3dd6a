// Copyright (C) 2025, ADXYZ Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	require := require.New(t)

	cfg, err := Load("")
	require.NoError(err)

	require.Equal(DefaultListenAddr, cfg.ListenAddr)
	require.Equal(DefaultEnvironment, cfg.Environment)
	require.Equal(DefaultLogLevel, cfg.LogLevel)
	require.Equal(DefaultArchiveCapacity, cfg.ArchiveCapacity)
	require.False(cfg.Production())
}

func TestLoadFromFile(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "yieldplan.yaml")
	body := []byte("listen_addr: \":9090\"\nenvironment: production\nlog_level: warn\narchive_capacity: 16\n")
	require.NoError(os.WriteFile(path, body, 0o644))

	cfg, err := Load(path)
	require.NoError(err)
	require.Equal(":9090", cfg.ListenAddr)
	require.Equal("warn", cfg.LogLevel)
	require.Equal(16, cfg.ArchiveCapacity)
	require.True(cfg.Production())
}

func TestEnvOverride(t *testing.T) {
	require := require.New(t)

	t.Setenv("YIELDPLAN_LISTEN_ADDR", ":7070")
	t.Setenv("YIELDPLAN_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(err)
	require.Equal(":7070", cfg.ListenAddr)
	require.Equal("debug", cfg.LogLevel)
}
