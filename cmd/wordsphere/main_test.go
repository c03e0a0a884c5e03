package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wordsphere/internal/config"
	"wordsphere/internal/scene"
)

func TestVersionCommand(t *testing.T) {
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "wordsphere version "+Version)
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("words:\n  count: 5\n  seed: 3\n"), 0o644))

	cmd := rootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--config", cfgPath, "--count", "12"}))
	var g globalFlags
	g.configPath, _ = cmd.Flags().GetString("config")
	g.count, _ = cmd.Flags().GetInt("count")

	cfg, err := loadConfig(cmd, &g)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Words.Count)
	assert.Equal(t, uint64(3), cfg.Words.Seed)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	cmd := rootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--count", "41"}))
	g := globalFlags{count: 41}
	_, err := loadConfig(cmd, &g)
	assert.ErrorContains(t, err, "invalid configuration")
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"debug", "info", "warn", "error", "", "DEBUG"} {
		_, err := parseLevel(s)
		assert.NoError(t, err, s)
	}
	_, err := parseLevel("loud")
	assert.Error(t, err)
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ws.log")
	logger, closeLog, err := newLogger(path, "debug", nil)
	require.NoError(t, err)
	logger.Debug("hello", "k", 1)
	closeLog()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello")
}

func TestItemSourceFromPool(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Words.Seed = 9
	next := itemSource(cfg)
	items, err := next()
	require.NoError(t, err)
	assert.Len(t, items, cfg.Words.Count)
	assert.Equal(t, 1.0, items[0].Frequency)
}

func TestItemSourceFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "w.yaml")
	require.NoError(t, os.WriteFile(path, []byte("words:\n  - text: Go\n    frequency: 1\n  - text: Rust\n    frequency: 0.4\n"), 0o644))
	cfg := config.DefaultConfig()
	cfg.Words.File = path
	items, err := itemSource(cfg)()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Go", items[0].Text)
}

func TestRunSnapshotWritesFrames(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Words.Count = 6
	cfg.Words.Seed = 1
	metricsPath := filepath.Join(dir, "wordsphere.prom")

	n, err := runSnapshot(cfg, nil, snapshotOptions{
		frames:      3,
		out:         dir,
		width:       160,
		height:      120,
		metricsFile: metricsPath,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, name := range []string{"frame-0000.png", "frame-0001.png", "frame-0002.png"} {
		f, err := os.Open(filepath.Join(dir, name))
		require.NoError(t, err, name)
		img, err := png.Decode(f)
		f.Close()
		require.NoError(t, err, name)
		assert.Equal(t, 160, img.Bounds().Dx())
		assert.Equal(t, 120, img.Bounds().Dy())
	}

	// frame 0 comes from the mount, the rest from the loop
	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "wordsphere_frames_total 2")
	assert.Contains(t, string(prom), "wordsphere_mounts_total 1")
}

func TestRunSnapshotRejectsBadInput(t *testing.T) {
	cfg := config.DefaultConfig()
	_, err := runSnapshot(cfg, nil, snapshotOptions{frames: 0, out: t.TempDir(), width: 10, height: 10})
	assert.ErrorIs(t, err, scene.ErrInvalidArgument)

	_, err = runSnapshot(cfg, nil, snapshotOptions{frames: 1, out: t.TempDir(), width: 0, height: 10})
	assert.ErrorIs(t, err, scene.ErrInvalidArgument)
}
