package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RacoonMediaServer/rms-covers/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T, path string, w, h int) {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{R: uint8(w), G: uint8(h), B: 1, A: 255})

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	out, err := os.Create(path)
	require.NoError(t, err)
	defer out.Close()
	require.NoError(t, png.Encode(out, img))
}

func writeCollection(t *testing.T, root string, titles ...string) {
	for _, title := range titles {
		writeImage(t, filepath.Join(root, "library", "2dbox", title+".png"), 12, 12)
		writeImage(t, filepath.Join(root, "library", "3dbox", title+".png"), 13, 12)
		writeImage(t, filepath.Join(root, "library", "disc", title+".png"), 10, 10)
		writeImage(t, filepath.Join(root, "composites", "psp-icon0", "psp-icon0-generated", title+".png"), 14, 8)
	}
}

func writeCatalog(t *testing.T, path string, titles ...string) {
	b := strings.Builder{}
	b.WriteString("<datafile>\n")
	for _, title := range titles {
		b.WriteString("<game name=\"" + title + "\"><category>Games</category></game>\n")
	}
	b.WriteString("</datafile>\n")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "covers.json")
	require.NoError(t, os.WriteFile(configFile, []byte(`{"root": "/srv/covers", "catalog": "/srv/psx.dat", "description": "Weekly"}`), 0644))

	cfg, err := loadConfig(options{dat: "other.dat", output: "COMPLETION.md", markdown: true})
	require.NoError(t, err)
	assert.Equal(t, "other.dat", cfg.Catalog)
	assert.Equal(t, ".", cfg.Root)
	assert.Equal(t, "COMPLETION.md", cfg.Output)
	assert.True(t, cfg.Markdown)
	assert.Equal(t, cfg, config.Config())

	cfg, err = loadConfig(options{configFile: configFile, root: "/mnt/covers", report: "retool.txt"})
	require.NoError(t, err)
	assert.Equal(t, "/mnt/covers", cfg.Root)
	assert.Equal(t, "/srv/psx.dat", cfg.Catalog)
	assert.Equal(t, "retool.txt", cfg.ExclusionReport)
	assert.Equal(t, "Weekly", cfg.Description)
	assert.Empty(t, cfg.Output)
	assert.False(t, cfg.Markdown)
}

func TestVerify(t *testing.T) {
	type testCase struct {
		catalog  []string
		dat      string
		output   string
		markdown bool
		code     int
		written  bool
	}

	testCases := []testCase{
		{catalog: []string{"A (USA)"}, output: "COMPLETION.md", markdown: true, code: exitPassed, written: true},
		{catalog: []string{"A (USA)"}, output: "report.txt", code: exitPassed, written: true},
		{catalog: []string{"A (USA)", "B (USA)"}, output: "report.txt", code: exitFailed, written: true},
		{dat: "<datafile></datafile>", output: "report.txt", code: exitFatal},
		{catalog: []string{"A (USA)"}, output: filepath.Join("absent", "report.txt"), code: exitFatal},
	}

	for i, tc := range testCases {
		dir := t.TempDir()
		root := filepath.Join(dir, "collection")
		writeCollection(t, root, "A (USA)")

		datFile := filepath.Join(dir, "psx.dat")
		if tc.dat != "" {
			require.NoError(t, os.WriteFile(datFile, []byte(tc.dat), 0644), "Test %d failed", i)
		} else {
			writeCatalog(t, datFile, tc.catalog...)
		}

		cfg := config.Default()
		cfg.Root = root
		cfg.Catalog = datFile
		cfg.Output = filepath.Join(dir, tc.output)
		cfg.Markdown = tc.markdown
		cfg.Description = "Weekly verification"
		cfg.Access.Retries = 0
		for j := range cfg.Layout {
			cfg.Layout[j].Sizes = nil
		}

		out := &bytes.Buffer{}
		assert.Equal(t, tc.code, verify(context.Background(), cfg, out), "Test %d failed", i)

		content, err := os.ReadFile(cfg.Output)
		if !tc.written {
			assert.True(t, os.IsNotExist(err), "Test %d failed", i)
			continue
		}
		require.NoError(t, err, "Test %d failed", i)
		assert.Contains(t, out.String(), "VERDICT", "Test %d failed", i)
		if tc.markdown {
			assert.True(t, strings.HasPrefix(string(content), "Weekly verification\n\n**Last Updated:** "), "Test %d failed", i)
			assert.Contains(t, string(content), strings.TrimRight(out.String(), "\n"), "Test %d failed", i)
		} else {
			assert.Equal(t, out.String(), string(content), "Test %d failed", i)
		}
	}
}
