package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RacoonMediaServer/rms-covers/internal/config"
	"github.com/RacoonMediaServer/rms-covers/internal/model"
	"github.com/RacoonMediaServer/rms-covers/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDat = `<?xml version="1.0"?>
<!DOCTYPE datafile PUBLIC "-//Logiqx//DTD ROM Management Datafile//EN" "http://www.logiqx.com/Dats/datafile.dtd">
<datafile>
	<header>
		<name>Sony - PlayStation</name>
		<description>Sony - PlayStation - Discs (10880) (2024-01-01 00-00-00)</description>
		<version>2024-01-01 00-00-00</version>
	</header>
	<game name="Ape Escape (USA)">
		<category>Games</category>
		<description>Ape Escape (USA)</description>
		<rom name="Ape Escape (USA).cue" size="1000" crc="00000000"/>
	</game>
	<game name="Crash Bandicoot (Europe, Australia) (En,Fr,De) (Rev 1)">
		<category>Games</category>
	</game>
	<game name="Tom &amp;amp; Jerry in House Trap (USA)">
		<category>Games</category>
	</game>
	<game name="Final Fantasy VII (USA) (Disc 2)">
		<category>Games</category>
	</game>
</datafile>
`

func TestParse(t *testing.T) {
	c, err := Parse("sample.dat", strings.NewReader(sampleDat))
	require.NoError(t, err)

	assert.Equal(t, "Sony - PlayStation", c.Header.Name)
	assert.Equal(t, []model.Title{
		"Ape Escape (USA)",
		"Crash Bandicoot (Europe, Australia) (En,Fr,De) (Rev 1)",
		"Tom & Jerry in House Trap (USA)",
		"Final Fantasy VII (USA) (Disc 2)",
	}, c.Titles())

	rec := c.Records[1]
	assert.Equal(t, []string{"Europe", "Australia"}, rec.Regions)
	assert.Equal(t, []string{"En", "Fr", "De"}, rec.Languages)
	assert.Equal(t, 1, rec.Revision)
	assert.Equal(t, "Games", rec.Category)
	assert.Equal(t, 0, rec.Disc)
	assert.Equal(t, 2, c.Records[3].Disc)

	assert.True(t, c.Has("Ape Escape (USA)"))
	assert.False(t, c.Has("Ape Escape (Europe)"))
	assert.Len(t, c.Set(), 4)
}

func TestParseKeepsOrder(t *testing.T) {
	names := []string{"Z (USA)", "A (USA)", "M (Japan)", "B (Europe)"}
	doc := strings.Builder{}
	doc.WriteString("<datafile>")
	for _, n := range names {
		doc.WriteString(`<game name="` + n + `"/>`)
	}
	doc.WriteString("</datafile>")

	c, err := Parse("order.dat", strings.NewReader(doc.String()))
	require.NoError(t, err)
	require.Equal(t, len(names), c.Len())
	for i, n := range names {
		assert.Equal(t, model.Title(n), c.Titles()[i])
	}
}

func TestParseErrors(t *testing.T) {
	type testCase struct {
		input string
		msg   string
	}

	testCases := []testCase{
		{
			input: `<datafile><game name="A (USA)"/><game name="A (USA)"/></datafile>`,
			msg:   "duplicate title 'A (USA)'",
		},
		{
			input: `<datafile><game name="A (USA)"></datafile>`,
			msg:   "malformed game record",
		},
		{
			input: `<datafile><game name="A (USA)"/><</datafile>`,
			msg:   "malformed XML",
		},
		{
			input: `<datafile><header><name>x</name></header></datafile>`,
			msg:   "catalog contains no titles",
		},
		{
			input: `<datafile><game><category>Games</category></game></datafile>`,
			msg:   "game record without name",
		},
		{
			input: `<catalog><game name="A (USA)"/></catalog>`,
			msg:   "unexpected root element <catalog>",
		},
		{
			input: ``,
			msg:   "no <datafile> element",
		},
	}

	for i, tc := range testCases {
		_, err := Parse("bad.dat", strings.NewReader(tc.input))
		var perr *ParseError
		if assert.True(t, errors.As(err, &perr), "Test %d failed", i) {
			assert.Equal(t, tc.msg, perr.Msg, "Test %d failed", i)
			assert.Equal(t, "bad.dat", perr.File, "Test %d failed", i)
		}
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "psx.dat")
	require.NoError(t, os.WriteFile(path, []byte(sampleDat), 0644))
	broken := filepath.Join(dir, "broken.dat")
	require.NoError(t, os.WriteFile(broken, []byte("<datafile></datafile>"), 0644))

	cfg := config.Default()
	cfg.Root = dir
	cfg.Access.Retries = 0
	m, err := storage.NewManager(cfg)
	require.NoError(t, err)

	c, err := Load(context.Background(), m, path)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Len())

	_, err = Load(context.Background(), m, filepath.Join(dir, "absent.dat"))
	var fsErr *storage.FilesystemError
	assert.True(t, errors.As(err, &fsErr))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(context.Background(), m, broken)
	var perr *ParseError
	if assert.True(t, errors.As(err, &perr)) {
		assert.Equal(t, "broken.dat", perr.File)
	}
	assert.False(t, errors.As(err, &fsErr))
}
