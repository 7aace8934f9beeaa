package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBaseList = `! model
  pc105           Generic 105-key PC
  pc104           Generic 104-key PC

! layout
  us              English (US)
  fi              Finnish
  de              German
  orphan
 notindented      Ignored

! variant
  chr             us: Cherokee
`

func TestParseLayouts_ReadsOnlyLayoutSection(t *testing.T) {
	layouts, err := ParseLayouts(strings.NewReader(sampleBaseList))
	require.NoError(t, err)

	assert.Equal(t, []Layout{
		{Code: "us", Label: "English (US)"},
		{Code: "fi", Label: "Finnish"},
		{Code: "de", Label: "German"},
	}, layouts)
}

func TestParseLayouts_NoSection(t *testing.T) {
	layouts, err := ParseLayouts(strings.NewReader("! model\n  pc105  Generic\n"))
	require.NoError(t, err)
	assert.Empty(t, layouts)
}

func TestLoadLayouts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "base.lst")
	require.NoError(t, os.WriteFile(path, []byte(sampleBaseList), 0644))

	layouts, err := LoadLayouts(path)
	require.NoError(t, err)
	require.Len(t, layouts, 3)
	assert.Equal(t, "us", layouts[0].Code)
	assert.Equal(t, "fi", layouts[1].Code)
	assert.Equal(t, "de", layouts[2].Code)

	_, err = LoadLayouts(filepath.Join(t.TempDir(), "missing.lst"))
	assert.Error(t, err)
}

func TestLayoutsFromCodes(t *testing.T) {
	assert.Equal(t, []Layout{{Code: "us", Label: "us"}, {Code: "fi", Label: "fi"}}, LayoutsFromCodes([]string{"us", "fi"}))
}
