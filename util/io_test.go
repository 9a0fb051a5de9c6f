package util

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type CVSSimpleTest struct {
	Name   string  `csv:"name"`
	Age    int     `csv:"age"`
	Height float32 `csv:"height"`
	Gender bool    `csv:"gender"`
}

func TestCSVSimple(t *testing.T) {
	rows, err := ReadCSVFromFile[CVSSimpleTest]("./testdata/simple.csv", ';')
	require.NoError(t, err)

	i := 0
	for row := range rows {
		switch i {
		case 0:
			assert.Equal(t, CVSSimpleTest{"John", 30, 170, false}, row)
		case 1:
			assert.Equal(t, CVSSimpleTest{"Jane", 25, 160, true}, row)
		case 2:
			assert.Equal(t, CVSSimpleTest{"Joe", 35, 175, true}, row)
		default:
			t.Errorf("too many rows")
		}
		i++
	}
	assert.Equal(t, 3, i)
}

func TestCSVError(t *testing.T) {
	rows, err := ReadCSVFromFile[CVSSimpleTest]("./testdata/error.csv", ';')
	require.NoError(t, err)

	i := 0
	for row := range rows {
		switch i {
		case 0:
			assert.Equal(t, CVSSimpleTest{"John", 30, 170.5, false}, row)
		case 1:
			assert.Equal(t, CVSSimpleTest{"Jane", 25, 160.9, true}, row)
		case 2:
			assert.Equal(t, CVSSimpleTest{"'Joe", 35, 175.0, true}, row)
		case 3:
			assert.Equal(t, CVSSimpleTest{"", 28, 0, false}, row)
		default:
			t.Errorf("too many rows: %v", row)
		}
		i++
	}
	assert.Equal(t, 4, i)
}

func TestCSVMissingFile(t *testing.T) {
	_, err := ReadCSVFromFile[CVSSimpleTest]("./testdata/missing.csv", ';')
	assert.Error(t, err)
}

func TestJSONRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "meta.json")
	meta := map[string]int{"nodes": 3, "edges": 2}
	require.NoError(t, WriteJSONToFile(meta, file))

	read, err := ReadJSONFromFile[map[string]int](file)
	require.NoError(t, err)
	assert.Equal(t, meta, read)
}
