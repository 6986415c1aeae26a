package catalog

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// writeCatalogue writes content to a temp CSV file and returns its path.
func writeCatalogue(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stars.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_ReturnsRowsInFileOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeCatalogue(t, `name,ra_deg,dec_deg,mag
Sirius,101.28,-16.72,-1.46
Vega,279.23,38.78,0.03
Polaris,37.95,89.26,1.98
`)

	// --- Act ---
	stars, err := Load(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	want := []Star{
		{Name: "Sirius", RADeg: 101.28, DecDeg: -16.72, Mag: -1.46},
		{Name: "Vega", RADeg: 279.23, DecDeg: 38.78, Mag: 0.03},
		{Name: "Polaris", RADeg: 37.95, DecDeg: 89.26, Mag: 1.98},
	}
	require.Empty(t, cmp.Diff(want, stars))
}

func TestLoad_IgnoresExtraColumnsAndOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Required columns shuffled, plus two columns the loader does not know.
	path := writeCatalogue(t, `constellation,mag,name,dec_deg,ra_deg,notes
Lyra,0.03,Vega,38.78,279.23,brightest in Lyra
`)

	// --- Act ---
	stars, err := Load(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, stars, 1)
	require.Equal(t, "Vega", stars[0].Name)
	require.InDelta(t, 279.23, stars[0].RADeg, 1e-9)
	require.InDelta(t, 38.78, stars[0].DecDeg, 1e-9)
	require.InDelta(t, 0.03, stars[0].Mag, 1e-9)
}

func TestLoad_HeaderOnlyYieldsNoStars(t *testing.T) {
	t.Parallel()

	path := writeCatalogue(t, "name,ra_deg,dec_deg,mag\n")

	stars, err := Load(context.Background(), path)

	require.NoError(t, err)
	require.Empty(t, stars)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "no-such.csv"))

	require.Error(t, err)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoad_MissingRequiredColumn(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeCatalogue(t, `name,ra_deg,dec_deg
Vega,279.23,38.78
`)

	// --- Act ---
	stars, err := Load(context.Background(), path)

	// --- Assert ---
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	require.Equal(t, "mag", schemaErr.Column)
	require.Nil(t, stars, "a failed load must not return a partial star list")
}

func TestLoad_BadFloatAbortsWholeLoad(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The first row is fine; the second row's ra_deg is not a float. The
	// loader must fail and discard the good row too.
	path := writeCatalogue(t, `name,ra_deg,dec_deg,mag
Sirius,101.28,-16.72,-1.46
Mystery,abc,12.0,3.0
`)

	// --- Act ---
	stars, err := Load(context.Background(), path)

	// --- Assert ---
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, 3, parseErr.Line, "line numbers are 1-based and include the header")
	require.Equal(t, "ra_deg", parseErr.Field)
	require.Equal(t, "abc", parseErr.Value)
	require.Nil(t, stars, "a failed load must not return a partial star list")
	require.Contains(t, err.Error(), path)
}

func TestLoad_ErrorIdentifiesField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		row   string
		field string
	}{
		{"bad ra", "Vega,x,38.78,0.03", "ra_deg"},
		{"bad dec", "Vega,279.23,x,0.03", "dec_deg"},
		{"bad mag", "Vega,279.23,38.78,x", "mag"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeCatalogue(t, "name,ra_deg,dec_deg,mag\n"+tt.row+"\n")

			_, err := Load(context.Background(), path)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			require.Equal(t, tt.field, parseErr.Field)
		})
	}
}

func TestLoad_EmptyFileIsSchemaError(t *testing.T) {
	t.Parallel()

	path := writeCatalogue(t, "")

	_, err := Load(context.Background(), path)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestParseError_Unwraps(t *testing.T) {
	t.Parallel()

	path := writeCatalogue(t, "name,ra_deg,dec_deg,mag\nVega,nope,38.78,0.03\n")

	_, err := Load(context.Background(), path)

	var numErr *strconv.NumError
	require.ErrorAs(t, err, &numErr)
}
