package dataset

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fi-dashboard/internal/domain"
)

const unifiedHeader = "record_type,indicator,indicator_code,observation_date,value_numeric,confidence\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ColumnsAndRowsMatchFile(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantCols []string
		wantRows int
	}{
		{
			name:     "unified with rows",
			content:  unifiedHeader + "observation,Account Ownership,ACC_OWNERSHIP,2021-06-01,46.0,high\nevent,,NA,2020-01-01,,medium\n",
			wantCols: domain.RequiredColumns,
			wantRows: 2,
		},
		{
			name:     "header only",
			content:  unifiedHeader,
			wantCols: domain.RequiredColumns,
			wantRows: 0,
		},
		{
			name:     "extra columns kept",
			content:  "a,b,c\n1,2,3\n4,5,6\n7,8,9\n",
			wantCols: []string{"a", "b", "c"},
			wantRows: 3,
		},
		{
			name:     "blank lines skipped and no trailing newline",
			content:  "a,b\n1,2\n\n3,4",
			wantCols: []string{"a", "b"},
			wantRows: 2,
		},
		{
			name:     "BOM stripped",
			content:  "\ufeffa,b\n1,2\n",
			wantCols: []string{"a", "b"},
			wantRows: 1,
		},
		{
			name:     "header cells kept verbatim",
			content:  "\ufeff a , b\n1,2\n",
			wantCols: []string{" a ", " b"},
			wantRows: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "data.csv", tt.content)

			ds, err := Load(path)
			require.NoError(t, err)

			assert.Equal(t, tt.wantCols, ds.Columns)
			assert.Equal(t, tt.wantRows, ds.Len())
			assert.True(t, filepath.IsAbs(ds.Source))
			assert.Len(t, ds.Fingerprint, 64)
		})
	}
}

func TestLoad_RowLinesFollowSourceFile(t *testing.T) {
	path := writeFile(t, "data.csv", "a,b\n1,2\n\n3,\"multi\nline\"\n5,6\n")

	ds, err := Load(path)
	require.NoError(t, err)

	lines := make([]int, 0, ds.Len())
	for _, r := range ds.Rows {
		lines = append(lines, r.Line)
	}
	assert.Equal(t, []int{2, 4, 6}, lines)
	assert.Equal(t, "multi\nline", ds.Rows[1].Values[1])
}

func TestLoad_MissingPathIsNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "missing.csv")

	_, err := Load(path)
	require.Error(t, err)

	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, path, notFound.Path)
	assert.Contains(t, err.Error(), "dataset not found at")
}

func TestLoad_UnparsableFileIsLoadError(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		wantIs  error
	}{
		{name: "ragged row", content: []byte("a,b\n1,2\n3\n"), wantIs: csv.ErrFieldCount},
		{name: "bare quote", content: []byte("a,b\n1,x\"y\n"), wantIs: csv.ErrBareQuote},
		{name: "invalid utf-8", content: []byte("a,b\n\xff\xfe,1\n"), wantIs: errInvalidEncoding},
		{name: "empty file", content: []byte(""), wantIs: errEmptyFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.csv")
			require.NoError(t, os.WriteFile(path, tt.content, 0o600))

			_, err := Load(path)
			require.Error(t, err)

			var loadErr *domain.LoadError
			require.ErrorAs(t, err, &loadErr)
			assert.Equal(t, path, loadErr.Path)
			assert.ErrorIs(t, err, tt.wantIs)
		})
	}
}

func TestLoad_DuplicateHeaderIsLoadError(t *testing.T) {
	path := writeFile(t, "dup.csv", "a,b,a\n1,2,3\n")

	_, err := Load(path)

	var loadErr *domain.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), `duplicate column "a"`)
}

func TestLoad_DirectoryIsLoadError(t *testing.T) {
	_, err := Load(t.TempDir())

	var loadErr *domain.LoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestLoad_RelativePathResolved(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rel.csv"), []byte("a\n1\n"), 0o600))
	t.Chdir(dir)

	ds, err := Load("rel.csv")
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(filepath.Join(dir, "rel.csv"))
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(ds.Source)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoader_StampsLoadedAt(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	path := writeFile(t, "a.csv", "a\n1\n")

	ds, err := Loader{Now: func() time.Time { return fixed }}.Load(path)
	require.NoError(t, err)
	assert.Equal(t, fixed, ds.LoadedAt)
}

func TestLoad_RepeatedLoadsAreEquivalent(t *testing.T) {
	path := writeFile(t, "a.csv", unifiedHeader+"observation,X,X1,2020-01-01,1,high\n")

	first, err := Load(path)
	require.NoError(t, err)
	second, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, first.Columns, second.Columns)
	assert.Equal(t, first.Rows, second.Rows)
	assert.Equal(t, first.Fingerprint, second.Fingerprint)
}

func TestLoad_EmptyPath(t *testing.T) {
	_, err := Load("  ")

	var loadErr *domain.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.False(t, errors.Is(err, os.ErrNotExist))
}
