// Package dataset loads, validates, and partitions the dashboard's CSV inputs.
package dataset

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"fi-dashboard/internal/domain"
)

var (
	errEmptyFile       = errors.New("file is empty: a header row is required")
	errInvalidEncoding = errors.New("file is not valid UTF-8")
	utf8BOM            = []byte{0xEF, 0xBB, 0xBF}
)

// Loader reads comma-delimited files with a header row from the local
// filesystem. The zero value is ready to use.
type Loader struct {
	// Now stamps LoadedAt; defaults to time.Now.
	Now func() time.Time
}

// Load reads path into memory. It fails with *domain.NotFoundError when the
// path does not exist and with *domain.LoadError when the file cannot be
// read or parsed.
func (l Loader) Load(path string) (*domain.Dataset, error) {
	abs, err := ResolvePath(path)
	if err != nil {
		return nil, domain.ErrLoad(path, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound(abs, "dataset not found at: %s", abs)
		}
		return nil, domain.ErrLoad(abs, err)
	}
	if info.IsDir() {
		return nil, domain.ErrLoad(abs, fmt.Errorf("%s is a directory", abs))
	}

	data, err := os.ReadFile(abs) //nolint:gosec // path is operator-configured
	if err != nil {
		return nil, domain.ErrLoad(abs, err)
	}

	ds, err := parse(data)
	if err != nil {
		return nil, domain.ErrLoad(abs, err)
	}

	sum := sha256.Sum256(data)
	ds.Source = abs
	ds.Fingerprint = hex.EncodeToString(sum[:])
	ds.LoadedAt = l.now()
	return ds, nil
}

func (l Loader) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

// Load reads path with a zero-value Loader.
func Load(path string) (*domain.Dataset, error) {
	return Loader{}.Load(path)
}

// ResolvePath returns the cleaned absolute form of path.
func ResolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("empty path")
	}
	return filepath.Abs(path)
}

// parse decodes CSV bytes. Every row must have as many fields as the header.
func parse(data []byte) (*domain.Dataset, error) {
	if !utf8.Valid(data) {
		return nil, errInvalidEncoding
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = 0

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, errEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	// Header cells are kept exactly as written; " indicator" is not "indicator".
	for i, name := range header {
		if seen[name] {
			return nil, fmt.Errorf("duplicate column %q in header", name)
		}
		seen[name] = true
		columns[i] = name
	}

	rows := make([]domain.Row, 0)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := r.FieldPos(0)
		rows = append(rows, domain.Row{Line: line, Values: rec})
	}

	return &domain.Dataset{Columns: columns, Rows: rows}, nil
}
