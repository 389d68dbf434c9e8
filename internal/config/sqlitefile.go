package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/runnerr0/histscope/internal/apperr"
)

// sqliteHeader is the 16-byte magic string at offset 0 of every SQLite 3 file.
var sqliteHeader = []byte("SQLite format 3\x00")

// ValidateSQLiteFile checks that path is an existing regular file whose
// first 16 bytes are the SQLite 3 signature.
func ValidateSQLiteFile(path string) error {
	if path == "" {
		return apperr.Invalidf("database path is empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return apperr.Invalidf("file does not exist: %s", path)
		}
		return apperr.Internal(err, "stat database file")
	}
	if !info.Mode().IsRegular() {
		return apperr.Invalidf("path is not a file: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return apperr.Internal(err, "open database file")
	}
	defer f.Close()

	head := make([]byte, len(sqliteHeader))
	if _, err := io.ReadFull(f, head); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return apperr.Invalidf("file is too small to be a SQLite database: %s", path)
		}
		return apperr.Internal(err, "read database header")
	}

	if !bytes.Equal(head, sqliteHeader) {
		return apperr.Invalidf("not a valid SQLite database file: %s", path)
	}
	return nil
}
