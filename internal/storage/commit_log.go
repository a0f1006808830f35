package storage

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Note: journal access is intended to be single-writer during normal
// operation, with readers only during startup replay. These helpers do
// not coordinate concurrent writers/readers; add external
// synchronization if used outside that pattern.

// Write appends bytes to the given open file handle. Caller owns file lifecycle.
func Write(file *os.File, data []byte) error {
	writer := bufio.NewWriter(file)
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// Read reads length bytes starting from the given offset on the provided
// file handle. A record cut short by a crash comes back truncated with
// no error; callers treat short data as the corruption boundary.
func Read(file *os.File, offset int64, length int) ([]byte, error) {
	buf := make([]byte, length)
	n, err := file.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read at %d: %w", offset, err)
	}
	return buf[:n], nil
}

// Truncate cuts the file back to size bytes. On an O_APPEND handle the
// next write lands at the new end.
func Truncate(file *os.File, size int64) error {
	if err := file.Truncate(size); err != nil {
		return fmt.Errorf("truncate to %d: %w", size, err)
	}
	return nil
}
