package util

import (
	"bufio"
	"bytes"
	"io"
)

// Count counts the non blank lines of r
func Count(r io.Reader) (int64, error) {
	var n int64
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if len(bytes.TrimSpace(scanner.Bytes())) > 0 {
			n++
		}
	}
	if err := scanner.Err(); err != nil {
		return n, err
	}

	return n, nil
}
