package asset

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

// sniffLen is enough of the header for every matcher in filetype.
const sniffLen = 262

// sniff returns the content type of data as a lower-case extension
// ("png", "mp3", ...). The path's extension is used when the content is
// not recognised.
func sniff(head []byte, path string) string {
	if t, err := filetype.Match(head); err == nil && t != filetype.Unknown {
		return t.Extension
	}
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// sniffFile reads the head of path and sniffs it.
func sniffFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}
	return sniff(head[:n], path), nil
}
