package file

import (
	"context"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"
)

// File describes a stored object.
type File struct {
	Filename     string
	Size         int64
	MIMEType     string
	Extension    string
	AbsolutePath string // empty for remote backends
	RelativePath string
}

// Entry represents a file or directory entry.
type Entry struct {
	Name  string
	Path  string
	IsDir bool
	Size  int64
}

// Storage keeps import sources, exports and failure reports. Paths are
// slash-separated and relative to the backend root.
type Storage interface {
	// Put writes r to path, replacing any existing object.
	Put(ctx context.Context, path string, r io.Reader) (*File, error)
	// Open returns a reader for path. The caller closes it.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	// Delete removes a single file.
	Delete(ctx context.Context, path string) error
	// Exists checks if a file or directory exists.
	Exists(ctx context.Context, path string) bool
	// List returns all entries in a directory (non-recursive).
	List(ctx context.Context, dir string) ([]Entry, error)
	// URL returns a location a user can open the file from.
	URL(path string) string
}

var extraMIMETypes = map[string]string{
	".txt":  "text/plain; charset=utf-8",
	".json": "application/json",
	".png":  "image/png",
	".zip":  "application/zip",
}

// ContentType guesses the MIME type from the extension of name.
func ContentType(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if t, ok := extraMIMETypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

// SanitizeFilename removes any path components and dangerous characters from a filename.
// Returns "unnamed" for empty or special directory references.
//
// Example:
//
//	safe := file.SanitizeFilename("../../../etc/passwd") // Returns "passwd"
//	safe = file.SanitizeFilename("C:\\Windows\\file.txt") // Returns "file.txt"
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}

	return filename
}

// Sibling returns a path in the same directory as p with the given name.
func Sibling(p, name string) string {
	dir := path.Dir(filepath.ToSlash(p))
	if dir == "." {
		return name
	}
	return path.Join(dir, name)
}

// cleanKey normalizes an object key and rejects traversal.
func cleanKey(p string) (string, error) {
	p = strings.TrimPrefix(filepath.ToSlash(p), "/")
	for _, part := range strings.Split(p, "/") {
		if part == ".." {
			return "", ErrInvalidPath
		}
	}
	return p, nil
}

func newFile(rel string, size int64) *File {
	return &File{
		Filename:     path.Base(rel),
		Size:         size,
		MIMEType:     ContentType(rel),
		Extension:    path.Ext(rel),
		RelativePath: rel,
	}
}
