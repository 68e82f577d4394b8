package server

import (
	"net/http"
	"os"
	"path"
)

// clientFiles serves the client bundle from a directory. Directories are
// only visible when they carry an index.html, so nothing is ever listed.
type clientFiles struct {
	root http.FileSystem
}

func newClientFiles(dir string) *clientFiles {
	return &clientFiles{root: http.Dir(dir)}
}

func (fs *clientFiles) Open(name string) (http.File, error) {
	f, err := fs.root.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !info.IsDir() {
		return f, nil
	}

	index, err := fs.root.Open(path.Join(name, "index.html"))
	if err != nil {
		f.Close()
		return nil, os.ErrNotExist
	}
	index.Close()
	return f, nil
}

// exists reports whether urlPath resolves to something servable
func (fs *clientFiles) exists(urlPath string) bool {
	f, err := fs.Open(path.Clean("/" + urlPath))
	if err != nil {
		return false
	}
	f.Close()
	return true
}
