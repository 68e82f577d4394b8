package server

import "github.com/gin-gonic/gin"

// sizeWriter counts the body bytes written through a gin.ResponseWriter.
// Status stays with the wrapped writer, which already tracks aborts.
type sizeWriter struct {
	gin.ResponseWriter
	size int
}

func newSizeWriter(w gin.ResponseWriter) *sizeWriter {
	return &sizeWriter{ResponseWriter: w}
}

func (w *sizeWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

func (w *sizeWriter) WriteString(s string) (int, error) {
	n, err := w.ResponseWriter.WriteString(s)
	w.size += n
	return n, err
}

// Size returns the number of body bytes written so far
func (w *sizeWriter) Size() int {
	return w.size
}
