package middleware

import (
	"io"
	"net/http"

	"github.com/andybalholm/brotli"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Compress returns chi's compressor with a brotli encoder registered ahead
// of gzip and deflate
func Compress(level int) func(next http.Handler) http.Handler {
	compressor := chimiddleware.NewCompressor(level, "application/json", "application/x-yaml", "text/plain")
	compressor.SetEncoder("br", func(w io.Writer, level int) io.Writer {
		return brotli.NewWriterLevel(w, level)
	})
	return compressor.Handler
}
