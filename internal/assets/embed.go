// Package assets serves the notes web UI. The public/ tree is embedded via
// go:embed; a directory on disk can be served in its place.
package assets

import (
	"embed"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path"
	"strings"
)

//go:embed all:public
var publicFS embed.FS

func init() {
	// Register MIME types that may not be in the default database.
	// Errors are ignored: these only fail if extension format is invalid,
	// and our literals are known-good.
	_ = mime.AddExtensionType(".woff2", "font/woff2")
	_ = mime.AddExtensionType(".map", "application/json")
	_ = mime.AddExtensionType(".webmanifest", "application/manifest+json")
}

// mimeFromExt returns the MIME type for a file extension.
// Falls back to the Go standard library's MIME type database,
// then to "application/octet-stream" if unknown.
func mimeFromExt(ext string) string {
	switch ext {
	case ".js", ".mjs":
		return "application/javascript"
	case ".css":
		return "text/css; charset=utf-8"
	case ".html":
		return "text/html; charset=utf-8"
	case ".woff2":
		return "font/woff2"
	case ".svg":
		return "image/svg+xml"
	case ".map":
		return "application/json"
	default:
		if ct := mime.TypeByExtension(ext); ct != "" {
			return ct
		}
		return "application/octet-stream"
	}
}

// Embedded returns the embedded public/ tree rooted at its top.
func Embedded() fs.FS {
	sub, err := fs.Sub(publicFS, "public")
	if err != nil {
		panic("assets: failed to create sub filesystem: " + err.Error())
	}
	return sub
}

// FileServer returns an http.Handler serving static files. Files come from dir
// when it is non-empty, otherwise from the embedded public/ tree.
// Missing files get 404; "/" serves index.html.
func FileServer(dir string) http.Handler {
	var root fs.FS
	if dir != "" {
		root = os.DirFS(dir)
	} else {
		root = Embedded()
	}
	fileServer := http.FileServer(http.FS(root))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Set content type explicitly for known extensions
		ext := strings.ToLower(path.Ext(r.URL.Path))
		if ext != "" {
			w.Header().Set("Content-Type", mimeFromExt(ext))
		}

		// The UI is small and unversioned, so clients always revalidate.
		w.Header().Set("Cache-Control", "no-cache")

		fileServer.ServeHTTP(w, r)
	})
}
