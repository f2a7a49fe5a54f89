package server

import (
	"embed"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"
)

//go:embed static
var staticFiles embed.FS

// staticPrefix is the URL prefix of the embedded assets.
const staticPrefix = "/static/"

// bootTime stands in for the modification time of embedded files.
var bootTime = time.Now()

// staticRelPath returns the asset path for a request path, rejecting
// traversal and absolute-path tricks.
func staticRelPath(urlPath string) (string, bool) {
	rel, ok := strings.CutPrefix(urlPath, staticPrefix)
	if !ok || rel == "" {
		return "", false
	}
	if strings.IndexByte(rel, 0) != -1 || strings.Contains(rel, "\\") || strings.HasPrefix(rel, "/") {
		return "", false
	}
	for _, seg := range strings.Split(rel, "/") {
		if seg == "." || seg == ".." {
			return "", false
		}
	}
	clean := path.Clean(rel)
	if clean == "." || strings.HasPrefix(clean, "../") {
		return "", false
	}
	return "static/" + clean, true
}

func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request) {
	rel, ok := staticRelPath(r.URL.Path)
	if !ok {
		s.notFound(w, r)
		return
	}
	f, err := staticFiles.Open(rel)
	if err != nil {
		s.notFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		s.notFound(w, r)
		return
	}

	if s.config.Server.Dev {
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	} else {
		w.Header().Set("Cache-Control", "public, max-age=3600, must-revalidate")
	}
	w.Header().Set("X-Content-Type-Options", "nosniff")

	rs, ok := f.(io.ReadSeeker)
	if !ok {
		s.notFound(w, r)
		return
	}
	http.ServeContent(w, r, info.Name(), bootTime, rs)
}

// StaticAssets lists the embedded asset URLs.
func StaticAssets() []string {
	var out []string
	_ = fs.WalkDir(staticFiles, "static", func(p string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			out = append(out, "/"+p)
		}
		return nil
	})
	return out
}
