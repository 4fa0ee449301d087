package asset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/inamate/trackexport/internal/typeid"
)

const maxUploadSize = 256 << 20 // 256MB

// glbMagic opens every binary glTF file.
var glbMagic = []byte("glTF")

// UploadResponse is returned from the upload endpoint.
type UploadResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// Handler stores uploaded track models and serves models and exported data.
type Handler struct {
	modelDir string // directory holding <name>.glb files
	dataDir  string // directory holding exported <name>.json files
}

// NewHandler creates a handler rooted at the given directories.
func NewHandler(modelDir, dataDir string) *Handler {
	for _, dir := range []string{modelDir, dataDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			slog.Error("create asset dir", "error", err, "dir", dir)
		}
	}
	return &Handler{modelDir: modelDir, dataDir: dataDir}
}

// Upload handles POST /api/models?name=<track> with a raw GLB body.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if !validName(name) {
		http.Error(w, "invalid or missing name", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	// Validate the header before writing anything.
	head := make([]byte, len(glbMagic))
	if _, err := io.ReadFull(r.Body, head); err != nil || !bytes.Equal(head, glbMagic) {
		http.Error(w, "body is not a binary glTF (.glb) file", http.StatusBadRequest)
		return
	}

	filePath := filepath.Join(h.modelDir, name+".glb")
	tmpPath := filePath + ".part"
	size, err := copyFile(tmpPath, io.MultiReader(bytes.NewReader(head), r.Body))
	if err != nil {
		os.Remove(tmpPath)
		slog.Error("save model", "error", err, "name", name)
		http.Error(w, "failed to save file", http.StatusInternalServerError)
		return
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		os.Remove(tmpPath)
		slog.Error("rename model", "error", err, "name", name)
		http.Error(w, "failed to save file", http.StatusInternalServerError)
		return
	}

	assetID := typeid.NewAssetID()
	slog.Info("model uploaded", "id", assetID, "name", name, "size", size)

	resp := UploadResponse{
		ID:   assetID,
		Name: name,
		URL:  fmt.Sprintf("/models/tracks/%s.glb", name),
		Size: size,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// ServeModels returns an http.Handler for /models/tracks/.
func (h *Handler) ServeModels() http.Handler {
	return serveDir("/models/tracks/", h.modelDir)
}

// ServeData returns an http.Handler for /data/.
func (h *Handler) ServeData() http.Handler {
	return serveDir("/data/", h.dataDir)
}

// serveDir serves files that are overwritten on every export, so clients
// must revalidate.
func serveDir(prefix, dir string) http.Handler {
	fs := http.FileServer(http.Dir(dir))
	return http.StripPrefix(prefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		fs.ServeHTTP(w, r)
	}))
}

// ErrInvalidName is returned for model names that could escape the model
// directory.
var ErrInvalidName = errors.New("invalid model name")

func validName(name string) bool {
	return name != "" && !strings.ContainsAny(name, `/\`) && !strings.HasPrefix(name, ".")
}

// Delete removes a track model from disk.
func (h *Handler) Delete(name string) error {
	if !validName(name) {
		return ErrInvalidName
	}
	path := filepath.Join(h.modelDir, name+".glb")
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete model %q: %w", name, err)
	}
	return nil
}

// copyFile copies src reader to a file at dst path.
func copyFile(dst string, src io.Reader) (int64, error) {
	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, src)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return n, err
}
