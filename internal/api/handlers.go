package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dotandev/planfiler/internal/filer"
	"github.com/dotandev/planfiler/internal/parser"
	"github.com/dotandev/planfiler/internal/plan"
	"github.com/dotandev/planfiler/internal/plandoc"
)

// handleFile accepts a plan document upload, extracts the target section,
// and files one issue per entry. The response is the filing report.
func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	data, filename, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	marker := r.FormValue("marker")
	if marker == "" {
		marker = s.cfg.Marker
	}
	label := r.FormValue("label")
	if label == "" {
		label = s.cfg.Label
	}
	dryRun := s.cfg.DryRun || r.FormValue("dry_run") == "true"

	text, err := parser.PlanText(data, filename)
	if err != nil {
		jsonError(w, "failed to read plan document: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	f := filer.New(s.tracker, label, dryRun, io.Discard, s.log)
	report, err := f.Run(r.Context(), text, marker)
	if err != nil {
		if errors.Is(err, plan.ErrSectionNotFound) {
			jsonError(w, fmt.Sprintf("section %q not found in %s", marker, filename), http.StatusUnprocessableEntity)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// handleOutline parses an uploaded plan document and returns its section
// structure with per-section entry counts.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	data, filename, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	p, err := parser.ForFile(filename)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	tree, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		jsonError(w, "failed to parse plan document: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"title":    tree.Title,
		"sections": plandoc.Outline(tree),
	})
}

// readUpload pulls the "file" field out of a multipart form, enforcing the
// upload size limit and the supported-format check. It writes the error
// response itself when it reports false.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (data []byte, filename string, ok bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return nil, "", false
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return nil, "", false
	}
	defer file.Close()

	filename = sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return nil, "", false
	}

	data, err = readLimited(file, s.cfg.MaxUploadBytes)
	if err != nil {
		jsonError(w, err.Error(), http.StatusRequestEntityTooLarge)
		return nil, "", false
	}

	return data, filename, true
}

func readLimited(file multipart.File, max int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(file, max+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file")
	}
	if int64(len(data)) > max {
		return nil, fmt.Errorf("file exceeds max size (%d bytes)", max)
	}
	return data, nil
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
