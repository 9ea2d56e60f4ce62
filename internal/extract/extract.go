// Package extract turns uploaded documents into plain text.
package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"docdigest/internal/domain"
)

// ErrUnsupportedFormat is returned for extensions outside the allow-list or
// without a registered extractor.
var ErrUnsupportedFormat = errors.New("extract: unsupported document format")

// DefaultAllowedExtensions are the formats accepted when none are configured.
var DefaultAllowedExtensions = []string{"pdf", "docx", "txt"}

// Registry maps lower-case file extensions to extractors and enforces the
// configured allow-list.
type Registry struct {
	extractors map[string]domain.Extractor
	allowed    map[string]struct{}
}

// NewRegistry registers the built-in extractors and restricts them to the
// allowed extensions (DefaultAllowedExtensions when empty).
func NewRegistry(allowed []string) *Registry {
	if len(allowed) == 0 {
		allowed = DefaultAllowedExtensions
	}
	r := &Registry{
		extractors: make(map[string]domain.Extractor),
		allowed:    make(map[string]struct{}, len(allowed)),
	}
	for _, ext := range allowed {
		r.allowed[normalizeExt(ext)] = struct{}{}
	}
	for _, e := range []domain.Extractor{&PDF{}, &DOCX{}, &Text{}} {
		for _, f := range e.SupportedFormats() {
			r.extractors[f] = e
		}
	}
	return r
}

// Register adds or replaces the extractor for format.
func (r *Registry) Register(format string, e domain.Extractor) {
	r.extractors[normalizeExt(format)] = e
}

// Allowed reports whether name carries an allowed extension.
func (r *Registry) Allowed(name string) bool {
	ext := Ext(name)
	if ext == "" {
		return false
	}
	_, ok := r.allowed[ext]
	return ok
}

// Get returns the extractor for the extension of name.
func (r *Registry) Get(name string) (domain.Extractor, error) {
	if !r.Allowed(name) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(name))
	}
	e, ok := r.extractors[Ext(name)]
	if !ok {
		return nil, fmt.Errorf("%w: no extractor for %q", ErrUnsupportedFormat, Ext(name))
	}
	return e, nil
}

// Extract dispatches to the extractor registered for path.
func (r *Registry) Extract(ctx context.Context, path string) (string, error) {
	e, err := r.Get(path)
	if err != nil {
		return "", err
	}
	return e.Extract(ctx, path)
}

// Ext returns the lower-cased extension of name without the dot.
func Ext(name string) string {
	return normalizeExt(filepath.Ext(name))
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SafeName reduces an uploaded file name to a safe base name: directory
// parts are dropped, runs of other characters become underscores and
// leading dots are removed.
func SafeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = unsafeName.ReplaceAllString(strings.TrimSpace(name), "_")
	name = strings.TrimLeft(name, "._")
	if name == "" {
		return "upload"
	}
	return name
}
