package normalisers

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// ErrNoNormaliser indicates no registered normaliser accepts the MIME type.
var ErrNoNormaliser = errors.New("no normaliser for MIME type")

// Registry dispatches raw content to the highest-priority normaliser whose
// MIME types match. Ties keep registration order.
type Registry struct {
	mu          sync.RWMutex
	normalisers []driven.Normaliser
}

// NewRegistry creates a registry holding the given normalisers.
func NewRegistry(normalisers ...driven.Normaliser) *Registry {
	r := &Registry{}
	for _, n := range normalisers {
		r.Register(n)
	}
	return r
}

// Register adds a normaliser to the registry.
func (r *Registry) Register(normaliser driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.normalisers = append(r.normalisers, normaliser)
	sort.SliceStable(r.normalisers, func(i, j int) bool {
		return r.normalisers[i].Priority() > r.normalisers[j].Priority()
	})
}

// Normalise transforms raw content using the best matching normaliser.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawContent) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	mimeType := baseMIMEType(raw.MIMEType)

	r.mu.RLock()
	var match driven.Normaliser
	for _, n := range r.normalisers {
		if accepts(n, mimeType) {
			match = n
			break
		}
	}
	r.mu.RUnlock()

	if match == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoNormaliser, raw.MIMEType)
	}
	return match.Normalise(ctx, raw)
}

// SupportedMIMETypes returns all MIME types that can be normalised.
func (r *Registry) SupportedMIMETypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []string
	for _, n := range r.normalisers {
		for _, m := range n.SupportedMIMETypes() {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out
}

// accepts reports whether n handles mimeType, either exactly or through
// a "family/*" entry.
func accepts(n driven.Normaliser, mimeType string) bool {
	for _, m := range n.SupportedMIMETypes() {
		if m == mimeType {
			return true
		}
		if family, ok := strings.CutSuffix(m, "/*"); ok && strings.HasPrefix(mimeType, family+"/") {
			return true
		}
	}
	return false
}

// baseMIMEType strips parameters such as charset and lower-cases the type.
func baseMIMEType(contentType string) string {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		return mediaType
	}
	base, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(base))
}
