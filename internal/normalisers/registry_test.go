package normalisers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
)

// stubNormaliser records that it was chosen by titling the record with its name.
type stubNormaliser struct {
	name     string
	types    []string
	priority int
}

func (s *stubNormaliser) SupportedMIMETypes() []string { return s.types }
func (s *stubNormaliser) Priority() int                { return s.priority }
func (s *stubNormaliser) Normalise(_ context.Context, raw *domain.RawContent) (*driven.NormaliseResult, error) {
	return &driven.NormaliseResult{
		Record: domain.NewContentRecord("id", domain.KindText, s.name, string(raw.Content), raw.Source),
	}, nil
}

func TestRegistry_PicksHighestPriority(t *testing.T) {
	r := NewRegistry(
		&stubNormaliser{name: "fallback", types: []string{"text/html"}, priority: 5},
		&stubNormaliser{name: "html", types: []string{"text/html"}, priority: 50},
	)

	result, err := r.Normalise(context.Background(), &domain.RawContent{MIMEType: "text/html; charset=utf-8"})

	require.NoError(t, err)
	assert.Equal(t, "html", result.Record.Title)
}

func TestRegistry_TiesKeepRegistrationOrder(t *testing.T) {
	r := NewRegistry(
		&stubNormaliser{name: "first", types: []string{"text/plain"}, priority: 10},
		&stubNormaliser{name: "second", types: []string{"text/plain"}, priority: 10},
	)

	result, err := r.Normalise(context.Background(), &domain.RawContent{MIMEType: "text/plain"})

	require.NoError(t, err)
	assert.Equal(t, "first", result.Record.Title)
}

func TestRegistry_FamilyMatch(t *testing.T) {
	r := NewRegistry(&stubNormaliser{name: "image", types: []string{"image/*"}, priority: 50})

	result, err := r.Normalise(context.Background(), &domain.RawContent{MIMEType: "image/webp"})
	require.NoError(t, err)
	assert.Equal(t, "image", result.Record.Title)

	_, err = r.Normalise(context.Background(), &domain.RawContent{MIMEType: "imagery/png"})
	assert.ErrorIs(t, err, ErrNoNormaliser)
}

func TestRegistry_Errors(t *testing.T) {
	r := NewRegistry()

	_, err := r.Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = r.Normalise(context.Background(), &domain.RawContent{MIMEType: "application/zip"})
	assert.ErrorIs(t, err, ErrNoNormaliser)
}

func TestRegistry_SupportedMIMETypes(t *testing.T) {
	r := NewRegistry(
		&stubNormaliser{types: []string{"text/plain", "text/html"}, priority: 5},
		&stubNormaliser{types: []string{"text/html", "application/pdf"}, priority: 50},
	)

	assert.Equal(t, []string{"application/pdf", "text/html", "text/plain"}, r.SupportedMIMETypes())
}

func TestBaseMIMEType(t *testing.T) {
	assert.Equal(t, "text/html", baseMIMEType("Text/HTML; charset=UTF-8"))
	assert.Equal(t, "application/pdf", baseMIMEType("application/pdf"))
	assert.Equal(t, "weird", baseMIMEType("weird;;="))
}
