package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
)

// mockLLM replies with queued answers in order. An exhausted queue fails.
type mockLLM struct {
	mu       sync.Mutex
	replies  []mockReply
	requests [][]driven.ChatMessage
}

type mockReply struct {
	text string
	err  error
}

func newMockLLM(replies ...string) *mockLLM {
	m := &mockLLM{}
	for _, r := range replies {
		m.replies = append(m.replies, mockReply{text: r})
	}
	return m
}

func (m *mockLLM) fail(err error) *mockLLM {
	m.replies = append(m.replies, mockReply{err: err})
	return m
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (*driven.ChatResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, messages)
	if len(m.replies) == 0 {
		return nil, errors.New("no reply queued")
	}
	r := m.replies[0]
	m.replies = m.replies[1:]
	if r.err != nil {
		return nil, r.err
	}
	return &driven.ChatResult{Text: r.text, Usage: driven.Usage{TotalTokens: 42}}, nil
}

func (m *mockLLM) ModelName() string            { return "mock-model" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// calls returns how many requests were made.
func (m *mockLLM) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// request returns the system and user content of the i-th request.
func (m *mockLLM) request(i int) (string, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := m.requests[i]
	return msgs[0].Content, msgs[1].Content
}

// mockMetrics counts every event by label.
type mockMetrics struct {
	mu         sync.Mutex
	degraded   map[string]int
	modelCalls map[string]int
	extracted  map[string]int
	published  map[string]int
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{
		degraded:   make(map[string]int),
		modelCalls: make(map[string]int),
		extracted:  make(map[string]int),
		published:  make(map[string]int),
	}
}

func (m *mockMetrics) Degraded(stage string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.degraded[stage]++
}

func (m *mockMetrics) ModelCall(_, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modelCalls[outcome]++
}

func (m *mockMetrics) Extracted(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.extracted[kind]++
}

func (m *mockMetrics) Published(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published[outcome]++
}

// mockWebExtractor returns canned records by URL.
type mockWebExtractor struct {
	records map[string]*domain.ContentRecord
	fetched []string
}

func (m *mockWebExtractor) Fetch(_ context.Context, url string) (*domain.ContentRecord, error) {
	m.fetched = append(m.fetched, url)
	if r, ok := m.records[url]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, &domain.FetchError{URL: url, Status: 404}
}

// mockFileExtractor builds a record from the path it is given.
type mockFileExtractor struct {
	err error
}

func (m *mockFileExtractor) Extract(_ context.Context, path string, kind domain.ContentKind) (*domain.ContentRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	r := domain.NewContentRecord("file-1", kind, "report", "file body", path)
	r.Attachment = domain.NewAttachment("report.pdf", "application/pdf", []byte("%PDF"))
	return r, nil
}

// mockNormaliserRegistry turns text content into a text record verbatim.
type mockNormaliserRegistry struct {
	raws []*domain.RawContent
}

func (m *mockNormaliserRegistry) Register(_ driven.Normaliser) {}

func (m *mockNormaliserRegistry) SupportedMIMETypes() []string { return []string{"text/plain"} }

func (m *mockNormaliserRegistry) Normalise(_ context.Context, raw *domain.RawContent) (*driven.NormaliseResult, error) {
	m.raws = append(m.raws, raw)
	content := string(raw.Content)
	return &driven.NormaliseResult{
		Record: domain.NewContentRecord("text-1", domain.KindText, content, content, raw.Source),
	}, nil
}

// mockPublisher records posts and returns a fixed URL.
type mockPublisher struct {
	posts []driven.Post
	err   error
}

func (m *mockPublisher) Publish(_ context.Context, post driven.Post) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.posts = append(m.posts, post)
	return "https://t.me/kb/1", nil
}

func (m *mockPublisher) Ping(_ context.Context) error { return m.err }

// mockArchive records attachment keys.
type mockArchive struct {
	keys []string
	err  error
}

func (m *mockArchive) Put(_ context.Context, key string, _ *domain.Attachment) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.keys = append(m.keys, key)
	return "s3://kb/" + key, nil
}

// failingVocabularyStore fails every call.
type failingVocabularyStore struct{}

func (failingVocabularyStore) Load() ([]string, error) { return nil, errors.New("disk gone") }
func (failingVocabularyStore) Save(_ []string) error   { return errors.New("disk gone") }
