package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/custodia-labs/kb-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/kb-cli/internal/core/domain"
)

// MockClassifyService implements driving.ClassifyService for CLI tests.
type MockClassifyService struct {
	Result domain.Classification
}

func (m *MockClassifyService) Classify(raw string) domain.Classification {
	r := m.Result
	r.Raw = raw
	return r
}

// MockPipelineService implements driving.PipelineService for CLI tests.
type MockPipelineService struct {
	Record *domain.ContentRecord
	Drafts []*domain.Draft
	Err    error

	LastRaw         string
	PrepareEachUsed bool
}

func (m *MockPipelineService) Extract(_ context.Context, raw string) (*domain.ContentRecord, error) {
	m.LastRaw = raw
	return m.Record, m.Err
}

func (m *MockPipelineService) Prepare(_ context.Context, raw string) (*domain.Draft, error) {
	m.LastRaw = raw
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Drafts[0], nil
}

func (m *MockPipelineService) PrepareEach(_ context.Context, raw string) ([]*domain.Draft, error) {
	m.LastRaw = raw
	m.PrepareEachUsed = true
	return m.Drafts, m.Err
}

// MockSelectionService implements driving.SelectionService for CLI tests.
type MockSelectionService struct {
	Sessions   map[string]*domain.PendingSelection
	AddedInput []string
	Confirmed  []string
	Cancelled  []string

	// FailConfirmAt makes the n-th Confirm call fail (1-based).
	FailConfirmAt int
	confirmCalls  int
}

func NewMockSelectionService() *MockSelectionService {
	return &MockSelectionService{Sessions: map[string]*domain.PendingSelection{}}
}

func (m *MockSelectionService) Start(_ context.Context, sessionID string, draft *domain.Draft) (*domain.PendingSelection, error) {
	sel := domain.NewPendingSelection(sessionID, draft, time.Now())
	m.Sessions[sessionID] = sel
	return sel, nil
}

func (m *MockSelectionService) Get(_ context.Context, sessionID string) (*domain.PendingSelection, error) {
	sel, ok := m.Sessions[sessionID]
	if !ok {
		return nil, domain.ErrNoPendingSelection
	}
	return sel, nil
}

func (m *MockSelectionService) Toggle(ctx context.Context, sessionID, tag string) (*domain.PendingSelection, error) {
	sel, err := m.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sel.Selected.Toggle(tag)
	return sel, nil
}

func (m *MockSelectionService) AddTags(ctx context.Context, sessionID, input string) (*domain.PendingSelection, error) {
	sel, err := m.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	m.AddedInput = append(m.AddedInput, input)
	for _, t := range strings.Split(input, ",") {
		sel.Selected.Add(strings.TrimPrefix(strings.TrimSpace(t), "#"))
	}
	return sel, nil
}

func (m *MockSelectionService) SetMessageID(_ context.Context, _, _ string) error {
	return nil
}

func (m *MockSelectionService) Confirm(ctx context.Context, sessionID string) (string, error) {
	if _, err := m.Get(ctx, sessionID); err != nil {
		return "", err
	}
	m.confirmCalls++
	if m.confirmCalls == m.FailConfirmAt {
		return "", &domain.PublishError{Err: errors.New("telegram: Bad Request")}
	}
	delete(m.Sessions, sessionID)
	m.Confirmed = append(m.Confirmed, sessionID)
	return fmt.Sprintf("https://t.me/kb/%d", len(m.Confirmed)), nil
}

func (m *MockSelectionService) Cancel(_ context.Context, sessionID string) error {
	delete(m.Sessions, sessionID)
	m.Cancelled = append(m.Cancelled, sessionID)
	return nil
}

// MockTagService implements driving.TagService for CLI tests.
type MockTagService struct {
	PresetList []string
	Allow      bool
}

func (m *MockTagService) Presets(_ context.Context) ([]string, error) {
	return m.PresetList, nil
}

func (m *MockTagService) SuggestPresetTags(_ context.Context, _ string) []string {
	return nil
}

func (m *MockTagService) SuggestExtraTags(_ context.Context, _ string, _ int) []string {
	return nil
}

func (m *MockTagService) SuggestFromTitle(_ context.Context, _, _ string) (presets, extra []string) {
	return nil, nil
}

func (m *MockTagService) ParseUserInput(input string) []string {
	var out []string
	for _, f := range strings.FieldsFunc(input, func(r rune) bool { return r == ',' || r == ' ' }) {
		if t := strings.TrimPrefix(f, "#"); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (m *MockTagService) Reconcile(_ context.Context, tags []string) ([]string, error) {
	return tags, nil
}

func (m *MockTagService) AddTag(_ context.Context, tag string) (bool, error) {
	if !m.Allow {
		return false, nil
	}
	for _, p := range m.PresetList {
		if p == tag {
			return false, nil
		}
	}
	m.PresetList = append(m.PresetList, tag)
	return true, nil
}

func (m *MockTagService) AllowNew() bool {
	return m.Allow
}

// MockPublishService implements driving.PublishService for CLI tests.
type MockPublishService struct {
	IsAvailable bool
}

func (m *MockPublishService) Preview(record *domain.ContentRecord) string {
	return "PREVIEW " + record.Title + " " + strings.Join(record.Tags.Slice(), " ")
}

func (m *MockPublishService) Publish(_ context.Context, _ *domain.ContentRecord) (string, error) {
	return "https://t.me/kb/1", nil
}

func (m *MockPublishService) Available() bool {
	return m.IsAvailable
}

// MockSettingsService implements driving.SettingsService for CLI tests.
type MockSettingsService struct {
	Settings       domain.AppSettings
	ValidateErr    error
	ValidateLLMErr error

	LLMCalls      []string
	TelegramCalls []string
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.Settings
	return &s, nil
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	m.Settings = *settings
	return nil
}

func (m *MockSettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey, baseURL string) error {
	m.LLMCalls = append(m.LLMCalls, strings.Join([]string{provider.String(), model, apiKey, baseURL}, "|"))
	m.Settings.LLM = domain.LLMSettings{Provider: provider, Model: model, APIKey: apiKey, BaseURL: baseURL}
	return nil
}

func (m *MockSettingsService) SetTelegram(botToken, channelID string) error {
	m.TelegramCalls = append(m.TelegramCalls, botToken+"|"+channelID)
	m.Settings.Telegram = domain.TelegramSettings{BotToken: botToken, ChannelID: channelID}
	return nil
}

func (m *MockSettingsService) SetAllowNewTags(allow bool) error {
	m.Settings.Tags.AllowNew = allow
	return nil
}

func (m *MockSettingsService) Validate() error {
	return m.ValidateErr
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *MockSettingsService) ValidateLLMConfig() error {
	return m.ValidateLLMErr
}

// testServices bundles the mocks installed by setupTestServices.
type testServices struct {
	Classify  *MockClassifyService
	Pipeline  *MockPipelineService
	Selection *MockSelectionService
	Tags      *MockTagService
	Publish   *MockPublishService
	Settings  *MockSettingsService
}

// setupTestServices installs fresh mocks and resets flag state.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	ts := &testServices{
		Classify:  &MockClassifyService{},
		Pipeline:  &MockPipelineService{Drafts: []*domain.Draft{newTestDraft("First")}},
		Selection: NewMockSelectionService(),
		Tags:      &MockTagService{PresetList: []string{"AI", "Tools"}, Allow: true},
		Publish:   &MockPublishService{IsAvailable: true},
		Settings:  &MockSettingsService{Settings: domain.DefaultAppSettings()},
	}

	SetServices(&Services{
		Settings:  ts.Settings,
		Classify:  ts.Classify,
		Pipeline:  ts.Pipeline,
		Selection: ts.Selection,
		Tags:      ts.Tags,
		Publish:   ts.Publish,
	})

	origStdin, origInteractive, origPicker := stdin, isInteractive, runPicker
	stdin = strings.NewReader("")
	isInteractive = func() bool { return false }
	runPicker = func(context.Context, string, bool) (tui.Outcome, error) {
		t.Fatal("picker should not open")
		return tui.Outcome{}, nil
	}
	resetFlags()

	t.Cleanup(func() {
		SetServices(nil)
		stdin, isInteractive, runPicker = origStdin, origInteractive, origPicker
		resetFlags()
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	return ts
}

func resetFlags() {
	postSplit, postYes, postTags, postDryRun = false, false, "", false
	classifyJSON, extractJSON = false, false
	telegramToken, telegramChannel, telegramTest = "", "", false
	allowNewTags = ""
	versionShort = false
}

// executeCommand runs the root command with args and returns everything printed.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func newTestDraft(title string) *domain.Draft {
	record := domain.NewContentRecord(title, domain.KindLink, title, "body of "+title, "https://example.com/"+strings.ToLower(title))
	record.Summary = "摘要 " + title
	record.SummaryTranslated = "Summary " + title
	return &domain.Draft{
		Record:    record,
		Suggested: []string{"AI"},
		Extra:     []string{"Agents"},
	}
}
