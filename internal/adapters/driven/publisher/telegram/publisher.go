// Package telegram publishes posts to a Telegram channel through the Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
)

// Ensure Publisher implements the interface.
var _ driven.Publisher = (*Publisher)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.telegram.org"
	DefaultTimeout = 60 * time.Second
)

// Bot API limits, counted in UTF-16 code units.
const (
	maxMessageUnits = 4096
	maxCaptionUnits = 1024
)

const tokenMask = "****"

// Config holds configuration for the Telegram publisher.
type Config struct {
	// BotToken authenticates the bot (required).
	BotToken string

	// ChannelID is "@name" or a numeric chat ID such as "-1001234567890" (required).
	ChannelID string

	// BaseURL is the Bot API endpoint (default: https://api.telegram.org).
	BaseURL string

	// Timeout bounds a single request, including uploads (default: 60s).
	Timeout time.Duration
}

// Publisher sends posts with sendMessage, sendPhoto or sendDocument.
type Publisher struct {
	client    *http.Client
	baseURL   string
	token     string
	channelID string
}

// apiResponse is the envelope of every Bot API reply.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	ErrorCode   int             `json:"error_code"`
	Result      json.RawMessage `json:"result"`
}

// message is the part of a sent message the publisher needs.
type message struct {
	MessageID int64 `json:"message_id"`
}

// New creates a Telegram publisher.
func New(cfg Config) (*Publisher, error) {
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("telegram: bot token is required")
	}
	if cfg.ChannelID == "" {
		return nil, fmt.Errorf("telegram: channel ID is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Publisher{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		token:     cfg.BotToken,
		channelID: cfg.ChannelID,
	}, nil
}

// Publish sends the post and returns the t.me URL of the new message.
// Images go out as photos and other attachments as documents, with the
// post text as caption.
func (p *Publisher) Publish(ctx context.Context, post driven.Post) (string, error) {
	var msg *message
	var err error
	switch {
	case post.Attachment == nil:
		msg, err = p.sendMessage(ctx, post.Text)
	case post.Kind == domain.KindImage:
		msg, err = p.sendFile(ctx, "sendPhoto", "photo", post)
	default:
		msg, err = p.sendFile(ctx, "sendDocument", "document", post)
	}
	if err != nil {
		return "", err
	}
	return MessageURL(p.channelID, msg.MessageID), nil
}

// Ping calls getMe to validate the bot token.
func (p *Publisher) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.methodURL("getMe"), http.NoBody)
	if err != nil {
		return fmt.Errorf("telegram: failed to create ping request: %w", err)
	}
	if _, err := p.do(req); err != nil {
		return fmt.Errorf("telegram: ping failed: %w", err)
	}
	return nil
}

// CheckChannel verifies the token and that the bot can see the channel.
func (p *Publisher) CheckChannel(ctx context.Context) error {
	if err := p.Ping(ctx); err != nil {
		return err
	}
	body, err := json.Marshal(map[string]string{"chat_id": p.channelID})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.methodURL("getChat"), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if _, err := p.do(req); err != nil {
		return fmt.Errorf("telegram: channel %s: %w", p.channelID, err)
	}
	return nil
}

func (p *Publisher) sendMessage(ctx context.Context, text string) (*message, error) {
	body, err := json.Marshal(map[string]any{
		"chat_id": p.channelID,
		"text":    truncateUTF16(text, maxMessageUnits),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.methodURL("sendMessage"), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return p.doMessage(req)
}

// sendFile uploads the attachment as a multipart form under field.
func (p *Publisher) sendFile(ctx context.Context, method, field string, post driven.Post) (*message, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	if err := form.WriteField("chat_id", p.channelID); err != nil {
		return nil, fmt.Errorf("write form: %w", err)
	}
	if caption := truncateUTF16(post.Text, maxCaptionUnits); caption != "" {
		if err := form.WriteField("caption", caption); err != nil {
			return nil, fmt.Errorf("write form: %w", err)
		}
	}
	part, err := form.CreateFormFile(field, post.Attachment.Name)
	if err != nil {
		return nil, fmt.Errorf("write form: %w", err)
	}
	if _, err := part.Write(post.Attachment.Data); err != nil {
		return nil, fmt.Errorf("write form: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("write form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.methodURL(method), &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	return p.doMessage(req)
}

func (p *Publisher) doMessage(req *http.Request) (*message, error) {
	result, err := p.do(req)
	if err != nil {
		return nil, err
	}
	var msg message
	if err := json.Unmarshal(result, &msg); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &msg, nil
}

// do sends req and unwraps the Bot API envelope.
func (p *Publisher) do(req *http.Request) (json.RawMessage, error) {
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", p.redact(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("telegram error (status %d): %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !apiResp.OK {
		return nil, fmt.Errorf("telegram error %d: %s", apiResp.ErrorCode, apiResp.Description)
	}
	return apiResp.Result, nil
}

// redact hides the bot token in the request URL that net/http puts
// into transport errors.
func (p *Publisher) redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = strings.ReplaceAll(urlErr.URL, p.token, tokenMask)
	}
	return err
}

func (p *Publisher) methodURL(method string) string {
	return p.baseURL + "/bot" + p.token + "/" + method
}

// MessageURL returns the public link of a channel message. Public channels
// use their @name; private ones use the numeric ID without the -100 prefix.
func MessageURL(channelID string, messageID int64) string {
	id := strconv.FormatInt(messageID, 10)
	if name, ok := strings.CutPrefix(channelID, "@"); ok {
		return "https://t.me/" + name + "/" + id
	}
	return "https://t.me/c/" + strings.TrimPrefix(channelID, "-100") + "/" + id
}

// truncateUTF16 cuts s to at most limit UTF-16 code units without
// splitting a rune.
func truncateUTF16(s string, limit int) string {
	units := 0
	for i, r := range s {
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		if units+n > limit {
			return s[:i]
		}
		units += n
	}
	return s
}
