package web

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/net/html/charset"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
	"github.com/custodia-labs/kb-cli/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.WebExtractor = (*Fetcher)(nil)

const (
	// DefaultTimeout bounds a single page fetch including redirects.
	DefaultTimeout = 30 * time.Second

	// maxPageBytes caps how much of a response body is read.
	maxPageBytes = 10 << 20

	defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

	zhihuUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 14_0 like Mac OS X) " +
		"AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0 Mobile/15E148 Safari/604.1"
	zhihuAccept         = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	zhihuAcceptLanguage = "zh-CN,zh-Hans;q=0.9"

	// zhihuChallenge marks the anti-bot verification page.
	zhihuChallenge = "安全验证"

	mimeHTML = "text/html"
)

// Placeholder texts for pages that cannot be read automatically.
const (
	ZhihuPlaceholderTitle = "知乎链接 (需要手动复制内容)"
	ZhihuPlaceholderBody  = "知乎有严格的反爬虫保护，无法自动抓取内容。请手动复制文章内容后使用文本模式输入。"
	PDFLinkBody           = "PDF document"
)

// Fetcher downloads pages and normalises them into link records.
type Fetcher struct {
	client      *http.Client
	normalisers driven.NormaliserRegistry
}

// New creates a fetcher. A zero timeout uses DefaultTimeout.
func New(normalisers driven.NormaliserRegistry, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		normalisers: normalisers,
	}
}

// Fetch retrieves rawURL and returns its readable content.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*domain.ContentRecord, error) {
	rawURL = strings.TrimSpace(rawURL)
	fetchURL := RewriteArxiv(rawURL)
	zhihu := IsZhihu(fetchURL)
	if fetchURL != rawURL {
		logger.Debug("Fetching %s for %s", fetchURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return nil, &domain.FetchError{URL: rawURL, Err: err}
	}
	setHeaders(req, zhihu)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &domain.FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if zhihu && resp.StatusCode == http.StatusForbidden {
		logger.Warn("Zhihu blocked %s", rawURL)
		return zhihuPlaceholder(rawURL), nil
	}

	contentType := resp.Header.Get("Content-Type")
	if resp.StatusCode >= 200 && resp.StatusCode < 300 && strings.Contains(strings.ToLower(contentType), "pdf") {
		return domain.NewContentRecord(uuid.New().String(), domain.KindLink, rawURL, PDFLinkBody, rawURL), nil
	}

	body, err := readBody(resp.Body, contentType)
	if err != nil {
		return nil, &domain.FetchError{URL: rawURL, Status: resp.StatusCode, Err: err}
	}

	if zhihu && bytes.Contains(body, []byte(zhihuChallenge)) {
		logger.Warn("Zhihu verification page for %s", rawURL)
		return zhihuPlaceholder(rawURL), nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.FetchError{URL: rawURL, Status: resp.StatusCode}
	}

	result, err := f.normalisers.Normalise(ctx, &domain.RawContent{
		URI:      fetchURL,
		Source:   rawURL,
		MIMEType: mimeHTML,
		Content:  body,
	})
	if err != nil {
		return nil, fmt.Errorf("normalise %s: %w", rawURL, err)
	}
	return result.Record, nil
}

// readBody reads at most maxPageBytes and decodes them to UTF-8.
func readBody(r io.Reader, contentType string) ([]byte, error) {
	limited := io.LimitReader(r, maxPageBytes)
	decoded, err := charset.NewReader(limited, contentType)
	if err != nil {
		logger.Debug("Unknown charset in %q, reading raw bytes: %v", contentType, err)
		decoded = limited
	}
	body, err := io.ReadAll(decoded)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func setHeaders(req *http.Request, zhihu bool) {
	if zhihu {
		req.Header.Set("User-Agent", zhihuUserAgent)
		req.Header.Set("Accept", zhihuAccept)
		req.Header.Set("Accept-Language", zhihuAcceptLanguage)
		return
	}
	req.Header.Set("User-Agent", defaultUserAgent)
}

func zhihuPlaceholder(rawURL string) *domain.ContentRecord {
	return domain.NewContentRecord(uuid.New().String(), domain.KindLink,
		ZhihuPlaceholderTitle, ZhihuPlaceholderBody, rawURL)
}

// RewriteArxiv maps an arXiv PDF link to its abstract page.
// Other URLs are returned unchanged.
func RewriteArxiv(rawURL string) string {
	if !strings.Contains(rawURL, "arxiv.org/pdf/") {
		return rawURL
	}
	rewritten := strings.Replace(rawURL, "arxiv.org/pdf/", "arxiv.org/abs/", 1)
	return strings.TrimSuffix(rewritten, ".pdf")
}

// IsZhihu reports whether rawURL points at zhihu.com.
func IsZhihu(rawURL string) bool {
	return strings.Contains(rawURL, "zhihu.com")
}
