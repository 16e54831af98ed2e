package html

import (
	"bytes"
	"context"
	"html"
	"net/url"
	"regexp"
	"strings"

	readability "codeberg.org/readeck/go-readability"
	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
	"github.com/custodia-labs/kb-cli/internal/core/ports/driven"
	"github.com/custodia-labs/kb-cli/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// page is what extraction knows about a document so far.
// Site hooks overwrite fields they can improve.
type page struct {
	title string
	body  string
	date  string
}

// siteHook refines a page for one host.
type siteHook struct {
	// match reports whether the hook applies to the fetched URL.
	match func(fetchURL string) bool
	// apply overrides page fields from the parsed document and raw HTML.
	apply func(doc *goquery.Document, rawHTML string, p *page)
}

// Normaliser handles HTML documents.
type Normaliser struct {
	hooks []siteHook
}

// New creates a new HTML normaliser with the arXiv and Zhihu hooks.
func New() *Normaliser {
	return &Normaliser{
		hooks: []siteHook{
			{match: isArxiv, apply: applyArxiv},
			{match: isZhihu, apply: applyZhihu},
		},
	}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Generic MIME normaliser, higher than plaintext
}

// Normalise converts an HTML page to a link record.
// Content must already be UTF-8. URI is the fetched URL and Source the
// URL the user gave, which becomes the record source.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawContent) (*driven.NormaliseResult, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	rawHTML := string(raw.Content)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw.Content))
	if err != nil {
		return nil, err
	}

	p := page{
		title: metaTitle(doc),
		body:  articleText(raw),
		date:  metaDate(doc),
	}
	if p.body == "" {
		p.body = stripHTML(rawHTML)
	}

	for _, hook := range n.hooks {
		if hook.match(raw.URI) {
			hook.apply(doc, rawHTML, &p)
		}
	}

	if p.title == "" {
		p.title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	source := raw.Source
	if source == "" {
		source = raw.URI
	}
	if p.title == "" {
		p.title = source
	}

	record := domain.NewContentRecord(uuid.New().String(), domain.KindLink, p.title, p.body, source)
	record.PublishDate = p.date
	return &driven.NormaliseResult{Record: record}, nil
}

// articleText runs the readability pass and returns the article as text.
// Returns "" when no article could be found.
func articleText(raw *domain.RawContent) string {
	pageURL, err := url.Parse(raw.URI)
	if err != nil {
		pageURL = nil
	}
	article, err := readability.FromReader(bytes.NewReader(raw.Content), pageURL)
	if err != nil {
		logger.Debug("Readability failed for %s: %v", raw.URI, err)
		return ""
	}
	return stripHTML(article.Content)
}

// metaTitle returns the first title declared in page metadata.
// Priority: og:title > twitter:title > citation_title.
func metaTitle(doc *goquery.Document) string {
	return firstMeta(doc,
		`meta[property="og:title"]`,
		`meta[name="twitter:title"]`,
		`meta[name="citation_title"]`,
	)
}

// metaDate returns the first publication date declared in page metadata.
func metaDate(doc *goquery.Document) string {
	return firstMeta(doc,
		`meta[property="article:published_time"]`,
		`meta[name="citation_publication_date"]`,
		`meta[name="date"]`,
		`meta[itemprop="datePublished"]`,
	)
}

// firstMeta returns the content attribute of the first selector that has one.
func firstMeta(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if v, ok := doc.Find(sel).First().Attr("content"); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

// normaliseWhitespace trims each line and drops blank runs.
func normaliseWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		line = multiSpaces.ReplaceAllString(strings.TrimSpace(line), " ")
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}

// Pre-compiled regular expressions for the fallback text pass.
var (
	scriptTag         = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag          = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	noscriptTag       = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	headTag           = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	svgTag            = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	htmlComments      = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockElements     = regexp.MustCompile(`(?i)</(p|div|br|hr|h[1-6]|li|tr|blockquote|pre|table|section|article)>`)
	openBlockElements = regexp.MustCompile(`(?i)<(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article)[^>]*>`)
	brTags            = regexp.MustCompile(`(?i)<br\s*/?>`)
	allTags           = regexp.MustCompile(`<[^>]+>`)
	multiSpaces       = regexp.MustCompile(`[ \t]+`)
)

// stripHTML removes tags and returns the visible text, one block per line.
// Used when readability finds no article.
func stripHTML(content string) string {
	for _, re := range []*regexp.Regexp{scriptTag, styleTag, noscriptTag, headTag, svgTag, htmlComments} {
		content = re.ReplaceAllString(content, "")
	}

	content = openBlockElements.ReplaceAllString(content, "\n")
	content = blockElements.ReplaceAllString(content, "\n")
	content = brTags.ReplaceAllString(content, "\n")
	content = allTags.ReplaceAllString(content, "")
	content = html.UnescapeString(content)

	return normaliseWhitespace(content)
}
