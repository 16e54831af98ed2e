package html

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kb-cli/internal/core/domain"
)

const articleBody = `<article>
<h1>Understanding Goroutines</h1>
<p>Goroutines are lightweight threads managed by the Go runtime. They are cheap to create and
the scheduler multiplexes them onto a small number of operating system threads.</p>
<p>Channels let goroutines communicate by passing values rather than sharing memory, which keeps
most concurrent programs free of explicit locks and easier to reason about.</p>
<p>The select statement waits on several channel operations at once and proceeds with whichever
is ready first, making timeouts and cancellation straightforward to express.</p>
</article>`

func htmlPage(head, body string) []byte {
	return []byte("<html><head>" + head + "</head><body>" + body + "</body></html>")
}

func normalise(t *testing.T, uri, source string, content []byte) *domain.ContentRecord {
	t.Helper()
	result, err := New().Normalise(context.Background(), &domain.RawContent{
		URI:      uri,
		Source:   source,
		MIMEType: "text/html",
		Content:  content,
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotNil(t, result.Record)
	return result.Record
}

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.Len(t, normaliser.hooks, 2)
}

func TestSupportedMIMETypes(t *testing.T) {
	mimeTypes := New().SupportedMIMETypes()

	assert.Contains(t, mimeTypes, "text/html")
	assert.Contains(t, mimeTypes, "application/xhtml+xml")
	assert.Len(t, mimeTypes, 2)
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 50, New().Priority())
}

func TestNormalise_NilContent(t *testing.T) {
	result, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_GeneralPage(t *testing.T) {
	content := htmlPage(
		`<title>Site | Goroutines</title>
<meta property="og:title" content="Understanding Goroutines">
<meta property="article:published_time" content="2024-03-01">`,
		articleBody,
	)

	record := normalise(t, "https://blog.example.com/goroutines", "https://blog.example.com/goroutines", content)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, domain.KindLink, record.Kind())
	assert.Equal(t, "Understanding Goroutines", record.Title)
	assert.Equal(t, "https://blog.example.com/goroutines", record.Source)
	assert.Equal(t, "2024-03-01", record.PublishDate)
	assert.Contains(t, record.Body, "lightweight threads")
	assert.Contains(t, record.Body, "select statement")
	assert.NotContains(t, record.Body, "<p>")
}

func TestNormalise_TitleFallbacks(t *testing.T) {
	t.Run("title tag", func(t *testing.T) {
		record := normalise(t, "https://example.com/a", "https://example.com/a",
			htmlPage("<title>Plain Title</title>", articleBody))
		assert.Equal(t, "Plain Title", record.Title)
	})

	t.Run("source when no title", func(t *testing.T) {
		record := normalise(t, "https://example.com/b", "https://example.com/b", htmlPage("", articleBody))
		assert.Equal(t, "https://example.com/b", record.Title)
	})

	t.Run("uri when no source", func(t *testing.T) {
		record := normalise(t, "https://example.com/c", "", htmlPage("", articleBody))
		assert.Equal(t, "https://example.com/c", record.Source)
		assert.Equal(t, "https://example.com/c", record.Title)
	})
}

func TestNormalise_BodyTruncated(t *testing.T) {
	long := "<article><p>" + strings.Repeat("字", domain.MaxBodyRunes+500) + "</p></article>"
	record := normalise(t, "https://example.com/long", "https://example.com/long", htmlPage("", long))

	assert.LessOrEqual(t, utf8.RuneCountInString(record.Body), domain.MaxBodyRunes)
	assert.True(t, utf8.ValidString(record.Body))
}

func TestNormalise_Arxiv(t *testing.T) {
	t.Run("citation meta", func(t *testing.T) {
		content := htmlPage(
			`<meta name="citation_title" content="Attention Is All You Need">
<meta name="citation_date" content="2017/06/12">
<meta property="og:title" content="[1706.03762] Attention Is All You Need">`,
			articleBody,
		)
		record := normalise(t, "https://arxiv.org/abs/1706.03762", "https://arxiv.org/pdf/1706.03762.pdf", content)

		assert.Equal(t, "Attention Is All You Need", record.Title)
		assert.Equal(t, "2017-06-12", record.PublishDate)
		assert.Equal(t, "https://arxiv.org/pdf/1706.03762.pdf", record.Source)
	})

	t.Run("og title prefix stripped", func(t *testing.T) {
		content := htmlPage(
			`<meta property="og:title" content="[2412.01234] Scaling Laws Revisited">
<meta name="citation_online_date" content="2024/12/02">`,
			articleBody,
		)
		record := normalise(t, "https://arxiv.org/abs/2412.01234", "https://arxiv.org/abs/2412.01234", content)

		assert.Equal(t, "Scaling Laws Revisited", record.Title)
		assert.Equal(t, "2024-12-02", record.PublishDate)
	})

	t.Run("h1 and submitted line", func(t *testing.T) {
		content := htmlPage("",
			`<h1 class="title mathjax"><span class="descriptor">Title:</span>Sparse Mixtures of Experts</h1>
<div class="submission-history">[Submitted on 2 Dec 2024]</div>`+articleBody,
		)
		record := normalise(t, "https://arxiv.org/abs/2412.00001", "https://arxiv.org/abs/2412.00001", content)

		assert.Equal(t, "Sparse Mixtures of Experts", record.Title)
		assert.Equal(t, "2 Dec 2024", record.PublishDate)
	})
}

func TestNormalise_Zhihu(t *testing.T) {
	t.Run("json-ld", func(t *testing.T) {
		content := htmlPage(
			`<script type="application/ld+json">{"headline":"如何学习 Go","articleBody":"<p>先读 Effective Go。</p>","datePublished":"2024-05-01"}</script>`,
			articleBody,
		)
		record := normalise(t, "https://zhuanlan.zhihu.com/p/1", "https://zhuanlan.zhihu.com/p/1", content)

		assert.Equal(t, "如何学习 Go", record.Title)
		assert.Equal(t, "先读 Effective Go。", record.Body)
		assert.Equal(t, "2024-05-01", record.PublishDate)
	})

	t.Run("initial data", func(t *testing.T) {
		content := htmlPage(
			`<meta property="og:title" content="og title">`,
			`<script id="js-initialData" type="text/json">{"initialState":{"entities":{
"answers":{"2":{"content":"<p>第二个回答</p>","createdTime":1700000000},"1":{"content":""}},
"questions":{"9":{"title":"Go 的并发模型是什么？"}}}}}</script>`,
		)
		record := normalise(t, "https://www.zhihu.com/question/9/answer/2", "https://www.zhihu.com/question/9/answer/2", content)

		assert.Equal(t, "Go 的并发模型是什么？", record.Title)
		assert.Equal(t, "第二个回答", record.Body)
		assert.Equal(t, "2023-11-14", record.PublishDate)
	})

	t.Run("og title and rich text", func(t *testing.T) {
		content := htmlPage(
			`<meta property="og:title" content="回答标题">`,
			`<div><span class="RichText ztext">正文<b>加粗</b>内容</span></div>`,
		)
		record := normalise(t, "https://www.zhihu.com/answer/3", "https://www.zhihu.com/answer/3", content)

		assert.Equal(t, "回答标题", record.Title)
		assert.Equal(t, "正文加粗内容", record.Body)
	})
}

func TestZhihuDate(t *testing.T) {
	assert.Equal(t, "2023-11-14", zhihuDate("1700000000"))
	assert.Equal(t, "2024-05-01", zhihuDate("2024-05-01"))
}

func TestArxivTitle_Empty(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body></body></html>"))
	require.NoError(t, err)
	assert.Empty(t, arxivTitle(doc))
	assert.Empty(t, arxivDate(doc, ""))
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"paragraphs", "<p>One</p><p>Two</p>", "One\nTwo"},
		{"scripts removed", "<script>var x = 1;</script><p>Text</p>", "Text"},
		{"entities decoded", "<p>a &amp; b</p>", "a & b"},
		{"line breaks", "one<br>two<br/>three", "one\ntwo\nthree"},
		{"spaces collapsed", "<p>a    b\t\tc</p>", "a b c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripHTML(tt.input))
		})
	}
}
