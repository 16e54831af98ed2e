package html

import (
	"encoding/json"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

var (
	arxivIDPrefix = regexp.MustCompile(`^\[\d+\.\d+\]\s*`)
	submittedOn   = regexp.MustCompile(`(?i)Submitted\s+on\s+(\d{1,2}\s+\w+\s+\d{4})`)
	dayMonthYear  = regexp.MustCompile(`\d{1,2}\s+\w+\s+\d{4}`)
	zhihuTagStrip = regexp.MustCompile(`<[^>]+>`)
)

const zhihuDateLayout = "2006-01-02"

func isArxiv(fetchURL string) bool {
	return strings.Contains(fetchURL, "arxiv.org")
}

func isZhihu(fetchURL string) bool {
	return strings.Contains(fetchURL, "zhihu.com")
}

// applyArxiv reads the paper title and submission date from an abstract page.
func applyArxiv(doc *goquery.Document, rawHTML string, p *page) {
	if title := arxivTitle(doc); title != "" {
		p.title = title
	}
	if date := arxivDate(doc, rawHTML); date != "" {
		p.date = date
	}
}

func arxivTitle(doc *goquery.Document) string {
	if v := firstMeta(doc, `meta[name="citation_title"]`); v != "" {
		return v
	}
	if v := firstMeta(doc, `meta[property="og:title"]`); v != "" {
		return arxivIDPrefix.ReplaceAllString(v, "")
	}

	h1 := doc.Find("h1.title").First().Clone()
	h1.Find("span.descriptor").Remove()
	title := strings.TrimSpace(h1.Text())
	return strings.TrimSpace(strings.TrimPrefix(title, "Title:"))
}

func arxivDate(doc *goquery.Document, rawHTML string) string {
	if v := firstMeta(doc, `meta[name="citation_date"]`, `meta[name="citation_online_date"]`); v != "" {
		return strings.ReplaceAll(v, "/", "-")
	}
	if m := submittedOn.FindStringSubmatch(rawHTML); m != nil {
		return m[1]
	}
	dateline := strings.TrimSpace(doc.Find(".dateline").First().Text())
	return dayMonthYear.FindString(dateline)
}

// applyZhihu reads an answer or article from the page's embedded data.
func applyZhihu(doc *goquery.Document, _ string, p *page) {
	var title, content, date string

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data map[string]any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true
		}
		title = firstString(data, "headline", "name")
		content = firstString(data, "articleBody", "text")
		date = firstString(data, "datePublished", "dateCreated")
		return false
	})

	if content == "" {
		t, c, d := zhihuInitialData(doc.Find("script#js-initialData").First().Text())
		if title == "" {
			title = t
		}
		if c != "" {
			content, date = c, d
		}
	}

	if title == "" {
		title = firstMeta(doc, `meta[property="og:title"]`)
	}
	if content == "" {
		content = doc.Find(`span[class^="RichText"]`).First().Text()
	}

	content = strings.TrimSpace(zhihuTagStrip.ReplaceAllString(content, ""))

	if title != "" {
		p.title = title
	}
	if content != "" {
		p.body = content
	}
	if date != "" {
		p.date = zhihuDate(date)
	}
}

// zhihuInitialData reads the first answer with content and the first
// question title from the js-initialData state blob.
func zhihuInitialData(blob string) (title, content, date string) {
	if strings.TrimSpace(blob) == "" {
		return "", "", ""
	}
	var data struct {
		InitialState struct {
			Entities struct {
				Answers   map[string]map[string]any `json:"answers"`
				Questions map[string]map[string]any `json:"questions"`
			} `json:"entities"`
		} `json:"initialState"`
	}
	if err := json.Unmarshal([]byte(blob), &data); err != nil {
		return "", "", ""
	}
	entities := data.InitialState.Entities

	for _, id := range sortedKeys(entities.Answers) {
		answer := entities.Answers[id]
		if c := firstString(answer, "content"); c != "" {
			content = c
			date = firstString(answer, "createdTime", "updatedTime")
			break
		}
	}
	for _, id := range sortedKeys(entities.Questions) {
		if t := firstString(entities.Questions[id], "title"); t != "" {
			title = t
			break
		}
	}
	return title, content, date
}

// zhihuDate formats an all-digit value as a unix date and returns
// anything else unchanged.
func zhihuDate(v string) string {
	secs, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return v
	}
	return time.Unix(secs, 0).UTC().Format(zhihuDateLayout)
}

// firstString returns the first non-empty value among keys.
// Numbers are rendered as integers.
func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		case float64:
			if v != 0 {
				return strconv.FormatInt(int64(v), 10)
			}
		}
	}
	return ""
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
