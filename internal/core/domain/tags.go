package domain

import (
	"encoding/json"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TagSet is an ordered set of tags. Insertion order is preserved and
// empty strings and duplicates are never stored. The zero value is empty.
type TagSet struct {
	items []string
}

// NewTagSet builds a set from tags, skipping empties and duplicates.
func NewTagSet(tags ...string) TagSet {
	var s TagSet
	for _, t := range tags {
		s.Add(t)
	}
	return s
}

// Add appends tag if it is non-empty and not already present.
// Returns true if the tag was added.
func (s *TagSet) Add(tag string) bool {
	if tag == "" || s.Contains(tag) {
		return false
	}
	s.items = append(s.items, tag)
	return true
}

// Remove deletes tag, preserving the order of the rest.
// Returns true if the tag was present.
func (s *TagSet) Remove(tag string) bool {
	for i, t := range s.items {
		if t == tag {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Toggle adds tag when absent and removes it when present.
// Returns true if the tag is present afterwards.
func (s *TagSet) Toggle(tag string) bool {
	if s.Remove(tag) {
		return false
	}
	return s.Add(tag)
}

// Contains reports whether tag is in the set.
func (s TagSet) Contains(tag string) bool {
	for _, t := range s.items {
		if t == tag {
			return true
		}
	}
	return false
}

// Len returns the number of tags.
func (s TagSet) Len() int {
	return len(s.items)
}

// Slice returns a copy of the tags in insertion order.
func (s TagSet) Slice() []string {
	if len(s.items) == 0 {
		return nil
	}
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// MarshalJSON encodes the set as a JSON array.
func (s TagSet) MarshalJSON() ([]byte, error) {
	if s.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.items)
}

// UnmarshalJSON decodes a JSON array, re-applying set semantics.
func (s *TagSet) UnmarshalJSON(data []byte) error {
	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return err
	}
	*s = NewTagSet(tags...)
	return nil
}

// tagPair is one dictionary entry.
type tagPair struct {
	from string
	to   string
}

// tagTranslations is the fixed bilingual dictionary. Order matters for
// case-insensitive lookups: the first matching entry wins.
var tagTranslations = []tagPair{
	{"多模态", "Multimodal"},
	{"智能体", "Agent"},
	{"大模型", "LLM"},
	{"大语言模型", "LLM"},
	{"视觉语言模型", "VLM"},
	{"预训练", "Pretraining"},
	{"后训练", "Post-training"},
	{"强化学习", "RL"},
	{"微调", "Finetuning"},
	{"提示词", "Prompt"},
	{"检索增强", "RAG"},
	{"论文", "Paper"},
	{"工具", "Tools"},
	{"教程", "Tutorial"},
	{"文章", "Article"},
	{"研究", "Research"},
	{"编程", "Programming"},
	{"产品", "Product"},
	{"设计", "Design"},
	{"新闻", "News"},
	{"观点", "Opinion"},
	{"开源", "OpenSource"},
	{"模型", "Model"},
	{"数据集", "Dataset"},
	{"推理", "Inference"},
	{"训练", "Training"},
	{"部署", "Deployment"},
	{"评测", "Benchmark"},
	{"对齐", "Alignment"},
	{"安全", "Safety"},
	{"Multimodal", "多模态"},
	{"Multi-modal", "多模态"},
	{"Agent", "智能体"},
	{"LLM", "大语言模型"},
	{"VLM", "视觉语言模型"},
	{"Pretraining", "预训练"},
	{"Pre-training", "预训练"},
	{"Post-training", "后训练"},
	{"RL", "强化学习"},
	{"Finetuning", "微调"},
	{"Fine-tuning", "微调"},
	{"Prompt", "提示词"},
	{"RAG", "检索增强"},
	{"Paper", "论文"},
	{"Tools", "工具"},
	{"Tutorial", "教程"},
	{"Article", "文章"},
	{"Research", "研究"},
	{"Programming", "编程"},
	{"Product", "产品"},
	{"Design", "设计"},
	{"News", "新闻"},
	{"Opinion", "观点"},
	{"OpenSource", "开源"},
	{"Model", "模型"},
	{"Dataset", "数据集"},
	{"Inference", "推理"},
	{"Training", "训练"},
	{"Deployment", "部署"},
	{"Benchmark", "评测"},
	{"Alignment", "对齐"},
	{"Safety", "安全"},
	{"AI", "人工智能"},
}

var tagTranslationIndex = func() map[string]string {
	m := make(map[string]string, len(tagTranslations))
	for _, p := range tagTranslations {
		if _, ok := m[p.from]; !ok {
			m[p.from] = p.to
		}
	}
	return m
}()

// TranslateTag returns the dictionary translation of tag.
// An exact match is tried first, then a case-insensitive one.
func TranslateTag(tag string) (string, bool) {
	if t, ok := tagTranslationIndex[tag]; ok {
		return t, true
	}
	lower := strings.ToLower(tag)
	for _, p := range tagTranslations {
		if strings.ToLower(p.from) == lower {
			return p.to, true
		}
	}
	return "", false
}

// ChineseTags renders tags for the Chinese-first section of a post.
// Non-ASCII tags are kept, ASCII tags are preceded by their Chinese
// translation when one exists. Hyphens are dropped from display forms.
func ChineseTags(tags []string) []string {
	out := newHashtagList()
	for _, tag := range tags {
		clean := strings.ReplaceAll(tag, "-", "")
		if clean == "" {
			continue
		}
		if !isASCII(clean) {
			out.add(clean)
			continue
		}
		if tr, ok := TranslateTag(tag); ok && !isASCII(tr) {
			out.add(tr)
		}
		out.add(clean)
	}
	return out.items
}

// EnglishTags renders tags for the English-first section of a post.
// ASCII tags are kept, non-ASCII tags are replaced by their English
// translation, and each is followed by a case variant when it differs.
func EnglishTags(tags []string) []string {
	out := newHashtagList()
	for _, tag := range tags {
		var clean string
		if isASCII(tag) {
			clean = strings.ReplaceAll(tag, "-", "")
		} else {
			tr, ok := TranslateTag(tag)
			if !ok || !isASCII(tr) {
				continue
			}
			clean = strings.ReplaceAll(tr, "-", "")
		}
		if clean == "" {
			continue
		}
		out.add(clean)
		out.add(caseVariant(clean))
	}
	return out.items
}

// caseVariant lower-cases a tag that starts upper-case and capitalises any other.
func caseVariant(tag string) string {
	runes := []rune(tag)
	if unicode.IsUpper(runes[0]) {
		return strings.ToLower(tag)
	}
	return strings.ToUpper(string(runes[0])) + strings.ToLower(string(runes[1:]))
}

// hashtagList collects "#tag" display strings, deduplicating by tag.
type hashtagList struct {
	seen  map[string]struct{}
	items []string
}

func newHashtagList() *hashtagList {
	return &hashtagList{seen: make(map[string]struct{})}
}

func (l *hashtagList) add(tag string) {
	if _, ok := l.seen[tag]; ok {
		return
	}
	l.seen[tag] = struct{}{}
	l.items = append(l.items, "#"+tag)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
