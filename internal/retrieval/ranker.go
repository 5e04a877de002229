package retrieval

import (
	"sort"
	"strings"

	"doc-intel-go/internal/model"
)

// 默认的截断长度（字符数）。
const (
	DefaultSnippetMaxChars = 500
	DefaultAnswerMaxChars  = 800
)

// Rank 对候选分块打分，过滤掉得分不大于 0 的分块，按得分降序稳定排序后取前 topK 个。
// 得分相同的分块保持 chunks 中的原始顺序。
func Rank(query model.SparseVector, chunks []model.Chunk, topK, snippetMaxChars int) []model.Match {
	matches := make([]model.Match, 0)
	if topK <= 0 {
		return matches
	}

	for _, ch := range chunks {
		score := Cosine(query, ch.Embedding)
		if score <= 0 {
			continue
		}
		metadata := map[string]interface{}(ch.Metadata)
		if metadata == nil {
			metadata = map[string]interface{}{}
		}
		matches = append(matches, model.Match{
			DocID:    ch.DocID,
			Text:     truncateRunes(ch.Text, snippetMaxChars),
			Score:    score,
			Metadata: metadata,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches
}

// SynthesizeAnswer 用单个空格拼接命中文本，并截断到 maxChars 个字符。
func SynthesizeAnswer(matches []model.Match, maxChars int) string {
	texts := make([]string, 0, len(matches))
	for _, m := range matches {
		texts = append(texts, m.Text)
	}
	return truncateRunes(strings.Join(texts, " "), maxChars)
}

func truncateRunes(s string, n int) string {
	if n < 0 {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
