// Package retrieval 实现了定长切块、稀疏词频向量化以及余弦相似度检索。
package retrieval

import (
	"strings"
	"unicode"

	"doc-intel-go/internal/model"
)

// DefaultChunkSize 是每个切块的字符数上限。
const DefaultChunkSize = 500

// Piece 是一个切块及其稀疏向量。
type Piece struct {
	Text   string
	Vector model.SparseVector
}

// Split 将文本按固定字符宽度切分，窗口之间不重叠，最后一块可以更短。
// 空文本也会产生一个空切块，保证每个文档至少有一个分块。
func Split(text string, size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return []string{""}
	}

	slices := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		slices = append(slices, string(runes[start:end]))
	}
	return slices
}

// Tokenize 转小写后按空白切分，只保留完全由字母或数字组成的词项。
// 含标点的词（如 "don't"、"state-of-the-art"）整体丢弃。
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(text, isSpace)
	tokens := fields[:0]
	for _, f := range fields {
		if f = lowerField(f); isAlnum(f) {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// isSpace 在 unicode.IsSpace 之外还把 \x1c-\x1f（文件/组/记录/单元分隔符）视为空白。
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// lowerField 是带两处特殊映射的小写转换：
// İ (U+0130) 变为 "i" 加组合点 U+0307，词尾的 Σ 变为 ς。
func lowerField(f string) string {
	if !strings.ContainsAny(f, "\u0130\u03a3") {
		return strings.ToLower(f)
	}
	runes := []rune(f)
	var b strings.Builder
	for i, r := range runes {
		switch {
		case r == '\u0130':
			b.WriteString("i\u0307")
		case r == '\u03a3' && i > 0 && unicode.IsLetter(runes[i-1]) &&
			(i+1 == len(runes) || !unicode.IsLetter(runes[i+1])):
			b.WriteRune('\u03c2')
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

func isAlnum(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			return false
		}
	}
	return true
}

// Vectorize 统计文本内每个词项的出现次数。
func Vectorize(text string) model.SparseVector {
	vec := model.SparseVector{}
	for _, t := range Tokenize(text) {
		vec[t]++
	}
	return vec
}

// ChunkAndVectorize 切块并为每一块计算局部词频向量。
func ChunkAndVectorize(text string, size int) []Piece {
	slices := Split(text, size)
	pieces := make([]Piece, 0, len(slices))
	for _, s := range slices {
		pieces = append(pieces, Piece{Text: s, Vector: Vectorize(s)})
	}
	return pieces
}
