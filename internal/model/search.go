package model

// Match 是一条检索命中的投影。
type Match struct {
	DocID    string                 `json:"doc_id"`
	Text     string                 `json:"text"`
	Score    float64                `json:"score"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Answer 是由命中文本拼接而成的朴素回答。
type Answer struct {
	Text string `json:"text"`
}

// SearchResponse 定义了返回给前端的检索结果结构。
type SearchResponse struct {
	Matches []Match `json:"matches"`
	Answer  Answer  `json:"answer"`
}
