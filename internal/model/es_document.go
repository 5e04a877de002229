package model

// EsChunk 是镜像到 Elasticsearch 中的分块文档结构。
type EsChunk struct {
	ChunkKey string `json:"chunk_key"` // 唯一标识，docID + "_" + 分块序号
	DocID    string `json:"doc_id"`
	Title    string `json:"title"`
	Chunk    int    `json:"chunk"`
	Text     string `json:"text"`
}
