package model

import (
	"database/sql/driver"
	"encoding/json"

	"gorm.io/datatypes"
)

// SparseVector 是词项到权重的稀疏映射，以 JSON 形式存储。
type SparseVector map[string]float64

// Value 实现 driver.Valuer。nil 向量写为 {}。
func (v SparseVector) Value() (driver.Value, error) {
	if v == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]float64(v))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan 实现 sql.Scanner。缺失或损坏的数据一律视为空向量，不返回错误。
func (v *SparseVector) Scan(value interface{}) error {
	*v = SparseVector{}

	var raw []byte
	switch val := value.(type) {
	case []byte:
		raw = val
	case string:
		raw = []byte(val)
	default:
		return nil
	}

	var decoded map[string]float64
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil
	}
	if decoded != nil {
		*v = SparseVector(decoded)
	}
	return nil
}

// Chunk 对应于 chunks 表，记录文档的一个定长文本切片及其稀疏向量。
// DocID 只是按值引用所属文档，存储层不保证外键完整性。
type Chunk struct {
	ID        uint              `gorm:"primaryKey;autoIncrement" json:"-"`
	DocID     string            `gorm:"type:varchar(64);not null;index" json:"doc_id"`
	Text      string            `gorm:"type:text" json:"text"`
	Page      *int              `json:"page"`
	Embedding SparseVector      `gorm:"type:json" json:"embedding"`
	Metadata  datatypes.JSONMap `gorm:"type:json" json:"metadata"`
}

// TableName 指定了此模型在数据库中对应的表名。
func (Chunk) TableName() string {
	return "chunks"
}
