package retrieval

import (
	"math"

	"doc-intel-go/internal/model"
)

// Cosine 计算两个稀疏向量的余弦相似度。点积只遍历 q 的词项；
// 任一向量为空或范数为 0 时返回 0。
func Cosine(q, d model.SparseVector) float64 {
	if len(q) == 0 || len(d) == 0 {
		return 0
	}
	var dot float64
	for term, w := range q {
		dot += w * d[term]
	}
	qn, dn := norm(q), norm(d)
	if qn == 0 || dn == 0 {
		return 0
	}
	return dot / (qn * dn)
}

func norm(v model.SparseVector) float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}
