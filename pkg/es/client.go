// Package es 提供了与 Elasticsearch 交互的客户端功能，用于维护切片的全文检索镜像。
package es

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"doc-intel-go/internal/config"
	"doc-intel-go/internal/model"
	"doc-intel-go/pkg/log"
)

const indexMapping = `{
	"mappings": {
		"properties": {
			"chunk_key": { "type": "keyword" },
			"doc_id": { "type": "keyword" },
			"title": { "type": "text" },
			"chunk": { "type": "integer" },
			"text": { "type": "text" }
		}
	}
}`

// Client 封装 Elasticsearch 客户端和目标索引。
type Client struct {
	es    *elasticsearch.Client
	index string
}

// InitES 初始化 Elasticsearch 客户端并确保索引存在。
func InitES(esCfg config.ElasticsearchConfig) (*Client, error) {
	cfg := elasticsearch.Config{
		Addresses: strings.Split(esCfg.Addresses, ","),
		Username:  esCfg.Username,
		Password:  esCfg.Password,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	c := &Client{es: client, index: esCfg.IndexName}
	if err := c.createIndexIfNotExists(); err != nil {
		return nil, err
	}
	return c, nil
}

// createIndexIfNotExists 检查索引是否存在，如果不存在则创建它
func (c *Client) createIndexIfNotExists() error {
	res, err := c.es.Indices.Exists([]string{c.index})
	if err != nil {
		log.Errorf("检查索引是否存在时出错: %v", err)
		return err
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		log.Infof("索引 '%s' 已存在", c.index)
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("检查索引是否存在时收到意外的状态码: %d", res.StatusCode)
	}

	res, err = c.es.Indices.Create(c.index, c.es.Indices.Create.WithBody(strings.NewReader(indexMapping)))
	if err != nil {
		log.Errorf("创建索引 '%s' 失败: %v", c.index, err)
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		log.Errorf("创建索引 '%s' 时 Elasticsearch 返回错误: %s", c.index, res.String())
		return errors.New("创建索引时 Elasticsearch 返回错误")
	}
	log.Infof("索引 '%s' 创建成功", c.index)
	return nil
}

// ChunkKey 返回切片在索引中的文档 ID。
func ChunkKey(docID string, chunk int) string {
	return fmt.Sprintf("%s_%d", docID, chunk)
}

// IndexChunk 写入（或覆盖）单个切片。
func (c *Client) IndexChunk(ctx context.Context, doc model.EsChunk) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      c.index,
		DocumentID: doc.ChunkKey,
		Body:       bytes.NewReader(body),
		Refresh:    "true",
	}
	res, err := req.Do(ctx, c.es)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		log.Errorf("索引切片到 Elasticsearch 出错: %s", res.String())
		return errors.New("failed to index chunk")
	}
	return nil
}

// DeleteByDocID 删除属于某个文档的全部切片。
func (c *Client) DeleteByDocID(ctx context.Context, docID string) error {
	body, err := json.Marshal(DocIDQuery(docID))
	if err != nil {
		return err
	}
	req := esapi.DeleteByQueryRequest{
		Index: []string{c.index},
		Body:  bytes.NewReader(body),
	}
	res, err := req.Do(ctx, c.es)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		log.Errorf("按文档删除 Elasticsearch 切片出错: %s", res.String())
		return errors.New("failed to delete chunks")
	}
	return nil
}

// Search 对切片文本执行关键词 match 查询。
func (c *Client) Search(ctx context.Context, query string, size int) ([]model.Match, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(MatchQuery(query, size)); err != nil {
		return nil, err
	}
	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch search error: %s", res.String())
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, err
	}
	return sr.matches(), nil
}

// Ping 检查集群是否可达。
func (c *Client) Ping(ctx context.Context) error {
	res, err := c.es.Ping(c.es.Ping.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch ping: %s", res.Status())
	}
	return nil
}

// MatchQuery 构造全文检索的请求体。
func MatchQuery(query string, size int) map[string]interface{} {
	return map[string]interface{}{
		"size": size,
		"query": map[string]interface{}{
			"match": map[string]interface{}{
				"text": map[string]interface{}{
					"query": query,
				},
			},
		},
	}
}

// DocIDQuery 构造按 doc_id 精确匹配的请求体。
func DocIDQuery(docID string) map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{
				"doc_id": docID,
			},
		},
	}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Score  float64       `json:"_score"`
			Source model.EsChunk `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (r searchResponse) matches() []model.Match {
	out := make([]model.Match, 0, len(r.Hits.Hits))
	for _, h := range r.Hits.Hits {
		out = append(out, model.Match{
			DocID: h.Source.DocID,
			Text:  h.Source.Text,
			Score: h.Score,
			Metadata: map[string]interface{}{
				model.MetaKeyTitle: h.Source.Title,
				model.MetaKeyChunk: h.Source.Chunk,
			},
		})
	}
	return out
}
