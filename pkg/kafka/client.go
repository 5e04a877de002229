// Package kafka 提供了与 Kafka 消息队列交互的功能。
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"

	"doc-intel-go/internal/config"
	"doc-intel-go/pkg/events"
	"doc-intel-go/pkg/log"
)

// MaxAttempts 是一条事件在提交 offset 放弃之前允许失败的次数。
const MaxAttempts = 3

// EventHandler 处理一条文档生命周期事件。
type EventHandler interface {
	Handle(ctx context.Context, event events.DocumentEvent) error
}

// Producer 向主题写入文档事件。
type Producer struct {
	writer  *kafka.Writer
	brokers []string
}

// NewProducer 初始化 Kafka 生产者。
func NewProducer(cfg config.KafkaConfig) *Producer {
	addrs := brokers(cfg.Brokers)
	w := &kafka.Writer{
		Addr:                   kafka.TCP(addrs...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	log.Info("Kafka 生产者初始化成功")
	return &Producer{writer: w, brokers: addrs}
}

// Publish 发送一条事件，以 doc_id 作为消息 key。
func (p *Producer) Publish(ctx context.Context, event events.DocumentEvent) error {
	b, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.DocID),
		Value: b,
	})
}

// Ping 尝试连接第一个 broker。
func (p *Producer) Ping(ctx context.Context) error {
	if len(p.brokers) == 0 {
		return errors.New("no kafka brokers configured")
	}
	conn, err := kafka.DialContext(ctx, "tcp", p.brokers[0])
	if err != nil {
		return err
	}
	return conn.Close()
}

// Close 关闭底层 writer。
func (p *Producer) Close() error {
	return p.writer.Close()
}

// AttemptCounter 记录事件的失败次数。
type AttemptCounter interface {
	Incr(ctx context.Context, key string) (int64, error)
	Reset(ctx context.Context, key string) error
}

// AttemptKey 返回事件失败计数使用的 key。
func AttemptKey(event events.DocumentEvent) string {
	return fmt.Sprintf("mirror:attempts:%s:%s", event.DocID, event.Type)
}

// RedisCounter 使用 Redis INCR 计数，并设置 24 小时过期。
type RedisCounter struct {
	rdb *redis.Client
}

// NewRedisCounter 基于 Redis 客户端创建计数器。
func NewRedisCounter(rdb *redis.Client) *RedisCounter {
	return &RedisCounter{rdb: rdb}
}

func (c *RedisCounter) Incr(ctx context.Context, key string) (int64, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	_ = c.rdb.Expire(ctx, key, 24*time.Hour).Err()
	return n, nil
}

func (c *RedisCounter) Reset(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// MemoryCounter 是进程内计数器，未启用 Redis 时使用。
type MemoryCounter struct {
	mu     sync.Mutex
	counts map[string]int64
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{counts: make(map[string]int64)}
}

func (c *MemoryCounter) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[key]++
	return c.counts[key], nil
}

func (c *MemoryCounter) Reset(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.counts, key)
	return nil
}

// Decision 是处理一条消息之后对 offset 的处置。
type Decision int

const (
	// Retry 不提交 offset，让消息重新投递。
	Retry Decision = iota
	// Commit 提交 offset。
	Commit
)

// Dispatch 解析并处理一条消息，返回是否应提交 offset。
func Dispatch(ctx context.Context, value []byte, handler EventHandler, counter AttemptCounter) Decision {
	var event events.DocumentEvent
	if err := json.Unmarshal(value, &event); err != nil {
		// 消息格式错误，直接提交，避免阻塞队列
		log.Errorf("无法解析 Kafka 消息: %v, value: %s", err, string(value))
		return Commit
	}

	key := AttemptKey(event)
	if err := handler.Handle(ctx, event); err != nil {
		log.Errorf("处理文档事件失败: type=%s, doc_id=%s, error: %v", event.Type, event.DocID, err)
		attempts, incErr := counter.Incr(ctx, key)
		if incErr != nil {
			// 计数异常时保守处理：不提交 offset，让 Kafka 重试
			log.Error("记录失败次数出错", incErr)
			return Retry
		}
		if attempts >= MaxAttempts {
			log.Errorf("文档事件多次失败(>=%d)，提交 offset 终止重试: doc_id=%s", MaxAttempts, event.DocID)
			_ = counter.Reset(ctx, key)
			return Commit
		}
		return Retry
	}

	_ = counter.Reset(ctx, key)
	return Commit
}

// StartConsumer 启动消费者循环，直到 ctx 被取消。
func StartConsumer(ctx context.Context, cfg config.KafkaConfig, handler EventHandler, counter AttemptCounter) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers(cfg.Brokers),
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	})
	defer func() {
		if err := r.Close(); err != nil {
			log.Errorf("关闭 Kafka 消费者失败: %v", err)
		}
	}()

	log.Infof("Kafka 消费者已启动，正在监听主题 '%s'", cfg.Topic)
	consume(ctx, r, handler, counter, fetchBackoff)
}

// fetchBackoff 是拉取失败后的等待时间。
const fetchBackoff = time.Second

// messageReader 是 consume 用到的 kafka.Reader 子集。
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// consume 循环拉取并处理消息，直到 ctx 结束。拉取失败时等待 backoff 后继续。
func consume(ctx context.Context, r messageReader, handler EventHandler, counter AttemptCounter, backoff time.Duration) {
	for {
		m, err := r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("Kafka 消费者已停止")
				return
			}
			log.Error("从 Kafka 读取消息失败", err)
			select {
			case <-ctx.Done():
				log.Info("Kafka 消费者已停止")
				return
			case <-time.After(backoff):
			}
			continue
		}

		if Dispatch(ctx, m.Value, handler, counter) == Retry {
			// reader 不会重新投递未提交的消息，这里原地重放直到可以提交
			if !retry(ctx, m, handler, counter) {
				continue
			}
		}
		if err := r.CommitMessages(ctx, m); err != nil {
			log.Errorf("提交 Kafka 消息 offset 失败: %v", err)
		}
	}
}

// retry 反复投递同一条消息直到应当提交或 ctx 结束。返回 true 表示应提交。
func retry(ctx context.Context, m kafka.Message, handler EventHandler, counter AttemptCounter) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(time.Second):
		}
		if Dispatch(ctx, m.Value, handler, counter) == Commit {
			return true
		}
	}
}

func brokers(s string) []string {
	var out []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}
