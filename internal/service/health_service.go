package service

import (
	"context"
	"time"
)

// 依赖状态。
const (
	StatusConnected    = "connected"
	StatusNotAvailable = "not available"
	StatusDisabled     = "disabled"
)

const pingTimeout = 2 * time.Second

// Pinger 检查一个外部依赖是否可达。
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc 让普通函数满足 Pinger。
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Dependency 是一个可选依赖。Pinger 为 nil 表示未启用。
type Dependency struct {
	Name   string
	Pinger Pinger
}

// HealthReport 汇总了存储和可选依赖的状态。
type HealthReport struct {
	DatabaseOK   bool
	Dependencies map[string]string
}

// HealthService 接口定义了健康检查操作。
type HealthService interface {
	Check(ctx context.Context) HealthReport
}

type healthService struct {
	database Pinger
	deps     []Dependency
}

// NewHealthService 创建一个新的 HealthService 实例。database 为 nil 表示存储未连接。
func NewHealthService(database Pinger, deps ...Dependency) HealthService {
	return &healthService{database: database, deps: deps}
}

// Check 逐个探测依赖。
func (s *healthService) Check(ctx context.Context) HealthReport {
	report := HealthReport{
		DatabaseOK:   s.database != nil && ping(ctx, s.database) == nil,
		Dependencies: make(map[string]string, len(s.deps)),
	}
	for _, d := range s.deps {
		switch {
		case d.Pinger == nil:
			report.Dependencies[d.Name] = StatusDisabled
		case ping(ctx, d.Pinger) != nil:
			report.Dependencies[d.Name] = StatusNotAvailable
		default:
			report.Dependencies[d.Name] = StatusConnected
		}
	}
	return report
}

func ping(ctx context.Context, p Pinger) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return p.Ping(ctx)
}
