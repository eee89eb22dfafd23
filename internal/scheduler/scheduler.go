package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/LJTian/AINewsHub/internal/pipeline"
	"github.com/robfig/cron/v3"
)

// Scheduler 按 cron 表达式周期性触发流水线。
// 流水线内部对运行做了串行化，同一个存储不会出现并发合并。
type Scheduler struct {
	cron *cron.Cron
	pipe *pipeline.Pipeline
}

func New(spec string, pipe *pipeline.Pipeline) (*Scheduler, error) {
	c := cron.New()
	s := &Scheduler{cron: c, pipe: pipe}

	if _, err := c.AddFunc(spec, s.runOnce); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	// 延迟首轮采集，避免与启动期的请求争抢资源
	const startupDelay = 15 * time.Second
	time.AfterFunc(startupDelay, func() {
		go s.runOnce()
	})
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// Cron 暴露底层 cron，便于挂载额外任务（如定期清理）
func (s *Scheduler) Cron() *cron.Cron {
	return s.cron
}

// RunOnce 对外暴露的单次执行入口，方便手动触发采集
func (s *Scheduler) RunOnce() {
	s.runOnce()
}

func (s *Scheduler) runOnce() {
	log.Println("start collect job...")

	summary, err := s.pipe.Run(context.Background(), pipeline.Options{})
	if err != nil {
		log.Printf("collect job failed: %v", err)
		return
	}
	if summary.Warning != "" {
		log.Printf("collect job warning: %s", summary.Warning)
	}
	log.Printf("collect job done, new=%d failed_sources=%d", summary.NewItemCount, len(summary.FailedSources))
}
