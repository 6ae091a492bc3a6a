package app

import (
	"context"
	"errors"
	"os/signal"
	"time"

	"go.uber.org/zap"
)

const (
	httpServiceName   = "http"
	workerServiceName = "worker"
)

// Service 可由 Runner 托管的进程组件
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// SkippedService 当前模式下未启动的组件
type SkippedService struct {
	Name   string
	Reason string
}

// Runner 按运行模式托管 http / worker 组件
type Runner struct {
	mode     string
	services []Service
	skipped  []SkippedService
}

type serviceExit struct {
	name string
	err  error
}

// NewRunner 创建服务运行器
func NewRunner(mode string, services ...Service) *Runner {
	r := &Runner{mode: mode}
	for _, svc := range services {
		r.Add(svc)
	}
	return r
}

// Add 追加需要启动的组件
func (r *Runner) Add(svc Service) *Runner {
	r.services = append(r.services, svc)
	return r
}

// Skip 记录当前模式下不启动的组件
func (r *Runner) Skip(name, reason string) *Runner {
	r.skipped = append(r.skipped, SkippedService{Name: name, Reason: reason})
	return r
}

// Mode 运行模式
func (r *Runner) Mode() string {
	if r == nil {
		return ""
	}
	return r.mode
}

// ServiceNames 将要启动的组件名
func (r *Runner) ServiceNames() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.services))
	for _, svc := range r.services {
		names = append(names, serviceName(svc))
	}
	return names
}

// Skipped 被跳过的组件
func (r *Runner) Skipped() []SkippedService {
	if r == nil {
		return nil
	}
	return append([]SkippedService(nil), r.skipped...)
}

// RunWithOptions 运行服务并处理系统信号
func RunWithOptions(runner *Runner, opts Options) error {
	if runner == nil {
		return errors.New("runner is nil")
	}
	opts = normalizeOptions(opts)
	ctx, cancel := signal.NotifyContext(context.Background(), opts.Signals...)
	defer cancel()
	return runner.Run(ctx, opts.ShutdownTimeout, opts.Logger)
}

// Run 启动全部组件，任一组件退出或 ctx 取消时整体停止
func (r *Runner) Run(ctx context.Context, stopTimeout time.Duration, log *zap.SugaredLogger) error {
	if r == nil || len(r.services) == 0 {
		return errors.New("no services to run")
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	skippedNames := make([]string, 0, len(r.skipped))
	for _, skipped := range r.skipped {
		skippedNames = append(skippedNames, skipped.Name)
		log.Infow("service_skipped", "mode", r.mode, "service", skipped.Name, "reason", skipped.Reason)
	}
	log.Infow("runner_start", "mode", r.mode, "services", r.ServiceNames(), "skipped", skippedNames)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	exits := make(chan serviceExit, len(r.services))
	for _, svc := range r.services {
		go startService(ctx, svc, exits, log)
	}

	var runErr error
	select {
	case <-ctx.Done():
		runErr = ctx.Err()
		log.Infow("runner_stopping", "mode", r.mode, "cause", "signal")
	case exit := <-exits:
		runErr = exit.err
		if exit.err != nil {
			log.Errorw("service_failed", "mode", r.mode, "service", exit.name, "error", exit.err)
		} else {
			log.Warnw("service_exited_early", "mode", r.mode, "service", exit.name)
		}
	}
	cancel()

	if stopTimeout <= 0 {
		stopTimeout = defaultShutdownTimeout
	}
	stopCtx, stopCancel := context.WithTimeout(context.Background(), stopTimeout)
	defer stopCancel()
	// 倒序停止：后启动的 worker 先于 http 退出
	for i := len(r.services) - 1; i >= 0; i-- {
		svc := r.services[i]
		if svc == nil {
			continue
		}
		if err := svc.Stop(stopCtx); err != nil {
			log.Errorw("service_stop_failed", "service", svc.Name(), "error", err)
		}
	}
	log.Infow("runner_stopped", "mode", r.mode)

	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

func startService(ctx context.Context, svc Service, exits chan<- serviceExit, log *zap.SugaredLogger) {
	name := serviceName(svc)
	if svc == nil {
		exits <- serviceExit{name: name, err: errors.New("service is nil")}
		return
	}
	log.Infow("service_start", "service", name)
	err := svc.Start(ctx)
	log.Infow("service_exit", "service", name)
	exits <- serviceExit{name: name, err: err}
}

func serviceName(svc Service) string {
	if svc == nil {
		return "unknown"
	}
	return svc.Name()
}
