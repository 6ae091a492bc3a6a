package app

import (
	"errors"

	"github.com/complaint-desk/internal/config"
	"github.com/complaint-desk/internal/provider"
	"github.com/complaint-desk/internal/router"
	"github.com/complaint-desk/internal/worker"
)

// servicePlan 运行模式对应的组件规划
type servicePlan struct {
	http    bool
	worker  bool
	skipped []SkippedService
}

// planServices 根据模式与队列开关决定启动哪些组件
func planServices(cfg *config.Config, mode string) servicePlan {
	var plan servicePlan
	switch mode {
	case ModeAPI:
		plan.http = true
		plan.skipped = append(plan.skipped, SkippedService{Name: workerServiceName, Reason: "mode api"})
	case ModeWorker:
		plan.worker = true
		plan.skipped = append(plan.skipped, SkippedService{Name: httpServiceName, Reason: "mode worker"})
	default:
		plan.http = true
		if cfg != nil && cfg.Queue.Enabled {
			plan.worker = true
		} else {
			// 队列未启用时通知走直连邮件，无需消费者
			plan.skipped = append(plan.skipped, SkippedService{Name: workerServiceName, Reason: "queue disabled"})
		}
	}
	return plan
}

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, *provider.Container, error) {
	if cfg == nil {
		return nil, nil, errors.New("config is nil")
	}
	mode = NormalizeMode(mode)
	if err := ValidateMode(mode); err != nil {
		return nil, nil, err
	}

	container, err := provider.NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	plan := planServices(cfg, mode)
	runner := NewRunner(mode)
	if plan.http {
		engine := router.SetupRouter(cfg, container)
		runner.Add(NewHTTPService(cfg.Server, engine))
	}
	if plan.worker {
		consumer := worker.NewConsumer(container)
		workerService, err := worker.NewService(&cfg.Queue, consumer)
		if err != nil {
			container.Close()
			return nil, nil, err
		}
		runner.Add(workerService)
	}
	for _, skipped := range plan.skipped {
		runner.Skip(skipped.Name, skipped.Reason)
	}

	if len(runner.ServiceNames()) == 0 {
		container.Close()
		return nil, nil, errors.New("no services initialized (check mode and config)")
	}
	return runner, container, nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, container, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}
	defer container.Close()

	opts.Logger.Infow("app_start", "addr", listenAddr(opts.Config.Server), "mode", runner.Mode())
	return RunWithOptions(runner, opts)
}
