package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kochabx/apikit/errors"
	"github.com/kochabx/apikit/log"
	"github.com/kochabx/apikit/transport"
)

var (
	ErrAlreadyStarted = errors.New(http.StatusConflict, "application already started")
	ErrClosePanic     = errors.New(http.StatusInternalServerError, "close function panicked")
)

// Application 管理服务器和关闭函数的生命周期
type Application struct {
	ctx             context.Context
	cancel          context.CancelFunc
	shutdownTimeout time.Duration
	signals         []os.Signal
	servers         []transport.Server
	closeFuncs      []CloseFunc
	closeTimeout    time.Duration
	logger          *log.Logger
	mu              sync.RWMutex
	started         bool
}

// CloseFunc 具有超时的关闭函数
type CloseFunc struct {
	Name    string
	Fn      func(context.Context) error
	Timeout time.Duration
}

type Option func(*Application)

// WithContext 设置应用的根上下文
func WithContext(ctx context.Context) Option {
	return func(app *Application) {
		if ctx != nil {
			app.ctx, app.cancel = context.WithCancel(ctx)
		}
	}
}

// WithShutdownTimeout 设置服务器关闭的超时时间
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(app *Application) {
		if timeout > 0 {
			app.shutdownTimeout = timeout
		}
	}
}

// WithCloseTimeout 设置关闭函数的默认超时时间
func WithCloseTimeout(timeout time.Duration) Option {
	return func(app *Application) {
		if timeout > 0 {
			app.closeTimeout = timeout
		}
	}
}

// WithSignals 设置用于优雅关闭的信号
func WithSignals(signals ...os.Signal) Option {
	return func(app *Application) {
		if len(signals) > 0 {
			app.signals = append([]os.Signal(nil), signals...)
		}
	}
}

// WithLogger 设置生命周期日志
func WithLogger(logger *log.Logger) Option {
	return func(app *Application) {
		if logger != nil {
			app.logger = logger
		}
	}
}

// WithServers 向应用添加服务器，忽略 nil
func WithServers(servers ...transport.Server) Option {
	return func(app *Application) {
		for _, server := range servers {
			if server != nil {
				app.servers = append(app.servers, server)
			}
		}
	}
}

// WithClose 添加在关闭期间执行的关闭函数，timeout 为 0 时使用默认值
func WithClose(name string, fn func(context.Context) error, timeout time.Duration) Option {
	return func(app *Application) {
		if fn == nil {
			app.logger.Warn().Str("name", name).Msg("nil close function ignored")
			return
		}
		app.closeFuncs = append(app.closeFuncs, CloseFunc{Name: name, Fn: fn, Timeout: timeout})
	}
}

// New 使用给定选项创建应用实例
func New(options ...Option) *Application {
	app := &Application{
		shutdownTimeout: 30 * time.Second,
		closeTimeout:    30 * time.Second,
		signals:         []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT},
		logger:          log.G,
	}
	app.ctx, app.cancel = context.WithCancel(context.Background())

	for _, opt := range options {
		opt(app)
	}

	for i := range app.closeFuncs {
		if app.closeFuncs[i].Timeout <= 0 {
			app.closeFuncs[i].Timeout = app.closeTimeout
		}
	}

	return app
}

// Start 启动所有服务器并阻塞，直到收到信号、Stop 被调用或某个服务器失败。
// 返回前执行全部关闭函数。
func (app *Application) Start() error {
	app.mu.Lock()
	if app.started {
		app.mu.Unlock()
		return ErrAlreadyStarted
	}
	app.started = true
	servers := append([]transport.Server(nil), app.servers...)
	app.mu.Unlock()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, app.signals...)
	defer signal.Stop(sigCh)

	eg, egCtx := errgroup.WithContext(app.ctx)

	for _, server := range servers {
		eg.Go(func() error {
			if err := server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})

		eg.Go(func() error {
			<-egCtx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), app.shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		})
	}

	// 处理关闭信号
	eg.Go(func() error {
		select {
		case sig := <-sigCh:
			app.logger.Info().Str("signal", sig.String()).Msg("received shutdown signal")
			app.cancel()
		case <-egCtx.Done():
		}
		return nil
	})

	err := eg.Wait()
	app.runCloseTasks()

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Stop 优雅地停止应用
func (app *Application) Stop() {
	app.cancel()
}

// runCloseTasks 并发执行所有关闭函数
func (app *Application) runCloseTasks() {
	app.mu.RLock()
	closeFuncs := append([]CloseFunc(nil), app.closeFuncs...)
	app.mu.RUnlock()

	eg := &errgroup.Group{}
	for _, c := range closeFuncs {
		eg.Go(func() error {
			return app.runCloseTask(c)
		})
	}

	if err := eg.Wait(); err != nil {
		app.logger.Error().Err(err).Msg("some close functions failed")
	}
}

// runCloseTask 执行单个带超时的关闭函数
func (app *Application) runCloseTask(c CloseFunc) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				app.logger.Error().Interface("panic", r).Str("close", c.Name).Msg("close function panicked")
				done <- ErrClosePanic
			}
		}()
		done <- c.Fn(ctx)
	}()

	select {
	case err := <-done:
		if err != nil {
			app.logger.Error().Err(err).Str("close", c.Name).Msg("close function failed")
		}
		return err
	case <-ctx.Done():
		app.logger.Warn().Str("close", c.Name).Msg("close function timed out")
		return ctx.Err()
	}
}

// Info 返回应用状态信息
func (app *Application) Info() ApplicationInfo {
	app.mu.RLock()
	defer app.mu.RUnlock()

	return ApplicationInfo{
		Started:     app.started,
		ServerCount: len(app.servers),
		CloseCount:  len(app.closeFuncs),
	}
}

// ApplicationInfo 提供应用状态信息
type ApplicationInfo struct {
	Started     bool `json:"started"`
	ServerCount int  `json:"server_count"`
	CloseCount  int  `json:"close_count"`
}
