package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/pianao-store/internal/config"
)

// HTTPService HTTP 服务封装
type HTTPService struct {
	name    string
	server  *http.Server
	onStops []func(ctx context.Context)
}

// NewHTTPService 按服务器配置创建 HTTP 服务
func NewHTTPService(cfg config.ServerConfig, handler http.Handler) *HTTPService {
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if cfg.ReadTimeoutSeconds > 0 {
		server.ReadTimeout = time.Duration(cfg.ReadTimeoutSeconds) * time.Second
	}
	if cfg.WriteTimeoutSeconds > 0 {
		server.WriteTimeout = time.Duration(cfg.WriteTimeoutSeconds) * time.Second
	}
	return &HTTPService{name: "http", server: server}
}

// Name 服务名称
func (s *HTTPService) Name() string {
	if s == nil || s.name == "" {
		return "http"
	}
	return s.name
}

// Start 启动服务
func (s *HTTPService) Start(ctx context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("http server not initialized")
	}
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// OnStop 注册服务关闭后的收尾函数，按注册顺序执行
func (s *HTTPService) OnStop(fn func(ctx context.Context)) {
	if s == nil || fn == nil {
		return
	}
	s.onStops = append(s.onStops, fn)
}

// Stop 停止服务，请求处理结束后执行收尾函数
func (s *HTTPService) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	err := s.server.Shutdown(ctx)
	for _, fn := range s.onStops {
		fn(ctx)
	}
	return err
}
