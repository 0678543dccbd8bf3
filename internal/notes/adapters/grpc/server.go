// Package grpc содержит gRPC сервер проверки здоровья сервиса заметок.
package grpc

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"smartnotes/internal/notes/config"
	"smartnotes/internal/notes/ports/repositories"
	"smartnotes/pkg/logger"
)

// ServiceName - имя сервиса в протоколе grpc.health.v1.
const ServiceName = "smartnotes.Notes"

const (
	defaultHealthInterval = 10 * time.Second
	probeTimeout          = 2 * time.Second
)

// Server представляет gRPC сервер.
type Server struct {
	server   *grpc.Server
	health   *health.Server
	checker  repositories.HealthChecker
	address  string
	interval time.Duration
	listener net.Listener

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New создает gRPC сервер с сервисами health и reflection.
// Статус определяется доступностью хранилища.
func New(cfg *config.GRPCConfig, checker repositories.HealthChecker) *Server {
	interval := cfg.HealthInterval
	if interval <= 0 {
		interval = defaultHealthInterval
	}

	server := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)
	reflection.Register(server)

	return &Server{
		server:   server,
		health:   healthServer,
		checker:  checker,
		address:  cfg.GetAddress(),
		interval: interval,
	}
}

// Start запускает gRPC сервер и фоновую проверку хранилища.
func (s *Server) Start(ctx context.Context) error {
	log := logger.Log(ctx)

	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	s.listener = listener

	s.Probe(ctx)

	probeCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.wg.Add(1)
	go s.probeLoop(probeCtx)

	log.Info(ctx, "gRPC server started", zap.String("address", listener.Addr().String()))

	go func() {
		if err := s.server.Serve(listener); err != nil {
			log.Error(ctx, "failed to serve gRPC", zap.Error(err))
		}
	}()

	return nil
}

// Addr возвращает фактический адрес после Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.address
	}
	return s.listener.Addr().String()
}

// Probe проверяет хранилище и обновляет статус здоровья.
func (s *Server) Probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.checker.Ping(pingCtx); err != nil {
		logger.Log(ctx).Warn(ctx, "store health probe failed", zap.Error(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

func (s *Server) probeLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Probe(ctx)
		}
	}
}

// Stop останавливает проверки и gRPC сервер.
func (s *Server) Stop(ctx context.Context) {
	logger.Log(ctx).Info(ctx, "stopping gRPC server")

	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()

	s.health.Shutdown()
	s.server.GracefulStop()
}
