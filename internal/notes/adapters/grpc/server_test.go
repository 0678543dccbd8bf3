package grpc_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	grpcAdapter "smartnotes/internal/notes/adapters/grpc"
	"smartnotes/internal/notes/config"
)

type switchableChecker struct {
	failing atomic.Bool
}

func (c *switchableChecker) Ping(_ context.Context) error {
	if c.failing.Load() {
		return errors.New("store unreachable")
	}
	return nil
}

func startServer(t *testing.T, checker *switchableChecker, interval time.Duration) (*grpcAdapter.Server, healthpb.HealthClient) {
	t.Helper()
	ctx := context.Background()

	server := grpcAdapter.New(&config.GRPCConfig{
		Host:           "127.0.0.1",
		Port:           0,
		HealthInterval: interval,
	}, checker)
	require.NoError(t, server.Start(ctx))
	t.Cleanup(func() { server.Stop(ctx) })

	conn, err := grpc.NewClient(server.Addr(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return server, healthpb.NewHealthClient(conn)
}

func check(t *testing.T, client healthpb.HealthClient, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestServer_ServingWhenStoreReachable(t *testing.T) {
	_, client := startServer(t, &switchableChecker{}, time.Hour)

	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, client, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, client, grpcAdapter.ServiceName))
}

func TestServer_ProbeTracksStore(t *testing.T) {
	checker := &switchableChecker{}
	server, client := startServer(t, checker, time.Hour)

	checker.failing.Store(true)
	server.Probe(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, client, grpcAdapter.ServiceName))

	checker.failing.Store(false)
	server.Probe(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, client, grpcAdapter.ServiceName))
}

func TestServer_BackgroundProbe(t *testing.T) {
	checker := &switchableChecker{}
	_, client := startServer(t, checker, 20*time.Millisecond)

	checker.failing.Store(true)

	assert.Eventually(t, func() bool {
		return check(t, client, "") == healthpb.HealthCheckResponse_NOT_SERVING
	}, 2*time.Second, 20*time.Millisecond)
}

func TestServer_StartFailsOnInvalidAddress(t *testing.T) {
	server := grpcAdapter.New(&config.GRPCConfig{Host: "256.0.0.1", Port: 1}, &switchableChecker{})

	err := server.Start(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
	server.Stop(context.Background())
}
