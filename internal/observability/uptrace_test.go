package observability

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/swiss-tournament/internal/config"
	"github.com/riskibarqy/swiss-tournament/internal/platform/logging"
)

func testConfig() config.Config {
	return config.Config{
		ServiceName:    "swiss-tournament-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}
}

func TestInitUptrace_Disabled(t *testing.T) {
	shutdown, err := InitUptrace(testConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(testConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop pyroscope: %v", err)
	}
}

func TestStartPprofServer_Disabled(t *testing.T) {
	srv, err := StartPprofServer(testConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("start pprof: %v", err)
	}
	if srv != nil {
		t.Fatalf("expected no server when pprof is disabled")
	}
	if err := StopPprofServer(srv, nil, time.Second); err != nil {
		t.Fatalf("stop nil pprof server: %v", err)
	}
}

func TestPyroscopeConfig_TagsAndProfiles(t *testing.T) {
	cfg := testConfig()
	cfg.PyroscopeAppName = "swiss-tournament-api"
	cfg.StorageDriver = config.StorageMemory

	got := pyroscopeConfig(cfg)
	if got.ApplicationName != "swiss-tournament-api" {
		t.Fatalf("unexpected application name: %q", got.ApplicationName)
	}
	if got.Tags["storage"] != config.StorageMemory || got.Tags["version"] != "dev" {
		t.Fatalf("unexpected tags: %v", got.Tags)
	}
	memoryProfiles := len(got.ProfileTypes)

	cfg.StorageDriver = config.StoragePostgres
	if n := len(pyroscopeConfig(cfg).ProfileTypes); n != memoryProfiles-2 {
		t.Fatalf("expected mutex profiles only for memory storage, got %d vs %d", n, memoryProfiles)
	}
}
