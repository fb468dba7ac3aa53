package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"writerly/internal/modules/plugin/domain"
	"writerly/internal/modules/plugin/dto"
	"writerly/internal/modules/plugin/service"
)

type fakeStore struct {
	manifests []domain.Manifest
}

func (s fakeStore) Load(context.Context) ([]domain.Manifest, error) {
	return s.manifests, nil
}

type fakeHost struct {
	commands  []domain.CommandDescriptor
	lifecycle error
	requests  *[]domain.AnalyzeRequest
	output    string
}

func (h fakeHost) CheckLifecycle(context.Context, domain.Manifest) error { return h.lifecycle }
func (fakeHost) GetMetadata(context.Context, domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: "fake", Version: "1"}, nil
}
func (h fakeHost) ListCommands(context.Context, domain.Manifest) ([]domain.CommandDescriptor, error) {
	return h.commands, nil
}
func (h fakeHost) Analyze(_ context.Context, _ domain.Manifest, req domain.AnalyzeRequest) (domain.AnalyzeResult, error) {
	if h.requests != nil {
		*h.requests = append(*h.requests, req)
	}
	out := h.output
	if out == "" {
		out = `{"words":3}`
	}
	return domain.AnalyzeResult{Stdout: "ok", OutputJSON: out}, nil
}

type fakeWorks struct {
	err error
}

func (w fakeWorks) Work(_ context.Context, workID string) (domain.WorkInput, error) {
	if w.err != nil {
		return domain.WorkInput{}, w.err
	}
	return domain.WorkInput{WorkID: workID, Title: "Salt", Genre: "literary", Content: "One two three."}, nil
}

func manifestWithBinary(t *testing.T, enabled bool, caps []domain.Capability) domain.Manifest {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plugin-bin")
	payload := []byte("#!/bin/sh\necho ok\n")
	if err := os.WriteFile(path, payload, 0o755); err != nil {
		t.Fatalf("write plugin binary: %v", err)
	}
	sum := sha256.Sum256(payload)
	return domain.Manifest{
		Name:         "wordstats",
		Version:      "1.0.0",
		Binary:       path,
		SHA256:       hex.EncodeToString(sum[:]),
		Enabled:      enabled,
		Capabilities: caps,
	}
}

var analyze = []domain.Capability{domain.CapabilityAnalyze}

func TestAnalyzeSendsWorkAsJSON(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true, analyze)
	var requests []domain.AnalyzeRequest
	host := fakeHost{commands: []domain.CommandDescriptor{{ID: "stats", TimeoutMS: 1500}}, requests: &requests}
	svc := service.NewPluginService(fakeStore{manifests: []domain.Manifest{manifest}}, host, fakeWorks{}, nil)

	out, err := svc.Analyze(context.Background(), dto.AnalyzeInput{PluginName: "wordstats", CommandID: "stats", WorkID: "w1"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if out.WorkTitle != "Salt" || out.OutputJSON != `{"words":3}` || out.PluginName != "wordstats" {
		t.Fatalf("unexpected output: %+v", out)
	}
	if len(requests) != 1 {
		t.Fatalf("expected one analyze call, got %d", len(requests))
	}
	req := requests[0]
	if req.TimeoutMS != 1500 || req.WorkID != "w1" {
		t.Fatalf("unexpected request: %+v", req)
	}
	var payload map[string]string
	if err := json.Unmarshal([]byte(req.InputJSON), &payload); err != nil {
		t.Fatalf("decode input json: %v", err)
	}
	if payload["title"] != "Salt" || payload["genre"] != "literary" || payload["content"] != "One two three." || len(payload) != 3 {
		t.Fatalf("unexpected input payload: %v", payload)
	}
}

func TestAnalyzeRejectsDisabledPlugin(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, false, analyze)
	svc := service.NewPluginService(fakeStore{manifests: []domain.Manifest{manifest}}, fakeHost{}, fakeWorks{}, nil)
	_, err := svc.Analyze(context.Background(), dto.AnalyzeInput{PluginName: manifest.Name, CommandID: "stats", WorkID: "w1"})
	if !errors.Is(err, domain.ErrPluginDisabled) {
		t.Fatalf("expected ErrPluginDisabled, got %v", err)
	}
}

func TestAnalyzeRejectsUnknownPluginAndCommand(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true, analyze)
	host := fakeHost{commands: []domain.CommandDescriptor{{ID: "stats"}}}
	svc := service.NewPluginService(fakeStore{manifests: []domain.Manifest{manifest}}, host, fakeWorks{}, nil)

	if _, err := svc.Analyze(context.Background(), dto.AnalyzeInput{PluginName: "missing", CommandID: "stats"}); !errors.Is(err, domain.ErrPluginNotFound) {
		t.Fatalf("expected ErrPluginNotFound, got %v", err)
	}
	if _, err := svc.Analyze(context.Background(), dto.AnalyzeInput{PluginName: manifest.Name, CommandID: "summarize"}); !errors.Is(err, domain.ErrCommandNotFound) {
		t.Fatalf("expected ErrCommandNotFound, got %v", err)
	}
}

func TestAnalyzeRejectsChecksumMismatch(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true, analyze)
	manifest.SHA256 = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	svc := service.NewPluginService(fakeStore{manifests: []domain.Manifest{manifest}}, fakeHost{}, fakeWorks{}, nil)
	if _, err := svc.Analyze(context.Background(), dto.AnalyzeInput{PluginName: manifest.Name, CommandID: "stats"}); !errors.Is(err, domain.ErrChecksumMismatch) {
		t.Fatalf("expected ErrChecksumMismatch, got %v", err)
	}
}

func TestAnalyzeMapsLifecycleTimeout(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true, analyze)
	host := fakeHost{lifecycle: context.DeadlineExceeded}
	svc := service.NewPluginService(fakeStore{manifests: []domain.Manifest{manifest}}, host, fakeWorks{}, nil)
	if _, err := svc.Analyze(context.Background(), dto.AnalyzeInput{PluginName: manifest.Name, CommandID: "stats"}); !errors.Is(err, domain.ErrPluginTimeout) {
		t.Fatalf("expected ErrPluginTimeout, got %v", err)
	}
}

func TestAnalyzeSurfacesWorkErrorsAndInvalidOutput(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true, analyze)
	host := fakeHost{commands: []domain.CommandDescriptor{{ID: "stats"}}}
	notFound := errors.New("work not found")
	svc := service.NewPluginService(fakeStore{manifests: []domain.Manifest{manifest}}, host, fakeWorks{err: notFound}, nil)
	if _, err := svc.Analyze(context.Background(), dto.AnalyzeInput{PluginName: manifest.Name, CommandID: "stats", WorkID: "w1"}); !errors.Is(err, notFound) {
		t.Fatalf("expected work error, got %v", err)
	}

	host.output = `{not json`
	svc = service.NewPluginService(fakeStore{manifests: []domain.Manifest{manifest}}, host, fakeWorks{}, nil)
	if _, err := svc.Analyze(context.Background(), dto.AnalyzeInput{PluginName: manifest.Name, CommandID: "stats", WorkID: "w1"}); err == nil {
		t.Fatalf("expected invalid output json error")
	}
}

func TestListRejectsDuplicateNames(t *testing.T) {
	t.Parallel()
	manifest := manifestWithBinary(t, true, analyze)
	svc := service.NewPluginService(fakeStore{manifests: []domain.Manifest{manifest, manifest}}, fakeHost{}, fakeWorks{}, nil)
	if _, err := svc.List(context.Background()); err == nil {
		t.Fatalf("expected duplicate plugin error")
	}
}

func TestDoctorReportsPerPlugin(t *testing.T) {
	t.Parallel()
	healthy := manifestWithBinary(t, true, analyze)
	missing := manifestWithBinary(t, true, analyze)
	missing.Name = "missing"
	missing.Binary = filepath.Join(t.TempDir(), "gone")
	tampered := manifestWithBinary(t, true, analyze)
	tampered.Name = "tampered"
	tampered.SHA256 = "cccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccccc"
	invalid := domain.Manifest{Name: "invalid"}

	svc := service.NewPluginService(fakeStore{manifests: []domain.Manifest{healthy, missing, tampered, invalid}}, fakeHost{}, fakeWorks{}, nil)
	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if r := results[0]; !r.BinaryReachable || !r.ChecksumValid || !r.LifecycleOK || r.Error != "" {
		t.Fatalf("healthy plugin reported problems: %+v", r)
	}
	if r := results[1]; r.BinaryReachable || r.Error == "" {
		t.Fatalf("missing binary not reported: %+v", r)
	}
	if r := results[2]; !r.BinaryReachable || r.ChecksumValid || r.Error != "checksum mismatch" {
		t.Fatalf("tampered binary not reported: %+v", r)
	}
	if r := results[3]; r.Error == "" {
		t.Fatalf("invalid manifest not reported: %+v", r)
	}
}
