package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	hclog "github.com/hashicorp/go-hclog"

	"writerly/internal/modules/plugin/domain"
	"writerly/internal/modules/plugin/dto"
	pluginout "writerly/internal/modules/plugin/port/out"
	"writerly/internal/platform/logging"
)

type PluginService struct {
	store  pluginout.ManifestStore
	host   pluginout.Host
	works  pluginout.WorkSource
	logger hclog.Logger
}

func NewPluginService(store pluginout.ManifestStore, host pluginout.Host, works pluginout.WorkSource, logger hclog.Logger) *PluginService {
	return &PluginService{store: store, host: host, works: works, logger: logging.OrNull(logger).Named("plugin")}
}

func (s *PluginService) List(ctx context.Context) ([]dto.PluginInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PluginInfo, 0, len(manifests))
	for _, m := range manifests {
		caps := make([]string, 0, len(m.Capabilities))
		for _, c := range m.Capabilities {
			caps = append(caps, string(c))
		}
		out = append(out, dto.PluginInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary, Capabilities: caps})
	}
	return out, nil
}

func (s *PluginService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		result.BinaryReachable = fileExists(m.Binary)
		if result.BinaryReachable {
			result.ChecksumValid = checksumMatches(m.Binary, m.SHA256) == nil
		}
		switch {
		case !result.BinaryReachable:
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		case !result.ChecksumValid:
			result.Error = "checksum mismatch"
		case !m.Enabled:
			result.Error = "disabled"
		case s.host != nil:
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if result.Error != "" {
			s.logger.Debug("plugin check failed", "plugin", m.Name, "error", result.Error)
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *PluginService) ListCommands(ctx context.Context, pluginName string) ([]dto.CommandInfo, error) {
	manifest, err := s.getRunnableManifest(ctx, pluginName)
	if err != nil {
		return nil, err
	}
	commands, err := s.host.ListCommands(ctx, manifest)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CommandInfo, 0, len(commands))
	for _, command := range commands {
		out = append(out, dto.CommandInfo{
			ID:          command.ID,
			Title:       command.Title,
			Description: command.Description,
			TimeoutMS:   command.TimeoutMS,
		})
	}
	return out, nil
}

// Analyze loads the work, hands it to the plugin as JSON and returns what
// the plugin produced.
func (s *PluginService) Analyze(ctx context.Context, input dto.AnalyzeInput) (dto.AnalyzeOutput, error) {
	manifest, err := s.getRunnableManifest(ctx, input.PluginName)
	if err != nil {
		return dto.AnalyzeOutput{}, err
	}
	commands, err := s.host.ListCommands(ctx, manifest)
	if err != nil {
		return dto.AnalyzeOutput{}, err
	}
	command, err := requireCommand(commands, input.CommandID)
	if err != nil {
		return dto.AnalyzeOutput{}, err
	}

	work, err := s.works.Work(ctx, input.WorkID)
	if err != nil {
		return dto.AnalyzeOutput{}, fmt.Errorf("load work for analysis: %w", err)
	}
	payload, err := json.Marshal(work)
	if err != nil {
		return dto.AnalyzeOutput{}, fmt.Errorf("encode analyzer input: %w", err)
	}
	req := domain.AnalyzeRequest{
		CommandID: command.ID,
		WorkID:    work.WorkID,
		InputJSON: string(payload),
		TimeoutMS: command.TimeoutMS,
	}
	if err := req.Validate(); err != nil {
		return dto.AnalyzeOutput{}, err
	}

	result, err := s.host.Analyze(ctx, manifest, req)
	if err != nil {
		return dto.AnalyzeOutput{}, err
	}
	if result.OutputJSON != "" && !json.Valid([]byte(result.OutputJSON)) {
		return dto.AnalyzeOutput{}, fmt.Errorf("plugin %s returned invalid output json", manifest.Name)
	}
	return dto.AnalyzeOutput{
		PluginName: manifest.Name,
		CommandID:  command.ID,
		WorkID:     work.WorkID,
		WorkTitle:  work.Title,
		Stdout:     result.Stdout,
		Stderr:     result.Stderr,
		OutputJSON: result.OutputJSON,
		ExitCode:   result.ExitCode,
	}, nil
}

func (s *PluginService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate plugin name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func (s *PluginService) getRunnableManifest(ctx context.Context, pluginName string) (domain.Manifest, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	var manifest domain.Manifest
	found := false
	for _, item := range manifests {
		if item.Name == pluginName {
			manifest = item
			found = true
			break
		}
	}
	if !found {
		return domain.Manifest{}, fmt.Errorf("%w: %q", domain.ErrPluginNotFound, pluginName)
	}
	if !manifest.Enabled {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrPluginDisabled, pluginName)
	}
	if !manifest.HasCapability(domain.CapabilityAnalyze) {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrCapabilityMissing, domain.CapabilityAnalyze)
	}
	if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
		return domain.Manifest{}, err
	}
	if s.host != nil {
		if err := s.host.CheckLifecycle(ctx, manifest); err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrPluginTimeout, pluginName)
			}
			return domain.Manifest{}, err
		}
	}
	return manifest, nil
}

func requireCommand(commands []domain.CommandDescriptor, commandID string) (domain.CommandDescriptor, error) {
	for _, command := range commands {
		if err := command.Validate(); err != nil {
			return domain.CommandDescriptor{}, err
		}
		if command.ID == commandID {
			return command, nil
		}
	}
	return domain.CommandDescriptor{}, fmt.Errorf("%w: %s", domain.ErrCommandNotFound, commandID)
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read plugin binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	if hex.EncodeToString(hash[:]) != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
