package out

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	pluginrpc "writerly/internal/modules/plugin/adapter/out/rpc"
	"writerly/internal/modules/plugin/domain"
	pluginout "writerly/internal/modules/plugin/port/out"
	"writerly/internal/platform/logging"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

type GRPCHost struct {
	logger hclog.Logger
}

func NewGRPCHost(logger hclog.Logger) pluginout.Host {
	return &GRPCHost{logger: logging.OrNull(logger).Named("plugin")}
}

func (h *GRPCHost) CheckLifecycle(ctx context.Context, manifest domain.Manifest) error {
	_, err := h.GetMetadata(ctx, manifest)
	return err
}

func (h *GRPCHost) GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	client, closeFn, err := h.connect(manifest)
	if err != nil {
		return domain.Metadata{}, err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()

	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	capabilities := make([]domain.Capability, 0, len(meta.Capabilities))
	for _, capability := range meta.Capabilities {
		capabilities = append(capabilities, domain.Capability(capability))
	}
	return domain.Metadata{Name: meta.Name, Version: meta.Version, Capabilities: capabilities}, nil
}

func (h *GRPCHost) ListCommands(ctx context.Context, manifest domain.Manifest) ([]domain.CommandDescriptor, error) {
	client, closeFn, err := h.connect(manifest)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()

	response, err := client.ListCommands(callCtx)
	if err != nil {
		return nil, fmt.Errorf("list commands: %w", err)
	}
	out := make([]domain.CommandDescriptor, 0, len(response.Commands))
	for _, cmd := range response.Commands {
		out = append(out, domain.CommandDescriptor{
			ID:          cmd.ID,
			Title:       cmd.Title,
			Description: cmd.Description,
			TimeoutMS:   int(cmd.TimeoutMS),
		})
	}
	return out, nil
}

func (h *GRPCHost) Analyze(ctx context.Context, manifest domain.Manifest, input domain.AnalyzeRequest) (domain.AnalyzeResult, error) {
	client, closeFn, err := h.connect(manifest)
	if err != nil {
		return domain.AnalyzeResult{}, err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, timeoutFor(input, defaultCallTimeout))
	defer cancel()
	started := time.Now()
	response, err := client.Analyze(callCtx, &pluginrpc.AnalyzeRequest{
		CommandID: input.CommandID,
		WorkID:    input.WorkID,
		InputJSON: input.InputJSON,
	})
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return domain.AnalyzeResult{}, fmt.Errorf("%w: command %s", domain.ErrPluginTimeout, input.CommandID)
		}
		return domain.AnalyzeResult{}, fmt.Errorf("analyze: %w", err)
	}
	h.logger.Debug("analyzer finished", "plugin", manifest.Name, "command", input.CommandID, "exit_code", response.ExitCode, "elapsed", time.Since(started))
	return domain.AnalyzeResult{
		Stdout:     response.Stdout,
		Stderr:     response.Stderr,
		OutputJSON: response.OutputJSON,
		ExitCode:   int(response.ExitCode),
	}, nil
}

func (h *GRPCHost) connect(manifest domain.Manifest) (pluginrpc.AnalyzerClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  pluginrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          pluginrpc.PluginMap(nil),
		Cmd:              exec.Command(manifest.Binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           h.logger.With("plugin", manifest.Name),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start plugin client: %w", err)
	}
	raw, err := rpcClient.Dispense(pluginrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense plugin: %w", err)
	}
	typed, ok := raw.(pluginrpc.AnalyzerClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("plugin rpc client type mismatch")
	}
	return typed, closeFn, nil
}

// timeoutFor prefers the command's declared timeout.
func timeoutFor(input domain.AnalyzeRequest, fallback time.Duration) time.Duration {
	if input.TimeoutMS > 0 {
		return time.Duration(input.TimeoutMS) * time.Millisecond
	}
	return fallback
}

func callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
