package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

type Capability string

const CapabilityAnalyze Capability = "analyze"

var (
	ErrPluginNotFound    = errors.New("plugin not found")
	ErrPluginDisabled    = errors.New("plugin is disabled")
	ErrChecksumMismatch  = errors.New("plugin checksum mismatch")
	ErrCapabilityMissing = errors.New("plugin capability missing")
	ErrCommandNotFound   = errors.New("plugin command not found")
	ErrPluginTimeout     = errors.New("plugin timeout")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

type Manifest struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Binary       string       `json:"binary"`
	SHA256       string       `json:"sha256"`
	Enabled      bool         `json:"enabled"`
	Capabilities []Capability `json:"capabilities"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("plugin binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("plugin sha256 must be lowercase 64-char hex")
	}
	if len(m.Capabilities) == 0 {
		return fmt.Errorf("plugin capabilities are required")
	}
	seen := map[Capability]struct{}{}
	for _, capability := range m.Capabilities {
		if err := capability.Validate(); err != nil {
			return err
		}
		if _, ok := seen[capability]; ok {
			return fmt.Errorf("duplicate capability: %s", capability)
		}
		seen[capability] = struct{}{}
	}
	return nil
}

func (c Capability) Validate() error {
	if c != CapabilityAnalyze {
		return fmt.Errorf("unknown capability: %s", c)
	}
	return nil
}

func (m Manifest) HasCapability(capability Capability) bool {
	for _, c := range m.Capabilities {
		if c == capability {
			return true
		}
	}
	return false
}

type CommandDescriptor struct {
	ID          string
	Title       string
	Description string
	TimeoutMS   int
}

func (d CommandDescriptor) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("command id is required")
	}
	if d.TimeoutMS < 0 {
		return fmt.Errorf("command %s: timeout must not be negative", d.ID)
	}
	return nil
}

type Metadata struct {
	Name         string
	Version      string
	Capabilities []Capability
}

// WorkInput is the document handed to an analyzer.
type WorkInput struct {
	WorkID  string `json:"-"`
	Title   string `json:"title"`
	Genre   string `json:"genre"`
	Content string `json:"content"`
}

type AnalyzeRequest struct {
	CommandID string
	WorkID    string
	InputJSON string
	TimeoutMS int
}

func (r AnalyzeRequest) Validate() error {
	if strings.TrimSpace(r.CommandID) == "" {
		return fmt.Errorf("command id is required")
	}
	if r.InputJSON == "" {
		return fmt.Errorf("analyzer input is required")
	}
	return nil
}

type AnalyzeResult struct {
	Stdout     string
	Stderr     string
	OutputJSON string
	ExitCode   int
}
