package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"

	pluginrpc "writerly/internal/modules/plugin/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

const wordsPerMinute = 200

var paragraphBreak = regexp.MustCompile(`\n\s*\n`)

type work struct {
	Title   string `json:"title"`
	Genre   string `json:"genre"`
	Content string `json:"content"`
}

type stats struct {
	Title                 string  `json:"title"`
	Words                 int     `json:"words"`
	Sentences             int     `json:"sentences"`
	Paragraphs            int     `json:"paragraphs"`
	AverageSentenceLength float64 `json:"average_sentence_length"`
	ReadingMinutes        int     `json:"reading_minutes"`
}

func analyze(w work) stats {
	s := stats{Title: w.Title}
	s.Words = len(strings.Fields(w.Content))
	s.Sentences = countSentences(w.Content)
	for _, p := range paragraphBreak.Split(w.Content, -1) {
		if strings.TrimSpace(p) != "" {
			s.Paragraphs++
		}
	}
	if s.Sentences > 0 {
		s.AverageSentenceLength = math.Round(float64(s.Words)/float64(s.Sentences)*10) / 10
	}
	if s.Words > 0 {
		s.ReadingMinutes = int(math.Ceil(float64(s.Words) / wordsPerMinute))
	}
	return s
}

// countSentences treats a run of terminators as one boundary and counts a
// trailing fragment without a terminator as a sentence.
func countSentences(text string) int {
	count := 0
	pending := false
	for _, r := range text {
		switch {
		case r == '.' || r == '!' || r == '?':
			if pending {
				count++
				pending = false
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			pending = true
		}
	}
	if pending {
		count++
	}
	return count
}

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.Metadata, error) {
	return &pluginrpc.Metadata{
		Name:         "wordstats",
		Version:      "1.0.0",
		Capabilities: []string{"analyze"},
	}, nil
}

func (s *server) ListCommands(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.ListCommandsResponse, error) {
	return &pluginrpc.ListCommandsResponse{Commands: []pluginrpc.CommandDescriptor{
		{ID: "stats", Title: "Word stats", Description: "Counts words, sentences and paragraphs and estimates reading time", TimeoutMS: 2500},
	}}, nil
}

func (s *server) Analyze(_ context.Context, in *pluginrpc.AnalyzeRequest) (*pluginrpc.AnalyzeResponse, error) {
	if in.CommandID != "stats" {
		return nil, fmt.Errorf("unknown command: %s", in.CommandID)
	}
	var w work
	if err := json.Unmarshal([]byte(in.InputJSON), &w); err != nil {
		return &pluginrpc.AnalyzeResponse{Stderr: fmt.Sprintf("decode input: %v", err), ExitCode: 2}, nil
	}
	result := analyze(w)
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	summary := fmt.Sprintf("%d words, %d sentences, %d paragraphs, about %d min to read", result.Words, result.Sentences, result.Paragraphs, result.ReadingMinutes)
	return &pluginrpc.AnalyzeResponse{Stdout: summary, OutputJSON: string(raw)}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: pluginrpc.HandshakeConfig,
		Plugins:         pluginrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
