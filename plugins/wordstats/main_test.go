package main

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	pluginrpc "writerly/internal/modules/plugin/adapter/out/rpc"
)

func TestAnalyze(t *testing.T) {
	t.Parallel()
	got := analyze(work{Title: "Tide", Content: "The sea rose! It fell...\n\n  \n\nMorning came"})
	want := stats{Title: "Tide", Words: 7, Sentences: 3, Paragraphs: 2, AverageSentenceLength: 2.3, ReadingMinutes: 1}
	if got != want {
		t.Fatalf("analyze = %+v, want %+v", got, want)
	}
}

func TestAnalyzeEmptyAndLong(t *testing.T) {
	t.Parallel()
	if got := analyze(work{}); got != (stats{}) {
		t.Fatalf("empty work should produce zero stats, got %+v", got)
	}
	long := analyze(work{Content: strings.Repeat("word ", 401)})
	if long.ReadingMinutes != 3 || long.Sentences != 1 {
		t.Fatalf("unexpected stats for long text: %+v", long)
	}
}

func TestServerAnalyze(t *testing.T) {
	t.Parallel()
	srv := &server{}
	input, _ := json.Marshal(work{Title: "T", Content: "One. Two."})
	resp, err := srv.Analyze(context.Background(), &pluginrpc.AnalyzeRequest{CommandID: "stats", InputJSON: string(input)})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var out stats
	if err := json.Unmarshal([]byte(resp.OutputJSON), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Words != 2 || out.Sentences != 2 || !strings.Contains(resp.Stdout, "2 words") {
		t.Fatalf("unexpected response: %+v", resp)
	}

	bad, err := srv.Analyze(context.Background(), &pluginrpc.AnalyzeRequest{CommandID: "stats", InputJSON: "{"})
	if err != nil || bad.ExitCode != 2 {
		t.Fatalf("bad input should exit 2, got %+v %v", bad, err)
	}
	if _, err := srv.Analyze(context.Background(), &pluginrpc.AnalyzeRequest{CommandID: "summarize"}); err == nil {
		t.Fatalf("unknown command should fail")
	}
}
