package service

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strings"
	"testing"
)

func TestLogAIExchange(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	long := strings.Repeat("가", aiLogSnippetRunes+100)
	logAIExchange("DRAFT", "response", long)

	out := buf.String()
	if !strings.Contains(out, "inklog-ai DRAFT/response") {
		t.Fatalf("missing exchange label: %q", out)
	}
	if !strings.Contains(out, fmt.Sprintf("共 %d 字符", aiLogSnippetRunes+100)) {
		t.Fatalf("missing total length marker: %q", out)
	}
	if strings.Contains(out, long) {
		t.Fatal("long content logged without truncation")
	}

	buf.Reset()
	logAIExchange("KEYWORDS", "prompt", "  ")
	if !strings.Contains(buf.String(), "空内容") {
		t.Fatalf("blank content not flagged: %q", buf.String())
	}

	buf.Reset()
	logAIExchange("KEYWORDS", "response", `["go"]`)
	if !strings.Contains(buf.String(), `["go"]`) {
		t.Fatalf("short content not logged verbatim: %q", buf.String())
	}
}
