package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers
)

func TestNewConsoleLogger(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "list-files", "DEBUG")

	g.Expect(logger.writer).To(BeIdenticalTo(buf))
	g.Expect(logger.logLevel).To(Equal("debug"))
	g.Expect(logger.colorOutput).To(BeFalse())

	g.Expect(NewConsoleLogger(buf, "list-files", "loud").logLevel).To(Equal("warn"))
	g.Expect(NewConsoleLogger(buf, "list-files", "").logLevel).To(Equal("warn"))
}

func TestDiagnosticIgnoresLevel(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "list-files", "error")

	logger.Diagnostic("cannot access 'nope': No such file or directory")

	g.Expect(buf.String()).To(Equal("list-files: cannot access 'nope': No such file or directory\n"))
}

func TestLevelFiltering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level    string
		expected []string
	}{
		{"trace", []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}},
		{"debug", []string{"DEBUG", "INFO", "WARN", "ERROR"}},
		{"info", []string{"INFO", "WARN", "ERROR"}},
		{"warn", []string{"WARN", "ERROR"}},
		{"error", []string{"ERROR"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			buf := &bytes.Buffer{}
			logger := NewConsoleLogger(buf, "list-files", tt.level)

			logger.LogTrace("t")
			logger.LogDebug("d")
			logger.LogInfo("i")
			logger.LogWarn("w")
			logger.LogError("e")

			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
			g.Expect(lines).To(HaveLen(len(tt.expected)))

			for i, tag := range tt.expected {
				g.Expect(lines[i]).To(HavePrefix("list-files: [" + tag + "] "))
			}
		})
	}
}

func TestNilWriterDiscards(t *testing.T) {
	t.Parallel()

	logger := NewConsoleLogger(nil, "list-files", "trace")
	logger.Diagnostic("x")
	logger.LogError("y")
}

func TestConcurrentWrites(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "list-files", "info")

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Diagnostic("message")
		}()
	}
	wg.Wait()

	g.Expect(strings.Count(buf.String(), "list-files: message\n")).To(Equal(20))
}
