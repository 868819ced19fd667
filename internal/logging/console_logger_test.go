package logging

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/cadpost/pkg/cadpost"
)

var (
	_ cadpost.Logger = (*ConsoleLogger)(nil)
	_ cadpost.Logger = (*ZapLogger)(nil)
	_ cadpost.Logger = (*NullLogger)(nil)
)

func TestConsoleLogger_Verbose_WhenEnabled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLoggerTo(&buf, true)
	logger.Verbose("parsed %s", "CADAssembly.xml")

	assert.Equal(t, "[VERBOSE] parsed CADAssembly.xml\n", buf.String())
}

func TestConsoleLogger_Verbose_WhenDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLoggerTo(&buf, false)
	logger.Verbose("parsed %s", "CADAssembly.xml")

	assert.Empty(t, buf.String())
}

func TestConsoleLogger_InfoAndError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLoggerTo(&buf, false)

	logger.Info("wrote %d components", 6)
	logger.Error("missing input")

	assert.Equal(t, "wrote 6 components\n[ERROR] missing input\n", buf.String())
}

func TestConsoleLogger_NoArgsKeepsPercent(t *testing.T) {
	var buf bytes.Buffer
	NewConsoleLoggerTo(&buf, false).Info("100% done")

	assert.Equal(t, "100% done\n", buf.String())
}

func TestConsoleLogger_ConcurrentWritesAreLineAtomic(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLoggerTo(&buf, true)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.Verbose("message %d", n)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 20)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "[VERBOSE] message "), fmt.Sprintf("unexpected line %q", line))
	}
}

func TestNullLogger_DiscardsEverything(t *testing.T) {
	logger := NewNullLogger()
	assert.NotPanics(t, func() {
		logger.Verbose("x %d", 1)
		logger.Info("y")
		logger.Error("z")
	})
}
