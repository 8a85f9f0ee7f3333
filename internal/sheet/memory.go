package sheet

import (
	"context"
	"strings"
	"sync"
)

// Memory is an in-process Client. It backs tests and keeps the API usable
// when no Google credentials are configured.
type Memory struct {
	mu   sync.Mutex
	tabs map[string][][]string
}

// NewMemory creates an empty in-process sheet.
func NewMemory() *Memory {
	return &Memory{tabs: make(map[string][][]string)}
}

// tabOf reduces an A1 range like "Logs!A:F" to its tab name. The Memory
// client keys rows by tab only; column bounds are ignored.
func tabOf(readRange string) string {
	if i := strings.Index(readRange, "!"); i >= 0 {
		return readRange[:i]
	}
	return readRange
}

func (m *Memory) Append(ctx context.Context, readRange string, row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tab := tabOf(readRange)
	m.tabs[tab] = append(m.tabs[tab], append([]string(nil), row...))
	return nil
}

func (m *Memory) Read(ctx context.Context, readRange string) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows, ok := m.tabs[tabOf(readRange)]
	if !ok {
		return nil, ErrSheetNotFound
	}

	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}
