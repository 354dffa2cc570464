package persist

import (
	"context"
	"errors"
	"slices"
)

var errWriteFailed = errors.New("memory backend: write failed")

// MemoryBackend keeps values in a map. Nothing survives the process.
type MemoryBackend struct {
	values map[string][]byte

	// FailWrites makes Set fail the given number of times
	FailWrites int
}

// NewMemoryBackend returns an empty backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

func (m *MemoryBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(v), nil
}

func (m *MemoryBackend) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.FailWrites > 0 {
		m.FailWrites--
		return errWriteFailed
	}
	m.values[key] = slices.Clone(value)
	return nil
}

// GetSetting and SetSetting let the memory backend stand in for a settings
// store too. Settings share the value map under a "setting:" prefix.
func (m *MemoryBackend) GetSetting(key string) (string, error) {
	return string(m.values["setting:"+key]), nil
}

func (m *MemoryBackend) SetSetting(key, value string) error {
	m.values["setting:"+key] = []byte(value)
	return nil
}
