// Package persist keeps a byte key-value backend in sync with the task
// sequence. Loading never fails: anything unreadable is treated as no saved
// state.
package persist

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tgienger/kanban/internal/models"
)

// DefaultKey is the key the task collection is stored under
const DefaultKey = "tasks"

// ErrNotFound is returned by a Backend when a key holds no value
var ErrNotFound = errors.New("key not found")

// Backend is a byte-oriented key-value store
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

//go:embed schema.json
var schemaJSON string

const schemaURL = "kanban://tasks.schema.json"

var taskSchema = compileSchema()

// genericJSON keeps numbers as json.Number so large ids validate as integers
var genericJSON = sonic.Config{UseNumber: true}.Froze()

func compileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("persist: add schema: %v", err))
	}
	return compiler.MustCompile(schemaURL)
}

// Option configures an Adapter
type Option func(*Adapter)

// WithKey overrides DefaultKey
func WithKey(key string) Option {
	return func(a *Adapter) {
		if key != "" {
			a.key = key
		}
	}
}

// WithTimeout bounds each backend call
func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithRetries sets how many times a failed write is retried
func WithRetries(n int) Option {
	return func(a *Adapter) {
		if n >= 0 {
			a.retries = n
		}
	}
}

// WithLogger sets the logger used to report persistence failures
func WithLogger(l *log.Logger) Option {
	return func(a *Adapter) { a.log = l }
}

// Adapter serializes the task sequence under a fixed key
type Adapter struct {
	backend Backend
	key     string
	timeout time.Duration
	retries int
	log     *log.Logger
}

// NewAdapter creates an adapter over backend
func NewAdapter(backend Backend, opts ...Option) *Adapter {
	a := &Adapter{
		backend: backend,
		key:     DefaultKey,
		timeout: 2 * time.Second,
		retries: 1,
		log:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Key returns the key tasks are stored under
func (a *Adapter) Key() string {
	return a.key
}

// Save writes the full sequence. Failures are logged and never reach the
// caller; the in-memory store stays authoritative.
func (a *Adapter) Save(tasks []models.Task) {
	if err := a.save(tasks); err != nil {
		a.log.Error("saving tasks", "key", a.key, "count", len(tasks), "err", err)
	}
}

func (a *Adapter) save(tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}
	data, err := Encode(tasks)
	if err != nil {
		return err
	}

	for attempt := 0; ; attempt++ {
		err = a.set(data)
		if err == nil || attempt >= a.retries {
			return err
		}
		a.log.Warn("retrying task write", "key", a.key, "attempt", attempt+1, "err", err)
	}
}

func (a *Adapter) set(data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	return a.backend.Set(ctx, a.key, data)
}

// Load reads the saved sequence. A missing key, a backend error or data
// that does not decode yields an empty sequence.
func (a *Adapter) Load() []models.Task {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	data, err := a.backend.Get(ctx, a.key)
	if errors.Is(err, ErrNotFound) {
		a.log.Debug("no saved tasks", "key", a.key)
		return []models.Task{}
	}
	if err != nil {
		a.log.Error("reading tasks", "key", a.key, "err", err)
		return []models.Task{}
	}

	tasks, err := Decode(data)
	if err != nil {
		a.log.Warn("discarding saved tasks", "key", a.key, "err", err)
		return []models.Task{}
	}
	a.log.Debug("loaded tasks", "key", a.key, "count", len(tasks))
	return tasks
}

// Encode serializes tasks as a JSON array
func Encode(tasks []models.Task) ([]byte, error) {
	data, err := sonic.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return data, nil
}

// Decode parses and validates a JSON array of tasks. Duplicate ids are
// rejected.
func Decode(data []byte) ([]models.Task, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("decode tasks: empty document")
	}
	if string(bytes.TrimSpace(data)) == "null" {
		return []models.Task{}, nil
	}

	var doc interface{}
	if err := genericJSON.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	if err := taskSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate tasks: %w", err)
	}

	var tasks []models.Task
	if err := sonic.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	seen := make(map[int64]bool, len(tasks))
	for i := range tasks {
		if seen[tasks[i].ID] {
			return nil, fmt.Errorf("decode tasks: duplicate id %d", tasks[i].ID)
		}
		seen[tasks[i].ID] = true
		tasks[i].Date = models.NormalizeDate(tasks[i].Date)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return tasks, nil
}
