package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/osmkit/mapscript/service/messaging"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
)

// Config holds configuration for the filesystem queue
type Config struct {
	// BaseURL is the base location for queue entries (any afs scheme)
	BaseURL string
	// MaxRetries is the number of redeliveries before an entry lands in failed/
	MaxRetries int
}

// DefaultConfig returns a default queue configuration
func DefaultConfig() Config {
	return Config{
		BaseURL:    "/tmp/mapscript/queue",
		MaxRetries: 3,
	}
}

type entry[T any] struct {
	ID        string    `json:"id"`
	Data      T         `json:"data"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Retries   int       `json:"retries"`
}

// Message implements messaging.Message for the filesystem queue
type Message[T any] struct {
	entry     entry[T]
	queue     *Queue[T]
	processed bool
	mu        sync.Mutex
}

// T returns the message payload
func (m *Message[T]) T() *T {
	return &m.entry.Data
}

// Ack moves the entry to the completed directory
func (m *Message[T]) Ack() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return fmt.Errorf("message already processed")
	}
	m.processed = true
	return m.queue.move(context.Background(), m.entry, m.queue.completedURL)
}

// Nack redelivers the entry or moves it to the failed directory
func (m *Message[T]) Nack(err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processed {
		return fmt.Errorf("message already processed")
	}
	m.processed = true
	m.entry.Retries++
	if err != nil {
		m.entry.Error = err.Error()
	}
	if m.entry.Retries <= m.queue.config.MaxRetries {
		return m.queue.store(context.Background(), m.entry, m.queue.pendingURL)
	}
	return m.queue.store(context.Background(), m.entry, m.queue.failedURL)
}

// Queue implements an afs-backed messaging.Queue; entries survive process
// restarts, which makes the queue double as a run journal
type Queue[T any] struct {
	fs           afs.Service
	config       Config
	pendingURL   string
	completedURL string
	failedURL    string
	mu           sync.Mutex
}

// NewQueue creates a new filesystem-backed queue
func NewQueue[T any](fs afs.Service, config Config) (*Queue[T], error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = DefaultConfig().MaxRetries
	}
	q := &Queue[T]{
		fs:           fs,
		config:       config,
		pendingURL:   path.Join(config.BaseURL, "pending"),
		completedURL: path.Join(config.BaseURL, "completed"),
		failedURL:    path.Join(config.BaseURL, "failed"),
	}
	ctx := context.Background()
	for _, dir := range []string{q.pendingURL, q.completedURL, q.failedURL} {
		if err := fs.Create(ctx, dir, file.DefaultDirOsMode, true); err != nil {
			if ok, _ := fs.Exists(ctx, dir); !ok {
				return nil, fmt.Errorf("failed to create queue dir %s: %w", dir, err)
			}
		}
	}
	return q, nil
}

// Publish persists a new entry into the pending directory
func (q *Queue[T]) Publish(ctx context.Context, payload *T) error {
	anEntry := entry[T]{
		ID:        uuid.New().String(),
		Data:      *payload,
		CreatedAt: time.Now(),
	}
	return q.store(ctx, anEntry, q.pendingURL)
}

// Consume retrieves the oldest pending entry; it returns nil when the queue
// is empty
func (q *Queue[T]) Consume(ctx context.Context) (messaging.Message[T], error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	objects, err := q.fs.List(ctx, q.pendingURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", q.pendingURL, err)
	}
	var names []string
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		names = append(names, object.URL())
	}
	if len(names) == 0 {
		return nil, nil
	}
	sort.Strings(names)

	data, err := q.fs.DownloadWithURL(ctx, names[0])
	if err != nil {
		return nil, err
	}
	var anEntry entry[T]
	if err := json.Unmarshal(data, &anEntry); err != nil {
		return nil, fmt.Errorf("corrupted queue entry %s: %w", names[0], err)
	}
	if err := q.fs.Delete(ctx, names[0]); err != nil {
		return nil, err
	}
	return &Message[T]{entry: anEntry, queue: q}, nil
}

func (q *Queue[T]) store(ctx context.Context, anEntry entry[T], baseURL string) error {
	data, err := json.Marshal(anEntry)
	if err != nil {
		return err
	}
	name := fmt.Sprintf("%d-%s.json", anEntry.CreatedAt.UnixNano(), anEntry.ID)
	return q.fs.Upload(ctx, path.Join(baseURL, name), file.DefaultFileOsMode, bytes.NewReader(data))
}

func (q *Queue[T]) move(ctx context.Context, anEntry entry[T], baseURL string) error {
	return q.store(ctx, anEntry, baseURL)
}
