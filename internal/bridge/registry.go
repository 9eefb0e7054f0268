package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/ytdl-desktop/internal/logging"
	"github.com/ytget/ytdl-desktop/internal/model"
)

// Registry defaults
const (
	DefaultHistorySize = 50
	InvocationIDPrefix = "inv-"
)

var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrInvalidArgs      = errors.New("invalid command arguments")
	ErrDuplicateCommand = errors.New("command already registered")
)

// HandlerFunc runs one command invocation. args is the raw JSON object the
// web UI sent; the returned value is encoded back as JSON.
type HandlerFunc func(ctx context.Context, args json.RawMessage) (any, error)

// Targeter is implemented by argument structs that name the path or URL a
// call acts on, so the shell can show it.
type Targeter interface {
	InvocationTarget() string
}

// Typed adapts a function taking decoded arguments into a HandlerFunc.
func Typed[T any](fn func(ctx context.Context, args T) (any, error)) HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var args T
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &args); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidArgs, err)
			}
		}
		if t, ok := any(args).(Targeter); ok {
			setTarget(ctx, t.InvocationTarget())
		}
		return fn(ctx, args)
	}
}

// Registry maps command names to handlers and keeps a bounded history of
// recent invocations for the shell UI.
type Registry struct {
	handlers    map[string]HandlerFunc
	recent      []*model.Invocation
	historySize int
	mu          sync.RWMutex
	onUpdate    func(model.Invocation) // callback for UI updates
}

// NewRegistry creates an empty command registry
func NewRegistry() *Registry {
	return &Registry{
		handlers:    make(map[string]HandlerFunc),
		historySize: DefaultHistorySize,
	}
}

// SetUpdateCallback sets the callback invoked with a snapshot each time an
// invocation changes state
func (r *Registry) SetUpdateCallback(callback func(model.Invocation)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onUpdate = callback
}

// SetHistorySize bounds the number of invocations kept for Recent
func (r *Registry) SetHistorySize(size int) {
	if size < 1 {
		size = 1
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.historySize = size
	r.trimHistory()
}

// Register adds a command under name
func (r *Registry) Register(name string, handler HandlerFunc) error {
	if name == "" {
		return errors.New("command name is empty")
	}
	if handler == nil {
		return fmt.Errorf("command %s: handler is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, name)
	}
	r.handlers[name] = handler
	return nil
}

// Commands returns the registered command names in sorted order
func (r *Registry) Commands() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Recent returns snapshots of recent invocations, newest first
func (r *Registry) Recent() []model.Invocation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Invocation, 0, len(r.recent))
	for i := len(r.recent) - 1; i >= 0; i-- {
		out = append(out, *r.recent[i])
	}
	return out
}

// Invoke runs the named command with args and returns the invocation ID
// alongside the handler's result.
func (r *Registry) Invoke(ctx context.Context, name string, args json.RawMessage) (string, any, error) {
	r.mu.RLock()
	handler, exists := r.handlers[name]
	r.mu.RUnlock()

	if !exists {
		logging.Warn("unknown command", logging.Fields{logging.FieldCommand: name})
		return "", nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	inv := &model.Invocation{
		ID:        generateInvocationID(),
		Command:   name,
		Status:    model.StatusPending,
		StartedAt: time.Now(),
	}
	r.record(inv)

	ctx = withTargetSink(ctx, func(target string) {
		r.update(inv, func(inv *model.Invocation) { inv.Target = target })
	})
	r.update(inv, func(inv *model.Invocation) { inv.Status = model.StatusRunning })

	result, err := runHandler(ctx, handler, args)

	r.update(inv, func(inv *model.Invocation) {
		inv.FinishedAt = time.Now()
		if err != nil {
			inv.Status = model.StatusError
			inv.LastError = err.Error()
		} else {
			inv.Status = model.StatusCompleted
		}
	})

	fields := logging.Fields{
		logging.FieldCommand:    name,
		logging.FieldInvocation: inv.ID,
		logging.FieldDuration:   time.Since(inv.StartedAt).String(),
	}
	if err != nil {
		fields[logging.FieldError] = err
		logging.Warn("command failed", fields)
	} else {
		logging.Debug("command completed", fields)
	}

	return inv.ID, result, err
}

// runHandler converts a handler panic into an error so the invocation
// still finishes.
func runHandler(ctx context.Context, handler HandlerFunc, args json.RawMessage) (result any, err error) {
	defer func() {
		if p := recover(); p != nil {
			result = nil
			err = fmt.Errorf("command panicked: %v", p)
		}
	}()
	return handler(ctx, args)
}

// record appends inv to the history and notifies the UI
func (r *Registry) record(inv *model.Invocation) {
	r.mu.Lock()
	r.recent = append(r.recent, inv)
	r.trimHistory()
	snapshot, callback := *inv, r.onUpdate
	r.mu.Unlock()

	if callback != nil {
		callback(snapshot)
	}
}

// update mutates inv under the registry lock and notifies the UI
func (r *Registry) update(inv *model.Invocation, mutate func(*model.Invocation)) {
	r.mu.Lock()
	mutate(inv)
	snapshot, callback := *inv, r.onUpdate
	r.mu.Unlock()

	if callback != nil {
		callback(snapshot)
	}
}

// trimHistory drops the oldest entries beyond historySize. Callers hold mu.
func (r *Registry) trimHistory() {
	if excess := len(r.recent) - r.historySize; excess > 0 {
		r.recent = append(r.recent[:0:0], r.recent[excess:]...)
	}
}

// generateInvocationID generates a time-ordered unique invocation ID
func generateInvocationID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(InvocationIDPrefix+"%d", time.Now().UnixNano())
	}
	return InvocationIDPrefix + id.String()
}

type targetSinkKey struct{}

func withTargetSink(ctx context.Context, sink func(string)) context.Context {
	return context.WithValue(ctx, targetSinkKey{}, sink)
}

// setTarget reports the path or URL the current invocation acts on
func setTarget(ctx context.Context, target string) {
	if target == "" {
		return
	}
	if sink, ok := ctx.Value(targetSinkKey{}).(func(string)); ok {
		sink(target)
	}
}
