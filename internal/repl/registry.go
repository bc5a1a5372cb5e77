package repl

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"
)

// Handler runs a command with its argument tokens. Handlers report every
// failure as a Result; they never return errors to the dispatcher.
type Handler interface {
	Execute(ctx context.Context, args []string) Result
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, args []string) Result

// Execute calls f.
func (f HandlerFunc) Execute(ctx context.Context, args []string) Result {
	return f(ctx, args)
}

// Kind tags how a binding was created.
type Kind int

const (
	KindBuiltin Kind = iota
	KindAlias
	KindExpression
)

func (k Kind) String() string {
	switch k {
	case KindAlias:
		return "alias"
	case KindExpression:
		return "expr"
	default:
		return "builtin"
	}
}

// Binding is a registry entry.
type Binding struct {
	Name    string
	Kind    Kind
	Handler Handler
	// Target is the aliased command name for KindAlias.
	Target string
	// Source is the expression text for KindExpression.
	Source string
}

// Registry maps case-sensitive command names to bindings. Registering an
// existing name silently replaces it.
type Registry struct {
	mu       sync.RWMutex
	bindings map[string]Binding
}

const maxAliasDepth = 16

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{bindings: make(map[string]Binding)}
}

func validateName(name string) error {
	if name == "" || strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Register binds name to a built-in handler.
func (r *Registry) Register(name string, h Handler) error {
	if err := validateName(name); err != nil {
		return err
	}
	if h == nil {
		return ErrNilHandler
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[name] = Binding{Name: name, Kind: KindBuiltin, Handler: h}
	return nil
}

// RegisterFunc is Register for a plain function.
func (r *Registry) RegisterFunc(name string, fn func(ctx context.Context, args []string) Result) error {
	if fn == nil {
		return ErrNilHandler
	}
	return r.Register(name, HandlerFunc(fn))
}

// RegisterAlias binds name to whatever target is bound to at call time.
// target must already be registered and must not resolve back to name.
func (r *Registry) RegisterAlias(name, target string) error {
	if err := validateName(name); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bindings[target]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTarget, target)
	}
	for cur, depth := target, 0; depth < maxAliasDepth; depth++ {
		if cur == name {
			return fmt.Errorf("%w: %s -> %s", ErrAliasCycle, name, target)
		}
		b, ok := r.bindings[cur]
		if !ok || b.Kind != KindAlias {
			break
		}
		cur = b.Target
	}
	r.bindings[name] = Binding{
		Name:    name,
		Kind:    KindAlias,
		Target:  target,
		Handler: aliasHandler{registry: r, target: target},
	}
	return nil
}

// RegisterExpression compiles source and binds name to it.
func (r *Registry) RegisterExpression(name, source string) error {
	if err := validateName(name); err != nil {
		return err
	}
	h, err := compileExpression(source)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindings[name] = Binding{Name: name, Kind: KindExpression, Source: source, Handler: h}
	return nil
}

// Lookup returns the handler bound to name. Matching is exact.
func (r *Registry) Lookup(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bindings[name]
	if !ok {
		return nil, false
	}
	return b.Handler, true
}

// Binding returns the full binding for name.
func (r *Registry) Binding(name string) (Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bindings[name]
	return b, ok
}

// Names returns every registered name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.bindings))
	for name := range r.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type aliasHandler struct {
	registry *Registry
	target   string
}

type aliasDepthKey struct{}

func (a aliasHandler) Execute(ctx context.Context, args []string) Result {
	depth, _ := ctx.Value(aliasDepthKey{}).(int)
	if depth >= maxAliasDepth {
		return Text(fmt.Sprintf("Alias chain too deep at %s", a.target))
	}
	h, ok := a.registry.Lookup(a.target)
	if !ok {
		return Text(notFoundMessage(a.target))
	}
	return h.Execute(context.WithValue(ctx, aliasDepthKey{}, depth+1), args)
}
