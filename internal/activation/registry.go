package activation

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

var (
	// ErrUnknown is returned by ByName for names that were never registered.
	ErrUnknown = errors.New("unknown activation")
	// ErrInvalid is returned by Register for an empty name or a nil function.
	ErrInvalid = errors.New("invalid activation")
)

var registry = struct {
	sync.RWMutex
	funcs map[string]Function
}{
	funcs: map[string]Function{
		"relu":    ReLU{},
		"sigmoid": Sigmoid{},
		"tanh":    Tanh{},
	},
}

// Register adds or replaces the activation stored under name.
// Names are case-insensitive.
func Register(name string, f Function) error {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return errors.Wrap(ErrInvalid, "empty name")
	}
	if f == nil {
		return errors.Wrapf(ErrInvalid, "%q: nil function", name)
	}
	registry.Lock()
	defer registry.Unlock()
	registry.funcs[key] = f
	return nil
}

// ByName returns the activation registered under name.
func ByName(name string) (Function, error) {
	registry.RLock()
	defer registry.RUnlock()
	f, ok := registry.funcs[strings.ToLower(name)]
	if !ok {
		return nil, errors.Wrapf(ErrUnknown, "%q (supported: %s)", name, strings.Join(namesLocked(), ", "))
	}
	return f, nil
}

// Names returns all registered names in sorted order.
func Names() []string {
	registry.RLock()
	defer registry.RUnlock()
	return namesLocked()
}

func namesLocked() []string {
	names := make([]string, 0, len(registry.funcs))
	for name := range registry.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// registeredName returns the first name, in sorted order, whose entry equals
// f. Functions of uncomparable types never match.
func registeredName(f Function) (string, bool) {
	t := reflect.TypeOf(f)
	if t == nil || !t.Comparable() {
		return "", false
	}
	registry.RLock()
	defer registry.RUnlock()
	for _, name := range namesLocked() {
		g := registry.funcs[name]
		if reflect.TypeOf(g) == t && g == f {
			return name, true
		}
	}
	return "", false
}

func typeName(f Function) string {
	return fmt.Sprintf("%T", f)
}
