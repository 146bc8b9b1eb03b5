// Package vectorart turns SVG sprite sheets into named scene graph shapes and shares the
// loaded sheet across the process through a once-initialized Provider.
package vectorart

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-story/engine/node"
)

// ErrUnknownShape is returned by Library.Shape for names the sheet does not define.
var ErrUnknownShape = errors.New("unknown shape")

// spriteLibrary is the implementation of the Library interface.
type spriteLibrary struct {
	mu     *sync.RWMutex
	shapes map[string]node.Node
}

// Library defines the interface for a set of named vector-art shapes.
type Library interface {
	// Shape returns a new copy of the named shape.
	//
	// Parameters:
	//   - name: the shape id
	//
	// Returns:
	//   - node.Node: an independent copy of the shape
	//   - error: ErrUnknownShape if the name is not defined
	Shape(name string) (node.Node, error)

	// Names returns the defined shape names in sorted order.
	//
	// Returns:
	//   - []string: the shape names
	Names() []string
}

var _ Library = &spriteLibrary{}

// NewLibrary creates a Library from prototype shapes keyed by name.
//
// Parameters:
//   - shapes: the prototypes; Shape hands out clones, never the prototypes themselves
//
// Returns:
//   - Library: the library
func NewLibrary(shapes map[string]node.Node) Library {
	l := &spriteLibrary{
		mu:     &sync.RWMutex{},
		shapes: make(map[string]node.Node, len(shapes)),
	}
	for name, s := range shapes {
		l.shapes[name] = s
	}
	return l
}

func (l *spriteLibrary) Shape(name string) (node.Node, error) {
	l.mu.RLock()
	proto, ok := l.shapes[name]
	l.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownShape, name)
	}
	return proto.Clone(), nil
}

func (l *spriteLibrary) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.shapes))
	for name := range l.shapes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
