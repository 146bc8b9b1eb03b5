// Package chapter builds the story chapters. Each chapter owns a root group holding its decorations:
// procedural primitives built synchronously, and vector-art shapes and loaded models that attach
// themselves once they become available.
package chapter

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-story/common"
	"github.com/Carmen-Shannon/oxy-story/config"
	"github.com/Carmen-Shannon/oxy-story/engine/dispatch"
	"github.com/Carmen-Shannon/oxy-story/engine/loader"
	"github.com/Carmen-Shannon/oxy-story/engine/material"
	"github.com/Carmen-Shannon/oxy-story/engine/node"
	"github.com/Carmen-Shannon/oxy-story/engine/timeline"
	"github.com/Carmen-Shannon/oxy-story/engine/vectorart"
)

// Chapter is a story scene: a root node plus a per-frame update hook.
type Chapter interface {
	// Root returns the group holding the chapter's decorations.
	//
	// Returns:
	//   - node.Node: the root group
	Root() node.Node

	// Update advances chapter-local animation. It runs on the frame thread only while the chapter is active.
	//
	// Parameters:
	//   - frame: the current frame timing
	Update(frame timeline.Frame)
}

// base carries what every chapter shares: the root, its texture and the async attach plumbing.
type base struct {
	name string
	cfg  config.Chapter
	root node.Node

	// into is where background decorations attach; the root unless set.
	into node.Node

	texture material.Material

	ctx        context.Context
	loader     loader.Loader
	art        *vectorart.Provider
	dispatcher *dispatch.Queue

	// pending counts background decorations still building.
	pending sync.WaitGroup
}

func newBase(cfg config.Chapter, options ...ChapterBuilderOption) *base {
	b := configure(cfg.Name, options...)
	b.cfg = cfg

	texOpts := []material.MaterialBuilderOption{
		material.WithName(b.name + "-texture"),
		material.WithTexture(fmt.Sprintf("img/%s.png", b.name), cfg.Texture.HueShift, cfg.Texture.Distort),
	}
	if cfg.Texture.Tint != 0 {
		texOpts = append(texOpts, material.WithHexColor(cfg.Texture.Tint))
	}
	b.texture = material.NewMaterial(texOpts...)
	backdrop := node.NewMesh(
		node.WithName("backdrop"),
		node.WithGeometry(node.GeometryPlane, map[string]float32{"width": 2048, "height": 1024}),
		node.WithMaterial(b.texture),
		node.WithPosition(0, 512, -600),
	)
	b.root = node.NewGroup(node.WithName(b.name), node.WithChildren(backdrop))
	return b
}

func configure(name string, options ...ChapterBuilderOption) *base {
	b := &base{
		name: name,
		ctx:  context.Background(),
	}
	for _, opt := range options {
		opt(b)
	}
	return b
}

func (b *base) Root() node.Node {
	return b.root
}

// Update is a no-op; animated chapters override it.
func (b *base) Update(frame timeline.Frame) {}

// Texture returns the chapter's backdrop material.
func (b *base) Texture() material.Material {
	return b.texture
}

// add attaches a synchronously built decoration, applying its authored placement when one exists.
func (b *base) add(key string, n node.Node) {
	b.place(key, n)
	b.root.AddChild(n)
}

func (b *base) place(key string, n node.Node) {
	n.SetName(key)
	if p, ok := b.cfg.Decoration(key); ok {
		n.Apply(p)
	}
}

// attach adds n to the chapter on the frame thread.
func (b *base) attach(n node.Node) {
	into := b.into
	if into == nil {
		into = b.root
	}
	if b.dispatcher == nil {
		into.AddChild(n)
		return
	}
	b.dispatcher.Post(func() { into.AddChild(n) })
}

// decorate builds a decoration in the background and attaches it when it succeeds.
// Errors and panics are logged; the chapter stays usable either way.
func (b *base) decorate(what string, build func() (node.Node, error)) {
	b.pending.Add(1)
	go func() {
		defer b.pending.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("chapter: %s: %s: panic: %v", b.name, what, r)
			}
		}()

		n, err := build()
		if err != nil {
			log.Printf("chapter: %s: %s: %v", b.name, what, err)
			return
		}
		b.attach(n)
	}()
}

// addShape attaches the named vector-art shape once the sprite library is ready.
func (b *base) addShape(key, shape string) {
	if b.art == nil {
		return
	}
	b.decorate(key, func() (node.Node, error) {
		lib, err := b.art.Get(b.ctx)
		if err != nil {
			return nil, err
		}
		n, err := lib.Shape(shape)
		if err != nil {
			return nil, err
		}
		b.place(key, n)
		return n, nil
	})
}

// addShapeAt is addShape with a fixed placement instead of an authored one.
func (b *base) addShapeAt(key, shape string, p common.Placement) {
	if b.art == nil {
		return
	}
	b.decorate(key, func() (node.Node, error) {
		lib, err := b.art.Get(b.ctx)
		if err != nil {
			return nil, err
		}
		n, err := lib.Shape(shape)
		if err != nil {
			return nil, err
		}
		n.SetName(key)
		n.Apply(p)
		return n, nil
	})
}

// loadModels loads every authored model as one batch and attaches them together.
func (b *base) loadModels() {
	if b.loader == nil || len(b.cfg.Models) == 0 {
		return
	}
	b.decorate("models", func() (node.Node, error) {
		nodes, err := b.loader.LoadAll(b.ctx, b.cfg.Models).Await(b.ctx)
		if err != nil && len(nodes) == 0 {
			return nil, err
		}
		if err != nil {
			log.Printf("chapter: %s: models: %v", b.name, err)
		}
		return node.NewGroup(node.WithName("models"), node.WithChildren(nodes...)), nil
	})
}

// Constructor builds a chapter from its config.
type Constructor func(cfg config.Chapter, options ...ChapterBuilderOption) Chapter

var constructors = map[string]Constructor{
	"first":  NewFirst,
	"second": NewSecond,
	"third":  NewThird,
	"fourth": NewFourth,
}

// New builds the chapter registered under cfg.Name. Unknown names get a plain chapter carrying only
// the backdrop and the authored models.
//
// Parameters:
//   - cfg: the chapter config
//   - options: variadic list of ChapterBuilderOption functions
//
// Returns:
//   - Chapter: the chapter
func New(cfg config.Chapter, options ...ChapterBuilderOption) Chapter {
	if ctor, ok := constructors[cfg.Name]; ok {
		return ctor(cfg, options...)
	}
	b := newBase(cfg, options...)
	b.loadModels()
	return b
}
