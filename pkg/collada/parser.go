// Package collada extracts renderable geometry from COLLADA (.dae) documents.
//
// A Parser walks library_geometries, resolves the source, vertices and input
// indirections of every <mesh>, decodes its triangles or polylist index
// stream and flattens it into per-attribute arrays that share one index
// buffer. library_visual_scenes then binds those meshes to node transforms
// and materials:
//
//	p := collada.NewParser()
//	if err := p.Parse("cube.dae"); err != nil {
//		switch collada.StatusOf(err) {
//		case collada.StatusReadError: // missing file or broken XML
//		case collada.StatusParseError: // malformed COLLADA
//		}
//	}
//	for _, s := range p.Scenes() { ... }
package collada

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/tinycollada/pkg/encoding"
)

// Parser turns COLLADA documents into scenes. A Parser keeps no state
// between calls except the scenes of the last successful parse. The zero
// value is ready to use with the defaults of NewParser.
type Parser struct {
	log     *zap.Logger
	workers int
	scenes  []*Scene
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for diagnostics. The default discards.
func WithLogger(log *zap.Logger) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

// WithWorkers bounds how many geometries are resolved concurrently.
// n <= 0 uses GOMAXPROCS; 1 resolves geometries sequentially.
func WithWorkers(n int) Option {
	return func(p *Parser) {
		p.workers = n
	}
}

// NewParser returns a Parser configured by opts.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	p.defaults()
	return p
}

// defaults fills in whatever options a zero value left unset.
func (p *Parser) defaults() {
	if p.log == nil {
		p.log = zap.NewNop()
	}
	if p.workers <= 0 {
		p.workers = runtime.GOMAXPROCS(0)
	}
}

// Scenes returns the scenes of the last successful parse.
func (p *Parser) Scenes() []*Scene {
	return p.scenes
}

// Parse reads and resolves the document at path.
func (p *Parser) Parse(path string) error {
	p.defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		p.scenes = nil
		return fmt.Errorf("%w: %w", ErrRead, err)
	}
	p.log.Debug("parsing document", zap.String("path", path), zap.Int("bytes", len(data)))
	return p.ParseBytes(data)
}

// ParseReader reads and resolves a document from r.
func (p *Parser) ParseReader(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		p.scenes = nil
		return fmt.Errorf("%w: %w", ErrRead, err)
	}
	return p.ParseBytes(data)
}

// ParseBytes resolves an in-memory document.
func (p *Parser) ParseBytes(data []byte) error {
	p.defaults()
	p.scenes = nil

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = encoding.CharsetReader
	if err := doc.ReadFromBytes(data); err != nil {
		return fmt.Errorf("%w: %w", ErrRead, err)
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("%w: document has no root element", ErrRead)
	}

	ctx := &parseContext{root: root, log: p.log, workers: p.workers}
	scenes, err := ctx.run()
	if err != nil {
		return err
	}
	p.scenes = scenes
	return nil
}

// Load parses the document at path and returns its scenes.
func Load(path string, opts ...Option) ([]*Scene, error) {
	p := NewParser(opts...)
	if err := p.Parse(path); err != nil {
		return nil, err
	}
	return p.Scenes(), nil
}

// parseContext holds everything one parse needs. It is never shared
// between parses.
type parseContext struct {
	root    *etree.Element
	log     *zap.Logger
	workers int

	geometries map[string][]*Mesh
	order      []string // geometry ids in document order
	materials  *materialLibrary
}

func (c *parseContext) run() ([]*Scene, error) {
	if err := c.resolveGeometries(); err != nil {
		return nil, err
	}

	c.materials = newMaterialLibrary(c.root)
	if err := c.bindDeclaredMaterials(); err != nil {
		return nil, err
	}

	b := &sceneBuilder{geometries: c.geometries, materials: c.materials, log: c.log}
	if err := b.build(c.root); err != nil {
		return nil, err
	}
	c.log.Debug("document resolved",
		zap.Int("geometries", len(c.geometries)),
		zap.Int("scenes", len(b.scenes)))
	return b.scenes, nil
}

// geometryResult is the outcome of resolving one <geometry>.
type geometryResult struct {
	id     string
	meshes []*Mesh
	err    error
}

// resolveGeometries assembles every <geometry><mesh> concurrently. Results
// and the reported error follow document order.
func (c *parseContext) resolveGeometries() error {
	elems := children(firstChild(c.root, "library_geometries"), "geometry")
	results := make([]geometryResult, len(elems))

	var g errgroup.Group
	g.SetLimit(c.workers)
	for i, el := range elems {
		g.Go(func() error {
			results[i] = resolveGeometry(el)
			return nil
		})
	}
	_ = g.Wait()

	c.geometries = make(map[string][]*Mesh, len(elems))
	for _, r := range results {
		if r.err != nil {
			return fmt.Errorf("geometry %q: %w", r.id, r.err)
		}
		if _, dup := c.geometries[r.id]; dup {
			continue
		}
		c.geometries[r.id] = r.meshes
		c.order = append(c.order, r.id)
		for _, m := range r.meshes {
			c.log.Debug("geometry resolved",
				zap.String("id", r.id),
				zap.Stringer("primitive", m.PrimitiveType),
				zap.Int("triangles", m.TriangleCount()),
				zap.Bool("normal", m.HasNormal()),
				zap.Bool("texcoord", m.HasTexCoord()))
			if !m.HasVertex() {
				c.log.Warn("mesh has no drawable geometry", zap.String("id", r.id))
			}
		}
	}
	return nil
}

func resolveGeometry(el *etree.Element) geometryResult {
	id, ok := attribute(el, "id")
	if !ok {
		return geometryResult{err: newParseError(MissingAttribute, "geometry", "id attribute is required")}
	}
	name, _ := attribute(el, "name")

	r := geometryResult{id: id}
	for _, meshEl := range children(el, "mesh") {
		m, err := assembleMesh(id, name, meshEl)
		if err != nil {
			r.err = err
			return r
		}
		r.meshes = append(r.meshes, m)
	}
	return r
}

// bindDeclaredMaterials gives each mesh whose primitive names a library
// material id directly that material.
func (c *parseContext) bindDeclaredMaterials() error {
	for _, id := range c.order {
		for _, m := range c.geometries[id] {
			if m.materialSymbol == "" {
				continue
			}
			mat, err := c.materials.lookup(m.materialSymbol)
			if err != nil {
				return err
			}
			m.Material = mat
		}
	}
	return nil
}
