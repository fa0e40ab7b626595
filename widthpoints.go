package widthpoints

import (
	"errors"
	"fmt"

	"github.com/npillmayer/widthpoints/cascade"
	"github.com/npillmayer/widthpoints/maybe"
	"github.com/npillmayer/widthpoints/persistent/steps"
	"github.com/npillmayer/widthpoints/width"
)

// ErrChainTooDeep is returned if the chain of containers of a node exceeds the
// maximum depth of a resolver. Usually this hints at a cyclic ChainProvider.
var ErrChainTooDeep = errors.New("container chain too deep")

// DeclarationProvider delivers the style declarations for a node, in document order.
type DeclarationProvider[N any] interface {
	Declarations(N) []cascade.Declaration
}

// ChainProvider delivers the container of a node. ok is false for the root.
type ChainProvider[N any] interface {
	Parent(N) (parent N, ok bool)
}

// Option configures a Resolver.
type Option func(*options)

type options struct {
	baseFontSize float64
	maxDepth     int
}

// BaseFontSize sets the root font size in px. Default is 16.
func BaseFontSize(px float64) Option {
	return func(o *options) {
		if px > 0 {
			o.baseFontSize = px
		}
	}
}

// MaxDepth sets the maximum number of nodes in a container chain. Default is 256.
func MaxDepth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxDepth = n
		}
	}
}

// Resolver computes width functions for nodes of type N.
type Resolver[N any] struct {
	decls DeclarationProvider[N]
	chain ChainProvider[N]
	opts  options
}

// NewResolver creates a resolver on top of a declaration provider and a chain provider.
// chain may be nil, in which case every node is its own root.
func NewResolver[N any](decls DeclarationProvider[N], chain ChainProvider[N], opts ...Option) *Resolver[N] {
	r := &Resolver[N]{
		decls: decls,
		chain: chain,
		opts:  options{baseFontSize: 16, maxDepth: 256},
	}
	for _, opt := range opts {
		opt(&r.opts)
	}
	return r
}

// Resolve computes the maximum width of target as a step function over the breakpoint
// axis, taking into account all of target's containers.
func (r *Resolver[N]) Resolve(target N) (width.Function, error) {
	c, err := r.ResolveChain(target)
	if err != nil {
		return width.Function{}, err
	}
	return c.Width(), nil
}

// ResolveChain is like Resolve, but returns the intermediate results for every node
// of target's container chain.
func (r *Resolver[N]) ResolveChain(target N) (*Chain[N], error) {
	nodes, err := r.ancestry(target)
	if err != nil {
		return nil, err
	}
	c := &Chain[N]{Links: make([]Link[N], len(nodes))}
	parentFS := maybe.Nothing[width.FontSizes]()
	for i, node := range nodes {
		l := &c.Links[i]
		l.Node = node
		if r.decls != nil {
			l.Declarations = r.decls.Declarations(node)
		}
		if l.Table, err = cascade.Fold(l.Declarations); err != nil {
			return nil, fmt.Errorf("widthpoints: chain position %d: %w", i, err)
		}
		l.FontSizes = width.ResolveFontSizes(l.Table, parentFS, r.opts.baseFontSize)
		parentFS = maybe.Just(l.FontSizes)
		l.Resolved = width.ResolveUnits(l.Table, l.FontSizes, r.opts.baseFontSize)
		l.Own = width.Collapse(l.Resolved)
		if i == 0 {
			l.Composed = l.Own.Coalesced()
			continue
		}
		var composed width.Function
		if composed, err = width.Compose(l.Own, c.Links[i-1].Composed); err != nil {
			return nil, fmt.Errorf("widthpoints: chain position %d: %w", i, err)
		}
		l.Composed = composed.Coalesced()
	}
	tracer().Debugf("widthpoints: resolved chain of %d nodes: %v", len(nodes), c.Width())
	return c, nil
}

// ancestry returns the chain of target, root first.
func (r *Resolver[N]) ancestry(target N) ([]N, error) {
	nodes := []N{target}
	if r.chain != nil {
		for n := target; ; {
			p, ok := r.chain.Parent(n)
			if !ok {
				break
			}
			if len(nodes) >= r.opts.maxDepth {
				return nil, fmt.Errorf("widthpoints: more than %d nodes: %w", r.opts.maxDepth, ErrChainTooDeep)
			}
			nodes = append(nodes, p)
			n = p
		}
	}
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	return nodes, nil
}

// --- Chains ----------------------------------------------------------------

// Link holds the intermediate results for one node of a chain.
type Link[N any] struct {
	Node         N
	Declarations []cascade.Declaration
	Table        cascade.Table               // folded declarations
	FontSizes    width.FontSizes             // font size per breakpoint, in px
	Resolved     steps.Steps[width.Resolved] // constraints with font-relative units resolved
	Own          width.Function              // effective width of the node alone
	Composed     width.Function              // effective width within all containers
}

// Chain is a container chain, root first. The last link is the target node.
type Chain[N any] struct {
	Links []Link[N]
}

// Len returns the number of nodes in c.
func (c *Chain[N]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Links)
}

// Target returns the link of the node the chain has been resolved for.
func (c *Chain[N]) Target() *Link[N] {
	if c.Len() == 0 {
		return nil
	}
	return &c.Links[len(c.Links)-1]
}

// Width returns the composed width function of the target node.
func (c *Chain[N]) Width() width.Function {
	if t := c.Target(); t != nil {
		return t.Composed
	}
	return width.Function{}
}
