package archgrid

import (
	"fmt"

	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/mask"
)

// Query is a composable predicate over archetypes: And/Or/Not combine
// ComponentTypes and nested QueryNodes into a tree evaluated against each
// archetype's signature.
type Query interface {
	QueryNode
	And(items ...interface{}) QueryNode
	Or(items ...interface{}) QueryNode
	Not(items ...interface{}) QueryNode
}

// QueryNode is one evaluable node in a Query tree.
type QueryNode interface {
	Evaluate(arch Archetype) bool
}

// QueryOperation names the logical operation a composite node applies.
type QueryOperation int

const (
	OpAnd QueryOperation = iota
	OpOr
	OpNot
)

type compositeNode struct {
	op         QueryOperation
	children   []QueryNode
	components []ComponentType
}

type leafNode struct {
	components []ComponentType
}

type query struct {
	root QueryNode
}

// NewQuery starts an empty composable Query.
func NewQuery() Query {
	return &query{}
}

func newCompositeNode(op QueryOperation, components []ComponentType) *compositeNode {
	return &compositeNode{op: op, components: components}
}

func newLeafNode(components []ComponentType) *leafNode {
	return &leafNode{components: components}
}

func maskFor(components []ComponentType) mask.Mask {
	var m mask.Mask
	for _, c := range components {
		m.Mark(uint32(c.id))
	}
	return m
}

// Evaluate implements QueryNode for a composite (And/Or/Not) node.
func (n *compositeNode) Evaluate(arch Archetype) bool {
	nodeMask := maskFor(n.components)

	switch n.op {
	case OpAnd:
		if !arch.sig.ContainsAll(nodeMask) {
			return false
		}
		for _, child := range n.children {
			if !child.Evaluate(arch) {
				return false
			}
		}
		return true
	case OpOr:
		if arch.sig.ContainsAny(nodeMask) {
			return true
		}
		for _, child := range n.children {
			if child.Evaluate(arch) {
				return true
			}
		}
		return false
	case OpNot:
		if len(n.children) == 0 {
			return arch.sig.ContainsNone(nodeMask)
		}
		if len(n.components) > 0 && !arch.sig.ContainsNone(nodeMask) {
			return false
		}
		for _, child := range n.children {
			if child.Evaluate(arch) {
				return false
			}
		}
		return true
	}
	return false
}

// Evaluate implements QueryNode for a plain leaf node (an implicit And
// over its components, with no children).
func (n *leafNode) Evaluate(arch Archetype) bool {
	return arch.sig.ContainsAll(maskFor(n.components))
}

// And requires every component/child node in items to match.
func (q *query) And(items ...interface{}) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(OpAnd, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

// Or requires at least one component/child node in items to match.
func (q *query) Or(items ...interface{}) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(OpOr, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

// Not requires none of the components/child nodes in items to match.
func (q *query) Not(items ...interface{}) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(OpNot, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

func (q *query) validateQueryItems(items ...interface{}) error {
	for _, item := range items {
		switch item.(type) {
		case ComponentType, []ComponentType, QueryNode, Query:
			continue
		default:
			return fmt.Errorf("invalid query item type: %T. Only ComponentType, []ComponentType, or QueryNode are allowed", item)
		}
	}
	return nil
}

func (q *query) processItems(items ...interface{}) ([]ComponentType, []QueryNode) {
	if err := q.validateQueryItems(items...); err != nil {
		panic(bark.AddTrace(err))
	}
	var components []ComponentType
	var children []QueryNode
	for _, item := range items {
		switch v := item.(type) {
		case ComponentType:
			components = append(components, v)
		case []ComponentType:
			components = append(components, v...)
		case QueryNode:
			children = append(children, v)
		}
	}
	return components, children
}

// Evaluate implements QueryNode for the top-level query, delegating to
// whichever node was built first (the query's root).
func (q *query) Evaluate(arch Archetype) bool {
	if q.root == nil {
		return false
	}
	return q.root.Evaluate(arch)
}
