package calc

import "strings"

// node is a node in the abstract syntax tree of an expression.
type node struct {
	kind nodeKind

	// name is the literal text of a number, the name of a constant or
	// function, or the literal text of a factorial's operand.
	name string
	// num is the precomputed value of a factorial.
	num float64

	left  *node
	right *node
}

//go:generate go mod edit -require=golang.org/x/tools@v0.1.0
//go:generate go mod download
//go:generate go run golang.org/x/tools/cmd/stringer -type=nodeKind -trimprefix=node
//go:generate go mod tidy

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum   // push num
	nodeConst // push constant(name)
	nodeCall  // name is func to call, left is the argument

	nodeNeg     // evaluate left, then negate
	nodeAdd     // evaluate left, add right
	nodeSub     // evaluate left, sub right
	nodeMul     // evaluate left, mul right
	nodeDiv     // evaluate left, div by right
	nodePow     // evaluate left, exp by right
	nodePercent // evaluate left, div by 100
	nodeFact    // push num
	nodeGroup   // evaluate left
)

// ending describes how the text of a term ends, which decides whether a
// following term is an implicit multiplication.
type ending int8

const (
	endNone  ending = iota
	endNum          // a bare numeric literal
	endConst        // π or e
	endClose        // a closing bracket or a postfix operator
)

// end returns the ending of the rightmost term in the subtree.
func (n *node) end() ending {
	switch n.kind {
	case nodeNum:
		return endNum
	case nodeConst:
		return endConst
	case nodePercent, nodeFact, nodeGroup, nodeCall:
		return endClose
	case nodeNeg:
		return n.left.end()
	case nodeAdd, nodeSub, nodeMul, nodeDiv, nodePow:
		return n.right.end()
	default:
		return endNone
	}
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	switch n.kind {
	case nodeNone:
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		if n.left != nil {
			n.left.fmt(b, square)
		}
		b.WriteByte('#')
		if n.right != nil {
			n.right.fmt(b, square)
		}
		b.WriteByte('$')
	case nodeNum, nodeConst:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		n.left.fmt(b, !square)
	case nodeNeg:
		b.WriteString("−")
		n.left.fmt(b, !square)
	case nodeAdd:
		n.left.fmt(b, !square)
		b.WriteString(" + ")
		n.right.fmt(b, !square)
	case nodeSub:
		n.left.fmt(b, !square)
		b.WriteString(" − ")
		n.right.fmt(b, !square)
	case nodeMul:
		n.left.fmt(b, !square)
		b.WriteString(" × ")
		n.right.fmt(b, !square)
	case nodeDiv:
		n.left.fmt(b, !square)
		b.WriteString(" ÷ ")
		n.right.fmt(b, !square)
	case nodePow:
		n.left.fmt(b, !square)
		b.WriteString(" ^ ")
		n.right.fmt(b, !square)
	case nodePercent:
		n.left.fmt(b, !square)
		b.WriteByte('%')
	case nodeFact:
		b.WriteString(n.name)
		b.WriteByte('!')
	case nodeGroup:
		n.left.fmt(b, !square)
	default:
		panic("calc: invalid node kind " + n.kind.String() + " after writing " + b.String())
	}
}
