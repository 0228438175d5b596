// Package ast implements the arena-indexed abstract syntax tree: a
// single growable slice of Nodes addressed by integer NodeIndex,
// rather than a tree of heap pointers. The parser builds expressions
// in place by re-rooting: each new Operation node is appended to this
// arena and spliced in above the node that becomes its left operand.
package ast

import (
	"strconv"
	"strings"

	"github.com/stark-lang/starkc/internal/source"
)

// NodeIndex addresses a Node within an Arena. Index 0 always holds the
// Module root.
type NodeIndex int

// NoParent marks a node with no parent. Only the root ever has it.
const NoParent NodeIndex = -1

// Kind tags the payload a Node carries.
type Kind int

const (
	Module Kind = iota
	DefConstant
	DefVariable
	Function
	Block
	Expression
	Operation
	IntegerLiteral
	Identifier
)

var kindNames = [...]string{
	Module:         "Module",
	DefConstant:    "DefConstant",
	DefVariable:    "DefVariable",
	Function:       "Function",
	Block:          "Block",
	Expression:     "Expression",
	Operation:      "Operation",
	IntegerLiteral: "IntegerLiteral",
	Identifier:     "Identifier",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// OpKind is the fixed set of binary operators an Operation node can
// carry.
type OpKind int

const (
	OpAssign OpKind = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPow
)

var opNames = [...]string{
	OpAssign: "=",
	OpAdd:    "+",
	OpSub:    "-",
	OpMul:    "*",
	OpDiv:    "/",
	OpPow:    "^",
}

func (o OpKind) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "OpKind(" + strconv.Itoa(int(o)) + ")"
}

// Precedence levels, ascending. Value is a synthetic barrier used by
// the parser for leaves and parenthesized expressions: nothing in the
// arena is ever tagged Value, since nothing outranks it.
const (
	PrecAssign = 1
	PrecAdd    = 2
	PrecMul    = 3
	PrecPow    = 4
	PrecValue  = 5
)

// Precedence returns the binding power of o.
func (o OpKind) Precedence() int {
	switch o {
	case OpAssign:
		return PrecAssign
	case OpAdd, OpSub:
		return PrecAdd
	case OpMul, OpDiv:
		return PrecMul
	case OpPow:
		return PrecPow
	default:
		return PrecValue
	}
}

// RightAssociative reports whether o binds its right operand before
// climbing back to a same-precedence operator on its left. Power is
// the only right-associative operator here; every other binary
// operator is left-associative.
func (o OpKind) RightAssociative() bool {
	return o == OpPow
}

// Node is one entry in an Arena. Which fields are meaningful depends
// on Kind:
//
//	Module         Name = module name, or "" if undeclared. Children = top-level declarations.
//	DefConstant    Name = bound identifier. Children = [value expression].
//	DefVariable    Name = bound identifier. Children = [value expression].
//	Function       Name = return type, or "" if unannotated. Children = [param Identifier...]+[body]. NumParams counts the leading params.
//	Block          Children = statements, in order.
//	Expression     Children = [root of the wrapped expression tree].
//	Operation      Op, Children = [left, right].
//	IntegerLiteral IntValue.
//	Identifier     Name. As a Function parameter, Children holds 0 or 1 type-annotation Identifier.
type Node struct {
	Kind      Kind
	Parent    NodeIndex
	Children  []NodeIndex
	Span      source.Span
	Name      string
	Op        OpKind
	IntValue  int64
	NumParams int
}

// Arena owns every Node built while parsing one source file.
type Arena struct {
	Nodes []Node
}

// NewArena returns an Arena with the Module root pre-allocated at
// index 0.
func NewArena() *Arena {
	return &Arena{Nodes: []Node{{Kind: Module, Parent: NoParent}}}
}

// Root returns the Module root's index. It is always 0.
func (a *Arena) Root() NodeIndex {
	return 0
}

// Add appends n to the arena and returns its new index. n.Parent and
// n.Children are left as given by the caller; use AddChild or
// Reparent to keep parent/child links consistent.
func (a *Arena) Add(n Node) NodeIndex {
	idx := NodeIndex(len(a.Nodes))
	a.Nodes = append(a.Nodes, n)
	return idx
}

// Get returns the node at idx.
func (a *Arena) Get(idx NodeIndex) *Node {
	return &a.Nodes[idx]
}

// AddChild appends child to parent's children and sets child's parent
// pointer. Used for first-time construction, where child has no
// existing parent to detach from.
func (a *Arena) AddChild(parent, child NodeIndex) {
	a.Nodes[child].Parent = parent
	a.Nodes[parent].Children = append(a.Nodes[parent].Children, child)
}

// Reparent moves child from its current parent to newParent. It is
// the only primitive allowed to mutate parent/child links once a node
// already has a parent, and it performs all three required updates
// together: child is removed from its old parent's children, child's
// Parent is rewritten, and child is appended to newParent's children.
// A node with no current parent (NoParent) is simply attached.
func (a *Arena) Reparent(child, newParent NodeIndex) {
	old := a.Nodes[child].Parent
	if old != NoParent {
		a.removeChild(old, child)
	}
	a.Nodes[child].Parent = newParent
	a.Nodes[newParent].Children = append(a.Nodes[newParent].Children, child)
}

func (a *Arena) removeChild(parent, child NodeIndex) {
	children := a.Nodes[parent].Children
	for i, c := range children {
		if c == child {
			a.Nodes[parent].Children = append(children[:i], children[i+1:]...)
			return
		}
	}
}

// Render produces the textual form printed by the driver and used by
// golden tests: literals as bare digits, identifiers as bare text, operators
// as `(<op> <lhs> <rhs>)`, definitions as `Const <name> = <expr>` or
// `Var <name> = <expr>`, function values as `Fn(<params>) <type>{ <body> }`
// (the parameter list is omitted when there are none, and the return
// type when it is unannotated), and blocks as
// `Block{ <stmts> }` with statements joined by "; ". A declared module
// name is rendered as a leading "Module <name>" line; an undeclared
// module renders no such line.
func Render(a *Arena) string {
	root := a.Nodes[a.Root()]
	var lines []string
	if root.Name != "" {
		lines = append(lines, "Module "+root.Name)
	}
	for _, child := range root.Children {
		lines = append(lines, a.renderDef(child))
	}
	return strings.Join(lines, "\n")
}

func (a *Arena) renderDef(idx NodeIndex) string {
	n := a.Nodes[idx]
	kw := "Var"
	if n.Kind == DefConstant {
		kw = "Const"
	}
	return kw + " " + n.Name + " = " + a.renderValue(n.Children[0])
}

// renderStmt renders one statement within a Block or a function body:
// a nested definition, a nested block, or an expression statement
// (the latter stored as an Expression node, which renderValue unwraps
// transparently).
func (a *Arena) renderStmt(idx NodeIndex) string {
	n := a.Nodes[idx]
	switch n.Kind {
	case DefConstant, DefVariable:
		return a.renderDef(idx)
	case Block:
		return a.renderBlock(idx)
	default:
		return a.renderValue(idx)
	}
}

func (a *Arena) renderBlock(idx NodeIndex) string {
	n := a.Nodes[idx]
	stmts := make([]string, len(n.Children))
	for i, c := range n.Children {
		stmts[i] = a.renderStmt(c)
	}
	return "Block{ " + strings.Join(stmts, "; ") + " }"
}

func (a *Arena) renderFunction(idx NodeIndex) string {
	n := a.Nodes[idx]
	params := n.Children[:n.NumParams]
	body := n.Children[n.NumParams]

	var b strings.Builder
	b.WriteString("Fn")
	if len(params) > 0 {
		b.WriteByte('(')
		for i, p := range params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.renderParam(p))
		}
		b.WriteByte(')')
	}
	if n.Name != "" {
		b.WriteByte(' ')
		b.WriteString(n.Name)
	}
	b.WriteString("{ ")
	b.WriteString(a.renderStmt(body))
	b.WriteString(" }")
	return b.String()
}

func (a *Arena) renderParam(idx NodeIndex) string {
	n := a.Nodes[idx]
	if len(n.Children) == 0 {
		return n.Name
	}
	return n.Name + " = " + a.Nodes[n.Children[0]].Name
}

// renderValue renders an expression-position node: a leaf, an
// Operation tree, a Function value, or a Block used as a value (an
// Expression node unwraps to its single child transparently).
func (a *Arena) renderValue(idx NodeIndex) string {
	n := a.Nodes[idx]
	switch n.Kind {
	case Expression:
		return a.renderValue(n.Children[0])
	case IntegerLiteral:
		return strconv.FormatInt(n.IntValue, 10)
	case Identifier:
		return n.Name
	case Operation:
		return "(" + n.Op.String() + " " + a.renderValue(n.Children[0]) + " " + a.renderValue(n.Children[1]) + ")"
	case Function:
		return a.renderFunction(idx)
	case Block:
		return a.renderBlock(idx)
	default:
		return n.Kind.String()
	}
}
