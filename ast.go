/*
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sonar_cxx

import "strings"

// Span is a half-open range of indexes into the token slice handed to the
// parser. Spans of parsed nodes are never empty.
type Span struct {
	From, To int
}

func (s Span) Pos() int { return s.From }
func (s Span) End() int { return s.To }

// Expr is a node of a conditional expression tree.
type Expr interface {
	Pos() int
	End() int
	String() string
	exprNode()
}

// Operator is the spelling of a unary or binary operator.
type Operator string

const (
	OpMul   Operator = "*"
	OpDiv   Operator = "/"
	OpRem   Operator = "%"
	OpAdd   Operator = "+"
	OpSub   Operator = "-"
	OpShl   Operator = "<<"
	OpShr   Operator = ">>"
	OpLt    Operator = "<"
	OpGt    Operator = ">"
	OpLe    Operator = "<="
	OpGe    Operator = ">="
	OpEq    Operator = "=="
	OpNe    Operator = "!="
	OpAnd   Operator = "&"
	OpXor   Operator = "^"
	OpOr    Operator = "|"
	OpLAnd  Operator = "&&"
	OpLOr   Operator = "||"
	OpPlus  Operator = "+"
	OpMinus Operator = "-"
	OpNot   Operator = "!"
	OpCompl Operator = "~"
)

// LiteralKind tells which kind of token a Literal was built from.
type LiteralKind int

const (
	CharLit LiteralKind = iota
	StringLit
	NumberLit
	BoolLit
)

type (
	// Literal is a character, string, number or boolean literal.
	Literal struct {
		Span
		Kind LiteralKind
		Text string
	}

	// Ident is a name that is not followed by an argument list. Whether
	// it names a macro is for the evaluator to decide.
	Ident struct {
		Span
		Name string
	}

	// Defined is the defined operator, in either spelling.
	Defined struct {
		Span
		Name string
	}

	// MacroCall is a function-like macro invocation. Arguments are kept as
	// opaque token runs with surrounding whitespace removed.
	MacroCall struct {
		Span
		Name string
		Args [][]Token
	}

	Unary struct {
		Span
		Op Operator
		X  Expr
	}

	Binary struct {
		Span
		Op   Operator
		X, Y Expr
	}

	Ternary struct {
		Span
		Cond, Then, Else Expr
	}

	Paren struct {
		Span
		X Expr
	}

	// Comma is a comma expression. It only appears inside parentheses or
	// as the middle operand of a Ternary.
	Comma struct {
		Span
		List []Expr
	}
)

func (*Literal) exprNode()   {}
func (*Ident) exprNode()     {}
func (*Defined) exprNode()   {}
func (*MacroCall) exprNode() {}
func (*Unary) exprNode()     {}
func (*Binary) exprNode()    {}
func (*Ternary) exprNode()   {}
func (*Paren) exprNode()     {}
func (*Comma) exprNode()     {}

// String methods render the expression back to source form. Parentheses
// are only those the source had, so the rendering parses back to the same tree.

func (x *Literal) String() string { return x.Text }
func (x *Ident) String() string   { return x.Name }
func (x *Defined) String() string { return "defined(" + x.Name + ")" }

func (x *MacroCall) String() string {
	args := make([]string, len(x.Args))
	for i, a := range x.Args {
		args[i] = Render(a)
	}
	return x.Name + "(" + strings.Join(args, ", ") + ")"
}

func (x *Unary) String() string {
	s := x.X.String()
	// keep "- -1" from lexing as "--"
	if strings.HasPrefix(s, string(x.Op)) && (x.Op == OpMinus || x.Op == OpPlus) {
		return string(x.Op) + " " + s
	}
	return string(x.Op) + s
}

func (x *Binary) String() string { return x.X.String() + " " + string(x.Op) + " " + x.Y.String() }

func (x *Ternary) String() string {
	return x.Cond.String() + " ? " + x.Then.String() + " : " + x.Else.String()
}

func (x *Paren) String() string { return "(" + x.X.String() + ")" }

func (x *Comma) String() string {
	list := make([]string, len(x.List))
	for i, e := range x.List {
		list[i] = e.String()
	}
	return strings.Join(list, ", ")
}

// Tree describes the shape of x, e.g.
//
//	Binary(+, Literal(1), Binary(*, Literal(2), Literal(3)))
func Tree(x Expr) string {
	var b strings.Builder
	writeTree(&b, x)
	return b.String()
}

func writeTree(b *strings.Builder, x Expr) {
	switch x := x.(type) {
	case *Literal:
		b.WriteString("Literal(" + x.Text + ")")
	case *Ident:
		b.WriteString("Identifier(" + x.Name + ")")
	case *Defined:
		b.WriteString("Defined(" + x.Name + ")")
	case *MacroCall:
		b.WriteString("MacroCall(" + x.Name)
		for _, a := range x.Args {
			b.WriteString(", " + Render(a))
		}
		b.WriteString(")")
	case *Unary:
		b.WriteString("Unary(" + string(x.Op) + ", ")
		writeTree(b, x.X)
		b.WriteString(")")
	case *Binary:
		b.WriteString("Binary(" + string(x.Op) + ", ")
		writeTree(b, x.X)
		b.WriteString(", ")
		writeTree(b, x.Y)
		b.WriteString(")")
	case *Ternary:
		b.WriteString("Ternary(")
		writeTree(b, x.Cond)
		b.WriteString(", ")
		writeTree(b, x.Then)
		b.WriteString(", ")
		writeTree(b, x.Else)
		b.WriteString(")")
	case *Paren:
		b.WriteString("Paren(")
		writeTree(b, x.X)
		b.WriteString(")")
	case *Comma:
		b.WriteString("Comma(")
		for i, e := range x.List {
			if i > 0 {
				b.WriteString(", ")
			}
			writeTree(b, e)
		}
		b.WriteString(")")
	}
}

// Inspect traverses x in depth-first order, calling f for every node.
// Children of a node are skipped when f returns false.
func Inspect(x Expr, f func(Expr) bool) {
	if x == nil || !f(x) {
		return
	}
	switch x := x.(type) {
	case *Unary:
		Inspect(x.X, f)
	case *Binary:
		Inspect(x.X, f)
		Inspect(x.Y, f)
	case *Ternary:
		Inspect(x.Cond, f)
		Inspect(x.Then, f)
		Inspect(x.Else, f)
	case *Paren:
		Inspect(x.X, f)
	case *Comma:
		for _, e := range x.List {
			Inspect(e, f)
		}
	}
}
