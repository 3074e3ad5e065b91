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

// binaryLevels lists the binary operators from the loosest binding level to
// the tightest. Every level is left-associative.
var binaryLevels = [][]Operator{
	{OpLOr},
	{OpLAnd},
	{OpOr},
	{OpXor},
	{OpAnd},
	{OpEq, OpNe},
	{OpLt, OpGt, OpLe, OpGe},
	{OpShl, OpShr},
	{OpAdd, OpSub},
	{OpMul, OpDiv, OpRem},
}

var unaryOps = []Operator{OpPlus, OpMinus, OpNot, OpCompl}

// constantExpression parses the whole token slice as one conditional
// expression surrounded by optional whitespace.
func (p *parser) constantExpression(pos int) (Expr, int, bool) {
	x, end, ok := p.conditional(p.ws(pos))
	if !ok || !p.atEnd(end) {
		return nil, pos, false
	}
	return x, len(p.toks), true
}

// conditional:
//
//	logical-or ? expression : conditional
//	logical-or
func (p *parser) conditional(pos int) (Expr, int, bool) {
	return p.memoized(ruleConditional, pos, func() (Expr, int, bool) {
		if !p.enter(pos) {
			return nil, pos, false
		}
		defer p.leave()

		cond, end, ok := p.binary(0, pos)
		if !ok {
			return nil, pos, false
		}
		if x, e, ok := p.ternary(cond, pos, end); ok {
			return x, e, true
		}
		return cond, end, true
	})
}

func (p *parser) ternary(cond Expr, pos, end int) (Expr, int, bool) {
	q, ok := p.accept(p.ws(end), "?")
	if !ok {
		return nil, pos, false
	}
	then, q, ok := p.expression(p.ws(q))
	if !ok {
		return nil, pos, false
	}
	if q, ok = p.expect(p.ws(q), ":"); !ok {
		return nil, pos, false
	}
	els, e, ok := p.conditional(p.ws(q))
	if !ok {
		return nil, pos, false
	}
	return &Ternary{Span: Span{pos, e}, Cond: cond, Then: then, Else: els}, e, true
}

// expression is a comma-separated list of conditionals.
func (p *parser) expression(pos int) (Expr, int, bool) {
	return p.memoized(ruleExpression, pos, func() (Expr, int, bool) {
		x, end, ok := p.conditional(pos)
		if !ok {
			return nil, pos, false
		}
		list := []Expr{x}
		for {
			q, ok := p.accept(p.ws(end), ",")
			if !ok {
				break
			}
			y, e, ok := p.conditional(p.ws(q))
			if !ok {
				break
			}
			list = append(list, y)
			end = e
		}
		if len(list) == 1 {
			return x, end, true
		}
		return &Comma{Span: Span{pos, end}, List: list}, end, true
	})
}

// binary parses the operators of binaryLevels[level] and everything that
// binds tighter. A level without operators returns its operand unwrapped.
func (p *parser) binary(level, pos int) (Expr, int, bool) {
	if level == len(binaryLevels) {
		return p.unary(pos)
	}
	return p.memoized(ruleBinary+rule(level), pos, func() (Expr, int, bool) {
		x, end, ok := p.binary(level+1, pos)
		if !ok {
			return nil, pos, false
		}
		for {
			op, q, ok := p.operator(p.ws(end), binaryLevels[level])
			if !ok {
				break
			}
			y, e, ok := p.binary(level+1, p.ws(q))
			if !ok {
				break
			}
			x = &Binary{Span: Span{pos, e}, Op: op, X: x, Y: y}
			end = e
		}
		return x, end, true
	})
}

func (p *parser) operator(pos int, ops []Operator) (Operator, int, bool) {
	t, ok := p.at(pos)
	if !ok || t.Kind != Punctuator {
		return "", pos, false
	}
	for _, op := range ops {
		if t.Text == string(op) {
			return op, pos + 1, true
		}
	}
	return "", pos, false
}

// unary:
//
//	unary-operator unary
//	primary
func (p *parser) unary(pos int) (Expr, int, bool) {
	return p.memoized(ruleUnary, pos, func() (Expr, int, bool) {
		op, q, ok := p.operator(pos, unaryOps)
		if !ok {
			return p.primary(pos)
		}
		if !p.enter(pos) {
			return nil, pos, false
		}
		defer p.leave()

		x, end, ok := p.unary(p.ws(q))
		if !ok {
			return nil, pos, false
		}
		return &Unary{Span: Span{pos, end}, Op: op, X: x}, end, true
	})
}

// primary alternatives, in order: literal, ( expression ), defined,
// macro invocation, identifier.
func (p *parser) primary(pos int) (Expr, int, bool) {
	return p.memoized(rulePrimary, pos, func() (Expr, int, bool) {
		t, ok := p.at(pos)
		if !ok {
			p.fail(pos, "primary expression")
			return nil, pos, false
		}
		if x, ok := literal(t, pos); ok {
			return x, pos + 1, true
		}
		if t.isPunct("(") {
			return p.paren(pos)
		}
		if isWord(t, "defined") {
			return p.defined(pos)
		}
		if x, end, ok := p.macroCall(pos); ok {
			return x, end, true
		}
		if isIdent(t) {
			return &Ident{Span: Span{pos, pos + 1}, Name: t.Text}, pos + 1, true
		}
		p.fail(pos, "primary expression")
		return nil, pos, false
	})
}

func literal(t Token, pos int) (Expr, bool) {
	var kind LiteralKind
	switch {
	case t.Kind == Character:
		kind = CharLit
	case t.Kind == String:
		kind = StringLit
	case t.Kind == Number:
		kind = NumberLit
	case isWord(t, "true"), isWord(t, "false"):
		kind = BoolLit
	default:
		return nil, false
	}
	return &Literal{Span: Span{pos, pos + 1}, Kind: kind, Text: t.Text}, true
}

func (p *parser) paren(pos int) (Expr, int, bool) {
	x, q, ok := p.expression(p.ws(pos + 1))
	if !ok {
		return nil, pos, false
	}
	end, ok := p.expect(p.ws(q), ")")
	if !ok {
		return nil, pos, false
	}
	return &Paren{Span: Span{pos, end}, X: x}, end, true
}

// defined:
//
//	defined identifier
//	defined ( identifier )
func (p *parser) defined(pos int) (Expr, int, bool) {
	q := p.ws(pos + 1)
	if r, ok := p.accept(q, "("); ok {
		r = p.ws(r)
		name, ok := p.ident(r)
		if !ok {
			return nil, pos, false
		}
		end, ok := p.expect(p.ws(r+1), ")")
		if !ok {
			return nil, pos, false
		}
		return &Defined{Span: Span{pos, end}, Name: name}, end, true
	}
	name, ok := p.ident(q)
	if !ok {
		return nil, pos, false
	}
	return &Defined{Span: Span{pos, q + 1}, Name: name}, q + 1, true
}

// macroCall matches identifier ( arguments ). Whitespace may separate the
// name from the parenthesis, as in an invocation.
func (p *parser) macroCall(pos int) (Expr, int, bool) {
	t, _ := p.at(pos)
	if !isIdent(t) {
		return nil, pos, false
	}
	q, ok := p.accept(p.ws(pos+1), "(")
	if !ok {
		return nil, pos, false
	}
	args, end, ok := p.arguments(q)
	if !ok {
		return nil, pos, false
	}
	return &MacroCall{Span: Span{pos, end}, Name: t.Text, Args: args}, end, true
}

// arguments splits the tokens up to the matching ')' on top-level commas.
// Nested parentheses are kept inside their argument. An empty argument is
// an error, except for the empty list of NAME().
func (p *parser) arguments(pos int) ([][]Token, int, bool) {
	var args [][]Token
	start, nested := pos, 0
	for i := pos; i < len(p.toks); i++ {
		t := p.toks[i]
		switch {
		case t.isPunct("("):
			nested++
			continue
		case t.isPunct(")") && nested > 0:
			nested--
			continue
		case nested > 0:
			continue
		case !t.isPunct(")") && !t.isPunct(","):
			continue
		}

		arg := TrimSpace(p.toks[start:i])
		closing := t.isPunct(")")
		if len(arg) == 0 {
			if closing && len(args) == 0 {
				return nil, i + 1, true
			}
			p.fail(i, "macro argument")
			return nil, pos, false
		}
		args = append(args, arg[:len(arg):len(arg)])
		if closing {
			return args, i + 1, true
		}
		start = i + 1
	}
	p.fail(len(p.toks), "')'")
	return nil, pos, false
}
