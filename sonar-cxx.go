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

// Package sonar_cxx recognizes C/C++ preprocessor directive lines and parses
// the constant expressions of #if and #elif.
//
// Input is a line of classified tokens in which whitespace tokens are kept:
// adjacency decides, for instance, that "#define F(x)" is a function-like
// macro while "#define F (x)" is object-like. Output is a Directive, or an
// Expr tree in which every node stands for an operator actually present in
// the source. Nothing is expanded or evaluated.
package sonar_cxx

// DefaultMaxDepth is the nesting limit used when Parser.MaxDepth is zero.
const DefaultMaxDepth = 256

// Parser parses directive lines. The zero value is ready to use and a
// Parser may be shared by goroutines: every call works on its own state.
type Parser struct {
	// MaxDepth caps the nesting of parentheses, conditionals and unary
	// operators.
	MaxDepth int
}

func (c Parser) newParser(toks []Token) *parser {
	depth := c.MaxDepth
	if depth <= 0 {
		depth = DefaultMaxDepth
	}
	return newParser(trimLine(toks), depth)
}

// ParseDirective recognizes a line starting with '#'. Trailing EOL and EOF
// tokens are ignored. The error is a *ParseError wrapping
// ErrStructuralMismatch when the line is not a known directive, and
// ErrMalformedDirective when the keyword is known but its operands are not.
func (c Parser) ParseDirective(line []Token) (Directive, error) {
	return c.newParser(line).directive()
}

// ParseConstantExpression parses toks as the controlling expression of an
// #if. Node spans index toks.
func (c Parser) ParseConstantExpression(toks []Token) (Expr, error) {
	p := c.newParser(toks)
	x, _, ok := p.constantExpression(0)
	if !ok {
		return nil, p.errorf(ErrStructuralMismatch, NoDirective)
	}
	return x, nil
}

// ParseDirective calls Parser{}.ParseDirective.
func ParseDirective(line []Token) (Directive, error) {
	return Parser{}.ParseDirective(line)
}

// ParseConstantExpression calls Parser{}.ParseConstantExpression.
func ParseConstantExpression(toks []Token) (Expr, error) {
	return Parser{}.ParseConstantExpression(toks)
}

// IsDirective reports whether the first token of line other than
// whitespace is '#'.
func IsDirective(line []Token) bool {
	for _, t := range line {
		if !t.isSpace() {
			return t.isPunct("#")
		}
	}
	return false
}
