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

// rule identifies a memoized production.
type rule int

const (
	ruleConditional rule = iota
	ruleExpression
	ruleUnary
	rulePrimary
	ruleBinary // first binary level; level i is ruleBinary + i
)

type memoKey struct {
	r   rule
	pos int
}

type memoEntry struct {
	x   Expr
	end int
	ok  bool
}

type paramsEntry struct {
	names []string
	end   int
	ok    bool
}

// parser holds the state of a single parse call. Every rule takes the
// offset it starts at and returns the offset following what it matched.
// Rules are always entered on a non-whitespace token; whitespace between
// symbols is consumed explicitly with ws.
type parser struct {
	toks     []Token
	maxDepth int
	depth    int

	memo   map[memoKey]memoEntry
	params map[int]paramsEntry

	err      *ParseError // unrecoverable, e.g. nesting too deep
	far      int         // farthest offset a mandatory symbol was missing at
	expected string      // what was missing there
}

func newParser(toks []Token, maxDepth int) *parser {
	return &parser{
		toks:     toks,
		maxDepth: maxDepth,
		memo:     map[memoKey]memoEntry{},
		params:   map[int]paramsEntry{},
		far:      -1,
	}
}

func (p *parser) memoized(r rule, pos int, parse func() (Expr, int, bool)) (Expr, int, bool) {
	if p.err != nil {
		return nil, pos, false
	}
	key := memoKey{r, pos}
	if m, ok := p.memo[key]; ok {
		return m.x, m.end, m.ok
	}
	x, end, ok := parse()
	p.memo[key] = memoEntry{x, end, ok}
	return x, end, ok
}

func (p *parser) enter(pos int) bool {
	if p.err != nil {
		return false
	}
	p.depth++
	if p.depth > p.maxDepth {
		p.err = &ParseError{Err: ErrNestingTooDeep, Offset: pos}
		p.err.Line, p.err.Column = p.position(pos)
		return false
	}
	return true
}

func (p *parser) leave() { p.depth-- }

// fail records that what was required at pos. The farthest failure is the
// one reported when the whole line does not match.
func (p *parser) fail(pos int, what string) {
	if pos >= p.far {
		p.far, p.expected = pos, what
	}
}

func (p *parser) at(pos int) (Token, bool) {
	if pos < len(p.toks) {
		return p.toks[pos], true
	}
	return Token{}, false
}

// ws skips optional whitespace.
func (p *parser) ws(pos int) int {
	for pos < len(p.toks) && p.toks[pos].isSpace() {
		pos++
	}
	return pos
}

// space skips mandatory whitespace.
func (p *parser) space(pos int) (int, bool) {
	if t, ok := p.at(pos); !ok || !t.isSpace() {
		p.fail(pos, "whitespace")
		return pos, false
	}
	return p.ws(pos), true
}

// accept matches an optional punctuator.
func (p *parser) accept(pos int, text string) (int, bool) {
	if t, ok := p.at(pos); ok && t.isPunct(text) {
		return pos + 1, true
	}
	return pos, false
}

// expect matches a required punctuator.
func (p *parser) expect(pos int, text string) (int, bool) {
	if end, ok := p.accept(pos, text); ok {
		return end, true
	}
	p.fail(pos, "'"+text+"'")
	return pos, false
}

func (p *parser) ident(pos int) (string, bool) {
	if t, ok := p.at(pos); ok && isIdent(t) {
		return t.Text, true
	}
	p.fail(pos, "identifier")
	return "", false
}

// atEnd reports whether only whitespace is left from pos.
func (p *parser) atEnd(pos int) bool {
	pos = p.ws(pos)
	if pos < len(p.toks) {
		p.fail(pos, "end of line")
		return false
	}
	return true
}

// rest returns the tokens from pos on without surrounding whitespace.
func (p *parser) rest(pos int) []Token {
	toks := TrimSpace(p.toks[pos:])
	if len(toks) == 0 {
		return nil
	}
	return toks[:len(toks):len(toks)]
}

func (p *parser) position(pos int) (line, col int) {
	if pos < len(p.toks) {
		return p.toks[pos].Line, p.toks[pos].Column
	}
	if n := len(p.toks); n > 0 {
		last := p.toks[n-1]
		return last.Line, last.Column + len(last.Text)
	}
	return 0, 0
}

func (p *parser) errorf(err error, kind DirectiveKind) error {
	if p.err != nil {
		p.err.Directive = kind
		return p.err
	}
	pos := p.far
	if pos < 0 {
		pos = 0
	}
	e := &ParseError{Err: err, Directive: kind, Rule: p.expected, Offset: pos}
	e.Line, e.Column = p.position(pos)
	return e
}

var reserved = map[string]bool{
	"defined": true,
	"true":    true,
	"false":   true,
}

func isIdent(t Token) bool { return t.Kind == Identifier && !reserved[t.Text] }

func isWord(t Token, word string) bool {
	return (t.Kind == Keyword || t.Kind == Identifier) && t.Text == word
}
