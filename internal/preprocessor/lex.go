package preprocessor

import (
	"strings"
	"unicode/utf8"

	sonar_cxx "github.com/QiXingjun/sonar-cxx"
)

// ---------------- Tokenizer ----------------

// punctuators is ordered so that longer spellings are tried first.
var punctuators = []string{
	"%:%:", "...", "<<=", ">>=", "->*",
	"##", "<<", ">>", "<=", ">=", "==", "!=", "&&", "||", "->", "++", "--",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "::", ".*", "%:",
}

var keywords = map[string]bool{
	"defined": true,
	"true":    true,
	"false":   true,
}

type lexer struct {
	src  string
	i    int
	line int
	col  int
	toks []sonar_cxx.Token
}

// Lex splits src into preprocessing tokens. Blanks, comments and line
// continuations between tokens become a single Whitespace token; comments
// are also attached to it as trivia. A continuation that is not next to
// other whitespace produces no token. Every line ends with an EOL token and
// the input with an EOF token.
func Lex(src string) []sonar_cxx.Token {
	l := &lexer{src: src, line: 1, col: 1, toks: make([]sonar_cxx.Token, 0, len(src)/3+1)}
	for l.i < len(l.src) {
		ch := l.src[l.i]
		switch {
		case ch == '\n':
			l.emit(sonar_cxx.EOL, 1, nil)
		case ch == '\r' && l.peek(1) == '\n':
			l.emit(sonar_cxx.EOL, 2, nil)
		case l.spaceAhead():
			l.lexSpace()
		case ch == '"' || ch == '\'':
			l.lexQuote(0)
		case isIdentStart(ch):
			l.lexIdent()
		case isDigit(ch) || ch == '.' && isDigit(l.peek(1)):
			l.lexNumber()
		default:
			l.lexPunct()
		}
	}
	l.emit(sonar_cxx.EOF, 0, nil)
	return l.toks
}

func (l *lexer) peek(off int) byte {
	if l.i+off < len(l.src) {
		return l.src[l.i+off]
	}
	return 0
}

// emit appends a token of n bytes starting at the current offset.
func (l *lexer) emit(kind sonar_cxx.TokenKind, n int, trivia []sonar_cxx.Trivia) {
	text := l.src[l.i : l.i+n]
	l.toks = append(l.toks, sonar_cxx.Token{Kind: kind, Text: text, Line: l.line, Column: l.col, Trivia: trivia})
	l.advance(n)
}

func (l *lexer) advance(n int) {
	for _, ch := range []byte(l.src[l.i : l.i+n]) {
		if ch == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
	}
	l.i += n
}

func isBlank(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\v' || ch == '\f'
}

// continuation returns the length of a backslash-newline sequence at off,
// allowing blanks before the newline.
func (l *lexer) continuation(off int) int {
	if l.peek(off) != '\\' {
		return 0
	}
	j := off + 1
	for isBlank(l.peek(j)) {
		j++
	}
	switch {
	case l.peek(j) == '\n':
		return j + 1 - off
	case l.peek(j) == '\r' && l.peek(j+1) == '\n':
		return j + 2 - off
	}
	return 0
}

func (l *lexer) spaceAhead() bool {
	ch := l.peek(0)
	switch {
	case isBlank(ch), ch == '\r' && l.peek(1) != '\n':
		return true
	case ch == '/' && (l.peek(1) == '/' || l.peek(1) == '*'):
		return true
	}
	return l.continuation(0) > 0
}

// lexSpace scans a run of blanks, comments and continuations.
func (l *lexer) lexSpace() {
	var trivia []sonar_cxx.Trivia
	n, blank := 0, false
	for {
		ch := l.peek(n)
		if isBlank(ch) || ch == '\r' && l.peek(n+1) != '\n' {
			n++
			blank = true
			continue
		}
		if k := l.continuation(n); k > 0 {
			n += k
			continue
		}
		if ch == '/' && l.peek(n+1) == '/' {
			end := strings.IndexByte(l.src[l.i+n:], '\n')
			if end < 0 {
				end = len(l.src) - l.i - n
			}
			if end > 0 && l.src[l.i+n+end-1] == '\r' {
				end--
			}
			trivia = append(trivia, l.comment(n, end))
			n += end
			blank = true
			continue
		}
		if ch == '/' && l.peek(n+1) == '*' {
			end := strings.Index(l.src[l.i+n+2:], "*/")
			if end < 0 {
				end = len(l.src) - l.i - n
			} else {
				end += 4
			}
			trivia = append(trivia, l.comment(n, end))
			n += end
			blank = true
			continue
		}
		break
	}
	if blank {
		l.emit(sonar_cxx.Whitespace, n, trivia)
		return
	}
	l.advance(n)
}

// comment describes the n bytes at offset off as comment trivia.
func (l *lexer) comment(off, n int) sonar_cxx.Trivia {
	line, col := l.line, l.col
	for _, ch := range []byte(l.src[l.i : l.i+off]) {
		if ch == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return sonar_cxx.Trivia{Comment: true, Text: l.src[l.i+off : l.i+off+n], Line: line, Column: col}
}

// lexQuote scans a character or string literal whose quote is at offset
// prefix. Continuations are part of the literal; an unterminated literal
// ends at the end of the line.
func (l *lexer) lexQuote(prefix int) {
	quote := l.peek(prefix)
	j := prefix + 1
	for l.i+j < len(l.src) {
		ch := l.src[l.i+j]
		if ch == '\n' {
			break
		}
		j++
		if ch == '\\' {
			if k := l.continuation(j - 1); k > 0 {
				j += k - 1
				continue
			}
			if l.i+j < len(l.src) && l.src[l.i+j] != '\n' {
				j++
				continue
			}
		}
		if ch == quote {
			break
		}
	}
	kind := sonar_cxx.String
	if quote == '\'' {
		kind = sonar_cxx.Character
	}
	l.emit(kind, j, nil)
}

func (l *lexer) lexIdent() {
	j := 1
	for isIdentPart(l.peek(j)) {
		j++
	}
	word := l.src[l.i : l.i+j]
	if q := l.peek(j); q == '"' || q == '\'' {
		switch word {
		case "L", "u", "U", "u8":
			l.lexQuote(j)
			return
		}
	}
	kind := sonar_cxx.Identifier
	if keywords[word] {
		kind = sonar_cxx.Keyword
	}
	l.emit(kind, j, nil)
}

// lexNumber scans a pp-number: digits, letters, '_', '.', digit
// separators and signed exponents.
func (l *lexer) lexNumber() {
	j := 1
	for {
		ch := l.peek(j)
		switch {
		case (ch == '+' || ch == '-') && strings.IndexByte("eEpP", l.peek(j-1)) >= 0:
			j++
		case ch == '\'' && isIdentPart(l.peek(j+1)):
			j += 2
		case isIdentPart(ch) || ch == '.':
			j++
		default:
			l.emit(sonar_cxx.Number, j, nil)
			return
		}
	}
}

func (l *lexer) lexPunct() {
	rest := l.src[l.i:]
	for _, p := range punctuators {
		if strings.HasPrefix(rest, p) {
			l.emit(sonar_cxx.Punctuator, len(p), nil)
			return
		}
	}
	_, size := utf8.DecodeRuneInString(rest)
	l.emit(sonar_cxx.Punctuator, size, nil)
}

func isIdentStart(b byte) bool {
	return b == '_' || b == '$' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// Lines splits toks after every EOL token. The EOF token is dropped and an
// unterminated last line is kept.
func Lines(toks []sonar_cxx.Token) [][]sonar_cxx.Token {
	var lines [][]sonar_cxx.Token
	start := 0
	for i, t := range toks {
		switch t.Kind {
		case sonar_cxx.EOL:
			lines = append(lines, toks[start:i+1:i+1])
			start = i + 1
		case sonar_cxx.EOF:
			if i > start {
				lines = append(lines, toks[start:i:i])
			}
			return lines
		}
	}
	if start < len(toks) {
		lines = append(lines, toks[start:])
	}
	return lines
}

// LexTokens returns the text of the tokens of line, without whitespace and
// line terminators.
func LexTokens(line string) []string {
	var texts []string
	for _, t := range Lex(line) {
		switch t.Kind {
		case sonar_cxx.Whitespace, sonar_cxx.EOL, sonar_cxx.EOF:
			continue
		}
		texts = append(texts, t.Text)
	}
	return texts
}
