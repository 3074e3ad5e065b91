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

import (
	"fmt"
	"strings"
)

// TokenKind classifies a preprocessing token.
type TokenKind int

const (
	// Identifier is a name that is not a preprocessor keyword.
	Identifier TokenKind = iota
	// Number is a pp-number, e.g. 42, 0x1f, 1.5e+3, 10UL.
	Number
	// Character is a character literal, e.g. 'a', L'\n'.
	Character
	// String is a string literal, e.g. "file.h", u8"x".
	String
	// Punctuator is an operator or punctuation sequence, e.g. (, ##, <<=.
	Punctuator
	// Keyword is one of the names the grammar reserves: defined, true, false.
	Keyword
	// Whitespace is a run of blanks, comments or line continuations.
	Whitespace
	// EOL terminates a logical line.
	EOL
	// EOF terminates the input.
	EOF
)

func (k TokenKind) String() string {
	switch k {
	case Identifier:
		return "identifier"
	case Number:
		return "number"
	case Character:
		return "character"
	case String:
		return "string"
	case Punctuator:
		return "punctuator"
	case Keyword:
		return "keyword"
	case Whitespace:
		return "whitespace"
	case EOL:
		return "end of line"
	case EOF:
		return "end of file"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Trivia is a non-semantic attachment of a token.
type Trivia struct {
	Comment bool
	Text    string
	Line    int
	Column  int
}

// Token is a classified preprocessing token. Line and Column are 1-based.
type Token struct {
	Kind   TokenKind
	Text   string
	Line   int
	Column int
	Trivia []Trivia
}

func (t Token) String() string {
	switch t.Kind {
	case EOL, EOF:
		return t.Kind.String()
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}

// EndLine returns the last line the token's text reaches.
func (t Token) EndLine() int {
	return t.Line + strings.Count(t.Text, "\n")
}

func (t Token) isSpace() bool { return t.Kind == Whitespace }

func (t Token) isPunct(text string) bool { return t.Kind == Punctuator && t.Text == text }

// isName reports whether t can name a macro or a directive.
func (t Token) isName() bool { return t.Kind == Identifier || t.Kind == Keyword }

// Render concatenates the text of toks.
func Render(toks []Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.Text)
	}
	return b.String()
}

// TrimSpace drops leading and trailing whitespace tokens.
func TrimSpace(toks []Token) []Token {
	for len(toks) > 0 && toks[0].isSpace() {
		toks = toks[1:]
	}
	for len(toks) > 0 && toks[len(toks)-1].isSpace() {
		toks = toks[:len(toks)-1]
	}
	return toks
}

// trimLine drops the line terminator tokens the lexer appends.
func trimLine(toks []Token) []Token {
	for len(toks) > 0 {
		switch toks[len(toks)-1].Kind {
		case EOL, EOF:
			toks = toks[:len(toks)-1]
			continue
		}
		break
	}
	return toks
}
