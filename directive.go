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

// DirectiveKind identifies a directive by its keyword.
type DirectiveKind int

const (
	NoDirective DirectiveKind = iota
	DirDefine
	DirInclude
	DirIncludeNext
	DirIfdef
	DirIfndef
	DirIf
	DirElif
	DirElse
	DirEndif
	DirUndef
	DirLine
	DirError
	DirPragma
	DirWarning
)

var directiveKeywords = map[string]DirectiveKind{
	"define":       DirDefine,
	"include":      DirInclude,
	"include_next": DirIncludeNext,
	"ifdef":        DirIfdef,
	"ifndef":       DirIfndef,
	"if":           DirIf,
	"elif":         DirElif,
	"else":         DirElse,
	"endif":        DirEndif,
	"undef":        DirUndef,
	"line":         DirLine,
	"error":        DirError,
	"pragma":       DirPragma,
	"warning":      DirWarning,
}

// String returns the directive keyword without the leading '#'.
func (k DirectiveKind) String() string {
	for kw, kind := range directiveKeywords {
		if kind == k {
			return kw
		}
	}
	return fmt.Sprintf("DirectiveKind(%d)", int(k))
}

// Directive is a recognized preprocessor line. String renders it back to
// source form.
type Directive interface {
	Kind() DirectiveKind
	String() string
	directiveNode()
}

type (
	// DefineDirective is a #define line. Params is empty for object-like
	// macros, for NAME() and for NAME(...).
	DefineDirective struct {
		Name         string
		FunctionLike bool
		Params       []string
		Variadic     bool
		Replacement  []Token // interior whitespace kept, trailing whitespace dropped
	}

	// IncludeDirective is an #include or #include_next line. System is
	// set for the <...> form; Target then holds the tokens between the
	// brackets without surrounding whitespace, and Path their text.
	IncludeDirective struct {
		Next   bool
		System bool
		Path   string
		Target []Token
	}

	IfdefDirective  struct{ Name string }
	IfndefDirective struct{ Name string }
	UndefDirective  struct{ Name string }

	IfDirective   struct{ Cond Expr }
	ElifDirective struct{ Cond Expr }

	ElseDirective  struct{}
	EndifDirective struct{}

	// Directives with an opaque payload. Tokens excludes the surrounding
	// whitespace.
	LineDirective    struct{ Tokens []Token }
	ErrorDirective   struct{ Tokens []Token }
	PragmaDirective  struct{ Tokens []Token }
	WarningDirective struct{ Tokens []Token }
)

func (d *DefineDirective) Kind() DirectiveKind { return DirDefine }
func (d *IncludeDirective) Kind() DirectiveKind {
	if d.Next {
		return DirIncludeNext
	}
	return DirInclude
}
func (d *IfdefDirective) Kind() DirectiveKind   { return DirIfdef }
func (d *IfndefDirective) Kind() DirectiveKind  { return DirIfndef }
func (d *UndefDirective) Kind() DirectiveKind   { return DirUndef }
func (d *IfDirective) Kind() DirectiveKind      { return DirIf }
func (d *ElifDirective) Kind() DirectiveKind    { return DirElif }
func (d *ElseDirective) Kind() DirectiveKind    { return DirElse }
func (d *EndifDirective) Kind() DirectiveKind   { return DirEndif }
func (d *LineDirective) Kind() DirectiveKind    { return DirLine }
func (d *ErrorDirective) Kind() DirectiveKind   { return DirError }
func (d *PragmaDirective) Kind() DirectiveKind  { return DirPragma }
func (d *WarningDirective) Kind() DirectiveKind { return DirWarning }

func (*DefineDirective) directiveNode()  {}
func (*IncludeDirective) directiveNode() {}
func (*IfdefDirective) directiveNode()   {}
func (*IfndefDirective) directiveNode()  {}
func (*UndefDirective) directiveNode()   {}
func (*IfDirective) directiveNode()      {}
func (*ElifDirective) directiveNode()    {}
func (*ElseDirective) directiveNode()    {}
func (*EndifDirective) directiveNode()   {}
func (*LineDirective) directiveNode()    {}
func (*ErrorDirective) directiveNode()   {}
func (*PragmaDirective) directiveNode()  {}
func (*WarningDirective) directiveNode() {}

func (d *DefineDirective) String() string {
	var b strings.Builder
	b.WriteString("#define ")
	b.WriteString(d.Name)
	if d.FunctionLike {
		params := append([]string(nil), d.Params...)
		if d.Variadic {
			params = append(params, "...")
		}
		b.WriteString("(" + strings.Join(params, ", ") + ")")
	}
	if len(d.Replacement) > 0 {
		b.WriteString(" " + Render(d.Replacement))
	}
	return b.String()
}

func (d *IncludeDirective) String() string {
	target := Render(d.Target)
	if d.System {
		target = "<" + target + ">"
	}
	return "#" + d.Kind().String() + " " + target
}

func (d *IfdefDirective) String() string  { return "#ifdef " + d.Name }
func (d *IfndefDirective) String() string { return "#ifndef " + d.Name }
func (d *UndefDirective) String() string  { return "#undef " + d.Name }
func (d *IfDirective) String() string     { return "#if " + d.Cond.String() }
func (d *ElifDirective) String() string   { return "#elif " + d.Cond.String() }
func (d *ElseDirective) String() string   { return "#else" }
func (d *EndifDirective) String() string  { return "#endif" }

func (d *LineDirective) String() string    { return withPayload(DirLine, d.Tokens) }
func (d *ErrorDirective) String() string   { return withPayload(DirError, d.Tokens) }
func (d *PragmaDirective) String() string  { return withPayload(DirPragma, d.Tokens) }
func (d *WarningDirective) String() string { return withPayload(DirWarning, d.Tokens) }

func withPayload(k DirectiveKind, toks []Token) string {
	if len(toks) == 0 {
		return "#" + k.String()
	}
	return "#" + k.String() + " " + Render(toks)
}
