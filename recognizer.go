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

// directive matches '#', the keyword and the keyword's own grammar.
func (p *parser) directive() (Directive, error) {
	pos := p.ws(0)
	q, ok := p.expect(pos, "#")
	if !ok {
		return nil, p.errorf(ErrStructuralMismatch, NoDirective)
	}
	q = p.ws(q)
	t, ok := p.at(q)
	kind := directiveKeywords[t.Text]
	if !ok || !t.isName() || kind == NoDirective {
		p.fail(q, "directive name")
		return nil, p.errorf(ErrStructuralMismatch, NoDirective)
	}

	var d Directive
	switch q++; kind {
	case DirDefine:
		d, ok = p.define(q)
	case DirInclude, DirIncludeNext:
		d, ok = p.include(q, kind == DirIncludeNext)
	case DirIfdef, DirIfndef, DirUndef:
		d, ok = p.named(q, kind)
	case DirIf, DirElif:
		d, ok = p.conditionalLine(q, kind)
	case DirElse:
		d, ok = &ElseDirective{}, p.atEnd(q)
	case DirEndif:
		d, ok = &EndifDirective{}, p.atEnd(q)
	case DirLine:
		d, ok = p.lineLine(q)
	case DirError:
		d, ok = &ErrorDirective{Tokens: p.rest(q)}, true
	case DirPragma:
		d, ok = &PragmaDirective{Tokens: p.rest(q)}, true
	case DirWarning:
		d, ok = &WarningDirective{Tokens: p.rest(q)}, true
	}
	if !ok {
		return nil, p.errorf(ErrMalformedDirective, kind)
	}
	return d, nil
}

// define:
//
//	define name ( parameters ) replacement
//	define name ( ... ) replacement
//	define name ( parameters , ... ) replacement
//	define name replacement
//
// A function-like definition requires '(' right after the name.
func (p *parser) define(pos int) (Directive, bool) {
	q, ok := p.space(pos)
	if !ok {
		return nil, false
	}
	t, ok := p.at(q)
	if !ok || !t.isName() {
		p.fail(q, "macro name")
		return nil, false
	}
	q++
	if lparen, ok := p.accept(q, "("); ok {
		return p.functionLike(t.Text, lparen)
	}

	d := &DefineDirective{Name: t.Text}
	if q == len(p.toks) {
		return d, true
	}
	if _, ok := p.space(q); !ok {
		return nil, false
	}
	d.Replacement = p.rest(q)
	return d, true
}

func (p *parser) functionLike(name string, pos int) (Directive, bool) {
	alts := []func(int) ([]string, bool, int, bool){
		p.fixedParams,
		p.anonVariadic,
		p.namedVariadic,
	}
	for _, alt := range alts {
		params, variadic, end, ok := alt(p.ws(pos))
		if !ok {
			continue
		}
		return &DefineDirective{
			Name:         name,
			FunctionLike: true,
			Params:       params,
			Variadic:     variadic,
			Replacement:  p.rest(end),
		}, true
	}
	return nil, false
}

// fixedParams matches an optional parameter list and ')'.
func (p *parser) fixedParams(pos int) ([]string, bool, int, bool) {
	names, q, ok := p.parameterList(pos)
	if !ok {
		names, q = nil, pos
	}
	end, ok := p.expect(p.ws(q), ")")
	return names, false, end, ok
}

// anonVariadic matches "... )".
func (p *parser) anonVariadic(pos int) ([]string, bool, int, bool) {
	q, ok := p.expect(pos, "...")
	if !ok {
		return nil, false, pos, false
	}
	end, ok := p.expect(p.ws(q), ")")
	return nil, true, end, ok
}

// namedVariadic matches "parameters , ... )".
func (p *parser) namedVariadic(pos int) ([]string, bool, int, bool) {
	names, q, ok := p.parameterList(pos)
	if !ok {
		return nil, false, pos, false
	}
	if q, ok = p.expect(p.ws(q), ","); !ok {
		return nil, false, pos, false
	}
	if q, ok = p.expect(p.ws(q), "..."); !ok {
		return nil, false, pos, false
	}
	end, ok := p.expect(p.ws(q), ")")
	return names, true, end, ok
}

// parameterList matches identifier { , identifier }. A comma that is not
// followed by an identifier is left unconsumed.
func (p *parser) parameterList(pos int) ([]string, int, bool) {
	if m, ok := p.params[pos]; ok {
		return m.names, m.end, m.ok
	}
	var names []string
	end := pos
	if name, ok := p.ident(pos); ok {
		names, end = append(names, name), pos+1
		for {
			q, ok := p.accept(p.ws(end), ",")
			if !ok {
				break
			}
			name, ok := p.ident(p.ws(q))
			if !ok {
				break
			}
			names, end = append(names, name), p.ws(q)+1
		}
	}
	m := paramsEntry{names, end, names != nil}
	p.params[pos] = m
	return m.names, m.end, m.ok
}

// include:
//
//	include < tokens >
//	include "string"
func (p *parser) include(pos int, next bool) (Directive, bool) {
	q := p.ws(pos)
	d := &IncludeDirective{Next: next}
	if r, ok := p.accept(q, "<"); ok {
		i := r
		for i < len(p.toks) && !p.toks[i].isPunct(">") {
			i++
		}
		if i == len(p.toks) {
			p.fail(i, "'>'")
			return nil, false
		}
		target := TrimSpace(p.toks[r:i])
		if len(target) == 0 {
			p.fail(r, "header name")
			return nil, false
		}
		d.System, d.Target = true, target[:len(target):len(target)]
		d.Path = Render(d.Target)
		return d, p.atEnd(i + 1)
	}
	t, ok := p.at(q)
	if !ok || t.Kind != String {
		p.fail(q, "header name")
		return nil, false
	}
	d.Target, d.Path = p.toks[q:q+1:q+1], unquote(t.Text)
	return d, p.atEnd(q + 1)
}

func unquote(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '"' {
			s = s[i+1:]
			break
		}
	}
	if n := len(s); n > 0 && s[n-1] == '"' {
		s = s[:n-1]
	}
	return s
}

// named matches the single identifier of #ifdef, #ifndef and #undef.
func (p *parser) named(pos int, kind DirectiveKind) (Directive, bool) {
	q, ok := p.space(pos)
	if !ok {
		return nil, false
	}
	name, ok := p.ident(q)
	if !ok || !p.atEnd(q+1) {
		return nil, false
	}
	switch kind {
	case DirIfdef:
		return &IfdefDirective{Name: name}, true
	case DirIfndef:
		return &IfndefDirective{Name: name}, true
	default:
		return &UndefDirective{Name: name}, true
	}
}

func (p *parser) conditionalLine(pos int, kind DirectiveKind) (Directive, bool) {
	x, _, ok := p.constantExpression(pos)
	if !ok {
		return nil, false
	}
	if kind == DirElif {
		return &ElifDirective{Cond: x}, true
	}
	return &IfDirective{Cond: x}, true
}

func (p *parser) lineLine(pos int) (Directive, bool) {
	q, ok := p.space(pos)
	if !ok {
		return nil, false
	}
	toks := p.rest(q)
	if len(toks) == 0 {
		p.fail(q, "line number")
		return nil, false
	}
	return &LineDirective{Tokens: toks}, true
}
