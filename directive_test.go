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

package sonar_cxx_test

import (
	"errors"
	"testing"

	sonar_cxx "github.com/QiXingjun/sonar-cxx"
	"github.com/QiXingjun/sonar-cxx/internal/preprocessor"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// positions are checked by the spans and error tests
var ignorePositions = cmp.Options{
	cmpopts.IgnoreFields(sonar_cxx.Token{}, "Line", "Column", "Trivia"),
	cmpopts.EquateEmpty(),
}

func tok(kind sonar_cxx.TokenKind, text string) sonar_cxx.Token {
	return sonar_cxx.Token{Kind: kind, Text: text}
}

func TestDirective(t *testing.T) {
	testCases := []struct {
		line string
		kind sonar_cxx.DirectiveKind
		want string
	}{
		{"#define A 1", sonar_cxx.DirDefine, "#define A 1"},
		{"#define A", sonar_cxx.DirDefine, "#define A"},
		{"#define A  1 +  2 ", sonar_cxx.DirDefine, "#define A 1 +  2"},
		{"#define F(x) x", sonar_cxx.DirDefine, "#define F(x) x"},
		{"#define F(x)x", sonar_cxx.DirDefine, "#define F(x) x"},
		{"#define F (x) x", sonar_cxx.DirDefine, "#define F (x) x"},
		{"#define F() 1", sonar_cxx.DirDefine, "#define F() 1"},
		{"#define F( a ,b ) a", sonar_cxx.DirDefine, "#define F(a, b) a"},
		{"#define F(...) __VA_ARGS__", sonar_cxx.DirDefine, "#define F(...) __VA_ARGS__"},
		{"#define F(a, b, ...) a ## b", sonar_cxx.DirDefine, "#define F(a, b, ...) a ## b"},
		{"#define S(x) #x", sonar_cxx.DirDefine, "#define S(x) #x"},
		{"#  include <sys/types.h>", sonar_cxx.DirInclude, "#include <sys/types.h>"},
		{"#include<a.h>", sonar_cxx.DirInclude, "#include <a.h>"},
		{`#include "a.h" // local`, sonar_cxx.DirInclude, `#include "a.h"`},
		{"#include_next <a.h>", sonar_cxx.DirIncludeNext, "#include_next <a.h>"},
		{"#ifdef X // guard", sonar_cxx.DirIfdef, "#ifdef X"},
		{"#ifndef X", sonar_cxx.DirIfndef, "#ifndef X"},
		{"#undef X ", sonar_cxx.DirUndef, "#undef X"},
		{"#if defined(A) || B", sonar_cxx.DirIf, "#if defined(A) || B"},
		{"#if(1)", sonar_cxx.DirIf, "#if (1)"},
		{"#elif 0", sonar_cxx.DirElif, "#elif 0"},
		{"  #  else", sonar_cxx.DirElse, "#else"},
		{"#endif /* X */", sonar_cxx.DirEndif, "#endif"},
		{`#line 10 "f.c"`, sonar_cxx.DirLine, `#line 10 "f.c"`},
		{"#error oops  here", sonar_cxx.DirError, "#error oops  here"},
		{"#error", sonar_cxx.DirError, "#error"},
		{"#pragma once", sonar_cxx.DirPragma, "#pragma once"},
		{"#warning w", sonar_cxx.DirWarning, "#warning w"},
	}

	for i, tc := range testCases {
		d, err := sonar_cxx.ParseDirective(preprocessor.Lex(tc.line))
		if err != nil {
			t.Errorf("TestDirective(%d): `%s`: %v", i, tc.line, err)
			continue
		}
		if d.Kind() != tc.kind {
			t.Errorf("TestDirective(%d): `%s`: got kind: %s want: %s", i, tc.line, d.Kind(), tc.kind)
		}
		if got := d.String(); got != tc.want {
			t.Errorf("TestDirective(%d): `%s`: got: %s want: %s", i, tc.line, got, tc.want)
		}
	}
}

func TestDefineDirective(t *testing.T) {
	I, P, W := sonar_cxx.Identifier, sonar_cxx.Punctuator, sonar_cxx.Whitespace
	testCases := []struct {
		line string
		want *sonar_cxx.DefineDirective
	}{
		{
			"#define F(a,b) a",
			&sonar_cxx.DefineDirective{Name: "F", FunctionLike: true, Params: []string{"a", "b"},
				Replacement: []sonar_cxx.Token{tok(I, "a")}},
		},
		{
			"#define F (a,b) a",
			&sonar_cxx.DefineDirective{Name: "F",
				Replacement: []sonar_cxx.Token{tok(P, "("), tok(I, "a"), tok(P, ","), tok(I, "b"), tok(P, ")"), tok(W, " "), tok(I, "a")}},
		},
		{
			"#define V(...)",
			&sonar_cxx.DefineDirective{Name: "V", FunctionLike: true, Variadic: true},
		},
		{
			"#define V(x, ...) x",
			&sonar_cxx.DefineDirective{Name: "V", FunctionLike: true, Params: []string{"x"}, Variadic: true,
				Replacement: []sonar_cxx.Token{tok(I, "x")}},
		},
		{
			"#define E()",
			&sonar_cxx.DefineDirective{Name: "E", FunctionLike: true},
		},
		{
			"#define true 1",
			&sonar_cxx.DefineDirective{Name: "true", Replacement: []sonar_cxx.Token{tok(sonar_cxx.Number, "1")}},
		},
	}

	for i, tc := range testCases {
		d, err := sonar_cxx.ParseDirective(preprocessor.Lex(tc.line))
		if err != nil {
			t.Errorf("TestDefineDirective(%d): `%s`: %v", i, tc.line, err)
			continue
		}
		if diff := cmp.Diff(tc.want, d, ignorePositions); diff != "" {
			t.Errorf("TestDefineDirective(%d): `%s`: mismatch (-want +got):\n%s", i, tc.line, diff)
		}
	}
}

func TestIncludeDirective(t *testing.T) {
	I, P := sonar_cxx.Identifier, sonar_cxx.Punctuator
	testCases := []struct {
		line string
		want *sonar_cxx.IncludeDirective
	}{
		{
			"#include <a/b.h>",
			&sonar_cxx.IncludeDirective{System: true, Path: "a/b.h",
				Target: []sonar_cxx.Token{tok(I, "a"), tok(P, "/"), tok(I, "b"), tok(P, "."), tok(I, "h")}},
		},
		{
			`#include_next "x.h"`,
			&sonar_cxx.IncludeDirective{Next: true, Path: "x.h",
				Target: []sonar_cxx.Token{tok(sonar_cxx.String, `"x.h"`)}},
		},
	}

	for i, tc := range testCases {
		d, err := sonar_cxx.ParseDirective(preprocessor.Lex(tc.line))
		if err != nil {
			t.Errorf("TestIncludeDirective(%d): `%s`: %v", i, tc.line, err)
			continue
		}
		if diff := cmp.Diff(tc.want, d, ignorePositions); diff != "" {
			t.Errorf("TestIncludeDirective(%d): `%s`: mismatch (-want +got):\n%s", i, tc.line, diff)
		}
	}
}

func TestConditionalDirective(t *testing.T) {
	d, err := sonar_cxx.ParseDirective(preprocessor.Lex("#if A\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := &sonar_cxx.IfDirective{Cond: &sonar_cxx.Ident{Span: sonar_cxx.Span{From: 3, To: 4}, Name: "A"}}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	d, err = sonar_cxx.ParseDirective(preprocessor.Lex("#elif !defined B"))
	if err != nil {
		t.Fatal(err)
	}
	want2 := &sonar_cxx.ElifDirective{Cond: &sonar_cxx.Unary{
		Span: sonar_cxx.Span{From: 3, To: 7},
		Op:   sonar_cxx.OpNot,
		X:    &sonar_cxx.Defined{Span: sonar_cxx.Span{From: 4, To: 7}, Name: "B"},
	}}
	if diff := cmp.Diff(want2, d); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestBadDirective(t *testing.T) {
	testCases := []struct {
		line string
		kind sonar_cxx.DirectiveKind
		err  error
		msg  string
	}{
		{"int x;", sonar_cxx.NoDirective, sonar_cxx.ErrStructuralMismatch,
			"structural mismatch: expected '#' at line 1 col 1"},
		{"#foo", sonar_cxx.NoDirective, sonar_cxx.ErrStructuralMismatch,
			"structural mismatch: expected directive name at line 1 col 2"},
		{"#", sonar_cxx.NoDirective, sonar_cxx.ErrStructuralMismatch,
			"structural mismatch: expected directive name at line 1 col 2"},
		{"#ifdef 1", sonar_cxx.DirIfdef, sonar_cxx.ErrMalformedDirective,
			"malformed directive: #ifdef: expected identifier at line 1 col 8"},
		{"#ifdef", sonar_cxx.DirIfdef, sonar_cxx.ErrMalformedDirective,
			"malformed directive: #ifdef: expected whitespace at line 1 col 7"},
		{"#ifdef A B", sonar_cxx.DirIfdef, sonar_cxx.ErrMalformedDirective,
			"malformed directive: #ifdef: expected end of line at line 1 col 10"},
		{"#ifndef defined", sonar_cxx.DirIfndef, sonar_cxx.ErrMalformedDirective,
			"malformed directive: #ifndef: expected identifier at line 1 col 9"},
		{"#if", sonar_cxx.DirIf, sonar_cxx.ErrMalformedDirective,
			"malformed directive: #if: expected primary expression at line 1 col 4"},
		{"#if 1 +", sonar_cxx.DirIf, sonar_cxx.ErrMalformedDirective,
			"malformed directive: #if: expected primary expression at line 1 col 8"},
		{"#define A+1", sonar_cxx.DirDefine, sonar_cxx.ErrMalformedDirective,
			"malformed directive: #define: expected whitespace at line 1 col 10"},
		{"#define F(a,) x", sonar_cxx.DirDefine, sonar_cxx.ErrMalformedDirective,
			"malformed directive: #define: expected '...' at line 1 col 13"},
		{"#include", sonar_cxx.DirInclude, sonar_cxx.ErrMalformedDirective,
			"malformed directive: #include: expected header name at line 1 col 9"},
		{"#include <>", sonar_cxx.DirInclude, sonar_cxx.ErrMalformedDirective,
			"malformed directive: #include: expected header name at line 1 col 11"},
		{"#else x", sonar_cxx.DirElse, sonar_cxx.ErrMalformedDirective,
			"malformed directive: #else: expected end of line at line 1 col 7"},
		{"#line", sonar_cxx.DirLine, sonar_cxx.ErrMalformedDirective,
			"malformed directive: #line: expected whitespace at line 1 col 6"},
	}

	for i, tc := range testCases {
		_, err := sonar_cxx.ParseDirective(preprocessor.Lex(tc.line))
		if !errors.Is(err, tc.err) {
			t.Errorf("TestBadDirective(%d): `%s`: got: %v want: %v", i, tc.line, err, tc.err)
			continue
		}
		var perr *sonar_cxx.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("TestBadDirective(%d): `%s`: %T is not a *ParseError", i, tc.line, err)
			continue
		}
		if perr.Directive != tc.kind {
			t.Errorf("TestBadDirective(%d): `%s`: got kind: %s want: %s", i, tc.line, perr.Directive, tc.kind)
		}
		if diff := cmp.Diff(tc.msg, err.Error()); diff != "" {
			t.Errorf("TestBadDirective(%d): mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestDirectiveNestingTooDeep(t *testing.T) {
	p := sonar_cxx.Parser{MaxDepth: 2}
	_, err := p.ParseDirective(preprocessor.Lex("#if ((1))"))
	var perr *sonar_cxx.ParseError
	if !errors.As(err, &perr) || !errors.Is(err, sonar_cxx.ErrNestingTooDeep) {
		t.Fatalf("got: %v want: %v", err, sonar_cxx.ErrNestingTooDeep)
	}
	if perr.Directive != sonar_cxx.DirIf {
		t.Errorf("got kind: %s want: %s", perr.Directive, sonar_cxx.DirIf)
	}
}

func TestDirectiveRoundTrip(t *testing.T) {
	lines := []string{
		"#define F( a, b , ... ) a ## b /* c */ __VA_ARGS__",
		"#define A (1 + 2)",
		"#include < sys/types.h >",
		"#if defined X && F ( 1 , (2) ) > 3 ? 4 : 5",
		"#elif - -1",
		"#ifndef GUARD",
		"#pragma omp parallel for",
	}
	for i, line := range lines {
		d, err := sonar_cxx.ParseDirective(preprocessor.Lex(line))
		if err != nil {
			t.Errorf("TestDirectiveRoundTrip(%d): `%s`: %v", i, line, err)
			continue
		}
		again, err := sonar_cxx.ParseDirective(preprocessor.Lex(d.String()))
		if err != nil {
			t.Errorf("TestDirectiveRoundTrip(%d): `%s`: %v", i, d, err)
			continue
		}
		if again.String() != d.String() {
			t.Errorf("TestDirectiveRoundTrip(%d): got: %s want: %s", i, again, d)
		}
	}
}

func TestIsDirective(t *testing.T) {
	testCases := []struct {
		line string
		want bool
	}{
		{"#define A", true},
		{"  # x", true},
		{"/* c */ #if", true},
		{"a # b", false},
		{"", false},
		{"   ", false},
	}
	for i, tc := range testCases {
		if got := sonar_cxx.IsDirective(preprocessor.Lex(tc.line)); got != tc.want {
			t.Errorf("TestIsDirective(%d): `%s`: got: %v want: %v", i, tc.line, got, tc.want)
		}
	}
}
