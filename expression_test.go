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
	"strings"
	"testing"

	sonar_cxx "github.com/QiXingjun/sonar-cxx"
	"github.com/QiXingjun/sonar-cxx/internal/preprocessor"

	"github.com/google/go-cmp/cmp"
)

func TestConstantExpression(t *testing.T) {
	testCases := []struct {
		expr string
		tree string
	}{
		{"42", "Literal(42)"},
		{" 1 ", "Literal(1)"},
		{"(1)", "Paren(Literal(1))"},
		{"X", "Identifier(X)"},
		{"1 + 2 * 3", "Binary(+, Literal(1), Binary(*, Literal(2), Literal(3)))"},
		{"1 - 2 - 3", "Binary(-, Binary(-, Literal(1), Literal(2)), Literal(3))"},
		{"1 /* one */ + 2", "Binary(+, Literal(1), Literal(2))"},
		{"x<=y>=z", "Binary(>=, Binary(<=, Identifier(x), Identifier(y)), Identifier(z))"},
		{"~0x1fUL % 3", "Binary(%, Unary(~, Literal(0x1fUL)), Literal(3))"},
		{"- -1", "Unary(-, Unary(-, Literal(1)))"},
		{"!!A", "Unary(!, Unary(!, Identifier(A)))"},
		{"!defined X", "Unary(!, Defined(X))"},
		{"defined ( X ) && defined Y", "Binary(&&, Defined(X), Defined(Y))"},
		{"a ? b : c ? d : e", "Ternary(Identifier(a), Identifier(b), Ternary(Identifier(c), Identifier(d), Identifier(e)))"},
		{"a ? b, c : d", "Ternary(Identifier(a), Comma(Identifier(b), Identifier(c)), Identifier(d))"},
		{"(a, b)", "Paren(Comma(Identifier(a), Identifier(b)))"},
		{"F()", "MacroCall(F)"},
		{"F (x)", "MacroCall(F, x)"},
		{"F(a, (b, c)) > 0", "Binary(>, MacroCall(F, a, (b, c)), Literal(0))"},
		{`true && 'c' != L"s"`, `Binary(&&, Literal(true), Binary(!=, Literal('c'), Literal(L"s")))`},
		{
			"a || b && c | d ^ e & f == g < h << i + j * k",
			"Binary(||, Identifier(a), Binary(&&, Identifier(b), Binary(|, Identifier(c), Binary(^, Identifier(d), " +
				"Binary(&, Identifier(e), Binary(==, Identifier(f), Binary(<, Identifier(g), Binary(<<, Identifier(h), " +
				"Binary(+, Identifier(i), Binary(*, Identifier(j), Identifier(k)))))))))))",
		},
	}

	for i, tc := range testCases {
		x, err := sonar_cxx.ParseConstantExpression(preprocessor.Lex(tc.expr))
		if err != nil {
			t.Errorf("TestConstantExpression(%d): `%s`: %v", i, tc.expr, err)
			continue
		}
		if got := sonar_cxx.Tree(x); got != tc.tree {
			t.Errorf("TestConstantExpression(%d): `%s`: got: %s want: %s", i, tc.expr, got, tc.tree)
		}
	}
}

func TestBadConstantExpression(t *testing.T) {
	testCases := []struct {
		expr string
		err  string
	}{
		{"", "structural mismatch: expected primary expression"},
		{"1 +", "structural mismatch: expected primary expression at line 1 col 4"},
		{"(1", "structural mismatch: expected ')' at line 1 col 3"},
		{"1 2", "structural mismatch: expected end of line at line 1 col 3"},
		{"defined", "structural mismatch: expected identifier at line 1 col 8"},
		{"F(,)", "structural mismatch: expected macro argument at line 1 col 3"},
		{"a ? b", "structural mismatch: expected ':' at line 1 col 6"},
	}

	for i, tc := range testCases {
		_, err := sonar_cxx.ParseConstantExpression(preprocessor.Lex(tc.expr))
		if err == nil {
			t.Errorf("TestBadConstantExpression(%d): `%s`: expected error", i, tc.expr)
			continue
		}
		if !errors.Is(err, sonar_cxx.ErrStructuralMismatch) {
			t.Errorf("TestBadConstantExpression(%d): `%s`: %v is not a structural mismatch", i, tc.expr, err)
		}
		if diff := cmp.Diff(tc.err, err.Error()); diff != "" {
			t.Errorf("TestBadConstantExpression(%d): mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestSpans(t *testing.T) {
	// token indexes: 1=0 +=2 (=4 2=5 *=7 3=9 )=10
	x, err := sonar_cxx.ParseConstantExpression(preprocessor.Lex("1 + (2 * 3)"))
	if err != nil {
		t.Fatal(err)
	}

	type span struct {
		Tree     string
		Pos, End int
	}
	var got []span
	sonar_cxx.Inspect(x, func(n sonar_cxx.Expr) bool {
		got = append(got, span{sonar_cxx.Tree(n), n.Pos(), n.End()})
		return true
	})
	want := []span{
		{"Binary(+, Literal(1), Paren(Binary(*, Literal(2), Literal(3))))", 0, 11},
		{"Literal(1)", 0, 1},
		{"Paren(Binary(*, Literal(2), Literal(3)))", 4, 11},
		{"Binary(*, Literal(2), Literal(3))", 5, 10},
		{"Literal(2)", 5, 6},
		{"Literal(3)", 9, 10},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestMacroCallArguments(t *testing.T) {
	x, err := sonar_cxx.ParseConstantExpression(preprocessor.Lex("CHECK( a + 1 , f(b, c) )"))
	if err != nil {
		t.Fatal(err)
	}
	call, ok := x.(*sonar_cxx.MacroCall)
	if !ok {
		t.Fatalf("got %T, want *MacroCall", x)
	}
	var args []string
	for _, a := range call.Args {
		args = append(args, sonar_cxx.Render(a))
	}
	if diff := cmp.Diff([]string{"a + 1", "f(b, c)"}, args); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestNestingTooDeep(t *testing.T) {
	nested := func(n int) string {
		return strings.Repeat("(", n) + "1" + strings.Repeat(")", n)
	}
	testCases := []struct {
		parser sonar_cxx.Parser
		expr   string
		ok     bool
	}{
		{sonar_cxx.Parser{}, nested(200), true},
		{sonar_cxx.Parser{}, nested(300), false},
		{sonar_cxx.Parser{}, strings.Repeat("!", 300) + "1", false},
		{sonar_cxx.Parser{MaxDepth: 4}, nested(3), true},
		{sonar_cxx.Parser{MaxDepth: 4}, nested(4), false},
		{sonar_cxx.Parser{MaxDepth: 4}, "a ? b : c ? d : e ? f : g ? h : i", false},
	}

	for i, tc := range testCases {
		_, err := tc.parser.ParseConstantExpression(preprocessor.Lex(tc.expr))
		switch {
		case tc.ok && err != nil:
			t.Errorf("TestNestingTooDeep(%d): %v", i, err)
		case !tc.ok && !errors.Is(err, sonar_cxx.ErrNestingTooDeep):
			t.Errorf("TestNestingTooDeep(%d): got: %v want: %v", i, err, sonar_cxx.ErrNestingTooDeep)
		}
	}
}

func TestExpressionRoundTrip(t *testing.T) {
	exprs := []string{
		"1 + 2 * 3",
		"(1+2)*3",
		"- -X",
		"-(-1)",
		"defined X && !defined(Y)",
		"a ? b , c : d ? e : f",
		"F ( x , ( y ) ) >= 0x10",
		"'a' == L'b' || \"s\"",
	}
	for i, expr := range exprs {
		x, err := sonar_cxx.ParseConstantExpression(preprocessor.Lex(expr))
		if err != nil {
			t.Errorf("TestExpressionRoundTrip(%d): `%s`: %v", i, expr, err)
			continue
		}
		y, err := sonar_cxx.ParseConstantExpression(preprocessor.Lex(x.String()))
		if err != nil {
			t.Errorf("TestExpressionRoundTrip(%d): `%s`: %v", i, x, err)
			continue
		}
		if diff := cmp.Diff(sonar_cxx.Tree(x), sonar_cxx.Tree(y)); diff != "" {
			t.Errorf("TestExpressionRoundTrip(%d): mismatch (-want +got):\n%s", i, diff)
		}
		if x.String() != y.String() {
			t.Errorf("TestExpressionRoundTrip(%d): got: %s want: %s", i, y, x)
		}
	}
}
