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
	"errors"
	"fmt"
)

var (
	// ErrStructuralMismatch reports a token sequence that matches no rule.
	ErrStructuralMismatch = errors.New("structural mismatch")
	// ErrMalformedDirective reports a directive whose keyword was recognized
	// but whose operands do not have the required shape.
	ErrMalformedDirective = errors.New("malformed directive")
	// ErrNestingTooDeep reports input nested deeper than Parser.MaxDepth.
	ErrNestingTooDeep = errors.New("nesting too deep")
)

// ParseError describes where and why a line failed to parse.
type ParseError struct {
	Err       error         // one of the Err* sentinels
	Directive DirectiveKind // directive attempted, NoDirective for bare expressions
	Rule      string        // rule that failed at Offset
	Offset    int           // index into the token slice
	Line      int
	Column    int
}

func (e *ParseError) Error() string {
	msg := e.Err.Error()
	if e.Directive != NoDirective {
		msg = fmt.Sprintf("%s: #%s", msg, e.Directive)
	}
	if e.Rule != "" {
		msg += ": expected " + e.Rule
	}
	if e.Line != 0 {
		msg += fmt.Sprintf(" at line %d col %d", e.Line, e.Column)
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }
