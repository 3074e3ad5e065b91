package preprocessor

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	sonar_cxx "github.com/QiXingjun/sonar-cxx"
)

// ---------------- Preprocessor ----------------

// LineParser parses one directive line. sonar_cxx.Parser and ppcache.Cache
// both implement it.
type LineParser interface {
	ParseDirective(line []sonar_cxx.Token) (sonar_cxx.Directive, error)
}

// TokenVisitor observes every token of a file. A line's tokens are visited
// before the line is parsed, malformed or not.
type TokenVisitor interface {
	VisitToken(tok sonar_cxx.Token)
}

type Preprocessor struct {
	Parser   LineParser
	visitors []TokenVisitor
}

func NewPreprocessor() *Preprocessor {
	return &Preprocessor{Parser: sonar_cxx.Parser{}}
}

func (p *Preprocessor) AddVisitor(v TokenVisitor) {
	p.visitors = append(p.visitors, v)
}

// Entry is a directive line of a file. Exactly one of Directive and Err is set.
type Entry struct {
	Line      int
	Tokens    []sonar_cxx.Token
	Directive sonar_cxx.Directive
	Err       error
}

type Result struct {
	File    string
	Entries []Entry
	Nesting []error // unbalanced conditional groups
}

// Err joins the errors of all entries and the nesting errors.
func (r *Result) Err() error {
	var errs []error
	for _, e := range r.Entries {
		if e.Err != nil {
			errs = append(errs, e.Err)
		}
	}
	return errors.Join(append(errs, r.Nesting...)...)
}

// Process reads a file and recognizes its directive lines. Only reading
// fails Process; per-line failures are reported in the result.
func (p *Preprocessor) Process(filename string, r io.Reader) (*Result, error) {
	bs, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", shortPath(filename), err)
	}

	res := &Result{File: filename}
	cond := newCondStack()
	for _, line := range Lines(Lex(string(bs))) {
		for _, tok := range line {
			for _, v := range p.visitors {
				v.VisitToken(tok)
			}
		}
		if !sonar_cxx.IsDirective(line) {
			continue
		}

		lineNo := line[0].Line
		d, err := p.Parser.ParseDirective(line)
		if err != nil {
			err = fmt.Errorf("%s:%d: %w", shortPath(filename), lineNo, err)
		} else if cerr := cond.Track(d, lineNo); cerr != nil {
			res.Nesting = append(res.Nesting, fmt.Errorf("%s:%d: %w", shortPath(filename), lineNo, cerr))
		}
		res.Entries = append(res.Entries, Entry{Line: lineNo, Tokens: line, Directive: d, Err: err})
	}
	for _, line := range cond.UnclosedLines() {
		res.Nesting = append(res.Nesting, fmt.Errorf("%s:%d: %w", shortPath(filename), line, ErrUnclosedConditional))
	}
	return res, nil
}

func shortPath(p string) string {
	// nicer errors
	if p == "" {
		return p
	}
	return filepath.Base(p)
}

// ---------------- Conditionals ----------------

var (
	ErrUnclosedConditional = errors.New("unclosed #if, #ifdef or #ifndef")
	ErrElifWithoutIf       = errors.New("#elif without #if")
	ErrElseWithoutIf       = errors.New("#else without #if")
	ErrEndifWithoutIf      = errors.New("#endif without #if")
	ErrElifAfterElse       = errors.New("#elif after #else")
	ErrElseAfterElse       = errors.New("#else after #else")
)

// condStack tracks the nesting of conditional groups. Branches are not
// evaluated, so every group is walked.
type condStack struct {
	stack []condFrame
}

type condFrame struct {
	line    int
	sawElse bool
}

func newCondStack() *condStack { return &condStack{} }

// Track updates the nesting for directive d found at line.
func (c *condStack) Track(d sonar_cxx.Directive, line int) error {
	switch d.Kind() {
	case sonar_cxx.DirIf, sonar_cxx.DirIfdef, sonar_cxx.DirIfndef:
		c.Push(line)
	case sonar_cxx.DirElif:
		return c.Elif()
	case sonar_cxx.DirElse:
		return c.Else()
	case sonar_cxx.DirEndif:
		return c.Pop()
	}
	return nil
}

func (c *condStack) Push(line int) {
	c.stack = append(c.stack, condFrame{line: line})
}

func (c *condStack) Elif() error {
	if len(c.stack) == 0 {
		return ErrElifWithoutIf
	}
	if c.stack[len(c.stack)-1].sawElse {
		return ErrElifAfterElse
	}
	return nil
}

func (c *condStack) Else() error {
	if len(c.stack) == 0 {
		return ErrElseWithoutIf
	}
	top := &c.stack[len(c.stack)-1]
	if top.sawElse {
		return ErrElseAfterElse
	}
	top.sawElse = true
	return nil
}

func (c *condStack) Pop() error {
	if len(c.stack) == 0 {
		return ErrEndifWithoutIf
	}
	c.stack = c.stack[:len(c.stack)-1]
	return nil
}

// UnclosedLines returns the lines of the groups still open, outermost first.
func (c *condStack) UnclosedLines() []int {
	lines := make([]int, len(c.stack))
	for i, f := range c.stack {
		lines[i] = f.line
	}
	return lines
}
