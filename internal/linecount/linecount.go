// Package linecount collects per-line metrics of a file while it is
// scanned: which lines carry code and which carry comments.
package linecount

import (
	"maps"
	"slices"

	sonar_cxx "github.com/QiXingjun/sonar-cxx"
)

// Counter is a preprocessor.TokenVisitor. A line counts as code when a
// token other than whitespace or a line terminator touches it; a token
// spanning several lines, like a string with continuations, marks all of
// them. A comment counts on the line it starts at.
type Counter struct {
	code     map[int]struct{}
	comments map[int]struct{}
}

func New() *Counter {
	return &Counter{
		code:     map[int]struct{}{},
		comments: map[int]struct{}{},
	}
}

func (c *Counter) VisitToken(tok sonar_cxx.Token) {
	switch tok.Kind {
	case sonar_cxx.EOF:
		return
	case sonar_cxx.EOL, sonar_cxx.Whitespace:
	default:
		for line := tok.Line; line <= tok.EndLine(); line++ {
			c.code[line] = struct{}{}
		}
	}
	for _, tr := range tok.Trivia {
		if tr.Comment {
			c.comments[tr.Line] = struct{}{}
		}
	}
}

// CodeLines returns the lines of code in ascending order.
func (c *Counter) CodeLines() []int { return slices.Sorted(maps.Keys(c.code)) }

// CommentLines returns the comment lines in ascending order.
func (c *Counter) CommentLines() []int { return slices.Sorted(maps.Keys(c.comments)) }

// NCLOC is the number of lines of code.
func (c *Counter) NCLOC() int { return len(c.code) }

func (c *Counter) Comments() int { return len(c.comments) }

// Reset forgets everything counted so far.
func (c *Counter) Reset() {
	clear(c.code)
	clear(c.comments)
}
