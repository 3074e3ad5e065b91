// Package ppcache memoizes directive parsing across lines and files:
// identical lines are parsed once.
package ppcache

import (
	"errors"

	sonar_cxx "github.com/QiXingjun/sonar-cxx"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize is the number of distinct lines kept when New is given zero.
const DefaultSize = 4096

type entry struct {
	d    sonar_cxx.Directive
	err  *sonar_cxx.ParseError
	line int
}

// Cache is a LineParser backed by an LRU cache keyed by the text of the
// line. It is safe for concurrent use.
//
// A cached Directive is shared: the positions of its tokens are those of
// the first line that produced it. Errors are moved to the line asked for.
type Cache struct {
	parser sonar_cxx.Parser
	lines  *lru.Cache[string, entry]
}

func New(size int, parser sonar_cxx.Parser) (*Cache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	lines, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	return &Cache{parser: parser, lines: lines}, nil
}

// ParseDirective works like sonar_cxx.Parser.ParseDirective, the directive
// or error is stored in the cache.
func (c *Cache) ParseDirective(line []sonar_cxx.Token) (sonar_cxx.Directive, error) {
	key := sonar_cxx.Render(line)
	at := firstLine(line)

	e, ok := c.lines.Get(key)
	if !ok {
		d, err := c.parser.ParseDirective(line)
		e = entry{d: d, line: at}
		if err != nil {
			var perr *sonar_cxx.ParseError
			if !errors.As(err, &perr) {
				return nil, err
			}
			e.err = perr
		}
		c.lines.Add(key, e)
	}

	if e.err != nil {
		moved := *e.err
		if moved.Line != 0 {
			moved.Line += at - e.line
		}
		return nil, &moved
	}
	return e.d, nil
}

// Len returns the number of lines cached.
func (c *Cache) Len() int { return c.lines.Len() }

func firstLine(line []sonar_cxx.Token) int {
	if len(line) == 0 {
		return 0
	}
	return line[0].Line
}
