package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"

	sonar_cxx "github.com/QiXingjun/sonar-cxx"
	"github.com/QiXingjun/sonar-cxx/internal/linecount"
	"github.com/QiXingjun/sonar-cxx/internal/ppcache"
	"github.com/QiXingjun/sonar-cxx/internal/preprocessor"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "max-depth",
			Value:   sonar_cxx.DefaultMaxDepth,
			Usage:   "Nesting limit of parentheses, conditionals and unary operators",
			EnvVars: []string{"SONAR_CXX_MAX_DEPTH"},
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Value:   runtime.NumCPU(),
			Usage:   "Number of files scanned at the same time",
			EnvVars: []string{"SONAR_CXX_JOBS"},
		},
		&cli.StringFlag{
			Name:    "format",
			Value:   "text",
			Usage:   "Output format, text or yaml",
			EnvVars: []string{"SONAR_CXX_FORMAT"},
		},
		&cli.IntFlag{
			Name:    "cache-size",
			Value:   ppcache.DefaultSize,
			Usage:   "Number of distinct directive lines kept parsed",
			EnvVars: []string{"SONAR_CXX_CACHE_SIZE"},
		},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "sonar-cxx",
		Usage: "Recognize C/C++ preprocessor directives",
		Flags: globalFlags(),
		Before: func(c *cli.Context) error {
			switch f := c.String("format"); f {
			case "text", "yaml":
				return nil
			default:
				return fmt.Errorf("unknown format %q", f)
			}
		},
		Commands: []*cli.Command{
			{
				Name:      "directives",
				Usage:     "List the directives of files and report malformed ones",
				ArgsUsage: "FILE...",
				Action:    runDirectives,
			},
			{
				Name:      "expr",
				Usage:     "Print the tree of a constant expression",
				ArgsUsage: "EXPRESSION",
				Action:    runExpr,
			},
			{
				Name:      "lines",
				Usage:     "Count lines of code and comment lines",
				ArgsUsage: "FILE...",
				Action:    runLines,
			},
		},
	}
}

func main() {
	log.SetFlags(0)
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func parserFrom(c *cli.Context) sonar_cxx.Parser {
	return sonar_cxx.Parser{MaxDepth: c.Int("max-depth")}
}

// scan processes files in parallel. visitors, when set, returns the
// visitors for the i-th file.
func scan(c *cli.Context, files []string, visitors func(i int) []preprocessor.TokenVisitor) ([]*preprocessor.Result, error) {
	if len(files) == 0 {
		return nil, errors.New("no input files")
	}
	cache, err := ppcache.New(c.Int("cache-size"), parserFrom(c))
	if err != nil {
		return nil, err
	}

	results := make([]*preprocessor.Result, len(files))
	g, ctx := errgroup.WithContext(c.Context)
	if jobs := c.Int("jobs"); jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, name := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p := preprocessor.NewPreprocessor()
			p.Parser = cache
			if visitors != nil {
				for _, v := range visitors(i) {
					p.AddVisitor(v)
				}
			}
			res, err := processFile(p, name)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func processFile(p *preprocessor.Preprocessor, name string) (*preprocessor.Result, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.Process(name, f)
}

// ---------------- directives ----------------

type directiveReport struct {
	File       string       `yaml:"file"`
	Directives []lineReport `yaml:"directives,omitempty"`
	Nesting    []string     `yaml:"nesting,omitempty"`
}

type lineReport struct {
	Line  int    `yaml:"line"`
	Kind  string `yaml:"kind"`
	Text  string `yaml:"text,omitempty"`
	Error string `yaml:"error,omitempty"`
}

func runDirectives(c *cli.Context) error {
	results, err := scan(c, c.Args().Slice(), nil)
	if err != nil {
		return err
	}

	malformed := 0
	reports := make([]directiveReport, len(results))
	for i, res := range results {
		reports[i].File = res.File
		for _, e := range res.Entries {
			lr := lineReport{Line: e.Line}
			if e.Err != nil {
				malformed++
				lr.Kind, lr.Error = describe(e.Err)
			} else {
				lr.Kind, lr.Text = e.Directive.Kind().String(), e.Directive.String()
			}
			reports[i].Directives = append(reports[i].Directives, lr)
		}
		for _, err := range res.Nesting {
			reports[i].Nesting = append(reports[i].Nesting, err.Error())
		}
	}

	if c.String("format") == "yaml" {
		err = writeYAML(c.App.Writer, reports)
	} else {
		err = writeDirectives(c.App.Writer, reports)
	}
	if err != nil {
		return err
	}
	if malformed > 0 {
		return fmt.Errorf("%d malformed directive lines", malformed)
	}
	return nil
}

// describe returns the directive a line failed as and the failure without
// the file position the report already carries.
func describe(err error) (kind, msg string) {
	var perr *sonar_cxx.ParseError
	if !errors.As(err, &perr) {
		return "unknown", err.Error()
	}
	if perr.Directive == sonar_cxx.NoDirective {
		return "unknown", perr.Error()
	}
	return perr.Directive.String(), perr.Error()
}

func writeDirectives(w io.Writer, reports []directiveReport) error {
	for _, r := range reports {
		for _, l := range r.Directives {
			var err error
			if l.Error != "" {
				_, err = fmt.Fprintf(w, "%s:%d: %s: error: %s\n", r.File, l.Line, l.Kind, l.Error)
			} else {
				_, err = fmt.Fprintf(w, "%s:%d: %s: %s\n", r.File, l.Line, l.Kind, l.Text)
			}
			if err != nil {
				return err
			}
		}
		for _, n := range r.Nesting {
			if _, err := fmt.Fprintf(w, "%s\n", n); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// ---------------- expr ----------------

type exprReport struct {
	Expr string `yaml:"expr"`
	Tree string `yaml:"tree"`
}

func runExpr(c *cli.Context) error {
	src := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(src) == "" {
		return errors.New("no expression")
	}
	x, err := parserFrom(c).ParseConstantExpression(preprocessor.Lex(src))
	if err != nil {
		return err
	}
	if c.String("format") == "yaml" {
		return writeYAML(c.App.Writer, exprReport{Expr: x.String(), Tree: sonar_cxx.Tree(x)})
	}
	_, err = fmt.Fprintln(c.App.Writer, sonar_cxx.Tree(x))
	return err
}

// ---------------- lines ----------------

type linesReport struct {
	File         string `yaml:"file"`
	NCLOC        int    `yaml:"ncloc"`
	CommentLines int    `yaml:"comment_lines"`
	CodeLines    []int  `yaml:"code_lines,flow"`
	Comments     []int  `yaml:"comments,flow"`
}

func runLines(c *cli.Context) error {
	files := c.Args().Slice()
	counters := make([]*linecount.Counter, len(files))
	for i := range counters {
		counters[i] = linecount.New()
	}
	results, err := scan(c, files, func(i int) []preprocessor.TokenVisitor {
		return []preprocessor.TokenVisitor{counters[i]}
	})
	if err != nil {
		return err
	}

	reports := make([]linesReport, len(results))
	for i, res := range results {
		n := counters[i]
		reports[i] = linesReport{
			File:         res.File,
			NCLOC:        n.NCLOC(),
			CommentLines: n.Comments(),
			CodeLines:    n.CodeLines(),
			Comments:     n.CommentLines(),
		}
	}

	if c.String("format") == "yaml" {
		return writeYAML(c.App.Writer, reports)
	}
	for _, r := range reports {
		if _, err := fmt.Fprintf(c.App.Writer, "%s: %d lines of code, %d comment lines\n", r.File, r.NCLOC, r.CommentLines); err != nil {
			return err
		}
	}
	return nil
}
