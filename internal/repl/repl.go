// Package repl implements the interactive evaluator of the infix command.
package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/zephyrtronium/infix"
)

const (
	prompt             = ">> "
	continuationPrompt = ".. "
)

const help = `Enter an expression to evaluate it. Variables are available as v.name.
Commands:
  :set name expr   evaluate expr and store it as v.name
  :vars            list variables
  :funcs           list functions
  :tree expr       show how expr is grouped
  :help            show this message
  exit, quit       leave
`

// Session is the state of an interactive evaluator. Lines with unbalanced
// parentheses continue onto the next line.
type Session struct {
	p    *infix.Parser1[map[string]float64, infix.Value]
	vars map[string]float64
	out  io.Writer
	buf  strings.Builder
}

// NewSession creates a session evaluating with p. vars may be nil.
func NewSession(p *infix.Parser1[map[string]float64, infix.Value], vars map[string]float64, out io.Writer) *Session {
	if vars == nil {
		vars = make(map[string]float64)
	}
	return &Session{p: p, vars: vars, out: out}
}

// Prompt returns the prompt for the next line.
func (s *Session) Prompt() string {
	if s.buf.Len() > 0 {
		return continuationPrompt
	}
	return prompt
}

// Line handles one line of input. It returns the complete input to record in
// history, if any, and whether the session is over.
func (s *Session) Line(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if s.buf.Len() == 0 {
		switch {
		case trimmed == "":
			return "", false
		case trimmed == "exit", trimmed == "quit":
			return "", true
		case strings.HasPrefix(trimmed, ":"):
			s.command(trimmed)
			return trimmed, false
		}
	} else {
		s.buf.WriteByte('\n')
	}
	s.buf.WriteString(input)
	full := s.buf.String()
	if needsMoreInput(full) {
		return "", false
	}
	s.buf.Reset()
	s.eval(full)
	return full, false
}

// Abort discards buffered input.
func (s *Session) Abort() {
	s.buf.Reset()
}

func (s *Session) eval(src string) {
	v, err := s.value(src)
	if err != nil {
		s.report(src, err)
		return
	}
	fmt.Fprintln(s.out, v)
}

func (s *Session) value(src string) (infix.Value, error) {
	f, err := s.p.Parse(src)
	if err != nil {
		return infix.Value{}, err
	}
	return f(s.vars), nil
}

func (s *Session) report(src string, err error) {
	var ie infix.InputError
	if errors.As(err, &ie) {
		fmt.Fprintln(s.out, infix.Caret(src, ie))
	}
	fmt.Fprintln(s.out, "error:", err)
}

func (s *Session) command(cmd string) {
	name, arg, _ := strings.Cut(cmd, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case ":help":
		io.WriteString(s.out, help)
	case ":vars":
		for _, k := range sortedKeys(s.vars) {
			fmt.Fprintf(s.out, "v.%s = %g\n", k, s.vars[k])
		}
	case ":funcs":
		fmt.Fprintln(s.out, strings.Join(s.p.Context().FuncNames(), " "))
	case ":tree":
		t, err := s.p.Explain(arg)
		if err != nil {
			s.report(arg, err)
			return
		}
		fmt.Fprintln(s.out, t)
	case ":set":
		k, src, _ := strings.Cut(arg, " ")
		if k == "" {
			fmt.Fprintln(s.out, "usage: :set name expr")
			return
		}
		v, err := s.value(src)
		if err != nil {
			s.report(src, err)
			return
		}
		if v.Type != infix.TypeNumber {
			fmt.Fprintln(s.out, "error: variables must be numbers")
			return
		}
		s.vars[k] = v.Num
		fmt.Fprintf(s.out, "v.%s = %g\n", k, v.Num)
	default:
		fmt.Fprintf(s.out, "unknown command %s; try :help\n", name)
	}
}

// Complete returns completions for a partial line: functions, variables, and
// commands that begin with its last word.
func (s *Session) Complete(line string) []string {
	i := strings.LastIndexAny(line, " \t()+-*/<>=!&|")
	head, word := line[:i+1], line[i+1:]
	var cands []string
	if strings.HasPrefix(line, ":") && i < 0 {
		cands = []string{":help", ":vars", ":funcs", ":tree", ":set"}
	} else {
		cands = append(cands, s.p.Context().FuncNames()...)
		for _, k := range sortedKeys(s.vars) {
			cands = append(cands, "v."+k)
		}
	}
	var r []string
	for _, c := range cands {
		if word != "" && strings.HasPrefix(c, word) {
			r = append(r, head+c)
		}
	}
	return r
}

// needsMoreInput reports whether src has unclosed parentheses.
func needsMoreInput(src string) bool {
	depth := 0
	for _, c := range src {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		}
	}
	return depth > 0
}

func sortedKeys(m map[string]float64) []string {
	r := make([]string, 0, len(m))
	for k := range m {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// Run reads lines from the terminal with editing and history until the user
// quits. History is kept in historyFile if it is not empty.
func Run(s *Session, historyFile string) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(s.Complete)

	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			line.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(historyFile); err == nil {
				line.WriteHistory(f)
				f.Close()
			}
		}()
	}

	fmt.Fprintln(s.out, "Type ':help' for commands, 'exit' or Ctrl+D to quit")
	for {
		input, err := line.Prompt(s.Prompt())
		switch {
		case err == liner.ErrPromptAborted:
			s.Abort()
			fmt.Fprintln(s.out, "^C")
			continue
		case err == io.EOF:
			fmt.Fprintln(s.out)
			return nil
		case err != nil:
			return err
		}
		hist, quit := s.Line(input)
		if hist != "" {
			line.AppendHistory(hist)
		}
		if quit {
			return nil
		}
	}
}
