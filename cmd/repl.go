package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	pkgerrors "github.com/pkg/errors"
)

const (
	historyFile = ".anic_history"
	prompt      = "anic> "
)

const replHelp = `Arguments are separated by ';'.
  render T...           equals A ; B        sends V ; T
  result OPS ; OP|FN    flow P ; OP [; N]   transition T ; OP
  let NAME = T          drop                :quit
A line with no command is rendered.`

func (s *session) repl(_ []string) error {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return pkgerrors.Wrap(err, "read line")
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		if line == ":quit" {
			return nil
		}
		if err := s.eval(line); err != nil {
			fmt.Fprintln(s.out, "error:", err)
		}
	}
}

// eval runs one REPL line.
func (s *session) eval(line string) error {
	word, rest, _ := strings.Cut(line, " ")
	args := splitArgs(rest)
	switch word {
	case "help", ":help":
		fmt.Fprintln(s.out, replHelp)
		return nil
	case "render":
		return s.render(args)
	case "equals":
		return s.exactly(args, 2, s.equals)
	case "sends":
		return s.exactly(args, 2, s.sends)
	case "result":
		return s.exactly(args, 2, s.result)
	case "transition":
		return s.exactly(args, 2, s.transition)
	case "flow":
		if len(args) != 2 && len(args) != 3 {
			return pkgerrors.Errorf("flow takes 2 or 3 arguments, got %d", len(args))
		}
		return s.flow(args)
	case "let":
		name, expr, ok := strings.Cut(rest, "=")
		if !ok {
			return pkgerrors.New("usage: let NAME = TYPE")
		}
		t, err := s.r.Define(strings.TrimSpace(name), strings.TrimSpace(expr))
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, t)
		return nil
	case "drop":
		if !s.r.Drop() {
			return pkgerrors.New("nothing to drop")
		}
		return nil
	}
	return s.render([]string{line})
}

func (s *session) exactly(args []string, n int, run func([]string) error) error {
	if len(args) != n {
		return pkgerrors.Errorf("expected %d arguments separated by ';', got %d", n, len(args))
	}
	return run(args)
}

func splitArgs(rest string) []string {
	if strings.TrimSpace(rest) == "" {
		return nil
	}
	parts := strings.Split(rest, ";")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
