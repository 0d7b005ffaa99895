package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/lsc/inherit"
	"github.com/npillmayer/lsc/interp"
	"github.com/npillmayer/lsc/parser"
	"github.com/npillmayer/lsc/runtime"
	"github.com/pterm/pterm"
)

// Intp is our interactive session.
type Intp struct {
	rt         *runtime.Runtime
	intp       *interp.Interpreter
	host       *runtime.MockHost
	classes    *inherit.Resolver
	repl       *readline.Instance
	lastSource string
}

// LoadFile runs a script file in the global scope.
func (cli *Intp) LoadFile(filename string) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		tracer().Errorf("Unable to open script file: %s", filename)
		pterm.Error.Println(err.Error())
		return err
	}
	tracer().Infof("Running %s", filename)
	_, err = cli.Eval(string(src))
	return err
}

// REPL starts interactive mode.
func (cli *Intp) REPL() {
	var block []string
	for {
		line, err := cli.repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if len(block) == 0 {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if strings.HasPrefix(trimmed, ":") {
				if quit := cli.Command(trimmed); quit {
					break
				}
				continue
			}
		}
		block = append(block, line)
		if needsMore(block) {
			cli.repl.SetPrompt("...> ")
			continue
		}
		cli.repl.SetPrompt("lsc> ")
		cli.Eval(strings.Join(block, "\n"))
		block = block[:0]
	}
	println("Good bye!")
}

// needsMore checks if the lines entered so far are an unfinished block.
// A block is started by a line ending in a colon, and finished by an empty
// line.
func needsMore(lines []string) bool {
	if len(lines) == 0 {
		return false
	}
	first := strings.TrimSpace(lines[0])
	if len(lines) == 1 {
		return strings.HasSuffix(first, ":")
	}
	return strings.TrimSpace(lines[len(lines)-1]) != ""
}

// Eval runs source code in the global scope and prints the value of the
// last expression, if any. Statements with syntax errors are reported and
// skipped.
func (cli *Intp) Eval(source string) (runtime.Value, error) {
	cli.lastSource = source
	v, err := cli.intp.Run(source, nil)
	var serr *interp.SourceError
	if errors.As(err, &serr) {
		for _, e := range serr.Syntax {
			pterm.Error.Println(e.Error())
		}
		if serr.Exec != nil {
			pterm.Error.Println(serr.Exec.Error())
		}
	} else if err != nil {
		pterm.Error.Println(err.Error())
		return nil, err
	}
	if v != nil {
		pterm.Info.Println(runtime.Repr(v))
	}
	return v, err
}

// Command executes a REPL command and reports whether to quit.
func (cli *Intp) Command(line string) bool {
	args := strings.Fields(line)
	cmd, rest := args[0], strings.TrimSpace(strings.TrimPrefix(line, args[0]))
	switch cmd {
	case ":q", ":quit":
		return true
	case ":ast":
		src := rest
		if src == "" {
			src = cli.lastSource
		}
		prog, err := parser.ParseString(src)
		if err != nil {
			pterm.Error.Println(err.Error())
		}
		if prog != nil {
			pterm.DefaultTree.WithRoot(astTree(prog)).Render()
		}
	case ":scope":
		pterm.DefaultTree.WithRoot(scopeTree(cli.rt.Globals())).Render()
	case ":exports":
		pterm.DefaultTree.WithRoot(exportsTree(cli.intp.Exports())).Render()
	case ":classes":
		pterm.Println(strings.Join(cli.classes.Known(), " "))
	case ":tick":
		dt := 1.0 / 60
		if rest != "" {
			f, err := strconv.ParseFloat(rest, 64)
			if err != nil {
				pterm.Error.Println(err.Error())
				return false
			}
			dt = f
		}
		cli.host.Advance(dt)
		cli.rt.UpdateTime(dt)
		n := cli.rt.UpdateTimers()
		pterm.Info.Println(fmt.Sprintf("t = %.3f, %d timer(s) fired", cli.rt.Time(), n))
	case ":load":
		if rest == "" {
			pterm.Error.Println("usage: :load <file>")
			return false
		}
		cli.LoadFile(rest)
	case ":help":
		pterm.Println(":ast [source]  :scope  :exports  :classes  :tick [dt]  :load file  :quit")
	default:
		pterm.Error.Println("unknown command " + cmd)
	}
	return false
}
