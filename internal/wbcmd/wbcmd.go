// Package wbcmd implements the werbolg CLI's command dispatch, grounded
// on the teacher's internal/maincmd package: a flag-tagged Cmd struct
// parsed by mainer.Parser, a Validate step that resolves the requested
// subcommand by reflection, and a Main entry point driving a
// mainer.Stdio.
package wbcmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"
)

const binName = "werbolg"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command> [<path>...]
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command> <path>
       %[1]s -h|--help
       %[1]s -v|--version

Compiler-less command-line tool for the werbolg embeddable VM substrate:
it operates directly on the pseudo-assembly textual form, since werbolg
itself has no surface-syntax frontend.

The <command> can be one of:
       assemble                  Parse a pseudo-assembly file and print
                                  it back out (round-trip check).
       disasm                    Parse a pseudo-assembly file and print
                                  it back out with resolved jump targets
                                  annotated.
       run                       Parse a pseudo-assembly file, call its
                                  "main" function with no arguments, and
                                  print the result.
       steps                     Like run, but prints the machine's
                                  (ip, op) pair before every instruction.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --entry <name>            Function to call for run/steps
                                  (default "main").

More information on the werbolg project:
       https://github.com/vincenthz/werbolg
`, binName)
)

// Cmd is the CLI's flag-tagged command struct, parsed by mainer.Parser.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Entry string `flag:"entry"`

	args  []string
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string)      { c.args = args }
func (c *Cmd) SetFlags(_ map[string]bool) {}

// Validate resolves the requested subcommand and checks its arguments,
// the same shape as the teacher's Cmd.Validate.
func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if c.Entry == "" {
		c.Entry = "main"
	}
	if len(c.args) == 0 {
		return errors.New("no command specified")
	}

	cmdName := c.args[0]
	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	if len(c.args[1:]) != 1 {
		return fmt.Errorf("%s: exactly one assembly file must be provided", cmdName)
	}
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: false, EnvPrefix: binName + "_"}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		return mainer.Failure
	}
	return mainer.Success
}

// buildCmds mirrors the teacher's reflection-based subcommand table:
// every exported method of *Cmd taking (context.Context, mainer.Stdio,
// []string) and returning error becomes a subcommand named after its
// lowercased method name.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type
		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
