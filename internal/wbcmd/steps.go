package wbcmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
)

// Steps is Run, but traces every instruction executed: ip and opcode
// are printed before each Step call.
func (c *Cmd) Steps(_ context.Context, stdio mainer.Stdio, args []string) error {
	unit, err := loadUnit(args[0])
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	entry, err := findEntry(unit, c.Entry)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	m := newMachine(unit)
	if err := m.Call(entry, nil); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}

	for {
		fmt.Fprintf(stdio.Stdout, "@%d %s\n", m.IP(), m.CurrentOp())
		result, done, err := m.Step()
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}
		if done {
			fmt.Fprintln(stdio.Stdout, "=>", formatValue(result))
			return nil
		}
	}
}
