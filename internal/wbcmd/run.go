package wbcmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"
)

// Run parses args[0], calls its entry function (--entry, default
// "main") with no arguments, and prints the result.
func (c *Cmd) Run(_ context.Context, stdio mainer.Stdio, args []string) error {
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
	result, err := m.Initialize(entry, nil)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	fmt.Fprintln(stdio.Stdout, formatValue(result))
	return nil
}
