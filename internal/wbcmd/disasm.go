package wbcmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/vincenthz/werbolg/lang/asm"
	"github.com/vincenthz/werbolg/lang/examplenif"
)

// Disasm parses args[0] and prints it back out with every Jump/CondJump
// annotated with the absolute address it resolves to.
func (c *Cmd) Disasm(_ context.Context, stdio mainer.Stdio, args []string) error {
	unit, err := loadUnit(args[0])
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	fmt.Fprint(stdio.Stdout, asm.Disassemble(unit, examplenif.Codec))
	return nil
}
