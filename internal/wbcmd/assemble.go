package wbcmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/vincenthz/werbolg/lang/asm"
	"github.com/vincenthz/werbolg/lang/examplenif"
)

// Assemble parses args[0] as pseudo-assembly and prints it back out,
// exercising the parse/encode round trip.
func (c *Cmd) Assemble(_ context.Context, stdio mainer.Stdio, args []string) error {
	unit, err := loadUnit(args[0])
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return err
	}
	fmt.Fprint(stdio.Stdout, asm.Encode(unit, examplenif.Codec))
	return nil
}
