package asm_test

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vincenthz/werbolg/internal/filetest"
	"github.com/vincenthz/werbolg/lang/asm"
	"github.com/vincenthz/werbolg/lang/examplenif"
)

var testUpdateAsmTests = flag.Bool("test.update-asm-tests", false, "If set, replace expected asm test results with actual results.")

// TestDisassemble exercises testable property 7 (jump arithmetic) by
// checking that every fixture's disassembly -- including its resolved
// @<addr> jump annotations -- matches a checked-in golden file. The
// current fixtures contain no lambdas.
func TestDisassemble(t *testing.T) {
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".asm") {
		t.Run(fi.Name(), func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join(srcDir, fi.Name()))
			require.NoError(t, err)

			unit, err := asm.Parse(src, examplenif.Codec)
			require.NoError(t, err)

			out := asm.Disassemble(unit, examplenif.Codec)
			filetest.DiffOutput(t, fi, out, resultDir, testUpdateAsmTests)
		})
	}
}

// TestParseEncodeRoundTrip checks that re-encoding a parsed unit and
// re-parsing that output yields byte-identical bytecode, independent of
// any golden file.
func TestParseEncodeRoundTrip(t *testing.T) {
	srcDir := filepath.Join("testdata", "in")
	for _, fi := range filetest.SourceFiles(t, srcDir, ".asm") {
		t.Run(fi.Name(), func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join(srcDir, fi.Name()))
			require.NoError(t, err)

			unit, err := asm.Parse(src, examplenif.Codec)
			require.NoError(t, err)

			encoded := asm.Encode(unit, examplenif.Codec)
			reparsed, err := asm.Parse([]byte(encoded), examplenif.Codec)
			require.NoError(t, err)

			require.Equal(t, unit.Code.Slice(), reparsed.Code.Slice())
			require.Equal(t, unit.Lits.Slice(), reparsed.Lits.Slice())
		})
	}
}
