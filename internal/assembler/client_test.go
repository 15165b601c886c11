package assembler

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestNewCLIWithBinary(t *testing.T) {
	cli := NewCLI(WithBinary("/opt/tttool"))
	if cli.binary != "/opt/tttool" {
		t.Fatalf("expected binary override to be applied, got %q", cli.binary)
	}
}

func TestAssembleRequiresScriptPath(t *testing.T) {
	cli := NewCLI()
	if _, err := cli.Assemble(context.Background(), "", "/tmp"); err == nil {
		t.Fatal("expected error when script path is empty")
	}
}

func TestAssembleRequiresOutputDir(t *testing.T) {
	cli := NewCLI()
	if _, err := cli.Assemble(context.Background(), "/tmp/album-920.script", ""); err == nil {
		t.Fatal("expected error when output directory is empty")
	}
}

func TestAssembleBuildsExpectedCommand(t *testing.T) {
	var capturedName string
	var capturedArgs []string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		capturedName = name
		capturedArgs = append([]string(nil), args...)
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1")
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})

	cli := NewCLI(WithBinary("asmbin"))
	scriptPath := filepath.Join(t.TempDir(), "album-920.script")

	outputPath, err := cli.Assemble(context.Background(), scriptPath, "/out")
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	if capturedName != "asmbin" {
		t.Fatalf("expected configured binary to run, got %q", capturedName)
	}
	wantOut := filepath.Join("/out", "album-920.gme")
	if outputPath != wantOut {
		t.Fatalf("expected output path %q, got %q", wantOut, outputPath)
	}
	if len(capturedArgs) != 3 || capturedArgs[0] != "assemble" || capturedArgs[1] != scriptPath || capturedArgs[2] != wantOut {
		t.Fatalf("unexpected assembler arguments: %v", capturedArgs)
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	os.Exit(0)
}
