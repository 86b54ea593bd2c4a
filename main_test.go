package main

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/ColonelBlimp/cwtrainer/cmd"
)

// --help returns before the config initializer runs, so Execute neither
// exits nor touches the filesystem here.
func TestMain_HelpOutput(t *testing.T) {
	oldArgs, oldStdout := os.Args, os.Stdout
	defer func() {
		os.Args, os.Stdout = oldArgs, oldStdout
	}()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Args = []string{"cwtrainer", "--help"}
	os.Stdout = w

	cmd.Execute()

	w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read help output: %v", err)
	}

	help := string(out)
	if !strings.Contains(help, "cwtrainer") {
		t.Errorf("help output missing the command name: %s", help)
	}
	for _, sub := range []string{"send", "listen", "codes"} {
		if !strings.Contains(help, sub) {
			t.Errorf("help output missing subcommand %q", sub)
		}
	}
}
