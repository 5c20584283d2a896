// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package launch

import (
	"errors"
	"os"
	"os/exec"
	"reflect"
	"strings"
	"syscall"
	"testing"

	"github.com/bureau-foundation/privexec/lib/argv"
	"github.com/bureau-foundation/privexec/lib/process"
)

type recordingExecer struct {
	calls int
	path  string
	argv  []string
	envv  []string
	err   error
}

func (e *recordingExecer) Exec(path string, argv []string, envv []string) error {
	e.calls++
	e.path = path
	e.argv = argv
	e.envv = envv
	return e.err
}

func TestExecuteNoCommand(t *testing.T) {
	execer := &recordingExecer{}
	launcher := &Launcher{Execer: execer}

	err := launcher.Execute("", "ignored args")
	if process.ExitCode(err) != 0 {
		t.Errorf("Execute(\"\") exit code = %d, want 0", process.ExitCode(err))
	}
	var exitErr *process.ExitError
	if !errors.As(err, &exitErr) {
		t.Errorf("Execute(\"\") = %v, want *process.ExitError", err)
	}
	if execer.calls != 0 {
		t.Errorf("Exec called %d times for an empty command", execer.calls)
	}
}

func TestExecutePassesVector(t *testing.T) {
	execer := &recordingExecer{err: syscall.ENOENT}
	launcher := &Launcher{
		Execer:  execer,
		Environ: func() []string { return []string{"PATH=" + DefaultPath} },
	}

	err := launcher.Execute("/usr/bin/printf", `'%s %s\n' "it's" done`)
	if !process.IsFatal(err) {
		t.Fatalf("Execute = %v, want a fatal error", err)
	}
	if !errors.Is(err, syscall.ENOENT) {
		t.Errorf("Execute error %v does not wrap ENOENT", err)
	}
	if !strings.Contains(err.Error(), "execv(/usr/bin/printf)") {
		t.Errorf("error %q does not name the failing exec", err)
	}

	if execer.path != "/usr/bin/printf" {
		t.Errorf("exec path = %q", execer.path)
	}
	wantArgv := []string{"printf", `%s %s\n`, "it's", "done"}
	if !reflect.DeepEqual(execer.argv, wantArgv) {
		t.Errorf("exec argv = %q, want %q", execer.argv, wantArgv)
	}
	if !reflect.DeepEqual(execer.envv, []string{"PATH=" + DefaultPath}) {
		t.Errorf("exec envv = %q", execer.envv)
	}
}

func TestExecuteNeverReturnsNil(t *testing.T) {
	// An Execer that claims success cannot be trusted; a real execve
	// never comes back.
	launcher := &Launcher{Execer: &recordingExecer{}}
	err := launcher.Execute("/bin/true", "")
	if err == nil || !process.IsFatal(err) {
		t.Fatalf("Execute = %v, want a fatal error", err)
	}
	if !errors.Is(err, errExecReturned) {
		t.Errorf("error %v does not wrap errExecReturned", err)
	}
}

func TestExecuteTokenizerFailure(t *testing.T) {
	execer := &recordingExecer{}
	launcher := &Launcher{Execer: execer}
	err := launcher.Execute("/bin/echo", "a\x00b")
	if !process.IsFatal(err) {
		t.Fatalf("Execute = %v, want a fatal error", err)
	}
	if execer.calls != 0 {
		t.Error("Exec was called after a tokenizer failure")
	}
}

func TestPrepareDropsExcess(t *testing.T) {
	launcher := &Launcher{Tokenizer: argv.Tokenizer{Slots: 3}}
	vector, err := launcher.Prepare("/bin/echo", "a b c d")
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if got := vector.Args(); !reflect.DeepEqual(got, []string{"echo", "a"}) {
		t.Errorf("Args() = %q", got)
	}
	if !vector.Dropped() {
		t.Error("Dropped() = false")
	}
}

// The helper process tests exec for real. The test binary re-runs
// itself with PRIVEXEC_HELPER set; the helper calls Run, which must
// either replace the image or exit.
func TestHelperProcess(t *testing.T) {
	mode := os.Getenv("PRIVEXEC_HELPER")
	if mode == "" {
		return
	}
	switch mode {
	case "no-command":
		Run("", "")
	case "exec-shell":
		Run("/bin/sh", `-c 'exit 7'`)
	case "exec-missing":
		Run("/nonexistent/privexec-test", "a b")
	}
	os.Exit(99)
}

func runHelper(t *testing.T, mode string) (int, string) {
	t.Helper()
	command := exec.Command(os.Args[0], "-test.run=^TestHelperProcess$")
	command.Env = append(os.Environ(), "PRIVEXEC_HELPER="+mode)
	output, err := command.CombinedOutput()
	if err == nil {
		return 0, string(output)
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("running helper %s: %v", mode, err)
	}
	return exitErr.ExitCode(), string(output)
}

func TestRun(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
	tests := []struct {
		mode       string
		wantCode   int
		wantOutput string
	}{
		{"no-command", 0, ""},
		{"exec-shell", 7, ""},
		{"exec-missing", 1, "error: execv(/nonexistent/privexec-test)"},
	}
	for _, test := range tests {
		t.Run(test.mode, func(t *testing.T) {
			code, output := runHelper(t, test.mode)
			if code != test.wantCode {
				t.Errorf("exit code = %d, want %d (output %q)", code, test.wantCode, output)
			}
			if test.wantOutput != "" && !strings.Contains(output, test.wantOutput) {
				t.Errorf("output %q does not contain %q", output, test.wantOutput)
			}
		})
	}
}
