// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package passwd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleDatabase = `# comment
root:x:0:0:root:/root:/bin/bash

+nisuser::::::
broken:line
daemon:x:1:1:daemon:/usr/sbin:/usr/sbin/nologin
alice:x:1000:100:Alice,,,:/home/alice:/bin/zsh
noshell:x:1001:1001::/home/noshell:
badid:x:abc:1::/:/bin/sh
alice2:x:1000:100::/home/other:/bin/sh
`

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		uid  uint32
		want Identity
	}{
		{"root", 0, Identity{Name: "root", UID: 0, GID: 0, Home: "/root", Shell: "/bin/bash"}},
		{"first match wins", 1000, Identity{Name: "alice", UID: 1000, GID: 100, Home: "/home/alice", Shell: "/bin/zsh"}},
		{"empty shell kept verbatim", 1001, Identity{Name: "noshell", UID: 1001, GID: 1001, Home: "/home/noshell", Shell: ""}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Scan(strings.NewReader(sampleDatabase), test.uid)
			if err != nil {
				t.Fatalf("Scan(%d): %v", test.uid, err)
			}
			if got != test.want {
				t.Errorf("Scan(%d) = %+v, want %+v", test.uid, got, test.want)
			}
		})
	}
}

func TestScanUnknown(t *testing.T) {
	_, err := Scan(strings.NewReader(sampleDatabase), 4242)
	if !errors.Is(err, ErrUnknownUser) {
		t.Errorf("Scan(4242) error = %v, want ErrUnknownUser", err)
	}
}

func TestParseLine(t *testing.T) {
	rejected := []string{
		"",
		"# root:x:0:0:root:/root:/bin/bash",
		"+:::::",
		"-baduser:::::",
		"a:b:c",
		":x:5:5::/:/bin/sh",
		"toolong:x:1:1::/:/bin/sh:extra",
		"big:x:4294967296:1::/:/bin/sh",
	}
	for _, line := range rejected {
		if identity, ok := ParseLine(line); ok {
			t.Errorf("ParseLine(%q) = %+v, want rejection", line, identity)
		}
	}
}

func TestFileLookupUID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passwd")
	if err := os.WriteFile(path, []byte(sampleDatabase), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	identity, err := File{Path: path}.LookupUID(1)
	if err != nil {
		t.Fatalf("LookupUID(1): %v", err)
	}
	if identity.Name != "daemon" || identity.Shell != "/usr/sbin/nologin" {
		t.Errorf("LookupUID(1) = %+v", identity)
	}

	if _, err := (File{Path: filepath.Join(t.TempDir(), "missing")}).LookupUID(0); err == nil {
		t.Error("LookupUID on a missing file succeeded")
	}
}

func TestSystemPrefersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passwd")
	if err := os.WriteFile(path, []byte(sampleDatabase), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	identity, err := System{Path: path}.LookupUID(1000)
	if err != nil {
		t.Fatalf("LookupUID(1000): %v", err)
	}
	if identity.Shell != "/bin/zsh" {
		t.Errorf("Shell = %q, want the file's /bin/zsh", identity.Shell)
	}
}

func TestFixed(t *testing.T) {
	alice := Identity{Name: "alice", UID: 1000, GID: 100, Home: "/home/alice", Shell: "/bin/zsh"}
	resolver := Fixed{1000: alice}

	got, err := resolver.LookupUID(1000)
	if err != nil {
		t.Fatalf("LookupUID(1000): %v", err)
	}
	if got != alice {
		t.Errorf("LookupUID(1000) = %+v, want %+v", got, alice)
	}
	if _, err := resolver.LookupUID(1001); !errors.Is(err, ErrUnknownUser) {
		t.Errorf("LookupUID(1001) = %v, want ErrUnknownUser", err)
	}
}
