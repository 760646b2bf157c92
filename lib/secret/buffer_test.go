// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewRejectsNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := New(size); err == nil {
			t.Errorf("New(%d) should fail", size)
		}
	}
}

func TestNewFromBytesZerosSource(t *testing.T) {
	source := []byte("bearer-token")
	buffer, err := NewFromBytes(source)
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	defer buffer.Close()

	if buffer.String() != "bearer-token" {
		t.Errorf("String() = %q", buffer.String())
	}
	if buffer.Len() != len("bearer-token") {
		t.Errorf("Len() = %d", buffer.Len())
	}
	for index, value := range source {
		if value != 0 {
			t.Fatalf("source[%d] = %d, want zeroed", index, value)
		}
	}
}

func TestNewFromBytesEmpty(t *testing.T) {
	if _, err := NewFromBytes(nil); err == nil {
		t.Error("empty source should fail")
	}
}

func TestCloseIsIdempotentAndBlocksReads(t *testing.T) {
	buffer, err := NewFromBytes([]byte("x"))
	if err != nil {
		t.Fatalf("NewFromBytes: %v", err)
	}
	if err := buffer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := buffer.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("String after Close should panic")
		}
	}()
	_ = buffer.String()
}

func TestReadFile(t *testing.T) {
	directory := t.TempDir()
	tests := []struct {
		name    string
		content string
		want    string
		wantErr bool
	}{
		{name: "plain", content: "token-1", want: "token-1"},
		{name: "trailing newline", content: "token-1\n", want: "token-1"},
		{name: "surrounding space", content: "  token-1  \n", want: "token-1"},
		{name: "whitespace only", content: " \n\t", wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := filepath.Join(directory, test.name)
			if err := os.WriteFile(path, []byte(test.content), 0o600); err != nil {
				t.Fatalf("writing token file: %v", err)
			}
			buffer, err := ReadFile(path)
			if test.wantErr {
				if err == nil {
					buffer.Close()
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			defer buffer.Close()
			if got := buffer.String(); got != test.want {
				t.Errorf("ReadFile = %q, want %q", got, test.want)
			}
		})
	}

	if _, err := ReadFile(filepath.Join(directory, "missing")); err == nil {
		t.Error("missing file should fail")
	}
}
