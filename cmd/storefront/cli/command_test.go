// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string
	root := &Command{
		Name: "storefront",
		Subcommands: []*Command{
			{Name: "catalog", Run: func([]string) error { called = "catalog"; return nil }},
			{Name: "availability", Run: func([]string) error { called = "availability"; return nil }},
		},
	}

	if err := root.Execute([]string{"availability"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "availability" {
		t.Errorf("dispatched to %q, want %q", called, "availability")
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var configPath string
	var receivedArgs []string
	root := &Command{
		Name: "storefront",
		Subcommands: []*Command{{
			Name: "payment-status",
			Flags: func() *pflag.FlagSet {
				flagSet := pflag.NewFlagSet("payment-status", pflag.ContinueOnError)
				flagSet.StringVar(&configPath, "config", "", "config file")
				return flagSet
			},
			Run: func(args []string) error {
				receivedArgs = args
				return nil
			},
		}},
	}

	if err := root.Execute([]string{"payment-status", "--config", "/etc/storefront.yaml", "ORD-42"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if configPath != "/etc/storefront.yaml" {
		t.Errorf("config = %q", configPath)
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "ORD-42" {
		t.Errorf("args = %v, want [ORD-42]", receivedArgs)
	}
}

func TestCommand_Execute_UnknownCommandSuggests(t *testing.T) {
	root := &Command{
		Name:        "storefront",
		Subcommands: []*Command{{Name: "catalog", Run: func([]string) error { return nil }}},
	}
	err := root.Execute([]string{"catalgo"})
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "catalog"?`) {
		t.Errorf("error = %q, want a suggestion", err)
	}
}

func TestCommand_Execute_Alias(t *testing.T) {
	var called bool
	var help bytes.Buffer
	root := &Command{
		Name:   "storefront",
		Output: &help,
		Subcommands: []*Command{{
			Name:    "availability",
			Aliases: []string{"stock"},
			Summary: "Remaining tickets",
			Run:     func([]string) error { called = true; return nil },
		}},
	}
	if err := root.Execute([]string{"stock"}); err != nil || !called {
		t.Fatalf("alias dispatch: called=%v err=%v", called, err)
	}

	root.PrintHelp(&help)
	if !strings.Contains(help.String(), "(alias: stock)") {
		t.Errorf("help should list aliases:\n%s", help.String())
	}
}

func TestCommand_Execute_UsageError(t *testing.T) {
	root := &Command{
		Name:        "storefront",
		Subcommands: []*Command{{Name: "catalog", Run: func([]string) error { return nil }}},
	}
	err := root.Execute([]string{"refund"})
	var usageError *UsageError
	if !errors.As(err, &usageError) {
		t.Fatalf("err = %v, want *UsageError", err)
	}
	if usageError.Problem != `unknown command "refund"` {
		t.Errorf("Problem = %q", usageError.Problem)
	}
	if !strings.HasSuffix(err.Error(), "Run 'storefront --help' for usage.") {
		t.Errorf("error = %q, want help pointer", err)
	}
}

func TestCommand_Execute_UnknownFlagSuggests(t *testing.T) {
	command := &Command{
		Name: "shop",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("shop", pflag.ContinueOnError)
			flagSet.String("log-file", "", "log destination")
			return flagSet
		},
		Run: func([]string) error { return nil },
	}
	err := command.Execute([]string{"--log-fiel", "x"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --log-file?") {
		t.Errorf("error = %q, want a flag suggestion", err)
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	var help bytes.Buffer
	root := &Command{
		Name:        "storefront",
		Output:      &help,
		Subcommands: []*Command{{Name: "shop", Summary: "Buy tickets", Run: func([]string) error { return nil }}},
	}
	if err := root.Execute(nil); err == nil || err.Error() != "subcommand required" {
		t.Errorf("error = %v, want subcommand required", err)
	}
	if !strings.Contains(help.String(), "shop") || !strings.Contains(help.String(), "Buy tickets") {
		t.Errorf("help output missing command listing:\n%s", help.String())
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	var quantity int
	command := &Command{
		Name:        "reserve",
		Description: "Reserve tickets.",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("reserve", pflag.ContinueOnError)
			flagSet.IntVar(&quantity, "qty", 1, "number of tickets")
			return flagSet
		},
		Examples: []Example{{Description: "Two tickets", Command: "storefront reserve --qty 2"}},
	}
	var output bytes.Buffer
	command.PrintHelp(&output)

	for _, want := range []string{"Reserve tickets.", "Usage:\n  reserve [flags]", "--qty", "# Two tickets", "storefront reserve --qty 2"} {
		if !strings.Contains(output.String(), want) {
			t.Errorf("help output missing %q:\n%s", want, output.String())
		}
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "shop", 4},
		{"shop", "shop", 0},
		{"shpo", "shop", 2},
		{"catalog", "catalgo", 2},
		{"verify", "verfy", 1},
	}
	for _, test := range tests {
		if got := levenshtein(test.a, test.b); got != test.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	var output bytes.Buffer
	if err := WriteJSON(&output, map[string]int{"remaining": 3}, false); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if output.String() != "{\n  \"remaining\": 3\n}\n" {
		t.Errorf("output = %q", output.String())
	}

	output.Reset()
	if err := WriteJSON(&output, map[string]int{"remaining": 3}, true); err != nil {
		t.Fatalf("WriteJSON colored: %v", err)
	}
	if !strings.Contains(output.String(), "\x1b[") {
		t.Errorf("colored output has no escape sequences: %q", output.String())
	}
}

func TestNormalizeNilSlice(t *testing.T) {
	var records []string
	var output bytes.Buffer
	if err := WriteJSON(&output, normalizeNilSlice(records), false); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if strings.TrimSpace(output.String()) != "[]" {
		t.Errorf("nil slice encoded as %q, want []", output.String())
	}
}

func TestEmitJSON(t *testing.T) {
	var output bytes.Buffer
	params := JSONOutput{Writer: &output}
	if done, err := params.EmitJSON([]int{1}); done || err != nil {
		t.Fatalf("EmitJSON without --json = (%v, %v), want (false, nil)", done, err)
	}
	if output.Len() != 0 {
		t.Errorf("nothing should be written without --json, got %q", output.String())
	}

	params.OutputJSON = true
	var records []string
	if done, err := params.EmitJSON(records); !done || err != nil {
		t.Fatalf("EmitJSON = (%v, %v), want (true, nil)", done, err)
	}
	if strings.TrimSpace(output.String()) != "[]" {
		t.Errorf("output = %q, want []", output.String())
	}
}

func TestExit(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   int
		stderr string
	}{
		{"success", nil, 0, ""},
		{"failure", errors.New("upstream down"), 1, "error: upstream down\n"},
		{"requested code", &ExitError{Code: 2}, 2, ""},
		{"wrapped code", fmt.Errorf("payment-status: %w", &ExitError{Code: 2}), 2, ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var stderr bytes.Buffer
			if code := Exit(test.err, &stderr); code != test.code {
				t.Errorf("Exit = %d, want %d", code, test.code)
			}
			if stderr.String() != test.stderr {
				t.Errorf("stderr = %q, want %q", stderr.String(), test.stderr)
			}
		})
	}
}
