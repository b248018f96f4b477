package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	root := newRootCmd()

	want := map[string]bool{
		"version":   false,
		"browse":    false,
		"list":      false,
		"search":    false,
		"show":      false,
		"bot":       false,
		"mcp-serve": false,
		"config":    false,
	}

	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}

	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRootCommand_ConfigFlag(t *testing.T) {
	root := newRootCmd()
	flag := root.PersistentFlags().Lookup("config")
	if flag == nil {
		t.Fatal("--config flag not registered")
	}
	if !strings.HasSuffix(flag.DefValue, "config.yaml") {
		t.Errorf("--config default = %q, want a config.yaml path", flag.DefValue)
	}
	if flag.Shorthand != "c" {
		t.Errorf("--config shorthand = %q, want %q", flag.Shorthand, "c")
	}
}

func TestRootCommand_MCPServeHidden(t *testing.T) {
	for _, cmd := range newRootCmd().Commands() {
		if cmd.Name() == "mcp-serve" && !cmd.Hidden {
			t.Error("mcp-serve should be hidden")
		}
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := newVersionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.Run(cmd, nil)
	if got := out.String(); got != "reelview v"+version+"\n" {
		t.Errorf("version output = %q", got)
	}
}

func TestCommandArgs(t *testing.T) {
	list := newListCmd()
	if err := list.Args(list, []string{}); err == nil {
		t.Error("list should require a kind")
	}
	if err := list.Args(list, []string{"popular", "random"}); err == nil {
		t.Error("list should accept exactly one kind")
	}

	search := newSearchCmd()
	if err := search.Args(search, []string{}); err == nil {
		t.Error("search should require a query")
	}
	if err := search.Args(search, []string{"the", "matrix"}); err != nil {
		t.Errorf("search should accept several words: %v", err)
	}

	show := newShowCmd()
	if err := show.Args(show, []string{"603"}); err != nil {
		t.Errorf("show should accept an id: %v", err)
	}
}

func TestConfigCommand_HasValidateSubcommand(t *testing.T) {
	cmd := newConfigCmd()
	found := false
	for _, sub := range cmd.Commands() {
		if sub.Name() == "validate" {
			found = true
			break
		}
	}
	if !found {
		t.Error("config command missing 'validate' subcommand")
	}
}
