package cli

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/baton/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, exit, err := Parse([]string{"hosts.hcl"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)

	want := &app.Config{
		InventoryPath: "hosts.hcl",
		LogFormat:     "text",
		LogLevel:      "info",
		Parallel:      1,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAllFlags(t *testing.T) {
	cfg, _, err := Parse([]string{
		"-i", "inv/",
		"-host", "web1,web2",
		"-host", "db1",
		"-log-format", "JSON",
		"-log-level", "debug",
		"-parallel", "4",
		"-metrics-port", "9100",
		"-templates", "tpl",
		"-list",
	}, &bytes.Buffer{})
	require.NoError(t, err)

	want := &app.Config{
		InventoryPath: "inv/",
		Hosts:         []string{"web1", "web2", "db1"},
		TemplateRoot:  "tpl",
		LogFormat:     "json",
		LogLevel:      "debug",
		MetricsPort:   9100,
		Parallel:      4,
		List:          true,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInventoryFlagWins(t *testing.T) {
	cfg, _, err := Parse([]string{"-inventory", "a.hcl", "-i", "b.hcl"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "a.hcl", cfg.InventoryPath)
}

func TestParseHelpAndMissingPath(t *testing.T) {
	out := &bytes.Buffer{}
	cfg, exit, err := Parse([]string{"-h"}, out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Nil(t, cfg)

	out.Reset()
	_, exit, err = Parse(nil, out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParseUsageErrors(t *testing.T) {
	cases := map[string][]string{
		"unknown flag":   {"-nope"},
		"log format":     {"-log-format", "xml", "h.hcl"},
		"log level":      {"-log-level", "loud", "h.hcl"},
		"parallel":       {"-parallel", "0", "h.hcl"},
		"metrics port":   {"-metrics-port", "99999", "h.hcl"},
		"extra argument": {"a.hcl", "b.hcl"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := Parse(args, &bytes.Buffer{})
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}
