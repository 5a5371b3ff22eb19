// ABOUTME: Tests for export command
// ABOUTME: Verifies command structure and format flags

package commands

import (
	"strings"
	"testing"
)

func TestNewExportCmd(t *testing.T) {
	cmd := NewExportCmd()

	if cmd.Use != "export" {
		t.Errorf("Use = %q, want %q", cmd.Use, "export")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if cmd.Long == "" {
		t.Error("Long description should not be empty")
	}
}

func TestExportCmd_Flags(t *testing.T) {
	cmd := NewExportCmd()

	tests := []struct {
		flagName string
		defValue string
	}{
		{"agent", "default"},
		{"company", "default"},
		{"output", ""},
		{"export-format", "yaml"},
		{"embeddings", ""},
	}

	for _, tt := range tests {
		t.Run(tt.flagName, func(t *testing.T) {
			flag := cmd.Flags().Lookup(tt.flagName)
			if flag == nil {
				t.Fatalf("--%s flag not found", tt.flagName)
			}
			if flag.DefValue != tt.defValue {
				t.Errorf("--%s default = %q, want %q", tt.flagName, flag.DefValue, tt.defValue)
			}
		})
	}
}

func TestExportCmd_Formats(t *testing.T) {
	cmd := NewExportCmd()

	for _, format := range []string{"yaml", "json", "markdown"} {
		if !strings.Contains(cmd.Long, format) {
			t.Errorf("Long description should mention the %s format", format)
		}
	}
}
