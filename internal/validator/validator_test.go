package validator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kidoz/zabbix-template-lint-go/internal/config"
	"github.com/kidoz/zabbix-template-lint-go/internal/export"
)

func newTestValidator() *Validator {
	return New(config.DefaultConfig(), nil)
}

func mustParse(t *testing.T, src string) *export.Document {
	t.Helper()
	doc, err := export.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func containsMessage(msgs []string, substr string) bool {
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func TestValidate_WrongRootTag(t *testing.T) {
	doc := mustParse(t, `<host_export><version>7.0</version><templates/></host_export>`)

	passed, res := newTestValidator().Validate(doc)

	// One root error, and the rest of the checks still ran (no abort).
	errors := res.Errors()
	rootErrors := 0
	for _, msg := range errors {
		if strings.Contains(msg, "zabbix_export") {
			rootErrors++
		}
	}
	if rootErrors != 1 {
		t.Errorf("root errors = %d, want 1 (%v)", rootErrors, errors)
	}
	if !containsMessage(errors, "found 'host_export'") {
		t.Errorf("root error should name the actual tag: %v", errors)
	}
	if passed {
		t.Error("verdict should be FAIL")
	}
	if !containsMessage(res.Warnings(), "no templates found") {
		t.Errorf("templates check should still have run: %v", res.Warnings())
	}
}

func TestValidate_Version(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		wantError   string
		wantWarning string
	}{
		{
			name:      "missing version",
			src:       `<zabbix_export><templates/></zabbix_export>`,
			wantError: "missing <version> element",
		},
		{
			name:        "old version",
			src:         `<zabbix_export><version>6.0</version><templates/></zabbix_export>`,
			wantWarning: "older than 7.0",
		},
		{
			name:        "unparseable version is a warning only",
			src:         `<zabbix_export><version>stable</version><templates/></zabbix_export>`,
			wantWarning: "could not parse version: stable",
		},
		{
			name: "current version",
			src:  `<zabbix_export><version>7.0</version><templates/></zabbix_export>`,
		},
		{
			name: "newer version",
			src:  `<zabbix_export><version>7.2</version><templates/></zabbix_export>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, res := newTestValidator().Validate(mustParse(t, tt.src))

			if tt.wantError != "" && !containsMessage(res.Errors(), tt.wantError) {
				t.Errorf("errors = %v, want one containing %q", res.Errors(), tt.wantError)
			}
			if tt.wantError == "" && containsMessage(res.Errors(), "version") {
				t.Errorf("unexpected version error: %v", res.Errors())
			}
			if tt.wantWarning != "" && !containsMessage(res.Warnings(), tt.wantWarning) {
				t.Errorf("warnings = %v, want one containing %q", res.Warnings(), tt.wantWarning)
			}
			if tt.wantWarning == "" && containsMessage(res.Warnings(), "version") {
				t.Errorf("unexpected version warning: %v", res.Warnings())
			}
		})
	}
}

func TestValidate_MissingTemplatesElement(t *testing.T) {
	doc := mustParse(t, `<zabbix_export><version>7.0</version></zabbix_export>`)

	passed, res := newTestValidator().Validate(doc)

	if passed {
		t.Error("verdict should be FAIL")
	}
	if len(res.Errors()) != 1 {
		t.Errorf("errors = %v, want exactly one", res.Errors())
	}
	if !containsMessage(res.Errors(), "missing <templates> element") {
		t.Errorf("errors = %v", res.Errors())
	}
}

func TestValidate_TemplateChecks(t *testing.T) {
	tests := []struct {
		name         string
		template     string
		wantErrors   []string
		wantWarnings []string
	}{
		{
			name:       "missing name",
			template:   `<template><uuid>550e8400-e29b-41d4-a716-446655440000</uuid><groups><group><name>G</name></group></groups></template>`,
			wantErrors: []string{"missing template name"},
		},
		{
			name:         "missing uuid is a warning",
			template:     `<template><name>T</name><groups><group><name>G</name></group></groups></template>`,
			wantWarnings: []string{"missing UUID"},
		},
		{
			name:       "invalid uuid",
			template:   `<template><name>T</name><uuid>550e8400-e29b-41d4-a716</uuid><groups><group><name>G</name></group></groups></template>`,
			wantErrors: []string{"invalid UUID format: 550e8400-e29b-41d4-a716"},
		},
		{
			name:         "no groups element",
			template:     `<template><name>T</name><uuid>550e8400-e29b-41d4-a716-446655440000</uuid></template>`,
			wantWarnings: []string{"no template groups defined"},
		},
		{
			name:         "empty groups element",
			template:     `<template><name>T</name><uuid>550e8400-e29b-41d4-a716-446655440000</uuid><groups></groups></template>`,
			wantWarnings: []string{"no template groups defined"},
		},
		{
			name:       "group without name",
			template:   `<template><name>T</name><uuid>550e8400-e29b-41d4-a716-446655440000</uuid><groups><group></group></groups></template>`,
			wantErrors: []string{"group missing name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := `<zabbix_export><version>7.0</version><templates>` + tt.template + `</templates></zabbix_export>`
			_, res := newTestValidator().Validate(mustParse(t, src))

			for _, want := range tt.wantErrors {
				if !containsMessage(res.Errors(), want) {
					t.Errorf("errors = %v, want one containing %q", res.Errors(), want)
				}
			}
			for _, want := range tt.wantWarnings {
				if !containsMessage(res.Warnings(), want) {
					t.Errorf("warnings = %v, want one containing %q", res.Warnings(), want)
				}
			}
		})
	}
}

func TestValidate_MinimalDocumentPasses(t *testing.T) {
	// Minimal export: old version, one template with no uuid, groups or
	// sub-collections. Warnings only — the verdict is PASS.
	src := `<zabbix_export><version>6.0</version><templates><template><name>T</name></template></templates></zabbix_export>`

	passed, res := newTestValidator().Validate(mustParse(t, src))

	if !passed {
		t.Errorf("verdict should be PASS, errors = %v", res.Errors())
	}
	if len(res.Errors()) != 0 {
		t.Errorf("errors = %v, want none", res.Errors())
	}

	warnings := res.Warnings()
	if len(warnings) != 3 {
		t.Errorf("warnings = %v, want exactly 3 (version, UUID, groups)", warnings)
	}
	for _, want := range []string{"older than 7.0", "missing UUID", "no template groups"} {
		if !containsMessage(warnings, want) {
			t.Errorf("warnings = %v, want one containing %q", warnings, want)
		}
	}
}

func TestValidate_UUIDFormats(t *testing.T) {
	tests := []struct {
		uuid  string
		valid bool
	}{
		{"550e8400-e29b-41d4-a716-446655440000", true},
		{"550e8400e29b41d4a716446655440000", true},
		{"550E8400-E29B-41D4-A716-446655440000", true},
		{"550e8400-e29b-41d4-a716", false},
		{"zzze8400-e29b-41d4-a716-446655440000", false},
		{"urn:uuid:550e8400-e29b-41d4-a716-446655440000", false},
		{"{550e8400-e29b-41d4-a716-446655440000}", false},
	}

	for _, tt := range tests {
		t.Run(tt.uuid, func(t *testing.T) {
			if got := validUUID(tt.uuid); got != tt.valid {
				t.Errorf("validUUID(%q) = %v, want %v", tt.uuid, got, tt.valid)
			}
		})
	}
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "zabbix_ok.xml")
		src := `<zabbix_export><version>7.0</version><templates><template><name>T</name><uuid>550e8400e29b41d4a716446655440000</uuid><groups><group><name>G</name></group></groups></template></templates></zabbix_export>`
		if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}

		res := newTestValidator().ValidateFile(context.Background(), path)
		if !res.Passed() {
			t.Errorf("errors = %v", res.Errors())
		}
		if !containsMessage(res.Info(), "XML parsing successful") {
			t.Errorf("info = %v", res.Info())
		}
	})

	t.Run("malformed file short-circuits", func(t *testing.T) {
		path := filepath.Join(dir, "zabbix_broken.xml")
		if err := os.WriteFile(path, []byte(`<zabbix_export><version>`), 0o644); err != nil {
			t.Fatal(err)
		}

		res := newTestValidator().ValidateFile(context.Background(), path)
		if res.Passed() {
			t.Error("verdict should be FAIL")
		}
		if len(res.Findings) != 1 {
			t.Errorf("findings = %v, want exactly the parse error", res.Findings)
		}
		if !containsMessage(res.Errors(), "XML parsing error") {
			t.Errorf("errors = %v", res.Errors())
		}
	})

	t.Run("unreadable file", func(t *testing.T) {
		res := newTestValidator().ValidateFile(context.Background(), filepath.Join(dir, "absent.xml"))
		if res.Passed() {
			t.Error("verdict should be FAIL")
		}
		if !containsMessage(res.Errors(), "error reading file") {
			t.Errorf("errors = %v", res.Errors())
		}
	})
}
