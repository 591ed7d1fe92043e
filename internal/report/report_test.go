package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kidoz/zabbix-template-lint-go/internal/validator"
)

func failingResult() *validator.Result {
	res := &validator.Result{File: "zabbix_bad.xml"}
	res.Infof("XML parsing successful")
	res.Errorf("duplicate item key: 'a.b'")
	res.Warnf("missing UUID (recommended for Zabbix 7.0+)")
	return res
}

func passingResult() *validator.Result {
	res := &validator.Result{File: "zabbix_ok.xml"}
	res.Infof("XML parsing successful")
	res.Infof("root element is 'zabbix_export'")
	return res
}

func TestConsoleResults_Failing(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false)

	c.Results(failingResult())
	out := buf.String()

	if !strings.Contains(out, "ERRORS (1):") {
		t.Errorf("missing errors section:\n%s", out)
	}
	if !strings.Contains(out, "duplicate item key: 'a.b'") {
		t.Errorf("missing error message:\n%s", out)
	}
	if !strings.Contains(out, "WARNINGS (1):") {
		t.Errorf("missing warnings section:\n%s", out)
	}
	if !strings.Contains(out, "Validation FAILED with 1 error(s)") {
		t.Errorf("missing FAIL banner:\n%s", out)
	}
	// Info is suppressed when errors exist, to keep failing output focused.
	if strings.Contains(out, "XML parsing successful") {
		t.Errorf("info should be suppressed on failure:\n%s", out)
	}
}

func TestConsoleResults_Passing(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false)

	c.Results(passingResult())
	out := buf.String()

	if !strings.Contains(out, "Validation PASSED - no issues found!") {
		t.Errorf("missing PASS banner:\n%s", out)
	}
	if !strings.Contains(out, "XML parsing successful") {
		t.Errorf("info should be shown on clean runs:\n%s", out)
	}
}

func TestConsoleResults_PassingWithWarnings(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false)

	res := passingResult()
	res.Warnf("no template groups defined")
	c.Results(res)
	out := buf.String()

	if !strings.Contains(out, "Validation PASSED with 1 warning(s)") {
		t.Errorf("missing PASS-with-warnings banner:\n%s", out)
	}
}

func TestConsole_NoANSIWithoutColor(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false)

	c.Banner("zabbix_bad.xml")
	c.Sectionf("Template %d:", 1)
	c.Stepf(validator.StatusOK, "Name: %s", "T")
	c.Stepf(validator.StatusNote, "Items: 0")
	c.Results(failingResult())

	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("output should carry no ANSI escapes:\n%q", buf.String())
	}
}

func TestConsole_ColorEscapes(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, true)

	c.Results(failingResult())
	if !strings.Contains(buf.String(), ansiRed) {
		t.Error("expected red escapes in colored failure output")
	}
}

func TestConsole_YAMLListing(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false)

	c.YAMLListing(nil)
	if buf.Len() != 0 {
		t.Errorf("empty listing should print nothing, got %q", buf.String())
	}

	c.YAMLListing([]string{"a/zabbix.yaml", "b/zabbix.yml"})
	out := buf.String()
	if !strings.Contains(out, "validated by yamllint") {
		t.Errorf("missing yamllint note:\n%s", out)
	}
	if !strings.Contains(out, "a/zabbix.yaml") || !strings.Contains(out, "b/zabbix.yml") {
		t.Errorf("missing listed files:\n%s", out)
	}
}

func TestEncode_JSON(t *testing.T) {
	var buf bytes.Buffer
	batch := BatchReport{
		Files:  []FileReport{NewFileReport(failingResult())},
		Passed: false,
	}

	if err := Encode(&buf, "json", batch); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.String()

	for _, want := range []string{`"file": "zabbix_bad.xml"`, `"passed": false`, `"duplicate item key: 'a.b'"`} {
		if !strings.Contains(out, want) {
			t.Errorf("json output missing %s:\n%s", want, out)
		}
	}
}

func TestEncode_YAML(t *testing.T) {
	var buf bytes.Buffer
	batch := BatchReport{
		Files:      []FileReport{NewFileReport(passingResult())},
		YAMLListed: []string{"zabbix.yaml"},
		Passed:     true,
	}

	if err := Encode(&buf, "yaml", batch); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "file: zabbix_ok.xml") {
		t.Errorf("yaml output missing file entry:\n%s", out)
	}
	if !strings.Contains(out, "passed: true") {
		t.Errorf("yaml output missing verdict:\n%s", out)
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	if err := Encode(&bytes.Buffer{}, "csv", BatchReport{}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestNewFileReport(t *testing.T) {
	fr := NewFileReport(failingResult())

	if fr.File != "zabbix_bad.xml" {
		t.Errorf("File = %q", fr.File)
	}
	if fr.Passed {
		t.Error("Passed should be false")
	}
	if len(fr.Errors) != 1 || len(fr.Warnings) != 1 || len(fr.Info) != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1", len(fr.Errors), len(fr.Warnings), len(fr.Info))
	}
}
