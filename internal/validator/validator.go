// Package validator checks Zabbix template export documents against
// structural and convention rules: required elements, key/macro/expression
// uniqueness, value type and priority enumerations, UUID format and
// delimiter balance in trigger expressions.
package validator

import (
	"context"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/kidoz/zabbix-template-lint-go/internal/config"
	"github.com/kidoz/zabbix-template-lint-go/internal/export"
	"github.com/kidoz/zabbix-template-lint-go/internal/telemetry"
)

// Validator runs one validation pass over a parsed document. It carries no
// state between files; uniqueness tracking lives in per-collection sets
// created during traversal.
type Validator struct {
	minVersion float64
	progress   Progress
}

// New creates a Validator. A nil progress discards incremental output.
func New(cfg *config.Config, progress Progress) *Validator {
	if progress == nil {
		progress = NopProgress()
	}
	return &Validator{
		minVersion: cfg.Validation.MinVersion,
		progress:   progress,
	}
}

// Validate runs all checks over an already-parsed document and returns the
// verdict along with the accumulated findings. Every check continues past
// failures; only an unparseable input (handled in ValidateFile) short-circuits.
func (v *Validator) Validate(doc *export.Document) (bool, *Result) {
	res := &Result{}
	v.document(doc, res)
	return res.Passed(), res
}

// ValidateFile reads, parses and validates one template export file. A read
// or parse failure records a single Error and stops; no further checks run.
func (v *Validator) ValidateFile(ctx context.Context, path string) *Result {
	_, span := telemetry.Tracer().Start(ctx, "Validator.ValidateFile")
	defer span.End()
	span.SetAttributes(attribute.String("file", path))

	res := &Result{File: path}

	doc, err := export.ParseFile(path)
	if err != nil {
		res.Errorf("%v", err)
		span.SetAttributes(attribute.Int("errors", 1))
		return res
	}
	res.Infof("XML parsing successful")

	v.document(doc, res)

	span.SetAttributes(
		attribute.Int("errors", len(res.Errors())),
		attribute.Int("warnings", len(res.Warnings())),
		attribute.Bool("passed", res.Passed()),
	)
	return res
}

func (v *Validator) document(doc *export.Document, res *Result) {
	v.checkRoot(doc, res)
	v.checkVersion(doc, res)
	v.checkTemplates(doc, res)
}

func (v *Validator) checkRoot(doc *export.Document, res *Result) {
	if doc.XMLName.Local != "zabbix_export" {
		res.Errorf("root element must be 'zabbix_export', found '%s'", doc.XMLName.Local)
		return
	}
	res.Infof("root element is 'zabbix_export'")
}

func (v *Validator) checkVersion(doc *export.Document, res *Result) {
	if doc.Version == nil {
		res.Errorf("missing <version> element")
		return
	}
	version := *doc.Version
	res.Infof("Zabbix version: %s", version)

	major, err := strconv.ParseFloat(strings.SplitN(version, ".", 2)[0], 64)
	if err != nil {
		res.Warnf("could not parse version: %s", version)
		return
	}
	if major < v.minVersion {
		res.Warnf("Zabbix version %s is older than %.1f", version, v.minVersion)
	}
}

func (v *Validator) checkTemplates(doc *export.Document, res *Result) {
	if doc.Templates == nil {
		res.Errorf("missing <templates> element")
		return
	}

	templates := doc.Templates.Templates
	if len(templates) == 0 {
		res.Warnf("no templates found in file")
		return
	}
	res.Infof("found %d template(s)", len(templates))

	for i := range templates {
		v.progress.Sectionf("Template %d:", i+1)
		v.template(&templates[i], res)
	}
}

func (v *Validator) template(t *export.Template, res *Result) {
	if t.Name == nil {
		res.Errorf("missing template name")
	} else {
		v.progress.Stepf(StatusOK, "Name: %s", *t.Name)
	}

	v.checkUUID(t.UUID, res)
	v.checkGroups(t.Groups, res)
	v.checkItems(t.Items, res)
	v.checkDiscoveryRules(t.DiscoveryRules, res)
	v.checkTriggers(t.Triggers, res)
	v.checkMacros(t.Macros, res)
}

func (v *Validator) checkUUID(id *string, res *Result) {
	if id == nil {
		res.Warnf("missing UUID (recommended for Zabbix 7.0+)")
		return
	}
	v.progress.Stepf(StatusOK, "UUID: %.8s...", *id)
	if !validUUID(*id) {
		res.Errorf("invalid UUID format: %s", *id)
	}
}

func (v *Validator) checkGroups(groups *export.GroupSection, res *Result) {
	if groups == nil || len(groups.Groups) == 0 {
		res.Warnf("no template groups defined")
		return
	}
	v.progress.Stepf(StatusOK, "Groups: %d", len(groups.Groups))
	for _, g := range groups.Groups {
		if g.Name == nil {
			res.Errorf("group missing name")
		}
	}
}
