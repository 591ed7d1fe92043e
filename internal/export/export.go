// Package export holds the typed model of a Zabbix template export file.
// The document is decoded once from XML; the validator works on these
// records instead of re-querying the tree. Optional elements are pointer
// fields so a missing element stays distinguishable from an empty one.
package export

import (
	"encoding/xml"
	"fmt"
	"os"
)

// Document is the root of a parsed template export. XMLName carries the
// actual root tag so the validator can check it equals "zabbix_export".
type Document struct {
	XMLName   xml.Name
	Version   *string          `xml:"version"`
	Templates *TemplateSection `xml:"templates"`
}

// TemplateSection wraps the <templates> element.
type TemplateSection struct {
	Templates []Template `xml:"template"`
}

// Template is one exported monitoring template.
type Template struct {
	UUID           *string               `xml:"uuid"`
	Name           *string               `xml:"name"`
	Groups         *GroupSection         `xml:"groups"`
	Items          *ItemSection          `xml:"items"`
	DiscoveryRules *DiscoveryRuleSection `xml:"discovery_rules"`
	Triggers       *TriggerSection       `xml:"triggers"`
	Macros         *MacroSection         `xml:"macros"`
}

// GroupSection wraps the <groups> element.
type GroupSection struct {
	Groups []Group `xml:"group"`
}

// Group is a template group reference.
type Group struct {
	Name *string `xml:"name"`
}

// ItemSection wraps the <items> element.
type ItemSection struct {
	Items []Item `xml:"item"`
}

// Item is a single metric collection definition.
type Item struct {
	Name      *string `xml:"name"`
	Key       *string `xml:"key"`
	ValueType *string `xml:"value_type"`
}

// DiscoveryRuleSection wraps the <discovery_rules> element.
type DiscoveryRuleSection struct {
	Rules []DiscoveryRule `xml:"discovery_rule"`
}

// DiscoveryRule generates items/triggers from a target's reported entities.
type DiscoveryRule struct {
	Name           *string               `xml:"name"`
	Key            *string               `xml:"key"`
	ItemPrototypes *ItemPrototypeSection `xml:"item_prototypes"`
}

// ItemPrototypeSection wraps the <item_prototypes> element.
type ItemPrototypeSection struct {
	Prototypes []ItemPrototype `xml:"item_prototype"`
}

// ItemPrototype is an item definition generated by a discovery rule.
type ItemPrototype struct {
	Name *string `xml:"name"`
	Key  *string `xml:"key"`
}

// TriggerSection wraps the <triggers> element.
type TriggerSection struct {
	Triggers []Trigger `xml:"trigger"`
}

// Trigger is a condition expression over item data.
type Trigger struct {
	Name       *string `xml:"name"`
	Expression *string `xml:"expression"`
	Priority   *string `xml:"priority"`
}

// MacroSection wraps the <macros> element.
type MacroSection struct {
	Macros []Macro `xml:"macro"`
}

// Macro is a named placeholder, conventionally {$UPPER_SNAKE}.
type Macro struct {
	Name  *string `xml:"macro"`
	Value *string `xml:"value"`
}

// Parse decodes a template export document from raw XML.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("XML parsing error: %w", err)
	}
	return &doc, nil
}

// ParseFile reads and decodes a template export file.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return Parse(data)
}
