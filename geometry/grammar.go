package geometry

import (
	"fmt"
	"sort"
)

// Category classifies an object type.
type Category string

const (
	CategoryScalar      Category = "scalar"
	CategoryCompound    Category = "compound"
	CategoryInteractive Category = "interactive"
)

// DataType identifies the declared type of one attribute value.
type DataType string

const (
	TypeString  DataType = "string"
	TypeURL     DataType = "url"
	TypeEnum    DataType = "enum"
	TypeArray   DataType = "array"
	TypeBoolean DataType = "boolean"
)

// ObjectType is the formal grammar for one content object type.
type ObjectType struct {
	Name        string
	Category    Category
	Description string

	// Spec is the attribute grammar in whichever of the two supported
	// shapes the document declared. The shape is fixed at load time.
	Spec AttributeSpec

	// Constraints holds the named constraint switches (alt_not_filename,
	// href_not_empty, ...). Only entries set to true are active.
	Constraints map[string]bool
}

// AttributeSpec is the attribute grammar of an object type. Exactly two
// implementations exist: RuleFormat and LegacyFormat.
type AttributeSpec interface {
	// FormatName names the grammar shape for diagnostics.
	FormatName() string
}

// AttributeRule is the formal definition of one attribute in the
// rule-per-attribute grammar format.
type AttributeRule struct {
	DataType    DataType
	Required    bool
	Description string

	// string rules; zero means unset
	MinLength int
	MaxLength int

	// enum rules
	AllowedValues []string

	// array rules; MinItems zero means unset
	MinItems int
	ItemType string

	// Default is informational; validation never fills defaults in.
	Default any
}

// RuleFormat is the preferred grammar shape: one AttributeRule per
// declared attribute. Names preserves a deterministic iteration order.
type RuleFormat struct {
	Names []string
	Rules map[string]*AttributeRule
}

// FormatName implements AttributeSpec.
func (f *RuleFormat) FormatName() string { return "rules" }

// LegacyFormat is the fallback grammar shape: plain required/optional
// attribute name lists, plus an optional role allow-list.
type LegacyFormat struct {
	Required   []string
	Optional   []string
	ValidRoles []string
}

// FormatName implements AttributeSpec.
func (f *LegacyFormat) FormatName() string { return "legacy" }

// parseObjectType builds one ObjectType from its decoded definition,
// choosing the grammar shape exactly once.
func parseObjectType(name string, v any) (*ObjectType, error) {
	m, ok := asMap(v)
	if !ok {
		return nil, &StructureError{
			Section: sectionObjectTypes,
			Reason:  fmt.Sprintf("type %q must be a mapping", name),
		}
	}

	ot := &ObjectType{
		Name:        name,
		Category:    Category(stringAt(m, "category")),
		Description: stringAt(m, "description"),
	}

	if av, ok := m["attributes"]; ok {
		spec, err := parseRuleFormat(name, av)
		if err != nil {
			return nil, err
		}
		ot.Spec = spec
	} else {
		spec, err := parseLegacyFormat(name, m)
		if err != nil {
			return nil, err
		}
		ot.Spec = spec
	}

	if cv, ok := m["constraints"]; ok {
		constraints, ok := asMap(cv)
		if !ok {
			return nil, &StructureError{
				Section: sectionObjectTypes,
				Reason:  fmt.Sprintf("constraints of type %q must be a mapping", name),
			}
		}
		ot.Constraints = make(map[string]bool, len(constraints))
		for cname, cval := range constraints {
			on, _ := cval.(bool)
			ot.Constraints[cname] = on
		}
	}

	return ot, nil
}

func parseRuleFormat(typeName string, v any) (*RuleFormat, error) {
	attrs, ok := asMap(v)
	if !ok {
		return nil, &StructureError{
			Section: sectionObjectTypes,
			Reason:  fmt.Sprintf("attributes of type %q must be a mapping", typeName),
		}
	}

	spec := &RuleFormat{
		Names: make([]string, 0, len(attrs)),
		Rules: make(map[string]*AttributeRule, len(attrs)),
	}
	for attrName, attrVal := range attrs {
		rm, ok := asMap(attrVal)
		if !ok {
			return nil, &StructureError{
				Section: sectionObjectTypes,
				Reason:  fmt.Sprintf("attribute %q of type %q must be a mapping", attrName, typeName),
			}
		}

		rule := &AttributeRule{
			DataType:    TypeString,
			Description: stringAt(rm, "description"),
			Default:     rm["default"],
		}
		if dt := stringAt(rm, "data_type"); dt != "" {
			rule.DataType = DataType(dt)
		}
		if req, ok := boolAt(rm, "required"); ok {
			rule.Required = req
		}
		if n, ok := intAt(rm, "min_length"); ok {
			rule.MinLength = n
		}
		if n, ok := intAt(rm, "max_length"); ok {
			rule.MaxLength = n
		}
		if n, ok := intAt(rm, "min_items"); ok {
			rule.MinItems = n
		}
		if s := stringAt(rm, "item_type"); s != "" {
			rule.ItemType = s
		}
		if av, ok := rm["allowed_values"]; ok {
			allowed, ok := asStringSlice(av)
			if !ok {
				return nil, &StructureError{
					Section: sectionObjectTypes,
					Reason:  fmt.Sprintf("allowed_values of %s.%s must be a sequence of strings", typeName, attrName),
				}
			}
			rule.AllowedValues = allowed
		}

		spec.Names = append(spec.Names, attrName)
		spec.Rules[attrName] = rule
	}
	sort.Strings(spec.Names)

	return spec, nil
}

func parseLegacyFormat(typeName string, m map[string]any) (*LegacyFormat, error) {
	spec := &LegacyFormat{}

	if rv, ok := m["required"]; ok {
		required, ok := asStringSlice(rv)
		if !ok {
			return nil, &StructureError{
				Section: sectionObjectTypes,
				Reason:  fmt.Sprintf("required of type %q must be a sequence of names", typeName),
			}
		}
		spec.Required = required
	}
	if ov, ok := m["optional"]; ok {
		if optional, ok := asStringSlice(ov); ok {
			spec.Optional = optional
		}
	}
	if vv, ok := m["valid_roles"]; ok {
		roles, ok := asStringSlice(vv)
		if !ok {
			return nil, &StructureError{
				Section: sectionObjectTypes,
				Reason:  fmt.Sprintf("valid_roles of type %q must be a sequence of names", typeName),
			}
		}
		spec.ValidRoles = roles
	}

	return spec, nil
}
