package xmladapters

import (
	"encoding/xml"
	"reflect"
	"strings"
)

// Introspector answers metadata questions about struct fields and types.
// Empty strings and false mean "no opinion".
type Introspector interface {
	// FindName returns the explicit property name for f. found is true when
	// f carries a naming tag, even if the name in it is empty.
	FindName(f reflect.StructField) (name string, found bool)
	IsIgnored(f reflect.StructField) bool
	OmitEmpty(f reflect.StructField) bool
	// IsAnyProperty reports whether f collects properties that match no
	// other field.
	IsAnyProperty(f reflect.StructField) bool
	FindAdapterName(f reflect.StructField) string
	FindRootName(t reflect.Type) string
	FindNamespace(t reflect.Type) string
}

// AdapterTag names a registered adapter for a field, e.g. `xmladapter:"date"`.
const AdapterTag = "xmladapter"

// JSONIntrospector reads `json` struct tags.
type JSONIntrospector struct{}

func (JSONIntrospector) FindName(f reflect.StructField) (string, bool) {
	tag, ok := f.Tag.Lookup("json")
	if !ok {
		return "", false
	}
	name, _ := splitTag(tag)
	if name == "-" {
		return "", false
	}
	return name, true
}

func (JSONIntrospector) IsIgnored(f reflect.StructField) bool {
	return f.Tag.Get("json") == "-"
}

func (JSONIntrospector) OmitEmpty(f reflect.StructField) bool {
	_, opts := splitTag(f.Tag.Get("json"))
	return hasOpt(opts, "omitempty")
}

func (JSONIntrospector) IsAnyProperty(reflect.StructField) bool    { return false }
func (JSONIntrospector) FindAdapterName(reflect.StructField) string { return "" }
func (JSONIntrospector) FindRootName(reflect.Type) string           { return "" }
func (JSONIntrospector) FindNamespace(reflect.Type) string          { return "" }

var xmlNameType = reflect.TypeOf(xml.Name{})

// XMLValueName is the property name given to `xml:",chardata"` fields.
const XMLValueName = "value"

// XMLIntrospector reads `xml` struct tags, plus the adapter tag.
type XMLIntrospector struct{}

type xmlTag struct {
	present bool
	ns      string
	name    string
	opts    string
}

func parseXMLTag(f reflect.StructField) xmlTag {
	tag, ok := f.Tag.Lookup("xml")
	if !ok {
		return xmlTag{}
	}
	name, opts := splitTag(tag)
	xt := xmlTag{present: true, opts: opts}
	if i := strings.LastIndexByte(name, ' '); i >= 0 {
		xt.ns, name = name[:i], name[i+1:]
	}
	if i := strings.LastIndexByte(name, '>'); i >= 0 {
		name = name[i+1:]
	}
	xt.name = name
	return xt
}

func (XMLIntrospector) FindName(f reflect.StructField) (string, bool) {
	xt := parseXMLTag(f)
	if !xt.present || xt.name == "-" {
		return "", false
	}
	if hasOpt(xt.opts, "chardata") {
		return XMLValueName, true
	}
	return xt.name, true
}

func (XMLIntrospector) IsIgnored(f reflect.StructField) bool {
	if f.Name == "XMLName" && f.Type == xmlNameType {
		return true
	}
	xt := parseXMLTag(f)
	if !xt.present {
		return false
	}
	return (xt.name == "-" && xt.opts == "") || hasOpt(xt.opts, "innerxml") || hasOpt(xt.opts, "comment")
}

func (XMLIntrospector) OmitEmpty(f reflect.StructField) bool {
	return hasOpt(parseXMLTag(f).opts, "omitempty")
}

func (XMLIntrospector) IsAnyProperty(f reflect.StructField) bool {
	xt := parseXMLTag(f)
	return hasOpt(xt.opts, "any") && !hasOpt(xt.opts, "attr")
}

func (XMLIntrospector) FindAdapterName(f reflect.StructField) string {
	return f.Tag.Get(AdapterTag)
}

func (x XMLIntrospector) FindRootName(t reflect.Type) string {
	if f, ok := xmlNameField(t); ok {
		return parseXMLTag(f).name
	}
	return ""
}

func (x XMLIntrospector) FindNamespace(t reflect.Type) string {
	if f, ok := xmlNameField(t); ok {
		return parseXMLTag(f).ns
	}
	return ""
}

func xmlNameField(t reflect.Type) (reflect.StructField, bool) {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return reflect.StructField{}, false
	}
	f, ok := t.FieldByName("XMLName")
	if !ok || f.Type != xmlNameType {
		return reflect.StructField{}, false
	}
	return f, true
}

// Pair combines two introspectors. The primary is asked first and the first
// non-empty answer wins; ignore, omitempty and catch-all markers from either
// side apply.
func Pair(primary, secondary Introspector) Introspector {
	return pair{primary: primary, secondary: secondary}
}

type pair struct {
	primary   Introspector
	secondary Introspector
}

func (p pair) FindName(f reflect.StructField) (string, bool) {
	n1, found1 := p.primary.FindName(f)
	if n1 != "" {
		return n1, true
	}
	n2, found2 := p.secondary.FindName(f)
	if n2 != "" {
		return n2, true
	}
	return "", found1 || found2
}

func (p pair) IsIgnored(f reflect.StructField) bool {
	return p.primary.IsIgnored(f) || p.secondary.IsIgnored(f)
}

func (p pair) OmitEmpty(f reflect.StructField) bool {
	return p.primary.OmitEmpty(f) || p.secondary.OmitEmpty(f)
}

func (p pair) IsAnyProperty(f reflect.StructField) bool {
	return p.primary.IsAnyProperty(f) || p.secondary.IsAnyProperty(f)
}

func (p pair) FindAdapterName(f reflect.StructField) string {
	return firstNonEmpty(p.primary.FindAdapterName(f), p.secondary.FindAdapterName(f))
}

func (p pair) FindRootName(t reflect.Type) string {
	return firstNonEmpty(p.primary.FindRootName(t), p.secondary.FindRootName(t))
}

func (p pair) FindNamespace(t reflect.Type) string {
	return firstNonEmpty(p.primary.FindNamespace(t), p.secondary.FindNamespace(t))
}

// DefaultIntrospector prefers json tags and falls back to xml tags.
func DefaultIntrospector() Introspector {
	return Pair(JSONIntrospector{}, XMLIntrospector{})
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func splitTag(tag string) (name, opts string) {
	if i := strings.IndexByte(tag, ','); i >= 0 {
		return tag[:i], tag[i+1:]
	}
	return tag, ""
}

func hasOpt(opts, want string) bool {
	for opts != "" {
		var cur string
		cur, opts, _ = strings.Cut(opts, ",")
		if cur == want {
			return true
		}
	}
	return false
}
