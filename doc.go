// Package xmladapters lets JSON binding honor metadata written for XML binding:
// `xml` struct tags and XML adapters (two-way converters between the shape a
// value has in the document and the domain type a field holds).
//
// Basic Usage
//
//	m := xmladapters.New()
//	err := xmladapters.Register[string, time.Time](m, common.DateAdapter{})
//	err = m.ReadValue(data, &dst)
//
// # Adapters
//
// An adapter implements Unmarshal(V) (B, error), and optionally
// Marshal(B) (V, error). NewAdapterBinder wraps it as a ValueBinder: the value
// type V is bound from the document first, then handed to Unmarshal. The binder
// for V is resolved on first use and cached on the AdapterBinder.
//
// Adapter failures are reported as *MappingError naming V and carrying the
// cause. A missing binder for V is a configuration error and is returned as-is.
//
// # Binder Precedence
//
// For each struct property the binder is chosen in this order:
//  1. An adapter registered for the owner struct type and Go field name
//  2. A named adapter referenced by the field's `xmladapter:"name"` tag
//  3. An adapter registered for the field's type
//  4. A standard binder (structs, pointers, slices and map values recurse;
//     everything else is decoded by goccy/go-json)
//
// Properties whose static type has a TypeDeserializer registered are read
// through it instead, so the value may carry a type id.
//
// # Property Naming
//
// Names come from an Introspector. The default pairs JSONIntrospector with
// XMLIntrospector: the first non-empty name wins, and a field ignored by
// either side (`json:"-"`, `xml:"-"`) is ignored.
//
//	type Contact struct {
//	    XMLName xml.Name `xml:"urn:contacts contact"` // root name "contact"
//	    Call    string   `xml:"call,attr"`
//	    Note    string   `xml:",chardata"`            // property "value"
//	    Date    string   `json:"qso_date" xml:"date"` // property "qso_date"
//	}
//
// # AdditionalData
//
// A field tagged `xml:",any"`, or a field named AdditionalData of type
// null.JSON or sqlboiler types.JSON, collects properties that match no other
// field, and is merged back into written documents.
//
// # Thread Safety
//
// A Mapper is safe for concurrent use, including registering adapters while
// documents are read. Internals use copy-on-write registries and cached
// metadata.
package xmladapters
