package xmladapters

import (
	"reflect"
	"strings"

	"github.com/aarondl/null/v8"
	boilertypes "github.com/aarondl/sqlboiler/v4/types"
)

var (
	nullJSONType    = reflect.TypeOf(null.JSON{})
	boilerJSONType  = reflect.TypeOf(boilertypes.JSON{})
	genericMapType  = reflect.TypeOf(map[string]any{})
	additionalField = "AdditionalData"
)

type fieldInfo struct {
	index     []int
	goName    string
	name      string // property name in the document
	field     reflect.StructField
	typ       reflect.Type
	omitEmpty bool
}

type structMetadata struct {
	fields         []fieldInfo
	byName         map[string]*fieldInfo
	byLowerName    map[string]*fieldInfo
	additionalData *fieldInfo
}

func isAdditionalDataType(t reflect.Type) bool {
	return t == nullJSONType || t == boilerJSONType || t == genericMapType
}

func (m *Mapper) lookupField(meta *structMetadata, key string) *fieldInfo {
	if fi, ok := meta.byName[key]; ok {
		return fi
	}
	if m.options.CaseInsensitiveProperties {
		return meta.byLowerName[strings.ToLower(key)]
	}
	return nil
}

func (m *Mapper) getOrBuildMetadata(typ reflect.Type) *structMetadata {
	if cached, ok := m.metadataCache.Load(typ); ok {
		return cached.(*structMetadata)
	}
	meta := &structMetadata{byName: make(map[string]*fieldInfo), byLowerName: make(map[string]*fieldInfo)}
	m.buildFieldMetadata(typ, meta, nil)
	for i := range meta.fields {
		fi := &meta.fields[i]
		// outer fields shadow promoted ones, as in encoding/json
		if prev, ok := meta.byName[fi.name]; ok && len(prev.index) <= len(fi.index) {
			continue
		}
		meta.byName[fi.name] = fi
		lower := strings.ToLower(fi.name)
		if _, ok := meta.byLowerName[lower]; !ok {
			meta.byLowerName[lower] = fi
		}
	}
	actual, _ := m.metadataCache.LoadOrStore(typ, meta)
	return actual.(*structMetadata)
}

func (m *Mapper) buildFieldMetadata(typ reflect.Type, meta *structMetadata, prefix []int) {
	intro := m.options.Introspector
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		idx := append(append([]int(nil), prefix...), i)
		if f.Anonymous {
			ft := f.Type
			if ft.Kind() == reflect.Ptr {
				ft = ft.Elem()
			}
			if name, _ := intro.FindName(f); name == "" && ft.Kind() == reflect.Struct && !intro.IsIgnored(f) {
				m.buildFieldMetadata(ft, meta, idx)
				continue
			}
		}
		if f.PkgPath != "" {
			continue
		}
		if intro.IsAnyProperty(f) || (f.Name == additionalField && (f.Type == nullJSONType || f.Type == boilerJSONType)) {
			if meta.additionalData == nil && isAdditionalDataType(f.Type) {
				meta.additionalData = &fieldInfo{index: idx, goName: f.Name, name: f.Name, field: f, typ: f.Type}
			}
			continue
		}
		if intro.IsIgnored(f) {
			continue
		}
		name, _ := intro.FindName(f)
		if name == "" {
			name = f.Name
		}
		meta.fields = append(meta.fields, fieldInfo{
			index:     idx,
			goName:    f.Name,
			name:      name,
			field:     f,
			typ:       f.Type,
			omitEmpty: intro.OmitEmpty(f),
		})
	}
}

// fieldForRead walks index, allocating nil embedded pointers on the way.
func fieldForRead(v reflect.Value, index []int) reflect.Value {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Ptr {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v
}

// fieldForWrite walks index and reports false when a nil embedded pointer
// hides the field.
func fieldForWrite(v reflect.Value, index []int) (reflect.Value, bool) {
	for i, x := range index {
		if i > 0 && v.Kind() == reflect.Ptr {
			if v.IsNil() {
				return reflect.Value{}, false
			}
			v = v.Elem()
		}
		v = v.Field(x)
	}
	return v, true
}
