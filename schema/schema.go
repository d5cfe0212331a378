package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/viant/tagly/format"
)

// Properties maps a field name to its JSON schema.
type Properties map[string]map[string]interface{}

// InputSchema is the JSON schema of a capability payload.
type InputSchema struct {
	Type       string     `json:"type"`
	Properties Properties `json:"properties,omitempty"`
	Required   []string   `json:"required,omitempty"`
}

var (
	timeType        = reflect.TypeOf(time.Time{})
	unmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
)

var kindTypes = map[reflect.Kind]string{
	reflect.Bool: "boolean", reflect.String: "string",
	reflect.Int: "integer", reflect.Int8: "integer", reflect.Int16: "integer", reflect.Int32: "integer", reflect.Int64: "integer",
	reflect.Uint: "integer", reflect.Uint8: "integer", reflect.Uint16: "integer", reflect.Uint32: "integer", reflect.Uint64: "integer",
	reflect.Float32: "number", reflect.Float64: "number",
}

// typeSchema describes values of t. Types with their own JSON decoding
// (json.RawMessage, media pairs) accept any shape and yield an empty schema.
func typeSchema(t reflect.Type) map[string]interface{} {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch {
	case t == timeType:
		return map[string]interface{}{"type": "string", "format": "date-time"}
	case reflect.PointerTo(t).Implements(unmarshalerType), t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8:
		return map[string]interface{}{}
	}
	if name, ok := kindTypes[t.Kind()]; ok {
		return map[string]interface{}{"type": name}
	}
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return map[string]interface{}{"type": "array", "items": typeSchema(t.Elem())}
	case reflect.Map:
		return map[string]interface{}{"type": "object", "additionalProperties": typeSchema(t.Elem())}
	case reflect.Struct:
		ret := map[string]interface{}{"type": "object"}
		object := &InputSchema{Properties: Properties{}}
		object.addFields(t)
		ret["properties"] = object.Properties
		if len(object.Required) > 0 {
			ret["required"] = object.Required
		}
		return ret
	}
	return map[string]interface{}{}
}

// addFields adds the exported fields of struct t. Field names, omission and
// nullability come from the json and format tags; embedded or inline structs
// are flattened.
func (s *InputSchema) addFields(t reflect.Type) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag, err := format.Parse(field.Tag, "json")
		if err != nil || tag.Ignore || (!field.IsExported() && !field.Anonymous) {
			continue
		}
		fieldType := field.Type
		if fieldType.Kind() == reflect.Ptr {
			fieldType = fieldType.Elem()
		}
		if ((field.Anonymous && tag.Name == "") || tag.Inline) && fieldType.Kind() == reflect.Struct {
			s.addFields(fieldType)
			continue
		}
		if !field.IsExported() {
			continue
		}
		name := tag.Name
		if name == "" {
			name = field.Name
		}
		property := typeSchema(field.Type)
		if tag.DateFormat != "" {
			property["format"] = tag.DateFormat
		}
		nullable := field.Type.Kind() == reflect.Ptr || tag.IsNullable()
		if nullable {
			property["nullable"] = true
		}
		s.Properties[name] = property
		if !nullable && !tag.Omitempty {
			s.Required = append(s.Required, name)
		}
	}
}

// Load builds the schema of struct v (or pointer to struct).
func (s *InputSchema) Load(v any) error {
	t := reflect.TypeOf(v)
	if t == nil {
		return fmt.Errorf("expected a struct type, got nil")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return fmt.Errorf("expected a struct type, got %s", t.Kind())
	}
	s.Type = "object"
	s.Properties = Properties{}
	s.Required = nil
	s.addFields(t)
	return nil
}

// NewInputSchema returns the schema of T, or nil when T is not a struct.
func NewInputSchema[T any]() *InputSchema {
	ret := &InputSchema{}
	if err := ret.Load((*T)(nil)); err != nil {
		return nil
	}
	return ret
}
