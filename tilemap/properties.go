package tilemap

import (
	"encoding/json"
	"strconv"
)

// Properties holds Tiled custom properties by name. Values are bool, float64
// or string.
type Properties map[string]any

type property struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// UnmarshalJSON reads the Tiled list form [{name,type,value}] and the older
// object form {name: value}.
func (p *Properties) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '{' {
		var m map[string]any
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		*p = m
		return nil
	}
	var list []property
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	props := make(Properties, len(list))
	for _, prop := range list {
		props[prop.Name] = prop.Value
	}
	*p = props
	return nil
}

// Bool returns the named property as a bool and whether it was set.
// String values "true"/"false" are accepted.
func (p Properties) Bool(name string) (bool, bool) {
	switch v := p[name].(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, false
		}
		return b, true
	}
	return false, false
}

// True reports whether the named property is set to true
func (p Properties) True(name string) bool {
	v, ok := p.Bool(name)
	return ok && v
}

// Float returns the named property as a number and whether it was set
func (p Properties) Float(name string) (float64, bool) {
	switch v := p[name].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Text returns the named property as a string, "" when unset
func (p Properties) Text(name string) string {
	switch v := p[name].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		b, _ := json.Marshal(v)
		return string(b)
	}
}
