package structs

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	// Transient credentials injected into a document for the duration of
	// a single processor call.
	KeyAPIKey     = "x-api-key"
	KeyDatabaseID = "database_id"

	// Well known document keys
	KeyCallbackURI = "callback_uri"
	KeyRunIn       = "run_in"
	KeyUsername    = "username"
)

var secretMarkers = []string{"token", "password", "secret", "credential"}

// IsSecretKey returns if a document key should be considered sensitive; such keys are never
// logged, persisted outside of the task or sent to callbacks.
func IsSecretKey(key string) bool {
	k := strings.ToLower(key)
	if k == KeyAPIKey || k == KeyDatabaseID {
		return true
	}
	for _, m := range secretMarkers {
		if strings.Contains(k, m) {
			return true
		}
	}
	return false
}

// Document is the ordered map of data passed from node to node.
//
// Top level key order is preserved through JSON encoding. Values are plain JSON-like
// values (string, float64, int, bool, nil, []interface{}, map[string]interface{}).
type Document struct {
	fields *orderedmap.OrderedMap[string, interface{}]
}

func NewDocument() *Document {
	return &Document{fields: orderedmap.New[string, interface{}]()}
}

// DocumentFromMap builds a document from a map. Go maps have no order, so keys
// are inserted sorted.
func DocumentFromMap(in map[string]interface{}) *Document {
	d := NewDocument()
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		d.Set(k, in[k])
	}
	return d
}

func (d *Document) init() {
	if d.fields == nil {
		d.fields = orderedmap.New[string, interface{}]()
	}
}

func (d *Document) Get(key string) (interface{}, bool) {
	if d == nil || d.fields == nil {
		return nil, false
	}
	return d.fields.Get(key)
}

func (d *Document) Has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// Set adds or replaces a key. Replacing keeps the original position.
func (d *Document) Set(key string, value interface{}) {
	d.init()
	d.fields.Set(key, value)
}

func (d *Document) Delete(key string) {
	if d == nil || d.fields == nil {
		return
	}
	d.fields.Delete(key)
}

func (d *Document) Len() int {
	if d == nil || d.fields == nil {
		return 0
	}
	return d.fields.Len()
}

// Keys in insertion order
func (d *Document) Keys() []string {
	if d == nil || d.fields == nil {
		return []string{}
	}
	keys := make([]string, 0, d.fields.Len())
	for pair := d.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Lookup finds a value by dotted path, descending into nested objects.
func (d *Document) Lookup(path string) (interface{}, bool) {
	parts := strings.Split(path, ".")
	value, ok := d.Get(parts[0])
	if !ok {
		return nil, false
	}
	for _, p := range parts[1:] {
		m, ok := value.(map[string]interface{})
		if !ok {
			return nil, false
		}
		value, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return value, true
}

// Merge copies every key of other into d, overwriting existing values.
func (d *Document) Merge(other *Document) {
	for _, k := range other.Keys() {
		v, _ := other.Get(k)
		d.Set(k, v)
	}
}

// Map returns a shallow, unordered view of the document.
func (d *Document) Map() map[string]interface{} {
	out := map[string]interface{}{}
	for _, k := range d.Keys() {
		out[k], _ = d.Get(k)
	}
	return out
}

// Copy returns a deep copy.
func (d *Document) Copy() *Document {
	out := NewDocument()
	for _, k := range d.Keys() {
		v, _ := d.Get(k)
		out.Set(k, deepCopy(v))
	}
	return out
}

// Scrubbed returns a deep copy with every secret key removed, at any depth.
func (d *Document) Scrubbed() *Document {
	out := NewDocument()
	for _, k := range d.Keys() {
		if IsSecretKey(k) {
			continue
		}
		v, _ := d.Get(k)
		out.Set(k, scrub(v))
	}
	return out
}

func (d *Document) MarshalJSON() ([]byte, error) {
	if d == nil || d.fields == nil {
		return []byte("{}"), nil
	}
	return d.fields.MarshalJSON()
}

func (d *Document) UnmarshalJSON(data []byte) error {
	d.fields = orderedmap.New[string, interface{}]()
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return d.fields.UnmarshalJSON(trimmed)
}

func scrub(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := map[string]interface{}{}
		for k, inner := range t {
			if IsSecretKey(k) {
				continue
			}
			out[k] = scrub(inner)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, inner := range t {
			out[i] = scrub(inner)
		}
		return out
	default:
		return v
	}
}

func deepCopy(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, inner := range t {
			out[k] = deepCopy(inner)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, inner := range t {
			out[i] = deepCopy(inner)
		}
		return out
	default:
		return v
	}
}

// AsList returns v as a []interface{} if it is any kind of slice.
func AsList(v interface{}) ([]interface{}, bool) {
	if l, ok := v.([]interface{}); ok {
		return l, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Slice {
		return nil, false
	}
	out := make([]interface{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// AsInt returns v as an int if it's a whole number (or a string holding one).
func AsInt(v interface{}) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case float64:
		if t != math.Trunc(t) {
			return 0, false
		}
		return int(t), true
	case json.Number:
		i, err := t.Int64()
		return int(i), err == nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(t))
		return i, err == nil
	default:
		return 0, false
	}
}

// AsFloat returns v as a float64 if it's numeric (or a string holding a number).
func AsFloat(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Truthy follows JSON-ish truthiness: false, 0, "", null, empty list / object are false.
func Truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != "" && strings.ToLower(t) != "false"
	case map[string]interface{}:
		return len(t) > 0
	}
	if f, ok := AsFloat(v); ok {
		return f != 0
	}
	if l, ok := AsList(v); ok {
		return len(l) > 0
	}
	return true
}
