// internal/model/metricset.go
package model

import (
	"bytes"
	"encoding/json"
)

// MetricSet holds the raw metrics collected for one repository snapshot,
// keyed by metric name in collection order, together with any errors the
// collection phase recorded. It is built once per run and then read-only.
type MetricSet struct {
	names  []string
	values map[string]Value
	errs   []string
}

// NewMetricSet creates an empty MetricSet.
func NewMetricSet() *MetricSet {
	return &MetricSet{values: map[string]Value{}}
}

// Set stores a value under name. First insertion of a name fixes its
// position in the iteration order; setting an existing name overwrites
// the value in place.
func (m *MetricSet) Set(name string, v Value) {
	if _, ok := m.values[name]; !ok {
		m.names = append(m.names, name)
	}
	m.values[name] = v
}

// AddError records a collection error message.
func (m *MetricSet) AddError(msg string) {
	m.errs = append(m.errs, msg)
}

// Get returns the value for name, or the missing Value if the name was
// never collected.
func (m *MetricSet) Get(name string) Value {
	if m == nil {
		return MissingValue()
	}
	if v, ok := m.values[name]; ok {
		return v
	}
	return MissingValue()
}

// Names returns the metric names in collection order.
func (m *MetricSet) Names() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// Errors returns the collection error messages.
func (m *MetricSet) Errors() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.errs))
	copy(out, m.errs)
	return out
}

// Len returns the number of collected metrics.
func (m *MetricSet) Len() int {
	if m == nil {
		return 0
	}
	return len(m.names)
}

// HasMissing reports whether any collected metric is the missing value.
func (m *MetricSet) HasMissing() bool {
	if m == nil {
		return false
	}
	for _, v := range m.values {
		if v.IsMissing() {
			return true
		}
	}
	return false
}

// MarshalJSON encodes the metrics as a JSON object preserving collection
// order. Errors are not part of the object; they are reported separately
// on the Report.
func (m *MetricSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(m.values[name])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
