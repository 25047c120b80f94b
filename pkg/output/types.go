// Package output provides formatting for command results.
package output

// Report is a generic command result: titled key/value sections, plain
// lines, or both. Commands build one and hand it to a Formatter.
type Report struct {
	Title    string    `json:"title,omitempty"`
	Sections []Section `json:"sections,omitempty"`
	Lines    []string  `json:"lines,omitempty"`
}

// Section groups related fields under a name.
type Section struct {
	Name   string  `json:"name,omitempty"`
	Fields []Field `json:"fields"`
}

// Field is one key/value pair. Order is preserved.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// AddSection appends a section and returns the report for chaining.
func (r *Report) AddSection(name string, fields ...Field) *Report {
	r.Sections = append(r.Sections, Section{Name: name, Fields: fields})
	return r
}
