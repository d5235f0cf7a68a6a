package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/closuredoc/jsdoc"
	"github.com/dhamidi/closuredoc/jsdoc/typeexpr"
	"github.com/dhamidi/closuredoc/source"
)

type JSONEncoder struct {
	w    io.Writer
	file File
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(file File) error {
	e.file = file
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(buildFile(e.file), "", "  ")
}

// The document model shared by the JSON and YAML encoders.

type fileData struct {
	File string    `json:"file" yaml:"file"`
	Docs []docData `json:"docs" yaml:"docs"`
}

type docData struct {
	Line         int            `json:"line" yaml:"line"`
	Declaration  string         `json:"declaration,omitempty" yaml:"declaration,omitempty"`
	Kind         string         `json:"kind" yaml:"kind"`
	Visibility   string         `json:"visibility,omitempty" yaml:"visibility,omitempty"`
	Flags        []string       `json:"flags,omitempty" yaml:"flags,omitempty"`
	Description  string         `json:"description,omitempty" yaml:"description,omitempty"`
	Type         string         `json:"type,omitempty" yaml:"type,omitempty"`
	EnumType     string         `json:"enumType,omitempty" yaml:"enumType,omitempty"`
	TypedefType  string         `json:"typedefType,omitempty" yaml:"typedefType,omitempty"`
	ThisType     string         `json:"thisType,omitempty" yaml:"thisType,omitempty"`
	BaseType     string         `json:"baseType,omitempty" yaml:"baseType,omitempty"`
	Extends      []string       `json:"extends,omitempty" yaml:"extends,omitempty"`
	Implements   []string       `json:"implements,omitempty" yaml:"implements,omitempty"`
	Templates    []templateData `json:"templates,omitempty" yaml:"templates,omitempty"`
	Params       []paramData    `json:"params,omitempty" yaml:"params,omitempty"`
	Return       *returnData    `json:"return,omitempty" yaml:"return,omitempty"`
	Throws       []returnData   `json:"throws,omitempty" yaml:"throws,omitempty"`
	Suppress     []string       `json:"suppress,omitempty" yaml:"suppress,omitempty"`
	Modifies     []string       `json:"modifies,omitempty" yaml:"modifies,omitempty"`
	Disposes     []string       `json:"disposes,omitempty" yaml:"disposes,omitempty"`
	Lends        string         `json:"lends,omitempty" yaml:"lends,omitempty"`
	Deprecated   string         `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	FileOverview string         `json:"fileoverview,omitempty" yaml:"fileoverview,omitempty"`
	License      string         `json:"license,omitempty" yaml:"license,omitempty"`
	Meaning      string         `json:"meaning,omitempty" yaml:"meaning,omitempty"`
	Version      string         `json:"version,omitempty" yaml:"version,omitempty"`
	Authors      []string       `json:"authors,omitempty" yaml:"authors,omitempty"`
	See          []string       `json:"see,omitempty" yaml:"see,omitempty"`
	Markers      []markerData   `json:"markers,omitempty" yaml:"markers,omitempty"`
}

type templateData struct {
	Name      string `json:"name" yaml:"name"`
	Transform string `json:"transform,omitempty" yaml:"transform,omitempty"`
}

type paramData struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type returnData struct {
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type markerData struct {
	Annotation  string    `json:"annotation" yaml:"annotation"`
	Span        spanData  `json:"span" yaml:"span"`
	Type        *itemData `json:"type,omitempty" yaml:"type,omitempty"`
	Name        *itemData `json:"name,omitempty" yaml:"name,omitempty"`
	Description *itemData `json:"description,omitempty" yaml:"description,omitempty"`
}

type itemData struct {
	Text string   `json:"text" yaml:"text"`
	Span spanData `json:"span" yaml:"span"`
}

type spanData struct {
	Start positionData `json:"start" yaml:"start"`
	End   positionData `json:"end" yaml:"end"`
}

// positionData is one-based, like editor line and column numbers.
type positionData struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

func buildFile(f File) fileData {
	data := fileData{File: f.Name, Docs: make([]docData, 0, len(f.Docs))}
	for _, d := range f.Docs {
		data.Docs = append(data.Docs, buildDoc(d))
	}
	return data
}

func buildDoc(d jsdoc.Doc) docData {
	info := d.Info
	data := docData{
		Line:         d.Comment.Span.Start.Line + 1,
		Declaration:  d.Comment.Declaration,
		Kind:         Kind(info),
		Flags:        info.Flags.Names(),
		Description:  firstNonEmpty(info.BlockDescription, info.Description),
		Type:         typeText(info.Type),
		EnumType:     typeText(info.EnumType),
		TypedefType:  typeText(info.TypedefType),
		ThisType:     typeText(info.ThisType),
		BaseType:     typeText(info.BaseType),
		Extends:      typeTexts(info.ExtendedInterfaces),
		Implements:   typeTexts(info.ImplementedInterfaces),
		Suppress:     info.Suppressions,
		Modifies:     info.Modifies,
		Disposes:     info.Disposes,
		Lends:        info.Lends,
		Deprecated:   info.DeprecationReason,
		FileOverview: info.FileOverview,
		License:      info.License,
		Meaning:      info.Meaning,
		Version:      info.Version,
		Authors:      info.Authors,
		See:          info.References,
	}
	if info.Visibility != jsdoc.Inherited {
		data.Visibility = info.Visibility.String()
	}
	for _, t := range info.Templates {
		td := templateData{Name: t.Name}
		if t.Transform != nil {
			td.Transform = t.Transform.String()
		}
		data.Templates = append(data.Templates, td)
	}
	for _, p := range info.Params {
		data.Params = append(data.Params, paramData{Name: p.Name, Type: typeText(p.Type), Description: p.Description})
	}
	if info.ReturnType != nil {
		data.Return = &returnData{Type: typeText(info.ReturnType), Description: info.ReturnDescription}
	}
	for _, t := range info.Throws {
		data.Throws = append(data.Throws, returnData{Type: typeText(t.Type), Description: t.Description})
	}
	for _, m := range info.Markers {
		data.Markers = append(data.Markers, buildMarker(m))
	}
	return data
}

func buildMarker(m jsdoc.Marker) markerData {
	md := markerData{Annotation: m.Annotation.Text, Span: buildSpan(m.Annotation.Span)}
	if m.Type != nil {
		md.Type = &itemData{Text: typeText(m.Type.Type), Span: buildSpan(m.Type.Span)}
	}
	if m.Name != nil {
		md.Name = &itemData{Text: m.Name.Text, Span: buildSpan(m.Name.Span)}
	}
	if m.Description != nil {
		md.Description = &itemData{Text: m.Description.Text, Span: buildSpan(m.Description.Span)}
	}
	return md
}

func buildSpan(s source.Span) spanData {
	return spanData{
		Start: positionData{Line: s.Start.Line + 1, Column: s.Start.Column + 1},
		End:   positionData{Line: s.End.Line + 1, Column: s.End.Column + 1},
	}
}

func typeTexts(ts []typeexpr.Type) []string {
	var out []string
	for _, t := range ts {
		out = append(out, typeText(t))
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
