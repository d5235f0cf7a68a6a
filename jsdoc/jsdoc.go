package jsdoc

import (
	"github.com/dhamidi/closuredoc/config"
	"github.com/dhamidi/closuredoc/diag"
	"github.com/dhamidi/closuredoc/jsdoc/extract"
	"github.com/dhamidi/closuredoc/jsdoc/typeexpr"
	"github.com/dhamidi/closuredoc/source"
)

type options struct {
	cfg *config.Config
}

type Option func(*options)

// WithConfig selects the configuration. The default is config.Default().
func WithConfig(cfg *config.Config) Option {
	return func(o *options) {
		if cfg != nil {
			o.cfg = cfg
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{cfg: config.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ParseComment parses the body of one documentation comment. src.Text
// starts after "/**". A record is always returned; problems are reported
// to r, which may be nil.
func ParseComment(src source.Source, r diag.Reporter, opts ...Option) *Info {
	o := buildOptions(opts)
	return newParser(src, r, o.cfg).parse()
}

// ParseInlineType parses an inline type comment such as "/** number */".
// It returns nil when the text is not a type expression.
func ParseInlineType(src source.Source, r diag.Reporter, opts ...Option) *Info {
	info, _ := parseInline(src, r, buildOptions(opts).cfg)
	return info
}

// parseInline also reports whether the type covers the whole comment.
func parseInline(src source.Source, r diag.Reporter, cfg *config.Config) (*Info, bool) {
	p := newParser(src, r, cfg)
	p.s.SkipEOLs()
	t := p.types.ParseTypeExpression(p.s.Next())
	if t == nil {
		return nil, false
	}
	info := &Info{Type: t, Source: src}
	info.Flags.set(FlagInlineType)
	p.s.SkipEOLs()
	return info, p.s.Peek().Kind.IsEnd()
}

// ParseTypeString parses a type expression given outside of any comment.
func ParseTypeString(text string, r diag.Reporter, opts ...Option) typeexpr.Type {
	o := buildOptions(opts)
	return typeexpr.Parse(text, r, typeexpr.WithLegacyArrays(o.cfg.LanguageMode.LegacyArrays()))
}

// Doc pairs a comment found in a file with its record.
type Doc struct {
	Comment extract.Comment
	Info    *Info
}

// ParseFile parses every documentation comment of a JavaScript file.
// Inline type comments that do not parse as a type are parsed as regular
// comments.
func ParseFile(name, text string, r diag.Reporter, opts ...Option) []Doc {
	o := buildOptions(opts)
	comments := extract.Comments(name, text)
	docs := make([]Doc, 0, len(comments))
	for _, c := range comments {
		var info *Info
		if c.Inline {
			var complete bool
			info, complete = parseInline(c.Source, nil, o.cfg)
			if !complete {
				info = nil
			}
		}
		if info == nil {
			info = ParseComment(c.Source, r, opts...)
		}
		docs = append(docs, Doc{Comment: c, Info: info})
	}
	return docs
}

// FileOverview returns the record of the first @fileoverview comment.
func FileOverview(docs []Doc) *Info {
	for _, d := range docs {
		if d.Info.IsFileOverview() {
			return d.Info
		}
	}
	return nil
}
