package view

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"gopkg.in/yaml.v3"
)

// KV is one named value of a Row.
type KV struct {
	Key   string
	Value any
}

// Row is an ordered record handed to the chart layer. Keys keep their
// declared order in every encoding.
type Row []KV

// Get returns the value stored under key.
func (r Row) Get(key string) (any, bool) {
	for _, kv := range r {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return nil, false
}

// Keys returns the row's keys in order.
func (r Row) Keys() []string {
	out := make([]string, len(r))
	for i, kv := range r {
		out[i] = kv.Key
	}
	return out
}

func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", kv.Key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r Row) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, kv := range r {
		var v yaml.Node
		if err := v.Encode(kv.Value); err != nil {
			return nil, fmt.Errorf("marshal %s: %w", kv.Key, err)
		}
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: kv.Key},
			&v,
		)
	}
	return n, nil
}

// Formats lists the encodings Encode accepts.
var Formats = []string{"json", "yaml", "markdown", "html"}

// Encode writes o in the named format.
func Encode(w io.Writer, o *Output, format string) error {
	switch strings.ToLower(format) {
	case "", "json":
		return EncodeJSON(w, o)
	case "yaml", "yml":
		return EncodeYAML(w, o)
	case "markdown", "md":
		_, err := io.WriteString(w, o.Markdown())
		return err
	case "html":
		_, err := w.Write(o.HTML())
		return err
	}
	return fmt.Errorf("unsupported format %q (use %s)", format, strings.Join(Formats, "|"))
}

// EncodeJSON writes indented JSON.
func EncodeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// EncodeYAML writes YAML with two-space indentation.
func EncodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// Markdown renders the output as a sectioned report with one table per panel.
func (o *Output) Markdown() string {
	var b strings.Builder
	b.WriteString("[VIEW]\n")
	b.WriteString(fmt.Sprintf("%s (%s)\n", o.Title, o.View))
	b.WriteString(fmt.Sprintf("Matched: %d of %d\n", o.Matched, o.Total))
	b.WriteString(fmt.Sprintf("Filters: %s\n\n", o.Criteria.String()))

	for _, p := range o.Panels {
		b.WriteString(fmt.Sprintf("[%s]\n", strings.ToUpper(p.Title)))
		if p.Note != "" {
			b.WriteString(fmt.Sprintf("_%s_\n", p.Note))
		}
		if len(p.Rows) == 0 {
			b.WriteString("(no rows)\n\n")
		} else {
			writeTable(&b, p.Rows)
			b.WriteString("\n")
		}
		if len(p.Extra) > 0 {
			parts := make([]string, 0, len(p.Extra))
			for _, kv := range p.Extra {
				parts = append(parts, fmt.Sprintf("%s=%s", kv.Key, cell(kv.Value)))
			}
			b.WriteString(strings.Join(parts, ", "))
			b.WriteString("\n\n")
		}
	}

	if len(o.Notes) > 0 {
		b.WriteString("[NOTES]\n")
		for _, n := range o.Notes {
			b.WriteString("- " + n + "\n")
		}
	}
	return b.String()
}

// HTML renders Markdown as a standalone HTML page.
func (o *Output) HTML() []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: o.Title,
	})
	return markdown.ToHTML([]byte(o.Markdown()), p, r)
}

func writeTable(b *strings.Builder, rows []Row) {
	keys := rows[0].Keys()
	b.WriteString("| " + strings.Join(keys, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat(" --- |", len(keys)) + "\n")
	for _, r := range rows {
		cells := make([]string, len(keys))
		for i, k := range keys {
			v, _ := r.Get(k)
			cells[i] = cell(v)
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case *float64:
		if x == nil {
			return "-"
		}
		return fmt.Sprintf("%g", *x)
	case float64:
		return fmt.Sprintf("%g", x)
	case string:
		return strings.ReplaceAll(x, "|", "\\|")
	default:
		return fmt.Sprint(x)
	}
}
