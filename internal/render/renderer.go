package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/inkhive/pkg/blog"
)

// Renderer writes resources to out in one format.
type Renderer struct {
	out     io.Writer
	format  Format
	printer *message.Printer
	loc     *time.Location
}

type Option func(*Renderer)

// WithLanguage selects number grouping. Defaults to English.
func WithLanguage(tag language.Tag) Option {
	return func(r *Renderer) { r.printer = message.NewPrinter(tag) }
}

// WithLocation sets the zone dates are shown in. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(r *Renderer) {
		if loc != nil {
			r.loc = loc
		}
	}
}

func New(out io.Writer, format Format, opts ...Option) *Renderer {
	if format == "" {
		format = FormatTable
	}
	r := &Renderer{
		out:     out,
		format:  format,
		printer: message.NewPrinter(language.English),
		loc:     time.Local,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) Format() Format { return r.format }

// Number formats n with the renderer's digit grouping.
func (r *Renderer) Number(n int) string {
	return r.printer.Sprintf("%d", n)
}

func (r *Renderer) Date(ts blog.Timestamp) string {
	return FormatDate(ts, r.loc)
}

// Message prints a plain line in table mode. Structured formats stay
// machine-readable, so the line is dropped there.
func (r *Renderer) Message(format string, args ...any) error {
	if r.format != FormatTable {
		return nil
	}
	_, err := r.printer.Fprintf(r.out, format+"\n", args...)
	return wrapWrite(err)
}

// Value writes v as JSON or YAML. In table mode v is printed with %v.
func (r *Renderer) Value(v any) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return wrapWrite(enc.Encode(v))
	case FormatYAML:
		return r.yaml(v)
	case FormatTable:
		_, err := fmt.Fprintf(r.out, "%v\n", v)
		return wrapWrite(err)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, r.format)
	}
}

// yaml goes through JSON so the output keeps the wire field names and order.
func (r *Renderer) yaml(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	plain(&doc)

	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return wrapWrite(err)
	}
	return wrapWrite(enc.Close())
}

// plain resets the flow and quoting styles inherited from JSON.
func plain(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		plain(c)
	}
}

func (r *Renderer) table(fn func(w io.Writer)) error {
	tw := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fn(tw)
	return wrapWrite(tw.Flush())
}

func (r *Renderer) footer(p blog.Pagination) error {
	if p.TotalPages <= 1 {
		return nil
	}
	_, err := r.printer.Fprintf(r.out, "\nPage %d of %d\n", p.Page, p.TotalPages)
	return wrapWrite(err)
}

func wrapWrite(err error) error {
	if err == nil {
		return nil
	}
	return errors.Join(ErrWriteFailed, err)
}

func username(u *blog.User) string {
	if u == nil || u.Username == "" {
		return "-"
	}
	return u.Username
}

// oneLine collapses whitespace and cuts s to limit runes.
func oneLine(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
