// Package render prints blog resources to a terminal.
//
// Three formats are supported: an aligned table for people, and JSON or YAML
// for scripts. Counts are grouped for the configured language and dates are
// shown as MM/DD/YYYY.
//
//	r := render.New(os.Stdout, render.FormatTable)
//	if err := r.Posts(list); err != nil {
//		return err
//	}
package render
