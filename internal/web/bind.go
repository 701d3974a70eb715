package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/inkhive/pkg/apiclient"
	"github.com/dmitrymomot/inkhive/pkg/blog"
)

const maxBodySize = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is empty", errBadRequest)
		}
		return fmt.Errorf("%w: malformed JSON body", errBadRequest)
	}
	return nil
}

func listOptions(r *http.Request) (apiclient.ListOptions, error) {
	var opts apiclient.ListOptions
	for name, dst := range map[string]*int{"page": &opts.Page, "limit": &opts.Limit} {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return opts, fmt.Errorf("%w: %s must be a positive integer", errBadRequest, name)
		}
		*dst = n
	}
	return opts, nil
}

func pathID(r *http.Request, name string) blog.ID {
	return blog.ID(chi.URLParam(r, name))
}
