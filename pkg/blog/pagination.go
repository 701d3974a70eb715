package blog

import (
	"bytes"
	"encoding/json"
)

// Pagination describes one page of a list response.
type Pagination struct {
	Page       int `json:"page"`
	Per        int `json:"per,omitempty"`
	Count      int `json:"count,omitempty"`
	TotalPages int `json:"total_pages"`
	NextPage   int `json:"next_page,omitempty"`
	PrevPage   int `json:"prev_page,omitempty"`
}

func (p *Pagination) UnmarshalJSON(data []byte) error {
	type plain Pagination
	var raw struct {
		plain
		NumPages *int `json:"num_pages"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Pagination(raw.plain)
	if p.TotalPages == 0 && raw.NumPages != nil {
		p.TotalPages = *raw.NumPages
	}
	return nil
}

// HasNext reports whether another page follows.
func (p Pagination) HasNext() bool {
	return p.NextPage > 0 || p.Page < p.TotalPages
}

// singlePage describes a bare array response.
func singlePage(n int) Pagination {
	return Pagination{Page: 1, Per: n, Count: n, TotalPages: 1}
}

type CategoryList struct {
	Categories []Category `json:"categories"`
	Pagination Pagination `json:"pagination"`
}

func (l *CategoryList) UnmarshalJSON(data []byte) error {
	type envelope CategoryList
	items, isArray, err := decodeList[Category](data, (*envelope)(l))
	if err != nil {
		return err
	}
	if isArray {
		*l = CategoryList{Categories: items, Pagination: singlePage(len(items))}
	}
	return nil
}

type PostList struct {
	Posts      []Post     `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

func (l *PostList) UnmarshalJSON(data []byte) error {
	type envelope PostList
	items, isArray, err := decodeList[Post](data, (*envelope)(l))
	if err != nil {
		return err
	}
	if isArray {
		*l = PostList{Posts: items, Pagination: singlePage(len(items))}
	}
	return nil
}

// decodeList decodes a bare array into items, or an object into envelope.
func decodeList[T any](data []byte, envelope any) (items []T, isArray bool, err error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, true, err
		}
		if items == nil {
			items = []T{}
		}
		return items, true, nil
	}
	return nil, false, json.Unmarshal(trimmed, envelope)
}
