package blog_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/inkhive/pkg/blog"
	"github.com/dmitrymomot/inkhive/pkg/validator"
)

func TestID_JSON(t *testing.T) {
	t.Parallel()

	var v struct {
		A blog.ID `json:"a"`
		B blog.ID `json:"b"`
		C blog.ID `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":42,"b":"abc-1","c":null}`), &v))
	assert.Equal(t, blog.ID("42"), v.A)
	assert.Equal(t, blog.ID("abc-1"), v.B)
	assert.True(t, v.C.IsZero())

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":42,"b":"abc-1","c":null}`, string(out))

	leading, err := json.Marshal(blog.ID("007"))
	require.NoError(t, err)
	assert.Equal(t, `"007"`, string(leading))

	var bad blog.ID
	assert.ErrorIs(t, json.Unmarshal([]byte(`true`), &bad), blog.ErrInvalidID)
}

func TestTimestamp_JSON(t *testing.T) {
	t.Parallel()

	cases := map[string]time.Time{
		`"2024-01-02T15:04:05.123456"`: time.Date(2024, 1, 2, 15, 4, 5, 123456000, time.UTC),
		`"2024-01-02T15:04:05"`:        time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC),
		`"2024-01-02T15:04:05+02:00"`:  time.Date(2024, 1, 2, 13, 4, 5, 0, time.UTC),
		`"2024-01-02"`:                 time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		`"2024-01-02 15:04:05.5"`:      time.Date(2024, 1, 2, 15, 4, 5, 500000000, time.UTC),
	}
	for in, want := range cases {
		var ts blog.Timestamp
		require.NoError(t, json.Unmarshal([]byte(in), &ts), in)
		assert.True(t, want.Equal(ts.Time), "%s decoded as %s", in, ts.Time)
	}

	var empty blog.Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &empty))
	assert.True(t, empty.IsZero())

	var bad blog.Timestamp
	assert.ErrorIs(t, json.Unmarshal([]byte(`"yesterday"`), &bad), blog.ErrInvalidTimestamp)
}

func TestCategoryList_Shapes(t *testing.T) {
	t.Parallel()

	t.Run("envelope", func(t *testing.T) {
		t.Parallel()
		var l blog.CategoryList
		body := `{"categories":[{"id":1,"name":"Go","post_count":3,"creator":{"id":7,"username":"alice"}}],
			"pagination":{"page":1,"per":10,"count":11,"num_pages":2,"next_page":2}}`
		require.NoError(t, json.Unmarshal([]byte(body), &l))
		require.Len(t, l.Categories, 1)
		assert.Equal(t, "Go", l.Categories[0].Name)
		assert.Equal(t, 3, l.Categories[0].PostCount)
		assert.Equal(t, "alice", l.Categories[0].Creator.Username)
		assert.Equal(t, 2, l.Pagination.TotalPages)
		assert.True(t, l.Pagination.HasNext())
	})

	t.Run("bare array", func(t *testing.T) {
		t.Parallel()
		var l blog.CategoryList
		require.NoError(t, json.Unmarshal([]byte(`[{"id":1,"name":"Go"},{"id":2,"name":"Rust"}]`), &l))
		assert.Len(t, l.Categories, 2)
		assert.Equal(t, 1, l.Pagination.TotalPages)
		assert.False(t, l.Pagination.HasNext())
	})

	t.Run("empty array", func(t *testing.T) {
		t.Parallel()
		var l blog.CategoryList
		require.NoError(t, json.Unmarshal([]byte(`[]`), &l))
		assert.NotNil(t, l.Categories)
		assert.Empty(t, l.Categories)
	})
}

func TestPostList_Shapes(t *testing.T) {
	t.Parallel()

	var l blog.PostList
	body := `{"posts":[{"id":"5","title":"Hello","content":"world","author":{"id":7,"username":"alice"},
		"category":{"id":1,"name":"Go"},"created_at":"2024-03-04T05:06:07","comments":[{"id":1,"content":"hi"}]}],
		"pagination":{"page":1,"total_pages":1}}`
	require.NoError(t, json.Unmarshal([]byte(body), &l))
	require.Len(t, l.Posts, 1)
	p := l.Posts[0]
	assert.Equal(t, blog.ID("5"), p.ID)
	assert.Equal(t, "Go", p.Category.Name)
	assert.Len(t, p.Comments, 1)
	assert.Equal(t, 2024, p.CreatedAt.Year())
	assert.True(t, p.OwnedBy(blog.User{ID: "7"}))
	assert.False(t, p.OwnedBy(blog.User{ID: "8"}))
	assert.False(t, p.OwnedBy(blog.User{}))

	var bare blog.PostList
	require.NoError(t, json.Unmarshal([]byte(`[{"id":1,"title":"t"}]`), &bare))
	assert.Len(t, bare.Posts, 1)
}

func TestCredentials_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, blog.Credentials{Username: "alice", Password: "password1"}.Validate())

	err := blog.Credentials{Username: " ", Password: "short"}.Validate()
	require.True(t, validator.IsValidationError(err))
	ve := validator.ExtractValidationErrors(err)
	assert.Equal(t, []string{"username", "password"}, ve.Fields())
	assert.Equal(t, []string{"Password must be at least 8 characters"}, ve.Get("password"))
}

func TestRegistration_Validate(t *testing.T) {
	t.Parallel()

	valid := blog.Registration{Username: "bob", Email: "bob@example.com", Password: "password1", PasswordConfirm: "password1"}
	require.NoError(t, valid.Validate())

	mismatch := valid
	mismatch.PasswordConfirm = "password2"
	ve := validator.ExtractValidationErrors(mismatch.Validate())
	assert.Equal(t, []string{"Passwords do not match"}, ve.Get("password_confirm"))

	badEmail := valid
	badEmail.Email = "bob@localhost"
	assert.True(t, validator.ExtractValidationErrors(badEmail.Validate()).Has("email"))
}

func TestResourceInputs_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, blog.CategoryInput{Name: "Go"}.Validate())
	assert.True(t, validator.IsValidationError(blog.CategoryInput{}.Validate()))

	assert.NoError(t, blog.PostInput{Title: "t", Content: "c", CategoryID: "1"}.Validate())
	ve := validator.ExtractValidationErrors(blog.PostInput{}.Validate())
	assert.Equal(t, []string{"title", "content", "category_id"}, ve.Fields())

	assert.NoError(t, blog.CommentInput{Content: "nice"}.Validate())
	assert.True(t, validator.IsValidationError(blog.CommentInput{Content: "  "}.Validate()))
}
