package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode_UnwrapsWrappedErrors(t *testing.T) {
	err := fmt.Errorf("create post: %w", NewInvalidReferenceError("User", 9))
	assert.True(t, HasCode(err, CodeInvalidReference))
	assert.False(t, HasCode(err, CodeNotFound))
	assert.False(t, HasCode(errors.New("plain"), CodeNotFound))
}

func TestRespondWithError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantDetails string
	}{
		{"not found", NewNotFoundError("Post", 3), CodeNotFound, ""},
		{"constraint keeps details", NewConstraintViolationError(errors.New("fk")), CodeConstraintViolation, "fk"},
		{"internal hides cause", NewInternalError(errors.New("pq: secret")), CodeInternal, ""},
		{"plain error", errors.New("boom"), "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return RespondWithError(c, fiber.StatusTeapot, tt.err)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			var out ErrorResponse
			require.NoError(t, json.Unmarshal(body, &out))
			assert.Equal(t, tt.wantCode, out.Code)
			assert.Equal(t, tt.wantDetails, out.Details)
			assert.NotEmpty(t, out.Error)
		})
	}
}

func TestNewPostDetail_NestsCommentAuthors(t *testing.T) {
	author := &User{ID: 1, Name: "Carlos"}
	other := &User{ID: 2, Name: "Ana"}
	p := &Post{
		ID:       1,
		Title:    "P1",
		AuthorID: 1,
		Author:   author,
		Comments: []Comment{
			{ID: 1, Content: "nice", AuthorID: 2, PostID: 1, Author: other},
		},
	}

	d := NewPostDetail(p)
	require.Len(t, d.Comments, 1)
	assert.Equal(t, "Carlos", d.Author.Name)
	assert.Equal(t, "Ana", d.Comments[0].Author.Name)
	assert.Nil(t, d.Comments[0].Comment.Author)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "P1", decoded["title"])
	assert.Equal(t, float64(1), decoded["authorId"])
	assert.Contains(t, decoded, "author")
	assert.Len(t, decoded["comments"], 1)
}

func TestNewUserDetail_EmptyRelationsEncodeAsArrays(t *testing.T) {
	raw, err := json.Marshal(NewUserDetail(&User{ID: 5, Name: "Solo"}))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"posts":[]`)
	assert.Contains(t, string(raw), `"comments":[]`)
}
