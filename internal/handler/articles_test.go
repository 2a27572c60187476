package handler

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pressroomhq/pressroom/internal/model"
	"github.com/pressroomhq/pressroom/internal/validation"
)

func TestCreateArticleRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateArticleRequest
		wantErr bool
	}{
		{
			name:    "valid draft",
			req:     CreateArticleRequest{Title: "A valid title"},
			wantErr: false,
		},
		{
			name:    "title too short",
			req:     CreateArticleRequest{Title: "abcd"},
			wantErr: true,
		},
		{
			name:    "missing title",
			req:     CreateArticleRequest{Summary: "s"},
			wantErr: true,
		},
		{
			name:    "invalid status",
			req:     CreateArticleRequest{Title: "A valid title", Status: "pending"},
			wantErr: true,
		},
		{
			name:    "published without summary",
			req:     CreateArticleRequest{Title: "A valid title", Status: "published"},
			wantErr: true,
		},
		{
			name:    "published with blank summary",
			req:     CreateArticleRequest{Title: "A valid title", Status: "published", Summary: "   "},
			wantErr: true,
		},
		{
			name:    "published with summary",
			req:     CreateArticleRequest{Title: "A valid title", Status: "published", Summary: "ok"},
			wantErr: false,
		},
		{
			name:    "bad tag id",
			req:     CreateArticleRequest{Title: "A valid title", TagIDs: []string{"nope"}},
			wantErr: true,
		},
		{
			name: "inline tag without name",
			req: CreateArticleRequest{
				Title: "A valid title",
				Tags:  []InlineTagRequest{{Name: ""}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateArticleRequestCrossFieldError(t *testing.T) {
	req := CreateArticleRequest{Title: "A valid title", Status: "published"}

	err := req.Validate()
	require.Error(t, err)

	custom, ok := err.(validation.CustomValidationErrors)
	require.True(t, ok)
	require.Len(t, custom, 1)
	assert.Equal(t, "summary", custom[0].Field)
}

func TestPatchArticleRequestValidate(t *testing.T) {
	id := uuid.New().String()
	short := "abcd"
	good := "A valid title"
	bogus := "pending"

	assert.NoError(t, (&PatchArticleRequest{ID: id}).Validate())
	assert.NoError(t, (&PatchArticleRequest{ID: id, Title: &good}).Validate())
	assert.Error(t, (&PatchArticleRequest{ID: id, Title: &short}).Validate())
	assert.Error(t, (&PatchArticleRequest{ID: id, Status: &bogus}).Validate())
	assert.Error(t, (&PatchArticleRequest{ID: "not-a-uuid"}).Validate())
}

func TestArticleIDRequestValidate(t *testing.T) {
	assert.NoError(t, (&ArticleIDRequest{ID: uuid.New().String()}).Validate())
	assert.Error(t, (&ArticleIDRequest{ID: "123"}).Validate())
	assert.Error(t, (&ArticleIDRequest{}).Validate())
}

func TestNewArticleDetailResponse(t *testing.T) {
	now := time.Now()
	article := &model.Article{
		ID:      uuid.New(),
		Title:   "How to write Go",
		Summary: "short version",
		Content: "long version",
		Status:  model.ArticleStatusPublished,
		Author: model.User{
			ID:       "user_1",
			Username: "ada",
			IsStaff:  true,
		},
		Tags: []model.Tag{
			{ID: uuid.New(), Name: "Go", Slug: "go", CreatedAt: now},
		},
		CreatedAt:     now,
		UpdatedAt:     now,
		CommentsCount: 7,
	}

	resp := newArticleDetailResponse(article)

	assert.Equal(t, article.ID.String(), resp.ID)
	assert.Equal(t, "How to write Go", resp.Title)
	assert.Equal(t, "long version", resp.Content)
	assert.Equal(t, 7, resp.CommentsCount)
	assert.Equal(t, "ada", resp.Author.Username)
	require.Len(t, resp.Tags, 1)
	assert.Equal(t, "go", resp.Tags[0].Slug)
}

func TestTagNamesAndParseUUIDs(t *testing.T) {
	ids := []string{uuid.New().String(), uuid.New().String()}
	parsed := parseUUIDs(ids)
	require.Len(t, parsed, 2)
	assert.Equal(t, ids[0], parsed[0].String())

	names := tagNames([]InlineTagRequest{{Name: "go"}, {Name: "sql"}})
	assert.Equal(t, []string{"go", "sql"}, names)
}
