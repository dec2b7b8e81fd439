package post

import "time"

const timeFormat = time.RFC3339Nano

// CreatePostRequest represents the request body for creating a post
type CreatePostRequest struct {
	Title          string   `json:"title" validate:"required,min=3,max=200"`
	Body           string   `json:"body" validate:"required"`
	AuthorUsername string   `json:"author_username" validate:"required,min=3"`
	Tags           []string `json:"tags"`
	CoverImage     *string  `json:"cover_image,omitempty"`
	Published      *bool    `json:"published,omitempty"`
}

// ToPost maps the request onto a new document, applying defaults
func (r *CreatePostRequest) ToPost(now time.Time) *Post {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	published := true
	if r.Published != nil {
		published = *r.Published
	}
	return &Post{
		Title:          r.Title,
		Body:           r.Body,
		AuthorUsername: r.AuthorUsername,
		Tags:           tags,
		CoverImage:     r.CoverImage,
		Published:      published,
		CreatedAt:      &now,
		Comments:       []Comment{},
	}
}

// CreateCommentRequest represents the request body for commenting on a post
type CreateCommentRequest struct {
	AuthorUsername string `json:"author_username" validate:"required,min=3"`
	Content        string `json:"content" validate:"required,max=5000"`
}

// ListFilter narrows ListPosts; empty fields are ignored
type ListFilter struct {
	Tag    string
	Author string
}

// PostResponse represents the response for a single post
type PostResponse struct {
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	Body           string             `json:"body"`
	AuthorUsername string             `json:"author_username"`
	Tags           []string           `json:"tags"`
	CoverImage     *string            `json:"cover_image"`
	Published      bool               `json:"published"`
	CreatedAt      *string            `json:"created_at,omitempty"`
	Comments       []*CommentResponse `json:"comments"`
}

// CommentResponse represents an embedded comment in a post response
type CommentResponse struct {
	AuthorUsername string `json:"author_username"`
	Content        string `json:"content"`
	CreatedAt      string `json:"created_at"`
}

// ToResponse converts a Post model to a PostResponse DTO
func (p *Post) ToResponse() *PostResponse {
	resp := &PostResponse{
		ID:             p.ID.Hex(),
		Title:          p.Title,
		Body:           p.Body,
		AuthorUsername: p.AuthorUsername,
		Tags:           p.Tags,
		CoverImage:     p.CoverImage,
		Published:      p.Published,
		Comments:       make([]*CommentResponse, len(p.Comments)),
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if p.CreatedAt != nil {
		created := p.CreatedAt.UTC().Format(timeFormat)
		resp.CreatedAt = &created
	}
	for i := range p.Comments {
		resp.Comments[i] = p.Comments[i].ToResponse()
	}
	return resp
}

// ToResponse converts a Comment model to a CommentResponse DTO
func (c *Comment) ToResponse() *CommentResponse {
	return &CommentResponse{
		AuthorUsername: c.AuthorUsername,
		Content:        c.Content,
		CreatedAt:      c.CreatedAt.UTC().Format(timeFormat),
	}
}
