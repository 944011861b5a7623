package models

// UserDetail is a user hydrated with everything it owns or authored.
type UserDetail struct {
	User
	Posts    []Post    `json:"posts"`
	Comments []Comment `json:"comments"`
}

// CommentWithAuthor is a comment carrying its author, as nested inside PostDetail.
type CommentWithAuthor struct {
	Comment
	Author *User `json:"author"`
}

// PostDetail is a post hydrated with its author and its comments.
type PostDetail struct {
	Post
	Author   *User               `json:"author"`
	Comments []CommentWithAuthor `json:"comments"`
}

// CommentDetail is a comment hydrated with its author and post.
type CommentDetail struct {
	Comment
	Author *User `json:"author"`
	Post   *Post `json:"post"`
}

// ListFilter narrows a list query to one foreign-key column. A nil filter
// field means "not filtered on that column".
type ListFilter struct {
	AuthorID *uint
	PostID   *uint
}

// DeleteResult reports what a delete removed. Affected counts the target row
// only (0 or 1); the cascaded id sets are informational.
type DeleteResult struct {
	Affected int64  `json:"affected"`
	Posts    []uint `json:"posts,omitempty"`
	Comments []uint `json:"comments,omitempty"`
}

// NewUserDetail builds the response view from a preloaded user.
func NewUserDetail(u *User) *UserDetail {
	d := &UserDetail{User: *u, Posts: u.Posts, Comments: u.Comments}
	d.User.Posts, d.User.Comments = nil, nil
	if d.Posts == nil {
		d.Posts = []Post{}
	}
	if d.Comments == nil {
		d.Comments = []Comment{}
	}
	return d
}

// NewPostDetail builds the response view from a post preloaded with its
// author, comments and each comment's author.
func NewPostDetail(p *Post) *PostDetail {
	d := &PostDetail{Post: *p, Author: p.Author, Comments: make([]CommentWithAuthor, 0, len(p.Comments))}
	for _, c := range p.Comments {
		author := c.Author
		c.Author, c.Post = nil, nil
		d.Comments = append(d.Comments, CommentWithAuthor{Comment: c, Author: author})
	}
	d.Post.Author, d.Post.Comments = nil, nil
	return d
}

// NewCommentDetail builds the response view from a comment preloaded with
// its author and post.
func NewCommentDetail(c *Comment) *CommentDetail {
	d := &CommentDetail{Comment: *c, Author: c.Author, Post: c.Post}
	d.Comment.Author, d.Comment.Post = nil, nil
	return d
}
