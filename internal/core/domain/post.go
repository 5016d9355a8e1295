package domain

import "time"

type PostVisibility string

const (
	PostVisibilityPublic  PostVisibility = "PUBLIC"
	PostVisibilityPrivate PostVisibility = "PRIVATE"
)

const MaxPostTags = 10

type Post struct {
	ID            string
	Caption       string
	ImageURL      string
	ImagePublicID string
	Visibility    PostVisibility
	Likes         []string
	Comments      []Comment
	Tags          []string
	OwnerID       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Comment struct {
	ID        string
	Content   string
	Likes     []string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Image is what the media store hands back after an upload.
type Image struct {
	URL      string
	PublicID string
}

type CreatePostInput struct {
	Caption      string
	ImagePayload string
	Visibility   PostVisibility
	Tags         []string
}

type UpdatePostInput struct {
	Caption      *string
	ImagePayload *string
	Visibility   *PostVisibility
	Tags         []string
	TagsSet      bool
}

type CreateCommentInput struct {
	Content string
}

func (v PostVisibility) Valid() bool {
	return v == PostVisibilityPublic || v == PostVisibilityPrivate
}

// VisibleTo reports whether viewerID may read the post. Private posts are
// only visible to their owner; an empty viewerID is an anonymous caller.
func (p Post) VisibleTo(viewerID string) bool {
	if p.Visibility != PostVisibilityPrivate {
		return true
	}
	return viewerID != "" && viewerID == p.OwnerID
}

func (p *Post) Comment(commentID string) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			return &p.Comments[i]
		}
	}
	return nil
}

// ToggleMember adds userID to set when absent and removes it when present.
// The input slice is not modified.
func ToggleMember(set []string, userID string) []string {
	out := make([]string, 0, len(set)+1)
	removed := false
	for _, id := range set {
		if id == userID {
			removed = true
			continue
		}
		out = append(out, id)
	}
	if !removed {
		out = append(out, userID)
	}
	return out
}
