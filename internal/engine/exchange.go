package engine

import "context"

// Blueprint is a published roadmap plus the metadata needed to fork it.
type Blueprint struct {
	ID       string   `json:"id"`
	AuthorID string   `json:"authorId"`
	Role     string   `json:"role"`
	Goal     string   `json:"goal"`
	Votes    int      `json:"votes"`
	Roadmap  *Roadmap `json:"roadmap"`
}

type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

func (d VoteDirection) IsValid() bool {
	return d == VoteUp || d == VoteDown
}

// Exchange is the remote blueprint catalog the engine writes to. Reading
// (list/subscribe) is a presentation concern and lives with the callers.
type Exchange interface {
	Publish(ctx context.Context, bp Blueprint) error
	Unpublish(ctx context.Context, blueprintID string) error
	Vote(ctx context.Context, blueprintID string, dir VoteDirection) error
}
