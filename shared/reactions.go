package shared

type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
	ReactionLove    ReactionType = "love"
	ReactionFire    ReactionType = "fire"
)

var ReactionTypes = []ReactionType{ReactionLike, ReactionDislike, ReactionLove, ReactionFire}

func (t ReactionType) IsValid() bool {
	switch t {
	case ReactionLike, ReactionDislike, ReactionLove, ReactionFire:
		return true
	}
	return false
}

type ToggleResult string

const (
	ToggleResultAdded   ToggleResult = "added"
	ToggleResultRemoved ToggleResult = "removed"
)

// ReactionCounts always carries all four keys, zero-filled when a type has
// no reactions.
type ReactionCounts struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
	Loves    int64 `json:"loves"`
	Fires    int64 `json:"fires"`
}
