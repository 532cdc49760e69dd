package models

// Tag is a team-scoped vocabulary entry. Tags are owned collectively by the
// team; no single entity owns one. Unique per (Team, Text), case-sensitive.
type Tag struct {
	ID   int64
	Team int64
	Text string
}

// ItemRef identifies one taggable entity instance. Type discriminates the
// entity kind ("experiments", "items", ...).
type ItemRef struct {
	ID   int64
	Type string
}

// TagLink associates one Tag with one taggable entity. Several links may
// reference the same tag, and the same (item, tag) pair may be linked more
// than once.
type TagLink struct {
	Item  ItemRef
	TagID int64
}
