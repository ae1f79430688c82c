package models

// ✅ Swipe decisions
const (
	DecisionLike    = "like"
	DecisionDislike = "dislike"
)
