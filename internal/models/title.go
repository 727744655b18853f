package models

// Title is one user-owned media record.
type Title struct {
	ID          int    `json:"id"`
	TitleName   string `json:"title_name"`
	Rating      *int   `json:"rating"` // nil means unrated
	TitleType   string `json:"title_type"`   // e.g. movie | series
	TitleStatus string `json:"title_status"` // free-form, e.g. watching | completed
	UserID      int    `json:"user_id"`
	UserName    string `json:"user_name"` // denormalized owner username
}

// TitlePatch is a partial update: nil fields are left untouched.
type TitlePatch struct {
	TitleName   *string `json:"title_name"`
	Rating      *int    `json:"rating"`
	TitleType   *string `json:"title_type"`
	TitleStatus *string `json:"title_status"`
	UserName    *string `json:"user_name"`
}

// IsEmpty reports whether the patch carries no assignments at all.
func (p TitlePatch) IsEmpty() bool {
	return p.TitleName == nil && p.Rating == nil && p.TitleType == nil &&
		p.TitleStatus == nil && p.UserName == nil
}

// TitleAggregate is one row of the cross-user ratings board:
// titles grouped by name with the mean of their non-null ratings.
type TitleAggregate struct {
	TitleName string   `json:"title_name"`
	TitleType string   `json:"title_type"`
	AvgRating *float64 `json:"avg_rating"` // nil when every row in the group is unrated
}
