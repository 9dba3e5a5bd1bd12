package coupon

// Coupon is the normalized view of a stored record. Field names mirror the
// JSON surface; ExpiryDate and UsedDate are date or date-time strings as the
// store holds them ("" means absent).
type Coupon struct {
	ID          string   `json:"id"`
	UserID      string   `json:"userId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Status      Status   `json:"status"`
	ExpiryDate  string   `json:"expiryDate,omitempty"`
	UsedDate    string   `json:"usedDate,omitempty"`
	Value       string   `json:"value,omitempty"`
	Icon        string   `json:"icon,omitempty"`
}

// Patch is a partial update. A nil field is left untouched server-side; a
// non-nil empty string clears the stored value. "Absent from the patch" and
// "present but empty" are distinct cases.
type Patch struct {
	UserID      *string
	Title       *string
	Description *string
	Category    *Category
	Status      *Status
	ExpiryDate  *string
	UsedDate    *string
	Value       *string
	Icon        *string
}

func (p Patch) IsZero() bool {
	return p.UserID == nil &&
		p.Title == nil &&
		p.Description == nil &&
		p.Category == nil &&
		p.Status == nil &&
		p.ExpiryDate == nil &&
		p.UsedDate == nil &&
		p.Value == nil &&
		p.Icon == nil
}

// RequestsRedemption reports whether the patch asks for the available→used
// transition, which carries preconditions and a notification side effect.
func (p Patch) RequestsRedemption() bool {
	return p.Status != nil && *p.Status == StatusUsed
}
