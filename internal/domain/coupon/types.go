package coupon

import "strings"

type Status string

const (
	StatusAvailable Status = "available"
	StatusUsed      Status = "used"
	StatusExpired   Status = "expired"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusUsed, StatusExpired:
		return true
	default:
		return false
	}
}

// NewStatus lower-cases and matches against the known statuses. Values the
// store hands back that match nothing normalize to "available" so a malformed
// record never leaks a free-form status to clients.
func NewStatus(s string) Status {
	status := Status(strings.ToLower(s))
	if !status.IsValid() {
		return StatusAvailable
	}
	return status
}

type Category string

const (
	CategoryFood     Category = "food"
	CategoryFavor    Category = "favor"
	CategoryGift     Category = "gift"
	CategoryActivity Category = "activity"
	CategorySpecial  Category = "special"
)

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryFood, CategoryFavor, CategoryGift, CategoryActivity, CategorySpecial:
		return true
	default:
		return false
	}
}

// NewCategory lower-cases and matches; anything unrecognized becomes "special".
func NewCategory(s string) Category {
	category := Category(strings.ToLower(s))
	if !category.IsValid() {
		return CategorySpecial
	}
	return category
}
