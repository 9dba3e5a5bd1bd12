//go:build unit

package builder

import (
	"coupon-wallet/internal/domain/coupon"
	"coupon-wallet/internal/infra/pagestore"

	"github.com/google/uuid"
)

type CouponBuilder struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Category    coupon.Category
	Status      coupon.Status
	ExpiryDate  string
	UsedDate    string
	Value       string
	Icon        string
}

func NewCouponBuilder() *CouponBuilder {
	return &CouponBuilder{
		ID:          uuid.NewString(),
		UserID:      uuid.NewString(),
		Title:       "コーヒー1杯無料",
		Description: "好きなタイミングで使えます",
		Category:    coupon.CategoryFood,
		Status:      coupon.StatusAvailable,
		ExpiryDate:  "2099-12-31",
	}
}

func (b *CouponBuilder) With(mutate func(*CouponBuilder)) *CouponBuilder {
	mutate(b)
	return b
}

func (b *CouponBuilder) Build() coupon.Coupon {
	return coupon.Coupon{
		ID:          b.ID,
		UserID:      b.UserID,
		Title:       b.Title,
		Description: b.Description,
		Category:    b.Category,
		Status:      b.Status,
		ExpiryDate:  b.ExpiryDate,
		UsedDate:    b.UsedDate,
		Value:       b.Value,
		Icon:        b.Icon,
	}
}

// BuildPage renders the same coupon as a raw store page, the shape the query
// and retrieve endpoints answer with.
func (b *CouponBuilder) BuildPage() pagestore.Page {
	props := map[string]pagestore.Property{
		"title": {
			Type:  "title",
			Title: []pagestore.RichText{{PlainText: b.Title}},
		},
		"userId": {
			Type:     "rich_text",
			RichText: []pagestore.RichText{{PlainText: b.UserID}},
		},
		"description": {
			Type:     "rich_text",
			RichText: []pagestore.RichText{{PlainText: b.Description}},
		},
		"category": {
			Type:   "select",
			Select: &pagestore.SelectOption{Name: b.Category.String()},
		},
		"status": {
			Type:   "select",
			Select: &pagestore.SelectOption{Name: b.Status.String()},
		},
	}
	if b.ExpiryDate != "" {
		props["expiryDate"] = pagestore.Property{
			Type: "date",
			Date: &pagestore.DateValue{Start: b.ExpiryDate},
		}
	}
	if b.UsedDate != "" {
		props["usedDate"] = pagestore.Property{
			Type: "date",
			Date: &pagestore.DateValue{Start: b.UsedDate},
		}
	}
	if b.Value != "" {
		props["value"] = pagestore.Property{
			Type:     "rich_text",
			RichText: []pagestore.RichText{{PlainText: b.Value}},
		}
	}
	if b.Icon != "" {
		props["icon"] = pagestore.Property{
			Type:     "rich_text",
			RichText: []pagestore.RichText{{PlainText: b.Icon}},
		}
	}

	return pagestore.Page{
		Object:     "page",
		ID:         b.ID,
		Properties: props,
	}
}

// Fluent builder methods
func (b *CouponBuilder) WithID(id string) *CouponBuilder {
	b.ID = id
	return b
}

func (b *CouponBuilder) WithUserID(userID string) *CouponBuilder {
	b.UserID = userID
	return b
}

func (b *CouponBuilder) WithTitle(title string) *CouponBuilder {
	b.Title = title
	return b
}

func (b *CouponBuilder) WithCategory(category coupon.Category) *CouponBuilder {
	b.Category = category
	return b
}

func (b *CouponBuilder) WithStatus(status coupon.Status) *CouponBuilder {
	b.Status = status
	return b
}

func (b *CouponBuilder) WithExpiryDate(expiryDate string) *CouponBuilder {
	b.ExpiryDate = expiryDate
	return b
}

func (b *CouponBuilder) WithValue(value string) *CouponBuilder {
	b.Value = value
	return b
}

func (b *CouponBuilder) WithIcon(icon string) *CouponBuilder {
	b.Icon = icon
	return b
}

func (b *CouponBuilder) AsUsed(usedDate string) *CouponBuilder {
	b.Status = coupon.StatusUsed
	b.UsedDate = usedDate
	return b
}

func (b *CouponBuilder) AsExpired() *CouponBuilder {
	b.Status = coupon.StatusExpired
	return b
}
