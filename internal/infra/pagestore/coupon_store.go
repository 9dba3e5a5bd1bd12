package pagestore

import (
	"context"

	"coupon-wallet/internal/domain/coupon"
	"coupon-wallet/internal/pkg/config"
)

// CouponStore reads and patches coupon records in the document store.
type CouponStore struct {
	client       *Client
	dataSourceID string
}

func NewCouponStore(client *Client, cfg config.StoreConfig) *CouponStore {
	return &CouponStore{
		client:       client,
		dataSourceID: cfg.CouponsDB,
	}
}

// Search lists coupons sorted by status ascending; a non-empty userID narrows
// the result to that owner.
func (s *CouponStore) Search(ctx context.Context, userID string) ([]coupon.Coupon, error) {
	var filter map[string]any
	if userID != "" {
		filter = map[string]any{
			"property":  "userId",
			"rich_text": map[string]any{"equals": userID},
		}
	}
	sorts := []map[string]any{
		{"property": "status", "direction": "ascending"},
	}

	pages, err := s.client.QueryDataSource(ctx, s.dataSourceID, filter, sorts)
	if err != nil {
		return nil, err
	}

	coupons := make([]coupon.Coupon, 0, len(pages))
	for _, page := range pages {
		if !page.IsPage() {
			continue
		}
		coupons = append(coupons, CouponFromPage(page))
	}
	return coupons, nil
}

func (s *CouponStore) Find(ctx context.Context, id string) (coupon.Coupon, error) {
	page, err := s.client.RetrievePage(ctx, id)
	if err != nil {
		return coupon.Coupon{}, err
	}
	return CouponFromPage(page), nil
}

// Apply translates a partial patch into an update call. Fields absent from
// the patch never appear in the request, so the store leaves them untouched.
func (s *CouponStore) Apply(ctx context.Context, id string, patch coupon.Patch) (coupon.Coupon, error) {
	props := PatchProperties(patch)
	if len(props) == 0 {
		return s.Find(ctx, id)
	}

	page, err := s.client.UpdatePage(ctx, id, props)
	if err != nil {
		return coupon.Coupon{}, err
	}
	return CouponFromPage(page), nil
}

// CouponFromPage normalizes a raw page into a Coupon. Properties whose type
// tag does not match degrade to empty values; category and status fall back
// to their documented defaults rather than carrying free-form text.
func CouponFromPage(page Page) coupon.Coupon {
	return coupon.Coupon{
		ID:          page.ID,
		UserID:      page.Text("userId"),
		Title:       page.TitleText("title"),
		Description: page.Text("description"),
		Category:    coupon.NewCategory(page.SelectName("category")),
		Status:      coupon.NewStatus(page.SelectName("status")),
		ExpiryDate:  page.DateStart("expiryDate"),
		UsedDate:    page.DateStart("usedDate"),
		Value:       page.Text("value"),
		Icon:        page.Text("icon"),
	}
}

// PatchProperties maps a partial patch onto store properties. Nil fields are
// omitted; empty strings clear the stored value (empty rich_text list, null
// date).
func PatchProperties(patch coupon.Patch) map[string]any {
	props := map[string]any{}

	if patch.Title != nil {
		props["title"] = titleProperty(*patch.Title)
	}
	if patch.Description != nil {
		props["description"] = richTextProperty(*patch.Description)
	}
	if patch.UserID != nil {
		props["userId"] = richTextProperty(*patch.UserID)
	}
	if patch.Category != nil {
		props["category"] = selectProperty(patch.Category.String())
	}
	if patch.Status != nil {
		props["status"] = selectProperty(patch.Status.String())
	}
	if patch.ExpiryDate != nil {
		props["expiryDate"] = dateProperty(*patch.ExpiryDate)
	}
	if patch.UsedDate != nil {
		props["usedDate"] = dateProperty(*patch.UsedDate)
	}
	if patch.Value != nil {
		props["value"] = richTextProperty(*patch.Value)
	}
	if patch.Icon != nil {
		props["icon"] = richTextProperty(*patch.Icon)
	}

	return props
}
