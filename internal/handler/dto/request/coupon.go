package request

import (
	"coupon-wallet/internal/domain/coupon"
)

// UpdateCouponRequest is a partial coupon. Pointer fields distinguish "not in
// the patch" (nil) from "present but empty" (clears the stored value).
type UpdateCouponRequest struct {
	UserID      *string `json:"userId"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Status      *string `json:"status"`
	ExpiryDate  *string `json:"expiryDate"`
	UsedDate    *string `json:"usedDate"`
	Value       *string `json:"value"`
	Icon        *string `json:"icon"`
}

func (r *UpdateCouponRequest) ToPatch() coupon.Patch {
	patch := coupon.Patch{
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		ExpiryDate:  r.ExpiryDate,
		UsedDate:    r.UsedDate,
		Value:       r.Value,
		Icon:        r.Icon,
	}

	if r.Category != nil {
		category := coupon.NewCategory(*r.Category)
		patch.Category = &category
	}
	if r.Status != nil {
		status := coupon.NewStatus(*r.Status)
		patch.Status = &status
	}

	return patch
}
