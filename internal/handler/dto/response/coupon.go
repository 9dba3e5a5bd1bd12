package response

import (
	"coupon-wallet/internal/domain/coupon"

	"github.com/jinzhu/copier"
)

type CouponResponse struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	ExpiryDate  string `json:"expiryDate,omitempty"`
	UsedDate    string `json:"usedDate,omitempty"`
	Value       string `json:"value,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

type CouponsResponse struct {
	Coupons []CouponResponse `json:"coupons"`
}

type SingleCouponResponse struct {
	Coupon CouponResponse `json:"coupon"`
}

func FromCoupon(c coupon.Coupon) CouponResponse {
	var resp CouponResponse
	_ = copier.Copy(&resp, &c)
	return resp
}

func FromCoupons(coupons []coupon.Coupon) CouponsResponse {
	out := make([]CouponResponse, 0, len(coupons))
	for _, c := range coupons {
		out = append(out, FromCoupon(c))
	}
	return CouponsResponse{Coupons: out}
}
