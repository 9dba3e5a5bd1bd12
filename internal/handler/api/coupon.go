package api

import (
	"errors"
	"net/http"

	reqdto "coupon-wallet/internal/handler/dto/request"
	resdto "coupon-wallet/internal/handler/dto/response"
	"coupon-wallet/internal/handler/middleware"
	"coupon-wallet/internal/pkg/config"
	"coupon-wallet/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CouponHandler struct {
	couponUseCase usecase.CouponUseCase
	adminUserID   string
}

func NewCouponHandler(couponUseCase usecase.CouponUseCase, cfg config.Config) *CouponHandler {
	return &CouponHandler{
		couponUseCase: couponUseCase,
		adminUserID:   cfg.Admin.UserID,
	}
}

// @Summary List coupons
// @Description List coupons visible to the session; expiry is reconciled on read
// @Tags coupons
// @Produce json
// @Param userId query string false "Owner filter (admin only)"
// @Success 200 {object} resdto.CouponsResponse
// @Failure 401 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/coupons [get]
func (h *CouponHandler) ListCoupons(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "認証されていません",
		})
		return
	}

	// Non-admin sessions are always pinned to their own coupons; the admin
	// may filter by any owner or omit the filter to see everything.
	ownerID := sess.UserID
	if h.isAdmin(sess.UserID) {
		ownerID = c.Query("userId")
	}

	coupons, err := h.couponUseCase.List(c.Request.Context(), ownerID)
	if err != nil {
		if errors.Is(err, usecase.ErrStoreNotConfigured) {
			h.respondStoreNotConfigured(c)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "クーポンの取得に失敗しました",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromCoupons(coupons))
}

// @Summary Get coupon
// @Description Get a single coupon; expiry is reconciled on read
// @Tags coupons
// @Produce json
// @Param id path string true "Coupon ID"
// @Success 200 {object} resdto.SingleCouponResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/coupons/{id} [get]
func (h *CouponHandler) GetCoupon(c *gin.Context) {
	id, ok := h.couponID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "クーポンが見つかりません",
		})
		return
	}

	found, err := h.couponUseCase.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCouponNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "クーポンが見つかりません",
			})
		case errors.Is(err, usecase.ErrStoreNotConfigured):
			h.respondStoreNotConfigured(c)
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "クーポンの取得に失敗しました",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.SingleCouponResponse{Coupon: resdto.FromCoupon(found)})
}

// @Summary Update coupon
// @Description Partially update a coupon; status "used" triggers redemption preconditions and the chat notification
// @Tags coupons
// @Accept json
// @Produce json
// @Param id path string true "Coupon ID"
// @Param request body reqdto.UpdateCouponRequest true "Partial coupon"
// @Success 200 {object} resdto.SingleCouponResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/coupons/{id} [patch]
func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	idStr := c.Param("id")
	if _, err := uuid.Parse(idStr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "クーポンIDの形式が正しくありません",
		})
		return
	}

	var req reqdto.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "リクエストの形式が正しくありません",
		})
		return
	}

	actorName := "不明なユーザー"
	if sess, ok := middleware.GetSession(c); ok && sess.Name != "" {
		actorName = sess.Name
	}

	updated, err := h.couponUseCase.Update(c.Request.Context(), idStr, req.ToPatch(), actorName)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrCouponAlreadyUsed):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "このクーポンはすでに使用済みです",
			})
		case errors.Is(err, usecase.ErrCouponExpired):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "有効期限切れのため使用できません",
			})
		case errors.Is(err, usecase.ErrCouponNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "クーポンが見つかりません",
			})
		case errors.Is(err, usecase.ErrStoreNotConfigured):
			h.respondStoreNotConfigured(c)
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "クーポンの更新に失敗しました",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.SingleCouponResponse{Coupon: resdto.FromCoupon(updated)})
}

func (h *CouponHandler) isAdmin(userID string) bool {
	return h.adminUserID != "" && userID == h.adminUserID
}

func (h *CouponHandler) couponID(c *gin.Context) (string, bool) {
	idStr := c.Param("id")
	if _, err := uuid.Parse(idStr); err != nil {
		return "", false
	}
	return idStr, true
}

func (h *CouponHandler) respondStoreNotConfigured(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"error":   "store is not configured",
		"message": "STORE_API_KEY または STORE_COUPONS_DB が設定されていません。",
	})
}
