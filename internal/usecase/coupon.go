package usecase

import (
	"context"
	"log/slog"
	"time"

	"coupon-wallet/internal/domain/coupon"
	"coupon-wallet/internal/infra"
	"coupon-wallet/internal/pkg/clock"
	"coupon-wallet/internal/pkg/errs"
)

var (
	ErrCouponNotFound     = errs.New("coupon not found")
	ErrCouponAlreadyUsed  = errs.New("coupon already used")
	ErrCouponExpired      = errs.New("coupon expired")
	ErrStoreNotConfigured = errs.New("store not configured")
)

// CouponStore is the remote record store seen through coupon-shaped calls.
type CouponStore interface {
	Search(ctx context.Context, userID string) ([]coupon.Coupon, error)
	Find(ctx context.Context, id string) (coupon.Coupon, error)
	Apply(ctx context.Context, id string, patch coupon.Patch) (coupon.Coupon, error)
}

// Notifier receives the redemption side effect. Implementations must be
// fire-and-forget; a delivery failure never reaches the caller.
type Notifier interface {
	CouponUsed(c coupon.Coupon, actorName string)
}

// CouponUseCase owns the coupon lifecycle: normalization happens in the
// store, expiry reconciliation happens on every read, and Update enforces the
// single legal write transition.
type CouponUseCase interface {
	List(ctx context.Context, ownerID string) ([]coupon.Coupon, error)
	Get(ctx context.Context, id string) (coupon.Coupon, error)
	Update(ctx context.Context, id string, patch coupon.Patch, actorName string) (coupon.Coupon, error)
}

type couponUseCaseImpl struct {
	store    CouponStore
	notifier Notifier
	clock    clock.Clock
	logger   *slog.Logger
}

func NewCouponUseCase(store CouponStore, notifier Notifier, clk clock.Clock, logger *slog.Logger) CouponUseCase {
	return &couponUseCaseImpl{
		store:    store,
		notifier: notifier,
		clock:    clk,
		logger:   logger,
	}
}

// List returns the coupons visible to ownerID (empty means all), each passed
// through expiry reconciliation.
func (u *couponUseCaseImpl) List(ctx context.Context, ownerID string) ([]coupon.Coupon, error) {
	coupons, err := u.store.Search(ctx, ownerID)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	for i, c := range coupons {
		coupons[i] = u.reconcileExpiry(ctx, c)
	}
	return coupons, nil
}

func (u *couponUseCaseImpl) Get(ctx context.Context, id string) (coupon.Coupon, error) {
	c, err := u.store.Find(ctx, id)
	if err != nil {
		return coupon.Coupon{}, mapStoreErr(err)
	}
	return u.reconcileExpiry(ctx, c), nil
}

// Update applies a partial patch. A patch asking for status=used is a
// redemption and goes through the precondition path; everything else is a
// plain field update.
func (u *couponUseCaseImpl) Update(ctx context.Context, id string, patch coupon.Patch, actorName string) (coupon.Coupon, error) {
	if patch.RequestsRedemption() {
		return u.redeem(ctx, id, patch, actorName)
	}

	updated, err := u.store.Apply(ctx, id, patch)
	if err != nil {
		return coupon.Coupon{}, mapStoreErr(err)
	}
	return updated, nil
}

// redeem re-fetches the persisted record before mutating so the preconditions
// run against current state, not a client snapshot. Two concurrent calls can
// still both pass the check before either write lands; the store offers no
// conditional writes, so that race is accepted.
func (u *couponUseCaseImpl) redeem(ctx context.Context, id string, patch coupon.Patch, actorName string) (coupon.Coupon, error) {
	current, err := u.store.Find(ctx, id)
	if err != nil {
		return coupon.Coupon{}, mapStoreErr(err)
	}

	if current.Status == coupon.StatusUsed {
		return coupon.Coupon{}, ErrCouponAlreadyUsed
	}
	if coupon.IsExpired(current.ExpiryDate, u.clock.Now()) {
		return coupon.Coupon{}, ErrCouponExpired
	}

	usedDate := u.clock.Now().Format(time.RFC3339)
	patch.UsedDate = &usedDate

	updated, err := u.store.Apply(ctx, id, patch)
	if err != nil {
		return coupon.Coupon{}, mapStoreErr(err)
	}

	// The redemption is durable here; the notification is best-effort.
	u.notifier.CouponUsed(updated, actorName)

	return updated, nil
}

// reconcileExpiry persists status=expired for a lapsed coupon as a side
// effect of reading it. Only available coupons transition: used and expired
// are terminal. A failed persist is logged and the stale coupon returned —
// the read path never fails because the sync did.
func (u *couponUseCaseImpl) reconcileExpiry(ctx context.Context, c coupon.Coupon) coupon.Coupon {
	if c.Status != coupon.StatusAvailable {
		return c
	}
	if !coupon.IsExpired(c.ExpiryDate, u.clock.Now()) {
		return c
	}

	expired := coupon.StatusExpired
	updated, err := u.store.Apply(ctx, c.ID, coupon.Patch{Status: &expired})
	if err != nil {
		u.logger.Warn("期限切れステータスの同期に失敗しました", "coupon_id", c.ID, "error", err.Error())
		return c
	}
	return updated
}

func mapStoreErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, ErrCouponNotFound)
	case infra.IsKind(err, infra.KindNotConfigured):
		return errs.Mark(err, ErrStoreNotConfigured)
	default:
		return err
	}
}
