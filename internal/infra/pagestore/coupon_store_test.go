//go:build unit

package pagestore_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"coupon-wallet/internal/domain/coupon"
	"coupon-wallet/internal/infra/pagestore"
	"coupon-wallet/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCouponStore(baseURL string) *pagestore.CouponStore {
	cfg := storeConfig(baseURL)
	cfg.CouponsDB = "ds-coupons"
	return pagestore.NewCouponStore(pagestore.NewClient(cfg, testLogger()), cfg)
}

func TestCouponFromPage(t *testing.T) {
	t.Run("全プロパティの正規化", func(t *testing.T) {
		b := builder.NewCouponBuilder().
			WithTitle("映画チケット").
			WithCategory(coupon.CategoryActivity).
			WithValue("2000円").
			WithIcon("🎬").
			AsUsed("2024-06-01T10:00:00Z")

		actual := pagestore.CouponFromPage(b.BuildPage())
		expected := b.Build()

		if diff := cmp.Diff(expected, actual); diff != "" {
			t.Errorf("Coupon mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("型タグ不一致のプロパティは空値に落ちる", func(t *testing.T) {
		page := builder.NewCouponBuilder().BuildPage()
		// status が select のはずが rich_text で入っている壊れたレコード
		page.Properties["status"] = pagestore.Property{
			Type:     "rich_text",
			RichText: []pagestore.RichText{{PlainText: "used"}},
		}

		actual := pagestore.CouponFromPage(page)
		assert.Equal(t, coupon.StatusAvailable, actual.Status)
	})

	t.Run("自由記述のselect値は既定値に正規化", func(t *testing.T) {
		page := builder.NewCouponBuilder().BuildPage()
		page.Properties["category"] = pagestore.Property{
			Type:   "select",
			Select: &pagestore.SelectOption{Name: "旅行"},
		}
		page.Properties["status"] = pagestore.Property{
			Type:   "select",
			Select: &pagestore.SelectOption{Name: "Pending"},
		}

		actual := pagestore.CouponFromPage(page)
		assert.Equal(t, coupon.CategorySpecial, actual.Category)
		assert.Equal(t, coupon.StatusAvailable, actual.Status)
	})

	t.Run("プロパティ欠損はゼロ値のクーポンになる", func(t *testing.T) {
		page := pagestore.Page{Object: "page", ID: "page-1", Properties: map[string]pagestore.Property{}}

		actual := pagestore.CouponFromPage(page)
		assert.Equal(t, "page-1", actual.ID)
		assert.Empty(t, actual.Title)
		assert.Empty(t, actual.ExpiryDate)
		assert.Equal(t, coupon.CategorySpecial, actual.Category)
		assert.Equal(t, coupon.StatusAvailable, actual.Status)
	})
}

func TestPatchProperties(t *testing.T) {
	t.Run("nilフィールドはリクエストに現れない", func(t *testing.T) {
		title := "新タイトル"
		props := pagestore.PatchProperties(coupon.Patch{Title: &title})

		require.Len(t, props, 1)
		assert.Equal(t, map[string]any{
			"title": []any{map[string]any{"text": map[string]any{"content": "新タイトル"}}},
		}, props["title"])
	})

	t.Run("空文字は保存値のクリアになる", func(t *testing.T) {
		empty := ""
		props := pagestore.PatchProperties(coupon.Patch{
			Description: &empty,
			ExpiryDate:  &empty,
		})

		assert.Equal(t, map[string]any{"rich_text": []any{}}, props["description"])
		assert.Equal(t, map[string]any{"date": nil}, props["expiryDate"])
	})

	t.Run("selectフィールドは名前付きオプションになる", func(t *testing.T) {
		used := coupon.StatusUsed
		gift := coupon.CategoryGift
		props := pagestore.PatchProperties(coupon.Patch{Status: &used, Category: &gift})

		assert.Equal(t, map[string]any{"select": map[string]any{"name": "used"}}, props["status"])
		assert.Equal(t, map[string]any{"select": map[string]any{"name": "gift"}}, props["category"])
	})

	t.Run("空パッチは空マップ", func(t *testing.T) {
		assert.Empty(t, pagestore.PatchProperties(coupon.Patch{}))
	})
}

func TestCouponStoreSearch(t *testing.T) {
	owner := "user-1"
	first := builder.NewCouponBuilder().WithUserID(owner)
	second := builder.NewCouponBuilder().WithUserID(owner).AsUsed("2024-06-01T10:00:00Z")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/data_sources/ds-coupons/query", r.URL.Path)

		var req struct {
			Filter map[string]any   `json:"filter"`
			Sorts  []map[string]any `json:"sorts"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "userId", req.Filter["property"])
		assert.Equal(t, map[string]any{"equals": owner}, req.Filter["rich_text"])
		require.Len(t, req.Sorts, 1)
		assert.Equal(t, "status", req.Sorts[0]["property"])
		assert.Equal(t, "ascending", req.Sorts[0]["direction"])

		// ページでないオブジェクトは読み飛ばされる
		_ = json.NewEncoder(w).Encode(map[string]any{
			"results":  []any{first.BuildPage(), map[string]any{"object": "error"}, second.BuildPage()},
			"has_more": false,
		})
	}))
	defer srv.Close()

	coupons, err := newCouponStore(srv.URL).Search(t.Context(), owner)
	require.NoError(t, err)
	require.Len(t, coupons, 2)
	assert.Equal(t, first.ID, coupons[0].ID)
	assert.Equal(t, second.ID, coupons[1].ID)
}

func TestCouponStoreSearchWithoutOwner(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.NotContains(t, req, "filter")

		_ = json.NewEncoder(w).Encode(queryResult())
	}))
	defer srv.Close()

	coupons, err := newCouponStore(srv.URL).Search(t.Context(), "")
	require.NoError(t, err)
	assert.Empty(t, coupons)
}

func TestCouponStoreApply(t *testing.T) {
	t.Run("パッチはPATCHリクエストになる", func(t *testing.T) {
		b := builder.NewCouponBuilder().AsUsed("2024-06-01T10:00:00Z")

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "/v1/pages/"+b.ID, r.URL.Path)

			var req struct {
				Properties map[string]any `json:"properties"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Contains(t, req.Properties, "status")
			assert.Contains(t, req.Properties, "usedDate")
			assert.NotContains(t, req.Properties, "title")

			_ = json.NewEncoder(w).Encode(b.BuildPage())
		}))
		defer srv.Close()

		used := coupon.StatusUsed
		usedDate := "2024-06-01T10:00:00Z"
		updated, err := newCouponStore(srv.URL).Apply(t.Context(), b.ID, coupon.Patch{
			Status:   &used,
			UsedDate: &usedDate,
		})
		require.NoError(t, err)
		assert.Equal(t, coupon.StatusUsed, updated.Status)
		assert.Equal(t, usedDate, updated.UsedDate)
	})

	t.Run("空パッチは更新せず現状を返す", func(t *testing.T) {
		b := builder.NewCouponBuilder()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/v1/pages/"+b.ID, r.URL.Path)
			_ = json.NewEncoder(w).Encode(b.BuildPage())
		}))
		defer srv.Close()

		got, err := newCouponStore(srv.URL).Apply(t.Context(), b.ID, coupon.Patch{})
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)
	})
}

