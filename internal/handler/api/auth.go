package api

import (
	"errors"
	"net/http"

	"coupon-wallet/internal/domain/user"
	reqdto "coupon-wallet/internal/handler/dto/request"
	resdto "coupon-wallet/internal/handler/dto/response"
	"coupon-wallet/internal/handler/middleware"
	"coupon-wallet/internal/pkg/config"
	"coupon-wallet/internal/pkg/cookie"
	"coupon-wallet/internal/pkg/session"
	"coupon-wallet/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	sessions    *session.Service
	cfg         config.Config
}

func NewAuthHandler(authUseCase usecase.AuthUseCase, sessions *session.Service, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		sessions:    sessions,
		cfg:         cfg,
	}
}

// @Summary User login
// @Description Login with email and password; sets the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "メールアドレスとパスワードを入力してください",
		})
		return
	}

	token, u, err := h.authUseCase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound), errors.Is(err, usecase.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "メールアドレスまたはパスワードが正しくありません",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "サーバーエラーが発生しました",
			})
		}
		return
	}

	cookie.SetSessionCookie(c, h.cfg.Cookie, token, h.sessions.Duration())

	c.JSON(http.StatusOK, resdto.LoginResponse{
		Message: "ログインしました",
		User:    u.Public(),
	})
}

// @Summary User registration
// @Description Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.RegisterRequest true "Register request"
// @Success 201 {object} resdto.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req reqdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "メールアドレス、名前、パスワードを入力してください",
		})
		return
	}

	u, err := h.authUseCase.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{
				"error": "このメールアドレスは既に登録されています",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "サーバーエラーが発生しました",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.LoginResponse{
		Message: "登録しました",
		User:    u.Public(),
	})
}

// @Summary User logout
// @Description Delete the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} resdto.MessageResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearSessionCookie(c, h.cfg.Cookie)

	c.JSON(http.StatusOK, resdto.MessageResponse{
		Message: "ログアウトしました",
	})
}

// @Summary Get current user
// @Description Return the user behind the session cookie
// @Tags auth
// @Produce json
// @Success 200 {object} resdto.MeResponse
// @Failure 401 {object} map[string]string
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "認証されていません",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.MeResponse{
		User: sessionUser(sess),
	})
}

func sessionUser(sess session.Session) user.PublicView {
	return user.PublicView{
		ID:    sess.UserID,
		Email: sess.Email,
		Name:  sess.Name,
	}
}
