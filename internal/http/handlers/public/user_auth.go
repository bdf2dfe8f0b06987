package public

import (
	"time"

	handlershared "github.com/pianao-store/internal/http/handlers/shared"
	"github.com/pianao-store/internal/http/response"
	"github.com/pianao-store/internal/models"
	"github.com/pianao-store/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserLoginRequest 登录请求，可携带游客购物车用于合并
type UserLoginRequest struct {
	Email       string                  `json:"email" binding:"required"`
	Password    string                  `json:"password" binding:"required"`
	GuestCartID string                  `json:"guest_cart_id"`
	LocalCart   []service.LocalCartItem `json:"local_cart"`
}

// UserSessionResponse 登录/注册响应
type UserSessionResponse struct {
	User      UserView                 `json:"user"`
	Token     string                   `json:"token"`
	ExpiresAt string                   `json:"expires_at"`
	Cart      *service.ReconcileResult `json:"cart,omitempty"`
}

// UserView 用户摘要
type UserView struct {
	ID          uint       `json:"id"`
	Email       string     `json:"email"`
	Nickname    string     `json:"nickname"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

func (h *Handler) buildUserView(user *models.User) UserView {
	view := UserView{
		ID:          user.ID,
		Email:       user.Email,
		LastLoginAt: user.LastLoginAt,
	}
	if profile, err := h.ProfileRepo.GetByUserID(user.ID); err == nil && profile != nil {
		view.Nickname = profile.Nickname
	}
	return view
}

func (h *Handler) buildSessionResponse(session *service.UserSession) UserSessionResponse {
	return UserSessionResponse{
		User:      h.buildUserView(session.User),
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
	}
}

// UserRegister 用户注册
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	session, err := h.UserAuthService.Register(req.Email, req.Password)
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, h.buildSessionResponse(session))
}

// UserLogin 用户登录；请求携带游客购物车时在登录后执行合并
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	session, err := h.UserAuthService.Login(req.Email, req.Password)
	if err != nil {
		respondWithMappedError(c, err, authErrorRules, response.CodeInternal, "error.internal")
		return
	}

	resp := h.buildSessionResponse(session)
	guestCartID := req.GuestCartID
	if guestCartID == "" {
		guestCartID = handlershared.GuestCartID(c)
	}
	if guestCartID != "" || len(req.LocalCart) > 0 {
		if !service.ValidGuestCartID(guestCartID) {
			guestCartID = ""
		}
		result, err := h.CartService.Reconcile(c.Request.Context(), service.ReconcileInput{
			UserID:      session.User.ID,
			GuestCartID: guestCartID,
			Items:       req.LocalCart,
		})
		if err != nil {
			// 合并失败不影响登录
			handlershared.RequestLog(c).Warnw("user_login_cart_reconcile_failed", "user_id", session.User.ID, "error", err)
		} else {
			resp.Cart = result
		}
	}
	response.Success(c, resp)
}

// GetMe 获取当前用户
func (h *Handler) GetMe(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetUserByID(uid)
	if err != nil {
		respondWithMappedError(c, err, []handlershared.MappedError{
			{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.not_found"},
		}, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, h.buildUserView(user))
}
