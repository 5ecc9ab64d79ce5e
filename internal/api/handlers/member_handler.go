package handlers

import (
	"strings"
	"time"

	"campus_lost_found/internal/member/app"
	"campus_lost_found/internal/member/domain"
	"campus_lost_found/pkg/logger"
	"campus_lost_found/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// MemberHandler 处理用户相关的 HTTP 请求
type MemberHandler struct {
	memberUC  app.MemberUseCase
	cookieTTL time.Duration
}

// NewMemberHandler 创建新的 MemberHandler, cookieTTL 與 jwt 有效期一致
func NewMemberHandler(memberUC app.MemberUseCase, cookieTTL time.Duration) *MemberHandler {
	return &MemberHandler{memberUC: memberUC, cookieTTL: cookieTTL}
}

// RegisterReq 注册请求
type RegisterReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// LoginReq 登录请求
type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRes 登录结果
type LoginRes struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Register 注册新用户
// @Summary 注册新用户
// @Description 处理用户注册请求
// @Tags Members
// @Accept json
// @Produce json
// @Param request body RegisterReq true "注册请求"
// @Success 201 {object} map[string]string "注册成功"
// @Failure 400 {object} ErrorRes "请求错误"
// @Failure 409 {object} ErrorRes "email 已存在"
// @Router /member/register [post]
func (h *MemberHandler) Register(c *fiber.Ctx) error {
	var req RegisterReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, errEmptyBody.Error())
	}

	logger.Log.Debug("Register request", zap.String("email", req.Email))

	if err := h.memberUC.Register(c.UserContext(), req.Email, req.Password, req.FullName); err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "register success"})
}

// Login 用户登录
// @Summary 用户登录
// @Description 用户通过邮箱和密码登录, token 同时写入 cookie
// @Tags Members
// @Accept json
// @Produce json
// @Param request body LoginReq true "用户登录信息"
// @Success 200 {object} LoginRes "登录成功"
// @Failure 400 {object} ErrorRes "请求错误"
// @Failure 401 {object} ErrorRes "登录失败"
// @Router /member/login [post]
func (h *MemberHandler) Login(c *fiber.Ctx) error {
	var req LoginReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, errEmptyBody.Error())
	}

	tk, err := h.memberUC.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middlewares.CookieToken,
		Value:    tk,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(h.cookieTTL),
	})
	return c.JSON(LoginRes{Token: tk, Message: "login success"})
}

// Logout 用户登出
// @Summary 用户登出
// @Description 注销用户会话
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string "注销成功"
// @Failure 401 {object} ErrorRes "未登录"
// @Router /member/logout [post]
func (h *MemberHandler) Logout(c *fiber.Ctx) error {
	raw, _ := c.Locals(middlewares.TokenRaw).(string)
	if err := h.memberUC.Logout(c.UserContext(), raw); err != nil {
		return respondError(c, err)
	}

	c.ClearCookie(middlewares.CookieToken)
	return c.JSON(fiber.Map{"message": "logout success"})
}

// Me 目前登录者资料
// @Summary 目前登录者资料
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.Profile
// @Failure 401 {object} ErrorRes "未登录"
// @Router /member/me [get]
func (h *MemberHandler) Me(c *fiber.Ctx) error {
	p, err := h.memberUC.Me(c.UserContext(), viewerFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// FindByEmail 查找用户信息
// @Summary 查找用户信息
// @Description 根据邮箱查找用户公开资料
// @Tags Members
// @Produce json
// @Param email query string true "用户邮箱"
// @Success 200 {object} domain.Profile "用户信息"
// @Failure 400 {object} ErrorRes "请求错误"
// @Failure 404 {object} ErrorRes "未找到用户"
// @Router /member/find [get]
func (h *MemberHandler) FindByEmail(c *fiber.Ctx) error {
	email := strings.ToLower(strings.TrimSpace(c.Query("email")))
	if email == "" {
		return badRequest(c, "email is required")
	}

	member, err := h.memberUC.FindMember(c.UserContext(), &domain.MemberQuery{Email: &email})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(member.Profile())
}
