package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	memberdomain "campus_lost_found/internal/member/domain"
	errprocess "campus_lost_found/pkg/err"
	"campus_lost_found/pkg/logger"
	"campus_lost_found/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ConnectCheck check api connect start
// @Summary Check API status
// @Description Returns a simple confirmation message
// @Tags Shared
// @Success 200 {string} string "lost & found api start!"
// @Router / [get]
func ConnectCheck(c *fiber.Ctx) error {
	return c.SendString("lost & found api start!")
}

// DebugLogFlag toggle debug log flag
// @Summary Toggle Debug Log Flag
// @Description Enable or disable debug logging for a service
// @Tags Shared
// @Param service query string true "Service name"
// @Param status query bool true "Debug status"
// @Success 200 {string} string "Service debug mode updated"
// @Failure 400 {string} string "Invalid status value"
// @Router /debug [post]
func DebugLogFlag(c *fiber.Ctx) error {
	query, err := url.ParseQuery(string(c.Context().QueryArgs().QueryString()))
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	service := query.Get("service")
	statusStr := query.Get("status")
	logger.Log.Info("debug", zap.String("status", statusStr))
	status, err := strconv.ParseBool(statusStr)
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	switch service {
	default:
		logger.Log.SetDebugMode(status)
	}
	return c.SendString(fmt.Sprintf("service[%s]: debug mode is : %t", service, status))
}

// ErrorRes error body
type ErrorRes struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

// viewerFrom JWTMiddleware 寫入的身分, 未登入時為匿名
func viewerFrom(c *fiber.Ctx) memberdomain.Viewer {
	id, _ := c.Locals(middlewares.TokenMemberID).(string)
	email, _ := c.Locals(middlewares.TokenEmail).(string)
	return memberdomain.Viewer{MemberID: id, Email: email}
}

// respondError 依錯誤種類回應, 500 不回傳內部訊息
func respondError(c *fiber.Ctx, err error) error {
	status := errprocess.HTTPStatus(err)
	res := ErrorRes{Error: err.Error()}

	switch status {
	case fiber.StatusUnauthorized:
		res.Redirect = middlewares.AuthRedirect
	case fiber.StatusInternalServerError:
		logger.Log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		res.Error = "internal server error"
	}
	return c.Status(status).JSON(res)
}

func badRequest(c *fiber.Ctx, msg string) error {
	return respondError(c, errprocess.Wrap(errprocess.ErrValidation, "%s", msg))
}

var errEmptyBody = errors.New("invalid request")
