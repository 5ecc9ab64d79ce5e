package handlers

import (
	"mime/multipart"
	"strings"

	"campus_lost_found/internal/item/app"
	"campus_lost_found/internal/item/domain"

	"github.com/gofiber/fiber/v2"
)

const imageField = "image"

// ItemHandler 处理 lost & found item 的 HTTP 请求
type ItemHandler struct {
	itemUC app.ItemUseCase
}

// NewItemHandler create ItemHandler
func NewItemHandler(itemUC app.ItemUseCase) *ItemHandler {
	return &ItemHandler{itemUC: itemUC}
}

// ResolveReq resolve body
type ResolveReq struct {
	SuccessStory string `json:"success_story"`
}

// ImageRes upload result
type ImageRes struct {
	URL string `json:"url"`
}

// List 条件查询
// @Summary 查询项目
// @Description status / category 为 All 或空白时不限制, search 比对 title / description / location
// @Tags Items
// @Produce json
// @Param status query string false "lost | found | All"
// @Param category query string false "category or All"
// @Param search query string false "keyword"
// @Success 200 {array} domain.Item
// @Failure 400 {object} ErrorRes
// @Router /items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var f domain.ItemFilter
	if err := c.QueryParser(&f); err != nil {
		return badRequest(c, "invalid query")
	}
	items, err := h.itemUC.ListItems(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(nonNil(items))
}

// Recent 首页最新未解决项目
// @Summary 最新项目
// @Tags Items
// @Produce json
// @Param limit query int false "default 6, max 50"
// @Success 200 {array} domain.Item
// @Router /items/recent [get]
func (h *ItemHandler) Recent(c *fiber.Ctx) error {
	items, err := h.itemUC.RecentItems(c.UserContext(), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(nonNil(items))
}

// Stories 成功故事
// @Summary 已解决且有故事的项目
// @Tags Items
// @Produce json
// @Param limit query int false "default 6, max 50"
// @Success 200 {array} domain.Item
// @Router /items/stories [get]
func (h *ItemHandler) Stories(c *fiber.Ctx) error {
	items, err := h.itemUC.SuccessStories(c.UserContext(), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(nonNil(items))
}

// Stats 统计
// @Summary 项目统计
// @Tags Items
// @Produce json
// @Success 200 {object} domain.ItemStats
// @Router /items/stats [get]
func (h *ItemHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.itemUC.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// Get 单一项目
// @Summary 项目详情
// @Tags Items
// @Produce json
// @Param id path string true "item id"
// @Success 200 {object} domain.Item
// @Failure 404 {object} ErrorRes
// @Router /items/{id} [get]
func (h *ItemHandler) Get(c *fiber.Ctx) error {
	item, err := h.itemUC.GetItem(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

// Mine 自己发布的项目
// @Summary 我的项目
// @Tags Items
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Item
// @Failure 401 {object} ErrorRes
// @Router /items/mine [get]
func (h *ItemHandler) Mine(c *fiber.Ctx) error {
	items, err := h.itemUC.ListUserItems(c.UserContext(), viewerFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(nonNil(items))
}

// Create 发布项目, multipart 可附带 image
// @Summary 发布项目
// @Tags Items
// @Accept multipart/form-data
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param title formData string true "title"
// @Param category formData string true "category"
// @Param status formData string true "lost | found"
// @Param location formData string true "location"
// @Param item_date formData string true "YYYY-MM-DD"
// @Param description formData string false "description"
// @Param contact_email formData string false "default: 登录 email"
// @Param image formData file false "png / jpg / jpeg / gif / webp"
// @Success 201 {object} domain.Item
// @Failure 400 {object} ErrorRes
// @Failure 401 {object} ErrorRes
// @Router /items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var req domain.CreateItemReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, errEmptyBody.Error())
	}

	if isMultipart(c) {
		if fh, err := c.FormFile(imageField); err == nil {
			up, closeFn, err := openUpload(fh)
			if err != nil {
				return badRequest(c, "cannot read image")
			}
			defer closeFn()
			req.Image = up
		}
	}

	item, err := h.itemUC.CreateItem(c.UserContext(), viewerFrom(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// UploadImage 单独上传图片, 回传公开 url
// @Summary 上传图片
// @Tags Items
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "png / jpg / jpeg / gif / webp"
// @Success 201 {object} ImageRes
// @Failure 400 {object} ErrorRes
// @Failure 401 {object} ErrorRes
// @Router /items/images [post]
func (h *ItemHandler) UploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile(imageField)
	if err != nil {
		return badRequest(c, "image is required")
	}
	up, closeFn, err := openUpload(fh)
	if err != nil {
		return badRequest(c, "cannot read image")
	}
	defer closeFn()

	url, err := h.itemUC.UploadImage(c.UserContext(), viewerFrom(c), *up)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ImageRes{URL: url})
}

// Resolve 标记已解决, 只有发布者可操作
// @Summary 标记已解决
// @Tags Items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "item id"
// @Param request body ResolveReq false "success story"
// @Success 200 {object} domain.Item
// @Failure 401 {object} ErrorRes
// @Failure 403 {object} ErrorRes
// @Failure 404 {object} ErrorRes
// @Failure 409 {object} ErrorRes
// @Router /items/{id}/resolve [post]
func (h *ItemHandler) Resolve(c *fiber.Ctx) error {
	var req ResolveReq
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, errEmptyBody.Error())
		}
	}
	item, err := h.itemUC.ResolveItem(c.UserContext(), viewerFrom(c), c.Params("id"), req.SuccessStory)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(item)
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm)
}

func openUpload(fh *multipart.FileHeader) (*domain.ImageUpload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	up := &domain.ImageUpload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		File:        f,
	}
	return up, func() { _ = f.Close() }, nil
}

func nonNil(items []domain.Item) []domain.Item {
	if items == nil {
		return []domain.Item{}
	}
	return items
}
