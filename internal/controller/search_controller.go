package controller

import (
	"ai-foundry-be/internal/dto"
	"ai-foundry-be/internal/pkg/serverutils"
	"ai-foundry-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISearchController interface {
	RegisterRoutes(r fiber.Router)
	Semantic(ctx *fiber.Ctx) error
	Simple(ctx *fiber.Ctx) error
}

type searchController struct {
	searchService service.ISearchService
	jwtMiddleware fiber.Handler
}

func NewSearchController(searchService service.ISearchService, jwtMiddleware fiber.Handler) ISearchController {
	return &searchController{
		searchService: searchService,
		jwtMiddleware: jwtMiddleware,
	}
}

func (c *searchController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/search")
	h.Use(c.jwtMiddleware)
	h.Post("documents", c.Semantic)
	h.Get("documents/simple", c.Simple)
}

func (c *searchController) Semantic(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.SemanticSearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.searchService.Semantic(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search documents", res))
}

func (c *searchController) Simple(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	query := ctx.Query("q", "")
	limit := ctx.QueryInt("limit", 10)

	res, err := c.searchService.Simple(ctx.Context(), userId, query, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search documents", res))
}
