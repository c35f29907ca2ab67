package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fin-mate/backend/internal/application/usecase/tag"
	"github.com/fin-mate/backend/internal/domain/entity"
	domainerror "github.com/fin-mate/backend/internal/domain/error"
	"github.com/fin-mate/backend/internal/integration/entrypoint/dto"
	"github.com/fin-mate/backend/internal/integration/entrypoint/middleware"
)

// TagController handles tag endpoints.
type TagController struct {
	listUseCase   *tag.ListTagsUseCase
	createUseCase *tag.CreateTagUseCase
	updateUseCase *tag.UpdateTagUseCase
	deleteUseCase *tag.DeleteTagUseCase
}

// NewTagController creates a new tag controller instance.
func NewTagController(
	listUseCase *tag.ListTagsUseCase,
	createUseCase *tag.CreateTagUseCase,
	updateUseCase *tag.UpdateTagUseCase,
	deleteUseCase *tag.DeleteTagUseCase,
) *TagController {
	return &TagController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /tags requests.
func (c *TagController) List(ctx *gin.Context) {
	// Get user ID from context
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	// Execute use case
	output, err := c.listUseCase.Execute(ctx.Request.Context(), tag.ListTagsInput{
		UserID: userID,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve tags",
		})
		return
	}

	// Build response
	ctx.JSON(http.StatusOK, dto.ToTagListResponse(output.Tags))
}

// Create handles POST /tags requests.
func (c *TagController) Create(ctx *gin.Context) {
	// Get user ID from context
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	// Parse request body
	var req dto.CreateTagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	// Execute use case
	output, err := c.createUseCase.Execute(ctx.Request.Context(), tag.CreateTagInput{
		UserID: userID,
		Name:   req.Name,
		Color:  entity.TagColor(req.Color),
	})
	if err != nil {
		c.handleTagError(ctx, err)
		return
	}

	// Build response
	ctx.JSON(http.StatusCreated, dto.ToTagResponse(output.Tag))
}

// Update handles PATCH /tags/:id requests.
func (c *TagController) Update(ctx *gin.Context) {
	// Get user ID from context
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	// Parse tag ID from URL
	tagID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid tag ID format",
		})
		return
	}

	// Parse request body
	var req dto.UpdateTagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	// Build input
	input := tag.UpdateTagInput{
		TagID:  tagID,
		UserID: userID,
		Name:   req.Name,
	}
	if req.Color != nil {
		color := entity.TagColor(*req.Color)
		input.Color = &color
	}

	// Execute use case
	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTagError(ctx, err)
		return
	}

	// Build response
	ctx.JSON(http.StatusOK, dto.ToTagResponse(output.Tag))
}

// Delete handles DELETE /tags/:id requests.
func (c *TagController) Delete(ctx *gin.Context) {
	// Get user ID from context
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	// Parse tag ID from URL
	tagID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid tag ID format",
		})
		return
	}

	// Execute use case
	err = c.deleteUseCase.Execute(ctx.Request.Context(), tag.DeleteTagInput{
		TagID:  tagID,
		UserID: userID,
	})
	if err != nil {
		c.handleTagError(ctx, err)
		return
	}

	// Return no content on success
	ctx.Status(http.StatusNoContent)
}

// handleTagError handles tag errors and returns appropriate HTTP responses.
func (c *TagController) handleTagError(ctx *gin.Context, err error) {
	var tagErr *domainerror.TagError
	if errors.As(err, &tagErr) {
		statusCode := c.getStatusCodeForTagError(tagErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: tagErr.Message,
			Code:  string(tagErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForTagError maps tag error codes to HTTP status codes.
func (c *TagController) getStatusCodeForTagError(code domainerror.TagErrorCode) int {
	switch code {
	case domainerror.ErrCodeTagNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeTagNameExists:
		return http.StatusConflict
	case domainerror.ErrCodeNotAuthorizedTag:
		return http.StatusForbidden
	case domainerror.ErrCodeInvalidTagColor:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
