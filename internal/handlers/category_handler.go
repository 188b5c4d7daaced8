package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "famfinance/internal/errors"
	"famfinance/internal/models"
	"famfinance/internal/pagination"
	"famfinance/internal/services"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService services.CategoryServicer
	auditService    services.AuditServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer, auditService services.AuditServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, auditService: auditService}
}

// CreateCategoryRequest represents the request payload for creating a category
type CreateCategoryRequest struct {
	Name        string                 `json:"nome" binding:"required,max=100"`
	Type        models.TransactionType `json:"tipo" binding:"required,transaction_type"`
	Description string                 `json:"descricao" binding:"max=500"`
	Color       string                 `json:"cor" binding:"omitempty,hex_color"`
}

// UpdateCategoryRequest represents the request payload for updating a category
type UpdateCategoryRequest struct {
	Name        string `json:"nome" binding:"max=100"`
	Description string `json:"descricao" binding:"max=500"`
	Color       string `json:"cor" binding:"omitempty,hex_color"`
}

// CreateCategory handles the creation of a new category
// @Summary     Create a category
// @Tags        categorias
// @Accept      json
// @Produce     json
// @Param       X-Usuario-ID header int                   true "Owner ID"
// @Param       request      body   CreateCategoryRequest true "Category details"
// @Success     201 {object} models.Category "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categorias [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	category, err := h.categoryService.CreateCategory(userID, req.Name, req.Type, req.Description, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_CATEGORY", "category", category.ID, c.ClientIP(),
		map[string]interface{}{"nome": req.Name, "tipo": req.Type})

	respondSuccess(c, http.StatusCreated, "Categoria cadastrada com sucesso", gin.H{"dados": category})
}

// GetUserCategories lists the user's categories
// @Summary     List categories
// @Tags        categorias
// @Produce     json
// @Param       X-Usuario-ID   header int    true  "Owner ID"
// @Param       tipo           query  string false "despesa or receita"
// @Param       pagina         query  int    false "Page number (default 1)"
// @Param       tamanho_pagina query  int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Category]
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /categorias [get]
func (h *CategoryHandler) GetUserCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	var categoryType *models.TransactionType
	if v := c.Query("tipo"); v != "" {
		t := models.TransactionType(v)
		if !t.Valid() {
			respondWithError(c, apperrors.ErrInvalidTransactionType)
			return
		}
		categoryType = &t
	}

	result, err := h.categoryService.GetUserCategories(userID, categoryType, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetCategoryByID handles the retrieval of a specific category
// @Summary     Get category by ID
// @Tags        categorias
// @Produce     json
// @Param       X-Usuario-ID header int true "Owner ID"
// @Param       id           path   int true "Category ID"
// @Success     200 {object} models.Category
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /categorias/{id} [get]
func (h *CategoryHandler) GetCategoryByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.GetCategoryByID(userID, categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "", gin.H{"dados": category})
}

// UpdateCategory handles updating a category
// @Summary     Update category
// @Tags        categorias
// @Accept      json
// @Produce     json
// @Param       X-Usuario-ID header int                   true "Owner ID"
// @Param       id           path   int                   true "Category ID"
// @Param       request      body   UpdateCategoryRequest true "Updated fields"
// @Success     200 {object} models.Category
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Duplicate name"
// @Router      /categorias/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	category, err := h.categoryService.UpdateCategory(userID, categoryID, req.Name, req.Description, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_CATEGORY", "category", categoryID, c.ClientIP(),
		map[string]interface{}{"nome": req.Name, "descricao": req.Description, "cor": req.Color})

	respondSuccess(c, http.StatusOK, "Categoria atualizada com sucesso", gin.H{"dados": category})
}

// DeleteCategory handles deleting a category
// @Summary     Delete category
// @Description Refused with 409 while any expense or income uses the category.
// @Tags        categorias
// @Produce     json
// @Param       X-Usuario-ID header int true "Owner ID"
// @Param       id           path   int true "Category ID"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Category in use"
// @Router      /categorias/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(userID, categoryID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_CATEGORY", "category", categoryID, c.ClientIP(), nil)

	respondSuccess(c, http.StatusOK, "Categoria excluída com sucesso", nil)
}
