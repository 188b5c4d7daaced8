package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"famfinance/internal/pagination"
	"famfinance/internal/services"
)

// FamilyMemberHandler handles /familiares requests.
type FamilyMemberHandler struct {
	familyMemberService services.FamilyMemberServicer
	auditService        services.AuditServicer
}

// NewFamilyMemberHandler creates a new FamilyMemberHandler.
func NewFamilyMemberHandler(familyMemberService services.FamilyMemberServicer, auditService services.AuditServicer) *FamilyMemberHandler {
	return &FamilyMemberHandler{familyMemberService: familyMemberService, auditService: auditService}
}

// FamilyMemberRequest is the create and update payload. On update, empty
// fields are left unchanged.
type FamilyMemberRequest struct {
	Name         string `json:"nome" binding:"max=120"`
	Relationship string `json:"parentesco" binding:"max=50"`
}

// Create registers a family member
// @Summary     Create a family member
// @Tags        familiares
// @Accept      json
// @Produce     json
// @Param       X-Usuario-ID header int                 true "Owner ID"
// @Param       request      body   FamilyMemberRequest true "Family member"
// @Success     201 {object} models.FamilyMember
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /familiares [post]
func (h *FamilyMemberHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req FamilyMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	member, err := h.familyMemberService.CreateFamilyMember(userID, req.Name, req.Relationship)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_FAMILY_MEMBER", "family_member", member.ID, c.ClientIP(),
		map[string]interface{}{"nome": req.Name})

	respondSuccess(c, http.StatusCreated, "Familiar cadastrado com sucesso", gin.H{"dados": member})
}

// List returns the user's family members
// @Summary     List family members
// @Tags        familiares
// @Produce     json
// @Param       X-Usuario-ID   header int true  "Owner ID"
// @Param       pagina         query  int false "Page number (default 1)"
// @Param       tamanho_pagina query  int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.FamilyMember]
// @Router      /familiares [get]
func (h *FamilyMemberHandler) List(c *gin.Context) {
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

	result, err := h.familyMemberService.GetUserFamilyMembers(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get returns one family member
// @Summary     Get family member
// @Tags        familiares
// @Produce     json
// @Param       X-Usuario-ID header int true "Owner ID"
// @Param       id           path   int true "Family member ID"
// @Success     200 {object} models.FamilyMember
// @Failure     404 {object} ErrorResponse "Family member not found"
// @Router      /familiares/{id} [get]
func (h *FamilyMemberHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	member, err := h.familyMemberService.GetFamilyMemberByID(userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "", gin.H{"dados": member})
}

// Update changes a family member
// @Summary     Update family member
// @Tags        familiares
// @Accept      json
// @Produce     json
// @Param       X-Usuario-ID header int                 true "Owner ID"
// @Param       id           path   int                 true "Family member ID"
// @Param       request      body   FamilyMemberRequest true "Updated fields"
// @Success     200 {object} models.FamilyMember
// @Failure     404 {object} ErrorResponse "Family member not found"
// @Router      /familiares/{id} [put]
func (h *FamilyMemberHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req FamilyMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	member, err := h.familyMemberService.UpdateFamilyMember(userID, id, req.Name, req.Relationship)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_FAMILY_MEMBER", "family_member", id, c.ClientIP(),
		map[string]interface{}{"nome": req.Name, "parentesco": req.Relationship})

	respondSuccess(c, http.StatusOK, "Familiar atualizado com sucesso", gin.H{"dados": member})
}

// Delete removes a family member no transaction references
// @Summary     Delete family member
// @Tags        familiares
// @Produce     json
// @Param       X-Usuario-ID header int true "Owner ID"
// @Param       id           path   int true "Family member ID"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} ErrorResponse "Family member not found"
// @Failure     409 {object} ErrorResponse "Family member in use"
// @Router      /familiares/{id} [delete]
func (h *FamilyMemberHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.familyMemberService.DeleteFamilyMember(userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_FAMILY_MEMBER", "family_member", id, c.ClientIP(), nil)

	respondSuccess(c, http.StatusOK, "Familiar excluído com sucesso", nil)
}
