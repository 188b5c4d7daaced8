package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"famfinance/internal/pagination"
	"famfinance/internal/services"
)

// DestinationHandler handles /destinos requests.
type DestinationHandler struct {
	destinationService services.DestinationServicer
	auditService       services.AuditServicer
}

// NewDestinationHandler creates a new DestinationHandler.
func NewDestinationHandler(destinationService services.DestinationServicer, auditService services.AuditServicer) *DestinationHandler {
	return &DestinationHandler{destinationService: destinationService, auditService: auditService}
}

// DestinationRequest is the create and update payload.
type DestinationRequest struct {
	Name        string `json:"nome" binding:"max=120"`
	Description string `json:"descricao" binding:"max=500"`
}

// Create registers a destination
// @Summary     Create a destination
// @Tags        destinos
// @Accept      json
// @Produce     json
// @Param       X-Usuario-ID header int                true "Owner ID"
// @Param       request      body   DestinationRequest true "Destination"
// @Success     201 {object} models.Destination
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /destinos [post]
func (h *DestinationHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	destination, err := h.destinationService.CreateDestination(userID, req.Name, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_DESTINATION", "destination", destination.ID, c.ClientIP(),
		map[string]interface{}{"nome": req.Name})

	respondSuccess(c, http.StatusCreated, "Destino cadastrado com sucesso", gin.H{"dados": destination})
}

// List returns the user's destinations
// @Summary     List destinations
// @Tags        destinos
// @Produce     json
// @Param       X-Usuario-ID   header int true  "Owner ID"
// @Param       pagina         query  int false "Page number (default 1)"
// @Param       tamanho_pagina query  int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Destination]
// @Router      /destinos [get]
func (h *DestinationHandler) List(c *gin.Context) {
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

	result, err := h.destinationService.GetUserDestinations(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get returns one destination
// @Summary     Get destination
// @Tags        destinos
// @Produce     json
// @Param       X-Usuario-ID header int true "Owner ID"
// @Param       id           path   int true "Destination ID"
// @Success     200 {object} models.Destination
// @Failure     404 {object} ErrorResponse "Destination not found"
// @Router      /destinos/{id} [get]
func (h *DestinationHandler) Get(c *gin.Context) {
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

	destination, err := h.destinationService.GetDestinationByID(userID, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "", gin.H{"dados": destination})
}

// Update changes a destination
// @Summary     Update destination
// @Tags        destinos
// @Accept      json
// @Produce     json
// @Param       X-Usuario-ID header int                true "Owner ID"
// @Param       id           path   int                true "Destination ID"
// @Param       request      body   DestinationRequest true "Updated fields"
// @Success     200 {object} models.Destination
// @Failure     404 {object} ErrorResponse "Destination not found"
// @Router      /destinos/{id} [put]
func (h *DestinationHandler) Update(c *gin.Context) {
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

	var req DestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	destination, err := h.destinationService.UpdateDestination(userID, id, req.Name, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_DESTINATION", "destination", id, c.ClientIP(),
		map[string]interface{}{"nome": req.Name, "descricao": req.Description})

	respondSuccess(c, http.StatusOK, "Destino atualizado com sucesso", gin.H{"dados": destination})
}

// Delete removes a destination no transaction references
// @Summary     Delete destination
// @Tags        destinos
// @Produce     json
// @Param       X-Usuario-ID header int true "Owner ID"
// @Param       id           path   int true "Destination ID"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} ErrorResponse "Destination not found"
// @Failure     409 {object} ErrorResponse "Destination in use"
// @Router      /destinos/{id} [delete]
func (h *DestinationHandler) Delete(c *gin.Context) {
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

	if err := h.destinationService.DeleteDestination(userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_DESTINATION", "destination", id, c.ClientIP(), nil)

	respondSuccess(c, http.StatusOK, "Destino excluído com sucesso", nil)
}
