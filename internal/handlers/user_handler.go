package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"famfinance/internal/services"
)

// UserHandler handles /usuarios requests.
type UserHandler struct {
	userService  services.UserServicer
	auditService services.AuditServicer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService services.UserServicer, auditService services.AuditServicer) *UserHandler {
	return &UserHandler{userService: userService, auditService: auditService}
}

// CreateUserRequest is the payload for registering a household owner.
type CreateUserRequest struct {
	Name  string `json:"nome" binding:"required,max=120"`
	Email string `json:"email" binding:"required,email,max=200"`
}

// Create registers a user
// @Summary     Create a user
// @Tags        usuarios
// @Accept      json
// @Produce     json
// @Param       request body CreateUserRequest true "User"
// @Success     201 {object} models.User
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate email"
// @Router      /usuarios [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	user, err := h.userService.CreateUser(req.Name, req.Email)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(user.ID, "CREATE_USER", "user", user.ID, c.ClientIP(), nil)

	respondSuccess(c, http.StatusCreated, "Usuário cadastrado com sucesso", gin.H{"dados": user})
}

// Get returns a user by id
// @Summary     Get user
// @Tags        usuarios
// @Produce     json
// @Param       id path int true "User ID"
// @Success     200 {object} models.User
// @Failure     404 {object} ErrorResponse "User not found"
// @Router      /usuarios/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "", gin.H{"dados": user})
}
