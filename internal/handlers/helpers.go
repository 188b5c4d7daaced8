package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "famfinance/internal/errors"
	"famfinance/internal/logger"
	"famfinance/internal/validator"
)

// ErrorResponse is the envelope of every failed request.
type ErrorResponse struct {
	Success bool   `json:"sucesso" example:"false"`
	Error   string `json:"erro"`
	Code    string `json:"codigo"`
}

// MessageResponse is the envelope of a successful request without payload.
type MessageResponse struct {
	Success bool   `json:"sucesso" example:"true"`
	Message string `json:"mensagem"`
}

// getUserID extracts the owner id placed on the context by middleware.UserContext.
func getUserID(c *gin.Context) (uint, error) {
	userID, exists := c.Get("userID")
	if !exists {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "campo obrigatório ausente: usuario_id")
	}
	return userID.(uint), nil
}

// parsePathID parses a uint path parameter.
//
//nolint:unparam // every route names its id "id" today
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, param+" inválido")
	}
	return uint(id), nil
}

// bindingError turns a gin binding failure into a 400 naming the field.
func bindingError(err error) error {
	return apperrors.WithMessage(apperrors.ErrInvalidInput, validator.Describe(err))
}

// respondSuccess writes {sucesso:true, mensagem, ...fields}.
func respondSuccess(c *gin.Context, status int, message string, fields gin.H) {
	body := gin.H{"sucesso": true, "mensagem": message}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, ErrorResponse{Error: appErr.Message, Code: appErr.Code})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, ErrorResponse{
		Error: apperrors.ErrInternalServer.Message,
		Code:  apperrors.ErrInternalServer.Code,
	})
}
