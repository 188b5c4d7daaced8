package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "famfinance/internal/errors"
	"famfinance/internal/models"
	"famfinance/internal/pagination"
	"famfinance/internal/services"
	"famfinance/internal/validator"
)

// TransactionHandler serves one ledger kind: expenses or incomes.
type TransactionHandler struct {
	kind               models.TransactionType
	transactionService services.TransactionServicer
	exportService      services.ExportServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a TransactionHandler bound to kind.
func NewTransactionHandler(
	kind models.TransactionType,
	transactionService services.TransactionServicer,
	exportService services.ExportServicer,
	auditService services.AuditServicer,
) *TransactionHandler {
	return &TransactionHandler{
		kind:               kind,
		transactionService: transactionService,
		exportService:      exportService,
		auditService:       auditService,
	}
}

// SaveTransactionRequest is the create-or-update payload. Id fields are
// pointers so a literal 0 counts as present.
type SaveTransactionRequest struct {
	ID             *uint            `json:"id"`
	UserID         *uint            `json:"usuario_id" binding:"required"`
	FamilyMemberID *uint            `json:"familiar_id" binding:"required"`
	DestinationID  *uint            `json:"destino_id" binding:"required"`
	CategoryID     *uint            `json:"categoria_id" binding:"required"`
	PaymentMethod  string           `json:"forma_pagamento" binding:"required,max=50"`
	Amount         *decimal.Decimal `json:"valor" binding:"required" swaggertype:"string" example:"100.00"`
	Date           string           `json:"data" binding:"required,date_ymd" example:"2024-01-31"`
	Notes          string           `json:"observacoes" binding:"max=1000"`
	Recurring      bool             `json:"recorrente"`
	Installments   *int             `json:"parcelas" example:"12"`
}

// SaveTransactionResponse is returned by create and update.
type SaveTransactionResponse struct {
	Success bool    `json:"sucesso" example:"true"`
	Message string  `json:"mensagem"`
	GroupID *string `json:"grupo_recorrencia,omitempty"`
	Count   int     `json:"quantidade"`
	IDs     []uint  `json:"ids"`
}

// DeleteTransactionRequest is the body of POST /{kind}/excluir.
type DeleteTransactionRequest struct {
	ID    *uint  `json:"id" binding:"required"`
	Scope string `json:"escopo" binding:"omitempty,delete_scope" example:"esta_e_futuras"`
	Date  string `json:"data" binding:"omitempty,date_ymd" example:"2024-02-01"`
}

// DeleteTransactionQuery holds the query parameters of DELETE /{kind}/{id}.
type DeleteTransactionQuery struct {
	Scope string `form:"escopo" binding:"omitempty,delete_scope"`
	Date  string `form:"data" binding:"omitempty,date_ymd"`
}

// DeleteTransactionResponse reports the outcome of a scoped deletion.
type DeleteTransactionResponse struct {
	Success  bool    `json:"sucesso" example:"true"`
	Message  string  `json:"mensagem"`
	Deleted  int64   `json:"excluidos"`
	Scope    string  `json:"escopo"`
	GroupID  *string `json:"grupo_recorrencia,omitempty"`
	NoSeries bool    `json:"sem_recorrencia"`
}

func (h *TransactionHandler) label() string {
	if h.kind == models.TransactionTypeIncome {
		return "Receita"
	}
	return "Despesa"
}

func (h *TransactionHandler) resource() string {
	return string(h.kind)
}

// Save creates a transaction, expanding recurring submissions into a monthly
// series, or updates the row named by the body's id.
// @Summary     Save an expense or income
// @Description Creates one row, or up to 60 monthly installments sharing a recurrence group when recorrente is true and parcelas is not 1 (0 means 60). With id set, updates that row only.
// @Tags        despesas,receitas
// @Accept      json
// @Produce     json
// @Param       request body SaveTransactionRequest true "Transaction"
// @Success     201 {object} SaveTransactionResponse "Created"
// @Success     200 {object} SaveTransactionResponse "Updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /despesas [post]
// @Router      /receitas [post]
func (h *TransactionHandler) Save(c *gin.Context) {
	var req SaveTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}
	h.save(c, req)
}

// Update rewrites one row. Series membership is never changed.
// @Summary     Update an expense or income
// @Tags        despesas,receitas
// @Accept      json
// @Produce     json
// @Param       id      path int                    true "Transaction ID"
// @Param       request body SaveTransactionRequest true "Transaction"
// @Success     200 {object} SaveTransactionResponse "Updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /despesas/{id} [put]
// @Router      /receitas/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SaveTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}
	req.ID = &id
	h.save(c, req)
}

func (h *TransactionHandler) save(c *gin.Context, req SaveTransactionRequest) {
	date, err := validator.ParseDate(req.Date)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	installments := 1
	if req.Installments != nil {
		installments = *req.Installments
	}

	result, err := h.transactionService.Save(h.kind, services.SaveTransactionInput{
		ID:             req.ID,
		UserID:         *req.UserID,
		FamilyMemberID: *req.FamilyMemberID,
		DestinationID:  *req.DestinationID,
		CategoryID:     *req.CategoryID,
		PaymentMethod:  req.PaymentMethod,
		Amount:         *req.Amount,
		Date:           date,
		Notes:          req.Notes,
		Recurring:      req.Recurring,
		Installments:   installments,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	count := len(result.Transactions)
	resp := SaveTransactionResponse{
		Success: true,
		GroupID: result.GroupID,
		Count:   count,
		IDs:     result.IDs(),
	}

	status := http.StatusCreated
	action := "CREATE_TRANSACTION"
	switch {
	case result.Updated:
		status = http.StatusOK
		action = "UPDATE_TRANSACTION"
		resp.Message = h.label() + " atualizada com sucesso"
	case count > 1:
		action = "CREATE_SERIES"
		resp.Message = fmt.Sprintf("%s cadastrada com sucesso em %d parcelas", h.label(), count)
	default:
		resp.Message = h.label() + " cadastrada com sucesso"
	}

	changes := map[string]interface{}{"valor": req.Amount.String(), "quantidade": count}
	if result.GroupID != nil {
		changes["grupo_recorrencia"] = *result.GroupID
	}
	h.auditService.Log(*req.UserID, action, h.resource(), result.Transactions[0].ID, c.ClientIP(), changes)

	c.JSON(status, resp)
}

// Delete removes a row or, with escopo=esta_e_futuras, the rest of its series.
// @Summary     Delete an expense or income
// @Description apenas_esta (default) removes the row; esta_e_futuras removes every row of its recurrence group dated on or after data (default: the row's date).
// @Tags        despesas,receitas
// @Produce     json
// @Param       id     path  int    true  "Transaction ID"
// @Param       escopo query string false "apenas_esta or esta_e_futuras"
// @Param       data   query string false "Override start date (YYYY-MM-DD)"
// @Success     200 {object} DeleteTransactionResponse "Deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /despesas/{id} [delete]
// @Router      /receitas/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q DeleteTransactionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindingError(err))
		return
	}
	h.delete(c, id, q.Scope, q.Date)
}

// DeleteByBody is the form-friendly variant of Delete.
// @Summary     Delete an expense or income (JSON body)
// @Tags        despesas,receitas
// @Accept      json
// @Produce     json
// @Param       request body DeleteTransactionRequest true "Deletion"
// @Success     200 {object} DeleteTransactionResponse "Deleted"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /despesas/excluir [post]
// @Router      /receitas/excluir [post]
func (h *TransactionHandler) DeleteByBody(c *gin.Context) {
	var req DeleteTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}
	h.delete(c, *req.ID, req.Scope, req.Date)
}

func (h *TransactionHandler) delete(c *gin.Context, id uint, scope, date string) {
	var from *time.Time
	if date != "" {
		d, err := validator.ParseDate(date)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
			return
		}
		from = &d
	}

	result, err := h.transactionService.Delete(h.kind, id, services.DeleteScope(scope), from)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var message string
	switch {
	case result.NoSeries:
		message = h.label() + " não pertence a uma recorrência; apenas este lançamento foi excluído"
	case result.GroupID != nil:
		message = fmt.Sprintf("%d lançamento(s) da recorrência excluído(s) com sucesso", result.Deleted)
	default:
		message = h.label() + " excluída com sucesso"
	}

	changes := map[string]interface{}{"escopo": string(result.Scope), "excluidos": result.Deleted}
	if result.From != nil {
		changes["a_partir_de"] = result.From.Format(time.DateOnly)
	}
	h.auditService.Log(result.UserID, "DELETE_TRANSACTION", h.resource(), id, c.ClientIP(), changes)

	c.JSON(http.StatusOK, DeleteTransactionResponse{
		Success:  true,
		Message:  message,
		Deleted:  result.Deleted,
		Scope:    string(result.Scope),
		GroupID:  result.GroupID,
		NoSeries: result.NoSeries,
	})
}

// GetByID handles the retrieval of a single row
// @Summary     Get an expense or income
// @Tags        despesas,receitas
// @Produce     json
// @Param       X-Usuario-ID header int true "Owner ID"
// @Param       id           path   int true "Transaction ID"
// @Success     200 {object} models.Transaction
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /despesas/{id} [get]
// @Router      /receitas/{id} [get]
func (h *TransactionHandler) GetByID(c *gin.Context) {
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

	transaction, err := h.transactionService.GetTransactionByID(userID, h.kind, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "", gin.H{"dados": transaction})
}

// GetSeries lists every installment of one recurrence group
// @Summary     Get a recurrence group
// @Tags        despesas,receitas
// @Produce     json
// @Param       X-Usuario-ID header int    true "Owner ID"
// @Param       grupo        path   string true "Recurrence group ID"
// @Success     200 {array}  models.Transaction
// @Failure     404 {object} ErrorResponse "Group not found"
// @Router      /despesas/grupo/{grupo} [get]
// @Router      /receitas/grupo/{grupo} [get]
func (h *TransactionHandler) GetSeries(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	rows, err := h.transactionService.GetSeries(userID, h.kind, c.Param("grupo"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "", gin.H{
		"grupo_recorrencia": c.Param("grupo"),
		"quantidade":        len(rows),
		"dados":             rows,
	})
}

// List handles the paginated, filtered listing of a user's rows
// @Summary     List expenses or incomes
// @Tags        despesas,receitas
// @Produce     json
// @Param       X-Usuario-ID      header int    true  "Owner ID"
// @Param       pagina            query  int    false "Page number (default 1)"
// @Param       tamanho_pagina    query  int    false "Items per page (default 20, max 100)"
// @Param       ordenar           query  string false "data, valor or created_at"
// @Param       direcao           query  string false "asc or desc"
// @Param       de                query  string false "From date (YYYY-MM-DD)"
// @Param       ate               query  string false "To date (YYYY-MM-DD)"
// @Param       categoria_id      query  int    false "Category ID"
// @Param       familiar_id       query  int    false "Family member ID"
// @Param       destino_id        query  int    false "Destination ID"
// @Param       grupo_recorrencia query  string false "Recurrence group ID"
// @Param       forma_pagamento   query  string false "Payment method"
// @Param       busca             query  string false "Search in notes"
// @Success     200 {object} pagination.PageResponse[models.Transaction]
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /despesas [get]
// @Router      /receitas [get]
func (h *TransactionHandler) List(c *gin.Context) {
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

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.GetUserTransactions(userID, h.kind, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Export streams the filtered list as an xlsx workbook
// @Summary     Export expenses or incomes
// @Tags        despesas,receitas
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param       X-Usuario-ID header int    true  "Owner ID"
// @Param       de           query  string false "From date (YYYY-MM-DD)"
// @Param       ate          query  string false "To date (YYYY-MM-DD)"
// @Success     200 {file}   file
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /despesas/exportar [get]
// @Router      /receitas/exportar [get]
func (h *TransactionHandler) Export(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter, err := parseTransactionFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// Buffer first so a failure can still be reported as JSON.
	var buf bytes.Buffer
	if _, err := h.exportService.ExportTransactions(userID, h.kind, filter, &buf); err != nil {
		respondWithError(c, err)
		return
	}

	fileName := fmt.Sprintf("%ss_%s.xlsx", h.kind, time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func parseTransactionFilter(c *gin.Context) (services.TransactionFilter, error) {
	var filter services.TransactionFilter

	if v := c.Query("de"); v != "" {
		t, err := validator.ParseDate(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "de: "+err.Error())
		}
		filter.FromDate = &t
	}

	if v := c.Query("ate"); v != "" {
		t, err := validator.ParseDate(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "ate: "+err.Error())
		}
		filter.ToDate = &t
	}

	for param, dst := range map[string]**uint{
		"categoria_id": &filter.CategoryID,
		"familiar_id":  &filter.FamilyMemberID,
		"destino_id":   &filter.DestinationID,
	} {
		v := c.Query(param)
		if v == "" {
			continue
		}
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, param+" inválido")
		}
		u := uint(id)
		*dst = &u
	}

	if v := c.Query("grupo_recorrencia"); v != "" {
		filter.GroupID = &v
	}
	if v := c.Query("forma_pagamento"); v != "" {
		filter.PaymentMethod = &v
	}
	if v := c.Query("busca"); v != "" {
		filter.Search = &v
	}

	return filter, nil
}
