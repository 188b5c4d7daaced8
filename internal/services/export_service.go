package services

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	apperrors "famfinance/internal/errors"
	"famfinance/internal/models"
)

var exportHeaders = []string{
	"Data", "Categoria", "Familiar", "Destino", "Forma de pagamento",
	"Valor", "Observações", "Parcelas", "Grupo de recorrência",
}

type exportService struct {
	db *gorm.DB
}

// NewExportService creates a new ExportServicer.
func NewExportService(db *gorm.DB) ExportServicer {
	return &exportService{db: db}
}

// ExportTransactions writes the filtered transactions as an xlsx workbook to
// w and returns the number of data rows. The last row holds the total.
func (s *exportService) ExportTransactions(userID uint, txType models.TransactionType, filter TransactionFilter, w io.Writer) (int, error) {
	if !txType.Valid() {
		return 0, apperrors.ErrInvalidTransactionType
	}

	q := s.db.Where("user_id = ? AND type = ?", userID, txType)
	q = applyTransactionFilters(q, filter)

	var rows []models.Transaction
	if err := q.Order("date ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	categories, err := s.names(&models.Category{}, userID)
	if err != nil {
		return 0, err
	}
	members, err := s.names(&models.FamilyMember{}, userID)
	if err != nil {
		return 0, err
	}
	destinations, err := s.names(&models.Destination{}, userID)
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Despesas"
	if txType == models.TransactionTypeIncome {
		sheet = "Receitas"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	f.SetCellStyle(sheet, "A1", lastHeader, headerStyle)

	for i, t := range rows {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), t.Date.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), categories[t.CategoryID])
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), members[t.FamilyMemberID])
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), destinations[t.DestinationID])
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), t.PaymentMethod)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), t.Amount.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), t.Notes)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), t.Installments)
		if t.GroupID != nil {
			f.SetCellValue(sheet, fmt.Sprintf("I%d", row), *t.GroupID)
		}
	}

	totalRow := len(rows) + 2
	f.SetCellValue(sheet, fmt.Sprintf("E%d", totalRow), "Total")
	if len(rows) > 0 {
		f.SetCellFormula(sheet, fmt.Sprintf("F%d", totalRow), fmt.Sprintf("SUM(F2:F%d)", totalRow-1))
	} else {
		f.SetCellValue(sheet, fmt.Sprintf("F%d", totalRow), 0)
	}
	f.SetCellStyle(sheet, "F2", fmt.Sprintf("F%d", totalRow), moneyStyle)
	f.SetColWidth(sheet, "A", "I", 18)

	if err := f.Write(w); err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return len(rows), nil
}

// names maps ids to names for one of the user's catalogs, soft-deleted
// entries included so old rows still resolve.
func (s *exportService) names(model interface{}, userID uint) (map[uint]string, error) {
	var entries []struct {
		ID   uint
		Name string
	}
	if err := s.db.Unscoped().Model(model).Select("id", "name").Where("user_id = ?", userID).Scan(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	out := make(map[uint]string, len(entries))
	for _, e := range entries {
		out[e.ID] = e.Name
	}
	return out, nil
}
