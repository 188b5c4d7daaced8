package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "famfinance/internal/errors"
	"famfinance/internal/models"
	"famfinance/internal/pagination"
)

type destinationService struct {
	db *gorm.DB
}

// NewDestinationService creates a new DestinationServicer.
func NewDestinationService(db *gorm.DB) DestinationServicer {
	return &destinationService{db: db}
}

func (s *destinationService) CreateDestination(userID uint, name, description string) (*models.Destination, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "nome do destino é obrigatório")
	}

	destination := &models.Destination{
		UserID:      userID,
		Name:        name,
		Description: description,
	}
	if err := s.db.Create(destination).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return destination, nil
}

func (s *destinationService) GetUserDestinations(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Destination], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Destination{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var destinations []models.Destination
	if err := base.Scopes(pagination.Paginate(page)).Order("name ASC").Find(&destinations).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(destinations, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func (s *destinationService) GetDestinationByID(userID, destinationID uint) (*models.Destination, error) {
	var destination models.Destination
	if err := s.db.Where("id = ? AND user_id = ?", destinationID, userID).First(&destination).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDestinationNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &destination, nil
}

func (s *destinationService) UpdateDestination(userID, destinationID uint, name, description string) (*models.Destination, error) {
	destination, err := s.GetDestinationByID(userID, destinationID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name = strings.TrimSpace(name); name != "" {
		updates["name"] = name
	}
	if description != "" {
		updates["description"] = description
	}
	if len(updates) > 0 {
		if err := s.db.Model(destination).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetDestinationByID(userID, destinationID)
}

func (s *destinationService) DeleteDestination(userID, destinationID uint) error {
	destination, err := s.GetDestinationByID(userID, destinationID)
	if err != nil {
		return err
	}

	inUse, err := referenced(s.db, "destination_id", destinationID)
	if err != nil {
		return err
	}
	if inUse {
		return apperrors.ErrDestinationInUse
	}

	if err := s.db.Delete(destination).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
