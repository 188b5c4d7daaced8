package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "famfinance/internal/errors"
	"famfinance/internal/models"
	"famfinance/internal/pagination"
)

type familyMemberService struct {
	db *gorm.DB
}

// NewFamilyMemberService creates a new FamilyMemberServicer.
func NewFamilyMemberService(db *gorm.DB) FamilyMemberServicer {
	return &familyMemberService{db: db}
}

func (s *familyMemberService) CreateFamilyMember(userID uint, name, relationship string) (*models.FamilyMember, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "nome do familiar é obrigatório")
	}

	member := &models.FamilyMember{
		UserID:       userID,
		Name:         name,
		Relationship: strings.TrimSpace(relationship),
	}
	if err := s.db.Create(member).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return member, nil
}

func (s *familyMemberService) GetUserFamilyMembers(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.FamilyMember], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.FamilyMember{}).Where("user_id = ?", userID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var members []models.FamilyMember
	if err := base.Scopes(pagination.Paginate(page)).Order("name ASC").Find(&members).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(members, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func (s *familyMemberService) GetFamilyMemberByID(userID, memberID uint) (*models.FamilyMember, error) {
	var member models.FamilyMember
	if err := s.db.Where("id = ? AND user_id = ?", memberID, userID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFamilyMemberNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &member, nil
}

func (s *familyMemberService) UpdateFamilyMember(userID, memberID uint, name, relationship string) (*models.FamilyMember, error) {
	member, err := s.GetFamilyMemberByID(userID, memberID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if name = strings.TrimSpace(name); name != "" {
		updates["name"] = name
	}
	if relationship = strings.TrimSpace(relationship); relationship != "" {
		updates["relationship"] = relationship
	}
	if len(updates) > 0 {
		if err := s.db.Model(member).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetFamilyMemberByID(userID, memberID)
}

// DeleteFamilyMember refuses to remove a member that live transactions still reference.
func (s *familyMemberService) DeleteFamilyMember(userID, memberID uint) error {
	member, err := s.GetFamilyMemberByID(userID, memberID)
	if err != nil {
		return err
	}

	inUse, err := referenced(s.db, "family_member_id", memberID)
	if err != nil {
		return err
	}
	if inUse {
		return apperrors.ErrFamilyMemberInUse
	}

	if err := s.db.Delete(member).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
