package services

import (
	"github.com/liviin/homecare-api/internal/models"
	"github.com/liviin/homecare-api/internal/types"
)

// MaterialInput is the create payload for a material.
type MaterialInput struct {
	Name               BilingualInput `json:"name"`
	SuggestedFrequency *types.FlexInt `json:"suggestedFrequency"`
	Description        string         `json:"description"`
}

// MaterialPatch is the partial update payload for a material.
type MaterialPatch struct {
	Name               *BilingualInput `json:"name"`
	SuggestedFrequency *types.FlexInt  `json:"suggestedFrequency"`
	Description        *string         `json:"description"`
}

// CreateMaterial validates and persists a free-standing material.
func (s *CatalogService) CreateMaterial(input MaterialInput) (*models.Material, error) {
	var violations []types.FieldViolation
	if input.Name.EN == "" {
		violations = append(violations, types.FieldViolation{Field: "name.en", Message: "is required"})
	}
	if input.Name.ES == "" {
		violations = append(violations, types.FieldViolation{Field: "name.es", Message: "is required"})
	}
	if input.SuggestedFrequency != nil && input.SuggestedFrequency.Int() < 1 {
		violations = append(violations, types.FieldViolation{Field: "suggestedFrequency", Message: "must be at least 1 day"})
	}
	if len(violations) > 0 {
		return nil, types.NewValidation(violations)
	}

	material := models.Material{
		Name:        models.Bilingual{EN: input.Name.EN, ES: input.Name.ES},
		Description: input.Description,
	}
	if input.SuggestedFrequency != nil {
		days := input.SuggestedFrequency.Int()
		material.SuggestedFrequency = &days
	}

	if err := s.DB.Create(&material).Error; err != nil {
		return nil, types.NewStoreUnavailable(err)
	}
	return &material, nil
}

// GetAllMaterials returns every material.
func (s *CatalogService) GetAllMaterials() ([]models.Material, error) {
	var materials []models.Material
	if err := s.DB.Order("created_at ASC").Find(&materials).Error; err != nil {
		return nil, types.NewStoreUnavailable(err)
	}
	return materials, nil
}

// GetMaterial returns one material by id.
func (s *CatalogService) GetMaterial(id string) (*models.Material, error) {
	var material models.Material
	if err := s.DB.First(&material, "id = ?", id).Error; err != nil {
		return nil, storeError(err, "material")
	}
	return &material, nil
}

// UpdateMaterial applies a partial patch, re-validating present fields only.
func (s *CatalogService) UpdateMaterial(id string, patch MaterialPatch) (*models.Material, error) {
	var material models.Material
	if err := s.DB.First(&material, "id = ?", id).Error; err != nil {
		return nil, storeError(err, "material")
	}

	var violations []types.FieldViolation
	if patch.Name != nil {
		if patch.Name.EN == "" {
			violations = append(violations, types.FieldViolation{Field: "name.en", Message: "is required"})
		}
		if patch.Name.ES == "" {
			violations = append(violations, types.FieldViolation{Field: "name.es", Message: "is required"})
		}
	}
	if patch.SuggestedFrequency != nil && patch.SuggestedFrequency.Int() < 1 {
		violations = append(violations, types.FieldViolation{Field: "suggestedFrequency", Message: "must be at least 1 day"})
	}
	if len(violations) > 0 {
		return nil, types.NewValidation(violations)
	}

	if patch.Name != nil {
		material.Name = models.Bilingual{EN: patch.Name.EN, ES: patch.Name.ES}
	}
	if patch.SuggestedFrequency != nil {
		days := patch.SuggestedFrequency.Int()
		material.SuggestedFrequency = &days
	}
	if patch.Description != nil {
		material.Description = *patch.Description
	}

	if err := s.DB.Save(&material).Error; err != nil {
		return nil, types.NewStoreUnavailable(err)
	}
	return &material, nil
}

// DeleteMaterial removes one material. Items referencing it keep their
// reference rows; subsequent catalog reads surface those as unavailable
// instead of failing.
func (s *CatalogService) DeleteMaterial(id string) error {
	result := s.DB.Delete(&models.Material{}, "id = ?", id)
	if result.Error != nil {
		return types.NewStoreUnavailable(result.Error)
	}
	if result.RowsAffected == 0 {
		return types.NewNotFound("material")
	}
	return nil
}
