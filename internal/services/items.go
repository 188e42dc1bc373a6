package services

import (
	"github.com/liviin/homecare-api/internal/catalog"
	"github.com/liviin/homecare-api/internal/models"
	"github.com/liviin/homecare-api/internal/types"
	"gorm.io/gorm"
)

// BilingualInput is the bilingual name pair of create/update payloads.
type BilingualInput struct {
	EN string `json:"en"`
	ES string `json:"es"`
}

// ItemInput is the create payload for an item.
type ItemInput struct {
	Name        BilingualInput         `json:"name"`
	Category    string                 `json:"category"`
	SubCategory string                 `json:"subCategory"`
	Image       string                 `json:"image"`
	Order       types.FlexInt          `json:"order"`
	Materials   types.FlexList[string] `json:"materials"`
}

// ItemPatch is the partial update payload for an item. Only present fields
// are validated and applied.
type ItemPatch struct {
	Name        *BilingualInput         `json:"name"`
	Category    *string                 `json:"category"`
	SubCategory *string                 `json:"subCategory"`
	Image       *string                 `json:"image"`
	Order       *types.FlexInt          `json:"order"`
	Materials   *types.FlexList[string] `json:"materials"`
}

// CreateItem validates the full payload, reporting every violation at once,
// verifies each referenced material exists, and persists the item with its
// ordered material reference list. Nothing is written on a validation
// failure.
func (s *CatalogService) CreateItem(input ItemInput) (*ItemDetail, error) {
	var violations []types.FieldViolation

	if input.Name.EN == "" {
		violations = append(violations, types.FieldViolation{Field: "name.en", Message: "is required"})
	}
	if input.Name.ES == "" {
		violations = append(violations, types.FieldViolation{Field: "name.es", Message: "is required"})
	}
	if !models.ValidCategory(input.Category) {
		violations = append(violations, types.FieldViolation{Field: "category", Message: "must be CLEANING or MAINTENANCE"})
	} else if input.SubCategory != "" {
		if _, ok := catalog.SubCategories(s.Defs, input.Category)[input.SubCategory]; !ok {
			violations = append(violations, types.FieldViolation{Field: "subCategory", Message: "unknown sub-category for category"})
		}
	}
	if input.Image == "" {
		violations = append(violations, types.FieldViolation{Field: "image", Message: "is required"})
	}
	materials := input.Materials.Slice()
	for _, id := range materials {
		if !models.ValidID(id) {
			violations = append(violations, types.FieldViolation{Field: "materials", Message: "each material must be a 24-hex-character id"})
			break
		}
	}
	if len(violations) > 0 {
		return nil, types.NewValidation(violations)
	}

	if err := s.materialsExist(materials); err != nil {
		return nil, err
	}

	item := models.Item{
		Name:        models.Bilingual{EN: input.Name.EN, ES: input.Name.ES},
		Category:    input.Category,
		SubCategory: input.SubCategory,
		Image:       input.Image,
		Order:       input.Order.Int(),
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return replaceMaterialRefs(tx, item.ID, materials)
	})
	if err != nil {
		return nil, types.NewStoreUnavailable(err)
	}

	return s.GetItem(item.ID)
}

// GetItem returns one item with materials resolved.
func (s *CatalogService) GetItem(id string) (*ItemDetail, error) {
	var item models.Item
	if err := s.DB.First(&item, "id = ?", id).Error; err != nil {
		return nil, storeError(err, "item")
	}

	refs, err := s.materialRefs([]string{item.ID})
	if err != nil {
		return nil, err
	}
	return &ItemDetail{Item: item, Materials: refs[item.ID]}, nil
}

// UpdateItem applies a partial patch. Present fields are re-validated; a
// present materials list replaces the reference list wholesale.
func (s *CatalogService) UpdateItem(id string, patch ItemPatch) (*ItemDetail, error) {
	var item models.Item
	if err := s.DB.First(&item, "id = ?", id).Error; err != nil {
		return nil, storeError(err, "item")
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
	category := item.Category
	if patch.Category != nil {
		if !models.ValidCategory(*patch.Category) {
			violations = append(violations, types.FieldViolation{Field: "category", Message: "must be CLEANING or MAINTENANCE"})
		} else {
			category = *patch.Category
		}
	}
	if patch.SubCategory != nil && *patch.SubCategory != "" {
		if _, ok := catalog.SubCategories(s.Defs, category)[*patch.SubCategory]; !ok {
			violations = append(violations, types.FieldViolation{Field: "subCategory", Message: "unknown sub-category for category"})
		}
	}
	if patch.Image != nil && *patch.Image == "" {
		violations = append(violations, types.FieldViolation{Field: "image", Message: "cannot be empty"})
	}
	var materials []string
	if patch.Materials != nil {
		materials = patch.Materials.Slice()
		for _, mid := range materials {
			if !models.ValidID(mid) {
				violations = append(violations, types.FieldViolation{Field: "materials", Message: "each material must be a 24-hex-character id"})
				break
			}
		}
	}
	if len(violations) > 0 {
		return nil, types.NewValidation(violations)
	}

	if patch.Materials != nil {
		if err := s.materialsExist(materials); err != nil {
			return nil, err
		}
	}

	if patch.Name != nil {
		item.Name = models.Bilingual{EN: patch.Name.EN, ES: patch.Name.ES}
	}
	item.Category = category
	if patch.SubCategory != nil {
		item.SubCategory = *patch.SubCategory
	}
	if patch.Image != nil {
		item.Image = *patch.Image
	}
	if patch.Order != nil {
		item.Order = patch.Order.Int()
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		if patch.Materials != nil {
			return replaceMaterialRefs(tx, item.ID, materials)
		}
		return nil
	})
	if err != nil {
		return nil, types.NewStoreUnavailable(err)
	}

	return s.GetItem(item.ID)
}

// DeleteItem removes an item and the reference rows it owns. Materials are
// never deleted with it; they are free-standing and reusable.
func (s *CatalogService) DeleteItem(id string) error {
	var deleted bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Item{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		if !deleted {
			return nil
		}
		return tx.Delete(&models.ItemMaterial{}, "item_id = ?", id).Error
	})
	if err != nil {
		return types.NewStoreUnavailable(err)
	}
	if !deleted {
		return types.NewNotFound("item")
	}
	return nil
}

// materialsExist verifies every referenced material id is present.
func (s *CatalogService) materialsExist(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	var count int64
	if err := s.DB.Model(&models.Material{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return types.NewStoreUnavailable(err)
	}
	if count != int64(len(uniqueStrings(ids))) {
		return types.NewReferenceNotFound("materials")
	}
	return nil
}

// replaceMaterialRefs rewrites the ordered reference list of an item. The
// list is a set: duplicates collapse to their first position.
func replaceMaterialRefs(tx *gorm.DB, itemID string, materialIDs []string) error {
	if err := tx.Delete(&models.ItemMaterial{}, "item_id = ?", itemID).Error; err != nil {
		return err
	}
	for pos, mid := range uniqueStrings(materialIDs) {
		row := models.ItemMaterial{ItemID: itemID, MaterialID: mid, Position: pos}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0:0]
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
