package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/liviin/homecare-api/internal/catalog"
	"github.com/liviin/homecare-api/internal/models"
	"github.com/liviin/homecare-api/internal/types"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// CatalogService serves the item/material catalog: the grouped display
// tree, category filters, pagination and item/material management.
type CatalogService struct {
	DB   *gorm.DB
	Defs []catalog.Definition
}

// NewCatalogService builds a catalog service over db with the loaded
// category-definition table.
func NewCatalogService(db *gorm.DB, defs []catalog.Definition) *CatalogService {
	return &CatalogService{DB: db, Defs: defs}
}

// MaterialRef is one resolved item→material reference. A reference whose
// material has since been deleted stays in the list with Available false;
// it never fails the read.
type MaterialRef struct {
	ID        string           `json:"id"`
	Available bool             `json:"available"`
	Material  *models.Material `json:"material,omitempty"`
}

// ItemDetail is an item with its material references resolved.
type ItemDetail struct {
	models.Item
	Materials []MaterialRef `json:"materials"`
}

// CatalogGroup is one node of the catalog tree: a category definition and
// the ordered items assigned to it.
type CatalogGroup struct {
	catalog.Definition
	// ID duplicates the slug under the key legacy clients reconcile on.
	ID    string        `json:"id"`
	Items []CatalogItem `json:"items"`
}

// CatalogItem is the materialized item view inside a catalog group.
type CatalogItem struct {
	ID          string           `json:"id"`
	Name        models.Bilingual `json:"name"`
	Order       int              `json:"order"`
	Category    string           `json:"category"`
	SubCategory string           `json:"subCategory,omitempty"`
	Materials   []MaterialRef    `json:"materials"`
	Image       string           `json:"image"`
}

// PaginatedItems is one page of the item listing.
type PaginatedItems struct {
	Items      []ItemDetail `json:"items"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
}

// BuildCatalogTree groups all items under the ordered category definitions.
// An item joins the first definition it matches (sub-category equality when
// the item has one, category equality otherwise) and is consumed, so it
// appears under exactly one group. Within a group items sort ascending by
// order; ties keep insertion order. Items matching no definition are absent
// from the view but stay in storage. Image URLs are resolved against
// baseURL. Fails whole with StoreUnavailable, never partially.
func (s *CatalogService) BuildCatalogTree(baseURL string) ([]CatalogGroup, error) {
	var items []models.Item
	err := s.DB.Clauses(hints.Comment("select", "catalog_tree")).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, types.NewStoreUnavailable(err)
	}

	refs, err := s.materialRefs(itemIDs(items))
	if err != nil {
		return nil, err
	}

	groups := make([]CatalogGroup, 0, len(s.Defs))
	pool := items
	for _, def := range s.Defs {
		var matched, rest []models.Item
		for _, item := range pool {
			if def.Matches(item) {
				matched = append(matched, item)
			} else {
				rest = append(rest, item)
			}
		}
		pool = rest

		// Stable: equal orders keep storage order.
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].Order < matched[j].Order
		})

		group := CatalogGroup{
			Definition: def,
			ID:         def.Slug,
			Items:      make([]CatalogItem, 0, len(matched)),
		}
		group.Image = ResolveImageURL(baseURL, def.Image)
		for _, item := range matched {
			group.Items = append(group.Items, CatalogItem{
				ID:          item.ID,
				Name:        item.Name,
				Order:       item.Order,
				Category:    item.Category,
				SubCategory: item.SubCategory,
				Materials:   refs[item.ID],
				Image:       ResolveImageURL(baseURL, item.Image),
			})
		}
		groups = append(groups, group)
	}

	return groups, nil
}

// ItemsByCategory returns all items of one category. The value is checked
// against the fixed enum before any store access; sub-category plays no
// role in this coarse filter.
func (s *CatalogService) ItemsByCategory(category string) ([]ItemDetail, error) {
	if !models.ValidCategory(category) {
		return nil, types.NewInvalidArgument(fmt.Sprintf("invalid category %q", category))
	}

	var items []models.Item
	if err := s.DB.Where("category = ?", category).Find(&items).Error; err != nil {
		return nil, types.NewStoreUnavailable(err)
	}

	return s.itemDetails(items)
}

// GetAllItems returns every item with materials resolved.
func (s *CatalogService) GetAllItems() ([]ItemDetail, error) {
	var items []models.Item
	if err := s.DB.Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, types.NewStoreUnavailable(err)
	}
	return s.itemDetails(items)
}

// GetPaginatedItems returns page/limit slices of the item listing. Values
// below 1 silently fall back to the defaults (1 and 10). There is no upper
// bound on limit; callers may request arbitrarily large pages.
func (s *CatalogService) GetPaginatedItems(page, limit int) (*PaginatedItems, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var total int64
	if err := s.DB.Model(&models.Item{}).Count(&total).Error; err != nil {
		return nil, types.NewStoreUnavailable(err)
	}

	var items []models.Item
	err := s.DB.Clauses(hints.Comment("select", "items_page")).
		Order("created_at ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, types.NewStoreUnavailable(err)
	}

	details, err := s.itemDetails(items)
	if err != nil {
		return nil, err
	}

	return &PaginatedItems{
		Items:      details,
		Total:      total,
		Page:       page,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// ResolveImageURL materializes an absolute image URL. Absolute inputs pass
// through; bare filenames resolve against the caller-supplied base as
// {base}/assets/{filename}.
func ResolveImageURL(baseURL, image string) string {
	if image == "" || strings.Contains(image, "://") {
		return image
	}
	return strings.TrimSuffix(baseURL, "/") + "/assets/" + image
}

// itemDetails resolves material references for a slice of items.
func (s *CatalogService) itemDetails(items []models.Item) ([]ItemDetail, error) {
	refs, err := s.materialRefs(itemIDs(items))
	if err != nil {
		return nil, err
	}

	details := make([]ItemDetail, 0, len(items))
	for _, item := range items {
		details = append(details, ItemDetail{Item: item, Materials: refs[item.ID]})
	}
	return details, nil
}

// materialRefs loads the ordered material reference lists for the given
// items and resolves each against the materials table. Every item gets an
// entry, at minimum an empty list.
func (s *CatalogService) materialRefs(ids []string) (map[string][]MaterialRef, error) {
	refs := make(map[string][]MaterialRef, len(ids))
	for _, id := range ids {
		refs[id] = []MaterialRef{}
	}
	if len(ids) == 0 {
		return refs, nil
	}

	var joins []models.ItemMaterial
	err := s.DB.Where("item_id IN ?", ids).
		Order("item_id, position ASC").
		Find(&joins).Error
	if err != nil {
		return nil, types.NewStoreUnavailable(err)
	}
	if len(joins) == 0 {
		return refs, nil
	}

	materialIDs := make([]string, 0, len(joins))
	for _, j := range joins {
		materialIDs = append(materialIDs, j.MaterialID)
	}

	var materials []models.Material
	if err := s.DB.Where("id IN ?", materialIDs).Find(&materials).Error; err != nil {
		return nil, types.NewStoreUnavailable(err)
	}
	byID := make(map[string]*models.Material, len(materials))
	for i := range materials {
		byID[materials[i].ID] = &materials[i]
	}

	for _, j := range joins {
		ref := MaterialRef{ID: j.MaterialID}
		if m, ok := byID[j.MaterialID]; ok {
			ref.Available = true
			ref.Material = m
		}
		refs[j.ItemID] = append(refs[j.ItemID], ref)
	}

	return refs, nil
}

func itemIDs(items []models.Item) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}

// storeError maps a GORM read error on a single entity to the domain
// taxonomy: record-not-found stays distinguishable from store failure.
func storeError(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return types.NewNotFound(entity)
	}
	return types.NewStoreUnavailable(err)
}
