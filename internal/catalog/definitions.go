// Package catalog holds the category-definition table that drives catalog
// grouping. Definitions are data, not code: the embedded table ships with
// the binary and can be replaced through CATEGORIES_FILE without a rebuild.
// Slugs are stable keys clients reconcile against.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/liviin/homecare-api/data"
	"github.com/liviin/homecare-api/internal/models"
)

// Definition is one display group of the catalog tree. Category is one of
// the fixed enum values; SubCategory is empty for catch-all groups that
// match on category alone.
type Definition struct {
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	NameEN        string `json:"nameEn"`
	NameES        string `json:"nameEs"`
	Category      string `json:"category"`
	CategoryEN    string `json:"categoryEn"`
	CategoryES    string `json:"categoryEs"`
	SubCategory   string `json:"subCategory,omitempty"`
	SubCategoryEN string `json:"subCategoryEn,omitempty"`
	SubCategoryES string `json:"subCategoryEs,omitempty"`
	DescriptionEN string `json:"descriptionEn"`
	DescriptionES string `json:"descriptionEs"`
	Image         string `json:"image"`
}

// Load reads the definition table from path, or from the embedded table
// when path is empty. Definition order in the file is the display order of
// the catalog tree.
func Load(path string) ([]Definition, error) {
	raw := data.CategoriesJSON
	if path != "" {
		var err error
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read category definitions: %w", err)
		}
	}

	var defs []Definition
	if err := json.Unmarshal(raw, &defs); err != nil {
		return nil, fmt.Errorf("failed to parse category definitions: %w", err)
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("category definition table is empty")
	}

	seen := make(map[string]struct{}, len(defs))
	for _, def := range defs {
		if def.Slug == "" {
			return nil, fmt.Errorf("category definition %q has no slug", def.Name)
		}
		if _, dup := seen[def.Slug]; dup {
			return nil, fmt.Errorf("duplicate category slug %q", def.Slug)
		}
		seen[def.Slug] = struct{}{}
		if !models.ValidCategory(def.Category) {
			return nil, fmt.Errorf("category definition %q has invalid category %q", def.Slug, def.Category)
		}
	}

	return defs, nil
}

// SubCategories returns the fixed sub-category set for one category.
func SubCategories(defs []Definition, category string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, def := range defs {
		if def.Category == category && def.SubCategory != "" {
			set[def.SubCategory] = struct{}{}
		}
	}
	return set
}

// Matches reports whether an item belongs to this definition: sub-category
// equality when the item carries one, category equality otherwise.
func (d Definition) Matches(item models.Item) bool {
	if item.SubCategory != "" {
		return d.SubCategory == item.SubCategory
	}
	return d.Category == item.Category
}
