package data

import (
	_ "embed"
)

//go:embed categories.json
var CategoriesJSON []byte
