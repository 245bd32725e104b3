package config

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// blockCatalogSchema структура списка блоков: id 1..255, имя в нижнем регистре, PNG-текстура
const blockCatalogSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "minItems": 1,
  "items": {
    "type": "object",
    "required": ["id", "name", "texture"],
    "properties": {
      "id":      {"type": "integer", "minimum": 1, "maximum": 255},
      "name":    {"type": "string", "pattern": "^[a-z0-9_]+$"},
      "texture": {"type": "string", "pattern": "\\.png$"}
    }
  }
}`

var blockCatalog = jsonschema.MustCompileString("blocks.schema.json", blockCatalogSchema)

// validateBlockCatalog проверяет список блоков по JSON Schema
func validateBlockCatalog(blocks []BlockConfig) error {
	raw, err := json.Marshal(blocks)
	if err != nil {
		return fmt.Errorf("ошибка сериализации списка блоков: %w", err)
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("ошибка разбора списка блоков: %w", err)
	}

	return blockCatalog.Validate(doc)
}
