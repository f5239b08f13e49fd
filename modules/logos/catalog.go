package logos

import (
	_ "embed"
	"encoding/json"
	"log"

	"courseflow-server/modules/course"
)

//go:embed logos.json
var catalogJSON []byte

var catalog []course.Logo

func init() {
	if err := json.Unmarshal(catalogJSON, &catalog); err != nil {
		log.Printf("❌ [Logos] Failed to parse embedded catalog: %v", err)
	}
}

// Catalog - the embedded set of selectable partner logos.
func Catalog() []course.Logo {
	return catalog
}
