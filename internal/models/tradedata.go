// internal/models/tradedata.go
package models

// TradeRecord is a bulk-imported analytical row from the trade-data CSV.
type TradeRecord struct {
	BaseModel
	ReporterName          string  `json:"reporter_name" gorm:"size:100;not null;index"`
	ReporterCode          string  `json:"reporter_code" gorm:"size:20"`
	PartnerName           string  `json:"partner_name" gorm:"size:100;not null;index"`
	PartnerCode           string  `json:"partner_code" gorm:"size:20"`
	Year                  int     `json:"year" gorm:"not null;index"`
	Value                 float64 `json:"value" gorm:"not null"`
	Classification        string  `json:"classification" gorm:"size:20"`
	ClassificationVersion string  `json:"classification_version" gorm:"size:20"`
	ProductCode           string  `json:"product_code" gorm:"size:20"`
	MTNCategories         string  `json:"mtn_categories" gorm:"size:50;index"`
	IsActive              bool    `json:"-" gorm:"default:true;index"`
}

// SectorMTNCategory maps the platform's sector names onto the MTN category
// codes the imported rows carry. Callers filter through this table, never
// by the literal sector string.
var SectorMTNCategory = map[Sector]string{
	SectorSeafood: "AG",
	SectorTextile: "NON_AG",
}
