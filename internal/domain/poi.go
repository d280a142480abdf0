package domain

import (
	"time"

	"github.com/google/uuid"
)

// PoiSource identifies which upstream a POI row came from.
const (
	SourceOSM = "osm"
)

// POI categories (pois_category_enum in the database).
const (
	CategoryRestaurant    = "restaurant"
	CategoryCafe          = "cafe"
	CategoryNightlife     = "nightlife"
	CategoryAttraction    = "attraction"
	CategoryMuseum        = "museum"
	CategoryTempleShrine  = "temple_shrine"
	CategoryPark          = "park"
	CategoryShopping      = "shopping"
	CategoryEntertainment = "entertainment"
	CategoryTransportHub  = "transport_hub"
)

// POIUpsert is one canonical record produced by the sync transformer.
// A record only exists if it has coordinates, a resolvable category and a
// usable name; partial rows are never emitted.
type POIUpsert struct {
	CityID       uuid.UUID
	Name         string
	NameLocal    *string
	Lat          float64
	Lon          float64
	Category     string
	SubCategory  *string
	Address      *string
	SourceID     string // "node/123", "way/456" - conflict key together with source
	Tags         []string
	Locale       string
	OpeningHours *string // jsonb payload, {"raw": "...", "parsed": false}
	Website      *string
	Phone        *string
}

// POI is the persisted row shape (pois table).
type POI struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	CityID        uuid.UUID  `json:"city_id" db:"city_id"`
	Name          string     `json:"name" db:"name"`
	NameLocal     *string    `json:"name_local,omitempty" db:"name_local"`
	Locale        *string    `json:"locale,omitempty" db:"locale"`
	Lat           float64    `json:"lat" db:"lat"`
	Lon           float64    `json:"lon" db:"lon"`
	Category      string     `json:"category" db:"category"`
	SubCategory   *string    `json:"sub_category,omitempty" db:"sub_category"`
	Address       *string    `json:"address,omitempty" db:"address"`
	Source        string     `json:"source" db:"source"`
	SourceID      *string    `json:"source_id,omitempty" db:"source_id"`
	GooglePlaceID *string    `json:"google_place_id,omitempty" db:"google_place_id"`
	Tags          []string   `json:"tags" db:"-"`
	Website       *string    `json:"website,omitempty" db:"website"`
	Phone         *string    `json:"phone,omitempty" db:"phone"`
	IsActive      bool       `json:"is_active" db:"is_active"`
	LastSyncedAt  *time.Time `json:"last_synced_at,omitempty" db:"last_synced_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// POISyncStatus is one row of the per-city sync report.
type POISyncStatus struct {
	CityNameEn  string     `json:"city_name_en"`
	Total       int64      `json:"total"`
	Active      int64      `json:"active"`
	Inactive    int64      `json:"inactive"`
	WithPlaceID int64      `json:"with_place_id"`
	LastSynced  *time.Time `json:"last_synced,omitempty"`
}

// CitySyncResult holds per-city counters for one sync pass.
type CitySyncResult struct {
	CityNameEn  string `json:"city_name_en"`
	Upserted    int64  `json:"upserted"`
	Deactivated int64  `json:"deactivated"`
	Skipped     bool   `json:"skipped,omitempty"`
}

// SyncSummary aggregates a full sync pass across cities.
type SyncSummary struct {
	StartedAt   time.Time        `json:"started_at"`
	Cities      []CitySyncResult `json:"cities"`
	Upserted    int64            `json:"upserted"`
	Deactivated int64            `json:"deactivated"`
}
