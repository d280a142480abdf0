package usecase

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/trip-planner-backend/internal/domain"
	"github.com/trip-planner-backend/internal/infrastructure/overpass"
)

// Field length caps matching the pois column definitions.
const (
	maxWebsiteLen = 1000
	maxPhoneLen   = 50
)

// namePriority lists OSM name tags in preference order per display locale.
// Locales without an entry fall back to the "en" chain.
var namePriority = map[string][]string{
	"ko": {"name:ko", "name:en", "name", "name:ja"},
	"en": {"name:en", "name", "name:ja"},
}

// nameLocalPriority picks the on-the-ground local name independently of the
// display locale.
var nameLocalPriority = []string{"name:ja", "name"}

func selectName(tags map[string]string, locale string) string {
	chain, ok := namePriority[locale]
	if !ok {
		chain = namePriority["en"]
	}
	for _, key := range chain {
		if v := strings.TrimSpace(tags[key]); v != "" {
			return v
		}
	}
	return ""
}

// selectNameLocal returns the local-script name, or nil when it would just
// repeat the display name.
func selectNameLocal(tags map[string]string, name string) *string {
	for _, key := range nameLocalPriority {
		v := strings.TrimSpace(tags[key])
		if v == "" {
			continue
		}
		if v == name {
			return nil
		}
		return &v
	}
	return nil
}

// selectAddress prefers the full pre-composed address tag and otherwise
// joins the city/street/housenumber parts that are present.
func selectAddress(tags map[string]string) *string {
	if full := strings.TrimSpace(tags["addr:full"]); full != "" {
		return &full
	}

	parts := make([]string, 0, 3)
	for _, key := range []string{"addr:city", "addr:street", "addr:housenumber"} {
		if v := strings.TrimSpace(tags[key]); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	joined := strings.Join(parts, " ")
	return &joined
}

// collectTags derives the searchable tag list: cuisine values split on ";"
// plus sentinel tags for metadata worth surfacing as filters.
func collectTags(tags map[string]string) []string {
	var out []string

	if cuisine := tags["cuisine"]; cuisine != "" {
		for _, c := range strings.Split(cuisine, ";") {
			if c = strings.TrimSpace(c); c != "" {
				out = append(out, c)
			}
		}
	}

	if tags["wikidata"] != "" {
		out = append(out, "has_wikidata")
	}
	if tags["wikipedia"] != "" {
		out = append(out, "has_wikipedia")
	}
	if tags["opening_hours"] != "" {
		out = append(out, "has_hours")
	}

	return out
}

// openingHoursPayload wraps the raw OSM opening_hours string. Parsed stays
// false until a structured-hours parser lands; consumers key off it.
type openingHoursPayload struct {
	Raw    string `json:"raw"`
	Parsed bool   `json:"parsed"`
}

func encodeOpeningHours(tags map[string]string) *string {
	raw := tags["opening_hours"]
	if raw == "" {
		return nil
	}
	data, err := json.Marshal(openingHoursPayload{Raw: raw, Parsed: false})
	if err != nil {
		return nil
	}
	s := string(data)
	return &s
}

func truncated(tags map[string]string, key string, max int) *string {
	v := strings.TrimSpace(tags[key])
	if v == "" {
		return nil
	}
	if runes := []rune(v); len(runes) > max {
		v = string(runes[:max])
	}
	return &v
}

// TransformElements converts raw Overpass elements into canonical upsert
// records. Elements without tags, coordinates, a matching category or a
// usable name are dropped; duplicate source IDs keep the first occurrence.
func TransformElements(elements []domain.OverpassElement, cityID uuid.UUID, locale string) []domain.POIUpsert {
	records := make([]domain.POIUpsert, 0, len(elements))
	seen := make(map[string]struct{}, len(elements))

	for _, el := range elements {
		if len(el.Tags) == 0 {
			continue
		}

		lat, lon, ok := el.Coordinate()
		if !ok {
			continue
		}

		sourceID := el.SourceID()
		if _, dup := seen[sourceID]; dup {
			continue
		}
		seen[sourceID] = struct{}{}

		category, subCategory, ok := overpass.ResolveCategory(el.Tags)
		if !ok {
			continue
		}

		name := selectName(el.Tags, locale)
		if name == "" {
			continue
		}

		records = append(records, domain.POIUpsert{
			CityID:       cityID,
			Name:         name,
			NameLocal:    selectNameLocal(el.Tags, name),
			Lat:          lat,
			Lon:          lon,
			Category:     category,
			SubCategory:  subCategory,
			Address:      selectAddress(el.Tags),
			SourceID:     sourceID,
			Tags:         collectTags(el.Tags),
			Locale:       locale,
			OpeningHours: encodeOpeningHours(el.Tags),
			Website:      truncated(el.Tags, "website", maxWebsiteLen),
			Phone:        truncated(el.Tags, "phone", maxPhoneLen),
		})
	}

	return records
}
