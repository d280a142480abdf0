package overpass

import (
	"fmt"
	"strings"
)

// Mapping is one OSM tag rule: elements whose tag value is in Values fall
// into Category. SubCategoryFrom optionally names a secondary tag whose
// value becomes the sub-category; otherwise the matched value itself is used.
type Mapping struct {
	Tag             string
	Values          []string
	Category        string
	SubCategoryFrom string
}

// Mappings is evaluated top-to-bottom, first match wins.
var Mappings = []Mapping{
	{
		Tag:             "amenity",
		Values:          []string{"restaurant", "fast_food", "food_court", "bbq"},
		Category:        "restaurant",
		SubCategoryFrom: "cuisine",
	},
	{
		Tag:      "amenity",
		Values:   []string{"cafe", "ice_cream"},
		Category: "cafe",
	},
	{
		Tag:      "amenity",
		Values:   []string{"bar", "pub", "biergarten", "nightclub"},
		Category: "nightlife",
	},
	{
		Tag:      "tourism",
		Values:   []string{"attraction", "viewpoint", "artwork"},
		Category: "attraction",
	},
	{
		Tag:      "tourism",
		Values:   []string{"museum", "gallery"},
		Category: "museum",
	},
	{
		Tag:      "amenity",
		Values:   []string{"place_of_worship"},
		Category: "temple_shrine",
	},
	{
		Tag:      "leisure",
		Values:   []string{"park", "garden", "nature_reserve", "playground"},
		Category: "park",
	},
	{
		Tag: "shop",
		Values: []string{
			"supermarket",
			"convenience",
			"department_store",
			"mall",
			"clothes",
			"gift",
			"books",
			"electronics",
			"variety_store",
		},
		Category: "shopping",
	},
	{
		Tag:      "amenity",
		Values:   []string{"theatre", "cinema", "arts_centre"},
		Category: "entertainment",
	},
	{
		Tag:      "amenity",
		Values:   []string{"bus_station", "ferry_terminal"},
		Category: "transport_hub",
	},
	{
		Tag:      "railway",
		Values:   []string{"station", "halt"},
		Category: "transport_hub",
	},
}

// BuildQuery renders an Overpass QL query that selects node and way
// elements matching any rule inside the bounding box. bbox order is
// (south,west,north,east). "out center" adds a centroid for ways.
func BuildQuery(bbox string) string {
	nodeQueries := make([]string, 0, len(Mappings))
	wayQueries := make([]string, 0, len(Mappings))

	for _, m := range Mappings {
		valuePattern := strings.Join(m.Values, "|")
		nodeQueries = append(nodeQueries,
			fmt.Sprintf(`node["%s"~"^(%s)$"](%s);`, m.Tag, valuePattern, bbox))
		wayQueries = append(wayQueries,
			fmt.Sprintf(`way["%s"~"^(%s)$"](%s);`, m.Tag, valuePattern, bbox))
	}

	return fmt.Sprintf(`[out:json][timeout:120];
(
  %s
  %s
);
out center body;`,
		strings.Join(nodeQueries, "\n  "),
		strings.Join(wayQueries, "\n  "))
}

// ResolveCategory maps an element's tag set to (category, subCategory).
// Evaluation is ordered first-match; ok is false when no rule matches and
// the caller must skip the element.
func ResolveCategory(tags map[string]string) (category string, subCategory *string, ok bool) {
	for _, m := range Mappings {
		tagValue, present := tags[m.Tag]
		if !present {
			continue
		}
		for _, v := range m.Values {
			if tagValue != v {
				continue
			}
			if m.SubCategoryFrom != "" {
				if sub, found := tags[m.SubCategoryFrom]; found && sub != "" {
					return m.Category, &sub, true
				}
				return m.Category, nil, true
			}
			return m.Category, &tagValue, true
		}
	}
	return "", nil, false
}
