package engine

import (
	"github.com/clinicops/visitsplit/internal/model"
)

// Group partitions reconciled rows by provider display name. Providers
// configured in the mapping but absent from the schedule yield empty groups;
// rows whose provider has no mapping land in the reserved unmapped bucket.
// Input order is preserved within each group.
func Group(results []model.MatchResult, mapping model.ProviderMapping) model.Groups {
	groups := model.Groups{
		Providers: make(map[string]*model.ProviderGroup, len(mapping)),
		Unmapped:  &model.ProviderGroup{Provider: model.UnmappedKey},
	}
	for _, short := range mapping.ShortNames() {
		groups.Providers[short] = &model.ProviderGroup{Provider: short}
	}

	for _, res := range results {
		short, ok := mapping.Resolve(res.Appointment.RawProviderName)
		if !ok {
			groups.Unmapped.Records = append(groups.Unmapped.Records, res)
			continue
		}
		g := groups.Providers[short]
		g.Records = append(g.Records, res)
	}
	return groups
}
