package service

const (
	XPPerModule = 50
	XPPerLevel  = 100
)

type BadgeThreshold struct {
	ID      string
	Modules int
}

// BadgeThresholds are ordered by the number of completed modules they require.
var BadgeThresholds = []BadgeThreshold{
	{ID: "first-steps", Modules: 1},
	{ID: "quick-learner", Modules: 3},
	{ID: "top-scorer", Modules: 5},
	{ID: "expert", Modules: 10},
	{ID: "master", Modules: 15},
}

func LevelForXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// AwardBadges returns earned plus every threshold badge modulesCompleted
// qualifies for. Existing badges are kept in place; changed reports whether
// anything was added.
func AwardBadges(modulesCompleted int, earned []string) (badges []string, changed bool) {
	have := make(map[string]struct{}, len(earned))
	badges = make([]string, 0, len(earned)+len(BadgeThresholds))
	for _, id := range earned {
		have[id] = struct{}{}
		badges = append(badges, id)
	}

	for _, threshold := range BadgeThresholds {
		if modulesCompleted < threshold.Modules {
			break
		}
		if _, ok := have[threshold.ID]; ok {
			continue
		}
		badges = append(badges, threshold.ID)
		changed = true
	}
	return badges, changed
}
