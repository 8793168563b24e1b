package sim

// Datacenter is the selectable level record: match duration plus per-kind
// spawn-weight modifiers. Selected before a match and held immutable for its
// duration.
type Datacenter struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Duration float32 `json:"duration"` // seconds to survive for victory

	// SpawnWeights multiplies a kind's base spawn weight; absent kinds
	// default to 1.
	SpawnWeights map[EnemyKind]float32 `json:"spawn_weights,omitempty"`
}

func (d Datacenter) weightModifier(kind EnemyKind) float32 {
	if d.SpawnWeights == nil {
		return 1
	}
	if m, ok := d.SpawnWeights[kind]; ok {
		return m
	}
	return 1
}

var Datacenters = []Datacenter{
	{
		ID:       "dc-frankfurt",
		Name:     "Frankfurt Edge Node",
		Duration: 180,
	},
	{
		ID:       "dc-virginia",
		Name:     "Virginia Core Cluster",
		Duration: 300,
		SpawnWeights: map[EnemyKind]float32{
			EnemyWorm:   1.5,
			EnemyBotnet: 1.25,
		},
	},
	{
		ID:       "dc-singapore",
		Name:     "Singapore Backbone",
		Duration: 420,
		SpawnWeights: map[EnemyKind]float32{
			EnemyRansomware: 1.5,
			EnemyRootkit:    2,
			EnemySpyware:    1.5,
		},
	},
}

// DatacenterByID resolves a level record, falling back to the first entry so
// a stale ID in a snapshot never yields a zero-duration match.
func DatacenterByID(id string) (Datacenter, bool) {
	for _, d := range Datacenters {
		if d.ID == id {
			return d, true
		}
	}
	return Datacenters[0], false
}
