package evolution

import (
	"context"
	"fmt"
)

// sectors is the built-in rotation used when no network service is
// configured.
var sectors = []Record{
	{"Neon Bazaar", "Holo-signs flicker over streets that never sleep.", "Signal Drift", "#00ff9f"},
	{"Chrome Abyss", "Steel canyons swallow light and spit out static.", "Gravity Shift", "#ff6a00"},
	{"Datastream Veil", "Packets rain down like glass through a broken sky.", "Packet Storm", "#7b2dff"},
	{"Synthwave Ruins", "Old servers hum lullabies to forgotten machines.", "Echo Loop", "#ff2a6d"},
	{"Quantum Sprawl", "Every alley branches into three impossible futures.", "Phase Split", "#05d9e8"},
	{"Ghost Grid", "Dead processes walk the wires looking for a host.", "Null Pointer", "#d1f7ff"},
}

// StaticGenerator cycles through a fixed list of sectors, one per milestone.
type StaticGenerator struct {
	Step int // milestone spacing used to index the rotation
}

// Generate implements Generator.
func (g StaticGenerator) Generate(ctx context.Context, score int) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	step := g.Step
	if step <= 0 {
		step = 1000
	}
	i := score/step - 1
	if i < 0 {
		i = 0
	}
	return sectors[i%len(sectors)], nil
}

// OfflineGenerator always fails, so every milestone shows the fallback.
type OfflineGenerator struct{}

// Generate implements Generator.
func (OfflineGenerator) Generate(_ context.Context, score int) (Record, error) {
	return Record{}, fmt.Errorf("%w: offline at score %d", ErrUnavailable, score)
}
