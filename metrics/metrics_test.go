package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showdown-tracker/parser"
)

func TestRecorderObservesParser(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec := NewRecorder(reg)

	parser.ParseLog(`|switch|p1a: Pikachu|Pikachu, L50, M|100/100
|turn|1
|-damage|p1a: Pikachu|40/100
|-damage|p1a: Pikachu|much
|-damage|p2a: Starmie|10/100
|-fieldstart|move: Grassy Terrain`, parser.WithObserver(rec))

	assert.Equal(t, float64(6), testutil.ToFloat64(rec.LinesTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(rec.EventsApplied.WithLabelValues("switch")))
	assert.Equal(t, float64(1), testutil.ToFloat64(rec.EventsApplied.WithLabelValues("-damage")))
	assert.Equal(t, float64(1), testutil.ToFloat64(rec.LinesSkipped.WithLabelValues("unparseable_hp")))
	assert.Equal(t, float64(1), testutil.ToFloat64(rec.LinesSkipped.WithLabelValues("unknown_creature")))
	assert.Equal(t, float64(1), testutil.ToFloat64(rec.LinesSkipped.WithLabelValues("unrecognized_tag")))

	count, err := testutil.GatherAndCount(reg, "showdown_events_applied_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
