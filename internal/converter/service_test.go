package converter

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/runnerr0/unitconv/internal/history"
	"github.com/runnerr0/unitconv/internal/storage"
	"github.com/runnerr0/unitconv/internal/units"
)

var fixedNow = time.UnixMilli(1700000000000)

func newTestService(t *testing.T) (*Service, *history.Log) {
	t.Helper()
	log := history.NewLog(storage.NewMemoryStore(), zap.NewNop())
	svc := NewService(log, zap.NewNop(), WithClock(func() time.Time { return fixedNow }))
	return svc, log
}

func TestConvert_LengthRecordsHistory(t *testing.T) {
	svc, log := newTestService(t)
	ctx := context.Background()

	res, err := svc.Convert(ctx, Request{Value: 1, FromUnit: "Meter", ToUnit: "Centimeter", Category: units.Length})
	require.NoError(t, err)

	assert.Equal(t, 0.01, res.Value)
	assert.Equal(t, "0.010000", res.Display)
	assert.Equal(t, "Formula: 1 m × (1 / 100) = 0.0100 cm", res.Formula)
	require.NotNil(t, res.Record)

	records := log.List(ctx)
	require.Len(t, records, 1)
	assert.Equal(t, res.Record.ID, records[0].ID)
	assert.Equal(t, "meter", records[0].FromUnit)
	assert.Equal(t, "centimeter", records[0].ToUnit)
	assert.Equal(t, int64(1700000000000), records[0].Timestamp)
}

func TestConvert_Temperature(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Convert(context.Background(), Request{Value: 0, FromUnit: "celsius", ToUnit: "fahrenheit", Category: units.Temperature})
	require.NoError(t, err)

	assert.Equal(t, 32.0, res.Value)
	assert.Equal(t, "32.000000", res.Display)
	assert.Equal(t, "Formula: (0°C × 9/5) + 32 = 32.0000°F", res.Formula)
}

func TestConvert_UnknownUnit(t *testing.T) {
	svc, log := newTestService(t)
	ctx := context.Background()

	_, err := svc.Convert(ctx, Request{Value: 1, FromUnit: "Meter", ToUnit: "Parsec", Category: units.Length})
	assert.ErrorIs(t, err, units.ErrUnknownUnit)

	_, err = svc.Convert(ctx, Request{Value: 1, FromUnit: "Meter", ToUnit: "Meter", Category: "energy"})
	assert.ErrorIs(t, err, units.ErrUnknownCategory)

	assert.Empty(t, log.List(ctx))
}

func TestConvert_NaNBlanksOutputWithoutRecording(t *testing.T) {
	svc, log := newTestService(t)
	ctx := context.Background()

	res, err := svc.Convert(ctx, Request{Value: math.NaN(), FromUnit: "Meter", ToUnit: "Foot", Category: units.Length})
	require.NoError(t, err)

	assert.True(t, math.IsNaN(res.Value))
	assert.Empty(t, res.Display)
	assert.Empty(t, res.Formula)
	assert.Nil(t, res.Record)
	assert.Empty(t, log.List(ctx))
}

func TestConvert_InfinityNotRecorded(t *testing.T) {
	svc, log := newTestService(t)
	ctx := context.Background()

	res, err := svc.Convert(ctx, Request{Value: math.Inf(1), FromUnit: "Meter", ToUnit: "Foot", Category: units.Length})
	require.NoError(t, err)

	assert.True(t, math.IsInf(res.Value, 1))
	assert.Equal(t, "Infinity", res.Display)
	assert.Nil(t, res.Record)
	assert.Empty(t, log.List(ctx))
}

func TestConvert_HistoryCapacity(t *testing.T) {
	svc, log := newTestService(t)
	ctx := context.Background()

	for i := 1; i <= history.Capacity+1; i++ {
		_, err := svc.Convert(ctx, Request{Value: float64(i), FromUnit: "Kilogram", ToUnit: "Gram", Category: units.Weight})
		require.NoError(t, err)
	}

	records := log.List(ctx)
	require.Len(t, records, history.Capacity)
	assert.Equal(t, float64(history.Capacity+1), records[0].FromValue)
	assert.Equal(t, 2.0, records[history.Capacity-1].FromValue)
}

func TestReuse(t *testing.T) {
	svc, log := newTestService(t)
	ctx := context.Background()

	first, err := svc.Convert(ctx, Request{Value: 100, FromUnit: "Celsius", ToUnit: "Kelvin", Category: units.Temperature})
	require.NoError(t, err)

	again, err := svc.Reuse(ctx, first.Record.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Value, again.Value)
	assert.Equal(t, "Celsius", again.From.Name)
	assert.NotEqual(t, first.Record.ID, again.Record.ID)
	assert.Len(t, log.List(ctx), 2)
}

func TestReuse_UnknownID(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Reuse(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestRequestSwapped(t *testing.T) {
	req := Request{Value: 3, FromUnit: "Meter", ToUnit: "Foot", Category: units.Length}
	swapped := req.Swapped()

	assert.Equal(t, "Foot", swapped.FromUnit)
	assert.Equal(t, "Meter", swapped.ToUnit)
	assert.Equal(t, req.Value, swapped.Value)
}
