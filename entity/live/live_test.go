package live_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/entity"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/entity/live"
)

var testIDs = []string{"0-0", "3-4", "6-7", "INT_0"}

func TestSyntheticGetState(t *testing.T) {
	p := live.NewSyntheticProviderWithClock(42, func() float64 { return 9 * 3600 })
	state := p.GetState(testIDs)

	assert.Len(t, state.Queues, len(testIDs))
	assert.Len(t, state.Phases, len(testIDs))
	for _, id := range testIDs {
		q, ok := state.Queues[id]
		assert.True(t, ok)
		assert.GreaterOrEqual(t, q, 0.0)
		phase, ok := state.Phases[id]
		assert.True(t, ok)
		assert.Contains(t, []entity.SignalPhase{
			entity.PhaseRed, entity.PhaseYellow, entity.PhaseGreen,
		}, phase)
	}
}

func TestSyntheticDeterministic(t *testing.T) {
	clock := func() float64 { return 12 * 3600 }
	a := live.NewSyntheticProviderWithClock(7, clock).GetState(testIDs)
	b := live.NewSyntheticProviderWithClock(7, clock).GetState(testIDs)
	assert.Equal(t, a, b)
}

func TestSyntheticPhaseIsDeterministic(t *testing.T) {
	// 相位只由时刻与路口ID决定，与随机噪声无关
	clock := func() float64 { return 1000 }
	a := live.NewSyntheticProviderWithClock(1, clock).GetState(testIDs)
	b := live.NewSyntheticProviderWithClock(999, clock).GetState(testIDs)
	assert.Equal(t, a.Phases, b.Phases)
}

func TestExternalProvider(t *testing.T) {
	p := live.NewExternalProvider(func(ids []string) entity.LiveState {
		return entity.LiveState{
			Queues: map[string]float64{"0-0": 12, "3-4": -5},
			Phases: map[string]entity.SignalPhase{"0-0": entity.PhaseGreen},
		}
	})
	state := p.GetState([]string{"0-0", "3-4", "6-7"})

	assert.Equal(t, 12.0, state.Queues["0-0"])
	// 负数排队截断为0
	assert.Equal(t, 0.0, state.Queues["3-4"])
	// 未返回的路口补0
	assert.Equal(t, 0.0, state.Queues["6-7"])
	assert.Equal(t, entity.PhaseGreen, state.Phases["0-0"])
}
