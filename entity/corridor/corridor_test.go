package corridor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/entity/corridor"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/task"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/utils/config"
)

func newTestContext(t *testing.T) *task.Context {
	ctx := task.NewContext("test", config.Config{
		Control: config.Control{
			Step: config.ControlStep{Start: 0, Total: 60, Interval: 5},
		},
	}, nil)
	ctx.Init()
	return ctx
}

func TestArrivalRate(t *testing.T) {
	// 早高峰起点
	assert.InDelta(t, 0.4, corridor.ArrivalRate(0), 1e-9)
	// 最坏情况冲击峰值在t=150
	assert.InDelta(t, 1.2, corridor.ArrivalRate(150), 1e-9)
	// 回落平峰
	assert.InDelta(t, 0.2, corridor.ArrivalRate(200), 1e-9)
	// 全程非负
	for tt := 0.0; tt <= 600; tt++ {
		assert.GreaterOrEqual(t, corridor.ArrivalRate(tt), 0.0)
	}
}

func TestRunComparison(t *testing.T) {
	ctx := newTestContext(t)
	res := ctx.CorridorSimulator().RunComparison(300)

	// 步长5秒、含两端点，共61条记录
	assert.Len(t, res.Baseline, 61)
	assert.Len(t, res.Optimized, 61)
	assert.Len(t, res.Corridor, 8)
	assert.Equal(t, 300.0, res.DurationS)

	assert.Equal(t, 0.0, res.Baseline[0].TimeS)
	assert.Equal(t, 300.0, res.Baseline[60].TimeS)

	for i := range res.Baseline {
		assert.GreaterOrEqual(t, res.Baseline[i].QueueLength, 0.0)
		assert.GreaterOrEqual(t, res.Optimized[i].QueueLength, 0.0)
		assert.GreaterOrEqual(t, res.Baseline[i].AvgDelayS, 0.0)
		assert.GreaterOrEqual(t, res.Optimized[i].AvgDelayS, 0.0)
	}
}

func TestRunComparisonDeterministic(t *testing.T) {
	ctx := newTestContext(t)
	a := ctx.CorridorSimulator().RunComparison(300)
	b := ctx.CorridorSimulator().RunComparison(300)
	assert.Equal(t, a.Baseline, b.Baseline)
	assert.Equal(t, a.Optimized, b.Optimized)
	assert.Equal(t, a.Summary, b.Summary)
}

func TestSummary(t *testing.T) {
	ctx := newTestContext(t)
	res := ctx.CorridorSimulator().RunComparison(300)
	s := res.Summary

	b := res.Baseline[len(res.Baseline)-1]
	o := res.Optimized[len(res.Optimized)-1]
	assert.Equal(t, b.QueueLength, s.BaselineFinalQueue)
	assert.Equal(t, o.QueueLength, s.OptimizedFinalQueue)
	// CO2与油耗换算系数固定
	assert.InDelta(t, s.FuelSavedL*2.31, s.CO2SavedKg, 0.005)
	// 自适应方案不应劣于基线
	assert.LessOrEqual(t, o.AvgDelayS, b.AvgDelayS)
}

func TestAdaptivePhases(t *testing.T) {
	ctx := newTestContext(t)
	phases := ctx.CorridorSimulator().AdaptivePhases(0)
	// 无提供方时按零队列降级，每个走廊路口都有相位
	assert.Len(t, phases, 8)
	for i := 0; i < 8; i++ {
		_, ok := phases[assertID(i)]
		assert.True(t, ok)
	}
}

func assertID(i int) string {
	return config.DefaultCorridor()[i].ID
}
