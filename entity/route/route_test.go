package route_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/entity"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/task"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/utils/config"
)

// newDiamondContext 构建菱形测试路网
//
//	A --(400m)-- B --(500m)-- D
//	A --(500m)-- C --(500m)-- D
//
// 静态权重下经B更快（28.8s+36s），B严重拥堵时应改走C
func newDiamondContext(t *testing.T) *task.Context {
	ctx := task.NewContext("test", config.Config{
		Network: config.Network{
			Intersections: []config.NetworkNode{
				{ID: "A", Lat: 23.0300, Lon: 72.5400},
				{ID: "B", Lat: 23.0345, Lon: 72.5445},
				{ID: "C", Lat: 23.0255, Lon: 72.5445},
				{ID: "D", Lat: 23.0300, Lon: 72.5490},
			},
			Edges: []config.NetworkEdge{
				{Source: "A", Target: "B", DistanceM: 400, SpeedLimitKmh: 50},
				{Source: "B", Target: "D", DistanceM: 500, SpeedLimitKmh: 50},
				{Source: "A", Target: "C", DistanceM: 500, SpeedLimitKmh: 50},
				{Source: "C", Target: "D", DistanceM: 500, SpeedLimitKmh: 50},
			},
		},
	}, nil)
	ctx.Init()
	return ctx
}

func TestFindRouteStatic(t *testing.T) {
	ctx := newDiamondContext(t)
	r := ctx.Router()

	path, err := r.FindRoute("A", "D", nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "D"}, path)

	// 500米50km/h的路段自由流通行时间为36秒
	base, ok := ctx.NetworkManager().BaseTravelTime("B", "D")
	assert.True(t, ok)
	assert.InDelta(t, 36.0, base, 1e-9)
}

func TestFindRouteWithCongestion(t *testing.T) {
	ctx := newDiamondContext(t)
	r := ctx.Router()

	// B路口50辆排队：A-B权重28.8+100秒，绕行C更快
	live := &entity.LiveState{Queues: map[string]float64{"B": 50}}
	path, err := r.FindRoute("A", "D", live)
	assert.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "D"}, path)
}

func TestFindRouteWithRedSignal(t *testing.T) {
	ctx := newDiamondContext(t)
	r := ctx.Router()

	// B红灯+30秒等待惩罚，足以抵消400米的优势
	live := &entity.LiveState{
		Queues: map[string]float64{},
		Phases: map[string]entity.SignalPhase{"B": entity.PhaseRed, "C": entity.PhaseGreen},
	}
	path, err := r.FindRoute("A", "D", live)
	assert.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "D"}, path)
}

func TestFindRouteAStarAgreesWithDijkstra(t *testing.T) {
	ctx := newDiamondContext(t)
	r := ctx.Router()

	for _, live := range []*entity.LiveState{
		nil,
		{Queues: map[string]float64{"B": 50}},
		{Queues: map[string]float64{"C": 80, "B": 5}},
	} {
		want, err := r.FindRoute("A", "D", live)
		assert.NoError(t, err)
		got, err := r.FindRouteAStar("A", "D", live)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestFindRouteEdgeCases(t *testing.T) {
	ctx := newDiamondContext(t)
	r := ctx.Router()

	// 空ID是参数错误
	_, err := r.FindRoute("", "D", nil)
	assert.Error(t, err)
	_, err = r.FindRoute("A", "", nil)
	assert.Error(t, err)

	// 未知路口不是错误，返回空路径
	path, err := r.FindRoute("A", "nowhere", nil)
	assert.NoError(t, err)
	assert.Empty(t, path)

	// 起终点相同
	path, err = r.FindRoute("A", "A", nil)
	assert.NoError(t, err)
	assert.Equal(t, []string{"A"}, path)

	// 走廊路口独立于城市路网，不连通，返回空路径
	path, err = r.FindRoute("A", "INT_0", nil)
	assert.NoError(t, err)
	assert.Empty(t, path)
}

func TestAdvisorySpeed(t *testing.T) {
	ctx := newDiamondContext(t)
	r := ctx.Router()
	path := []string{"A", "B", "D"}

	// 无下一跳
	assert.Equal(t, 0.0, r.AdvisorySpeed([]string{"A"}, nil))
	assert.Equal(t, 0.0, r.AdvisorySpeed(nil, nil))

	// 相位数据缺失时保持中速
	assert.Equal(t, 40.0, r.AdvisorySpeed(path, nil))
	assert.Equal(t, 40.0, r.AdvisorySpeed(path, &entity.LiveState{}))
	assert.Equal(t, 40.0, r.AdvisorySpeed(path, &entity.LiveState{
		Phases: map[string]entity.SignalPhase{"D": entity.PhaseGreen},
	}))

	// 下一路口相位决定建议车速
	assert.Equal(t, 30.0, r.AdvisorySpeed(path, &entity.LiveState{
		Phases: map[string]entity.SignalPhase{"B": entity.PhaseRed},
	}))
	assert.Equal(t, 50.0, r.AdvisorySpeed(path, &entity.LiveState{
		Phases: map[string]entity.SignalPhase{"B": entity.PhaseGreen},
	}))
	assert.Equal(t, 40.0, r.AdvisorySpeed(path, &entity.LiveState{
		Phases: map[string]entity.SignalPhase{"B": entity.PhaseYellow},
	}))
}
