package corridor

import (
	"math"

	"git.fiblab.net/general/common/v2/parallel"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/entity"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/entity/corridor/signal"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/utils"
)

// 延误-油耗-排放换算参数
const (
	fuelPerDelayS = 0.6 / 60 // 怠速油耗：每延误秒0.01升（0.6L/min）
	co2PerLiterKg = 2.31     // 每升燃油的CO2排放（千克）
)

// ArrivalRate t时刻每个路口的车辆到达率（veh/s）
// 功能：分段正弦到达率，模拟早高峰、极端拥堵冲击与回落
// 算法说明：
// 1. [0,120)：早高峰，0.4+0.2*sin(t*pi/120)
// 2. [120,180)：最坏情况冲击，0.8+0.4*sin((t-120)*pi/60)
// 3. [180,+∞)：回落平峰，常数0.2
func ArrivalRate(t float64) float64 {
	switch {
	case t >= 120 && t < 180:
		return 0.8 + 0.4*math.Sin((t-120)*math.Pi/60)
	case t < 120:
		return 0.4 + 0.2*math.Sin(t*math.Pi/120)
	default:
		return 0.2
	}
}

// Simulator 走廊信控对比仿真器
// 功能：在同一条走廊上并行推进固定周期与自适应两种信控方案的排队/延误状态，
// 输出逐步时间序列与汇总对比
// 说明：给定时长结果确定且无副作用，没有失败模式；各次调用互相独立，可并发使用
type Simulator struct {
	ctx entity.ITaskContext

	baseline  signal.Policy
	optimized signal.Policy
}

// NewSimulator 创建走廊仿真器
// 参数：ctx-任务上下文（提供时钟步长、走廊路口与实时状态提供方）
func NewSimulator(ctx entity.ITaskContext) *Simulator {
	return &Simulator{
		ctx:       ctx,
		baseline:  signal.NewFixedCyclePolicy(),
		optimized: signal.NewAdaptivePolicy(),
	}
}

// nodeRun 一次对比运行中单个路口的两份状态
type nodeRun struct {
	idx       int
	baseline  NodeState
	optimized NodeState
}

// step 推进该路口一个时间步
// 算法说明（对每种方案独立执行）：
// 1. 绿灯：queue = max(0, queue + arrivals - discharge*dt)
// 2. 红灯：queue += arrivals；delay += queue*dt*damping
// 3. 黄灯：queue += arrivals*partial
// 说明：自适应相位用更新前的队列深度计算，保证相位函数输入与上一步状态一致
func (r *nodeRun) step(baseline, optimized signal.Policy, t, dt, arrivals float64) {
	stepPolicy(&r.baseline, baseline, t, r.idx, dt, arrivals)
	stepPolicy(&r.optimized, optimized, t, r.idx, dt, arrivals)
}

func stepPolicy(st *NodeState, p signal.Policy, t float64, idx int, dt, arrivals float64) {
	switch p.Phase(t, idx, st.Queue) {
	case entity.PhaseGreen:
		st.Queue = math.Max(0, st.Queue+arrivals-p.DischargeRate()*dt)
	case entity.PhaseRed:
		st.Queue += arrivals
		st.Delay += st.Queue * dt * p.RedDamping()
	default: // 黄灯
		st.Queue += arrivals * p.YellowPartial()
	}
}

// RunComparison 运行两种信控方案的对比仿真
// 功能：以固定步长推进[0, durationS]（含端点）内的所有时间步，
// 对每步输出两种方案的走廊聚合指标，最后计算汇总对比
// 参数：durationS-仿真时长（秒）
// 返回：完整对比结果（走廊元数据、两条时间序列、汇总）
// 算法说明：
// 1. 每步到达车辆数 = 到达率(t) * dt，各路口相同
// 2. 各路口两种方案的状态更新相互独立，按路口并行执行
// 3. 每步聚合排队与延误，换算油耗与CO2
// 4. 平均延误 = 总延误 / (路口数 * max(1, 本步到达))，分母下限1用于避免除零
// 5. 汇总的降低百分比分母同样下限1
func (s *Simulator) RunComparison(durationS float64) *ComparisonResult {
	nodes := s.ctx.NetworkManager().Corridor()
	n := len(nodes)
	dt := s.ctx.Clock().DT

	runs := lo.Map(nodes, func(node entity.IIntersection, _ int) *nodeRun {
		return &nodeRun{idx: node.CorridorIndex()}
	})

	res := &ComparisonResult{
		Corridor: lo.Map(nodes, func(node entity.IIntersection, _ int) IntersectionMeta {
			pos := node.Position()
			return IntersectionMeta{ID: node.ID(), Name: node.Name(), Lat: pos.Lat, Lon: pos.Lon}
		}),
		DurationS: durationS,
		Baseline:  make([]Record, 0),
		Optimized: make([]Record, 0),
	}

	for t := 0.0; t <= durationS; t += dt {
		arrivals := ArrivalRate(t) * dt

		parallel.GoFor(runs, func(r *nodeRun) {
			r.step(s.baseline, s.optimized, t, dt, arrivals)
		})

		var bQueue, bDelay, oQueue, oDelay float64
		for _, r := range runs {
			bQueue += r.baseline.Queue
			bDelay += r.baseline.Delay
			oQueue += r.optimized.Queue
			oDelay += r.optimized.Delay
		}
		res.Baseline = append(res.Baseline, newRecord(t, n, arrivals, bQueue, bDelay))
		res.Optimized = append(res.Optimized, newRecord(t, n, arrivals, oQueue, oDelay))
	}

	res.Summary = summarize(res.Baseline, res.Optimized)
	log.Debugf("comparison over %gs: queue %g -> %g",
		durationS, res.Summary.BaselineFinalQueue, res.Summary.OptimizedFinalQueue)
	return res
}

// newRecord 生成单步聚合记录
func newRecord(t float64, n int, arrivals, totalQueue, totalDelay float64) Record {
	avgDelay := 0.0
	if n > 0 {
		avgDelay = totalDelay / (float64(n) * math.Max(1, arrivals))
	}
	fuel := totalDelay * fuelPerDelayS
	return Record{
		TimeS:       utils.Round(t, 0),
		QueueLength: utils.Round(totalQueue, 1),
		AvgDelayS:   utils.Round(avgDelay, 1),
		FuelL:       utils.Round(fuel, 3),
		CO2Kg:       utils.Round(fuel*co2PerLiterKg, 3),
	}
}

// summarize 由两条时间序列的末步记录计算汇总对比
func summarize(baseline, optimized []Record) Summary {
	if len(baseline) == 0 || len(optimized) == 0 {
		return Summary{}
	}
	b := baseline[len(baseline)-1]
	o := optimized[len(optimized)-1]
	fuelSaved := utils.Round(b.FuelL-o.FuelL, 3)
	return Summary{
		QueueReductionPct:   utils.Round((b.QueueLength-o.QueueLength)/math.Max(1, b.QueueLength)*100, 1),
		DelayReductionPct:   utils.Round((b.AvgDelayS-o.AvgDelayS)/math.Max(1, b.AvgDelayS)*100, 1),
		FuelSavedL:          fuelSaved,
		CO2SavedKg:          utils.Round(fuelSaved*co2PerLiterKg, 3),
		BaselineFinalQueue:  b.QueueLength,
		OptimizedFinalQueue: o.QueueLength,
	}
}

// AdaptivePhases 基于实时队列的自适应相位
// 功能：用实时状态提供方报告的队列深度计算走廊各路口当前的自适应相位
// 参数：t-仿真时间（秒）
// 返回：路口ID->相位映射
// 说明：提供方缺失或未覆盖某路口时按零队列计算（受支持的降级模式）
func (s *Simulator) AdaptivePhases(t float64) map[string]entity.SignalPhase {
	nodes := s.ctx.NetworkManager().Corridor()
	var live entity.LiveState
	if p := s.ctx.LiveProvider(); p != nil {
		ids := lo.Map(nodes, func(node entity.IIntersection, _ int) string { return node.ID() })
		live = p.GetState(ids)
	}
	phases := make(map[string]entity.SignalPhase, len(nodes))
	for _, node := range nodes {
		queue := 0.0
		if live.Queues != nil {
			queue = live.Queues[node.ID()]
		}
		phases[node.ID()] = signal.Adaptive(t, node.CorridorIndex(), queue)
	}
	return phases
}
