package route

import (
	"fmt"
	"math"

	"git.fiblab.net/general/common/v2/mathutil"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/entity"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/utils/container"
)

const (
	// 每辆排队车辆折算的通行时间惩罚（秒）
	queuePenaltyPerVehicleS = 2.0
	// 目标路口红灯时的额外等待惩罚（秒）
	redSignalPenaltyS = 30.0
)

// 绿波建议车速（km/h）
const (
	advisorySpeedRedKmh     = 30 // 下一路口红灯：减速等绿
	advisorySpeedGreenKmh   = 50 // 下一路口绿灯：保持限速通过
	advisorySpeedDefaultKmh = 40 // 相位未知或黄灯：中速接近
)

// Router 拥堵加权路径规划器
// 功能：在静态路网上按当前路况计算最短路
// 说明：权重逐次查询计算，从不修改路网；无实时数据时退化为自由流通行时间
type Router struct {
	ctx entity.ITaskContext
}

// New 创建路径规划器
func New(ctx entity.ITaskContext) *Router {
	return &Router{ctx: ctx}
}

// edgeWeight 单条路段的通行代价（秒）
// 算法说明：
// 1. 基础代价为自由流通行时间
// 2. 目标路口的排队深度每辆车增加2秒（排队发生在驶近目标路口的方向上）
// 3. 提供相位数据且目标路口为红灯时增加30秒平均等待
func edgeWeight(e entity.RoadEdge, live *entity.LiveState) float64 {
	w := e.BaseTimeS
	if live == nil {
		return w
	}
	if live.Queues != nil {
		w += queuePenaltyPerVehicleS * math.Max(0, live.Queues[e.Target])
	}
	if phase, ok := live.Phases[e.Target]; ok && phase == entity.PhaseRed {
		w += redSignalPenaltyS
	}
	return w
}

// FindRoute Dijkstra最短路
// 功能：计算start到end的最短路径
// 参数：start/end-起终点路口ID，live-实时路况（nil表示静态权重）
// 返回：路口ID序列；起终点未知或不连通时返回空序列（正常结果，不是错误）；
// 空ID属于调用方参数错误
func (r *Router) FindRoute(start, end string, live *entity.LiveState) ([]string, error) {
	return r.search(start, end, live, false)
}

// FindRouteAStar A*最短路
// 功能：与FindRoute语义一致，使用直线距离/最大限速作为启发函数
// 说明：启发函数不会高估剩余通行时间（可采纳），结果与Dijkstra等价
func (r *Router) FindRouteAStar(start, end string, live *entity.LiveState) ([]string, error) {
	return r.search(start, end, live, true)
}

// search 最短路搜索主体
// 算法说明：
// 1. 距离表初始化为无穷大，按(代价+启发值)的最小堆扩展
// 2. 允许重复入堆，弹出时跳过已确定的路口（懒删除）
// 3. 到达终点即停止，回溯前驱表重建路径
func (r *Router) search(start, end string, live *entity.LiveState, astar bool) ([]string, error) {
	if start == "" || end == "" {
		return nil, fmt.Errorf("route endpoints must be non-empty (start=%q, end=%q)", start, end)
	}
	nm := r.ctx.NetworkManager()
	if _, err := nm.GetOrError(start); err != nil {
		log.Debugf("no route: unknown start %s", start)
		return []string{}, nil
	}
	goal, err := nm.GetOrError(end)
	if err != nil {
		log.Debugf("no route: unknown end %s", end)
		return []string{}, nil
	}

	heuristic := func(id string) float64 { return 0 }
	if astar {
		goalPos := goal.Position()
		maxSpeed := nm.MaxSpeedMS()
		if maxSpeed > 0 {
			heuristic = func(id string) float64 {
				return nm.Get(id).Position().DistanceM(goalPos) / maxSpeed
			}
		}
	}

	dist := make(map[string]float64, len(nm.Intersections()))
	for _, node := range nm.Intersections() {
		dist[node.ID()] = mathutil.INF
	}
	prev := make(map[string]string)
	settled := make(map[string]struct{})

	dist[start] = 0
	pq := container.NewPriorityQueue[string]()
	pq.HeapPush(start, heuristic(start))
	for pq.Len() > 0 {
		u, _ := pq.HeapPop()
		if u == end {
			break
		}
		if _, ok := settled[u]; ok {
			continue
		}
		settled[u] = struct{}{}
		for _, e := range nm.Neighbors(u) {
			alt := dist[u] + edgeWeight(e, live)
			if alt < dist[e.Target] {
				dist[e.Target] = alt
				prev[e.Target] = u
				pq.HeapPush(e.Target, alt+heuristic(e.Target))
			}
		}
	}

	if dist[end] == mathutil.INF {
		return []string{}, nil
	}
	path := []string{end}
	for u := end; u != start; u = prev[u] {
		path = append(path, prev[u])
	}
	// 反转为start->end顺序
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// AdvisorySpeed 绿波建议车速
// 功能：根据路径下一路口的当前相位给出接近车速（km/h）
// 参数：path-已规划路径，live-实时路况
// 返回：建议车速；路径没有下一跳时为0
func (r *Router) AdvisorySpeed(path []string, live *entity.LiveState) float64 {
	if len(path) < 2 {
		return 0
	}
	if live == nil || live.Phases == nil {
		return advisorySpeedDefaultKmh
	}
	phase, ok := live.Phases[path[1]]
	if !ok {
		return advisorySpeedDefaultKmh
	}
	switch phase {
	case entity.PhaseRed:
		return advisorySpeedRedKmh
	case entity.PhaseGreen:
		return advisorySpeedGreenKmh
	default:
		return advisorySpeedDefaultKmh
	}
}
