package entity

import "context"

// entity/network/intersection.go的依赖倒置
type IIntersection interface {
	ID() string            // 获取路口ID
	Name() string          // 获取路口展示名
	Position() Position    // 获取路口位置
	CorridorIndex() int    // 获取走廊序号，非走廊路口为-1
	InCorridor() bool      // 判断是否属于走廊
}

// entity/network/manager.go的依赖倒置
type INetworkManager interface {
	// 根据路网定义初始化，仅在启动时调用一次，之后路网只读
	Init(def NetworkDefinition)
	// 所有路口（含走廊路口）
	Intersections() []IIntersection
	// 走廊路口，按走廊序号排列
	Corridor() []IIntersection
	// 所有无向路段
	Edges() []RoadEdge
	// 根据ID获取路口，不存在则panic
	Get(id string) IIntersection
	// 根据ID获取路口，不存在则返回错误
	GetOrError(id string) (IIntersection, error)
	// 路段自由流通行时间（秒），两个方向等价；不存在该路段时second为false
	BaseTravelTime(u, v string) (float64, bool)
	// 某路口的全部邻接路段（按行进方向改写source/target）
	Neighbors(id string) []RoadEdge
	// 路网最大限速（m/s），用于可采纳的A*启发函数
	MaxSpeedMS() float64
}

// entity/route/router.go的依赖倒置
type IRouter interface {
	// Dijkstra最短路。live为nil时使用静态权重；
	// 起终点未知或不连通时返回空路径（正常结果），空ID返回参数错误
	FindRoute(start, end string, live *LiveState) ([]string, error)
	// A*最短路，直线距离启发，语义与FindRoute一致
	FindRouteAStar(start, end string, live *LiveState) ([]string, error)
	// 绿波建议车速（km/h）：根据路径下一路口的相位给出，无下一跳时为0
	AdvisorySpeed(path []string, live *LiveState) float64
}

// entity/spat/engine.go的依赖倒置
type ISpatEngine interface {
	// 加载SPaT记录表，失败时不保留部分数据
	Load(records []SpatRecord) error
	// 是否已完成加载
	Loaded() bool
	// 场景总时长（秒）
	DurationS() float64
	// t时刻每个路口的相位，无匹配事件时为红灯
	GetStateAt(t float64) map[string]SignalPhase
	// 当前回放状态快照（互斥访问）
	Snapshot() SpatSnapshot
	// 启动回放，按step秒的仿真步长产生快照，真实等待step/speed秒；
	// ctx取消后立即停止且不泄漏协程
	Replay(ctx context.Context, speed, stepS float64) (<-chan SpatSnapshot, error)
	// 以5秒为间隔直接生成完整时间线（无等待）
	BuildTimeline() []SpatTimelineEntry
}

// entity/live的依赖倒置
// 实时状态提供方：返回指定路口的排队深度与（可选的）当前相位。
// 提供方缺失属于受支持的降级模式，不是错误。
type ILiveStateProvider interface {
	GetState(ids []string) LiveState
}
