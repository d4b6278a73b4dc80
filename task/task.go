package task

import (
	"context"
	"flag"
	"sync/atomic"

	"github.com/tsinghua-fib-lab/greensync-sim-oss/clock"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/entity"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/entity/corridor"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/entity/live"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/entity/network"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/entity/route"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/entity/spat"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/utils/config"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/utils/input"
)

const (
	SelfName = "greensync" // 本程序在模拟任务集群中的名字
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔步数")
)

// RouteResult 一次路径规划的结果
type RouteResult struct {
	Path             []string `json:"path"`               // 路口ID序列，不连通时为空
	BaseTimeS        float64  `json:"base_time_s"`        // 路径的自由流通行时间（秒）
	AdvisorySpeedKmh float64  `json:"advisory_speed_kmh"` // 绿波建议车速（km/h）
}

// Context 仿真任务上下文
// 功能：包含一次仿真任务的所有变量和状态，替代原来的全局变量
// 说明：管理仿真系统的所有组件，包括时钟、路网、路径规划、信控对比与SPaT回放
type Context struct {

	// 任务名
	job string
	// 关闭指令
	closed atomic.Bool

	// 时钟
	clock *clock.Clock

	// 路网管理器
	networkManager entity.INetworkManager
	// 路径规划器
	router entity.IRouter
	// SPaT回放引擎
	spatEngine entity.ISpatEngine
	// 实时状态提供方，降级模式下为nil
	liveProvider entity.ILiveStateProvider
	// 走廊信控对比模拟器
	corridorSim *corridor.Simulator

	// 运行时配置文件
	runtimeConfig *config.RuntimeConfig
}

// NewContext 创建新的仿真任务上下文
// 功能：初始化仿真系统的所有组件和配置
// 参数：
//   - job: 任务名称
//   - c: 配置对象
//   - external: 外部联合仿真提供方，仅provider.type为external时使用
//
// 返回：初始化完成的Context实例
// 算法说明：
// 1. 创建Context实例并设置时钟与运行时配置
// 2. 根据配置选择实时状态提供方（合成/外部注入/无）
// 3. 创建路网管理器、路径规划器、SPaT引擎与走廊模拟器
func NewContext(
	job string,
	c config.Config,
	external entity.ILiveStateProvider,
) *Context {
	ctx := &Context{
		job: job,
	}
	ctx.runtimeConfig = config.NewRuntimeConfig(c)
	ctx.clock = clock.New(ctx.runtimeConfig.C.Step)

	switch c.Provider.Type {
	case config.ProviderSynthetic:
		ctx.liveProvider = live.NewSyntheticProvider(c.Provider.Seed)
	case config.ProviderExternal:
		if external == nil {
			log.Panicf("provider.type is %q but no external provider was injected", c.Provider.Type)
		}
		ctx.liveProvider = external
	case config.ProviderNone:
		// 降级模式：静态路径权重、零队列自适应信控
	default:
		log.Panicf("unknown provider.type %q", c.Provider.Type)
	}

	ctx.networkManager = network.NewManager()
	ctx.router = route.New(ctx)
	ctx.spatEngine = spat.NewEngine()
	ctx.corridorSim = corridor.NewSimulator(ctx)

	return ctx
}

func (ctx *Context) Clock() *clock.Clock {
	return ctx.clock
}

func (ctx *Context) NetworkManager() entity.INetworkManager {
	return ctx.networkManager
}

func (ctx *Context) Router() entity.IRouter {
	return ctx.router
}

func (ctx *Context) LiveProvider() entity.ILiveStateProvider {
	return ctx.liveProvider
}

func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.runtimeConfig
}

func (ctx *Context) Spat() entity.ISpatEngine {
	return ctx.spatEngine
}

// SpatSnapshot 当前回放状态快照
func (ctx *Context) SpatSnapshot() entity.SpatSnapshot {
	return ctx.spatEngine.Snapshot()
}

// SpatTimeline 完整SPaT时间线
func (ctx *Context) SpatTimeline() []entity.SpatTimelineEntry {
	return ctx.spatEngine.BuildTimeline()
}

// ReplaySpat 启动SPaT回放
// 参数：c-取消上下文，speed-回放倍速，stepS-仿真步长（秒）
func (ctx *Context) ReplaySpat(c context.Context, speed, stepS float64) (<-chan entity.SpatSnapshot, error) {
	return ctx.spatEngine.Replay(c, speed, stepS)
}

func (ctx *Context) CorridorSimulator() *corridor.Simulator {
	return ctx.corridorSim
}

// Init 初始化所有管理器
// 说明：路网定义来自配置（显式路网优先，否则生成规则网格并叠加走廊节点）
func (ctx *Context) Init() {
	ctx.clock.Init()

	def := network.FromConfig(ctx.runtimeConfig)
	log.Infof("Intersection: %v", len(def.Intersections))
	log.Infof("Edge: %v", len(def.Edges))
	ctx.networkManager.Init(def)
	log.Infof("Corridor: %v", len(ctx.networkManager.Corridor()))
}

// LoadSpat 按配置加载SPaT数据
// 功能：从CSV文件或MongoDB读取记录表并装入回放引擎
// 说明：未配置SPaT输入时跳过（回放相关操作此后会报未加载错误）
func (ctx *Context) LoadSpat() error {
	c := ctx.runtimeConfig.All.Input
	if c.Spat.IsZero() {
		log.Infof("no spat input configured, skip loading")
		return nil
	}
	records, err := input.LoadSpat(c)
	if err != nil {
		return err
	}
	return ctx.spatEngine.Load(records)
}

// RunComparison 运行双策略走廊对比
// 说明：时长取自控制步配置（总步数*步长）
func (ctx *Context) RunComparison() *corridor.ComparisonResult {
	durationS := float64(ctx.clock.END_STEP-ctx.clock.START_STEP) * ctx.clock.DT
	return ctx.corridorSim.RunComparison(durationS)
}

// FindRoute 规划一条路径
// 功能：计算start到end的最短路径并给出绿波建议车速
// 参数：start/end-起终点路口ID，withLive-是否叠加实时路况权重
// 返回：路径规划结果和错误信息
func (ctx *Context) FindRoute(start, end string, withLive bool) (RouteResult, error) {
	var liveState *entity.LiveState
	if withLive && ctx.liveProvider != nil {
		ids := make([]string, 0, len(ctx.networkManager.Intersections()))
		for _, node := range ctx.networkManager.Intersections() {
			ids = append(ids, node.ID())
		}
		ls := ctx.liveProvider.GetState(ids)
		liveState = &ls
	}
	path, err := ctx.router.FindRoute(start, end, liveState)
	if err != nil {
		return RouteResult{}, err
	}
	baseTime := 0.0
	for i := 0; i+1 < len(path); i++ {
		if t, ok := ctx.networkManager.BaseTravelTime(path[i], path[i+1]); ok {
			baseTime += t
		}
	}
	return RouteResult{
		Path:             path,
		BaseTimeS:        baseTime,
		AdvisorySpeedKmh: ctx.router.AdvisorySpeed(path, liveState),
	}, nil
}

// Close 标记任务关闭
// 说明：主循环在下一步检查到关闭标记后退出
func (ctx *Context) Close() {
	ctx.closed.Store(true)
}
