package task

import "context"

// prepare 准备阶段，每步执行一次
// 功能：在每个仿真步骤开始时进行准备工作
// 算法说明：
// 1. 更新时钟：增加内部步数并计算当前时间
// 2. 心跳日志：定期输出系统状态信息
func (ctx *Context) prepare() {
	ctx.clock.Step()

	if ctx.clock.InternalStep%int32(*heartBeatInterval) == 0 {
		hour, minute, second := ctx.clock.GetHourMinuteSecond()
		log.Infof(
			"STEP: %d(%d:%d:%.2f)",
			ctx.clock.InternalStep,
			hour, minute, second,
		)
	}
}

// update 更新阶段，每步执行一次
// 功能：推算当前时刻自适应信控下的走廊相位
// 说明：相位计算使用实时排队深度，无提供方时按零排队降级
func (ctx *Context) update() {
	phases := ctx.corridorSim.AdaptivePhases(ctx.clock.T)
	for id, phase := range phases {
		log.Debugf("t=%.0fs %s: %v", ctx.clock.T, id, phase)
	}
}

// Run 运行
// 功能：执行完整的仿真任务
// 算法说明：
// 1. 初始化路网并加载SPaT数据（若配置）
// 2. 运行双策略走廊对比并输出汇总
// 3. 按控制步配置推进主循环，逐步更新自适应相位
func (ctx *Context) Run() {
	ctx.Init()

	if err := ctx.LoadSpat(); err != nil {
		log.Panicf("failed to load spat data: %v", err)
	}

	result := ctx.RunComparison()
	s := result.Summary
	log.Infof("corridor comparison complete: queue %.1f -> %.1f (-%.1f%%), delay -%.1f%%, fuel saved %.3fL, co2 saved %.3fkg",
		s.BaselineFinalQueue, s.OptimizedFinalQueue, s.QueueReductionPct,
		s.DelayReductionPct, s.FuelSavedL, s.CO2SavedKg)

	for !ctx.clock.Done() {
		if ctx.closed.Load() {
			break
		}
		ctx.prepare()
		ctx.update()
	}

	ctx.demoRoute()
	ctx.demoReplay()
	log.Infof("engine complete")
}

// demoRoute 演示一次路径规划
// 说明：取路网的首末路口，叠加实时路况权重
func (ctx *Context) demoRoute() {
	nodes := ctx.networkManager.Intersections()
	if len(nodes) < 2 {
		return
	}
	start, end := nodes[0].ID(), nodes[len(nodes)-1].ID()
	res, err := ctx.FindRoute(start, end, true)
	if err != nil {
		log.Errorf("route %s -> %s failed: %v", start, end, err)
		return
	}
	log.Infof("route %s -> %s: %d hops, base time %.0fs, advisory %.0fkm/h",
		start, end, len(res.Path), res.BaseTimeS, res.AdvisorySpeedKmh)
}

// demoReplay 演示SPaT回放
// 说明：未加载SPaT数据时跳过；60倍速排空整个场景
func (ctx *Context) demoReplay() {
	if !ctx.spatEngine.Loaded() {
		return
	}
	ch, err := ctx.ReplaySpat(context.Background(), 60, ctx.clock.DT)
	if err != nil {
		log.Errorf("replay failed: %v", err)
		return
	}
	count := 0
	for snap := range ch {
		count++
		log.Debugf("replay t=%.0fs (%.0f%%)", snap.TimeS, snap.Progress)
	}
	log.Infof("spat replay complete: %d snapshots over %.0fs", count, ctx.spatEngine.DurationS())
}
