package corridor

// NodeState 单个路口的仿真状态
// 功能：记录一次运行中某路口的排队深度与累计延误
// 说明：运行开始时创建，每个时间步修改一次，运行结束即丢弃，从不持久化；
// 队列深度始终非负，累计延误在一次运行内单调不减
type NodeState struct {
	Queue float64 // 排队车辆数（veh）
	Delay float64 // 累计延误（veh·s）
}

// Record 单个时间步的走廊聚合指标
type Record struct {
	TimeS       float64 `json:"time_s"`       // 仿真时间（秒）
	QueueLength float64 `json:"queue_length"` // 走廊总排队车辆数
	AvgDelayS   float64 `json:"avg_delay_s"`  // 平均延误（秒）
	FuelL       float64 `json:"fuel_L"`       // 怠速油耗（升）
	CO2Kg       float64 `json:"co2_kg"`       // 油耗对应CO2排放（千克）
}

// Summary 对比运行的汇总指标
type Summary struct {
	QueueReductionPct   float64 `json:"queue_reduction_pct"`   // 最终排队降低百分比
	DelayReductionPct   float64 `json:"delay_reduction_pct"`   // 最终平均延误降低百分比
	FuelSavedL          float64 `json:"fuel_saved_L"`          // 节省油耗（升）
	CO2SavedKg          float64 `json:"co2_saved_kg"`          // 减少CO2排放（千克）
	BaselineFinalQueue  float64 `json:"baseline_final_queue"`  // 基线最终排队
	OptimizedFinalQueue float64 `json:"optimized_final_queue"` // 优化方案最终排队
}

// IntersectionMeta 走廊路口元数据（供图表渲染）
type IntersectionMeta struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// ComparisonResult 两种信控方案的完整对比结果
type ComparisonResult struct {
	Corridor  []IntersectionMeta `json:"corridor"`   // 走廊元数据
	DurationS float64            `json:"duration_s"` // 仿真时长（秒）
	Baseline  []Record           `json:"baseline"`   // 固定周期时间序列
	Optimized []Record           `json:"optimized"`  // 自适应时间序列
	Summary   Summary            `json:"summary"`    // 汇总
}
