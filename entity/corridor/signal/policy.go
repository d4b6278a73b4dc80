package signal

import "github.com/tsinghua-fib-lab/greensync-sim-oss/entity"

// Policy 信控策略
// 功能：把相位函数与其对应的排队/延误模型参数打包，供走廊仿真使用
type Policy interface {
	// 策略名，用于输出与日志
	Name() string
	// t时刻第idx个路口的相位；固定周期策略忽略queue
	Phase(t float64, idx int, queue float64) entity.SignalPhase
	// 绿灯放行率（veh/s）
	DischargeRate() float64
	// 红灯延误累积系数
	RedDamping() float64
	// 黄灯期间到达车辆计入队列的比例
	YellowPartial() float64
}

// fixedCyclePolicy 固定周期策略（基线）
type fixedCyclePolicy struct{}

// NewFixedCyclePolicy 创建固定周期策略
func NewFixedCyclePolicy() Policy {
	return fixedCyclePolicy{}
}

func (fixedCyclePolicy) Name() string { return "baseline" }

func (fixedCyclePolicy) Phase(t float64, idx int, _ float64) entity.SignalPhase {
	return FixedCycle(t, idx)
}

func (fixedCyclePolicy) DischargeRate() float64 { return 0.5 }

func (fixedCyclePolicy) RedDamping() float64 { return 1.0 }

func (fixedCyclePolicy) YellowPartial() float64 { return 0.2 }

// adaptivePolicy 队列自适应策略（优化方案）
// 说明：更高的绿灯放行率对应车队整体放行的效果，
// 更短的红灯使延误累积打了折扣
type adaptivePolicy struct{}

// NewAdaptivePolicy 创建队列自适应策略
func NewAdaptivePolicy() Policy {
	return adaptivePolicy{}
}

func (adaptivePolicy) Name() string { return "optimized" }

func (adaptivePolicy) Phase(t float64, idx int, queue float64) entity.SignalPhase {
	return Adaptive(t, idx, queue)
}

func (adaptivePolicy) DischargeRate() float64 { return 0.65 }

func (adaptivePolicy) RedDamping() float64 { return 0.55 }

func (adaptivePolicy) YellowPartial() float64 { return 0.15 }
