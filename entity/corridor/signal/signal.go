// 走廊信控方案：固定周期与队列自适应两种纯函数信控。
// 相位只由输入参数决定，不持有任何状态。
package signal

import (
	"math"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/entity"
)

// 固定周期信控参数：90秒周期，40绿/5黄/45红，逐路口偏移13秒
const (
	fixedCycleS      = 90
	fixedGreenS      = 40
	fixedYellowS     = 5
	fixedOffsetStepS = 13
)

// 自适应信控参数：75秒短周期，绿灯时长随队列深度延长，逐路口偏移9秒形成绿波
const (
	adaptiveCycleS          = 75
	adaptiveMinGreenS       = 25.0
	adaptiveMaxGreenS       = 55.0
	adaptiveYellowS         = 4
	adaptiveOffsetStepS     = 9
	adaptiveGreenPerVehicle = 0.6
)

// FixedCycle 固定周期信控
// 功能：计算t时刻走廊上第idx个路口的相位
// 参数：t-仿真时间（秒），idx-走廊序号（用于相位偏移）
// 返回：三值相位之一
func FixedCycle(t float64, idx int) entity.SignalPhase {
	offset := float64((idx * fixedOffsetStepS) % fixedCycleS)
	local := math.Mod(t+offset, fixedCycleS)
	switch {
	case local < fixedGreenS:
		return entity.PhaseGreen
	case local < fixedGreenS+fixedYellowS:
		return entity.PhaseYellow
	default:
		return entity.PhaseRed
	}
}

// AdaptiveGreenDuration 自适应绿灯时长（秒）
// 功能：按队列深度延长绿灯，每辆车延长0.6秒，限制在[25, 55]
// 说明：对队列深度单调不减
func AdaptiveGreenDuration(queue float64) float64 {
	return lo.Clamp(adaptiveMinGreenS+math.Floor(queue*adaptiveGreenPerVehicle), adaptiveMinGreenS, adaptiveMaxGreenS)
}

// Adaptive 队列自适应信控
// 功能：计算t时刻走廊上第idx个路口的相位，绿灯时长依赖队列深度
// 参数：t-仿真时间（秒），idx-走廊序号，queue-该路口当前排队车辆数
// 返回：三值相位之一
// 说明：更短的周期与更紧的偏移产生走廊绿波效果
func Adaptive(t float64, idx int, queue float64) entity.SignalPhase {
	greenS := AdaptiveGreenDuration(queue)
	offset := float64((idx * adaptiveOffsetStepS) % adaptiveCycleS)
	local := math.Mod(t+offset, adaptiveCycleS)
	switch {
	case local < greenS:
		return entity.PhaseGreen
	case local < greenS+adaptiveYellowS:
		return entity.PhaseYellow
	default:
		return entity.PhaseRed
	}
}
