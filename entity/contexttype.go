package entity

import (
	"github.com/tsinghua-fib-lab/greensync-sim-oss/clock"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/utils/config"
)

type ITaskContext interface {
	Clock() *clock.Clock
	NetworkManager() INetworkManager
	Router() IRouter
	// 实时状态提供方，可能为nil（降级模式：静态权重、零队列自适应信控）
	LiveProvider() ILiveStateProvider
	RuntimeConfig() *config.RuntimeConfig
}
