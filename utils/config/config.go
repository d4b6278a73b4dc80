package config

import "fmt"

// 默认仿真步长（秒）
const DefaultInterval = 5.0

// RuntimeConfig 运行时配置
// 功能：存储仿真运行时的配置信息，包含补全默认值后的完整配置
// 说明：将YAML配置转换为运行时可用的配置对象
type RuntimeConfig struct {
	All Config  // 全部配置
	C   Control // 全局控制配置
}

// NewRuntimeConfig 根据配置初始化运行时配置
// 功能：创建运行时配置对象，补全缺省项
// 参数：config-原始配置对象
// 返回：初始化的运行时配置指针
// 算法说明：
// 1. 步长缺省为5秒，总步数缺省为60步（300秒）
// 2. 走廊缺省为内置的8路口Main St干道
// 3. 路网缺省为7x8的500米街区网格，限速50km/h
func NewRuntimeConfig(config Config) *RuntimeConfig {
	rc := &RuntimeConfig{}

	rc.All = config
	if rc.All.Control.Step.Interval <= 0 {
		rc.All.Control.Step.Interval = DefaultInterval
	}
	if rc.All.Control.Step.Total <= 0 {
		rc.All.Control.Step.Total = 60
	}
	if len(rc.All.Corridor) == 0 {
		rc.All.Corridor = DefaultCorridor()
	}
	if len(rc.All.Network.Intersections) == 0 {
		g := &rc.All.Network.Grid
		if g.Rows <= 0 {
			g.Rows = 7
		}
		if g.Cols <= 0 {
			g.Cols = 8
		}
		if g.BlockM <= 0 {
			g.BlockM = 500
		}
		if g.SpeedLimitKmh <= 0 {
			g.SpeedLimitKmh = 50
		}
	}
	rc.C = rc.All.Control

	return rc
}

// DefaultCorridor 内置走廊定义
// 说明：Main St干道上的8个路口，沿经度方向等间距排列
func DefaultCorridor() []CorridorNode {
	names := []string{
		"Main St & 1st Ave", "Main St & 2nd Ave", "Main St & 3rd Ave", "Main St & 4th Ave",
		"Main St & 5th Ave", "Main St & 6th Ave", "Main St & 7th Ave", "Main St & 8th Ave",
	}
	nodes := make([]CorridorNode, len(names))
	for i, name := range names {
		nodes[i] = CorridorNode{
			ID:   fmt.Sprintf("INT_%d", i),
			Name: name,
			Lat:  23.033,
			Lon:  72.541 + 0.004*float64(i),
		}
	}
	return nodes
}
