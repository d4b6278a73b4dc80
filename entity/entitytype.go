package entity

import (
	"fmt"
	"strings"

	"github.com/golang/geo/s2"
)

// 地球半径（米），用于经纬度距离计算
const EarthRadiusM = 6371000.0

// SignalPhase 信号灯相位
// 功能：表示路口信号灯的三种相位状态（红/黄/绿）
// 说明：零值为红灯，保证未初始化的相位表现为最保守的状态
type SignalPhase uint8

const (
	PhaseRed    SignalPhase = iota // 红灯
	PhaseYellow                    // 黄灯
	PhaseGreen                     // 绿灯
)

// String 获取相位的字符串表示（GREEN/YELLOW/RED）
func (p SignalPhase) String() string {
	switch p {
	case PhaseGreen:
		return "GREEN"
	case PhaseYellow:
		return "YELLOW"
	default:
		return "RED"
	}
}

// ParseSignalPhase 解析相位字符串
// 功能：将输入字符串规范化为三值相位枚举，大小写不敏感
// 参数：s-相位字符串（green/yellow/red，允许首尾空白）
// 返回：相位枚举和错误信息，未知取值返回错误
func ParseSignalPhase(s string) (SignalPhase, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "GREEN":
		return PhaseGreen, nil
	case "YELLOW":
		return PhaseYellow, nil
	case "RED":
		return PhaseRed, nil
	default:
		return PhaseRed, fmt.Errorf("unknown signal phase %q", s)
	}
}

// MarshalJSON 将相位序列化为JSON字符串
func (p SignalPhase) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON 从JSON字符串反序列化相位
func (p *SignalPhase) UnmarshalJSON(data []byte) error {
	parsed, err := ParseSignalPhase(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Position 经纬度位置
type Position struct {
	Lat float64 `yaml:"lat" json:"lat"` // 纬度（度）
	Lon float64 `yaml:"lon" json:"lon"` // 经度（度）
}

// DistanceM 计算到另一位置的大圆距离（米）
// 说明：基于s2球面几何，用于路网元数据与A*启发函数
func (p Position) DistanceM(other Position) float64 {
	a := s2.LatLngFromDegrees(p.Lat, p.Lon)
	b := s2.LatLngFromDegrees(other.Lat, other.Lon)
	return a.Distance(b).Radians() * EarthRadiusM
}

// RoadEdge 无向路段
// 功能：连接两个路口的道路，每条无向连接只存一条记录
type RoadEdge struct {
	Source        string  `yaml:"source" json:"source"`                   // 起点路口ID
	Target        string  `yaml:"target" json:"target"`                   // 终点路口ID
	DistanceM     float64 `yaml:"distance_m" json:"distance_m"`           // 长度（米）
	SpeedLimitKmh float64 `yaml:"speed_limit_kmh" json:"speed_limit_kmh"` // 限速（km/h）
	BaseTimeS     float64 `yaml:"-" json:"base_time_s"`                   // 自由流通行时间（秒），Init时由距离与限速导出
}

// IntersectionDef 路口定义（路网输入）
type IntersectionDef struct {
	ID            string   // 路口唯一ID
	Name          string   // 展示名
	Pos           Position // 经纬度位置
	CorridorIndex int      // 走廊序号（用于相位偏移），非走廊路口为-1
}

// NetworkDefinition 路网定义
// 功能：固定的路口与路段集合，是路网管理器的唯一输入
type NetworkDefinition struct {
	Intersections []IntersectionDef
	Edges         []RoadEdge
}

// SpatRecord 单条SPaT（信号相位与配时）记录
// 说明：加载完成后不可变；同一路口的记录按开始时间有序且活动区间互不重叠
type SpatRecord struct {
	TimeS          float64     `json:"time_s"`          // 相位开始时间（秒）
	IntersectionID string      `json:"intersection_id"` // 路口ID
	Phase          SignalPhase `json:"phase"`           // 相位
	DurationS      float64     `json:"duration_s"`      // 持续时间（秒）
}

// SpatSnapshot 回放状态快照
type SpatSnapshot struct {
	TimeS     float64                `json:"time_s"`     // 当前仿真时间（秒）
	DurationS float64                `json:"duration_s"` // 场景总时长（秒）
	Progress  float64                `json:"progress"`   // 进度百分比，时长为0时为0
	States    map[string]SignalPhase `json:"states"`     // 路口ID->当前相位
}

// SpatTimelineEntry 完整时间线中的一个采样点
type SpatTimelineEntry struct {
	TimeS  float64                `json:"time_s"`
	States map[string]SignalPhase `json:"states"`
}

// LiveState 实时路况状态
// 功能：实时状态提供方返回的队列深度与相位映射
type LiveState struct {
	Queues map[string]float64     // 路口ID->排队车辆数（非负）
	Phases map[string]SignalPhase // 路口ID->当前相位，可能为nil（提供方不支持相位时）
}
