package config

// InputPath 指定SPaT输入数据来源的配置（MongoDB、文件系统）
// 功能：定义数据输入路径的配置结构，支持多种数据源
// 说明：文件路径优先级高于MongoDB
type InputPath struct {
	DB   string `yaml:"db,omitempty"`   // 数据库名
	Col  string `yaml:"col,omitempty"`  // 集合名
	File string `yaml:"file,omitempty"` // CSV文件路径（优先级高于MongoDB）
}

// IsZero 判断是否未配置任何数据源
func (p InputPath) IsZero() bool {
	return p.File == "" && (p.DB == "" || p.Col == "")
}

// Input 指定模拟器所有输入数据的配置项
type Input struct {
	URI  string    `yaml:"uri,omitempty"` // MongoDB连接字符串
	Spat InputPath `yaml:"spat"`          // SPaT记录表
}

// ControlStep 指定模拟器模拟时间范围和间隔的配置项
// 功能：定义仿真时间控制参数
// 说明：Interval即DT，一次运行中固定不变
type ControlStep struct {
	Start    int32   `yaml:"start"`    // 开始步数
	Total    int32   `yaml:"total"`    // 总步数
	Interval float64 `yaml:"interval"` // 每步的时间间隔（秒）
}

// Control 模拟器控制配置
type Control struct {
	Step ControlStep `yaml:"step"`
}

// CorridorNode 走廊路口配置
// 说明：走廊为单条干道上按序排列的路口，序号用于信控相位偏移
type CorridorNode struct {
	ID   string  `yaml:"id"`   // 路口ID
	Name string  `yaml:"name"` // 展示名
	Lat  float64 `yaml:"lat"`  // 纬度
	Lon  float64 `yaml:"lon"`  // 经度
}

// Grid 城市网格路网配置
type Grid struct {
	Rows          int     `yaml:"rows"`            // 行数
	Cols          int     `yaml:"cols"`            // 列数
	BlockM        float64 `yaml:"block_m"`         // 街区边长（米）
	SpeedLimitKmh float64 `yaml:"speed_limit_kmh"` // 统一限速（km/h）
}

// NetworkNode 显式路网中的路口配置
type NetworkNode struct {
	ID   string  `yaml:"id"`
	Name string  `yaml:"name,omitempty"`
	Lat  float64 `yaml:"lat"`
	Lon  float64 `yaml:"lon"`
}

// NetworkEdge 显式路网中的路段配置
type NetworkEdge struct {
	Source        string  `yaml:"source"`
	Target        string  `yaml:"target"`
	DistanceM     float64 `yaml:"distance_m"`
	SpeedLimitKmh float64 `yaml:"speed_limit_kmh"`
}

// Network 路网配置
// 说明：显式路口/路段列表优先级高于网格生成
type Network struct {
	Grid          Grid          `yaml:"grid,omitempty"`          // 网格路网
	Intersections []NetworkNode `yaml:"intersections,omitempty"` // 显式路口
	Edges         []NetworkEdge `yaml:"edges,omitempty"`         // 显式路段
}

// 实时状态提供方类型
const (
	ProviderNone      = ""          // 无提供方（降级模式）
	ProviderSynthetic = "synthetic" // 合成数据提供方
	ProviderExternal  = "external"  // 外部联合仿真提供方（由调用方注入）
)

// LiveProvider 实时状态提供方配置
// 说明：提供方通过配置显式选择，而不是依赖可选库是否可用
type LiveProvider struct {
	Type string `yaml:"type,omitempty"` // synthetic/external/空
	Seed uint64 `yaml:"seed,omitempty"` // 合成提供方的随机种子
}

// Config YAML配置文件的根结构
type Config struct {
	Input    Input          `yaml:"input"`              // 输入
	Control  Control        `yaml:"control"`            // 模拟过程控制
	Corridor []CorridorNode `yaml:"corridor,omitempty"` // 走廊定义，缺省为内置8路口干道
	Network  Network        `yaml:"network,omitempty"`  // 路网定义，缺省为7x8网格
	Provider LiveProvider   `yaml:"provider,omitempty"` // 实时状态提供方
}
