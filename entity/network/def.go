package network

import (
	"fmt"

	"github.com/tsinghua-fib-lab/greensync-sim-oss/entity"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/utils/config"
)

// 网格路网的参考原点与经纬度步长（约500米一个街区）
const (
	gridBaseLat = 23.0300
	gridBaseLon = 72.5400
	gridLatStep = 0.0045
	gridLonStep = 0.0045
)

// FromConfig 根据运行时配置构建路网定义
// 功能：生成供NetworkManager.Init使用的完整路网定义
// 算法说明：
// 1. 配置了显式路口列表时直接采用，否则按网格配置生成
// 2. 追加走廊路口并赋走廊序号；与已有路口ID重合时只标注序号，不重复建点
func FromConfig(cfg *config.RuntimeConfig) entity.NetworkDefinition {
	var def entity.NetworkDefinition
	if len(cfg.All.Network.Intersections) > 0 {
		def = explicitDefinition(cfg.All.Network)
	} else {
		def = GridDefinition(cfg.All.Network.Grid)
	}

	index := make(map[string]int, len(def.Intersections))
	for i, d := range def.Intersections {
		index[d.ID] = i
	}
	for i, n := range cfg.All.Corridor {
		if at, ok := index[n.ID]; ok {
			def.Intersections[at].CorridorIndex = i
			continue
		}
		def.Intersections = append(def.Intersections, entity.IntersectionDef{
			ID:            n.ID,
			Name:          n.Name,
			Pos:           entity.Position{Lat: n.Lat, Lon: n.Lon},
			CorridorIndex: i,
		})
	}
	return def
}

// explicitDefinition 根据显式配置构建路网定义
func explicitDefinition(c config.Network) entity.NetworkDefinition {
	def := entity.NetworkDefinition{
		Intersections: make([]entity.IntersectionDef, 0, len(c.Intersections)),
		Edges:         make([]entity.RoadEdge, 0, len(c.Edges)),
	}
	for _, n := range c.Intersections {
		name := n.Name
		if name == "" {
			name = fmt.Sprintf("Intersection %s", n.ID)
		}
		def.Intersections = append(def.Intersections, entity.IntersectionDef{
			ID:            n.ID,
			Name:          name,
			Pos:           entity.Position{Lat: n.Lat, Lon: n.Lon},
			CorridorIndex: -1,
		})
	}
	for _, e := range c.Edges {
		def.Edges = append(def.Edges, entity.RoadEdge{
			Source:        e.Source,
			Target:        e.Target,
			DistanceM:     e.DistanceM,
			SpeedLimitKmh: e.SpeedLimitKmh,
		})
	}
	return def
}

// GridDefinition 生成城市网格路网定义
// 功能：构建rows x cols的规则网格，路口ID为"行-列"
// 说明：相邻路口之间为一条无向路段，街区边长与限速统一取自配置
func GridDefinition(g config.Grid) entity.NetworkDefinition {
	def := entity.NetworkDefinition{
		Intersections: make([]entity.IntersectionDef, 0, g.Rows*g.Cols),
	}
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			id := fmt.Sprintf("%d-%d", r, c)
			def.Intersections = append(def.Intersections, entity.IntersectionDef{
				ID:   id,
				Name: fmt.Sprintf("Intersection %s", id),
				Pos: entity.Position{
					Lat: gridBaseLat + float64(r)*gridLatStep,
					Lon: gridBaseLon + float64(c)*gridLonStep,
				},
				CorridorIndex: -1,
			})
			// 向右与向下连接相邻路口，保证每条无向连接只记录一次
			if c+1 < g.Cols {
				def.Edges = append(def.Edges, entity.RoadEdge{
					Source:        id,
					Target:        fmt.Sprintf("%d-%d", r, c+1),
					DistanceM:     g.BlockM,
					SpeedLimitKmh: g.SpeedLimitKmh,
				})
			}
			if r+1 < g.Rows {
				def.Edges = append(def.Edges, entity.RoadEdge{
					Source:        id,
					Target:        fmt.Sprintf("%d-%d", r+1, c),
					DistanceM:     g.BlockM,
					SpeedLimitKmh: g.SpeedLimitKmh,
				})
			}
		}
	}
	return def
}
