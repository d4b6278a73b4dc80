package network

import (
	"fmt"
	"sort"

	"git.fiblab.net/general/common/v2/parallel"
	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/entity"
)

// NetworkManager 路网管理器
// 功能：管理所有路口与路段，提供查找、邻接与通行时间查询
// 说明：Init之后路网为静态数据，查询不修改任何状态，可被并发调用
type NetworkManager struct {
	data          map[string]*Intersection
	intersections []*Intersection
	corridor      []*Intersection // 走廊路口，按走廊序号排列

	edges     []entity.RoadEdge            // 每条无向连接一条记录
	adjacency map[string][]entity.RoadEdge // 路口ID->按行进方向改写后的邻接路段
	maxSpeed  float64                      // 路网最大限速（m/s）
}

// NewManager 创建路网管理器实例
func NewManager() *NetworkManager {
	return &NetworkManager{
		data:      make(map[string]*Intersection),
		adjacency: make(map[string][]entity.RoadEdge),
	}
}

// Init 初始化路网
// 功能：根据路网定义构建路口索引、走廊序列与邻接表
// 参数：def-路网定义（路口与无向路段集合）
// 算法说明：
// 1. 并行构建路口对象并建立ID映射，重复ID视为数据错误
// 2. 过滤走廊路口并按走廊序号排序
// 3. 计算每条路段的自由流通行时间 base = distance / (speed/3.6)
// 4. 邻接表按两个行进方向各登记一次
func (m *NetworkManager) Init(def entity.NetworkDefinition) {
	m.intersections = parallel.GoMap(def.Intersections, func(d entity.IntersectionDef) *Intersection {
		return newIntersection(d)
	})
	m.data = lo.SliceToMap(m.intersections, func(i *Intersection) (string, *Intersection) {
		return i.id, i
	})
	if len(m.data) != len(m.intersections) {
		log.Panicf("network has duplicated intersection ids, please check data")
	}

	m.corridor = lo.Filter(m.intersections, func(i *Intersection, _ int) bool {
		return i.InCorridor()
	})
	sort.Slice(m.corridor, func(a, b int) bool {
		return m.corridor[a].corridorIndex < m.corridor[b].corridorIndex
	})

	m.edges = make([]entity.RoadEdge, 0, len(def.Edges))
	m.adjacency = make(map[string][]entity.RoadEdge)
	m.maxSpeed = 0
	for _, e := range def.Edges {
		if _, ok := m.data[e.Source]; !ok {
			log.Panicf("edge references unknown intersection %s", e.Source)
		}
		if _, ok := m.data[e.Target]; !ok {
			log.Panicf("edge references unknown intersection %s", e.Target)
		}
		speedMS := e.SpeedLimitKmh / 3.6
		if speedMS <= 0 {
			log.Panicf("edge %s-%s has non-positive speed limit", e.Source, e.Target)
		}
		e.BaseTimeS = e.DistanceM / speedMS
		m.edges = append(m.edges, e)
		m.adjacency[e.Source] = append(m.adjacency[e.Source], e)
		reversed := e
		reversed.Source, reversed.Target = e.Target, e.Source
		m.adjacency[e.Target] = append(m.adjacency[e.Target], reversed)
		if speedMS > m.maxSpeed {
			m.maxSpeed = speedMS
		}
	}

	log.Infof("network: %d intersections (%d in corridor), %d edges",
		len(m.intersections), len(m.corridor), len(m.edges))
}

// Intersections 获取所有路口
func (m *NetworkManager) Intersections() []entity.IIntersection {
	return lo.Map(m.intersections, func(i *Intersection, _ int) entity.IIntersection { return i })
}

// Corridor 获取走廊路口，按走廊序号排列
func (m *NetworkManager) Corridor() []entity.IIntersection {
	return lo.Map(m.corridor, func(i *Intersection, _ int) entity.IIntersection { return i })
}

// Edges 获取所有无向路段
func (m *NetworkManager) Edges() []entity.RoadEdge {
	return m.edges
}

// Get 根据ID获取路口实例，不存在则panic
func (m *NetworkManager) Get(id string) entity.IIntersection {
	if intersection, ok := m.data[id]; !ok {
		log.Panicf("no id %s in network data", id)
		return nil
	} else {
		return intersection
	}
}

// GetOrError 根据ID获取路口实例（带错误处理）
func (m *NetworkManager) GetOrError(id string) (entity.IIntersection, error) {
	if intersection, ok := m.data[id]; !ok {
		return nil, fmt.Errorf("no id %s in network data", id)
	} else {
		return intersection, nil
	}
}

// BaseTravelTime 查询路段自由流通行时间（秒）
// 说明：路段无向，两个方向等价；不存在时second为false
func (m *NetworkManager) BaseTravelTime(u, v string) (float64, bool) {
	for _, e := range m.adjacency[u] {
		if e.Target == v {
			return e.BaseTimeS, true
		}
	}
	return 0, false
}

// Neighbors 获取某路口的全部邻接路段
// 说明：返回的路段source均为该路口，target为对端
func (m *NetworkManager) Neighbors(id string) []entity.RoadEdge {
	return m.adjacency[id]
}

// MaxSpeedMS 获取路网最大限速（m/s）
func (m *NetworkManager) MaxSpeedMS() float64 {
	return m.maxSpeed
}
