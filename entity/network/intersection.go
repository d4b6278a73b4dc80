package network

import (
	"fmt"

	"github.com/tsinghua-fib-lab/greensync-sim-oss/entity"
)

// Intersection 路口实体
// 功能：表示路网中的一个信控路口，包含位置与走廊序号
// 说明：初始化后只读
type Intersection struct {
	id            string
	name          string
	pos           entity.Position
	corridorIndex int // 走廊序号，非走廊路口为-1
}

// newIntersection 根据路口定义创建Intersection实例
func newIntersection(def entity.IntersectionDef) *Intersection {
	return &Intersection{
		id:            def.ID,
		name:          def.Name,
		pos:           def.Pos,
		corridorIndex: def.CorridorIndex,
	}
}

func (i *Intersection) ID() string {
	return i.id
}

func (i *Intersection) Name() string {
	return i.name
}

func (i *Intersection) Position() entity.Position {
	return i.pos
}

func (i *Intersection) CorridorIndex() int {
	return i.corridorIndex
}

func (i *Intersection) InCorridor() bool {
	return i.corridorIndex >= 0
}

func (i *Intersection) String() string {
	return fmt.Sprintf("Intersection{id=%s, name=%s, pos=(%f,%f)}", i.id, i.name, i.pos.Lat, i.pos.Lon)
}
