package live

import "github.com/tsinghua-fib-lab/greensync-sim-oss/entity"

// StateFunc 外部仿真器的状态查询回调
type StateFunc func(ids []string) entity.LiveState

// ExternalProvider 外部仿真器适配层
// 功能：把注入的状态查询回调包装为统一的提供方接口，并对数据做基本清洗
// 说明：负数排队深度截断为0，未返回的路口补0排队，保证下游不需要判空
type ExternalProvider struct {
	fetch StateFunc
}

// NewExternalProvider 创建外部适配提供方
func NewExternalProvider(fetch StateFunc) *ExternalProvider {
	return &ExternalProvider{fetch: fetch}
}

// GetState 查询外部仿真器并清洗结果
func (p *ExternalProvider) GetState(ids []string) entity.LiveState {
	raw := p.fetch(ids)
	state := entity.LiveState{
		Queues: make(map[string]float64, len(ids)),
		Phases: raw.Phases,
	}
	for _, id := range ids {
		q := raw.Queues[id]
		if q < 0 {
			log.Warnf("external provider returned negative queue %v for %s, clamped to 0", q, id)
			q = 0
		}
		state.Queues[id] = q
	}
	return state
}
