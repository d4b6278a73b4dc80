package spat

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tsinghua-fib-lab/greensync-sim-oss/entity"
)

// 完整时间线的采样间隔（秒）
const timelineStepS = 5.0

// Engine SPaT回放引擎
// 功能：加载历史相位记录表，支持按时刻查询、定速回放与时间线导出
// 说明：记录表加载后只读；可变的回放状态（当前时刻与相位表）由互斥锁保护，
// 查询与回放可并发进行
type Engine struct {
	mu sync.Mutex

	records   []entity.SpatRecord // 按开始时间升序
	ids       []string            // 记录表涉及的全部路口ID，升序
	durationS float64
	loaded    bool

	// 回放状态
	currentTimeS float64
	states       map[string]entity.SignalPhase
}

// NewEngine 创建未加载的回放引擎
func NewEngine() *Engine {
	return &Engine{states: map[string]entity.SignalPhase{}}
}

// Load 加载SPaT记录表
// 功能：校验并装入记录，计算场景总时长
// 说明：任何一条记录非法则整体失败且不保留部分数据；重复加载覆盖旧数据
func (e *Engine) Load(records []entity.SpatRecord) error {
	idSet := map[string]struct{}{}
	duration := 0.0
	for i, r := range records {
		if r.IntersectionID == "" {
			return fmt.Errorf("spat record #%d: empty intersection id", i)
		}
		if r.TimeS < 0 {
			return fmt.Errorf("spat record #%d (%s): negative time %v", i, r.IntersectionID, r.TimeS)
		}
		if r.DurationS <= 0 {
			return fmt.Errorf("spat record #%d (%s): non-positive duration %v", i, r.IntersectionID, r.DurationS)
		}
		idSet[r.IntersectionID] = struct{}{}
		if end := r.TimeS + r.DurationS; end > duration {
			duration = end
		}
	}
	sorted := make([]entity.SpatRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].TimeS < sorted[j].TimeS })
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.records = sorted
	e.ids = ids
	e.durationS = duration
	e.loaded = true
	e.currentTimeS = 0
	e.states = e.statesAt(0)
	log.Infof("loaded %d spat records, %d intersections, duration %.0fs",
		len(sorted), len(ids), duration)
	return nil
}

// Loaded 是否已完成加载
func (e *Engine) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loaded
}

// DurationS 场景总时长（秒）
func (e *Engine) DurationS() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.durationS
}

// statesAt t时刻的全量相位表（调用方负责加锁）
// 说明：每个路口默认红灯，线性扫描活动区间[time, time+duration)覆盖之；
// 记录表按规模（千条量级）线性扫描即可，不做索引
func (e *Engine) statesAt(t float64) map[string]entity.SignalPhase {
	states := make(map[string]entity.SignalPhase, len(e.ids))
	for _, id := range e.ids {
		states[id] = entity.PhaseRed
	}
	for _, r := range e.records {
		if r.TimeS > t {
			break
		}
		if t < r.TimeS+r.DurationS {
			states[r.IntersectionID] = r.Phase
		}
	}
	return states
}

// GetStateAt 查询t时刻每个路口的相位
// 说明：无匹配事件的路口为红灯
func (e *Engine) GetStateAt(t float64) map[string]entity.SignalPhase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.statesAt(t)
}

// snapshotLocked 生成当前回放状态的拷贝（调用方负责加锁）
func (e *Engine) snapshotLocked() entity.SpatSnapshot {
	states := make(map[string]entity.SignalPhase, len(e.states))
	for id, p := range e.states {
		states[id] = p
	}
	progress := 0.0
	if e.durationS > 0 {
		progress = e.currentTimeS / e.durationS * 100
	}
	return entity.SpatSnapshot{
		TimeS:     e.currentTimeS,
		DurationS: e.durationS,
		Progress:  progress,
		States:    states,
	}
}

// Snapshot 当前回放状态快照
func (e *Engine) Snapshot() entity.SpatSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Replay 启动定速回放
// 功能：从0时刻起按stepS秒的仿真步长推进到场景结束，每步产生一个快照，
// 步与步之间真实等待stepS/speed秒
// 参数：ctx-取消上下文，speed-回放倍速（>0），stepS-仿真步长（秒，>0）
// 返回：快照通道，回放结束或ctx取消后关闭
func (e *Engine) Replay(ctx context.Context, speed, stepS float64) (<-chan entity.SpatSnapshot, error) {
	if speed <= 0 {
		return nil, fmt.Errorf("replay speed must be positive, got %v", speed)
	}
	if stepS <= 0 {
		return nil, fmt.Errorf("replay step must be positive, got %v", stepS)
	}
	e.mu.Lock()
	if !e.loaded {
		e.mu.Unlock()
		return nil, fmt.Errorf("no spat data loaded")
	}
	duration := e.durationS
	e.mu.Unlock()

	interval := time.Duration(stepS / speed * float64(time.Second))
	ch := make(chan entity.SpatSnapshot)
	go func() {
		defer close(ch)
		for t := 0.0; t <= duration; t += stepS {
			e.mu.Lock()
			e.currentTimeS = t
			e.states = e.statesAt(t)
			snapshot := e.snapshotLocked()
			e.mu.Unlock()
			select {
			case ch <- snapshot:
			case <-ctx.Done():
				log.Debugf("replay cancelled at t=%.0fs", t)
				return
			}
			if t+stepS > duration {
				break
			}
			select {
			case <-time.After(interval):
			case <-ctx.Done():
				log.Debugf("replay cancelled at t=%.0fs", t)
				return
			}
		}
	}()
	return ch, nil
}

// BuildTimeline 直接生成完整时间线
// 功能：以5秒为采样间隔导出整个场景的相位序列，无真实等待
// 说明：包含0时刻，最后一个采样点不超过场景时长
func (e *Engine) BuildTimeline() []entity.SpatTimelineEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded {
		return []entity.SpatTimelineEntry{}
	}
	entries := make([]entity.SpatTimelineEntry, 0, int(e.durationS/timelineStepS)+1)
	for t := 0.0; t <= e.durationS; t += timelineStepS {
		entries = append(entries, entity.SpatTimelineEntry{
			TimeS:  t,
			States: e.statesAt(t),
		})
	}
	return entries
}
