package spat_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/entity"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/entity/spat"
)

func testRecords() []entity.SpatRecord {
	return []entity.SpatRecord{
		{TimeS: 0, IntersectionID: "A", Phase: entity.PhaseGreen, DurationS: 40},
		{TimeS: 40, IntersectionID: "A", Phase: entity.PhaseYellow, DurationS: 5},
		{TimeS: 45, IntersectionID: "A", Phase: entity.PhaseRed, DurationS: 45},
		{TimeS: 30, IntersectionID: "B", Phase: entity.PhaseGreen, DurationS: 30},
	}
}

func TestLoad(t *testing.T) {
	e := spat.NewEngine()
	assert.False(t, e.Loaded())
	assert.NoError(t, e.Load(testRecords()))
	assert.True(t, e.Loaded())
	assert.Equal(t, 90.0, e.DurationS())
}

func TestLoadRejectsBadRecords(t *testing.T) {
	e := spat.NewEngine()
	assert.Error(t, e.Load([]entity.SpatRecord{
		{TimeS: 0, IntersectionID: "", Phase: entity.PhaseGreen, DurationS: 10},
	}))
	assert.Error(t, e.Load([]entity.SpatRecord{
		{TimeS: -1, IntersectionID: "A", Phase: entity.PhaseGreen, DurationS: 10},
	}))
	assert.Error(t, e.Load([]entity.SpatRecord{
		{TimeS: 0, IntersectionID: "A", Phase: entity.PhaseGreen, DurationS: 0},
	}))
	// 整体失败，不保留部分数据
	assert.False(t, e.Loaded())
}

func TestGetStateAt(t *testing.T) {
	e := spat.NewEngine()
	assert.NoError(t, e.Load(testRecords()))

	states := e.GetStateAt(10)
	assert.Equal(t, entity.PhaseGreen, states["A"])
	// 无活动事件的路口默认红灯
	assert.Equal(t, entity.PhaseRed, states["B"])

	states = e.GetStateAt(42)
	assert.Equal(t, entity.PhaseYellow, states["A"])
	assert.Equal(t, entity.PhaseGreen, states["B"])

	// 区间左闭右开
	assert.Equal(t, entity.PhaseYellow, e.GetStateAt(40)["A"])
	assert.Equal(t, entity.PhaseRed, e.GetStateAt(45)["A"])

	// 场景结束后全部回到红灯
	states = e.GetStateAt(500)
	assert.Equal(t, entity.PhaseRed, states["A"])
	assert.Equal(t, entity.PhaseRed, states["B"])
}

func TestSnapshotBeforeReplay(t *testing.T) {
	e := spat.NewEngine()
	snap := e.Snapshot()
	assert.Equal(t, 0.0, snap.TimeS)
	// 时长为0时进度为0，不做除零
	assert.Equal(t, 0.0, snap.Progress)

	assert.NoError(t, e.Load(testRecords()))
	snap = e.Snapshot()
	assert.Equal(t, 90.0, snap.DurationS)
	assert.Equal(t, entity.PhaseGreen, snap.States["A"])
}

func TestReplay(t *testing.T) {
	e := spat.NewEngine()
	assert.NoError(t, e.Load(testRecords()))

	// 30秒步长、超高倍速：0/30/60/90共4个快照
	ch, err := e.Replay(context.Background(), 1e6, 30)
	assert.NoError(t, err)
	snapshots := make([]entity.SpatSnapshot, 0)
	for snap := range ch {
		snapshots = append(snapshots, snap)
	}
	assert.Len(t, snapshots, 4)
	assert.Equal(t, 0.0, snapshots[0].TimeS)
	assert.Equal(t, 90.0, snapshots[3].TimeS)
	assert.InDelta(t, 100.0, snapshots[3].Progress, 1e-9)
	assert.Equal(t, entity.PhaseGreen, snapshots[0].States["A"])
	assert.Equal(t, entity.PhaseRed, snapshots[2].States["A"])
}

func TestReplayCancel(t *testing.T) {
	e := spat.NewEngine()
	assert.NoError(t, e.Load(testRecords()))

	ctx, cancel := context.WithCancel(context.Background())
	// 低速回放，首个快照后取消
	ch, err := e.Replay(ctx, 0.001, 30)
	assert.NoError(t, err)
	<-ch
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("replay channel not closed after cancel")
	}
}

func TestReplayValidation(t *testing.T) {
	e := spat.NewEngine()
	_, err := e.Replay(context.Background(), 1, 5)
	assert.Error(t, err) // 未加载

	assert.NoError(t, e.Load(testRecords()))
	_, err = e.Replay(context.Background(), 0, 5)
	assert.Error(t, err)
	_, err = e.Replay(context.Background(), 1, -5)
	assert.Error(t, err)
}

func TestBuildTimeline(t *testing.T) {
	e := spat.NewEngine()
	assert.Empty(t, e.BuildTimeline())

	assert.NoError(t, e.Load(testRecords()))
	timeline := e.BuildTimeline()
	// 0到90秒、5秒间隔，共19个采样点
	assert.Len(t, timeline, 19)
	assert.Equal(t, 0.0, timeline[0].TimeS)
	assert.Equal(t, 90.0, timeline[18].TimeS)
	for _, entry := range timeline {
		assert.Len(t, entry.States, 2)
	}
	assert.Equal(t, entity.PhaseYellow, timeline[8].States["A"]) // t=40
}
