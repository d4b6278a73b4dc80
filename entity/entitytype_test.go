package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/entity"
)

func TestSignalPhaseString(t *testing.T) {
	assert.Equal(t, "GREEN", entity.PhaseGreen.String())
	assert.Equal(t, "YELLOW", entity.PhaseYellow.String())
	assert.Equal(t, "RED", entity.PhaseRed.String())
	// 零值为红灯
	var p entity.SignalPhase
	assert.Equal(t, "RED", p.String())
}

func TestParseSignalPhase(t *testing.T) {
	for s, want := range map[string]entity.SignalPhase{
		"GREEN":  entity.PhaseGreen,
		"green":  entity.PhaseGreen,
		" Red ":  entity.PhaseRed,
		"yellow": entity.PhaseYellow,
	} {
		got, err := entity.ParseSignalPhase(s)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := entity.ParseSignalPhase("blue")
	assert.Error(t, err)
	_, err = entity.ParseSignalPhase("")
	assert.Error(t, err)
}

func TestSignalPhaseJSON(t *testing.T) {
	data, err := json.Marshal(map[string]entity.SignalPhase{"a": entity.PhaseGreen})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"a":"GREEN"}`, string(data))

	var m map[string]entity.SignalPhase
	assert.NoError(t, json.Unmarshal([]byte(`{"a":"yellow"}`), &m))
	assert.Equal(t, entity.PhaseYellow, m["a"])
	assert.Error(t, json.Unmarshal([]byte(`{"a":"blue"}`), &m))
}

func TestPositionDistance(t *testing.T) {
	a := entity.Position{Lat: 23.0300, Lon: 72.5400}
	// 纬度方向0.0045度约500米
	b := entity.Position{Lat: 23.0345, Lon: 72.5400}
	d := a.DistanceM(b)
	assert.InDelta(t, 500, d, 5)
	// 对称且自距离为0
	assert.Equal(t, d, b.DistanceM(a))
	assert.Equal(t, 0.0, a.DistanceM(a))
}
