package clock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/clock"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/utils/config"
)

func TestClock(t *testing.T) {
	c := clock.New(config.ControlStep{Start: 0, Total: 60, Interval: 5})
	assert.Equal(t, int32(0), c.InternalStep)
	assert.Equal(t, 0.0, c.T)
	assert.False(t, c.Done())

	c.Step()
	assert.Equal(t, int32(1), c.InternalStep)
	assert.Equal(t, 5.0, c.T)

	for !c.Done() {
		c.Step()
	}
	assert.Equal(t, int32(60), c.InternalStep)
	assert.Equal(t, 300.0, c.T)

	c.Init()
	assert.Equal(t, int32(0), c.InternalStep)
}

func TestClockString(t *testing.T) {
	c := clock.New(config.ControlStep{Start: 745, Total: 100, Interval: 5})
	// 745步*5秒 = 3725秒 = 01:02:05
	assert.Equal(t, "01:02:05", c.String())
	hour, minute, second := c.GetHourMinuteSecond()
	assert.Equal(t, 1, hour)
	assert.Equal(t, 2, minute)
	assert.Equal(t, 5.0, second)
}
