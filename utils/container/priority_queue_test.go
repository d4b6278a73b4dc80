package container_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/greensync-sim-oss/utils/container"
)

func TestPriorityQueue(t *testing.T) {
	q := container.NewPriorityQueue[string]()
	assert.Equal(t, 0, q.Len())

	q.HeapPush("c", 3)
	q.HeapPush("a", 1)
	q.HeapPush("b", 2)
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, "a", q.First())

	// 按优先级从小到大弹出
	v, p := q.HeapPop()
	assert.Equal(t, "a", v)
	assert.Equal(t, 1.0, p)
	v, _ = q.HeapPop()
	assert.Equal(t, "b", v)
	v, _ = q.HeapPop()
	assert.Equal(t, "c", v)
	assert.Equal(t, 0, q.Len())
}

func TestPriorityQueueDuplicates(t *testing.T) {
	// 同一元素允许以不同优先级重复入堆（最短路搜索的懒删除用法）
	q := container.NewPriorityQueue[string]()
	q.HeapPush("x", 5)
	q.HeapPush("x", 2)
	q.HeapPush("y", 3)

	v, p := q.HeapPop()
	assert.Equal(t, "x", v)
	assert.Equal(t, 2.0, p)
	v, _ = q.HeapPop()
	assert.Equal(t, "y", v)
	v, p = q.HeapPop()
	assert.Equal(t, "x", v)
	assert.Equal(t, 5.0, p)
}
