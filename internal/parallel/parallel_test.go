package parallel

import (
	"fmt"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_PreservesInputOrder(t *testing.T) {
	items := []int{5, 4, 3, 2, 1}

	outcomes := Map(items, 0, func(n int) (string, error) {
		// Later items finish first; the result order must not care.
		time.Sleep(time.Duration(n) * time.Millisecond)
		return strconv.Itoa(n), nil
	})

	require.Len(t, outcomes, len(items))
	for i, n := range items {
		assert.True(t, outcomes[i].HasValue)
		assert.Equal(t, strconv.Itoa(n), outcomes[i].Value)
	}
}

func TestMap_FailureDoesNotAbortSiblings(t *testing.T) {
	var completed atomic.Int32

	outcomes := Map([]int{0, 1, 2, 3}, 0, func(n int) (int, error) {
		defer completed.Add(1)
		if n == 1 {
			return 0, fmt.Errorf("item %d failed", n)
		}
		return n * 10, nil
	})

	assert.Equal(t, int32(4), completed.Load())
	assert.NoError(t, outcomes[0].Err)
	assert.Error(t, outcomes[1].Err)
	assert.NoError(t, outcomes[2].Err)
	assert.NoError(t, outcomes[3].Err)
}

func TestMap_BoundedConcurrency(t *testing.T) {
	var running, peak atomic.Int32

	Map(make([]struct{}, 32), 4, func(struct{}) (struct{}, error) {
		n := running.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		running.Add(-1)
		return struct{}{}, nil
	})

	assert.LessOrEqual(t, peak.Load(), int32(4))
}

func TestMap_Empty(t *testing.T) {
	assert.Nil(t, Map(nil, 0, func(int) (int, error) { return 0, nil }))
}

func TestCollect_ValuesInInputOrder(t *testing.T) {
	outcomes := []Outcome[string]{Ok("a"), Ok("b"), Ok("c")}

	values, err := Collect(outcomes)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, values)
}

func TestCollect_NothingOutcomesOmitted(t *testing.T) {
	outcomes := []Outcome[string]{Ok("a"), Done[string](), Ok("b")}

	values, err := Collect(outcomes)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, values)
}

func TestCollect_FailuresStickyAndAdditive(t *testing.T) {
	outcomes := []Outcome[string]{
		Ok("x"),
		Fail[string](fmt.Errorf("A")),
		Ok("y"),
		Fail[string](fmt.Errorf("B")),
	}

	values, err := Collect(outcomes)
	assert.Nil(t, values)
	require.Error(t, err)
	assert.Equal(t, "A, B", err.Error())
}

func TestCollect_GroupingInvariant(t *testing.T) {
	// Folding a prefix and suffix separately, then merging, classifies the
	// same as folding the whole sequence at once.
	outcomes := []Outcome[int]{Ok(1), Fail[int](fmt.Errorf("A")), Fail[int](fmt.Errorf("B")), Ok(2)}

	_, whole := Collect(outcomes)
	_, left := Collect(outcomes[:2])
	_, right := Collect(outcomes[2:])

	require.Error(t, whole)
	require.Error(t, left)
	require.Error(t, right)
	assert.Equal(t, whole.Error(), left.Error()+", "+right.Error())
}

func TestWait_AllOk(t *testing.T) {
	outcomes := Each([]int{1, 2, 3}, 2, func(int) error { return nil })
	assert.NoError(t, Wait(outcomes))
}

func TestWait_JoinsFailureMessages(t *testing.T) {
	outcomes := Each([]int{0, 1, 2, 3, 4}, 0, func(n int) error {
		if n%2 == 1 {
			return fmt.Errorf("write %d", n)
		}
		return nil
	})

	err := Wait(outcomes)
	require.Error(t, err)
	assert.Equal(t, "write 1, write 3", err.Error())
}
