package ephemera

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExpiryIndex(t *testing.T) {
	x := newExpiryIndex()
	t1 := epoch.Add(time.Second)
	t2 := epoch.Add(2 * time.Second)
	t3 := epoch.Add(3 * time.Second)

	x.add(t3, "c")
	x.add(t1, "a")
	x.add(t2, "b1")
	x.add(t2, "b2")

	require.Equal(t, 3, x.len())
	require.Equal(t, 4, x.size())
	require.True(t, x.contains(t2, "b2"))
	require.False(t, x.contains(t1, "b2"))

	var order []time.Time
	x.ascend(func(b *bucket) bool {
		order = append(order, b.at)
		return true
	})
	require.Equal(t, []time.Time{t1, t2, t3}, order)

	require.True(t, x.remove(t2, "b1"))
	require.False(t, x.remove(t2, "b1"))
	require.False(t, x.remove(epoch, "a"))
	require.Equal(t, 3, x.len())

	require.True(t, x.remove(t2, "b2"))
	require.Equal(t, 2, x.len(), "empty bucket should be dropped")
}

func TestExpiryIndexPopExpired(t *testing.T) {
	x := newExpiryIndex()
	for i := 1; i <= 5; i++ {
		x.add(epoch.Add(time.Duration(i)*time.Second), "k")
	}

	require.Empty(t, x.popExpired(epoch))

	popped := x.popExpired(epoch.Add(3 * time.Second))
	require.Len(t, popped, 3)
	for i, b := range popped {
		require.Equal(t, epoch.Add(time.Duration(i+1)*time.Second), b.at)
	}
	require.Equal(t, 2, x.len())

	require.Empty(t, x.popExpired(epoch.Add(3*time.Second)))
	require.Len(t, x.popExpired(epoch.Add(time.Hour)), 2)
	require.Equal(t, 0, x.len())
}
