package progress

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	percents []int
	statuses []string
	cancelAt int
}

func (r *recorder) callback(percent int, status string) bool {
	r.percents = append(r.percents, percent)
	r.statuses = append(r.statuses, status)
	return r.cancelAt == 0 || len(r.percents) < r.cancelAt
}

func TestOverall_WeightsSheets(t *testing.T) {
	t.Parallel()

	m := New(func(int, string) bool { return true }, zerolog.Nop())
	m.StartExport(4)

	m.StartSheet("s1", 1)
	assert.Equal(t, 0, m.Overall())
	m.UpdateSheetProgress(50, "half")
	assert.Equal(t, 12, m.Overall())

	m.StartSheet("s3", 3)
	m.UpdateSheetProgress(100, "done")
	assert.Equal(t, 75, m.Overall())

	m.StartSheet("s4", 4)
	m.UpdateSheetProgress(100, "done")
	assert.Equal(t, 100, m.Overall())
}

func TestUpdate_MonotonicAndFinishesAt100(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	m := New(rec.callback, zerolog.Nop())
	m.StartExport(3)
	for i := 1; i <= 3; i++ {
		require.True(t, m.StartSheet("s", i))
		for p := 0; p <= 100; p += 10 {
			m.UpdateSheetProgress(p, "rows")
		}
	}
	m.Update(10, "late low value")
	m.Finish()

	for i := 1; i < len(rec.percents); i++ {
		assert.GreaterOrEqual(t, rec.percents[i], rec.percents[i-1])
	}
	assert.Equal(t, 100, rec.percents[len(rec.percents)-1])
}

func TestCancellation_Latches(t *testing.T) {
	t.Parallel()

	rec := &recorder{cancelAt: 2}
	m := New(rec.callback, zerolog.Nop())
	m.StartExport(2)

	assert.False(t, m.StartSheet("s1", 1))
	assert.True(t, m.Cancelled())
	calls := len(rec.percents)

	assert.False(t, m.UpdateSheetProgress(50, "rows"))
	assert.False(t, m.Update(60, "rows"))
	assert.False(t, m.StartSheet("s2", 2))
	m.Finish()

	require.Len(t, rec.percents, calls+1)
	assert.Equal(t, CancelledStatus, rec.statuses[len(rec.statuses)-1])
}

func TestStartSheet_SkipsCallbackWhenCancelled(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	m := New(rec.callback, zerolog.Nop())
	m.StartExport(1)
	m.Cancel()
	calls := len(rec.percents)

	assert.False(t, m.StartSheet("s1", 1))
	assert.Len(t, rec.percents, calls)
}

func TestPanickingCallback_DisablesReporting(t *testing.T) {
	t.Parallel()

	calls := 0
	m := New(func(int, string) bool {
		calls++
		panic("boom")
	}, zerolog.Nop())

	assert.True(t, m.StartExport(1))
	assert.True(t, m.StartSheet("s", 1))
	m.Error(errors.New("ignored"))
	m.Finish()

	assert.Equal(t, 1, calls)
	assert.False(t, m.Cancelled())
}

func TestNilCallback_UsesConsole(t *testing.T) {
	t.Parallel()

	m := New(nil, zerolog.Nop())
	assert.True(t, m.StartExport(1))
	m.Finish()
	m.Cleanup()
}
