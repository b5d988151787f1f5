package pomodoro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_LongBreakCadence(t *testing.T) {
	plan := DefaultSettings().Plan(9)
	require.Len(t, plan, 9)

	wantModes := []Mode{Work, Break, Work, Break, Work, Break, Work, Break, Work}
	wantMinutes := []int{25, 5, 25, 5, 25, 5, 25, 15, 25}
	for i, p := range plan {
		assert.Equal(t, wantModes[i], p.Mode, "phase %d", i)
		assert.Equal(t, wantMinutes[i], p.Minutes, "phase %d", i)
		assert.Equal(t, time.Duration(wantMinutes[i])*time.Minute, p.Duration)
	}
	assert.True(t, plan[7].Long)
	assert.Equal(t, 4, plan[8].Completed)

	assert.Nil(t, DefaultSettings().Plan(0))
}

func TestSettings_Validate(t *testing.T) {
	assert.NoError(t, DefaultSettings().Validate())

	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero every", func(s *Settings) { s.LongBreakEvery = 0 }},
		{"every too large", func(s *Settings) { s.LongBreakEvery = 25 }},
		{"zero work", func(s *Settings) { s.WorkMinutes = 0 }},
		{"work too long", func(s *Settings) { s.WorkMinutes = 241 }},
		{"break too long", func(s *Settings) { s.BreakMinutes = 1000 }},
		{"negative long break", func(s *Settings) { s.LongBreakMinutes = -5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidSettings)

			_, err := NewSession(s)
			assert.ErrorIs(t, err, ErrInvalidSettings)
		})
	}

	edge := Settings{WorkMinutes: 240, BreakMinutes: 1, LongBreakMinutes: 240, LongBreakEvery: 24}
	assert.NoError(t, edge.Validate())
}

func TestSession_TickPausedDoesNothing(t *testing.T) {
	sess, err := NewSession(DefaultSettings())
	require.NoError(t, err)

	next, err := sess.Tick(time.Hour)
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.Equal(t, 25*time.Minute, sess.Status().Remaining)
}

func TestSession_Cycle(t *testing.T) {
	sess, err := NewSession(Settings{WorkMinutes: 2, BreakMinutes: 1, LongBreakMinutes: 3, LongBreakEvery: 2})
	require.NoError(t, err)

	assert.True(t, sess.Toggle())
	next, err := sess.Tick(time.Minute)
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.Equal(t, "01:00", sess.Status().Clock)
	assert.InDelta(t, 50.0, sess.Status().Progress, 0.001)

	next, err = sess.Tick(time.Minute)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, Break, next.Mode)
	assert.False(t, next.Long)

	st := sess.Status()
	assert.False(t, st.Running, "session pauses between phases")
	assert.Equal(t, 1, st.Completed)
	assert.Equal(t, time.Minute, st.Remaining)

	// break -> work -> long break
	assert.Equal(t, Work, sess.Skip().Mode)
	long := sess.Skip()
	assert.Equal(t, Break, long.Mode)
	assert.True(t, long.Long)
	assert.Equal(t, 3, long.Minutes)
	assert.Equal(t, 2, sess.Status().Completed)

	sess.Reset()
	st = sess.Status()
	assert.Equal(t, Work, st.Mode)
	assert.Equal(t, 0, st.Completed)
	assert.Equal(t, 2*time.Minute, st.Remaining)
	assert.False(t, st.Running)
}

func TestSession_NegativeTick(t *testing.T) {
	sess, err := NewSession(DefaultSettings())
	require.NoError(t, err)
	_, err = sess.Tick(-time.Second)
	assert.Error(t, err)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "25:00", FormatClock(25*time.Minute))
	assert.Equal(t, "00:01", FormatClock(500*time.Millisecond))
	assert.Equal(t, "00:00", FormatClock(-time.Second))
	assert.Equal(t, "61:05", FormatClock(61*time.Minute+5*time.Second))
}
