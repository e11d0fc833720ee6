package circuit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// step records one outcome; wantSwitch is the bool the Record call returns.
type step struct {
	fail       bool
	wantSwitch bool
	wantOpened bool
	wantClosed bool
	wantState  State
}

func TestBreakerTransitions(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		steps []step
	}{
		{
			name: "opens on the threshold failure",
			opts: []Option{WithFailureThreshold(2)},
			steps: []step{
				{fail: true, wantSwitch: false, wantState: StateClosed},
				{fail: true, wantSwitch: true, wantOpened: true, wantState: StateOpen},
				{fail: true, wantSwitch: true, wantState: StateOpen},
			},
		},
		{
			name: "success clears the failure run",
			opts: []Option{WithFailureThreshold(2)},
			steps: []step{
				{fail: true, wantState: StateClosed},
				{fail: false, wantSwitch: true, wantState: StateClosed},
				{fail: true, wantState: StateClosed},
				{fail: true, wantSwitch: true, wantOpened: true, wantState: StateOpen},
			},
		},
		{
			name: "closes after consecutive successes",
			opts: []Option{WithFailureThreshold(1), WithSuccessThreshold(2)},
			steps: []step{
				{fail: true, wantSwitch: true, wantOpened: true, wantState: StateOpen},
				{fail: false, wantSwitch: false, wantState: StateOpen},
				{fail: false, wantSwitch: true, wantClosed: true, wantState: StateClosed},
			},
		},
		{
			name: "failure while open restarts recovery",
			opts: []Option{WithFailureThreshold(1), WithSuccessThreshold(2)},
			steps: []step{
				{fail: true, wantSwitch: true, wantOpened: true, wantState: StateOpen},
				{fail: false, wantState: StateOpen},
				{fail: true, wantSwitch: true, wantState: StateOpen},
				{fail: false, wantState: StateOpen},
				{fail: false, wantSwitch: true, wantClosed: true, wantState: StateClosed},
			},
		},
		{
			name: "non-positive thresholds keep defaults",
			opts: []Option{WithFailureThreshold(0), WithSuccessThreshold(-1)},
			steps: []step{
				{fail: true}, {fail: true}, {fail: true}, {fail: true},
				{fail: true, wantSwitch: true, wantOpened: true, wantState: StateOpen},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New("tier2", tt.opts...)
			for i, s := range tt.steps {
				var (
					switched bool
					change   StateChange
				)
				if s.fail {
					switched, change = b.RecordFailure()
				} else {
					switched, change = b.RecordSuccess()
				}
				require.Equal(t, s.wantSwitch, switched, "step %d", i)
				assert.Equal(t, s.wantOpened, change.Opened, "step %d opened", i)
				assert.Equal(t, s.wantClosed, change.Closed, "step %d closed", i)
				assert.Equal(t, s.wantState, b.State(), "step %d state", i)
			}
		})
	}
}

func TestBreakerReset(t *testing.T) {
	b := New("tier2", WithFailureThreshold(1))
	assert.Equal(t, "tier2", b.Name())
	assert.Equal(t, "closed", b.State().String())

	b.RecordFailure()
	require.True(t, b.IsOpen())
	assert.Equal(t, "open", b.State().String())

	b.Reset()
	assert.False(t, b.IsOpen())
}
