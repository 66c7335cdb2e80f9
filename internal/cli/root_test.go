package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tytimer/internal/timer"
)

type recorder struct {
	spawned  [][]string
	spawnErr error
	ran      []float64
	runOpts  []options
	runErr   error
}

func (r *recorder) options(out *bytes.Buffer) *options {
	return &options{
		stdout: out,
		spawn: func(args []string) error {
			r.spawned = append(r.spawned, args)
			return r.spawnErr
		},
		run: func(o *options, minutes float64) error {
			r.ran = append(r.ran, minutes)
			r.runOpts = append(r.runOpts, *o)
			return r.runErr
		},
	}
}

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		arg     string
		want    float64
		wantErr bool
	}{
		{"25", 25, false},
		{"0.5", 0.5, false},
		{"1e1", 10, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
		{"", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
		{"1e300", 0, true},
		{"1e17", 0, true},
		{"35791394", 35791394, false},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseMinutes(tt.arg)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, timer.ErrInvalidDuration)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestExecute_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"valid background", []string{"5"}, ExitOK},
		{"valid foreground", []string{"--no-daemon", "5"}, ExitOK},
		{"not a number", []string{"abc"}, ExitInvalidDuration},
		{"zero", []string{"0"}, ExitInvalidDuration},
		{"negative after separator", []string{"--", "-1"}, ExitInvalidDuration},
		{"negative as flag", []string{"-1"}, ExitInvalidDuration},
		{"nan", []string{"NaN"}, ExitInvalidDuration},
		{"too long", []string{"1e300"}, ExitInvalidDuration},
		{"no args", nil, ExitInvalidDuration},
		{"too many args", []string{"1", "2"}, ExitInvalidDuration},
		{"unknown flag", []string{"--bogus", "1"}, ExitInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			r := &recorder{}
			cmd := newRootCmd(r.options(&out))
			cmd.SetOut(&out)
			cmd.SetErr(&errOut)

			got := execute(cmd, tt.args, &errOut)

			assert.Equal(t, tt.want, got, errOut.String())
			if tt.want == ExitInvalidDuration {
				assert.Contains(t, errOut.String(), "tytimer:")
				assert.Contains(t, errOut.String(), "tytimer <minutes>")
				assert.Empty(t, r.spawned)
				assert.Empty(t, r.ran)
			}
		})
	}
}

func TestExecute_StartupFailure(t *testing.T) {
	var out, errOut bytes.Buffer
	r := &recorder{runErr: startupFailure("open audio device", errors.New("no device"))}
	cmd := newRootCmd(r.options(&out))

	got := execute(cmd, []string{"--no-daemon", "1"}, &errOut)

	assert.Equal(t, ExitStartupFailure, got)
	assert.Contains(t, errOut.String(), "Failed to open audio device: no device")
	assert.NotContains(t, errOut.String(), "tytimer <minutes>")
}

func TestRootCmd_Routing(t *testing.T) {
	t.Run("default detaches", func(t *testing.T) {
		var out bytes.Buffer
		r := &recorder{}
		cmd := newRootCmd(r.options(&out))
		cmd.SetArgs([]string{"2.5"})

		require.NoError(t, cmd.Execute())

		require.Len(t, r.spawned, 1)
		assert.Equal(t, []string{"--no-daemon", "--", "2.5"}, r.spawned[0])
		assert.Empty(t, r.ran)
		assert.Equal(t, "Timer started in background.\n", out.String())
	})

	t.Run("no-daemon runs in foreground", func(t *testing.T) {
		var out bytes.Buffer
		r := &recorder{}
		cmd := newRootCmd(r.options(&out))
		cmd.SetArgs([]string{"--no-daemon", "2.5"})

		require.NoError(t, cmd.Execute())

		assert.Empty(t, r.spawned)
		assert.Equal(t, []float64{2.5}, r.ran)
		assert.False(t, r.runOpts[0].tui)
		assert.Empty(t, out.String())
	})

	t.Run("tui implies foreground", func(t *testing.T) {
		var out bytes.Buffer
		r := &recorder{}
		cmd := newRootCmd(r.options(&out))
		cmd.SetArgs([]string{"--tui", "--config", "/tmp/x.toml", "1"})

		require.NoError(t, cmd.Execute())

		assert.Empty(t, r.spawned)
		assert.Equal(t, []float64{1}, r.ran)
		assert.True(t, r.runOpts[0].tui)
		assert.Equal(t, "/tmp/x.toml", r.runOpts[0].configPath)
	})
}
