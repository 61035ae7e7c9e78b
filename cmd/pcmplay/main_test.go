// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/pcmout"
	"github.com/ik5/pcmout/formats/wav"
	"github.com/ik5/pcmout/internal/audiotest"
	"github.com/ik5/pcmout/internal/config"
	"github.com/ik5/pcmout/internal/drivertest"
	"github.com/ik5/pcmout/pcm"
)

func writeInput(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "in.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = pcmout.Play(context.Background(), wav.NewSink(f), audiotest.NewSineStream(16000, 1, 1600, 440), 0)
	require.NoError(t, err)
	return path
}

func TestParseFlags(t *testing.T) {
	t.Setenv(config.PathEnv, "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("device: FromFile\nblock_size: 512\n"), 0o644))

	cfg, list, rest, err := parseFlags([]string{"-block-size", "1024", "-config", path, "song.wav"})
	require.NoError(t, err)

	assert.False(t, list)
	assert.Equal(t, "FromFile", cfg.Device)
	assert.Equal(t, 1024, cfg.BlockSize, "flags override the file")
	assert.Equal(t, []string{"song.wav"}, rest)

	_, list, _, err = parseFlags([]string{"-list"})
	require.NoError(t, err)
	assert.True(t, list)

	_, _, _, err = parseFlags([]string{"-no-such-flag"})
	assert.Error(t, err)
}

func TestListDevices(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, listDevices(&buf, drivertest.New(drivertest.WithDevices("Speakers", "Headphones"))))
	assert.Equal(t, "0\tSpeakers\t2 channels\n1\tHeadphones\t2 channels\n", buf.String())

	buf.Reset()
	require.NoError(t, listDevices(&buf, drivertest.New()))
	assert.Equal(t, "no output devices\n", buf.String())
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	reg := registry()
	assert.ElementsMatch(t, []string{"wav", "aiff", "aif", "mp3", "ogg"}, reg.Formats())

	_, _, err := decode(reg, "track.flac")
	assert.ErrorContains(t, err, "unsupported format")
}

func TestRun_WavOutput(t *testing.T) {
	t.Setenv(config.PathEnv, "")

	dir := t.TempDir()
	in := writeInput(t, dir)
	out := filepath.Join(dir, "out.wav")

	require.NoError(t, run([]string{"-output", "wav", "-wav-path", out, "-block-size", "1000", in}, io.Discard))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()

	st, err := wav.Decoder{}.Decode(f)
	require.NoError(t, err)
	defer st.Close()

	assert.Equal(t, pcm.Format{Kind: pcm.S16LE, Rate: 16000, Channels: 1}, st.Format())

	data, err := io.ReadAll(st)
	require.NoError(t, err)
	assert.Len(t, data, 3200)
}

func TestRun_Errors(t *testing.T) {
	t.Setenv(config.PathEnv, "")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no input", []string{"-output", "wav", "-wav-path", "x.wav"}, "usage"},
		{"bad block size", []string{"-block-size", "0", "a.wav"}, "block size"},
		{"wav without path", []string{"-output", "wav", "a.wav"}, "file path"},
		{"unknown extension", []string{"-output", "wav", "-wav-path", "x.wav", "a.flac"}, "unsupported format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.args, io.Discard)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
