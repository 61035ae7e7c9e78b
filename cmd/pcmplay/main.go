// SPDX-License-Identifier: EPL-2.0

// Command pcmplay decodes an audio file and plays it through a waveOut device,
// or writes the decoded PCM to a WAV file.
//
// Usage:
//
//	pcmplay [flags] <input.{wav|aiff|mp3|ogg}>
//	pcmplay -list
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/pcmout"
	"github.com/ik5/pcmout/formats/aiff"
	"github.com/ik5/pcmout/formats/mp3"
	"github.com/ik5/pcmout/formats/vorbis"
	"github.com/ik5/pcmout/formats/wav"
	"github.com/ik5/pcmout/internal/config"
	"github.com/ik5/pcmout/pcm"
	"github.com/ik5/pcmout/waveout"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "pcmplay:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	cfg, list, rest, err := parseFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	if list {
		return listDevices(stdout, waveout.System())
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if len(rest) != 1 {
		return errors.New("usage: pcmplay [flags] <input.{wav|aiff|mp3|ogg}>")
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger = logger.With(
		zap.String("session", uuid.NewString()),
		zap.String("app", cfg.AppName),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return play(ctx, logger, cfg, rest[0])
}

// parseFlags parses args twice: once to find -config, and again on top of
// the loaded configuration so flags win over the file and the environment.
func parseFlags(args []string) (*config.Config, bool, []string, error) {
	var (
		path string
		list bool
	)

	probe := flag.NewFlagSet("pcmplay", flag.ContinueOnError)
	probe.SetOutput(io.Discard)
	probe.StringVar(&path, "config", "", "")
	probe.BoolVar(&list, "list", false, "")
	config.Defaults().BindFlags(probe)
	_ = probe.Parse(args)

	cfg, err := config.Load(path)
	if err != nil {
		return nil, false, nil, fmt.Errorf("load config: %w", err)
	}

	fs := flag.NewFlagSet("pcmplay", flag.ContinueOnError)
	fs.StringVar(&path, "config", path, "YAML config file (default $"+config.PathEnv+")")
	fs.BoolVar(&list, "list", false, "list output devices and exit")
	cfg.BindFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, false, nil, err
	}

	return cfg, list, fs.Args(), nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func listDevices(w io.Writer, drv waveout.Driver) error {
	devices := waveout.Devices(drv)
	if len(devices) == 0 {
		_, err := fmt.Fprintln(w, "no output devices")
		return err
	}

	for i, c := range devices {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%d channels\n", i, c.Name, c.Channels); err != nil {
			return err
		}
	}
	return nil
}

func registry() *pcm.Registry {
	reg := pcm.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	return reg
}

func decode(reg *pcm.Registry, path string) (pcm.Stream, io.Closer, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	dec, ok := reg.Get(ext)
	if !ok {
		return nil, nil, fmt.Errorf("unsupported format %q", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	st, err := dec.Decode(f)
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return st, f, nil
}

func openSink(cfg *config.Config, logger *zap.Logger) (pcmout.Sink, io.Closer, error) {
	if cfg.Output == config.OutputWav {
		f, err := os.Create(cfg.WavPath)
		if err != nil {
			return nil, nil, err
		}
		return wav.NewSink(f, wav.WithLogger(logger)), f, nil
	}

	s := waveout.New(waveout.System(), cfg.Device, cfg.AppName, cfg.Description,
		waveout.WithLogger(logger))
	return s, io.NopCloser(nil), nil
}

func play(ctx context.Context, logger *zap.Logger, cfg *config.Config, path string) error {
	log := logger.Sugar()

	st, in, err := decode(registry(), path)
	if err != nil {
		return err
	}
	defer in.Close()
	defer st.Close()

	sink, out, err := openSink(cfg, logger)
	if err != nil {
		return err
	}
	defer out.Close()
	defer func() {
		if err := sink.Destroy(); err != nil {
			log.Warnw("destroy sink", "error", err)
		}
	}()

	f := st.Format()
	log.Infow("playing",
		"file", path,
		"format", f.Kind.String(),
		"rate", f.Rate,
		"channels", f.Channels,
		"output", cfg.Output,
		"device", cfg.Device,
	)

	done := make(chan struct{})
	var g errgroup.Group

	g.Go(func() error {
		defer close(done)

		n, err := pcmout.Play(ctx, sink, st, cfg.BlockSize)
		log.Infow("playback finished", "bytes", n)
		return err
	})

	// A Write or Drain blocked on the device does not watch ctx; a reset
	// hands every buffer back and lets Play notice the cancellation.
	g.Go(func() error {
		select {
		case <-done:
		case <-ctx.Done():
			log.Infow("interrupted, flushing")
			if err := sink.Flush(); err != nil {
				log.Debugw("flush", "error", err)
			}
		}
		return nil
	})

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
