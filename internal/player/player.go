// Package player plays the alarm sound through the beep speaker.
//
// All start and stop requests are executed in order by a single worker
// goroutine, so at most one playback instance is alive at any time.
// Completion and decode errors are reported asynchronously on Events.
package player

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/wav"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extWAV  = ".wav"

	eventBufferSize = 16
)

// ErrClosed is returned by Start and Stop after Close.
var ErrClosed = errors.New("player closed")

// Handle identifies one playback instance.
type Handle uint64

// Event reports the end of a playback instance.
// Err is nil when the stream reached its end normally.
type Event struct {
	Handle Handle
	Err    error
}

type requestKind int

const (
	requestStart requestKind = iota
	requestStop
)

type request struct {
	kind   requestKind
	handle Handle
	path   string
}

// instance is one decoded file being played. Only the worker touches it.
type instance struct {
	handle   Handle
	streamer beep.StreamSeekCloser
	file     *os.File
}

// Engine is the beep-backed playback engine.
type Engine struct {
	out         output
	volumeLevel float64

	next     atomic.Uint64
	requests chan request
	finished chan Event
	events   chan Event
	quit     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once

	current *instance
}

// New creates an engine playing through the system speaker at the given
// volume level (0.0 to 1.0) and starts its worker.
func New(volume float64) *Engine {
	return newEngine(&speakerOutput{}, volume)
}

func newEngine(out output, volume float64) *Engine {
	e := &Engine{
		out:         out,
		volumeLevel: clampLevel(volume),
		requests:    make(chan request),
		finished:    make(chan Event, eventBufferSize),
		events:      make(chan Event, eventBufferSize),
		quit:        make(chan struct{}),
	}
	e.wg.Add(1)
	go e.run()
	return e
}

// Init opens the audio device at the default sample rate.
// Calling it at startup surfaces a missing device before the first alarm.
func (e *Engine) Init() error {
	if err := e.out.Init(DefaultSampleRate); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	return nil
}

// Start requests playback of the file behind uri and returns its handle.
// Any previous instance is stopped before the new one starts.
func (e *Engine) Start(uri string) (Handle, error) {
	path, err := PathFromURI(uri)
	if err != nil {
		return 0, err
	}
	if !IsSupported(path) {
		return 0, fmt.Errorf("unsupported format: %s", filepath.Ext(path))
	}

	h := Handle(e.next.Add(1))
	if err := e.send(request{kind: requestStart, handle: h, path: path}); err != nil {
		return 0, err
	}
	return h, nil
}

// Stop requests that the instance identified by h be stopped and released.
// Stopping an instance that already ended is a no-op.
func (e *Engine) Stop(h Handle) error {
	return e.send(request{kind: requestStop, handle: h})
}

// Events returns the channel of end-of-stream and error notifications.
func (e *Engine) Events() <-chan Event {
	return e.events
}

// Close stops any active playback, waits for the worker to exit and
// releases the audio device.
func (e *Engine) Close() error {
	e.once.Do(func() {
		close(e.quit)
		e.wg.Wait()
		e.out.Close()
	})
	return nil
}

func (e *Engine) send(r request) error {
	select {
	case <-e.quit:
		return ErrClosed
	default:
	}
	select {
	case e.requests <- r:
		return nil
	case <-e.quit:
		return ErrClosed
	}
}

func (e *Engine) run() {
	defer e.wg.Done()
	for {
		select {
		case r := <-e.requests:
			switch r.kind {
			case requestStart:
				if err := e.play(r.handle, r.path); err != nil {
					slog.Warn("alarm playback failed", "handle", r.handle, "path", r.path, "error", err)
					e.emit(Event{Handle: r.handle, Err: err})
				}
			case requestStop:
				if e.current != nil && e.current.handle == r.handle {
					e.release(true)
				}
			}
		case ev := <-e.finished:
			// Stale completions from already released instances are dropped.
			if e.current == nil || e.current.handle != ev.Handle {
				continue
			}
			e.release(false)
			e.emit(ev)
		case <-e.quit:
			e.release(true)
			return
		}
	}
}

func (e *Engine) play(h Handle, path string) error {
	e.release(true)

	f, err := os.Open(path)
	if err != nil {
		return err
	}

	streamer, format, err := decode(f, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		f.Close()
		return err
	}

	if err := e.out.Init(format.SampleRate); err != nil {
		streamer.Close()
		f.Close()
		return fmt.Errorf("init speaker: %w", err)
	}

	// Resample if the file's sample rate differs from the speaker's
	var playStreamer beep.Streamer = streamer
	if rate := e.out.SampleRate(); format.SampleRate != rate {
		playStreamer = beep.Resample(4, format.SampleRate, rate, streamer)
	}
	volume := &effects.Volume{
		Streamer: playStreamer,
		Base:     2,
		Volume:   levelToVolume(e.volumeLevel),
		Silent:   e.volumeLevel <= 0,
	}

	e.current = &instance{handle: h, streamer: streamer, file: f}
	e.out.Play(beep.Seq(volume, beep.Callback(func() {
		// Runs on the speaker goroutine with the speaker locked: never block here.
		select {
		case e.finished <- Event{Handle: h, Err: streamer.Err()}:
		default:
		}
	})))
	return nil
}

// release closes the current instance. When clear is set the speaker is
// flushed first so the stream stops immediately.
func (e *Engine) release(clear bool) {
	if e.current == nil {
		return
	}
	if clear {
		e.out.Clear()
	}
	_ = e.current.streamer.Close()
	_ = e.current.file.Close()
	e.current = nil
}

// emit forwards an event without blocking; events are dropped if nobody reads.
func (e *Engine) emit(ev Event) {
	select {
	case e.events <- ev:
	default:
	}
}

func decode(f *os.File, ext string) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext {
	case extMP3:
		return decodeGoMP3(f)
	case extFLAC:
		return flac.Decode(f)
	case extWAV:
		return wav.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("unsupported format: %s", ext)
	}
}

// IsSupported reports whether the file extension can be decoded.
func IsSupported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case extMP3, extFLAC, extWAV:
		return true
	}
	return false
}
