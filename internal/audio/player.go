// Package audio arbitrates clip playback: at most one clip plays at a time,
// and starting a new clip deterministically stops the previous one first.
package audio

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Clip is the handle returned by Play. Done closes when the clip stops for
// any reason; Finished reports whether it ran to the end rather than being
// stopped by a newer clip.
type Clip struct {
	ID   string
	done chan struct{}

	mu       sync.Mutex
	finished bool
}

// Done closes when playback of this clip has ended.
func (c *Clip) Done() <-chan struct{} {
	return c.done
}

// Finished reports whether the clip played to completion.
func (c *Clip) Finished() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.finished
}

func (c *Clip) markFinished() {
	c.mu.Lock()
	c.finished = true
	c.mu.Unlock()
}

type clipHandle struct {
	clip   *Clip
	cancel context.CancelFunc
}

// Player streams decoded PCM clips into an Output, one at a time.
type Player struct {
	mu         sync.Mutex
	out        Output
	sampleRate int
	current    *clipHandle
}

// NewPlayer builds a Player over the given sink. A nil sink selects the
// shared default output.
func NewPlayer(out Output, sampleRate int) *Player {
	if sampleRate <= 0 {
		sampleRate = 24000
	}
	if out == nil {
		out = DefaultOutput(sampleRate)
	}
	return &Player{out: out, sampleRate: sampleRate}
}

// Play decodes a base64 PCM16LE payload and begins playback, stopping any
// clip already in progress first. A decode failure returns an error and
// leaves playback state untouched.
func (p *Player) Play(encoded string) (*Clip, error) {
	samples, err := decodePCM16(encoded)
	if err != nil {
		return nil, err
	}

	clip := &Clip{ID: uuid.NewString(), done: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	handle := &clipHandle{clip: clip, cancel: cancel}

	p.mu.Lock()
	prev := p.current
	p.current = handle
	p.mu.Unlock()

	// Stop-before-start: wait for the previous clip to drain so two clips
	// never write to the output at once.
	if prev != nil {
		prev.cancel()
		<-prev.clip.done
	}

	go p.stream(ctx, handle, samples)

	return clip, nil
}

// Stop cancels the clip in progress, if any.
func (p *Player) Stop() {
	p.mu.Lock()
	current := p.current
	p.current = nil
	p.mu.Unlock()

	if current != nil {
		current.cancel()
		<-current.clip.done
	}
}

func (p *Player) stream(ctx context.Context, handle *clipHandle, samples []int16) {
	defer close(handle.clip.done)
	defer handle.cancel()

	chunkSize := p.sampleRate / 10
	if chunkSize < 1 {
		chunkSize = 1
	}

	for offset := 0; offset < len(samples); offset += chunkSize {
		select {
		case <-ctx.Done():
			log.Printf("[audio] clip %s stopped before completion", handle.clip.ID)
			p.release(handle)
			return
		default:
		}

		end := offset + chunkSize
		if end > len(samples) {
			end = len(samples)
		}
		if err := p.out.WriteSamples(samples[offset:end]); err != nil {
			log.Printf("[audio] output write failed for clip %s: %v", handle.clip.ID, err)
			p.release(handle)
			return
		}
	}

	handle.clip.markFinished()
	p.release(handle)
}

// release clears the current slot if this handle still owns it. A newer Play
// may already have replaced it; in that case the slot is left alone.
func (p *Player) release(handle *clipHandle) {
	p.mu.Lock()
	if p.current == handle {
		p.current = nil
	}
	p.mu.Unlock()
}

// decodePCM16 converts a base64 payload into little-endian 16-bit samples.
func decodePCM16(encoded string) ([]int16, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio payload: %w", err)
	}
	if len(raw) == 0 || len(raw)%2 != 0 {
		return nil, fmt.Errorf("audio payload is not 16-bit PCM: %d bytes", len(raw))
	}

	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(raw[2*i:]))
	}
	return samples, nil
}
