package llmHandlers

import (
	"context"
	"io"
	"strings"
	"time"
)

type streamItem struct {
	text string
	err  error
}

// Stream is a pull-based sequence of text chunks. Recv returns io.EOF once
// the sequence completes normally, or the terminating error. Close cancels
// the producer; it is safe to call more than once.
type Stream struct {
	items  chan streamItem
	cancel context.CancelFunc

	text strings.Builder
	done bool
	err  error
}

// Recv returns the next chunk. Chunks are also accumulated so Text returns
// the full reply after the stream ends.
func (s *Stream) Recv() (string, error) {
	if s.done {
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}
	item, ok := <-s.items
	if !ok {
		s.done = true
		return "", io.EOF
	}
	if item.err != nil {
		s.done = true
		s.err = item.err
		return "", item.err
	}
	s.text.WriteString(item.text)
	return item.text, nil
}

// Text returns the text accumulated so far.
func (s *Stream) Text() string {
	return s.text.String()
}

// Collect drains the stream and returns the full reply.
func (s *Stream) Collect() (string, error) {
	for {
		if _, err := s.Recv(); err != nil {
			if err == io.EOF {
				return s.Text(), nil
			}
			return s.Text(), err
		}
	}
}

// Close cancels the producing side and discards remaining chunks.
func (s *Stream) Close() {
	s.cancel()
	for range s.items {
	}
	s.done = true
}

// RunStream starts fn in a goroutine and exposes its emissions as a Stream.
// fn must stop when emit returns false or its context is done.
func RunStream(parent context.Context, fn func(ctx context.Context, emit func(string) bool) error) *Stream {
	ctx, cancel := context.WithCancel(parent)
	s := &Stream{items: make(chan streamItem, 16), cancel: cancel}
	go func() {
		defer close(s.items)
		err := fn(ctx, func(text string) bool {
			select {
			case s.items <- streamItem{text: text}:
				return true
			case <-ctx.Done():
				return false
			}
		})
		if err != nil && ctx.Err() == nil {
			select {
			case s.items <- streamItem{err: err}:
			case <-ctx.Done():
			}
		}
	}()
	return s
}

// SimulateStream delivers already-known text as word-sized chunks with a
// fixed inter-chunk delay, so callers see the same streaming contract
// whether the reply came from a provider or from canned text.
func SimulateStream(ctx context.Context, text string, delay time.Duration) *Stream {
	return RunStream(ctx, func(ctx context.Context, emit func(string) bool) error {
		words := strings.Split(text, " ")
		for i, word := range words {
			if i < len(words)-1 {
				word += " "
			}
			if !emit(word) {
				return nil
			}
			if delay > 0 {
				select {
				case <-time.After(delay):
				case <-ctx.Done():
					return nil
				}
			}
		}
		return nil
	})
}
