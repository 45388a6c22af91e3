package llm

import (
	"encoding/json"
	"log/slog"
	"strings"
)

const (
	dataPrefix   = "data: "
	doneSentinel = "[DONE]"
)

// streamChunk is the structured form of one data line from the gateway
// (OpenAI-style chat completion chunk). Only the delta content is of
// interest; unknown or missing fields simply yield no fragment.
type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// StreamDecoder reassembles assistant content fragments from a line-framed
// event stream delivered in arbitrarily sized transport chunks. Chunk
// boundaries carry no alignment guarantee: a logical line, or the JSON
// payload inside it, may be split across two Feed calls. The decoder keeps
// the unterminated tail of the previous call as carry-over and prepends it
// to the next chunk, so callers just pass bytes along as they arrive.
type StreamDecoder struct {
	carry string
	done  bool
}

func NewStreamDecoder() *StreamDecoder {
	return &StreamDecoder{}
}

// Feed consumes one transport chunk and returns the content fragments of
// every complete line it contains, in source order.
//
// A line whose payload fails to decode is not dropped: the usual cause is a
// JSON payload cut at the chunk boundary, so the whole line is re-queued as
// carry-over together with the unprocessed remainder, and processing stops
// until more data arrives. Lines after a broken one must not be processed
// out of order.
func (d *StreamDecoder) Feed(chunk string) []string {
	if d.done {
		return nil
	}

	buf := d.carry + chunk
	d.carry = ""

	var fragments []string
	for {
		idx := strings.IndexByte(buf, '\n')
		if idx < 0 {
			break
		}
		line := strings.TrimSuffix(buf[:idx], "\r")
		buf = buf[idx+1:]

		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}
		if !strings.HasPrefix(line, dataPrefix) {
			continue
		}

		payload := strings.TrimSpace(line[len(dataPrefix):])
		if payload == doneSentinel {
			d.done = true
			d.carry = ""
			return fragments
		}

		var chunk streamChunk
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			d.carry = line + "\n" + buf
			return fragments
		}

		if len(chunk.Choices) > 0 {
			if content := chunk.Choices[0].Delta.Content; content != "" {
				fragments = append(fragments, content)
			}
		}
	}

	d.carry = buf
	return fragments
}

// Done reports whether the terminal sentinel has been seen. Once set, Feed
// ignores all further input.
func (d *StreamDecoder) Done() bool {
	return d.done
}

// Close ends the session. Undecoded carry-over at end of stream is not an
// error, but it can hide a genuine upstream protocol problem as silent
// content loss, so a non-empty remainder is logged before being discarded.
func (d *StreamDecoder) Close() {
	if d.carry != "" && !d.done {
		slog.Warn("Stream ended with undecoded carry-over, discarding.", "bytes", len(d.carry))
	}
	d.carry = ""
	d.done = true
}
