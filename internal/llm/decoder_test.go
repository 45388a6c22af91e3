package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func contentLine(content string) string {
	return `data: {"choices":[{"delta":{"content":"` + content + `"}}]}` + "\n"
}

func TestStreamDecoder_CompleteLines(t *testing.T) {
	d := NewStreamDecoder()

	fragments := d.Feed(contentLine("Hello") + "\n" + contentLine(" world"))

	assert.Equal(t, []string{"Hello", " world"}, fragments)
	assert.False(t, d.Done())
}

func TestStreamDecoder_LineSplitAcrossChunks(t *testing.T) {
	d := NewStreamDecoder()

	// The payload is cut mid-string at an arbitrary byte offset. The first
	// chunk holds no complete line, so nothing is emitted yet.
	first := d.Feed(`data: {"choices":[{"delta":{"content":"Hel`)
	assert.Empty(t, first)

	second := d.Feed("lo\"}}]}\n\n")
	assert.Equal(t, []string{"Hello"}, second)
}

func TestStreamDecoder_SplitBetweenLines(t *testing.T) {
	d := NewStreamDecoder()

	first := d.Feed(contentLine("A") + `data: {"choices"`)
	assert.Equal(t, []string{"A"}, first)

	second := d.Feed(`:[{"delta":{"content":"B"}}]}` + "\n")
	assert.Equal(t, []string{"B"}, second)
}

func TestStreamDecoder_DoneSentinelStopsEmission(t *testing.T) {
	d := NewStreamDecoder()

	fragments := d.Feed(contentLine("Hi") + "\ndata: [DONE]\n\n" + contentLine("after"))
	assert.Equal(t, []string{"Hi"}, fragments)
	assert.True(t, d.Done())

	// Chunks arriving after the sentinel are ignored entirely.
	assert.Empty(t, d.Feed(contentLine("more")))
}

func TestStreamDecoder_IgnoresCommentsBlanksAndOtherFields(t *testing.T) {
	d := NewStreamDecoder()

	input := ": keep-alive\r\n" +
		"\r\n" +
		"event: message\n" +
		`data: {"choices":[{"delta":{}}]}` + "\n" +
		`data: {"unrelated":true}` + "\n" +
		"data: {\"choices\":[{\"delta\":{\"content\":\"ok\"}}]}\r\n"

	fragments := d.Feed(input)
	assert.Equal(t, []string{"ok"}, fragments)
}

func TestStreamDecoder_MalformedLineBlocksFollowingLines(t *testing.T) {
	d := NewStreamDecoder()

	// The first data line never becomes valid JSON. It is re-queued rather
	// than dropped, and the line after it must not be processed out of
	// order, so nothing is emitted.
	fragments := d.Feed("data: {broken\n" + contentLine("X"))
	assert.Empty(t, fragments)

	// More data does not unblock it either; the carry-over still starts
	// with the broken line.
	assert.Empty(t, d.Feed(contentLine("Y")))

	// Session end discards the undecoded remainder without error.
	d.Close()
	assert.Empty(t, d.Feed(contentLine("Z")))
}

func TestStreamDecoder_ReassemblesManySplitPoints(t *testing.T) {
	full := contentLine("The") + contentLine(" answer") + contentLine(" is") + "data: [DONE]\n"

	// Whatever the chunking, the reconstructed fragment sequence is identical.
	for split := 1; split < len(full); split++ {
		d := NewStreamDecoder()
		var got []string
		got = append(got, d.Feed(full[:split])...)
		got = append(got, d.Feed(full[split:])...)

		assert.Equal(t, []string{"The", " answer", " is"}, got, "split at byte %d", split)
		assert.True(t, d.Done(), "split at byte %d", split)
	}
}
