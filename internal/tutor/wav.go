package tutor

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	wav "github.com/youpy/go-wav"
)

// minDuration rejects recordings too short to hold a spoken sentence.
const minDuration = 200 * time.Millisecond

// loadRecording reads the learner's WAV file and rejects anything the
// scoring endpoints can't work with: non-WAV data, non-16-bit samples,
// or an effectively empty take.
func loadRecording(path string) ([]byte, time.Duration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("no recording found at %s", path)
	}

	reader := wav.NewReader(bytes.NewReader(data))
	format, err := reader.Format()
	if err != nil {
		return nil, 0, fmt.Errorf("%s is not a valid WAV file: %w", path, err)
	}

	if format.BitsPerSample != 16 {
		return nil, 0, fmt.Errorf("recording must be 16-bit PCM, got %d-bit", format.BitsPerSample)
	}

	// the reader is positioned past the header now, so re-open to count samples
	reader = wav.NewReader(bytes.NewReader(data))
	pcm, err := io.ReadAll(reader)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding WAV data: %w", err)
	}

	bytesPerSecond := int(format.SampleRate) * int(format.NumChannels) * int(format.BitsPerSample) / 8
	if bytesPerSecond == 0 {
		return nil, 0, fmt.Errorf("%s has a malformed format chunk", path)
	}

	duration := time.Duration(float64(len(pcm)) / float64(bytesPerSecond) * float64(time.Second))
	if duration < minDuration {
		return nil, 0, fmt.Errorf("recording is too short (%s)", duration)
	}

	return data, duration, nil
}
