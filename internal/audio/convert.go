package audio

import "time"

// Int16ToFloat32 converts signed 16-bit samples to float32 in [-1.0, 1.0).
func Int16ToFloat32(samples []int16) []float32 {
	out := make([]float32, len(samples))
	for i, s := range samples {
		out[i] = float32(s) / 32768.0
	}
	return out
}

// Duration returns how long n mono samples last at sampleRate.
func Duration(n int, sampleRate uint32) time.Duration {
	if sampleRate == 0 {
		return 0
	}
	return time.Duration(n) * time.Second / time.Duration(sampleRate)
}
