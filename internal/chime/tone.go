package chime

import "math"

const toneDuration = 0.15 // seconds

// sweep generates a sine sweep from startFreq to endFreq with a half-sine
// envelope so it starts and ends silent.
func sweep(sampleRate int, duration, startFreq, endFreq float64) []int16 {
	numSamples := int(float64(sampleRate) * duration)
	samples := make([]int16, numSamples)
	for i := 0; i < numSamples; i++ {
		t := float64(i) / float64(sampleRate)
		progress := float64(i) / float64(numSamples)
		freq := startFreq + (endFreq-startFreq)*progress
		envelope := math.Sin(math.Pi * progress)
		samples[i] = int16(math.Sin(2*math.Pi*freq*t) * envelope * 16000)
	}
	return samples
}

// mutedTone falls from C5 to G4; unmutedTone rises from G4 to C5.
func mutedTone(sampleRate int) ([]byte, error) {
	return encodeWAV(sweep(sampleRate, toneDuration, 523, 392), sampleRate)
}

func unmutedTone(sampleRate int) ([]byte, error) {
	return encodeWAV(sweep(sampleRate, toneDuration, 392, 523), sampleRate)
}
