// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Decoding uses github.com/go-audio/wav and supports integer PCM at 16, 24
// and 32 bits, including WAVE_FORMAT_EXTENSIBLE files. 16-bit samples are
// delivered as s16; 24 and 32-bit samples as s32, 24-bit left-justified.
//
// # Decoding WAV Files
//
//	file, _ := os.Open("audio.wav")
//	stream, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]byte, 4096*stream.Channels()*stream.Format().BytesPerSample)
//	n, err := stream.ReadFrames(buf)
//
// # Writing WAV Files
//
// WriteWAV16 writes interleaved 16-bit PCM:
//
//	samples := []int16{100, -100, 200, -200}
//	file, _ := os.Create("output.wav")
//	err := wav.WriteWAV16(file, 8000, 2, samples)
package wav
