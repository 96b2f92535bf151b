// SPDX-License-Identifier: EPL-2.0

// Package audio provides the stream capability shared by the decoders in
// formats/ and the random-access source built on top of them.
//
// # Stream Interface
//
// A Stream decodes sequentially into native packed PCM:
//
//	type Stream interface {
//	    Format() Format
//	    SampleRate() int
//	    Channels() int
//	    ChannelLayout() uint64
//	    NumFrames() int64
//	    ReadFrames(dst []byte) (int, error)
//	    Close() error
//	}
//
// ReadFrames fills dst with whole interleaved frames and returns the number
// of frames, not bytes. A frame is Channels()*Format().BytesPerSample bytes.
// Streams that can reposition also implement Seeker, and those that need
// warm-up after a seek implement PreRoller.
//
// # Sample Format
//
// Samples stay in the decoder's native representation, little-endian:
//   - integer PCM up to 16 bits in 2 bytes
//   - integer PCM above 16 bits in 4 bytes, left-justified
//   - IEEE float in 4 bytes
//
// No resampling, remixing or conversion happens at this layer.
//
// # Format Registry
//
// The registry maps format keys to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get("wav")
//
// # Error Handling
//
// ReadFrames returns io.EOF with n == 0 at the end of the stream. A dst that
// cannot hold one frame yields ErrShortBuffer, a dst that is not a whole
// number of frames yields ErrPartialFrame:
//
//	for {
//	    n, err := stream.ReadFrames(buf)
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // Process n frames from buf
//	}
package audio
