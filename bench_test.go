package blurhash

import "testing"

func BenchmarkEncode_64(b *testing.B) {
	pix := gradientPixels(64, 64)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Encode(4, 3, 64, 64, pix)
	}
}

func BenchmarkEncode_256(b *testing.B) {
	pix := gradientPixels(256, 256)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Encode(4, 3, 256, 256, pix)
	}
}

func BenchmarkEncode_9x9_256(b *testing.B) {
	pix := gradientPixels(256, 256)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Encode(9, 9, 256, 256, pix)
	}
}

func BenchmarkDecode_32(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Decode("LEHV6nWB2yk8pyo0adR*.7kCMdnj", 32, 32, 1)
	}
}

func BenchmarkDecode_512(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = Decode("LEHV6nWB2yk8pyo0adR*.7kCMdnj", 512, 512, 1)
	}
}
