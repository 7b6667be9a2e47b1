package blurhash

const base83Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz#$%*+,-.:;=?@[]^_{|}~"

// base83Index maps a byte to its digit value, or -1.
var base83Index [256]int8

func init() {
	for i := range base83Index {
		base83Index[i] = -1
	}
	for i := 0; i < len(base83Chars); i++ {
		base83Index[base83Chars[i]] = int8(i)
	}
}

// EncodeBase83 encodes value as exactly width base83 digits, most
// significant first.  Digits above width are dropped.
func EncodeBase83(value, width int) string {
	return string(appendBase83(make([]byte, 0, width), value, width))
}

func appendBase83(dst []byte, value, width int) []byte {
	n := len(dst)
	for k := 0; k < width; k++ {
		dst = append(dst, 0)
	}
	for i := width - 1; i >= 0; i-- {
		dst[n+i] = base83Chars[value%83]
		value /= 83
	}
	return dst
}

// DecodeBase83 decodes a base83 string of any length.
func DecodeBase83(s string) (int, error) {
	v := 0
	for i := 0; i < len(s); i++ {
		d := base83Index[s[i]]
		if d < 0 {
			return 0, &Error{Kind: KindInvalidBase83, Char: s[i]}
		}
		v = v*83 + int(d)
	}
	return v, nil
}
