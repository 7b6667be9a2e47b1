// Package blurhash implements the BlurHash placeholder format: a small
// image is reduced to a handful of cosine coefficients and serialized as a
// short base83 string, and that string can be rendered back into an
// approximate RGBA image of any size.
//
// Design:
//   - float64 throughout, so hashes agree with other implementations of
//     the format
//   - sRGB → linear via a 256-entry table, linearized once per encode
//   - Pre-computed cosine tables, pure multiply-add transform
//   - Coefficients (encode) and rows (decode) are computed in parallel
//     bands with index-owned output; results do not depend on scheduling
//   - No state survives a call; every function is safe for concurrent use
//
// The package works on raw pixel buffers.  Pixels and DecodeImage bridge
// to image.Image; reading and writing image files is left to the caller.
package blurhash
