// Package eyedropper picks colors out of image files.
//
// Sampled pixels are reported through the colors package, so a sample carries
// the same hex, rgb() and hsl() representations as a typed-in color. Loupe
// renders a magnified view around a pixel for aiming the picker.
//
// Images are decoded once and kept in a Cache keyed by path; a file whose
// modification time or size changed is decoded again. The cache is safe for
// concurrent use. Evict and Clear release memory in long running processes
// and back the image_cache_clear tool.
package eyedropper
