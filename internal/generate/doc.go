// Package generate produces random values: passwords, dice rolls, and
// lorem ipsum filler text.
//
// Passwords and dice draw from crypto/rand with uniform selection, so no
// character or face is favored by modulo bias.
package generate
