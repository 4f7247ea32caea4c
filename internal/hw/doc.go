// Package hw adapts the physical HUB75 panel and IR demodulator to the
// display and remote interfaces. Everything here builds only under
// tinygo; the desktop simulator never links it.
package hw
