//go:build !colorcycle

package main

// Default firmware mode: the hello scene.
const colorCycle = false
