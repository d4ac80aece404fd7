//go:build colorcycle

package main

// Built with -tags colorcycle: solid-fill smoke test, no scene.
const colorCycle = true
