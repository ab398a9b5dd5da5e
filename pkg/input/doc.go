// Package input normalizes arrow buttons, pagination dots, keyboard keys and
// pointer hover into carousel intents, and resolves navigation targets.
package input
