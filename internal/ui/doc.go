// Package ui provides the interactive board and the plain-text renderers used
// by the one-shot commands.
package ui
