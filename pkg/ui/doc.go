// Package ui holds the terminal presentation of vkbackup: coloured status
// lines, the upload progress bar and the interactive prompts.
package ui
