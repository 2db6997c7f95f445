// Package gpt decodes the GUID Partition Table at the start of a disk or
// disk image and prints it in a line-per-field diagnostic form.
//
// All LBAs are scaled by a fixed 512 byte sector regardless of the
// device's reported geometry. Nothing is written and checksums are shown,
// never verified.
package gpt
