// SPDX-License-Identifier: EPL-2.0

// Package discover finds audio files in a directory by extension.
//
//	fs, err := discover.Discover("recordings", []string{"wav", "mp3"})
//	for _, c := range fs.Counts() {
//	    fmt.Println(c.Ext, c.Count)
//	}
//
// The result is a FileSet owned by the caller. There is no package level
// state; discovering into the same set twice lists every file twice.
package discover
