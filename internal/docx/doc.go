// Package docx reads and writes Word documents (OOXML .docx packages) at the
// XML node level. It keeps every package part byte-for-byte intact except the
// parts whose trees were actually modified, so layout, styles, images and any
// markup this tool does not understand survive a round trip.
package docx
