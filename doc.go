/*
Package id3 reads, edits and rewrites ID3v2 tags in MP3 files.

The package models a tag as a header plus an ordered sequence of
frames. A file is parsed fully into memory, the frame sequence can be
mutated (add, edit, delete), and Save serializes the tag back into the
ID3v2 wire layout, copying the audio data that follows the tag through
unchanged.

Supported versions

Only ID3v2.4 is fully supported. Tags claiming another version are read
anyway, with a warning; the frame size field is then decoded as a plain
big-endian integer instead of a syncsafe one.

Text encodings

Frame payloads are decoded as ISO-8859-1 or, when they start with a
byte order mark, as UTF-16. Payloads that are neither are treated as
ISO-8859-1 with a warning rather than rejected.

Unsynchronisation, frame compression and frame encryption are not
decoded. Their flags are preserved verbatim so that untouched frames
round-trip byte for byte.
*/
package id3
