// Package persist implements the three on-disk formats of spec.md §6:
// the block file, the matrix file, and the coefficient file. All
// multi-byte integers are little-endian, written and read with the
// standard library's encoding/binary over a bufio.Writer/Reader, the
// same hand-rolled binary-codec style forestrie-go-merklelog and
// axiomhq-fsst use for their own on-disk formats in the retrieval pack
// (neither protobuf nor any other serialization framework appears
// anywhere in it).
//
// Errors:
//
//	ErrBadMagic      - declared for an unrecognised matrix file header;
//	                    ReadMatrixFile never returns it, since any leading
//	                    word other than the magic code is read as a legacy
//	                    row count.
//	ErrTruncated     - a read ended before the expected number of bytes.
//	ErrIndexOutOfRange - a query index fell outside the decoded file's bounds.
package persist
