package recordio_test

import (
	"bytes"
	"fmt"

	"github.com/davidvella/topq/ordered"
	"github.com/davidvella/topq/recordio"
)

// ExampleWrite demonstrates writing and reading a single value.
func ExampleWrite() {
	var buf bytes.Buffer
	n, err := recordio.Write(&buf, recordio.String, ordered.Of("Hello, World!"))
	if err != nil {
		fmt.Printf("Error writing value: %v\n", err)
		return
	}

	fmt.Printf("Wrote %d bytes\n", n)

	v, err := recordio.Read(&buf, recordio.String)
	if err != nil {
		fmt.Printf("Error reading value: %v\n", err)
		return
	}

	fmt.Printf("Read value: %s\n", v.Get())

	// Output:
	// Wrote 24 bytes
	// Read value: Hello, World!
}

// ExampleSeq demonstrates reading a queue file with an iterator.
func ExampleSeq() {
	var buf bytes.Buffer
	for _, v := range ordered.Wrap[int64](3, 1, 2) {
		if _, err := recordio.Write(&buf, recordio.Int64, v); err != nil {
			fmt.Printf("Error writing value: %v\n", err)
			return
		}
	}

	for v := range recordio.Seq(&buf, recordio.Int64) {
		fmt.Println(v.Get())
	}

	// Output:
	// 3
	// 1
	// 2
}
