// Package recordio implements a binary framing for queue values. Each frame is
// three magic bytes followed by a length-prefixed payload; a Codec turns
// values into payloads and back.
//
// Basic usage:
//
//	var buf bytes.Buffer
//	for _, v := range ordered.Wrap[int64](3, 1, 2) {
//	    if _, err := recordio.Write(&buf, recordio.Int64, v); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
//	for v := range recordio.Seq(&buf, recordio.Int64) {
//	    fmt.Println(v.Get())
//	}
//
// Frames are used both for queue files read by the command line tool and for
// the values stored by the Pebble-backed queue.
package recordio
