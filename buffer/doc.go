// Package buffer implements buffered reads and writes over a raw byte stream.
//
// A Buffer keeps a read-ahead window of the stream and a separate region of
// pending output. The read family mirrors the classic line/block/number
// formats:
//
//	b := buffer.New(f, 1024)
//	line, ok, err := b.ReadLine()
//	if err != nil {
//	    return err
//	}
//	if !ok {
//	    // end of stream
//	}
//
// End of stream is never reported as an error by the format readers; they
// return ok == false instead. Read implements io.Reader and does return
// io.EOF.
//
// # Seeking
//
// Seek keeps the read-ahead window when the target offset falls inside it,
// so small relative seeks do not discard buffered data. Any other target
// invalidates the window and the next read refills from the new position.
//
// A Buffer is not safe for concurrent use.
package buffer
