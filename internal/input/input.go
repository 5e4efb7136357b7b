// Package input turns raw terminal bytes into abstract key codes.
package input

import (
	"bufio"
	"context"
)

// Key is an abstract key code. Values follow browser keyCode numbering.
type Key int

const (
	KeyNone   Key = 0
	KeyEnter  Key = 13
	KeyEscape Key = 27
	KeySpace  Key = 32
	KeyLeft   Key = 37
	KeyUp     Key = 38
	KeyRight  Key = 39
	KeyDown   Key = 40
	KeyN      Key = 78
	KeyQuit   Key = 81
	KeyY      Key = 89
)

// String returns a readable key name.
func (k Key) String() string {
	switch k {
	case KeyEnter:
		return "Enter"
	case KeyEscape:
		return "Escape"
	case KeySpace:
		return "Space"
	case KeyLeft:
		return "Left"
	case KeyUp:
		return "Up"
	case KeyRight:
		return "Right"
	case KeyDown:
		return "Down"
	case KeyN:
		return "N"
	case KeyQuit:
		return "Quit"
	case KeyY:
		return "Y"
	default:
		return "None"
	}
}

// RuneKey maps a printable character to a key code.
func RuneKey(r rune) Key {
	switch r {
	case 'a', 'A', 'h', 'H':
		return KeyLeft
	case 'd', 'D', 'l', 'L':
		return KeyRight
	case 'w', 'W', 'k', 'K':
		return KeyUp
	case 's', 'S', 'j', 'J':
		return KeyDown
	case ' ':
		return KeySpace
	case 'q', 'Q':
		return KeyQuit
	case 'y', 'Y':
		return KeyY
	case 'n', 'N':
		return KeyN
	}
	return KeyNone
}

// byteKey maps a single non-escape byte.
func byteKey(b byte) Key {
	switch b {
	case '\r', '\n':
		return KeyEnter
	case 0x03: // Ctrl-C
		return KeyQuit
	case 0x1b:
		return KeyEscape
	}
	if b < 0x80 {
		return RuneKey(rune(b))
	}
	return KeyNone
}

// arrowKey maps the final byte of a CSI or SS3 cursor sequence.
func arrowKey(b byte) Key {
	switch b {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	}
	return KeyNone
}

// maxSequenceLen bounds an unfinished escape sequence carried over to
// the next read; longer runs are dropped.
const maxSequenceLen = 16

// Decode parses buf into keys. An escape sequence cut off at the end of
// buf is returned as rest so the caller can prepend it to the next read.
// A lone ESC at the very end is reported as KeyEscape: terminals write a
// whole sequence at once. ESC followed by any other byte is an
// Alt-modified key and yields nothing.
func Decode(buf []byte) (keys []Key, rest []byte) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != 0x1b {
			if k := byteKey(b); k != KeyNone {
				keys = append(keys, k)
			}
			continue
		}

		if i+1 >= len(buf) {
			keys = append(keys, KeyEscape)
			continue
		}
		switch buf[i+1] {
		case '[', 'O':
		case 0x1b:
			keys = append(keys, KeyEscape)
			continue
		default:
			// Alt-modified key: not a game key.
			i++
			continue
		}

		// Skip parameter bytes (e.g. "1;5" in ESC[1;5C) up to the final byte.
		j := i + 2
		for j < len(buf) && (buf[j] >= '0' && buf[j] <= '9' || buf[j] == ';') {
			j++
		}
		if j >= len(buf) {
			if len(buf)-i > maxSequenceLen {
				return keys, nil
			}
			return keys, append([]byte(nil), buf[i:]...)
		}
		if k := arrowKey(buf[j]); k != KeyNone {
			keys = append(keys, k)
		}
		i = j
	}
	return keys, nil
}

// Stream delivers decoded keys via a channel.
type Stream struct {
	ch chan Key
}

// StartStream spawns a goroutine that reads from r and publishes keys.
// The channel is closed when r returns an error (including EOF) or, at
// the next key or read, once ctx is done.
func StartStream(ctx context.Context, r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan Key, 128),
	}
	go func() {
		defer close(s.ch)
		buf := make([]byte, 256)
		var pending []byte
		for {
			n, err := r.Read(buf)
			if n > 0 {
				var keys []Key
				keys, pending = Decode(append(pending, buf[:n]...))
				for _, k := range keys {
					select {
					case s.ch <- k:
					case <-ctx.Done():
						return
					}
				}
			}
			if err != nil || ctx.Err() != nil {
				return
			}
		}
	}()
	return s
}

// Keys returns the key channel.
func (s *Stream) Keys() <-chan Key {
	return s.ch
}
