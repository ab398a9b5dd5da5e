package input

import (
	"context"
	"io"
	"strings"
	"unicode/utf8"
)

// Key names produced by DecodeKeys.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyHome       = "Home"
	KeyEnd        = "End"
	KeyPageUp     = "PageUp"
	KeyPageDown   = "PageDown"
	KeyDelete     = "Delete"
	KeyEnter      = "Enter"
	KeyEscape     = "Escape"
	KeySpace      = " "
	KeyCtrlC      = "Ctrl+C"
)

// finalKeys names CSI and SS3 sequences by their final byte.
var finalKeys = map[byte]string{
	'A': KeyArrowUp,
	'B': KeyArrowDown,
	'C': KeyArrowRight,
	'D': KeyArrowLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

// tildeKeys names "ESC [ n ~" sequences by their parameter.
var tildeKeys = map[string]string{
	"1": KeyHome,
	"3": KeyDelete,
	"4": KeyEnd,
	"5": KeyPageUp,
	"6": KeyPageDown,
	"7": KeyHome,
	"8": KeyEnd,
}

// DecodeKeys splits raw terminal input into key names.
//
// CSI sequences (ESC [ params final) are consumed whole, up to their final
// byte. Arrows keep their name when modifiers are present ("ESC [ 1 ; 5 C").
// Sequences without a name, including ones cut off at the end of b, are
// dropped. A lone ESC, or ESC before an ordinary byte, is Escape. Printable
// runes map to themselves.
func DecodeKeys(b []byte) []string {
	var keys []string
	for len(b) > 0 {
		switch c := b[0]; {
		case c == 0x1b && len(b) > 1 && b[1] == '[':
			key, n := decodeCSI(b[2:])
			if key != "" {
				keys = append(keys, key)
			}
			b = b[2+n:]
		case c == 0x1b && len(b) > 1 && b[1] == 'O':
			if len(b) < 3 {
				b = b[2:]
				continue
			}
			if key, ok := finalKeys[b[2]]; ok {
				keys = append(keys, key)
			}
			b = b[3:]
		case c == 0x1b:
			keys = append(keys, KeyEscape)
			b = b[1:]
		case c == '\r' || c == '\n':
			keys = append(keys, KeyEnter)
			b = b[1:]
		case c == 0x03:
			keys = append(keys, KeyCtrlC)
			b = b[1:]
		case c < 0x20 || c == 0x7f:
			b = b[1:]
		default:
			r, size := utf8.DecodeRune(b)
			keys = append(keys, string(r))
			b = b[size:]
		}
	}
	return keys
}

// decodeCSI reads the body of a CSI sequence: parameter bytes (0x30-0x3F),
// intermediate bytes (0x20-0x2F) and one final byte (0x40-0x7E). It returns
// the key name, empty when unknown, and the number of bytes consumed.
func decodeCSI(b []byte) (string, int) {
	i := 0
	for i < len(b) && b[i] >= 0x30 && b[i] <= 0x3f {
		i++
	}
	params := string(b[:i])
	for i < len(b) && b[i] >= 0x20 && b[i] <= 0x2f {
		i++
	}
	if i == len(b) || b[i] < 0x40 || b[i] > 0x7e {
		return "", i
	}
	final := b[i]
	if final == '~' {
		param, _, _ := strings.Cut(params, ";")
		return tildeKeys[param], i + 1
	}
	return finalKeys[final], i + 1
}

// Source is a long-lived input producer attached to a carousel.
// Run blocks until ctx is done or the source is exhausted.
type Source interface {
	Run(ctx context.Context, d Dispatcher) error
}

// KeyReader is a Source reading raw terminal bytes.
//
// Arrow keys become intents. Every other key is handed to Other, if set, so
// the presentation layer can bind its own shortcuts (quit, pause).
type KeyReader struct {
	R     io.Reader
	Other func(ctx context.Context, key string)
}

type chunk struct {
	data []byte
	err  error
}

// Run pumps R until ctx is done or R fails.
// A Read blocked in the kernel cannot be interrupted; the pump goroutine
// exits on the next read after cancellation.
func (k *KeyReader) Run(ctx context.Context, d Dispatcher) error {
	chunks := make(chan chunk)
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := k.R.Read(buf)
			data := append([]byte(nil), buf[:n]...)
			select {
			case chunks <- chunk{data: data, err: err}:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()

	router := NewRouter(d)
	for {
		select {
		case <-ctx.Done():
			return nil
		case c := <-chunks:
			for _, key := range DecodeKeys(c.data) {
				handled, err := router.Key(ctx, key)
				if err != nil {
					return err
				}
				if !handled && k.Other != nil {
					k.Other(ctx, key)
				}
			}
			if c.err == io.EOF {
				return nil
			}
			if c.err != nil {
				return c.err
			}
		}
	}
}
