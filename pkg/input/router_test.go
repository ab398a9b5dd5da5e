package input

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aretw0/folio/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu      sync.Mutex
	intents []domain.Intent
	err     error
}

func (r *recorder) Dispatch(_ context.Context, i domain.Intent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intents = append(r.intents, i)
	return r.err
}

func (r *recorder) got() []domain.Intent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Intent(nil), r.intents...)
}

func TestRouter_Sources(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	r := NewRouter(rec)

	require.NoError(t, r.Arrow(ctx, Left))
	require.NoError(t, r.Arrow(ctx, Right))
	require.NoError(t, r.Dot(ctx, 2))
	handled, err := r.Key(ctx, "ArrowRight")
	require.NoError(t, err)
	assert.True(t, handled)
	handled, err = r.Key(ctx, "Enter")
	require.NoError(t, err)
	assert.False(t, handled, "other keys are ignored")
	require.NoError(t, r.Hover(ctx, true))
	require.NoError(t, r.Hover(ctx, false))

	assert.Equal(t, []domain.Intent{
		domain.Prev(domain.SourceArrow),
		domain.Next(domain.SourceArrow),
		domain.GoTo(2, domain.SourceDot),
		domain.Next(domain.SourceKeyboard),
		domain.Pause(domain.SourcePointer),
		domain.Resume(domain.SourcePointer),
	}, rec.got())
}

func TestRouter_PropagatesErrors(t *testing.T) {
	rec := &recorder{err: domain.ErrClosed}
	err := NewRouter(rec).Dot(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrClosed)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		intent  domain.Intent
		current int
		count   int
		want    int
		ok      bool
	}{
		{"next", domain.Next(domain.SourceArrow), 1, 4, 2, true},
		{"next wraps", domain.Next(domain.SourceArrow), 3, 4, 0, true},
		{"prev", domain.Prev(domain.SourceArrow), 2, 4, 1, true},
		{"prev wraps", domain.Prev(domain.SourceArrow), 0, 4, 3, true},
		{"goto", domain.GoTo(2, domain.SourceDot), 0, 4, 2, true},
		{"goto clamps high", domain.GoTo(6, domain.SourceAPI), 0, 4, 2, true},
		{"goto clamps negative", domain.GoTo(-1, domain.SourceAPI), 0, 4, 3, true},
		{"single slide", domain.Next(domain.SourceAutoplay), 0, 1, 0, true},
		{"pause", domain.Pause(domain.SourcePointer), 1, 4, 0, false},
		{"empty", domain.Next(domain.SourceArrow), 0, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.intent, tt.current, tt.count)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeKeys(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"\x1b[D", []string{KeyArrowLeft}},
		{"\x1b[C\x1b[C", []string{KeyArrowRight, KeyArrowRight}},
		{"\x1bOD", []string{KeyArrowLeft}},
		{"\x1b", []string{KeyEscape}},
		{"q \r", []string{"q", KeySpace, KeyEnter}},
		{"\x03", []string{KeyCtrlC}},
		{"é\x1b[A", []string{"é", KeyArrowUp}},
		{"\x7f", nil},
		{"\x1b[5~", []string{KeyPageUp}},
		{"\x1b[6~\x1b[D", []string{KeyPageDown, KeyArrowLeft}},
		{"\x1b[1;5C", []string{KeyArrowRight}},
		{"\x1b[3;2~", []string{KeyDelete}},
		{"\x1b[15~q", []string{"q"}},
		{"\x1b[200~", nil},
		{"\x1bOP", nil},
		{"\x1b[", nil},
		{"\x1bq", []string{KeyEscape, "q"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DecodeKeys([]byte(tt.in)), "%q", tt.in)
	}
}

func TestKeyReader(t *testing.T) {
	rec := &recorder{}
	var others []string
	kr := &KeyReader{
		R: strings.NewReader("\x1b[C\x1b[Dq"),
		Other: func(_ context.Context, key string) {
			others = append(others, key)
		},
	}

	err := kr.Run(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, []domain.Intent{
		domain.Next(domain.SourceKeyboard),
		domain.Prev(domain.SourceKeyboard),
	}, rec.got())
	assert.Equal(t, []string{"q"}, others)
}

func TestKeyReader_NavigationKeysAreNotEscape(t *testing.T) {
	rec := &recorder{}
	var others []string
	kr := &KeyReader{
		R: strings.NewReader("\x1b[5~\x1b[6~\x1b[H\x1b[C"),
		Other: func(_ context.Context, key string) {
			others = append(others, key)
		},
	}

	require.NoError(t, kr.Run(context.Background(), rec))
	assert.Equal(t, []domain.Intent{domain.Next(domain.SourceKeyboard)}, rec.got())
	assert.Equal(t, []string{KeyPageUp, KeyPageDown, KeyHome}, others)
	assert.NotContains(t, others, KeyEscape)
}

func TestKeyReader_StopsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- (&KeyReader{R: pr}).Run(ctx, &recorder{})
	}()

	cancel()
	assert.NoError(t, <-done)
}

func TestKeyReader_DispatchError(t *testing.T) {
	rec := &recorder{err: errors.New("closed")}
	err := (&KeyReader{R: strings.NewReader("\x1b[C")}).Run(context.Background(), rec)
	assert.EqualError(t, err, "closed")
}
