package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntent_Constructors(t *testing.T) {
	assert.Equal(t, Intent{Kind: IntentGoTo, Index: 2, Source: SourceDot}, GoTo(2, SourceDot))
	assert.True(t, Next(SourceArrow).IsNavigation())
	assert.True(t, Prev(SourceKeyboard).IsNavigation())
	assert.False(t, Pause(SourcePointer).IsNavigation())
	assert.False(t, Resume(SourcePointer).IsNavigation())
	assert.Equal(t, "goto(3) from api", GoTo(3, SourceAPI).String())
	assert.Equal(t, "next from autoplay", Next(SourceAutoplay).String())
}

func TestParseIntentKind(t *testing.T) {
	k, err := ParseIntentKind("prev")
	require.NoError(t, err)
	assert.Equal(t, IntentPrev, k)

	_, err = ParseIntentKind("jump")
	assert.ErrorIs(t, err, ErrUnknownIntent)
}

func TestMergeHooks(t *testing.T) {
	var calls []string
	a := LifecycleHooks{
		OnTransitionStart: func(context.Context, *TransitionEvent) { calls = append(calls, "a:start") },
	}
	b := LifecycleHooks{
		OnTransitionStart: func(context.Context, *TransitionEvent) { calls = append(calls, "b:start") },
		OnPause:           func(context.Context, *PlaybackEvent) { calls = append(calls, "b:pause") },
	}

	m := MergeHooks(a, LifecycleHooks{}, b)
	require.NotNil(t, m.OnTransitionStart)
	require.NotNil(t, m.OnPause)
	assert.Nil(t, m.OnResume)

	m.OnTransitionStart(context.Background(), &TransitionEvent{})
	m.OnPause(context.Background(), &PlaybackEvent{})
	assert.Equal(t, []string{"a:start", "b:start", "b:pause"}, calls)
}
