package translate_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ghostquant/voicequery/internal/language"
	"github.com/ghostquant/voicequery/internal/resilience"
	"github.com/ghostquant/voicequery/pkg/translate"
	"github.com/ghostquant/voicequery/pkg/translate/mock"
)

func TestFallback_Success(t *testing.T) {
	t.Parallel()

	backend := &mock.Translator{Response: "hola"}
	f := translate.NewFallback(backend)

	got, err := f.Translate(context.Background(), "hello", language.Spanish)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "hola" {
		t.Errorf("Translate = %q, want %q", got, "hola")
	}
	if backend.CallCount() != 1 {
		t.Errorf("backend called %d times, want 1", backend.CallCount())
	}
}

func TestFallback_BackendErrorYieldsSourceText(t *testing.T) {
	t.Parallel()

	backend := &mock.Translator{Err: errors.New("remote down")}
	f := translate.NewFallback(backend)

	got, err := f.Translate(context.Background(), "hello there", language.French)
	if err != nil {
		t.Fatalf("Translate: %v, the fallback must never fail", err)
	}
	if got != "hello there" {
		t.Errorf("Translate = %q, want source text", got)
	}
}

func TestFallback_BlankResponseYieldsSourceText(t *testing.T) {
	t.Parallel()

	backend := &mock.Translator{Fn: func(context.Context, string, language.Code) (string, error) {
		return "   ", nil
	}}
	f := translate.NewFallback(backend)

	got, err := f.Translate(context.Background(), "hello there", language.German)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if got != "hello there" {
		t.Errorf("Translate = %q, want source text on blank response", got)
	}
}

func TestFallback_EnglishTargetShortCircuits(t *testing.T) {
	t.Parallel()

	backend := &mock.Translator{Response: "should not be used"}
	f := translate.NewFallback(backend)

	got, err := f.Translate(context.Background(), "hello", language.English)
	if err != nil || got != "hello" {
		t.Errorf("Translate(en) = (%q, %v), want source text without backend call", got, err)
	}
	if backend.CallCount() != 0 {
		t.Errorf("backend called %d times, want 0", backend.CallCount())
	}
}

func TestFallback_BlankInputShortCircuits(t *testing.T) {
	t.Parallel()

	backend := &mock.Translator{}
	f := translate.NewFallback(backend)

	if got, _ := f.Translate(context.Background(), "   ", language.Spanish); got != "   " {
		t.Errorf("Translate(blank) = %q, want input unchanged", got)
	}
	if backend.CallCount() != 0 {
		t.Errorf("backend called %d times, want 0", backend.CallCount())
	}
}

func TestFallback_InvalidTargetShortCircuits(t *testing.T) {
	t.Parallel()

	backend := &mock.Translator{}
	f := translate.NewFallback(backend)

	if got, _ := f.Translate(context.Background(), "hello", "xx"); got != "hello" {
		t.Errorf("Translate(xx) = %q, want source text", got)
	}
	if backend.CallCount() != 0 {
		t.Errorf("backend called %d times, want 0", backend.CallCount())
	}
}

func TestFallback_CallerCancelYieldsSourceText(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	backend := &mock.Translator{Fn: func(ctx context.Context, text string, _ language.Code) (string, error) {
		<-release
		return "hola", nil
	}}
	f := translate.NewFallback(backend)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan string, 1)
	go func() {
		got, _ := f.Translate(ctx, "hello", language.Spanish)
		done <- got
	}()

	cancel()
	select {
	case got := <-done:
		if got != "hello" {
			t.Errorf("Translate after cancel = %q, want source text", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Translate did not return after caller cancellation")
	}
	close(release)
}

func TestFallback_CollapsesIdenticalRequests(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	backend := &mock.Translator{Fn: func(context.Context, string, language.Code) (string, error) {
		close(started)
		<-release
		return "hola", nil
	}}
	f := translate.NewFallback(backend)

	ctx := context.Background()
	var wg sync.WaitGroup
	results := make([]string, 4)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = f.Translate(ctx, "hello", language.Spanish)
	}()
	<-started

	for i := 1; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = f.Translate(ctx, "hello", language.Spanish)
		}(i)
	}

	// Give the followers time to join the in-flight call before releasing.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i, got := range results {
		if got != "hola" {
			t.Errorf("caller %d got %q, want hola", i, got)
		}
	}
	if n := backend.CallCount(); n != 1 {
		t.Errorf("backend called %d times, want 1 (collapsed)", n)
	}
}

func TestFallback_OpenBreakerYieldsSourceText(t *testing.T) {
	t.Parallel()

	backend := &mock.Translator{Err: errors.New("remote down")}
	breaker := resilience.NewBreaker(resilience.Config{Name: "test", TripAfter: 1, CoolDown: time.Hour})
	f := translate.NewFallback(backend, translate.WithBreaker(breaker))

	// First call trips the breaker.
	if got, _ := f.Translate(context.Background(), "one", language.Spanish); got != "one" {
		t.Fatalf("Translate = %q, want source text", got)
	}

	// Second call is rejected by the breaker without touching the backend.
	got, err := f.Translate(context.Background(), "two", language.Spanish)
	if err != nil || got != "two" {
		t.Errorf("Translate = (%q, %v), want source text", got, err)
	}
	if n := backend.CallCount(); n != 1 {
		t.Errorf("backend called %d times, want 1", n)
	}
}
