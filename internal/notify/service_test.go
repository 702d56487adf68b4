package notify

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu       sync.Mutex
	sent     map[string]string // chatID -> last text
	failFor  map[string]error
	blockFor map[string]bool // honor ctx cancellation instead of returning
}

func newFakeSender() *fakeSender {
	return &fakeSender{
		sent:     make(map[string]string),
		failFor:  make(map[string]error),
		blockFor: make(map[string]bool),
	}
}

func (f *fakeSender) SendMessage(ctx context.Context, chatID, text string) error {
	f.mu.Lock()
	block := f.blockFor[chatID]
	err := f.failFor[chatID]
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.sent[chatID] = text
	f.mu.Unlock()
	return nil
}

func newTestService(registry *Registry, sender *fakeSender, timeout time.Duration) *Service {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewService(registry, sender, logger, timeout)
}

func TestRegistrySubscribeDedupes(t *testing.T) {
	r := NewRegistry("")

	assert.True(t, r.Subscribe("100"))
	assert.False(t, r.Subscribe("100"))
	assert.True(t, r.Subscribe("200"))

	assert.Equal(t, 2, r.Count())
	assert.Equal(t, []string{"100", "200"}, r.Recipients())
}

func TestRegistryFixedModeIgnoresSubscription(t *testing.T) {
	r := NewRegistry("999")

	assert.False(t, r.Subscribe("100"))
	assert.Equal(t, 0, r.Count())
	assert.Equal(t, []string{"999"}, r.Recipients())
	assert.True(t, r.UsingFixed())
}

func TestRegistryConcurrentSubscribe(t *testing.T) {
	r := NewRegistry("")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Subscribe(fmt.Sprintf("%d", i%10))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, r.Count())
}

func TestSendDeliversToAllRecipients(t *testing.T) {
	r := NewRegistry("")
	r.Subscribe("1")
	r.Subscribe("2")

	sender := newFakeSender()
	svc := newTestService(r, sender, time.Second)

	result := svc.Send(context.Background(), "hello")

	assert.True(t, result.Success)
	assert.ElementsMatch(t, []string{"1", "2"}, result.Delivered)
	assert.Empty(t, result.Failed)
	assert.Equal(t, "hello", sender.sent["1"])
	assert.Equal(t, "hello", sender.sent["2"])
}

func TestSendIsolatesPerRecipientFailure(t *testing.T) {
	r := NewRegistry("")
	r.Subscribe("1")
	r.Subscribe("2")
	r.Subscribe("3")

	sender := newFakeSender()
	sender.failFor["2"] = fmt.Errorf("chat not found")

	svc := newTestService(r, sender, time.Second)
	result := svc.Send(context.Background(), "hello")

	// Partial success is still success
	assert.True(t, result.Success)
	assert.ElementsMatch(t, []string{"1", "3"}, result.Delivered)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "2", result.Failed[0].ChatID)
	assert.Contains(t, result.Failed[0].Reason, "chat not found")
}

func TestSendHangingRecipientDoesNotBlockOthers(t *testing.T) {
	r := NewRegistry("")
	r.Subscribe("slow")
	r.Subscribe("fast")

	sender := newFakeSender()
	sender.blockFor["slow"] = true

	svc := newTestService(r, sender, 50*time.Millisecond)

	start := time.Now()
	result := svc.Send(context.Background(), "hello")
	elapsed := time.Since(start)

	assert.True(t, result.Success)
	assert.Equal(t, []string{"fast"}, result.Delivered)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, "slow", result.Failed[0].ChatID)
	assert.Less(t, elapsed, time.Second)
}

func TestSendWithZeroRecipientsLogsAndSucceeds(t *testing.T) {
	svc := newTestService(NewRegistry(""), newFakeSender(), time.Second)

	result := svc.Send(context.Background(), "hello")

	assert.True(t, result.Success)
	assert.Contains(t, result.Message, "logged")
	assert.Empty(t, result.Delivered)
	assert.Empty(t, result.Failed)
}

func TestSendFixedModeUsesOnlyFixedRecipient(t *testing.T) {
	r := NewRegistry("999")
	r.Subscribe("100") // ignored

	sender := newFakeSender()
	svc := newTestService(r, sender, time.Second)

	result := svc.Send(context.Background(), "hello")

	assert.Equal(t, []string{"999"}, result.Delivered)
	_, sentToDynamic := sender.sent["100"]
	assert.False(t, sentToDynamic)
}
