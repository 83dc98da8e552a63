package notify

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, sub *Subscriber) Event {
	t.Helper()
	select {
	case ev := <-sub.Events():
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestPublishFansOutToAllSubscribersOfChannel(t *testing.T) {
	hub := NewHub(4)
	tab1 := hub.Subscribe("7")
	tab2 := hub.Subscribe("7")
	other := hub.Subscribe("8")

	hub.Publish("7", EventNewOrder, "payload")

	ev1 := recv(t, tab1)
	ev2 := recv(t, tab2)
	assert.Equal(t, EventNewOrder, ev1.Name)
	assert.Equal(t, "payload", ev1.Payload)
	assert.Equal(t, ev1, ev2)

	// channel "8" 不应收到任何事件
	select {
	case ev := <-other.Events():
		t.Fatalf("unexpected event on other channel: %+v", ev)
	default:
	}
}

func TestPublishWithoutSubscribersIsDropped(t *testing.T) {
	hub := NewHub(4)
	// 没人订阅也不 panic、不阻塞
	hub.Publish("42", EventStatusUpdate, nil)
	assert.Equal(t, 0, hub.Subscribers("42"))
}

func TestUnsubscribeRemovesMembershipAndClosesFeed(t *testing.T) {
	hub := NewHub(4)
	sub := hub.Subscribe("7")
	require.Equal(t, 1, hub.Subscribers("7"))

	hub.Unsubscribe(sub)
	assert.Equal(t, 0, hub.Subscribers("7"))

	_, ok := <-sub.Events()
	assert.False(t, ok, "feed should be closed")

	// 重复注销安全
	hub.Unsubscribe(sub)
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub(2)
	sub := hub.Subscribe("7")

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			hub.Publish("7", EventNewOrder, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber queue")
	}
	assert.Len(t, sub.Events(), 2)
}

func TestConcurrentJoinLeavePublish(t *testing.T) {
	hub := NewHub(8)
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ch := fmt.Sprintf("%d", i%4)
			for j := 0; j < 100; j++ {
				sub := hub.Subscribe(ch)
				hub.Publish(ch, EventStatusUpdate, j)
				hub.Unsubscribe(sub)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 4; i++ {
		assert.Equal(t, 0, hub.Subscribers(fmt.Sprintf("%d", i)))
	}
}
