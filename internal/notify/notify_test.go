package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu   sync.Mutex
	seen []Notification
	err  error
}

func (r *recorder) Notify(_ context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, n)
	return r.err
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}

func TestDispatcher_Deduplicates(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(rec)
	ctx := context.Background()
	n := Notification{Date: "2025-08-05", Prayer: "Asr", Time: "16:50"}

	sent, err := d.Dispatch(ctx, n)
	require.NoError(t, err)
	assert.True(t, sent)

	sent, err = d.Dispatch(ctx, n)
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Equal(t, 1, rec.count())

	// same prayer on the next day fires again
	n.Date = "2025-08-06"
	sent, err = d.Dispatch(ctx, n)
	require.NoError(t, err)
	assert.True(t, sent)
	assert.Equal(t, 2, rec.count())
	assert.Len(t, d.fired, 2, "previous day is kept")

	// yesterday's late entry is still deduplicated
	n.Date = "2025-08-05"
	sent, err = d.Dispatch(ctx, n)
	require.NoError(t, err)
	assert.False(t, sent)

	n.Date = "2025-08-08"
	sent, err = d.Dispatch(ctx, n)
	require.NoError(t, err)
	assert.True(t, sent)
	assert.Len(t, d.fired, 1)
}

func TestDispatcher_ConcurrentSameMinute(t *testing.T) {
	rec := &recorder{}
	d := NewDispatcher(rec)
	n := Notification{Date: "2025-08-05", Prayer: "Maghrib", Time: "19:58"}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = d.Dispatch(context.Background(), n)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, rec.count())
}

func TestDispatcher_AllFailedCanRetry(t *testing.T) {
	rec := &recorder{err: errors.New("offline")}
	d := NewDispatcher(rec)
	n := Notification{Date: "2025-08-05", Prayer: "Isha", Time: "21:20"}

	sent, err := d.Dispatch(context.Background(), n)
	assert.Error(t, err)
	assert.False(t, sent)

	rec.err = nil
	sent, err = d.Dispatch(context.Background(), n)
	require.NoError(t, err)
	assert.True(t, sent)
}

func TestDispatcher_PartialFailureStillMarks(t *testing.T) {
	ok := &recorder{}
	bad := &recorder{err: errors.New("no display")}
	d := NewDispatcher(ok, bad)
	n := Notification{Date: "2025-08-05", Prayer: "Fajr", Time: "04:31"}

	sent, err := d.Dispatch(context.Background(), n)
	assert.Error(t, err)
	assert.True(t, sent)

	sent, _ = d.Dispatch(context.Background(), n)
	assert.False(t, sent)
}

func TestNotificationText(t *testing.T) {
	n := Notification{Prayer: "Dhuhr", Time: "13:05", City: "Chicago"}
	assert.Equal(t, "Dhuhr (13:05)", n.Title())
	assert.Equal(t, "It is time for Dhuhr in Chicago.", n.Message())
	n.City = ""
	assert.Equal(t, "It is time for Dhuhr.", n.Message())
}

func TestDesktopNotifier(t *testing.T) {
	var title, msg, icon string
	d := NewDesktopNotifier("mosque.png")
	d.send = func(a, b, c string) error {
		title, msg, icon = a, b, c
		return nil
	}
	require.NoError(t, d.Notify(context.Background(), Notification{Prayer: "Asr", Time: "16:50"}))
	assert.Equal(t, "Asr (16:50)", title)
	assert.Equal(t, "It is time for Asr.", msg)
	assert.Equal(t, "mosque.png", icon)
}

type fakeToken struct {
	err  error
	done chan struct{}
}

func newFakeToken(err error) *fakeToken {
	t := &fakeToken{err: err, done: make(chan struct{})}
	close(t.done)
	return t
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Done() <-chan struct{}          { return t.done }
func (t *fakeToken) Error() error                   { return t.err }

type fakeClient struct {
	mqtt.Client
	topic   string
	payload []byte
	err     error
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.topic = topic
	c.payload = payload.([]byte)
	return newFakeToken(c.err)
}

func TestMQTTNotifier_PublishesJSON(t *testing.T) {
	client := &fakeClient{}
	m := NewMQTTNotifier(client, "")
	at := time.Date(2025, 8, 5, 16, 50, 0, 0, time.UTC)

	require.NoError(t, m.Notify(context.Background(), Notification{Date: "2025-08-05", Prayer: "Asr", Time: "16:50", At: at}))
	assert.Equal(t, DefaultTopic, client.topic)

	var got Notification
	require.NoError(t, json.Unmarshal(client.payload, &got))
	assert.Equal(t, "Asr", got.Prayer)
	assert.True(t, at.Equal(got.At))
}

func TestMQTTNotifier_PublishError(t *testing.T) {
	client := &fakeClient{err: errors.New("not connected")}
	m := NewMQTTNotifier(client, "mosque/alerts")

	err := m.Notify(context.Background(), Notification{Prayer: "Isha"})
	require.Error(t, err)
	assert.Equal(t, "mosque/alerts", client.topic)
}

func TestCreateMQTTClient_NoBroker(t *testing.T) {
	// This test requires an MQTT broker to be running
	client, err := CreateMQTTClient("tcp://127.0.0.1:1883", "athan-test")
	if err != nil {
		t.Skipf("MQTT broker not available, skipping test: %v", err)
	}
	defer client.Disconnect(250)
	assert.True(t, client.IsConnected())
}
