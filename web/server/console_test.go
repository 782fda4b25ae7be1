package server

import (
	"testing"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/log"
)

func TestWebLogger_BasicLogging(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-123", messageChan, nil)

	testMessage := "Test log message"
	logger.Printf("%s\n", testMessage)

	select {
	case msg := <-messageChan:
		expectedMessage := testMessage + "\n"
		if msg.Message != expectedMessage {
			t.Errorf("Expected message '%s', got '%s'", expectedMessage, msg.Message)
		}
		if msg.Level != "info" {
			t.Errorf("Expected level 'info', got '%s'", msg.Level)
		}
		if msg.RenderID != "test-render-123" {
			t.Errorf("Expected render id 'test-render-123', got '%s'", msg.RenderID)
		}
		if time.Since(msg.Timestamp) > time.Second {
			t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
		}
	default:
		t.Error("Expected a console message to be queued")
	}
}

func TestWebLogger_MultipleMessagesKeepOrder(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-456", messageChan, nil)

	messages := []string{"Message 1", "Message 2", "Message 3"}
	for _, msg := range messages {
		logger.Printf("%s\n", msg)
	}

	if len(messageChan) != len(messages) {
		t.Fatalf("Expected %d queued messages, got %d", len(messages), len(messageChan))
	}
	for i, expected := range messages {
		if got := (<-messageChan).Message; got != expected+"\n" {
			t.Errorf("Message %d: expected '%s', got '%s'", i, expected+"\n", got)
		}
	}
}

func TestWebLogger_ChannelFullDoesNotBlock(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("test-render-789", messageChan, nil)

	done := make(chan struct{})
	go func() {
		logger.Printf("Message 1\n")
		logger.Printf("Message 2\n")
		logger.Printf("Message 3\n")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Printf blocked on a full channel")
	}

	if got := (<-messageChan).Message; got != "Message 1\n" {
		t.Errorf("Expected the first message to be kept, got '%s'", got)
	}
}

func TestWebLogger_NilSinks(t *testing.T) {
	logger := NewWebLogger("test-render-nil", nil, nil)
	logger.Printf("Test message with nil channel\n")
}

func TestWebLogger_ForwardsToServerLog(t *testing.T) {
	logger := NewWebLogger("test-render-log", nil, log.New("web-test"))
	logger.Printf("Rendering %dx%d\n", 32, 18)
}

func TestWebLogger_FormattedMessages(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-format", messageChan, nil)

	logger.Printf("Rendering %dx%d, %d spp\n", 400, 225, 100)

	msg := <-messageChan
	expected := "Rendering 400x225, 100 spp\n"
	if msg.Message != expected {
		t.Errorf("Expected formatted message '%s', got '%s'", expected, msg.Message)
	}
}
